// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of a1s

package view

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/a1s/gridbind/internal/model1"
	"github.com/derailed/tview"
	"github.com/wI2L/jsondiff"
	"gopkg.in/yaml.v3"
)

// Editor errors
var (
	ErrEditorCancelled = errors.New("editor cancelled")
	ErrNoChanges       = errors.New("no changes detected")
)

// editDoc is the YAML document presented to the user. Columns are keyed
// by header name.
type editDoc struct {
	ID     string            `yaml:"id"`
	Fields map[string]string `yaml:"fields"`
}

// EditSession represents an in-progress row edit.
type EditSession struct {
	Row      model1.Row
	Header   model1.Header
	TempFile string
	ErrorMsg string
}

// NewEditSession creates a new edit session.
func NewEditSession(r model1.Row, h model1.Header) *EditSession {
	return &EditSession{Row: r.Clone(), Header: h}
}

// Encode renders the row as YAML, prefixed by the last error if any.
func (e *EditSession) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if e.ErrorMsg != "" {
		buf.WriteString("# ERROR: " + e.ErrorMsg + "\n")
		buf.WriteString("# Fix the issue below and save, or quit without saving to cancel.\n\n")
	}
	doc := editDoc{ID: e.Row.ID, Fields: make(map[string]string, len(e.Header))}
	for i, c := range e.Header {
		doc.Fields[c.Name] = e.Row.Field(i)
	}
	bb, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal row: %w", err)
	}
	buf.Write(bb)

	return buf.Bytes(), nil
}

// Decode parses an edited document back into a row. The id and the
// column set may not change.
func (e *EditSession) Decode(content []byte) (model1.Row, error) {
	var doc editDoc
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return model1.Row{}, fmt.Errorf("invalid YAML: %w", err)
	}
	if doc.ID != e.Row.ID {
		return model1.Row{}, fmt.Errorf("id is read-only: %q", doc.ID)
	}
	ff := make([]string, len(e.Header))
	for i, c := range e.Header {
		v, ok := doc.Fields[c.Name]
		if !ok {
			return model1.Row{}, fmt.Errorf("missing column %q", c.Name)
		}
		ff[i] = v
	}
	if len(doc.Fields) != len(e.Header) {
		return model1.Row{}, fmt.Errorf("unknown columns in %d fields", len(doc.Fields))
	}

	return model1.NewRow(doc.ID, ff...), nil
}

// Patch returns the JSON patch turning the original row into r or
// ErrNoChanges.
func (e *EditSession) Patch(r model1.Row) (jsondiff.Patch, error) {
	patch, err := jsondiff.Compare(e.Row, r)
	if err != nil {
		return nil, fmt.Errorf("failed to generate patch: %w", err)
	}
	if len(patch) == 0 {
		return nil, ErrNoChanges
	}

	return patch, nil
}

// Cleanup removes the temporary file.
func (e *EditSession) Cleanup() {
	if e.TempFile != "" {
		_ = os.Remove(e.TempFile)
		e.TempFile = ""
	}
}

func (e *EditSession) writeTemp() error {
	bb, err := e.Encode()
	if err != nil {
		return err
	}
	if e.TempFile == "" {
		f, err := os.CreateTemp("", "gridbind-row-*.yaml")
		if err != nil {
			return fmt.Errorf("failed to create temp file: %w", err)
		}
		e.TempFile = f.Name()
		_ = f.Close()
	}

	return os.WriteFile(e.TempFile, bb, 0600)
}

// NewRowEditFn returns a row editor suspending app while $EDITOR runs.
// Invalid edits reopen the editor with the error on top.
func NewRowEditFn(app *tview.Application) RowEditFunc {
	return func(r model1.Row, h model1.Header) (model1.Row, error) {
		s := NewEditSession(r, h)
		defer s.Cleanup()

		for {
			if err := s.writeTemp(); err != nil {
				return model1.Row{}, err
			}
			if code, err := spawnEditor(app, s.TempFile); err != nil {
				return model1.Row{}, fmt.Errorf("editor failed: %w", err)
			} else if code != 0 {
				return model1.Row{}, ErrEditorCancelled
			}
			content, err := os.ReadFile(s.TempFile)
			if err != nil {
				return model1.Row{}, fmt.Errorf("failed to read edited file: %w", err)
			}
			nr, err := s.Decode(content)
			if err != nil {
				s.ErrorMsg = err.Error()
				continue
			}
			if _, err := s.Patch(nr); err != nil {
				return model1.Row{}, err
			}

			return nr, nil
		}
	}
}

func spawnEditor(app *tview.Application, path string) (int, error) {
	var code int
	ok := app.Suspend(func() {
		cmd := exec.Command(getEditor(), path)
		cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
		if err := cmd.Run(); err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				code = exitErr.ExitCode()
			} else {
				code = 1
			}
		}
	})
	if !ok {
		return 1, errors.New("failed to suspend application")
	}

	return code, nil
}

// getEditor checks $EDITOR then $VISUAL, then falls back to vim or nano.
func getEditor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	if editor := os.Getenv("VISUAL"); editor != "" {
		return editor
	}
	if _, err := exec.LookPath("vim"); err == nil {
		return "vim"
	}
	return "nano"
}
