package ui_test

import (
	"fmt"
	"strings"

	"github.com/a1s/gridbind/internal/model1"
)

// recordingSink traces the calls the engine makes.
type recordingSink struct {
	calls   []string
	begins  int
	ends    int
	err     error
	panicOn string
}

func (s *recordingSink) add(format string, args ...any) {
	call := fmt.Sprintf(format, args...)
	if s.panicOn != "" && strings.HasPrefix(call, s.panicOn) {
		panic("boom " + call)
	}
	s.calls = append(s.calls, call)
}

func (s *recordingSink) reset() {
	s.calls, s.begins, s.ends = nil, 0, 0
}

func (s *recordingSink) trace() []byte {
	return []byte(strings.Join(s.calls, "\n") + "\n")
}

func (s *recordingSink) count(prefix string) int {
	var n int
	for _, c := range s.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (s *recordingSink) ReloadAll() {
	s.add("reloadAll")
}

func (s *recordingSink) PerformBatch(body func()) error {
	s.begins++
	s.add("begin")
	body()
	s.ends++
	s.add("end")

	return s.err
}

func (s *recordingSink) InsertRows(pp []model1.Position, a model1.AnimationKind) {
	s.add("insertRows %v %s", pp, a)
}

func (s *recordingSink) DeleteRows(pp []model1.Position, a model1.AnimationKind) {
	s.add("deleteRows %v %s", pp, a)
}

func (s *recordingSink) UpdateRows(pp []model1.Position, a model1.AnimationKind) {
	s.add("updateRows %v %s", pp, a)
}

func (s *recordingSink) MoveRow(from, to model1.Position) {
	s.add("moveRow %s->%s", from, to)
}

func (s *recordingSink) InsertSections(ss []int, a model1.AnimationKind) {
	s.add("insertSections %v %s", ss, a)
}

func (s *recordingSink) DeleteSections(ss []int, a model1.AnimationKind) {
	s.add("deleteSections %v %s", ss, a)
}

func (s *recordingSink) UpdateSections(ss []int, a model1.AnimationKind) {
	s.add("updateSections %v %s", ss, a)
}

func (s *recordingSink) MoveSection(from, to int) {
	s.add("moveSection %d->%d", from, to)
}
