package dao

import (
	"context"

	"github.com/a1s/gridbind/internal/model1"
)

type Error string

const (
	ErrClosed      = Error("store is closed")
	ErrNoBucket    = Error("no bucket configured")
	ErrBadSnapshot = Error("malformed snapshot")
)

func (e Error) Error() string {
	return string(e)
}

// Store persists sectioned rows.
type Store interface {
	// Load returns the persisted sections in display order.
	Load(ctx context.Context) (model1.Sections, error)

	// Save replaces the persisted content and ordering.
	Save(ctx context.Context, ss model1.Sections) error

	// Delete removes rows by id. Unknown ids are ignored.
	Delete(ctx context.Context, ids ...string) error

	// Close releases the store resources.
	Close() error
}

// snapshot is the serialized form of a full store content.
type snapshot struct {
	Version  int             `json:"version"`
	Sections model1.Sections `json:"sections"`
}

const snapshotVersion = 1

func dropRows(ss model1.Sections, ids ...string) model1.Sections {
	victims := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		victims[id] = struct{}{}
	}
	out := make(model1.Sections, 0, len(ss))
	for _, s := range ss {
		rows := make(model1.Rows, 0, len(s.Rows))
		for _, r := range s.Rows {
			if _, ok := victims[r.ID]; ok {
				continue
			}
			rows = append(rows, r)
		}
		out = append(out, model1.Section{Name: s.Name, Rows: rows})
	}

	return out
}

// Seed saves ss into an empty store. It returns true when the store was
// seeded.
func Seed(ctx context.Context, s Store, ss model1.Sections) (bool, error) {
	cur, err := s.Load(ctx)
	if err != nil {
		return false, err
	}
	if len(cur) > 0 || len(ss) == 0 {
		return false, nil
	}

	return true, s.Save(ctx, ss)
}
