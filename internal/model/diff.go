package model

import (
	"github.com/a1s/gridbind/internal/model1"
	"github.com/golang/glog"
	"github.com/wI2L/jsondiff"
)

// DiffSnapshots computes the change turning old into cur. Sections are
// matched by name and rows by id. Deletes, updates and move sources use
// old coordinates; inserts and move targets use new coordinates. When the
// surviving sections were reordered or names are ambiguous, it gives up
// and returns Unknown.
func DiffSnapshots(old, cur model1.Sections) model1.Change {
	oldIdx, ok := sectionIndex(old)
	if !ok {
		return model1.Unknown()
	}
	curIdx, ok := sectionIndex(cur)
	if !ok {
		return model1.Unknown()
	}

	var ops []model1.ChangeOp
	for i, s := range old {
		if _, ok := curIdx[s.Name]; !ok {
			ops = append(ops, model1.DeleteSection(i))
		}
	}
	for i, s := range cur {
		if _, ok := oldIdx[s.Name]; !ok {
			ops = append(ops, model1.InsertSection(i))
		}
	}

	var oldOrder, curOrder []string
	for _, s := range old {
		if _, ok := curIdx[s.Name]; ok {
			oldOrder = append(oldOrder, s.Name)
		}
	}
	for _, s := range cur {
		if _, ok := oldIdx[s.Name]; ok {
			curOrder = append(curOrder, s.Name)
		}
	}
	if !sameOrder(oldOrder, curOrder) {
		return model1.Unknown()
	}

	for _, name := range oldOrder {
		o, n := oldIdx[name], curIdx[name]
		rops, ok := diffRows(o, n, old[o].Rows, cur[n].Rows)
		if !ok {
			return model1.Unknown()
		}
		ops = append(ops, rops...)
	}

	return model1.Batch(ops...)
}

func diffRows(os, ns int, old, cur model1.Rows) ([]model1.ChangeOp, bool) {
	oldIdx, ok := rowIndex(old)
	if !ok {
		return nil, false
	}
	curIdx, ok := rowIndex(cur)
	if !ok {
		return nil, false
	}

	var ops []model1.ChangeOp
	for i, r := range old {
		if _, ok := curIdx[r.ID]; !ok {
			ops = append(ops, model1.DeleteRow(model1.At(os, i)))
		}
	}
	for i, r := range cur {
		if _, ok := oldIdx[r.ID]; !ok {
			ops = append(ops, model1.InsertRow(model1.At(ns, i)))
		}
	}

	// Survivors keep their relative rank unless they moved.
	oldRank := make(map[string]int)
	for _, r := range old {
		if _, ok := curIdx[r.ID]; ok {
			oldRank[r.ID] = len(oldRank)
		}
	}
	var rank int
	for j, r := range cur {
		i, ok := oldIdx[r.ID]
		if !ok {
			continue
		}
		switch {
		case oldRank[r.ID] != rank:
			ops = append(ops, model1.MoveRow(model1.At(os, i), model1.At(ns, j)))
		case rowChanged(old[i], r):
			ops = append(ops, model1.UpdateRow(model1.At(os, i)))
		}
		rank++
	}

	return ops, true
}

func rowChanged(o, n model1.Row) bool {
	patch, err := jsondiff.Compare(o, n)
	if err != nil {
		glog.Warningf("[diff] unable to compare row %q: %v\n", o.ID, err)
		return true
	}
	return len(patch) > 0
}

func sectionIndex(ss model1.Sections) (map[string]int, bool) {
	m := make(map[string]int, len(ss))
	for i, s := range ss {
		if _, dup := m[s.Name]; dup {
			return nil, false
		}
		m[s.Name] = i
	}
	return m, true
}

func rowIndex(rr model1.Rows) (map[string]int, bool) {
	m := make(map[string]int, len(rr))
	for i, r := range rr {
		if _, dup := m[r.ID]; dup {
			return nil, false
		}
		m[r.ID] = i
	}
	return m, true
}

func sameOrder(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
