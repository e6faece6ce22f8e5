// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 a1s Authors

package view

import (
	"github.com/a1s/gridbind/internal/config/data"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// StoreInfo displays where the grid content lives.
type StoreInfo struct {
	*tview.Table

	store   data.Store
	version string
}

// NewStoreInfo returns a store info panel.
func NewStoreInfo() *StoreInfo {
	s := StoreInfo{Table: tview.NewTable()}
	s.SetBorder(true)
	s.SetBorderColor(tcell.ColorDarkCyan)
	s.SetBorderPadding(0, 0, 1, 1)
	s.SetSelectable(false, false)

	return &s
}

// SetInfo updates the panel.
func (s *StoreInfo) SetInfo(st data.Store, version string) {
	s.store, s.version = st, version
	s.refresh()
}

// Location returns a printable store location.
func (s *StoreInfo) Location() string {
	switch s.store.Source {
	case data.SourceSQLite:
		return s.store.Path
	case data.SourceS3:
		return "s3://" + s.store.Bucket + "/" + s.store.Key
	default:
		return "memory"
	}
}

func (s *StoreInfo) refresh() {
	s.Clear()

	src := s.store.Source
	if src == "" {
		src = data.SourceMemory
	}
	s.SetCell(0, 0, tview.NewTableCell("[::b]"+src+"[-:-:-]").
		SetTextColor(tcell.ColorDarkCyan).
		SetSelectable(false))
	s.SetCell(1, 0, tview.NewTableCell(s.Location()+" [gray](v"+s.version+")[-]").
		SetTextColor(tcell.ColorWhite).
		SetSelectable(false))
}
