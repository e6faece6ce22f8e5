package model_test

import (
	"github.com/a1s/gridbind/internal/model"
	"github.com/a1s/gridbind/internal/model1"
)

type emission struct {
	change model1.Change
	mode   model.EmitMode
}

type recorder struct {
	emissions []emission
}

func (r *recorder) observe(c model1.Change, m model.EmitMode) {
	r.emissions = append(r.emissions, emission{change: c, mode: m})
}

func (r *recorder) last() emission {
	if len(r.emissions) == 0 {
		return emission{}
	}
	return r.emissions[len(r.emissions)-1]
}

func ints(a *model.ArrayProvider[int]) [][]int {
	out := make([][]int, 0, a.SectionCount())
	for _, s := range a.Sections() {
		out = append(out, s.Items)
	}
	return out
}
