// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reckon

import (
	"fmt"
	"log"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/emer/reckon/fixpt"
	"github.com/goki/gi/gi"
	"github.com/pkg/errors"
)

// Sample is one input sequence with its supervision, as supplied by the driver
type Sample struct {
	Inputs     [][]bool  `desc:"binary inputs per tick: [T][NumInp]"`
	Labels     []int     `desc:"class label per tick, used where LabelValid -- nil if the sample carries no labels"`
	LabelValid []bool    `desc:"which ticks carry a label (or regression target)"`
	Targets    [][]int32 `desc:"regression targets per tick with FpLocW.Out fractional bits: [T][NumOut] -- only for Regression"`
}

// NTicks returns the length of the sequence
func (sm *Sample) NTicks() int {
	return len(sm.Inputs)
}

// NewSample returns an all-zero sample of nt ticks and nin inputs, with no labels
func NewSample(nt, nin int) *Sample {
	sm := &Sample{}
	sm.Inputs = make([][]bool, nt)
	for t := range sm.Inputs {
		sm.Inputs[t] = make([]bool, nin)
	}
	sm.Labels = make([]int, nt)
	sm.LabelValid = make([]bool, nt)
	return sm
}

// SetLabel sets a label at tick t
func (sm *Sample) SetLabel(t, label int) {
	sm.Labels[t] = label
	sm.LabelValid[t] = true
}

// Label returns the first valid label of the sequence, or -1
func (sm *Sample) Label() int {
	for t, v := range sm.LabelValid {
		if v && t < len(sm.Labels) {
			return sm.Labels[t]
		}
	}
	return -1
}

// NLabels returns the number of label classes for given config:
// a single output distinguishes two classes
func NLabels(cf *Config) int {
	if cf.NumOut == 1 {
		return 2
	}
	return cf.NumOut
}

// Validate returns a ProtocolViolation error if the sample does not match
// the configuration: tensor shapes, label ranges, and regression targets.
func (sm *Sample) Validate(cf *Config) error {
	nt := sm.NTicks()
	if nt == 0 {
		return NewError(ProtocolViolation, "Inputs", "sample has no ticks")
	}
	for t, in := range sm.Inputs {
		if len(in) != cf.NumInp {
			return NewError(ProtocolViolation, "Inputs", "tick %d has %d inputs, config has %d", t, len(in), cf.NumInp)
		}
	}
	if sm.LabelValid != nil && len(sm.LabelValid) != nt {
		return NewError(ProtocolViolation, "LabelValid", "length %d != %d ticks", len(sm.LabelValid), nt)
	}
	if sm.Labels != nil && len(sm.Labels) != nt {
		return NewError(ProtocolViolation, "Labels", "length %d != %d ticks", len(sm.Labels), nt)
	}
	if cf.Regression {
		if sm.LabelValid == nil {
			return nil
		}
		if len(sm.Targets) != nt {
			return NewError(ProtocolViolation, "Targets", "regression targets for %d ticks, sample has %d", len(sm.Targets), nt)
		}
		for t, tg := range sm.Targets {
			if !sm.LabelValid[t] {
				continue
			}
			if len(tg) != cf.NumOut {
				return NewError(ProtocolViolation, "Targets", "tick %d has %d targets, config has %d outputs", t, len(tg), cf.NumOut)
			}
			for _, v := range tg {
				if int64(v) < fixpt.Min(YBits) || int64(v) > fixpt.Max(YBits) {
					return NewError(ProtocolViolation, "Targets", "tick %d target %d outside %d bits", t, v, YBits)
				}
			}
		}
		return nil
	}
	nl := NLabels(cf)
	for t, v := range sm.LabelValid {
		if !v {
			continue
		}
		if sm.Labels == nil {
			return NewError(ProtocolViolation, "Labels", "tick %d marked valid without labels", t)
		}
		if lb := sm.Labels[t]; lb < 0 || lb >= nl {
			return NewError(ProtocolViolation, "Labels", "tick %d label %d outside [0, %d)", t, lb, nl)
		}
	}
	return nil
}

///////////////////////////////////////////////////////////////////////
//  Dataset

// Dataset is an ordered set of samples
type Dataset struct {
	Name    string    `desc:"name of the dataset"`
	NInp    int       `desc:"number of inputs per tick"`
	NOut    int       `desc:"number of targets per tick (regression)"`
	Samples []*Sample `desc:"the samples"`
}

// Validate validates every sample, returning the first error wrapped
// with the sample index
func (ds *Dataset) Validate(cf *Config) error {
	for i, sm := range ds.Samples {
		if err := sm.Validate(cf); err != nil {
			return errors.Wrapf(err, "Dataset %s sample %d", ds.Name, i)
		}
	}
	return nil
}

// Schema returns the table schema of the dataset: one row per tick
func (ds *Dataset) Schema() etable.Schema {
	return etable.Schema{
		{"Sample", etensor.INT64, nil, nil},
		{"Tick", etensor.INT64, nil, nil},
		{"LabelValid", etensor.INT64, nil, nil},
		{"Label", etensor.INT64, nil, nil},
		{"Input", etensor.FLOAT32, []int{ds.NInp}, []string{"Inp"}},
		{"Target", etensor.FLOAT32, []int{ds.NOut}, []string{"Out"}},
	}
}

// ToTable writes the dataset into a table, one row per tick
func (ds *Dataset) ToTable(dt *etable.Table) {
	nrow := 0
	for _, sm := range ds.Samples {
		nrow += sm.NTicks()
	}
	dt.SetMetaData("name", ds.Name)
	dt.SetMetaData("desc", "binary input sequences with labels, one row per tick")
	dt.SetFromSchema(ds.Schema(), nrow)
	inp := etensor.NewFloat32([]int{ds.NInp}, nil, []string{"Inp"})
	tgt := etensor.NewFloat32([]int{ds.NOut}, nil, []string{"Out"})
	row := 0
	for si, sm := range ds.Samples {
		for t := 0; t < sm.NTicks(); t++ {
			dt.SetCellFloat("Sample", row, float64(si))
			dt.SetCellFloat("Tick", row, float64(t))
			lv := sm.LabelValid != nil && sm.LabelValid[t]
			if lv {
				dt.SetCellFloat("LabelValid", row, 1)
			} else {
				dt.SetCellFloat("LabelValid", row, 0)
			}
			lb := 0
			if sm.Labels != nil {
				lb = sm.Labels[t]
			}
			dt.SetCellFloat("Label", row, float64(lb))
			for i, x := range sm.Inputs[t] {
				if x {
					inp.Values[i] = 1
				} else {
					inp.Values[i] = 0
				}
			}
			dt.SetCellTensor("Input", row, inp)
			tgt.SetZeros()
			if sm.Targets != nil && t < len(sm.Targets) {
				for o, v := range sm.Targets[t] {
					if o < ds.NOut {
						tgt.Values[o] = float32(v)
					}
				}
			}
			dt.SetCellTensor("Target", row, tgt)
			row++
		}
	}
}

// FromTable reads the dataset from a table written by ToTable.
// Inputs must be exactly 0 or 1, otherwise a ProtocolViolation is returned.
func (ds *Dataset) FromTable(dt *etable.Table) error {
	ds.Samples = nil
	icol := dt.ColByName("Input")
	tcol := dt.ColByName("Target")
	if icol == nil {
		return NewError(ProtocolViolation, "Input", "table %s has no Input column", dt.MetaData["name"])
	}
	ds.NInp = icol.Len() / ints1(dt.Rows)
	if tcol != nil {
		ds.NOut = tcol.Len() / ints1(dt.Rows)
	}
	if nm, has := dt.MetaData["name"]; has {
		ds.Name = nm
	}
	var sm *Sample
	cur := -1
	for row := 0; row < dt.Rows; row++ {
		si := int(dt.CellFloat("Sample", row))
		if si != cur {
			sm = &Sample{}
			ds.Samples = append(ds.Samples, sm)
			cur = si
		}
		in := make([]bool, ds.NInp)
		it := dt.CellTensor("Input", row)
		for i := range in {
			v := it.FloatVal1D(i)
			switch v {
			case 0:
			case 1:
				in[i] = true
			default:
				return NewError(ProtocolViolation, "Input", "row %d input %d = %g is not binary", row, i, v)
			}
		}
		sm.Inputs = append(sm.Inputs, in)
		sm.LabelValid = append(sm.LabelValid, dt.CellFloat("LabelValid", row) != 0)
		sm.Labels = append(sm.Labels, int(dt.CellFloat("Label", row)))
		if tcol != nil && ds.NOut > 0 {
			tt := dt.CellTensor("Target", row)
			tg := make([]int32, ds.NOut)
			for o := range tg {
				tg[o] = int32(tt.FloatVal1D(o))
			}
			sm.Targets = append(sm.Targets, tg)
		}
	}
	return nil
}

func ints1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// SaveTSV saves the dataset to a tab-separated file with emergent headers
func (ds *Dataset) SaveTSV(filename gi.FileName) error {
	dt := &etable.Table{}
	ds.ToTable(dt)
	err := dt.SaveCSV(filename, etable.Tab, etable.Headers)
	if err != nil {
		log.Println(err)
	}
	return err
}

// OpenTSV opens a dataset saved with SaveTSV
func (ds *Dataset) OpenTSV(filename gi.FileName) error {
	dt := &etable.Table{}
	err := dt.OpenCSV(filename, etable.Tab)
	if err != nil {
		log.Println(err)
		return err
	}
	return ds.FromTable(dt)
}

// String returns a short summary of the dataset
func (ds *Dataset) String() string {
	nt := 0
	for _, sm := range ds.Samples {
		nt += sm.NTicks()
	}
	return fmt.Sprintf("Dataset %s: %d samples, %d ticks, %d inputs, %d targets", ds.Name, len(ds.Samples), nt, ds.NInp, ds.NOut)
}
