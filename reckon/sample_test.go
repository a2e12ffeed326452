// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reckon

import (
	"math/rand"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/emer/etable/etable"
	"github.com/goki/gi/gi"
)

func TestSampleValidate(t *testing.T) {
	cf := NewConfig()
	cf.NumOut = 3
	sm := NewSample(5, cf.NumInp)
	sm.SetLabel(4, 2)
	if err := sm.Validate(cf); err != nil {
		t.Errorf("valid sample rejected: %v", err)
	}
	sm.SetLabel(4, 3)
	if err := sm.Validate(cf); !IsKind(err, ProtocolViolation) {
		t.Errorf("label 3 with 3 outputs: %v", err)
	}
	if err := NewSample(0, cf.NumInp).Validate(cf); !IsKind(err, ProtocolViolation) {
		t.Errorf("empty sample: %v", err)
	}

	cf.Regression = true
	sm = NewSample(5, cf.NumInp)
	sm.LabelValid[2] = true
	if err := sm.Validate(cf); !IsKind(err, ProtocolViolation) {
		t.Errorf("regression without targets: %v", err)
	}
	sm.Targets = make([][]int32, 5)
	sm.Targets[2] = []int32{1, 2, 3}
	if err := sm.Validate(cf); err != nil {
		t.Errorf("regression sample rejected: %v", err)
	}
	sm.Targets[2][1] = 40000
	if err := sm.Validate(cf); !IsKind(err, ProtocolViolation) {
		t.Errorf("16-bit overflow target: %v", err)
	}
}

func TestDatasetTSV(t *testing.T) {
	rnd := rand.New(rand.NewSource(5))
	ds := &Dataset{Name: "cues", NInp: 6, NOut: 2}
	for i := 0; i < 3; i++ {
		sm := randSample(rnd, 4+i, ds.NInp, 0.5)
		sm.SetLabel(3+i, i%2)
		sm.Targets = make([][]int32, sm.NTicks())
		for ti := range sm.Targets {
			sm.Targets[ti] = []int32{int32(ti), -int32(i)}
		}
		ds.Samples = append(ds.Samples, sm)
	}
	fnm := filepath.Join(t.TempDir(), "cues.tsv")
	if err := ds.SaveTSV(gi.FileName(fnm)); err != nil {
		t.Fatal(err)
	}
	rd := &Dataset{}
	if err := rd.OpenTSV(gi.FileName(fnm)); err != nil {
		t.Fatal(err)
	}
	if rd.NInp != ds.NInp || rd.NOut != ds.NOut || len(rd.Samples) != len(ds.Samples) {
		t.Fatalf("read %s, expected %s", rd, ds)
	}
	for i := range ds.Samples {
		if !reflect.DeepEqual(ds.Samples[i], rd.Samples[i]) {
			t.Errorf("sample %d differs after TSV round trip", i)
		}
	}
}

func TestDatasetNonBinary(t *testing.T) {
	ds := &Dataset{Name: "bad", NInp: 2, NOut: 1}
	ds.Samples = []*Sample{NewSample(2, 2)}
	dt := &etable.Table{}
	ds.ToTable(dt)
	dt.CellTensor("Input", 1).SetFloat1D(0, 0.5)
	rd := &Dataset{}
	if err := rd.FromTable(dt); !IsKind(err, ProtocolViolation) {
		t.Errorf("non-binary input: %v", err)
	}
}
