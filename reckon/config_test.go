// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reckon

import (
	"testing"
)

func TestDefaultsValid(t *testing.T) {
	cf := NewConfig()
	if errs := cf.Validate(); len(errs) != 0 {
		t.Errorf("defaults invalid: %v", errs)
	}
	if cf.NumInp != 39 || cf.NumRec != 99 || cf.NumOut != 1 || cf.Kappa != 0x79 {
		t.Errorf("defaults shape: %d %d %d kappa %x", cf.NumInp, cf.NumRec, cf.NumOut, cf.Kappa)
	}
	if cf.DoEprop != EpropOff || !cf.EnStochRound {
		t.Errorf("defaults modes: %v %v", cf.DoEprop, cf.EnStochRound)
	}
}

func TestFpOrdering(t *testing.T) {
	for m := Inp; m < MatricesN; m++ {
		for fw := 0; fw < 8; fw++ {
			for ft := 0; ft < 8; ft++ {
				cf := NewConfig()
				cf.FpLocW.Set(m, fw)
				cf.FpLocT.Set(m, ft)
				errs := cf.Validate()
				bad := false
				for _, err := range errs {
					if !IsKind(err, ConfigInvalid) {
						t.Errorf("error kind: %v", err)
					}
					bad = true
				}
				if ft < fw && !bad {
					t.Errorf("%v: FP_LOC_T %d < FP_LOC_W %d not reported", m, ft, fw)
				}
				if ft >= fw && bad {
					t.Errorf("%v: valid FP_LOC_T %d FP_LOC_W %d reported: %v", m, ft, fw, errs)
				}
			}
		}
	}
}

func TestValidateClamp(t *testing.T) {
	cf := NewConfig()
	cf.Kappa = 300
	cf.ThrH2 = -1000
	cf.SeedStrndONeur = 0x8000 // zero in 15 bits
	cf.DoEprop = 5
	cf.NumOut = 0
	cf.H1 = 16
	errs := cf.Validate()
	fields := map[string]bool{}
	for _, err := range errs {
		if er, ok := err.(*Error); ok {
			fields[er.Field] = true
		} else {
			t.Errorf("not an *Error: %v", err)
		}
	}
	for _, f := range []string{"KAPPA", "THR_H_2", "SEED_STRND_ONEUR", "DO_EPROP", "NUM_OUT_NEUR", "H_1"} {
		if !fields[f] {
			t.Errorf("%s violation not reported: %v", f, errs)
		}
	}
	cf.Clamp()
	if errs := cf.Validate(); len(errs) != 0 {
		t.Errorf("invalid after Clamp: %v", errs)
	}
	if cf.Kappa != 255 || cf.NumOut != 1 || cf.DoEprop != EpropOff || cf.H1 != 15 {
		t.Errorf("clamped values: kappa %d nout %d eprop %v h1 %d", cf.Kappa, cf.NumOut, cf.DoEprop, cf.H1)
	}
	if th := cf.Thr(2); th < 1 {
		t.Errorf("band 2 threshold after clamp: %d", th)
	}
}

func TestFieldByName(t *testing.T) {
	cf := NewConfig()
	fd, ok := cf.FieldByName("THR_H_1")
	if !ok || !fd.Signed || fd.Width != 16 {
		t.Fatalf("THR_H_1 field: %+v %v", fd, ok)
	}
	fd.SetInt(-5)
	if cf.ThrH1 != -5 {
		t.Errorf("SetInt through field: %d", cf.ThrH1)
	}
	fd, _ = cf.FieldByName("DO_EPROP")
	fd.SetInt(2)
	if cf.DoEprop != EpropLabel {
		t.Errorf("DO_EPROP: %v", cf.DoEprop)
	}
	if _, ok := cf.FieldByName("SPI_KAPPA"); ok {
		t.Errorf("field names have no SPI_ prefix")
	}
}

func TestParams(t *testing.T) {
	cf := NewConfig()
	if err := SetParams(cf, ParamSets, "EpropLabel", false); err != nil {
		t.Fatal(err)
	}
	if cf.DoEprop != EpropLabel || !cf.SingleLabel {
		t.Errorf("EpropLabel set not applied: %v %v", cf.DoEprop, cf.SingleLabel)
	}
	if cf.Kappa != 121 {
		t.Errorf("Base set: kappa %d", cf.Kappa)
	}
	if err := SetParams(cf, ParamSets, "NoSuchSet", false); err == nil {
		t.Errorf("unknown param set accepted")
	}
}
