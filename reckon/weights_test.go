// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reckon

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/goki/gi/gi"
)

func TestWtsJSON(t *testing.T) {
	cf := NewConfig()
	cf.NumInp, cf.NumRec, cf.NumOut = 5, 7, 2
	src, err := NewCore("src", cf)
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	src.WriteWtsJSON(&b)
	js := b.String()
	for _, s := range []string{"\"Network\": \"src\"", "\"Layer\": \"Hidden\"", "\"Layer\": \"Output\"", "\"From\": \"Input\"", "\"Fb\""} {
		if !strings.Contains(js, s) {
			t.Errorf("weights missing %s:\n%s", s, js)
		}
	}

	cf.SeedInp, cf.SeedRec, cf.SeedOut = 0x1234, 0x4321, 0x777
	dst, err := NewCore("dst", cf)
	if err != nil {
		t.Fatal(err)
	}
	if reflect.DeepEqual(src.Prjns[Inp].Wt, dst.Prjns[Inp].Wt) {
		t.Fatalf("different seeds gave the same weights")
	}
	if err := dst.ReadWtsJSON(strings.NewReader(js)); err != nil {
		t.Fatal(err)
	}
	for m := range src.Prjns {
		if !reflect.DeepEqual(src.Prjns[m].Wt, dst.Prjns[m].Wt) {
			t.Errorf("%v weights differ after round trip", Matrices(m))
		}
	}
	if !reflect.DeepEqual(src.Fb, dst.Fb) {
		t.Errorf("feedback matrix differs after round trip")
	}
}

func TestWtsFile(t *testing.T) {
	cf := NewConfig()
	src, _ := NewCore("src", cf)
	src.Prjns[Out].SetWtsFunc(func(si, ri int) int { return si%7 - 3 })
	dir := t.TempDir()
	for _, fn := range []string{"wts.json", "wts.wts.gz"} {
		fnm := gi.FileName(filepath.Join(dir, fn))
		if err := src.SaveWtsJSON(fnm); err != nil {
			t.Fatal(err)
		}
		dst, _ := NewCore("dst", cf)
		dst.Prjns[Out].SetWtsFunc(func(si, ri int) int { return 0 })
		if err := dst.OpenWtsJSON(fnm); err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(src.Prjns[Out].Wt, dst.Prjns[Out].Wt) {
			t.Errorf("%s: output weights differ after round trip", fn)
		}
	}
}

func TestFbString(t *testing.T) {
	cf := NewConfig()
	cr, _ := NewCore("fb", cf)
	if err := cr.SetFbString("1 2"); err == nil {
		t.Errorf("short feedback matrix accepted")
	}
	s := cr.FbString()
	copy(cr.Fb, make([]int16, len(cr.Fb)))
	if err := cr.SetFbString(s); err != nil {
		t.Fatal(err)
	}
	if cr.FbString() != s {
		t.Errorf("feedback string round trip")
	}

	bad := strings.Fields(s)
	bad[len(bad)-1] = "300"
	err := cr.SetFbString(strings.Join(bad, " "))
	if err == nil {
		t.Fatalf("feedback value 300 accepted in %d bits", WtBits)
	}
	if !IsKind(err, ConfigInvalid) {
		t.Errorf("out of range feedback: %v, expected ConfigInvalid", err)
	}
	if cr.FbString() != s {
		t.Errorf("feedback matrix modified by a rejected load")
	}
	bad[len(bad)-1] = "-129"
	if err := cr.SetFbString(strings.Join(bad, " ")); err == nil {
		t.Errorf("feedback value -129 accepted in %d bits", WtBits)
	}
	if err := cr.CheckBounds(); err != nil {
		t.Errorf("bounds after rejected loads: %v", err)
	}
}
