// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lfsr

import "testing"

func TestPeriod(t *testing.T) {
	for _, w := range []int{5, 8, 12, 15, 16, 17, 22} {
		st, err := NewStream(w, 1)
		if err != nil {
			t.Fatal(err)
		}
		per := (1 << uint(w)) - 1
		seen := make([]bool, per+1)
		for i := 0; i < per; i++ {
			s := st.Step()
			if s == 0 || int(s) > per {
				t.Fatalf("width %d: state %d out of range at step %d", w, s, i)
			}
			if seen[s] {
				t.Fatalf("width %d: state %d repeated at step %d, period < %d", w, s, i, per)
			}
			seen[s] = true
		}
		if st.State != st.Seed {
			t.Errorf("width %d: did not return to seed after %d steps", w, per)
		}
	}
}

func TestSeed(t *testing.T) {
	if _, err := NewStream(15, 0x8000); err == nil {
		t.Errorf("seed truncating to zero should be rejected")
	}
	if _, err := NewStream(33, 1); err == nil {
		t.Errorf("unsupported width should be rejected")
	}
	st, err := NewStream(15, 0xF4F4)
	if err != nil {
		t.Fatal(err)
	}
	if st.Seed != 0x74F4 {
		t.Errorf("seed not truncated to width: %#x", st.Seed)
	}
}

func TestDraw(t *testing.T) {
	a, _ := NewStream(30, 0x3F3FF3F3)
	b, _ := NewStream(30, 0x3F3FF3F3)
	for i := 0; i < 1000; i++ {
		va := a.Draw(8)
		if va >= 256 {
			t.Fatalf("draw(8) out of range: %d", va)
		}
		if vb := b.Draw(8); va != vb {
			t.Fatalf("same seed streams diverged at draw %d", i)
		}
	}
	if a.NDraw != 1000 {
		t.Errorf("NDraw: %d", a.NDraw)
	}
	a.Reset()
	b.Reset()
	if a.Draw(40) != b.Draw(40) {
		t.Errorf("reset streams differ")
	}
	w, _ := NewStream(15, 1)
	v := w.Draw(20)
	if v&0x1F != 0 {
		t.Errorf("wide draw should fill high bits only: %#x", v)
	}
	for i := 0; i < 1000; i++ {
		s := w.Signed(5)
		if s < -16 || s > 15 {
			t.Fatalf("signed(5) out of range: %d", s)
		}
	}
}

func TestUniform(t *testing.T) {
	st, _ := NewStream(25, 0xF0F0)
	const n = 1 << 16
	var cnt [16]int
	for i := 0; i < n; i++ {
		cnt[st.Draw(4)]++
	}
	for v, c := range cnt {
		if c < n/16-n/64 || c > n/16+n/64 {
			t.Errorf("value %d drawn %d times out of %d", v, c, n)
		}
	}
}
