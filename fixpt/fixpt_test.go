// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fixpt

import (
	"math"
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	"github.com/emer/reckon/lfsr"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = float32(1.0e-6)

// constDither always returns the same bits
type constDither uint64

func (cd constDither) Draw(n int) uint64 { return uint64(cd) & (uint64(1)<<uint(n) - 1) }

// countDither counts draws
type countDither struct {
	n int
}

func (cd *countDither) Draw(n int) uint64 { cd.n++; return 0 }

func TestSat(t *testing.T) {
	tsts := []struct {
		x     int64
		w     int
		y     int64
		isSat bool
	}{
		{127, 8, 127, false},
		{128, 8, 127, true},
		{-128, 8, -128, false},
		{-129, 8, -128, true},
		{40000, 16, 32767, true},
		{-40000, 16, -32768, true},
		{-5, 5, -5, false},
		{16, 5, 15, true},
	}
	for i, ts := range tsts {
		y, s := Sat(ts.x, ts.w)
		if y != ts.y || s != ts.isSat {
			t.Errorf("Sat %d: x: %d w: %d got: %d %v want: %d %v", i, ts.x, ts.w, y, s, ts.y, ts.isSat)
		}
	}
}

// TestSatAddAssoc checks associativity whenever no intermediate saturates
func TestSatAddAssoc(t *testing.T) {
	const w = 8
	for x := Min(w); x <= Max(w); x += 3 {
		for y := Min(w); y <= Max(w); y += 5 {
			for z := Min(w); z <= Max(w); z += 7 {
				xy, s1 := SatAdd(x, y, w)
				yz, s2 := SatAdd(y, z, w)
				l, s3 := SatAdd(xy, z, w)
				r, s4 := SatAdd(x, yz, w)
				if s1 || s2 || s3 || s4 {
					continue
				}
				if l != r {
					t.Fatalf("not associative: %d %d %d: %d != %d", x, y, z, l, r)
				}
			}
		}
	}
}

func TestShiftTruncate(t *testing.T) {
	tsts := []struct {
		x int64
		n int
		y int64
	}{
		{17, 2, 4},
		{-17, 2, -5},
		{16, 2, 4},
		{3, -2, 12},
		{-1, 8, -1},
		{255, 8, 0},
	}
	for i, ts := range tsts {
		if y := Shift(ts.x, ts.n, Truncate, nil); y != ts.y {
			t.Errorf("Shift %d: %d >> %d = %d, want %d", i, ts.x, ts.n, y, ts.y)
		}
	}
}

func TestShiftStochastic(t *testing.T) {
	// dropped fraction 1/4: dither 0 rounds up, dither >= 1 does not
	if y := Shift(17, 2, Stochastic, constDither(0)); y != 5 {
		t.Errorf("dither 0 should round up: %d", y)
	}
	if y := Shift(17, 2, Stochastic, constDither(1)); y != 4 {
		t.Errorf("dither 1 should not round up: %d", y)
	}
	if y := Shift(-17, 2, Stochastic, constDither(3)); y != -5 {
		t.Errorf("-17 >> 2 dither 3: %d", y)
	}
	if y := Shift(-17, 2, Stochastic, constDither(0)); y != -4 {
		t.Errorf("-17 >> 2 dither 0: %d", y)
	}
	cd := &countDither{}
	Shift(16, 2, Stochastic, cd)
	Shift(0, 8, Stochastic, cd)
	Shift(3, -1, Stochastic, cd)
	if cd.n != 0 {
		t.Errorf("exact shifts should not draw: %d draws", cd.n)
	}
	Shift(17, 2, Stochastic, cd)
	if cd.n != 1 {
		t.Errorf("inexact shift should draw once: %d draws", cd.n)
	}
}

// TestStochasticBias checks that the mean of stochastically rounded values
// tracks the true mean within 1/sqrt(N)
func TestStochasticBias(t *testing.T) {
	st, err := lfsr.NewStream(30, 0x3F5FF5F5)
	if err != nil {
		t.Fatal(err)
	}
	rnd := rand.New(rand.NewSource(42))
	const n = 1000000
	const frac = 8
	sumTrue := 0.0
	sumRnd := 0.0
	for i := 0; i < n; i++ {
		x := rnd.Int63n(1<<16) - 1<<15
		sumTrue += float64(x) / (1 << frac)
		sumRnd += float64(Shift(x, frac, Stochastic, st))
	}
	dif := math.Abs(sumRnd-sumTrue) / n
	if dif > 3/math.Sqrt(n) {
		t.Errorf("stochastic rounding bias: %g > %g", dif, 3/math.Sqrt(n))
	}
	truncDif := 0.0
	for i := 0; i < 1000; i++ {
		x := rnd.Int63n(1<<16) - 1<<15
		truncDif += float64(x)/(1<<frac) - float64(Shift(x, frac, Truncate, nil))
	}
	if truncDif/1000 < 0.4 {
		t.Errorf("truncation should be biased down by about 0.5: %g", truncDif/1000)
	}
}

func TestMadd(t *testing.T) {
	// 1.5 (Q.3) * 0.5 (Q.8) + 1.0 (Q.4) = 1.75 in Q.4
	y, s := Madd(16, 12, 128, 3, 8, 4, 16, Truncate, nil)
	if y != 28 || s {
		t.Errorf("Madd: %d %v", y, s)
	}
	y, s = Madd(32000, 127, 127, 0, 0, 0, 16, Truncate, nil)
	if y != Max(16) || !s {
		t.Errorf("Madd should saturate: %d %v", y, s)
	}
	f := ToFloat32(28, 4)
	if math32.Abs(f-1.75) > difTol {
		t.Errorf("ToFloat32: %g", f)
	}
}

// TestShiftBeyondDither checks the rounding resolution when the shift is
// wider than the dither register: the register bits dither the high-order
// part of the dropped fraction, and the bits below it never round up.
func TestShiftBeyondDither(t *testing.T) {
	st, err := lfsr.NewStream(17, 0x00FF0)
	if err != nil {
		t.Fatal(err)
	}
	const n = 100000
	ups := 0
	for i := 0; i < n; i++ {
		ups += int(Shift(127, 24, Stochastic, st))
	}
	if ups != 0 {
		t.Errorf("fraction below the 17-bit dither resolution rounded up %d times", ups)
	}
	ups = 0
	for i := 0; i < n; i++ {
		ups += int(Shift(1<<23, 24, Stochastic, st))
	}
	if p := float64(ups) / n; p < 0.48 || p > 0.52 {
		t.Errorf("half fraction at 24-bit shift rounded up with p = %g", p)
	}
}
