// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package fixpt provides bit-width exact signed fixed-point arithmetic:
saturation to a given register width, saturating addition, and right shifts
(rescaling between fractional-bit locations) under either truncation or
stochastic rounding.

All values are carried in widened int64 registers together with an explicit
width, and saturate on store, not on compute.  Stochastic rounding draws its
dither from a Dither source (typically an lfsr.Stream), and rounds up with a
probability exactly equal to the dropped fractional magnitude.
*/
package fixpt

import "github.com/goki/ki/kit"

// MaxShift is the largest right shift applied in one step: larger shifts
// leave only the sign of any value carried in an int64 register.
const MaxShift = 62

// Dither is a source of uniform random bits used for stochastic rounding.
// Draw returns n uniformly distributed low-order bits, and is called exactly
// once per rounding event.
type Dither interface {
	Draw(n int) uint64
}

// RoundModes are the rounding modes for dropped fractional bits
type RoundModes int32

//go:generate stringer -type=RoundModes

var KiT_RoundModes = kit.Enums.AddEnum(RoundModesN, kit.NotBitFlag, nil)

func (ev RoundModes) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *RoundModes) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The rounding modes
const (
	// Truncate drops fractional bits (arithmetic shift, i.e., floor)
	Truncate RoundModes = iota

	// Stochastic rounds up with probability equal to the dropped fraction
	Stochastic

	RoundModesN
)

// Max returns the largest value representable in a signed register of given width
func Max(width int) int64 {
	return int64(1)<<(width-1) - 1
}

// Min returns the smallest value representable in a signed register of given width
func Min(width int) int64 {
	return -(int64(1) << (width - 1))
}

// Sat saturates x to a signed register of given width, returning the stored
// value and true if saturation occurred.
func Sat(x int64, width int) (int64, bool) {
	if mx := Max(width); x > mx {
		return mx, true
	}
	if mn := Min(width); x < mn {
		return mn, true
	}
	return x, false
}

// SatAdd adds x and y and saturates the sum to given width.
func SatAdd(x, y int64, width int) (int64, bool) {
	return Sat(x+y, width)
}

// Shift shifts x right by n bits, rounding the dropped bits according to mode.
// A negative n is a left shift (no rounding needed).  Under Stochastic
// mode, d is drawn from only when the dropped fraction is non-zero.
func Shift(x int64, n int, mode RoundModes, d Dither) int64 {
	if n <= 0 {
		return x << uint(-n)
	}
	if n > MaxShift {
		n = MaxShift
	}
	fl := x >> uint(n)
	if mode != Stochastic || d == nil {
		return fl
	}
	frac := uint64(x - fl<<uint(n))
	if frac == 0 {
		return fl
	}
	if d.Draw(n) < frac {
		fl++
	}
	return fl
}

// Mul returns the product of a (fa fractional bits) and b (fb fractional bits)
// expressed with fout fractional bits.
func Mul(a, b int64, fa, fb, fout int, mode RoundModes, d Dither) int64 {
	return Shift(a*b, fa+fb-fout, mode, d)
}

// Madd is the multiply-add of the datapath: acc (fout fractional bits) plus
// the rescaled product a * b, saturated to width.
func Madd(acc, a, b int64, fa, fb, fout, width int, mode RoundModes, d Dither) (int64, bool) {
	return SatAdd(acc, Mul(a, b, fa, fb, fout, mode, d), width)
}

// ToFloat32 returns the real value of x with given fractional bits,
// for reporting only.
func ToFloat32(x int64, frac int) float32 {
	return float32(x) / float32(int64(1)<<uint(frac))
}
