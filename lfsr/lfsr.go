// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package lfsr provides maximal-length linear feedback shift register streams,
which are the only source of randomness in the fixed-point datapath.

Each Stream owns its state, is seeded explicitly, and advances exactly once
per Draw.  Streams use the Galois configuration, with feedback polynomials
taken from the standard table of maximal-length taps, so that a register of
width w visits every non-zero state once per period of 2^w - 1 draws.
*/
package lfsr

import (
	"sort"

	"github.com/pkg/errors"
)

// Taps are the maximal-length feedback taps per register width,
// as 1-based bit positions of the characteristic polynomial.
var Taps = map[int][]int{
	3:  {3, 2},
	4:  {4, 3},
	5:  {5, 3},
	6:  {6, 5},
	7:  {7, 6},
	8:  {8, 6, 5, 4},
	9:  {9, 5},
	10: {10, 7},
	11: {11, 9},
	12: {12, 6, 4, 1},
	13: {13, 4, 3, 1},
	14: {14, 5, 3, 1},
	15: {15, 14},
	16: {16, 15, 13, 4},
	17: {17, 14},
	18: {18, 11},
	19: {19, 6, 2, 1},
	20: {20, 17},
	21: {21, 19},
	22: {22, 21},
	23: {23, 18},
	24: {24, 23, 22, 17},
	25: {25, 22},
	26: {26, 6, 2, 1},
	27: {27, 5, 2, 1},
	28: {28, 25},
	29: {29, 27},
	30: {30, 6, 4, 1},
	31: {31, 28},
	32: {32, 22, 2, 1},
}

// Widths returns the sorted list of supported register widths
func Widths() []int {
	ws := make([]int, 0, len(Taps))
	for w := range Taps {
		ws = append(ws, w)
	}
	sort.Ints(ws)
	return ws
}

// Mask returns the Galois feedback mask for given width, or 0 if the width
// is not supported.
func Mask(width int) uint32 {
	tp, ok := Taps[width]
	if !ok {
		return 0
	}
	var m uint32
	for _, t := range tp {
		m |= 1 << uint(t-1)
	}
	return m
}

// Stream is one seeded Galois LFSR of a given register width
type Stream struct {
	Width int    `desc:"register width in bits"`
	Seed  uint32 `desc:"seed loaded into the register on Init / Reset"`
	State uint32 `inactive:"+" desc:"current register state -- never zero"`
	Fb    uint32 `view:"-" desc:"feedback mask for Width"`
	NDraw int64  `inactive:"+" desc:"number of draws since last Reset"`
}

// NewStream returns a new stream of given width and seed
func NewStream(width int, seed uint32) (*Stream, error) {
	st := &Stream{}
	err := st.Init(width, seed)
	return st, err
}

// Init configures the stream width and seed and resets the register.
// The seed is truncated to the register width, and must be non-zero
// after truncation.
func (st *Stream) Init(width int, seed uint32) error {
	fb := Mask(width)
	if fb == 0 {
		return errors.Errorf("lfsr.Stream: width %d not supported", width)
	}
	st.Width = width
	st.Fb = fb
	st.Seed = seed & st.WidthMask()
	if st.Seed == 0 {
		return errors.Errorf("lfsr.Stream: seed %#x is zero in %d bits -- register would lock", seed, width)
	}
	st.Reset()
	return nil
}

// WidthMask returns the mask of the Width low-order bits
func (st *Stream) WidthMask() uint32 {
	if st.Width >= 32 {
		return 0xFFFFFFFF
	}
	return uint32(1)<<uint(st.Width) - 1
}

// Reset reloads the seed
func (st *Stream) Reset() {
	st.State = st.Seed
	st.NDraw = 0
}

// Step advances the register once and returns the new state
func (st *Stream) Step() uint32 {
	lsb := st.State & 1
	st.State >>= 1
	if lsb != 0 {
		st.State ^= st.Fb
	}
	return st.State
}

// Draw advances the register once and returns n uniform bits.
// For n beyond the register width, the available bits are placed in the
// high-order positions, so a stochastic shift by n > Width only resolves
// dropped fractions down to 2^(n-Width).
func (st *Stream) Draw(n int) uint64 {
	st.NDraw++
	s := uint64(st.Step())
	if n <= 0 {
		return 0
	}
	if n >= st.Width {
		return s << uint(n-st.Width)
	}
	return s & (uint64(1)<<uint(n) - 1)
}

// Bit draws one bit
func (st *Stream) Bit() bool {
	return st.Draw(1) != 0
}

// Signed draws a two's complement value of n bits, in [-2^(n-1), 2^(n-1)-1]
func (st *Stream) Signed(n int) int64 {
	v := int64(st.Draw(n))
	if v >= int64(1)<<uint(n-1) {
		v -= int64(1) << uint(n)
	}
	return v
}
