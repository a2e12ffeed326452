// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reckon

import "github.com/goki/ki/kit"

// Matrices are the three weight matrices of the core
type Matrices int32

//go:generate stringer -type=Matrices

var KiT_Matrices = kit.Enums.AddEnum(MatricesN, kit.NotBitFlag, nil)

func (ev Matrices) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Matrices) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// Inp is the input to recurrent matrix
	Inp Matrices = iota

	// Rec is the recurrent to recurrent matrix
	Rec

	// Out is the recurrent to output matrix
	Out

	MatricesN
)

// MatVals holds one configuration value per weight matrix
type MatVals struct {
	Inp int `desc:"input to recurrent matrix"`
	Rec int `desc:"recurrent to recurrent matrix"`
	Out int `desc:"recurrent to output matrix"`
}

// SetAll sets all the values
func (mv *MatVals) SetAll(inp, rec, out int) {
	mv.Inp, mv.Rec, mv.Out = inp, rec, out
}

// Ptr returns a pointer to the value for given matrix
func (mv *MatVals) Ptr(m Matrices) *int {
	switch m {
	case Rec:
		return &mv.Rec
	case Out:
		return &mv.Out
	}
	return &mv.Inp
}

// Get returns the value for given matrix
func (mv *MatVals) Get(m Matrices) int {
	return *mv.Ptr(m)
}

// Set sets the value for given matrix
func (mv *MatVals) Set(m Matrices, v int) {
	*mv.Ptr(m) = v
}
