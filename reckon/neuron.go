// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reckon

import "fmt"

// Register widths of the datapath
const (
	// WtBits is the width of a weight word
	WtBits = 8

	// TrBits is the width of a trace word
	TrBits = 8

	// UBits is the width of the recurrent membrane potential
	UBits = 16

	// YBits is the width of the output neuron potential
	YBits = 16

	// ErrFrac is the number of fractional bits of the output error,
	// probabilities and leak factors (Q0.8)
	ErrFrac = 8

	// ErrBits is the width of the error and learning signal registers
	ErrBits = 16
)

// reckon.Neuron holds the state of one recurrent neuron.  The membrane
// potential is on the recurrent weight scale (FpLocW.Rec fractional bits).
type Neuron struct {
	U     int32 `desc:"membrane potential"`
	Spk   bool  `desc:"spiked on the current tick"`
	Prv   bool  `desc:"spiked on the previous tick -- drives recurrent and output updates"`
	Refr  bool  `desc:"refractory on the next tick"`
	Band  int8  `desc:"threshold band 0..3, or -1 for none"`
	Psi   int32 `desc:"pseudo-derivative computed on the current tick"`
	Noise int32 `desc:"membrane noise drawn at the end of the previous tick"`
	Cnt   int32 `desc:"number of spikes in the current sequence -- the observed rate for regularization"`
}

// OutNeuron holds the state of one output neuron, with FpLocW.Out fractional bits
type OutNeuron struct {
	Y int32 `desc:"output potential"`
}

var NeuronVars = []string{"U", "Spk", "Prv", "Refr", "Band", "Psi", "Noise", "Cnt"}

var NeuronVarsMap map[string]int

func init() {
	NeuronVarsMap = make(map[string]int, len(NeuronVars))
	for i, v := range NeuronVars {
		NeuronVarsMap[v] = i
	}
}

func (nrn *Neuron) VarNames() []string {
	return NeuronVars
}

// VarByIndex returns variable using index (0 = first variable in NeuronVars list)
func (nrn *Neuron) VarByIndex(idx int) float32 {
	b2f := func(b bool) float32 {
		if b {
			return 1
		}
		return 0
	}
	switch idx {
	case 0:
		return float32(nrn.U)
	case 1:
		return b2f(nrn.Spk)
	case 2:
		return b2f(nrn.Prv)
	case 3:
		return b2f(nrn.Refr)
	case 4:
		return float32(nrn.Band)
	case 5:
		return float32(nrn.Psi)
	case 6:
		return float32(nrn.Noise)
	case 7:
		return float32(nrn.Cnt)
	}
	return 0
}

// VarByName returns variable by name, or error
func (nrn *Neuron) VarByName(varNm string) (float32, error) {
	i, ok := NeuronVarsMap[varNm]
	if !ok {
		return 0, fmt.Errorf("Neuron VarByName: variable name: %v not valid", varNm)
	}
	return nrn.VarByIndex(i), nil
}

// InitActs zeroes the dynamic state, keeping the band assignment
func (nrn *Neuron) InitActs() {
	band := nrn.Band
	*nrn = Neuron{}
	nrn.Band = band
}
