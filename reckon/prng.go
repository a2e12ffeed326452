// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reckon

import (
	"github.com/emer/reckon/lfsr"
	"github.com/goki/ki/kit"
	"github.com/pkg/errors"
)

// StreamIDs are the independent random streams of the core
type StreamIDs int32

//go:generate stringer -type=StreamIDs

var KiT_StreamIDs = kit.Enums.AddEnum(StreamIDsN, kit.NotBitFlag, nil)

func (ev StreamIDs) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *StreamIDs) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// StrmNeur rounds the recurrent neuron update
	StrmNeur StreamIDs = iota

	// StrmONeur rounds the output neuron update
	StrmONeur

	// StrmTInp rounds input trace decay
	StrmTInp

	// StrmTRec rounds recurrent trace decay
	StrmTRec

	// StrmTOut rounds output trace decay
	StrmTOut

	// StrmWInp initializes input weights
	StrmWInp

	// StrmWRec initializes recurrent weights
	StrmWRec

	// StrmWOut initializes output weights and then the feedback matrix
	StrmWOut

	// StrmNoise supplies membrane noise, learning-rate and regularization
	// noise bits, and weight-update rounding
	StrmNoise

	StreamIDsN
)

// StreamWidths are the register widths of each stream, set by the seed widths
var StreamWidths = [StreamIDsN]int{30, 15, 30, 30, 30, 25, 25, 22, 17}

// SeedName returns the header name of the seed of this stream
func (ev StreamIDs) SeedName() string {
	switch ev {
	case StrmNeur:
		return "SEED_STRND_NEUR"
	case StrmONeur:
		return "SEED_STRND_ONEUR"
	case StrmTInp:
		return "SEED_STRND_TINP"
	case StrmTRec:
		return "SEED_STRND_TREC"
	case StrmTOut:
		return "SEED_STRND_TOUT"
	case StrmWInp:
		return "SEED_INP"
	case StrmWRec:
		return "SEED_REC"
	case StrmWOut:
		return "SEED_OUT"
	}
	return "SEED_NOISE_NEUR"
}

// TraceStream returns the trace rounding stream of matrix m
func TraceStream(m Matrices) StreamIDs {
	return StrmTInp + StreamIDs(m)
}

// InitStream returns the weight init stream of matrix m
func InitStream(m Matrices) StreamIDs {
	return StrmWInp + StreamIDs(m)
}

// Bank is the set of random streams, one per StreamIDs.  Each stream owns
// its state, and is only reseeded by Init / Reset.
type Bank struct {
	Strms [StreamIDsN]lfsr.Stream `desc:"the streams"`
}

// Init configures all the streams from the config seeds
func (bk *Bank) Init(cf *Config) error {
	for id := StrmNeur; id < StreamIDsN; id++ {
		err := bk.Strms[id].Init(StreamWidths[id], uint32(cf.Seed(id)))
		if err != nil {
			return errors.Wrapf(NewError(ConfigInvalid, id.SeedName(), "%v", err), "Bank.Init")
		}
	}
	return nil
}

// Reset reloads all the seeds
func (bk *Bank) Reset() {
	for id := range bk.Strms {
		bk.Strms[id].Reset()
	}
}

// Strm returns the given stream
func (bk *Bank) Strm(id StreamIDs) *lfsr.Stream {
	return &bk.Strms[id]
}

// NDraws returns the number of draws of each stream since the last reset
func (bk *Bank) NDraws() [StreamIDsN]int64 {
	var nd [StreamIDsN]int64
	for id := range bk.Strms {
		nd[id] = bk.Strms[id].NDraw
	}
	return nd
}
