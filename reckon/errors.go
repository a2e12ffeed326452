// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reckon

import (
	"fmt"

	"github.com/goki/ki/kit"
	"github.com/pkg/errors"
)

// ErrKinds are the kinds of errors surfaced by the core and its controller
type ErrKinds int32

//go:generate stringer -type=ErrKinds

var KiT_ErrKinds = kit.Enums.AddEnum(ErrKindsN, kit.NotBitFlag, nil)

func (ev ErrKinds) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *ErrKinds) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// ConfigInvalid is a range violation, fixed-point inversion, or a neuron
	// count exceeding the platform maximum, detected when loading the config.
	ConfigInvalid ErrKinds = iota

	// ProtocolViolation is a malformed sample from the driver: shape mismatch,
	// non-binary input, or a label outside its legal range.  The sample is
	// rejected before any tick executes.
	ProtocolViolation

	// InternalInvariant is a weight or trace memory value out of its declared
	// bounds.  Always fatal.
	InternalInvariant

	ErrKindsN
)

// Error is an error of a given kind, optionally naming the offending field
type Error struct {
	Kind  ErrKinds
	Field string
	Msg   string
}

func (er *Error) Error() string {
	if er.Field == "" {
		return fmt.Sprintf("reckon %v: %s", er.Kind, er.Msg)
	}
	return fmt.Sprintf("reckon %v: %s: %s", er.Kind, er.Field, er.Msg)
}

// NewError returns a new error of given kind
func NewError(kind ErrKinds, field string, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Field: field, Msg: fmt.Sprintf(format, args...)}
}

// IsKind returns true if err is, or wraps, an *Error of given kind
func IsKind(err error, kind ErrKinds) bool {
	var er *Error
	if errors.As(err, &er) {
		return er.Kind == kind
	}
	return false
}

///////////////////////////////////////////////////////////////////////
//  Saturation

// SatSites are the places in the datapath where saturation is counted
type SatSites int32

//go:generate stringer -type=SatSites

var KiT_SatSites = kit.Enums.AddEnum(SatSitesN, kit.NotBitFlag, nil)

func (ev SatSites) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *SatSites) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// SatNeur is recurrent membrane potential
	SatNeur SatSites = iota

	// SatOut is output neuron potential
	SatOut

	SatTrInp
	SatTrRec
	SatTrOut
	SatWtInp
	SatWtRec
	SatWtOut

	// SatErr is the error and learning signal path
	SatErr

	SatSitesN
)

// SatTr returns the trace saturation site for given matrix
func SatTr(m Matrices) SatSites {
	return SatTrInp + SatSites(m)
}

// SatWt returns the weight saturation site for given matrix
func SatWt(m Matrices) SatSites {
	return SatWtInp + SatSites(m)
}

// SatCounts counts saturation events per site.  Saturation is never fatal.
type SatCounts [SatSitesN]int64

// Add increments the count for site if sat is true
func (sc *SatCounts) Add(site SatSites, sat bool) {
	if sat {
		sc[site]++
	}
}

// Total returns the total over all sites
func (sc *SatCounts) Total() int64 {
	var tot int64
	for _, n := range sc {
		tot += n
	}
	return tot
}

// Reset sets all counts to zero
func (sc *SatCounts) Reset() {
	*sc = SatCounts{}
}

// String returns a report of the non-zero counts
func (sc *SatCounts) String() string {
	str := ""
	for i, n := range sc {
		if n == 0 {
			continue
		}
		str += fmt.Sprintf("%v: %d ", SatSites(i), n)
	}
	if str == "" {
		return "none"
	}
	return str
}
