// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reckon

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/emer/emergent/weights"
	"github.com/emer/reckon/fixpt"
	"github.com/emer/reckon/lfsr"
	"github.com/goki/ki/indent"
	"github.com/goki/mat32"
)

// reckon.Prjn is one weight matrix together with its eligibility traces.
// Synapses are stored sender-major: index = si * NRecv + ri.
// Words are held in int16 memory but are bounded to WtBits / TrBits.
type Prjn struct {
	Mat   Matrices `desc:"which matrix this is"`
	NSend int      `desc:"number of sending neurons (inputs, recurrent neurons)"`
	NRecv int      `desc:"number of receiving neurons (recurrent, output neurons)"`
	Wt    []int16  `desc:"weights, with FpLocW fractional bits"`
	Tr    []int16  `desc:"eligibility traces, with FpLocT fractional bits"`
}

// Build allocates the weight and trace memory
func (pj *Prjn) Build(mat Matrices, nsend, nrecv int) {
	pj.Mat = mat
	pj.NSend = nsend
	pj.NRecv = nrecv
	pj.Wt = make([]int16, nsend*nrecv)
	pj.Tr = make([]int16, nsend*nrecv)
}

// Idx returns the synapse index of sender si, receiver ri
func (pj *Prjn) Idx(si, ri int) int {
	return si*pj.NRecv + ri
}

// IsSelf returns true if the synapse connects a recurrent neuron to itself,
// which is always zero
func (pj *Prjn) IsSelf(si, ri int) bool {
	return pj.Mat == Rec && si == ri
}

// InitWts draws every weight uniformly over [-1, 1) in real units, i.e.,
// fpw+1 bit two's complement words, from the init stream of this matrix.
// Recurrent self-connections are zero and draw nothing.
func (pj *Prjn) InitWts(st *lfsr.Stream, fpw int) {
	for si := 0; si < pj.NSend; si++ {
		for ri := 0; ri < pj.NRecv; ri++ {
			idx := pj.Idx(si, ri)
			if pj.IsSelf(si, ri) {
				pj.Wt[idx] = 0
				continue
			}
			w, _ := fixpt.Sat(st.Signed(fpw+1), WtBits)
			pj.Wt[idx] = int16(w)
		}
	}
}

// InitTraces zeroes the traces
func (pj *Prjn) InitTraces() {
	for i := range pj.Tr {
		pj.Tr[i] = 0
	}
}

// SetWtsFunc initializes weights from given function of sender, receiver index
func (pj *Prjn) SetWtsFunc(wtFun func(si, ri int) int) {
	for si := 0; si < pj.NSend; si++ {
		for ri := 0; ri < pj.NRecv; ri++ {
			if pj.IsSelf(si, ri) {
				continue
			}
			w, _ := fixpt.Sat(int64(wtFun(si, ri)), WtBits)
			pj.Wt[pj.Idx(si, ri)] = int16(w)
		}
	}
}

// WtAbsSum returns the L1 norm of the weights, in raw units
func (pj *Prjn) WtAbsSum() int64 {
	var sum int64
	for _, w := range pj.Wt {
		if w < 0 {
			sum -= int64(w)
		} else {
			sum += int64(w)
		}
	}
	return sum
}

// CheckBounds returns an InternalInvariant error if any weight or trace
// word is outside its declared width
func (pj *Prjn) CheckBounds() error {
	for i, w := range pj.Wt {
		if int64(w) < fixpt.Min(WtBits) || int64(w) > fixpt.Max(WtBits) {
			return NewError(InternalInvariant, "W"+strings.ToUpper(pj.Mat.String()), "weight %d = %d out of %d-bit bounds", i, w, WtBits)
		}
		if pj.IsSelf(i/pj.NRecv, i%pj.NRecv) && w != 0 {
			return NewError(InternalInvariant, "WREC", "self weight %d is %d, not zero", i/pj.NRecv, w)
		}
	}
	for i, t := range pj.Tr {
		if int64(t) < fixpt.Min(TrBits) || int64(t) > fixpt.Max(TrBits) {
			return NewError(InternalInvariant, "T"+strings.ToUpper(pj.Mat.String()), "trace %d = %d out of %d-bit bounds", i, t, TrBits)
		}
	}
	return nil
}

///////////////////////////////////////////////////////////////////////
//  Weights

// WriteWtsJSON writes the weights from this matrix from the receiver-side perspective
// in a JSON text format, as real values with fpw fractional bits.  We build in the
// indentation logic to make it much faster and more efficient.
func (pj *Prjn) WriteWtsJSON(w io.Writer, depth int, from string, fpw int, meta map[string]string) {
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("{\n"))
	depth++
	w.Write(indent.TabBytes(depth))
	w.Write([]byte(fmt.Sprintf("\"From\": %q,\n", from)))
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("\"MetaData\": {\n"))
	depth++
	w.Write(indent.TabBytes(depth))
	w.Write([]byte(fmt.Sprintf("\"FpLocW\": \"%d\"", fpw)))
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		w.Write([]byte(",\n"))
		w.Write(indent.TabBytes(depth))
		w.Write([]byte(fmt.Sprintf("%q: %q", k, meta[k])))
	}
	w.Write([]byte("\n"))
	depth--
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("},\n"))
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("\"Rs\": [\n"))
	depth++
	for ri := 0; ri < pj.NRecv; ri++ {
		w.Write(indent.TabBytes(depth))
		w.Write([]byte("{\n"))
		depth++
		w.Write(indent.TabBytes(depth))
		w.Write([]byte(fmt.Sprintf("\"Ri\": %v,\n", ri)))
		w.Write(indent.TabBytes(depth))
		w.Write([]byte(fmt.Sprintf("\"N\": %v,\n", pj.NSend)))
		w.Write(indent.TabBytes(depth))
		w.Write([]byte("\"Si\": [ "))
		for si := 0; si < pj.NSend; si++ {
			w.Write([]byte(fmt.Sprintf("%v", si)))
			if si == pj.NSend-1 {
				w.Write([]byte(" "))
			} else {
				w.Write([]byte(", "))
			}
		}
		w.Write([]byte("],\n"))
		w.Write(indent.TabBytes(depth))
		w.Write([]byte("\"Wt\": [ "))
		for si := 0; si < pj.NSend; si++ {
			wt := fixpt.ToFloat32(int64(pj.Wt[pj.Idx(si, ri)]), fpw)
			w.Write([]byte(strconv.FormatFloat(float64(wt), 'g', weights.Prec, 32)))
			if si == pj.NSend-1 {
				w.Write([]byte(" "))
			} else {
				w.Write([]byte(", "))
			}
		}
		w.Write([]byte("]\n"))
		depth--
		w.Write(indent.TabBytes(depth))
		if ri == pj.NRecv-1 {
			w.Write([]byte("}\n"))
		} else {
			w.Write([]byte("},\n"))
		}
	}
	depth--
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("]\n"))
	depth--
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("}"))
}

// SetWts sets the weights for this matrix from weights.Prjn decoded values,
// which are real values converted to fpw fractional bits.
func (pj *Prjn) SetWts(pw *weights.Prjn, fpw int) error {
	var err error
	for i := range pw.Rs {
		pr := &pw.Rs[i]
		ri := pr.Ri
		if ri < 0 || ri >= pj.NRecv {
			err = fmt.Errorf("reckon.Prjn %v SetWts: receiver index %d out of range", pj.Mat, ri)
			continue
		}
		for si := range pr.Si {
			sidx := pr.Si[si]
			if sidx < 0 || sidx >= pj.NSend || si >= len(pr.Wt) {
				err = fmt.Errorf("reckon.Prjn %v SetWts: sender index %d out of range", pj.Mat, sidx)
				continue
			}
			if pj.IsSelf(sidx, ri) {
				continue
			}
			raw := int64(mat32.Round(pr.Wt[si] * float32(int64(1)<<uint(fpw))))
			wt, sat := fixpt.Sat(raw, WtBits)
			if sat {
				err = fmt.Errorf("reckon.Prjn %v SetWts: weight %g does not fit %d bits with %d fractional bits", pj.Mat, pr.Wt[si], WtBits, fpw)
			}
			pj.Wt[pj.Idx(sidx, ri)] = int16(wt)
		}
	}
	return err
}
