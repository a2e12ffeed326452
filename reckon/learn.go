// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reckon

import "github.com/emer/reckon/fixpt"

///////////////////////////////////////////////////////////////////////
//  learn.go contains the error, learning signal and weight update

// Log2eQ8 is log2(e) in Q0.8, converting natural exponents to base 2
const Log2eQ8 = 369

// Exp2Q16 returns 2^(x / 2^frac) in Q.16 for x <= 0, using a linear
// (Mitchell) approximation of the fractional part.
func Exp2Q16(x int64, frac int) int64 {
	ip := x >> uint(frac)
	fp := x - ip<<uint(frac)
	if -ip >= 31 {
		return 0
	}
	mant := int64(1)<<16 + (fp<<16)>>uint(frac)
	return mant >> uint(-ip)
}

// SoftMax computes the probabilities of potentials y (frac fractional bits)
// in Q0.8, into p.  A single output is paired with an implicit zero
// potential, which makes it a logistic sigmoid.  Integer only.
func SoftMax(y []int32, frac int, p []int32) {
	zs := y
	if len(y) == 1 {
		zs = []int32{y[0], 0}
	}
	mx := zs[0]
	for _, z := range zs {
		if z > mx {
			mx = z
		}
	}
	ex := make([]int64, len(zs))
	var sum int64
	for i, z := range zs {
		a := ((int64(z) - int64(mx)) * Log2eQ8) >> ErrFrac
		ex[i] = Exp2Q16(a, frac)
		sum += ex[i]
	}
	for i := range p {
		p[i] = int32((ex[i]<<ErrFrac + sum/2) / sum)
	}
}

// OutErr computes the output error in Q0.8 into Err: softmax(y) - onehot(label)
// for classification, or y - target rescaled to Q0.8 for regression.
func (cr *Core) OutErr(tgt *Target) {
	cf := &cr.Cfg
	if cf.Regression {
		for o := range cr.Outs {
			var tv int64
			if o < len(tgt.Vals) {
				tv = int64(tgt.Vals[o])
			}
			d := fixpt.Shift(int64(cr.Outs[o].Y)-tv, cf.FpLocW.Out-ErrFrac, fixpt.Truncate, nil)
			e, sat := fixpt.Sat(d, ErrBits)
			cr.Sats.Add(SatErr, sat)
			cr.Err[o] = int32(e)
		}
		return
	}
	cr.CalcProbs()
	one := int32(1) << ErrFrac
	for o := range cr.Outs {
		e := cr.Prob[o]
		if len(cr.Outs) == 1 {
			if tgt.Label == 1 {
				e -= one
			}
		} else if o == tgt.Label {
			e -= one
		}
		cr.Err[o] = e
	}
}

// LearnSig projects the output error through the feedback matrix into the
// learning signal of each recurrent neuron: L_i = (sum_o B_oi e_o) >> LearnSigScale
func (cr *Core) LearnSig() {
	cf := &cr.Cfg
	st := cr.Bank.Strm(StrmNoise)
	nout := len(cr.Outs)
	for i := range cr.Neurons {
		var sum int64
		for o := 0; o < nout; o++ {
			sum += int64(cr.Fb[i*nout+o]) * int64(cr.Err[o])
		}
		l, sat := fixpt.Sat(fixpt.Shift(sum, cf.LearnSigScale, cr.rm, st), ErrBits)
		cr.Sats.Add(SatErr, sat)
		cr.LSig[i] = int32(l)
	}
}

// Learn runs one learning event.  With a target, the error and learning
// signals are computed and every matrix takes its e-prop step; firing-rate
// regularization applies at every learning event.  All rounding and noise
// bits come from the noise stream.
func (cr *Core) Learn(tgt *Target) {
	cr.NLearn++
	hasErr := tgt != nil
	if hasErr {
		cr.NErr++
		cr.OutErr(tgt)
		cr.LearnSig()
	} else {
		for i := range cr.Err {
			cr.Err[i] = 0
		}
		for i := range cr.LSig {
			cr.LSig[i] = 0
		}
	}
	for m := Inp; m < MatricesN; m++ {
		cr.DWt(m, hasErr)
	}
}

// DWt updates the weights of matrix m:
// w <- sat(w - sig * tr * 2^-LrP [- noise * sig * tr * 2^-(LrP+LrR)] - regul),
// where sig is the output error for the output matrix and the learning
// signal of the receiver otherwise.  The regularization term does not
// depend on the trace, so it reaches every weight onto the receiver.
func (cr *Core) DWt(m Matrices, hasErr bool) {
	cf := &cr.Cfg
	st := cr.Bank.Strm(StrmNoise)
	pj := &cr.Prjns[m]
	lrp := cf.LrP.Get(m)
	lrr := cf.LrR.Get(m)
	regOn := cf.RegulOn(m)
	kr, kp := cf.RegulK(m)
	site := SatWt(m)
	for si := 0; si < pj.NSend; si++ {
		for ri := 0; ri < pj.NRecv; ri++ {
			if pj.IsSelf(si, ri) {
				continue
			}
			idx := pj.Idx(si, ri)
			tr := int64(pj.Tr[idx])
			if !regOn && (tr == 0 || !hasErr) {
				continue
			}
			var dw int64
			if hasErr && tr != 0 {
				var sig int64
				if m == Out {
					sig = int64(cr.Err[ri])
				} else {
					sig = int64(cr.LSig[ri])
				}
				if p := sig * tr; p != 0 {
					dw = fixpt.Shift(p, lrp, cr.rm, st)
					if lrr > 0 && st.Bit() {
						dw += fixpt.Shift(p, lrp+lrr, cr.rm, st)
					}
				}
			}
			if regOn {
				dw += cr.RegulTerm(ri, kr, kp)
			}
			if dw == 0 {
				continue
			}
			w, sat := fixpt.Sat(int64(pj.Wt[idx])-dw, WtBits)
			cr.Sats.Add(site, sat)
			pj.Wt[idx] = int16(w)
		}
	}
}

// RegulTerm returns the regularization step of any weight onto recurrent
// neuron ri, pushing its observed spike count toward RegulF0:
// (d * 2^RegulKMul) >> (kp + kr * noise), with d = sign(f - F0) in
// linear mode and f - F0 in squared mode.
func (cr *Core) RegulTerm(ri int, kr, kp int) int64 {
	cf := &cr.Cfg
	d := int64(cr.Neurons[ri].Cnt) - int64(cf.RegulF0)
	if cf.RegulMode == RegulLinear {
		switch {
		case d > 0:
			d = 1
		case d < 0:
			d = -1
		}
	}
	if d == 0 {
		return 0
	}
	st := cr.Bank.Strm(StrmNoise)
	p := d << uint(cf.RegulKMul)
	sh := kp
	if kr > 0 && st.Bit() {
		sh += kr
	}
	return fixpt.Shift(p, sh, cr.rm, st)
}
