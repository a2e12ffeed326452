// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reckon

import (
	"fmt"
	"sort"
	"strings"
	"unsafe"

	"github.com/c2h5oh/datasize"
	"github.com/emer/emergent/timer"
	"github.com/emer/reckon/fixpt"
	"github.com/goki/ki/kit"
)

// Phases are the phases of one tick, which always execute in this order
type Phases int32

//go:generate stringer -type=Phases

var KiT_Phases = kit.Enums.AddEnum(PhasesN, kit.NotBitFlag, nil)

func (ev Phases) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Phases) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// PhaseInput latches inputs and previous spikes
	PhaseInput Phases = iota

	// PhaseNeur updates recurrent neurons
	PhaseNeur

	// PhaseOut updates output neurons
	PhaseOut

	// PhaseTrace updates eligibility traces
	PhaseTrace

	// PhaseLearn computes error, learning signals and weight updates
	PhaseLearn

	// PhaseNoise draws membrane noise for the next tick
	PhaseNoise

	PhasesN
)

// Target is the supervision known at a tick
type Target struct {
	Label int     `desc:"class label, for classification"`
	Vals  []int32 `desc:"target output potentials with FpLocW.Out fractional bits, for regression"`
}

// reckon.Core is the software model of the accelerator datapath: one recurrent
// spiking layer with its input and output matrices, eligibility traces,
// random feedback matrix and random streams.  It is single threaded and
// fully deterministic given its Config.
type Core struct {
	Nm         string              `desc:"name of the core"`
	Cfg        Config              `view:"-" desc:"frozen copy of the configuration loaded at bring-up"`
	Inp        []bool              `desc:"latched inputs of the current tick"`
	Neurons    []Neuron            `desc:"recurrent neurons"`
	Outs       []OutNeuron         `desc:"output neurons"`
	Prjns      [MatricesN]Prjn     `desc:"weight matrices with their traces"`
	Fb         []int16             `desc:"fixed random feedback matrix B, index i * NumOut + o, FpLocW.Out fractional bits"`
	Err        []int32             `desc:"output error of the last learning event, Q0.8"`
	Prob       []int32             `desc:"output probabilities of the last softmax, Q0.8"`
	LSig       []int32             `desc:"learning signal per recurrent neuron of the last learning event"`
	Bank       Bank                `desc:"random streams"`
	Time       Time                `desc:"timing state"`
	Phase      Phases              `inactive:"+" desc:"phase currently (or last) executing"`
	Sats       SatCounts           `desc:"saturation event counts"`
	NLearn     int64               `inactive:"+" desc:"number of learning events since reset"`
	NErr       int64               `inactive:"+" desc:"number of error-driven learning events since reset"`
	PhaseTimes [PhasesN]timer.Time `view:"-" desc:"timers for each phase"`
	Built      bool                `inactive:"+" desc:"true once Build has succeeded"`
	rm         fixpt.RoundModes
}

// NewCore returns a new core built from given configuration
func NewCore(name string, cf *Config) (*Core, error) {
	cr := &Core{Nm: name}
	err := cr.Build(cf)
	return cr, err
}

// Build copies the config, allocates all state, seeds the streams and
// initializes the weights.  The config must already be valid.
func (cr *Core) Build(cf *Config) error {
	if cf.NumInp < 1 || cf.NumRec < 1 || cf.NumOut < 1 {
		return NewError(ConfigInvalid, "", "Build: neuron counts must be positive: %d %d %d", cf.NumInp, cf.NumRec, cf.NumOut)
	}
	cr.Built = false
	cr.Cfg = *cf
	cr.rm = cf.RoundMode()
	nin, nrec, nout := cf.NumInp, cf.NumRec, cf.NumOut
	cr.Inp = make([]bool, nin)
	cr.Neurons = make([]Neuron, nrec)
	for i := range cr.Neurons {
		cr.Neurons[i].Band = -1
	}
	cr.Outs = make([]OutNeuron, nout)
	cr.Prjns[Inp].Build(Inp, nin, nrec)
	cr.Prjns[Rec].Build(Rec, nrec, nrec)
	cr.Prjns[Out].Build(Out, nrec, nout)
	cr.Fb = make([]int16, nrec*nout)
	cr.Err = make([]int32, nout)
	cr.Prob = make([]int32, nout)
	cr.LSig = make([]int32, nrec)
	if err := cr.Bank.Init(cf); err != nil {
		return err
	}
	cr.Time.SetFromConfig(cf)
	cr.InitWts()
	cr.Reset()
	cr.Built = true
	return nil
}

// InitWts reseeds the weight init streams and draws all weights, then the
// feedback matrix from the output stream after the output weights.
func (cr *Core) InitWts() {
	for m := Inp; m < MatricesN; m++ {
		st := cr.Bank.Strm(InitStream(m))
		st.Reset()
		cr.Prjns[m].InitWts(st, cr.Cfg.FpLocW.Get(m))
	}
	st := cr.Bank.Strm(StrmWOut)
	fpw := cr.Cfg.FpLocW.Out
	for i := range cr.Fb {
		b, _ := fixpt.Sat(st.Signed(fpw+1), WtBits)
		cr.Fb[i] = int16(b)
	}
}

// Reset returns all neuron, output and trace state to zero, clears counters
// and reseeds all streams.  Weights are not affected.  Reset is idempotent.
func (cr *Core) Reset() {
	for i := range cr.Neurons {
		cr.Neurons[i].InitActs()
	}
	for i := range cr.Outs {
		cr.Outs[i] = OutNeuron{}
	}
	for i := range cr.Inp {
		cr.Inp[i] = false
	}
	for m := range cr.Prjns {
		cr.Prjns[m].InitTraces()
	}
	for i := range cr.Err {
		cr.Err[i] = 0
		cr.Prob[i] = 0
	}
	for i := range cr.LSig {
		cr.LSig[i] = 0
	}
	cr.Bank.Reset()
	cr.Time.Reset()
	cr.Sats.Reset()
	cr.NLearn = 0
	cr.NErr = 0
	cr.Phase = PhaseInput
}

// SampleStart starts a new sequence: the tick counter and the spike counts
// that measure the observed rate are cleared.  Neuron state and traces persist.
func (cr *Core) SampleStart() {
	cr.Time.SampleStart()
	for i := range cr.Neurons {
		cr.Neurons[i].Cnt = 0
	}
}

// SetBand assigns recurrent neuron i to threshold band b (0..3, or -1 for none)
func (cr *Core) SetBand(i, b int) error {
	if i < 0 || i >= len(cr.Neurons) {
		return fmt.Errorf("reckon.Core SetBand: neuron %d out of range", i)
	}
	if b < -1 || b >= NBands {
		return fmt.Errorf("reckon.Core SetBand: band %d out of range [-1, %d]", b, NBands-1)
	}
	cr.Neurons[i].Band = int8(b)
	return nil
}

// Thr returns the effective threshold of recurrent neuron i
func (cr *Core) Thr(i int) int64 {
	return cr.Cfg.Thr(int(cr.Neurons[i].Band))
}

///////////////////////////////////////////////////////////////////////
//  Tick

// Tick runs one tick: input latch, neuron update, output update, trace
// update, learning (only if learn is true) and the noise draw for the next
// tick, in that order.  tgt is the supervision known at this tick, or nil.
func (cr *Core) Tick(inp []bool, tgt *Target, learn bool) {
	cr.runPhase(PhaseInput, func() { cr.LatchInput(inp) })
	cr.runPhase(PhaseNeur, cr.NeurUpdt)
	cr.runPhase(PhaseOut, cr.OutUpdt)
	cr.runPhase(PhaseTrace, cr.TraceUpdt)
	if learn {
		cr.runPhase(PhaseLearn, func() { cr.Learn(tgt) })
	}
	cr.runPhase(PhaseNoise, cr.NoiseUpdt)
	cr.Time.TickInc()
}

func (cr *Core) runPhase(ph Phases, fun func()) {
	cr.Phase = ph
	cr.PhaseTimes[ph].Start()
	fun()
	cr.PhaseTimes[ph].Stop()
}

// LatchInput latches the inputs of this tick, and the spikes of the previous
// tick which drive the recurrent and output updates
func (cr *Core) LatchInput(inp []bool) {
	copy(cr.Inp, inp)
	for i := range cr.Neurons {
		nrn := &cr.Neurons[i]
		nrn.Prv = nrn.Spk
	}
}

// NeurUpdt updates the recurrent neurons: leak, input and recurrent
// integration, pseudo-derivative, spike and reset.  Input sums are aligned
// from FpLocW.Inp to the recurrent scale.
func (cr *Core) NeurUpdt() {
	cf := &cr.Cfg
	st := cr.Bank.Strm(StrmNeur)
	inp := &cr.Prjns[Inp]
	rec := &cr.Prjns[Rec]
	ash := cf.FpLocW.Inp - cf.FpLocW.Rec
	for ri := range cr.Neurons {
		nrn := &cr.Neurons[ri]
		u := fixpt.Shift(cf.Alpha(ri)*int64(nrn.U), ErrFrac, cr.rm, st)
		var isum int64
		for si, x := range cr.Inp {
			if x {
				isum += int64(inp.Wt[inp.Idx(si, ri)])
			}
		}
		u += fixpt.Shift(isum, ash, cr.rm, st)
		for si := range cr.Neurons {
			if cr.Neurons[si].Prv {
				u += int64(rec.Wt[rec.Idx(si, ri)])
			}
		}
		if cf.NoiseEn {
			u += int64(nrn.Noise)
		}
		us, sat := fixpt.Sat(u, UBits)
		cr.Sats.Add(SatNeur, sat)

		band := int(nrn.Band)
		th := cf.Thr(band)
		nrn.Psi = 0
		if !nrn.Refr || cf.ForceTraces {
			d := us - th
			if d < 0 {
				d = -d
			}
			if 2*d <= th {
				nrn.Psi = int32(cf.H(band))
			}
		}
		wasRefr := nrn.Refr
		nrn.Refr = false
		nrn.Spk = false
		if !wasRefr && us >= th {
			nrn.Spk = true
			nrn.Refr = true
			nrn.Cnt++
			us -= th
		}
		nrn.U = int32(us)
	}
}

// OutUpdt updates the output neurons: leak by Kappa, plus the output weights
// of recurrent neurons that spiked on the previous tick
func (cr *Core) OutUpdt() {
	cf := &cr.Cfg
	st := cr.Bank.Strm(StrmONeur)
	out := &cr.Prjns[Out]
	for o := range cr.Outs {
		on := &cr.Outs[o]
		y := fixpt.Shift(int64(cf.Kappa)*int64(on.Y), ErrFrac, cr.rm, st)
		for si := range cr.Neurons {
			if cr.Neurons[si].Prv {
				y += int64(out.Wt[out.Idx(si, o)])
			}
		}
		ys, sat := fixpt.Sat(y, YBits)
		cr.Sats.Add(SatOut, sat)
		on.Y = int32(ys)
	}
}

// HasActivity returns true if any input is on or any recurrent neuron
// spiked on this or the previous tick
func (cr *Core) HasActivity() bool {
	for _, x := range cr.Inp {
		if x {
			return true
		}
	}
	for i := range cr.Neurons {
		if cr.Neurons[i].Spk || cr.Neurons[i].Prv {
			return true
		}
	}
	return false
}

// TraceUpdt decays every trace by Kappa and accumulates the presynaptic
// activity gated by the postsynaptic pseudo-derivative (input and recurrent
// matrices) or the presynaptic spike alone (output matrix), in matrix order.
// With LocalTick, ticks without any activity leave the traces untouched.
func (cr *Core) TraceUpdt() {
	cf := &cr.Cfg
	if cf.LocalTick && !cr.HasActivity() {
		return
	}
	kappa := int64(cf.Kappa)
	for m := Inp; m < MatricesN; m++ {
		pj := &cr.Prjns[m]
		st := cr.Bank.Strm(TraceStream(m))
		ft := uint(cf.FpLocT.Get(m))
		site := SatTr(m)
		for si := 0; si < pj.NSend; si++ {
			var pre bool
			if m == Inp {
				pre = cr.Inp[si]
			} else {
				pre = cr.Neurons[si].Prv
			}
			for ri := 0; ri < pj.NRecv; ri++ {
				if pj.IsSelf(si, ri) {
					continue
				}
				idx := pj.Idx(si, ri)
				tr := fixpt.Shift(kappa*int64(pj.Tr[idx]), ErrFrac, cr.rm, st)
				if pre {
					if m == Out {
						tr += int64(1) << ft
					} else {
						tr += int64(cr.Neurons[ri].Psi) << ft
					}
				}
				trs, sat := fixpt.Sat(tr, TrBits)
				cr.Sats.Add(site, sat)
				pj.Tr[idx] = int16(trs)
			}
		}
	}
}

// NoiseUpdt draws the membrane noise of the next tick, uniform in
// [-2^NoiseStr, 2^NoiseStr - 1]
func (cr *Core) NoiseUpdt() {
	cf := &cr.Cfg
	if !cf.NoiseEn {
		return
	}
	st := cr.Bank.Strm(StrmNoise)
	for i := range cr.Neurons {
		cr.Neurons[i].Noise = int32(st.Signed(cf.NoiseStr + 1))
	}
}

// OutAct returns the emitted value of output o: the raw potential with
// NoOutAct or Regression, otherwise the softmax probability in Q0.8
func (cr *Core) OutAct(o int) int32 {
	if cr.Cfg.NoOutAct || cr.Cfg.Regression {
		return cr.Outs[o].Y
	}
	return cr.Prob[o]
}

// CalcProbs computes the output probabilities into Prob
func (cr *Core) CalcProbs() {
	y := make([]int32, len(cr.Outs))
	for o := range cr.Outs {
		y[o] = cr.Outs[o].Y
	}
	SoftMax(y, cr.Cfg.FpLocW.Out, cr.Prob)
}

// Pred returns the predicted class from the output potentials
func (cr *Core) Pred() int {
	if len(cr.Outs) == 1 {
		if cr.Outs[0].Y > 0 {
			return 1
		}
		return 0
	}
	mx := 0
	for o := range cr.Outs {
		if cr.Outs[o].Y > cr.Outs[mx].Y {
			mx = o
		}
	}
	return mx
}

// CheckBounds returns an InternalInvariant error if any memory word or
// neuron register is outside its declared width
func (cr *Core) CheckBounds() error {
	for m := range cr.Prjns {
		if err := cr.Prjns[m].CheckBounds(); err != nil {
			return err
		}
	}
	for i, b := range cr.Fb {
		if int64(b) < fixpt.Min(WtBits) || int64(b) > fixpt.Max(WtBits) {
			return NewError(InternalInvariant, "FB", "feedback %d = %d out of %d-bit bounds", i, b, WtBits)
		}
	}
	for i := range cr.Neurons {
		if u := int64(cr.Neurons[i].U); u < fixpt.Min(UBits) || u > fixpt.Max(UBits) {
			return NewError(InternalInvariant, "U", "neuron %d potential %d out of %d-bit bounds", i, u, UBits)
		}
	}
	return nil
}

///////////////////////////////////////////////////////////////////////
//  Observers

// Snapshot is a deep copy of the core state taken at a tick boundary
type Snapshot struct {
	TickTot int
	Neurons []Neuron
	Outs    []OutNeuron
	Wts     [MatricesN][]int16
	Trs     [MatricesN][]int16
	Fb      []int16
	Streams [StreamIDsN]uint32
}

// Snapshot returns a deep copy of the neuron, weight and trace state.
// Only meaningful between ticks.
func (cr *Core) Snapshot() *Snapshot {
	sn := &Snapshot{TickTot: cr.Time.TickTot}
	sn.Neurons = append([]Neuron(nil), cr.Neurons...)
	sn.Outs = append([]OutNeuron(nil), cr.Outs...)
	for m := range cr.Prjns {
		sn.Wts[m] = append([]int16(nil), cr.Prjns[m].Wt...)
		sn.Trs[m] = append([]int16(nil), cr.Prjns[m].Tr...)
	}
	sn.Fb = append([]int16(nil), cr.Fb...)
	for id := range cr.Bank.Strms {
		sn.Streams[id] = cr.Bank.Strms[id].State
	}
	return sn
}

// SizeReport returns a string reporting the size of the neuron state and
// of each matrix, and the total memory footprint.
func (cr *Core) SizeReport() string {
	var b strings.Builder
	nn := len(cr.Neurons)
	nmem := nn*int(unsafe.Sizeof(Neuron{})) + len(cr.Outs)*int(unsafe.Sizeof(OutNeuron{}))
	fmt.Fprintf(&b, "%14s:\t Neurons: %d\t Outputs: %d\t NeurMem: %v\n", cr.Nm, nn, len(cr.Outs), (datasize.ByteSize)(nmem).HumanReadable())
	syn := 0
	synMem := 0
	for m := range cr.Prjns {
		pj := &cr.Prjns[m]
		ns := len(pj.Wt)
		pmem := (len(pj.Wt) + len(pj.Tr)) * 2
		syn += ns
		synMem += pmem
		fmt.Fprintf(&b, "\t%14s:\t Syns: %d\t SynMem: %v\n", "W"+strings.ToUpper(Matrices(m).String()), ns, (datasize.ByteSize)(pmem).HumanReadable())
	}
	fbMem := len(cr.Fb) * 2
	fmt.Fprintf(&b, "\t%14s:\t Syns: %d\t SynMem: %v\n", "B", len(cr.Fb), (datasize.ByteSize)(fbMem).HumanReadable())
	synMem += fbMem
	fmt.Fprintf(&b, "\n%14s:\t Syns: %d \t SynMem: %v \t Total: %v\n", cr.Nm, syn, (datasize.ByteSize)(synMem).HumanReadable(), (datasize.ByteSize)(nmem+synMem).HumanReadable())
	return b.String()
}

// TimerReport reports the amount of time spent in each phase
func (cr *Core) TimerReport() {
	fmt.Printf("TimerReport: %v\n", cr.Nm)
	fmt.Printf("\tPhase Name\tTotal Secs\tPct\n")
	pcts := make([]float64, PhasesN)
	tot := 0.0
	for ph := range cr.PhaseTimes {
		pcts[ph] = cr.PhaseTimes[ph].TotalSecs()
		tot += pcts[ph]
	}
	idx := make([]int, PhasesN)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool { return pcts[idx[i]] > pcts[idx[j]] })
	for _, ph := range idx {
		pct := 0.0
		if tot > 0 {
			pct = 100 * (pcts[ph] / tot)
		}
		fmt.Printf("\t%v \t%6.4g\t%6.4g\n", Phases(ph), pcts[ph], pct)
	}
	fmt.Printf("\tTotal   \t%6.4g\n", tot)
}
