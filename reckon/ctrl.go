// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reckon

import (
	"log"

	"github.com/emer/etable/minmax"
	"github.com/goki/ki/kit"
	"github.com/pkg/errors"
)

// CtrlStates are the states of the tick controller
type CtrlStates int32

//go:generate stringer -type=CtrlStates

var KiT_CtrlStates = kit.Enums.AddEnum(CtrlStatesN, kit.NotBitFlag, nil)

func (ev CtrlStates) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *CtrlStates) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// StIdle is the state before any configuration is loaded
	StIdle CtrlStates = iota

	// StLoadCfg validates and loads a configuration
	StLoadCfg

	// StReset has all neuron and trace state cleared, ready for a sample
	StReset

	// StRunTick is running the ticks of a sample
	StRunTick

	// StLearn is applying a learning event within a tick
	StLearn

	// StNextSample has completed a sample, ready for the next one
	StNextSample

	// StDone has completed all training epochs
	StDone

	// StHalt is terminal until a new configuration is loaded
	StHalt

	CtrlStatesN
)

// TickOut is what the controller reports after each tick
type TickOut struct {
	Tick      int     `desc:"tick within the sample"`
	Spikes    []bool  `desc:"recurrent spikes of this tick"`
	NSpikes   int     `desc:"number of recurrent spikes of this tick"`
	Y         []int32 `desc:"output membrane potentials"`
	Act       []int32 `desc:"emitted output values (only valid when Emit)"`
	Emit      bool    `desc:"true if output is reported at this tick"`
	LabelTick bool    `desc:"true if a label was consumed at this tick"`
	Learned   bool    `desc:"true if a learning event ran at this tick"`
}

// SampleOut is what the controller reports for a complete sample
type SampleOut struct {
	Outputs [][]int32       `desc:"emitted outputs per tick: [T][NumOut], nil where nothing was emitted"`
	Emitted []int           `desc:"ticks at which output was emitted"`
	Spikes  [][]bool        `desc:"recurrent spikes per tick: [T][NumRec]"`
	NSpikes int             `desc:"total recurrent spikes over the sample"`
	Pred    int             `desc:"predicted class at the end of the sample (-1 for regression)"`
	Label   int             `desc:"first label of the sample, -1 if none"`
	Correct bool            `desc:"true if Pred == Label"`
	Rate    minmax.AvgMax32 `desc:"per-neuron spike counts over the sample"`
}

// EpochStats are the summary statistics of one epoch
type EpochStats struct {
	Epoch    int             `desc:"epoch number"`
	NSamples int             `desc:"number of samples run"`
	NCorrect int             `desc:"number of correctly classified samples"`
	PctCor   float32         `desc:"proportion correct"`
	Spikes   minmax.AvgMax32 `desc:"recurrent spikes per sample"`
	Rate     minmax.AvgMax32 `desc:"per-neuron spike counts per sample, avg and max over samples"`
	SatTotal int64           `desc:"total saturation events since reset"`
	WtOutAbs int64           `desc:"sum of absolute output weights at end of epoch"`
}

// Controller sequences the ticks of samples and epochs on a Core,
// enforcing the label, emission and halting policies of its Config.
type Controller struct {
	Nm      string     `desc:"name, used for the core"`
	Cfg     Config     `desc:"configuration loaded at the last LoadConfig"`
	Core    *Core      `desc:"the core, built by LoadConfig"`
	St      CtrlStates `inactive:"+" desc:"current state"`
	HaltErr error      `inactive:"+" desc:"the error that caused HALT"`
	Logs    *Logs      `desc:"optional logs -- nil for none"`
	Epoch   int        `inactive:"+" desc:"current epoch"`
	SmpIdx  int        `inactive:"+" desc:"index of current sample within the epoch"`

	smp       *Sample
	out       *SampleOut
	tick      int
	labelSeen bool
	hasTgt    bool
	tgt       Target
}

// NewController returns a new controller in the Idle state
func NewController(name string) *Controller {
	return &Controller{Nm: name}
}

// State returns the current controller state
func (ct *Controller) State() CtrlStates {
	return ct.St
}

// Halted returns true if the controller is in HALT
func (ct *Controller) Halted() bool {
	return ct.St == StHalt
}

func (ct *Controller) halt(err error) error {
	ct.St = StHalt
	ct.HaltErr = err
	ct.smp = nil
	log.Printf("reckon %s: HALT: %v\n", ct.Nm, err)
	return err
}

// check returns an error if the controller cannot run
func (ct *Controller) check() error {
	if ct.St == StHalt {
		return ct.HaltErr
	}
	if ct.Core == nil {
		return NewError(ProtocolViolation, "", "no configuration loaded")
	}
	return nil
}

// LoadConfig validates the configuration and builds a fresh core from it.
// Invalid fields halt the controller when ErrorHalt is set, and are
// otherwise clamped into range and logged.  LoadConfig is the only way
// out of HALT.
func (ct *Controller) LoadConfig(cf *Config) error {
	ct.St = StLoadCfg
	ct.smp = nil
	ct.HaltErr = nil
	c := *cf
	errs := c.Validate()
	if len(errs) > 0 {
		if c.ErrorHalt {
			ct.Core = nil
			return ct.halt(errors.Wrapf(errs[0], "LoadConfig: %d invalid field(s)", len(errs)))
		}
		for _, err := range errs {
			log.Println(err)
		}
		c.Clamp()
	}
	cr, err := NewCore(ct.Nm, &c)
	if err != nil {
		ct.Core = nil
		return ct.halt(errors.Wrapf(err, "LoadConfig"))
	}
	ct.Cfg = c
	ct.Core = cr
	ct.Epoch = 0
	ct.SmpIdx = 0
	ct.St = StReset
	return nil
}

// Reset clears all neuron and trace state and reseeds the random streams,
// abandoning any sample in progress.  Weights are not affected.
func (ct *Controller) Reset() error {
	if err := ct.check(); err != nil {
		return err
	}
	ct.smp = nil
	ct.out = nil
	ct.Core.Reset()
	ct.St = StReset
	return nil
}

// InSample returns true if a sample is in progress
func (ct *Controller) InSample() bool {
	return ct.smp != nil
}

// BeginSample validates the sample and prepares to run its ticks.
// A rejected sample leaves the controller and core untouched.
func (ct *Controller) BeginSample(sm *Sample) error {
	if err := ct.check(); err != nil {
		return err
	}
	if ct.smp != nil {
		return NewError(ProtocolViolation, "", "BeginSample: sample in progress at tick %d", ct.tick)
	}
	if err := sm.Validate(&ct.Cfg); err != nil {
		return err
	}
	nt := sm.NTicks()
	ct.smp = sm
	ct.tick = 0
	ct.labelSeen = false
	ct.hasTgt = false
	ct.tgt = Target{Label: -1}
	ct.out = &SampleOut{Outputs: make([][]int32, nt), Spikes: make([][]bool, nt), Pred: -1, Label: sm.Label()}
	ct.Core.SampleStart()
	ct.St = StRunTick
	return nil
}

// consumeLabel applies the label policy at tick t, returning true if a
// label was consumed: with SingleLabel only the first label of the sample
// is consumed.
func (ct *Controller) consumeLabel(t int) bool {
	sm := ct.smp
	if sm.LabelValid == nil || !sm.LabelValid[t] {
		return false
	}
	if ct.Cfg.SingleLabel && ct.labelSeen {
		return false
	}
	ct.labelSeen = true
	ct.hasTgt = true
	if sm.Labels != nil {
		ct.tgt.Label = sm.Labels[t]
	}
	if ct.Cfg.Regression {
		ct.tgt.Vals = sm.Targets[t]
	}
	return true
}

// emits returns true if output is reported at tick t of nt
func (ct *Controller) emits(t, nt int, labelTick bool) bool {
	cf := &ct.Cfg
	switch {
	case cf.SendLabelOnly:
		return labelTick
	case cf.SendPerTimestep:
		return true
	default:
		return t == nt-1
	}
}

// StepTick runs the next tick of the current sample.  Learning runs at
// every tick with EpropTick, and only at ticks where a label is consumed
// with EpropLabel.  With SingleLabel the target only drives the error on
// the tick that consumed the label.  Memory bounds are checked after each tick, and a
// violation always halts.
func (ct *Controller) StepTick() (*TickOut, error) {
	if err := ct.check(); err != nil {
		return nil, err
	}
	if ct.smp == nil {
		return nil, NewError(ProtocolViolation, "", "StepTick: no sample in progress")
	}
	cf := &ct.Cfg
	cr := ct.Core
	sm := ct.smp
	t := ct.tick
	nt := sm.NTicks()
	lblValid := sm.LabelValid != nil && sm.LabelValid[t]
	consumed := ct.consumeLabel(t)

	learn := false
	switch cf.DoEprop {
	case EpropTick:
		learn = true
	case EpropLabel:
		learn = consumed
	}
	var tgt *Target
	if ct.hasTgt && (!cf.SingleLabel || consumed) {
		tgt = &ct.tgt
	}
	if learn {
		ct.St = StLearn
	}
	cr.Tick(sm.Inputs[t], tgt, learn)
	ct.St = StRunTick
	if err := cr.CheckBounds(); err != nil {
		return nil, ct.halt(errors.Wrapf(err, "tick %d", cr.Time.TickTot-1))
	}

	to := &TickOut{Tick: t, LabelTick: consumed, Learned: learn}
	to.Spikes = make([]bool, len(cr.Neurons))
	for i := range cr.Neurons {
		if cr.Neurons[i].Spk {
			to.Spikes[i] = true
			to.NSpikes++
		}
	}
	to.Y = make([]int32, len(cr.Outs))
	for o := range cr.Outs {
		to.Y[o] = cr.Outs[o].Y
	}
	to.Emit = ct.emits(t, nt, lblValid)
	if to.Emit {
		if !cf.NoOutAct && !cf.Regression {
			cr.CalcProbs()
		}
		to.Act = make([]int32, len(cr.Outs))
		for o := range to.Act {
			to.Act[o] = cr.OutAct(o)
		}
		ct.out.Outputs[t] = to.Act
		ct.out.Emitted = append(ct.out.Emitted, t)
	}
	ct.out.Spikes[t] = to.Spikes
	ct.out.NSpikes += to.NSpikes
	if ct.Logs != nil {
		ct.Logs.LogTick(ct, to)
	}

	ct.tick++
	if ct.tick >= nt {
		ct.finishSample()
	}
	return to, nil
}

func (ct *Controller) finishSample() {
	cr := ct.Core
	so := ct.out
	if !ct.Cfg.Regression {
		so.Pred = cr.Pred()
		so.Correct = so.Label >= 0 && so.Pred == so.Label
	}
	so.Rate.Init()
	for i := range cr.Neurons {
		so.Rate.UpdateVal(float32(cr.Neurons[i].Cnt), int32(i))
	}
	so.Rate.CalcAvg()
	ct.smp = nil
	ct.St = StNextSample
}

// EndSample returns the output of the last completed sample.  It is a
// ProtocolViolation to call it while ticks of the sample remain.
func (ct *Controller) EndSample() (*SampleOut, error) {
	if err := ct.check(); err != nil {
		return nil, err
	}
	if ct.smp != nil {
		return nil, NewError(ProtocolViolation, "", "EndSample: %d ticks remaining", ct.smp.NTicks()-ct.tick)
	}
	if ct.out == nil {
		return nil, NewError(ProtocolViolation, "", "EndSample: no sample was run")
	}
	so := ct.out
	ct.out = nil
	return so, nil
}

// RunSample runs all the ticks of a sample
func (ct *Controller) RunSample(sm *Sample) (*SampleOut, error) {
	if err := ct.BeginSample(sm); err != nil {
		return nil, err
	}
	for ct.smp != nil {
		if _, err := ct.StepTick(); err != nil {
			return nil, err
		}
	}
	return ct.EndSample()
}

// RunEpoch runs every sample of the dataset once, in order.  With RstMode
// the core state is reset at the start of the epoch.  Samples are all
// validated before any tick executes.
func (ct *Controller) RunEpoch(ds *Dataset, epoch int) (*EpochStats, error) {
	if err := ct.check(); err != nil {
		return nil, err
	}
	if err := ds.Validate(&ct.Cfg); err != nil {
		return nil, err
	}
	if ct.Cfg.RstMode {
		if err := ct.Reset(); err != nil {
			return nil, err
		}
	}
	ct.Epoch = epoch
	es := &EpochStats{Epoch: epoch}
	es.Spikes.Init()
	es.Rate.Init()
	rsum := float32(0)
	for si, sm := range ds.Samples {
		ct.SmpIdx = si
		so, err := ct.RunSample(sm)
		if err != nil {
			return nil, errors.Wrapf(err, "epoch %d sample %d", epoch, si)
		}
		es.NSamples++
		if so.Correct {
			es.NCorrect++
		}
		es.Spikes.UpdateVal(float32(so.NSpikes), int32(si))
		es.Rate.UpdateVal(so.Rate.Max, int32(si))
		rsum += so.Rate.Avg
		if ct.Logs != nil {
			ct.Logs.LogSample(ct, so)
		}
	}
	es.Spikes.CalcAvg()
	if es.NSamples > 0 {
		es.PctCor = float32(es.NCorrect) / float32(es.NSamples)
		es.Rate.Avg = rsum / float32(es.NSamples)
	}
	es.SatTotal = ct.Core.Sats.Total()
	es.WtOutAbs = ct.Core.Prjns[Out].WtAbsSum()
	if ct.Logs != nil {
		ct.Logs.LogEpoch(ct, es)
	}
	return es, nil
}

// Train runs Cfg.Epochs epochs over the dataset, ending in the Done state
func (ct *Controller) Train(ds *Dataset) ([]*EpochStats, error) {
	if err := ct.check(); err != nil {
		return nil, err
	}
	var all []*EpochStats
	for ep := 0; ep < ct.Cfg.Epochs; ep++ {
		es, err := ct.RunEpoch(ds, ep)
		if err != nil {
			return all, err
		}
		all = append(all, es)
	}
	ct.St = StDone
	return all, nil
}
