// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reckon

import (
	"fmt"
	"log"
	"strings"

	"github.com/emer/reckon/fixpt"
	"github.com/goki/ki/ints"
	"github.com/goki/ki/kit"
)

///////////////////////////////////////////////////////////////////////
//  config.go contains the configuration record shifted into the core

// EpropModes select when learning events occur (DO_EPROP)
type EpropModes int32

//go:generate stringer -type=EpropModes

var KiT_EpropModes = kit.Enums.AddEnum(EpropModesN, kit.NotBitFlag, nil)

func (ev EpropModes) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *EpropModes) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// EpropOff never learns (3'b000)
	EpropOff EpropModes = iota

	// EpropTick learns on every tick where a target is known (3'b001)
	EpropTick

	// EpropLabel learns only on ticks that carry a label (3'b010)
	EpropLabel

	EpropModesN
)

// RegulModes select firing-rate regularization (REGUL_MODE).
// Codes above RegulSquared are accepted and disable regularization.
type RegulModes int32

//go:generate stringer -type=RegulModes

var KiT_RegulModes = kit.Enums.AddEnum(RegulModesN, kit.NotBitFlag, nil)

func (ev RegulModes) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *RegulModes) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// RegulOff disables regularization (3'b000)
	RegulOff RegulModes = iota

	// RegulLinear penalizes sign(f - F0) (3'b001)
	RegulLinear

	// RegulSquared penalizes (f - F0), the gradient of the squared rate error (3'b010)
	RegulSquared

	RegulModesN
)

// NBands is the number of adaptive threshold bands (THR_H_0..3).
// Neurons with no band use the base threshold and H_4.
const NBands = 4

// NAlpha is the number of per-neuron leak bytes in ALPHA_CONF
const NAlpha = 16

// Config is the flat configuration record of the core, with one field per
// header field.  It is built once, validated at LOAD_CFG, and never modified
// by the core during training (the core keeps its own copy).
type Config struct {

	// core clock half-period, in ns
	ClkHalfPeriod int `def:"10" desc:"core clock half-period, in ns"`

	// configuration bus half-period, in ns
	SckHalfPeriod int `def:"50" desc:"configuration bus half-period, in ns"`

	// idle core cycles inserted between ticks -- 0 = immediate tick progression
	CyclesPerTick int `def:"0" desc:"idle core cycles inserted between ticks -- 0 = immediate tick progression"`

	// number of passes through the training set
	Epochs int `def:"10" desc:"number of passes through the training set"`

	// reset neuron state and traces, and reseed, at each epoch boundary
	RstMode bool `def:"false" desc:"reset neuron state and traces, and reseed, at each epoch boundary"`

	// when learning events occur
	DoEprop EpropModes `def:"EpropOff" desc:"when learning events occur"`

	// only update traces on ticks with local activity, instead of on every global tick
	LocalTick bool `def:"false" desc:"only update traces on ticks with local activity, instead of on every global tick"`

	// enter the terminal HALT state on invalid configuration -- otherwise clamp and log
	ErrorHalt bool `def:"true" desc:"enter the terminal HALT state on invalid configuration -- otherwise clamp and log"`

	// hardware timing mode -- accepted and ignored
	TimingMode bool `def:"false" desc:"hardware timing mode -- accepted and ignored"`

	// regression task: error is the raw output difference instead of softmax cross-entropy
	Regression bool `def:"false" desc:"regression task: error is the raw output difference instead of softmax cross-entropy"`

	// consume only the first label event of each sequence
	SingleLabel bool `def:"true" desc:"consume only the first label event of each sequence"`

	// report raw output potentials instead of output activations
	NoOutAct bool `def:"false" desc:"report raw output potentials instead of output activations"`

	// emit outputs at every tick
	SendPerTimestep bool `def:"false" desc:"emit outputs at every tick"`

	// emit outputs only at label ticks -- takes precedence over SendPerTimestep
	SendLabelOnly bool `def:"true" desc:"emit outputs only at label ticks -- takes precedence over SendPerTimestep"`

	// add uniform noise to recurrent membrane potentials
	NoiseEn bool `def:"false" desc:"add uniform noise to recurrent membrane potentials"`

	// update traces even while a neuron is refractory
	ForceTraces bool `def:"false" desc:"update traces even while a neuron is refractory"`

	// stochastic rounding of dropped fractional bits -- otherwise truncation
	EnStochRound bool `def:"true" desc:"stochastic rounding of dropped fractional bits -- otherwise truncation"`

	// SRAM speed mode -- accepted and ignored
	SramSpeedmode int `def:"0" desc:"SRAM speed mode -- accepted and ignored"`

	// ring oscillator stage select -- accepted and ignored
	RoStageSel int `def:"0" desc:"ring oscillator stage select -- accepted and ignored"`

	// route internal clock to output -- accepted and ignored
	GetClkintOut bool `def:"false" desc:"route internal clock to output -- accepted and ignored"`

	// [def: {3,3,3}] fractional bits of weights per matrix
	FpLocW MatVals `view:"inline" desc:"fractional bits of weights per matrix"`

	// [def: {3,4,6}] fractional bits of traces per matrix -- must be >= FpLocW
	FpLocT MatVals `view:"inline" desc:"fractional bits of traces per matrix -- must be >= FpLocW"`

	// right shift of the projected error into the learning signal
	LearnSigScale int `def:"5" desc:"right shift of the projected error into the learning signal"`

	// firing-rate regularization mode
	RegulMode RegulModes `def:"RegulSquared" desc:"firing-rate regularization mode"`

	// bitmask of matrices regularized: bit 0 = Inp, bit 1 = Rec
	RegulW int `def:"3" desc:"bitmask of matrices regularized: bit 0 = Inp, bit 1 = Rec"`

	// target spike count per sequence for regularization
	RegulF0 int `def:"160" desc:"target spike count per sequence for regularization"`

	RegulKInpR int `def:"0" desc:"random regularization shift for Inp -- 0 = off"`
	RegulKInpP int `def:"10" desc:"programmed regularization shift for Inp"`
	RegulKRecR int `def:"0" desc:"random regularization shift for Rec -- 0 = off"`
	RegulKRecP int `def:"10" desc:"programmed regularization shift for Rec"`
	RegulKMul  int `def:"0" desc:"left shift of the regularization term"`

	// [def: {0,0,0}] random learning-rate shift per matrix -- 0 = no random component
	LrR MatVals `view:"inline" desc:"random learning-rate shift per matrix -- 0 = no random component"`

	// [def: {8,8,14}] programmed learning-rate shift per matrix
	LrP MatVals `view:"inline" desc:"programmed learning-rate shift per matrix"`

	// number of input channels
	NumInp int `def:"39" desc:"number of input channels"`

	// number of recurrent neurons
	NumRec int `def:"99" desc:"number of recurrent neurons"`

	// number of output neurons
	NumOut int `def:"1" desc:"number of output neurons"`

	// output leak in Q0.8 (121 = 0x79 ~ 0.47)
	Kappa int `def:"121" desc:"output leak in Q0.8 (121 = 0x79 ~ 0.47)"`

	ThrH0 int `def:"205" desc:"threshold offset for band 0"`
	ThrH1 int `def:"205" desc:"threshold offset for band 1"`
	ThrH2 int `def:"205" desc:"threshold offset for band 2"`
	ThrH3 int `def:"205" desc:"threshold offset for band 3"`

	H0 int `def:"0" desc:"pseudo-derivative height for band 0"`
	H1 int `def:"0" desc:"pseudo-derivative height for band 1"`
	H2 int `def:"0" desc:"pseudo-derivative height for band 2"`
	H3 int `def:"0" desc:"pseudo-derivative height for band 3"`
	H4 int `def:"1" desc:"pseudo-derivative height for neurons outside any band"`

	// per-neuron recurrent leak, 16 bytes in Q0.8, byte 0 = least-significant -- neuron i uses byte i mod 16
	AlphaConf [NAlpha]uint8 `view:"-" desc:"per-neuron recurrent leak, 16 bytes in Q0.8, byte 0 = least-significant -- neuron i uses byte i mod 16"`

	// membrane noise strength: noise is uniform in [-2^NoiseStr, 2^NoiseStr - 1]
	NoiseStr int `def:"0" desc:"membrane noise strength: noise is uniform in [-2^NoiseStr, 2^NoiseStr - 1]"`

	SeedInp        int `def:"0xF0F0" desc:"seed of input weight init stream"`
	SeedRec        int `def:"0xF1F1" desc:"seed of recurrent weight init stream"`
	SeedOut        int `def:"0xF2F2" desc:"seed of output weight and feedback init stream"`
	SeedStrndNeur  int `def:"0x3F3FF3F3" desc:"seed of recurrent neuron rounding stream"`
	SeedStrndONeur int `def:"0x74F4" desc:"seed of output neuron rounding stream"`
	SeedStrndTInp  int `def:"0x3F5FF5F5" desc:"seed of input trace rounding stream"`
	SeedStrndTRec  int `def:"0x3F6FF6F6" desc:"seed of recurrent trace rounding stream"`
	SeedStrndTOut  int `def:"0x3F7FF7F7" desc:"seed of output trace rounding stream"`
	SeedNoiseNeur  int `def:"0xFF0" desc:"seed of noise stream"`

	// base threshold of the recurrent neurons, on the recurrent weight scale
	ThrBase int `def:"205" desc:"base threshold of the recurrent neurons, on the recurrent weight scale"`

	// platform maximum number of inputs
	MaxInp int `def:"256" desc:"platform maximum number of inputs"`

	// platform maximum number of recurrent neurons
	MaxRec int `def:"256" desc:"platform maximum number of recurrent neurons"`

	// platform maximum number of output neurons
	MaxOut int `def:"16" desc:"platform maximum number of output neurons"`
}

// NewConfig returns a new Config with default values
func NewConfig() *Config {
	cf := &Config{}
	cf.Defaults()
	return cf
}

// Defaults sets the values of the reference testbench
func (cf *Config) Defaults() {
	*cf = Config{}
	cf.ClkHalfPeriod = 10
	cf.SckHalfPeriod = 50
	cf.Epochs = 10
	cf.DoEprop = EpropOff
	cf.ErrorHalt = true
	cf.SingleLabel = true
	cf.SendLabelOnly = true
	cf.EnStochRound = true
	cf.FpLocW.SetAll(3, 3, 3)
	cf.FpLocT.SetAll(3, 4, 6)
	cf.LearnSigScale = 5
	cf.RegulMode = RegulSquared
	cf.RegulW = 3
	cf.RegulF0 = 160
	cf.RegulKInpP = 10
	cf.RegulKRecP = 10
	cf.LrP.SetAll(8, 8, 14)
	cf.NumInp = 39
	cf.NumRec = 99
	cf.NumOut = 1
	cf.Kappa = 0x79
	cf.ThrH0, cf.ThrH1, cf.ThrH2, cf.ThrH3 = 205, 205, 205, 205
	cf.H4 = 1
	cf.SeedInp = 0xF0F0
	cf.SeedRec = 0xF1F1
	cf.SeedOut = 0xF2F2
	cf.SeedStrndNeur = 0x3F3FF3F3
	cf.SeedStrndONeur = 0x74F4
	cf.SeedStrndTInp = 0x3F5FF5F5
	cf.SeedStrndTRec = 0x3F6FF6F6
	cf.SeedStrndTOut = 0x3F7FF7F7
	cf.SeedNoiseNeur = 0x00FF0
	cf.ThrBase = 205
	cf.MaxInp = 256
	cf.MaxRec = 256
	cf.MaxOut = 16
}

// TypeName, Class, Name make the Config a params Styler, so "Config" sheets apply to it
func (cf *Config) TypeName() string { return "Config" }
func (cf *Config) Class() string    { return "" }
func (cf *Config) Name() string     { return "Config" }

// RoundMode returns the rounding mode of the datapath
func (cf *Config) RoundMode() fixpt.RoundModes {
	if cf.EnStochRound {
		return fixpt.Stochastic
	}
	return fixpt.Truncate
}

// ThrH returns the threshold offset of given band
func (cf *Config) ThrH(band int) int {
	switch band {
	case 0:
		return cf.ThrH0
	case 1:
		return cf.ThrH1
	case 2:
		return cf.ThrH2
	case 3:
		return cf.ThrH3
	}
	return 0
}

// Thr returns the effective threshold of a neuron in given band (-1 = none)
func (cf *Config) Thr(band int) int64 {
	return int64(cf.ThrBase + cf.ThrH(band))
}

// H returns the pseudo-derivative height of a neuron in given band (-1 = none)
func (cf *Config) H(band int) int64 {
	switch band {
	case 0:
		return int64(cf.H0)
	case 1:
		return int64(cf.H1)
	case 2:
		return int64(cf.H2)
	case 3:
		return int64(cf.H3)
	}
	return int64(cf.H4)
}

// Alpha returns the recurrent leak of neuron i in Q0.8
func (cf *Config) Alpha(i int) int64 {
	return int64(cf.AlphaConf[i%NAlpha])
}

// SetAlphaAll sets all the leak bytes to the same value
func (cf *Config) SetAlphaAll(alpha uint8) {
	for i := range cf.AlphaConf {
		cf.AlphaConf[i] = alpha
	}
}

// RegulOn returns true if regularization applies to matrix m
func (cf *Config) RegulOn(m Matrices) bool {
	if cf.RegulMode != RegulLinear && cf.RegulMode != RegulSquared {
		return false
	}
	switch m {
	case Inp:
		return cf.RegulW&1 != 0
	case Rec:
		return cf.RegulW&2 != 0
	}
	return false
}

// RegulK returns the random and programmed regularization shifts for matrix m
func (cf *Config) RegulK(m Matrices) (r, p int) {
	if m == Rec {
		return cf.RegulKRecR, cf.RegulKRecP
	}
	return cf.RegulKInpR, cf.RegulKInpP
}

///////////////////////////////////////////////////////////////////////
//  Fields

// Field is one integer field of the Config record, with its register width
type Field struct {
	Name   string      `desc:"header name, without the SPI_ prefix"`
	Width  int         `desc:"register width in bits"`
	Signed bool        `desc:"two's complement register"`
	Ptr    interface{} `desc:"pointer to the Config field: *int, *bool, *EpropModes or *RegulModes"`
}

// Int returns the current value of the field
func (fd *Field) Int() int64 {
	switch p := fd.Ptr.(type) {
	case *int:
		return int64(*p)
	case *bool:
		if *p {
			return 1
		}
		return 0
	case *EpropModes:
		return int64(*p)
	case *RegulModes:
		return int64(*p)
	}
	return 0
}

// SetInt sets the field to given value
func (fd *Field) SetInt(v int64) {
	switch p := fd.Ptr.(type) {
	case *int:
		*p = int(v)
	case *bool:
		*p = v != 0
	case *EpropModes:
		*p = EpropModes(v)
	case *RegulModes:
		*p = RegulModes(v)
	}
}

// Range returns the legal range of the field
func (fd *Field) Range() (mn, mx int64) {
	if fd.Signed {
		return fixpt.Min(fd.Width), fixpt.Max(fd.Width)
	}
	return 0, int64(1)<<uint(fd.Width) - 1
}

// Fields returns the integer fields of the record in header order.
// ALPHA_CONF is handled separately as it is wider than any machine word.
func (cf *Config) Fields() []Field {
	return []Field{
		{"CLK_HALF_PERIOD", 32, false, &cf.ClkHalfPeriod},
		{"SCK_HALF_PERIOD", 32, false, &cf.SckHalfPeriod},
		{"EPOCHS", 32, false, &cf.Epochs},
		{"RO_STAGE_SEL", 9, false, &cf.RoStageSel},
		{"GET_CLKINT_OUT", 1, false, &cf.GetClkintOut},
		{"RST_MODE", 1, false, &cf.RstMode},
		{"DO_EPROP", 3, false, &cf.DoEprop},
		{"LOCAL_TICK", 1, false, &cf.LocalTick},
		{"ERROR_HALT", 1, false, &cf.ErrorHalt},
		{"FP_LOC_WINP", 3, false, &cf.FpLocW.Inp},
		{"FP_LOC_WREC", 3, false, &cf.FpLocW.Rec},
		{"FP_LOC_WOUT", 3, false, &cf.FpLocW.Out},
		{"FP_LOC_TINP", 3, false, &cf.FpLocT.Inp},
		{"FP_LOC_TREC", 3, false, &cf.FpLocT.Rec},
		{"FP_LOC_TOUT", 3, false, &cf.FpLocT.Out},
		{"LEARN_SIG_SCALE", 4, false, &cf.LearnSigScale},
		{"REGUL_MODE", 3, false, &cf.RegulMode},
		{"REGUL_W", 2, false, &cf.RegulW},
		{"EN_STOCH_ROUND", 1, false, &cf.EnStochRound},
		{"SRAM_SPEEDMODE", 8, false, &cf.SramSpeedmode},
		{"TIMING_MODE", 1, false, &cf.TimingMode},
		{"REGRESSION", 1, false, &cf.Regression},
		{"SINGLE_LABEL", 1, false, &cf.SingleLabel},
		{"NO_OUT_ACT", 1, false, &cf.NoOutAct},
		{"SEND_PER_TIMESTEP", 1, false, &cf.SendPerTimestep},
		{"SEND_LABEL_ONLY", 1, false, &cf.SendLabelOnly},
		{"NOISE_EN", 1, false, &cf.NoiseEn},
		{"FORCE_TRACES", 1, false, &cf.ForceTraces},
		{"CYCLES_PER_TICK", 32, false, &cf.CyclesPerTick},
		{"KAPPA", 8, false, &cf.Kappa},
		{"THR_H_0", 16, true, &cf.ThrH0},
		{"THR_H_1", 16, true, &cf.ThrH1},
		{"THR_H_2", 16, true, &cf.ThrH2},
		{"THR_H_3", 16, true, &cf.ThrH3},
		{"H_0", 5, true, &cf.H0},
		{"H_1", 5, true, &cf.H1},
		{"H_2", 5, true, &cf.H2},
		{"H_3", 5, true, &cf.H3},
		{"H_4", 5, true, &cf.H4},
		{"LR_R_WINP", 5, false, &cf.LrR.Inp},
		{"LR_P_WINP", 5, false, &cf.LrP.Inp},
		{"LR_R_WREC", 5, false, &cf.LrR.Rec},
		{"LR_P_WREC", 5, false, &cf.LrP.Rec},
		{"LR_R_WOUT", 5, false, &cf.LrR.Out},
		{"LR_P_WOUT", 5, false, &cf.LrP.Out},
		{"SEED_INP", 25, false, &cf.SeedInp},
		{"SEED_REC", 25, false, &cf.SeedRec},
		{"SEED_OUT", 22, false, &cf.SeedOut},
		{"SEED_STRND_NEUR", 30, false, &cf.SeedStrndNeur},
		{"SEED_STRND_ONEUR", 15, false, &cf.SeedStrndONeur},
		{"SEED_STRND_TINP", 30, false, &cf.SeedStrndTInp},
		{"SEED_STRND_TREC", 30, false, &cf.SeedStrndTRec},
		{"SEED_STRND_TOUT", 30, false, &cf.SeedStrndTOut},
		{"SEED_NOISE_NEUR", 17, false, &cf.SeedNoiseNeur},
		{"NUM_INP_NEUR", 8, false, &cf.NumInp},
		{"NUM_REC_NEUR", 8, false, &cf.NumRec},
		{"NUM_OUT_NEUR", 4, false, &cf.NumOut},
		{"REGUL_F0", 12, false, &cf.RegulF0},
		{"REGUL_K_INP_R", 5, false, &cf.RegulKInpR},
		{"REGUL_K_INP_P", 5, false, &cf.RegulKInpP},
		{"REGUL_K_REC_R", 5, false, &cf.RegulKRecR},
		{"REGUL_K_REC_P", 5, false, &cf.RegulKRecP},
		{"REGUL_K_MUL", 5, false, &cf.RegulKMul},
		{"NOISE_STR", 4, false, &cf.NoiseStr},
		{"THR_BASE", 16, true, &cf.ThrBase},
	}
}

// FieldByName returns the field of given header name (without SPI_ prefix)
func (cf *Config) FieldByName(name string) (Field, bool) {
	for _, fd := range cf.Fields() {
		if fd.Name == name {
			return fd, true
		}
	}
	return Field{}, false
}

///////////////////////////////////////////////////////////////////////
//  Validate

// Validate checks every field and returns one ConfigInvalid error per
// violation: register ranges, fixed-point ordering, neuron counts vs.
// platform maxima, reserved mode codes, non-positive thresholds and seeds
// that would lock their stream.
func (cf *Config) Validate() []error {
	var errs []error
	bad := func(field, format string, args ...interface{}) {
		errs = append(errs, NewError(ConfigInvalid, field, format, args...))
	}
	for _, fd := range cf.Fields() {
		mn, mx := fd.Range()
		if v := fd.Int(); v < mn || v > mx {
			bad(fd.Name, "value %d outside %d-bit range [%d, %d]", v, fd.Width, mn, mx)
		}
	}
	for m := Inp; m < MatricesN; m++ {
		if cf.FpLocT.Get(m) < cf.FpLocW.Get(m) {
			bad("FP_LOC_T"+strings.ToUpper(m.String()), "trace fractional bits %d < weight fractional bits %d", cf.FpLocT.Get(m), cf.FpLocW.Get(m))
		}
	}
	cnt := []struct {
		nm  string
		n   int
		max int
	}{{"NUM_INP_NEUR", cf.NumInp, cf.MaxInp}, {"NUM_REC_NEUR", cf.NumRec, cf.MaxRec}, {"NUM_OUT_NEUR", cf.NumOut, cf.MaxOut}}
	for _, c := range cnt {
		if c.n < 1 || c.n > c.max {
			bad(c.nm, "neuron count %d outside [1, %d]", c.n, c.max)
		}
	}
	if cf.DoEprop >= EpropModesN {
		bad("DO_EPROP", "reserved mode %03b", int(cf.DoEprop))
	}
	if cf.ThrBase <= 0 {
		bad("THR_BASE", "threshold %d must be positive", cf.ThrBase)
	}
	for b := 0; b < NBands; b++ {
		if th := cf.Thr(b); th <= 0 || th > fixpt.Max(UBits) {
			bad(fmt.Sprintf("THR_H_%d", b), "effective threshold %d outside (0, %d]", th, fixpt.Max(UBits))
		}
	}
	for id := StrmNeur; id < StreamIDsN; id++ {
		w := StreamWidths[id]
		if uint64(cf.Seed(id))&(uint64(1)<<uint(w)-1) == 0 {
			bad(id.SeedName(), "seed is zero in %d bits", w)
		}
	}
	return errs
}

// Clamp forces every field into its legal range, logging each change
func (cf *Config) Clamp() {
	for _, fd := range cf.Fields() {
		mn, mx := fd.Range()
		v := fd.Int()
		if v < mn || v > mx {
			nv := mx
			if v < mn {
				nv = mn
			}
			log.Printf("reckon.Config: %s clamped from %d to %d\n", fd.Name, v, nv)
			fd.SetInt(nv)
		}
	}
	for m := Inp; m < MatricesN; m++ {
		if cf.FpLocT.Get(m) < cf.FpLocW.Get(m) {
			log.Printf("reckon.Config: FP_LOC_T%s raised from %d to %d\n", strings.ToUpper(m.String()), cf.FpLocT.Get(m), cf.FpLocW.Get(m))
			cf.FpLocT.Set(m, cf.FpLocW.Get(m))
		}
	}
	cf.NumInp = clampCount("NUM_INP_NEUR", cf.NumInp, cf.MaxInp)
	cf.NumRec = clampCount("NUM_REC_NEUR", cf.NumRec, cf.MaxRec)
	cf.NumOut = clampCount("NUM_OUT_NEUR", cf.NumOut, cf.MaxOut)
	if cf.DoEprop >= EpropModesN {
		log.Printf("reckon.Config: DO_EPROP reserved mode %03b -- learning off\n", int(cf.DoEprop))
		cf.DoEprop = EpropOff
	}
	if cf.ThrBase <= 0 {
		log.Printf("reckon.Config: THR_BASE %d raised to 1\n", cf.ThrBase)
		cf.ThrBase = 1
	}
	thp := []*int{&cf.ThrH0, &cf.ThrH1, &cf.ThrH2, &cf.ThrH3}
	for b, p := range thp {
		th := cf.ThrBase + *p
		nth := ints.MinInt(ints.MaxInt(th, 1), int(fixpt.Max(UBits)))
		if nth != th {
			log.Printf("reckon.Config: THR_H_%d effective threshold %d clamped to %d\n", b, th, nth)
			*p = nth - cf.ThrBase
		}
	}
	for id := StrmNeur; id < StreamIDsN; id++ {
		w := StreamWidths[id]
		p := cf.SeedPtr(id)
		if uint64(*p)&(uint64(1)<<uint(w)-1) == 0 {
			log.Printf("reckon.Config: %s zero in %d bits -- set to 1\n", id.SeedName(), w)
			*p = 1
		}
	}
}

func clampCount(nm string, n, max int) int {
	nn := ints.MinInt(ints.MaxInt(n, 1), max)
	if nn != n {
		log.Printf("reckon.Config: %s clamped from %d to %d\n", nm, n, nn)
	}
	return nn
}

// Seed returns the configured seed of given stream
func (cf *Config) Seed(id StreamIDs) int {
	return *cf.SeedPtr(id)
}

// SeedPtr returns a pointer to the seed field of given stream
func (cf *Config) SeedPtr(id StreamIDs) *int {
	switch id {
	case StrmNeur:
		return &cf.SeedStrndNeur
	case StrmONeur:
		return &cf.SeedStrndONeur
	case StrmTInp:
		return &cf.SeedStrndTInp
	case StrmTRec:
		return &cf.SeedStrndTRec
	case StrmTOut:
		return &cf.SeedStrndTOut
	case StrmWInp:
		return &cf.SeedInp
	case StrmWRec:
		return &cf.SeedRec
	case StrmWOut:
		return &cf.SeedOut
	}
	return &cf.SeedNoiseNeur
}
