// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cuenv

import (
	"fmt"
	"math/rand"

	"github.com/emer/emergent/env"
	"github.com/emer/etable/etensor"
	"github.com/emer/reckon/reckon"
	"github.com/goki/ki/kit"
)

// Pops are the input populations of the cue accumulation task
type Pops int

//go:generate stringer -type=Pops

var KiT_Pops = kit.Enums.AddEnum(PopsN, kit.NotBitFlag, nil)

func (ev Pops) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Pops) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// Left fires during cues on the left
	Left Pops = iota

	// Right fires during cues on the right
	Right

	// Recall fires during the final decision window
	Recall

	// Noise fires at a low background rate throughout
	Noise

	PopsN
)

// Env is the delayed-supervision navigation task: an agent passes a series
// of cues on its left and right, and at the end of the corridor must report
// the side that had more cues.  Each cue is a burst of spikes in the left or
// right input population, the recall population is active in the final
// window, and the label is only given at the last tick.
type Env struct {
	Nm          string          `desc:"name of this environment"`
	Dsc         string          `desc:"description of this environment"`
	NInp        int             `def:"39" desc:"total number of inputs"`
	NPerPop     int             `def:"10" desc:"inputs per cue and recall population -- remaining inputs are noise"`
	NCues       int             `def:"7" desc:"number of cues per sample -- odd so there is always a majority"`
	CueTicks    int             `def:"10" desc:"duration of each cue"`
	GapTicks    int             `def:"5" desc:"silent ticks after each cue"`
	DelayTicks  int             `def:"50" desc:"delay between the last cue and recall"`
	RecallTicks int             `def:"15" desc:"duration of the recall window"`
	CueRate     float64         `def:"0.4" desc:"per-tick spike probability of cue inputs during a cue"`
	RecallRate  float64         `def:"0.4" desc:"per-tick spike probability of recall inputs"`
	NoiseRate   float64         `def:"0.01" desc:"per-tick spike probability of noise inputs"`
	MajProb     float64         `def:"0.75" desc:"probability that each cue falls on the majority side"`
	Seed        int64           `desc:"random seed, set at Init"`
	Input       etensor.Float32 `desc:"input spikes of the current sample: [Tick][Inp]"`
	Label       etensor.Float32 `desc:"label of the current sample: 0 = left, 1 = right"`
	Cues        []Pops          `desc:"sides of the cues of the current sample"`
	Run         env.Ctr         `view:"inline" desc:"current run of model as provided during Init"`
	Epoch       env.Ctr         `view:"inline" desc:"number of times through Trial.Max samples"`
	Trial       env.Ctr         `view:"inline" desc:"sample counter within epoch"`
	Rand        *rand.Rand      `view:"-" desc:"random source, seeded at Init"`
}

// New returns a new environment with default parameters
func New(name string, nsamples int) *Env {
	ev := &Env{Nm: name, Dsc: "delayed-supervision cue accumulation"}
	ev.Defaults()
	ev.Trial.Max = nsamples
	return ev
}

func (ev *Env) Defaults() {
	ev.NInp = 39
	ev.NPerPop = 10
	ev.NCues = 7
	ev.CueTicks = 10
	ev.GapTicks = 5
	ev.DelayTicks = 50
	ev.RecallTicks = 15
	ev.CueRate = 0.4
	ev.RecallRate = 0.4
	ev.NoiseRate = 0.01
	ev.MajProb = 0.75
}

func (ev *Env) Name() string { return ev.Nm }
func (ev *Env) Desc() string { return ev.Dsc }

// NTicks returns the number of ticks of each sample
func (ev *Env) NTicks() int {
	return ev.NCues*(ev.CueTicks+ev.GapTicks) + ev.DelayTicks + ev.RecallTicks
}

// PopRange returns the input index range [st, ed) of a population
func (ev *Env) PopRange(pop Pops) (st, ed int) {
	if pop == Noise {
		return int(Noise) * ev.NPerPop, ev.NInp
	}
	return int(pop) * ev.NPerPop, int(pop+1) * ev.NPerPop
}

func (ev *Env) Validate() error {
	if ev.NInp < int(Noise)*ev.NPerPop {
		return fmt.Errorf("cuenv.Env %s: NInp %d too small for 3 populations of %d", ev.Nm, ev.NInp, ev.NPerPop)
	}
	if ev.NCues < 1 || ev.NCues%2 == 0 {
		return fmt.Errorf("cuenv.Env %s: NCues %d must be odd", ev.Nm, ev.NCues)
	}
	if ev.CueTicks < 1 || ev.RecallTicks < 1 {
		return fmt.Errorf("cuenv.Env %s: CueTicks and RecallTicks must be positive", ev.Nm)
	}
	return nil
}

func (ev *Env) Counters() []env.TimeScales {
	return []env.TimeScales{env.Run, env.Epoch, env.Trial}
}

func (ev *Env) States() env.Elements {
	els := env.Elements{
		{"Input", []int{ev.NTicks(), ev.NInp}, []string{"Tick", "Inp"}},
		{"Label", []int{1}, nil},
	}
	return els
}

func (ev *Env) State(element string) etensor.Tensor {
	switch element {
	case "Input":
		return &ev.Input
	case "Label":
		return &ev.Label
	}
	return nil
}

func (ev *Env) Actions() env.Elements {
	return nil
}

// String returns the cue sequence of the current sample, e.g., LLRLR_R
func (ev *Env) String() string {
	b := make([]byte, 0, len(ev.Cues)+2)
	for _, c := range ev.Cues {
		if c == Left {
			b = append(b, 'L')
		} else {
			b = append(b, 'R')
		}
	}
	lb := "L"
	if ev.Label.Values[0] > 0 {
		lb = "R"
	}
	return string(b) + "_" + lb
}

func (ev *Env) Init(run int) {
	ev.Run.Scale = env.Run
	ev.Epoch.Scale = env.Epoch
	ev.Trial.Scale = env.Trial
	ev.Run.Init()
	ev.Epoch.Init()
	ev.Trial.Init()
	ev.Run.Cur = run
	ev.Trial.Cur = -1 // init state -- key so that first Step() = 0
	ev.Rand = rand.New(rand.NewSource(ev.Seed + int64(run)))
	ev.Input.SetShape([]int{ev.NTicks(), ev.NInp}, nil, []string{"Tick", "Inp"})
	ev.Label.SetShape([]int{1}, nil, []string{"1"})
}

// spikes sets input spikes of population pop over ticks [st, ed) with probability p
func (ev *Env) spikes(pop Pops, st, ed int, p float64) {
	ist, ied := ev.PopRange(pop)
	for ti := st; ti < ed; ti++ {
		for i := ist; i < ied; i++ {
			if ev.Rand.Float64() < p {
				ev.Input.Values[ti*ev.NInp+i] = 1
			}
		}
	}
}

// NewSample draws a new cue sequence into Input and Label
func (ev *Env) NewSample() {
	ev.Input.SetZeros()
	maj := Pops(ev.Rand.Intn(2))
	for {
		ev.Cues = ev.Cues[:0]
		nmaj := 0
		for c := 0; c < ev.NCues; c++ {
			if ev.Rand.Float64() < ev.MajProb {
				ev.Cues = append(ev.Cues, maj)
				nmaj++
			} else {
				ev.Cues = append(ev.Cues, 1-maj)
			}
		}
		if 2*nmaj > ev.NCues {
			break
		}
	}
	ti := 0
	for _, c := range ev.Cues {
		ev.spikes(c, ti, ti+ev.CueTicks, ev.CueRate)
		ti += ev.CueTicks + ev.GapTicks
	}
	ti += ev.DelayTicks
	ev.spikes(Recall, ti, ti+ev.RecallTicks, ev.RecallRate)
	ev.spikes(Noise, 0, ev.NTicks(), ev.NoiseRate)
	ev.Label.Values[0] = float32(maj)
}

func (ev *Env) Step() bool {
	ev.Epoch.Same() // good idea to just reset all non-inner-most counters at start

	ev.NewSample()

	if ev.Trial.Incr() {
		ev.Epoch.Incr()
	}
	return true
}

func (ev *Env) Action(element string, input etensor.Tensor) {
	// nop
}

func (ev *Env) Counter(scale env.TimeScales) (cur, prv int, chg bool) {
	switch scale {
	case env.Run:
		return ev.Run.Query()
	case env.Epoch:
		return ev.Epoch.Query()
	case env.Trial:
		return ev.Trial.Query()
	}
	return -1, -1, false
}

// Compile-time check that implements Env interface
var _ env.Env = (*Env)(nil)

// Sample returns the current sample with its label at the last tick
func (ev *Env) Sample() *reckon.Sample {
	nt := ev.NTicks()
	sm := reckon.NewSample(nt, ev.NInp)
	for ti := 0; ti < nt; ti++ {
		for i := 0; i < ev.NInp; i++ {
			sm.Inputs[ti][i] = ev.Input.Values[ti*ev.NInp+i] != 0
		}
	}
	sm.SetLabel(nt-1, int(ev.Label.Values[0]))
	return sm
}

// Dataset steps the environment Trial.Max times and returns the samples
func (ev *Env) Dataset(name string) *reckon.Dataset {
	ds := &reckon.Dataset{Name: name, NInp: ev.NInp, NOut: 1}
	for i := 0; i < ev.Trial.Max; i++ {
		ev.Step()
		ds.Samples = append(ds.Samples, ev.Sample())
	}
	return ds
}
