// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cuenv

import (
	"testing"

	"github.com/emer/emergent/env"
	"github.com/emer/reckon/reckon"
	"github.com/stretchr/testify/assert"
)

func TestEnvSample(t *testing.T) {
	assert := assert.New(t)
	ev := New("nav", 20)
	ev.Seed = 3
	assert.NoError(ev.Validate())
	ev.Init(0)
	nt := ev.NTicks()
	assert.Equal(7*15+50+15, nt)
	for i := 0; i < 20; i++ {
		ev.Step()
		nl := 0
		for _, c := range ev.Cues {
			if c == Left {
				nl++
			}
		}
		if nl > ev.NCues/2 {
			assert.Equal(float32(0), ev.Label.Values[0], ev.String())
		} else {
			assert.Equal(float32(1), ev.Label.Values[0], ev.String())
		}
		sm := ev.Sample()
		assert.Equal(nt, sm.NTicks())
		assert.Equal(int(ev.Label.Values[0]), sm.Label())
		for ti := 0; ti < nt-1; ti++ {
			assert.False(sm.LabelValid[ti])
		}
		assert.True(sm.LabelValid[nt-1])
	}
	cur, _, _ := ev.Counter(env.Trial)
	assert.Equal(0, cur)
	cur, _, _ = ev.Counter(env.Epoch)
	assert.Equal(1, cur)
}

func TestEnvPops(t *testing.T) {
	assert := assert.New(t)
	ev := New("nav", 1)
	ev.NoiseRate = 0
	ev.Init(0)
	ev.Step()
	rst, red := ev.PopRange(Recall)
	assert.Equal(20, rst)
	assert.Equal(30, red)
	nst, ned := ev.PopRange(Noise)
	assert.Equal(30, nst)
	assert.Equal(ev.NInp, ned)
	recSt := ev.NCues * (ev.CueTicks + ev.GapTicks)
	for ti := 0; ti < ev.NTicks(); ti++ {
		for i := 0; i < ev.NInp; i++ {
			if ev.Input.Values[ti*ev.NInp+i] == 0 {
				continue
			}
			switch {
			case i >= nst:
				t.Errorf("noise input %d on at tick %d with NoiseRate 0", i, ti)
			case i >= rst:
				assert.GreaterOrEqual(ti, recSt+ev.DelayTicks, "recall input %d at tick %d", i, ti)
			default:
				cue := ti / (ev.CueTicks + ev.GapTicks)
				assert.Less(cue, ev.NCues)
				assert.Less(ti%(ev.CueTicks+ev.GapTicks), ev.CueTicks)
				assert.Equal(ev.Cues[cue], Pops(i/ev.NPerPop), "input %d at tick %d", i, ti)
			}
		}
	}
}

func TestEnvDeterminism(t *testing.T) {
	assert := assert.New(t)
	ev1 := New("a", 5)
	ev1.Init(2)
	ds1 := ev1.Dataset("a")
	ev2 := New("b", 5)
	ev2.Init(2)
	ds2 := ev2.Dataset("b")
	assert.Equal(ds1.Samples, ds2.Samples)
	assert.Len(ds1.Samples, 5)

	cf := reckon.NewConfig()
	cf.NumInp = ev1.NInp
	assert.NoError(ds1.Validate(cf))
}

func TestEnvValidate(t *testing.T) {
	ev := New("bad", 1)
	ev.NCues = 4
	assert.Error(t, ev.Validate())
	ev.NCues = 7
	ev.NInp = 20
	assert.Error(t, ev.Validate())
}
