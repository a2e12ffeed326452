// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reckon

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelOnlyEmission(t *testing.T) {
	assert := assert.New(t)
	cf := defConfig()
	assert.True(cf.SendLabelOnly)
	ct := newTestCtrl(t, cf)
	rnd := rand.New(rand.NewSource(3))
	sm := randSample(rnd, 200, cf.NumInp, 0.1)
	sm.SetLabel(100, 1)
	so, err := ct.RunSample(sm)
	assert.NoError(err)
	assert.Equal([]int{100}, so.Emitted)
	for ti, out := range so.Outputs {
		if ti == 100 {
			assert.Len(out, cf.NumOut)
		} else {
			assert.Nil(out, "output emitted at tick %d", ti)
		}
	}
	assert.Equal(StNextSample, ct.State())
}

func TestEmissionModes(t *testing.T) {
	assert := assert.New(t)
	cf := defConfig()
	cf.SendLabelOnly = false
	cf.SendPerTimestep = true
	ct := newTestCtrl(t, cf)
	so, err := ct.RunSample(NewSample(12, cf.NumInp))
	assert.NoError(err)
	assert.Len(so.Emitted, 12)

	cf.SendPerTimestep = false
	ct = newTestCtrl(t, cf)
	so, err = ct.RunSample(NewSample(12, cf.NumInp))
	assert.NoError(err)
	assert.Equal([]int{11}, so.Emitted)

	// NoOutAct reports raw potentials, otherwise probabilities: y = 0 is p = 0.5
	assert.Equal(int32(128), so.Outputs[11][0])
	cf.NoOutAct = true
	ct = newTestCtrl(t, cf)
	so, err = ct.RunSample(NewSample(12, cf.NumInp))
	assert.NoError(err)
	assert.Equal(int32(0), so.Outputs[11][0])
}

func TestSingleLabel(t *testing.T) {
	assert := assert.New(t)
	cf := defConfig()
	cf.DoEprop = EpropLabel
	cf.SendLabelOnly = false
	ct := newTestCtrl(t, cf)
	sm := NewSample(30, cf.NumInp)
	sm.SetLabel(10, 1)
	sm.SetLabel(20, 0)
	sm.SetLabel(29, 1)
	if !assert.NoError(ct.BeginSample(sm)) {
		return
	}
	var consumed []int
	for ct.InSample() {
		to, err := ct.StepTick()
		assert.NoError(err)
		if to.LabelTick {
			consumed = append(consumed, to.Tick)
			assert.True(to.Learned)
		} else {
			assert.False(to.Learned)
		}
	}
	assert.Equal([]int{10}, consumed)
	assert.EqualValues(1, ct.Core.NLearn)

	cf.SingleLabel = false
	ct = newTestCtrl(t, cf)
	_, err := ct.RunSample(sm)
	assert.NoError(err)
	assert.EqualValues(3, ct.Core.NLearn)
}

func TestHaltOnBadConfig(t *testing.T) {
	assert := assert.New(t)
	cf := defConfig()
	cf.FpLocW.Inp = 7
	cf.FpLocT.Inp = 3
	assert.True(cf.ErrorHalt)
	ct := NewController("halt")
	err := ct.LoadConfig(cf)
	assert.Error(err)
	assert.True(IsKind(err, ConfigInvalid), "error kind: %v", err)
	assert.Equal(StHalt, ct.State())

	// no further ticks execute
	_, err = ct.RunSample(NewSample(5, cf.NumInp))
	assert.Error(err)
	assert.Equal(StHalt, ct.State())
	assert.Error(ct.Reset())
	assert.Equal(StHalt, ct.State())

	// only a new configuration leaves HALT
	assert.NoError(ct.LoadConfig(defConfig()))
	assert.Equal(StReset, ct.State())

	cf.ErrorHalt = false
	assert.NoError(ct.LoadConfig(cf))
	assert.Equal(StReset, ct.State())
	assert.Equal(7, ct.Cfg.FpLocW.Inp)
	assert.GreaterOrEqual(ct.Cfg.FpLocT.Inp, ct.Cfg.FpLocW.Inp)
	assert.Empty(ct.Cfg.Validate())
}

func TestHaltOnCounts(t *testing.T) {
	assert := assert.New(t)
	cf := defConfig()
	cf.MaxRec = 64
	ct := NewController("count")
	err := ct.LoadConfig(cf)
	assert.True(IsKind(err, ConfigInvalid))
	assert.True(ct.Halted())

	cf.ErrorHalt = false
	assert.NoError(ct.LoadConfig(cf))
	assert.Equal(cf.MaxRec, ct.Cfg.NumRec)
	assert.Len(ct.Core.Neurons, cf.MaxRec)
}

func TestProtocolViolation(t *testing.T) {
	assert := assert.New(t)
	cf := defConfig()
	ct := newTestCtrl(t, cf)
	before := ct.Core.Snapshot()

	err := ct.BeginSample(NewSample(10, cf.NumInp-1))
	assert.True(IsKind(err, ProtocolViolation), "shape: %v", err)

	sm := NewSample(10, cf.NumInp)
	sm.SetLabel(5, 2) // one output: labels 0, 1
	err = ct.BeginSample(sm)
	assert.True(IsKind(err, ProtocolViolation), "label: %v", err)

	sm = NewSample(10, cf.NumInp)
	sm.LabelValid = sm.LabelValid[:5]
	_, err = ct.RunSample(sm)
	assert.True(IsKind(err, ProtocolViolation), "label length: %v", err)

	_, err = ct.StepTick()
	assert.True(IsKind(err, ProtocolViolation), "no sample: %v", err)

	assert.Equal(before, ct.Core.Snapshot())
	assert.Equal(StReset, ct.State())
	assert.False(ct.InSample())

	assert.NoError(ct.BeginSample(NewSample(10, cf.NumInp)))
	err = ct.BeginSample(NewSample(10, cf.NumInp))
	assert.True(IsKind(err, ProtocolViolation), "sample in progress: %v", err)
	_, err = ct.EndSample()
	assert.True(IsKind(err, ProtocolViolation), "early end: %v", err)

	// reset abandons the sample
	assert.NoError(ct.Reset())
	assert.False(ct.InSample())
	assert.NoError(ct.BeginSample(NewSample(10, cf.NumInp)))

	idle := NewController("idle")
	_, err = idle.RunSample(NewSample(10, cf.NumInp))
	assert.True(IsKind(err, ProtocolViolation))
}

func TestInvariantHalt(t *testing.T) {
	assert := assert.New(t)
	cf := defConfig()
	cf.ErrorHalt = false
	ct := newTestCtrl(t, cf)
	ct.Core.Prjns[Inp].Wt[0] = 300
	_, err := ct.RunSample(NewSample(5, cf.NumInp))
	assert.True(IsKind(err, InternalInvariant), "error: %v", err)
	assert.Equal(StHalt, ct.State())
	_, err = ct.RunSample(NewSample(5, cf.NumInp))
	assert.True(IsKind(err, InternalInvariant))
}

func TestTrain(t *testing.T) {
	assert := assert.New(t)
	cf := defConfig()
	cf.Epochs = 3
	cf.RstMode = true
	cf.ThrBase = 32
	cf.SetAlphaAll(200)
	cf.DoEprop = EpropLabel
	ct := newTestCtrl(t, cf)
	ct.Logs = NewLogs(cf.NumOut)
	ct.Logs.TickOn = true
	rnd := rand.New(rand.NewSource(11))
	ds := &Dataset{Name: "rand", NInp: cf.NumInp, NOut: cf.NumOut}
	for i := 0; i < 4; i++ {
		sm := randSample(rnd, 25, cf.NumInp, 0.2)
		sm.SetLabel(24, i%2)
		ds.Samples = append(ds.Samples, sm)
	}
	stats, err := ct.Train(ds)
	assert.NoError(err)
	assert.Len(stats, 3)
	assert.Equal(StDone, ct.State())
	for ep, es := range stats {
		assert.Equal(ep, es.Epoch)
		assert.Equal(4, es.NSamples)
		assert.InDelta(float32(es.NCorrect)/4, es.PctCor, 1e-6)
	}
	assert.Equal(3, ct.Logs.EpochLog.Rows)
	assert.Equal(12, ct.Logs.SampleLog.Rows)
	assert.Equal(300, ct.Logs.TickLog.Rows)
	assert.EqualValues(4, ct.Core.NLearn) // reset at each epoch

	bad := &Dataset{Samples: []*Sample{NewSample(3, cf.NumInp), NewSample(3, 2)}}
	_, err = ct.RunEpoch(bad, 0)
	assert.True(IsKind(err, ProtocolViolation))
}
