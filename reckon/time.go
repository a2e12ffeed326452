// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reckon

// reckon.Time contains the timing state of the core: ticks within a sample,
// total ticks, and the core clock cycles they correspond to
type Time struct {

	// tick counter within the current sample
	Tick int

	// total tick count since last reset
	TickTot int

	// total core clock cycles since last reset -- each tick takes one
	// cycle plus CycPerTick idle cycles
	Cycle int64

	// emulated time in ns since last reset
	TimeNs int64

	// idle cycles inserted between ticks (CYCLES_PER_TICK)
	CycPerTick int `def:"0"`

	// core clock half-period in ns (CLK_HALF_PERIOD)
	ClkHalfPeriod int `def:"10"`
}

// NewTime returns a new Time struct with default parameters
func NewTime() *Time {
	tm := &Time{}
	tm.Defaults()
	return tm
}

// Defaults sets default values
func (tm *Time) Defaults() {
	tm.CycPerTick = 0
	tm.ClkHalfPeriod = 10
}

// SetFromConfig sets the timing parameters from the config
func (tm *Time) SetFromConfig(cf *Config) {
	tm.CycPerTick = cf.CyclesPerTick
	tm.ClkHalfPeriod = cf.ClkHalfPeriod
}

// Reset resets the counters all back to zero.  The timing parameters are
// kept, except that an unset ClkHalfPeriod takes its default.
func (tm *Time) Reset() {
	tm.Tick = 0
	tm.TickTot = 0
	tm.Cycle = 0
	tm.TimeNs = 0
	if tm.ClkHalfPeriod == 0 {
		tm.ClkHalfPeriod = 10
	}
}

// SampleStart starts a new sample
func (tm *Time) SampleStart() {
	tm.Tick = 0
}

// TickInc increments at the tick level, advancing the clock
func (tm *Time) TickInc() {
	tm.Tick++
	tm.TickTot++
	tm.Cycle += int64(1 + tm.CycPerTick)
	tm.TimeNs = tm.Cycle * int64(2*tm.ClkHalfPeriod)
}
