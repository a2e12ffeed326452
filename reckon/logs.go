// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reckon

import (
	"fmt"
	"log"
	"strconv"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/goki/gi/gi"
)

// LogPrec is precision for saving float values in logs
const LogPrec = 4

// Logs holds the run logs of a controller as tables
type Logs struct {
	TickOn    bool          `desc:"record the tick log -- one row per tick, can be large"`
	TickLog   *etable.Table `view:"no-inline" desc:"one row per tick: spikes and outputs"`
	SampleLog *etable.Table `view:"no-inline" desc:"one row per sample: prediction and spike rates"`
	EpochLog  *etable.Table `view:"no-inline" desc:"one row per epoch: performance summary"`
}

// NewLogs returns logs configured for given number of outputs
func NewLogs(nout int) *Logs {
	lg := &Logs{}
	lg.Config(nout)
	return lg
}

// Config configures all the log tables
func (lg *Logs) Config(nout int) {
	lg.TickLog = &etable.Table{}
	lg.SampleLog = &etable.Table{}
	lg.EpochLog = &etable.Table{}
	lg.ConfigTickLog(lg.TickLog, nout)
	lg.ConfigSampleLog(lg.SampleLog)
	lg.ConfigEpochLog(lg.EpochLog)
}

func (lg *Logs) ConfigTickLog(dt *etable.Table, nout int) {
	dt.SetMetaData("name", "TickLog")
	dt.SetMetaData("desc", "Record of spikes and output potentials per tick")
	dt.SetMetaData("read-only", "true")
	dt.SetMetaData("precision", strconv.Itoa(LogPrec))

	sch := etable.Schema{
		{"Epoch", etensor.INT64, nil, nil},
		{"Sample", etensor.INT64, nil, nil},
		{"Tick", etensor.INT64, nil, nil},
		{"NSpikes", etensor.INT64, nil, nil},
		{"Y", etensor.FLOAT32, []int{nout}, []string{"Out"}},
		{"Emit", etensor.INT64, nil, nil},
		{"Label", etensor.INT64, nil, nil},
		{"Learned", etensor.INT64, nil, nil},
	}
	dt.SetFromSchema(sch, 0)
}

func (lg *Logs) ConfigSampleLog(dt *etable.Table) {
	dt.SetMetaData("name", "SampleLog")
	dt.SetMetaData("desc", "Record of prediction and spike rates per sample")
	dt.SetMetaData("read-only", "true")
	dt.SetMetaData("precision", strconv.Itoa(LogPrec))

	sch := etable.Schema{
		{"Epoch", etensor.INT64, nil, nil},
		{"Sample", etensor.INT64, nil, nil},
		{"Label", etensor.INT64, nil, nil},
		{"Pred", etensor.INT64, nil, nil},
		{"Correct", etensor.FLOAT64, nil, nil},
		{"NSpikes", etensor.INT64, nil, nil},
		{"RateAvg", etensor.FLOAT64, nil, nil},
		{"RateMax", etensor.FLOAT64, nil, nil},
	}
	dt.SetFromSchema(sch, 0)
}

func (lg *Logs) ConfigEpochLog(dt *etable.Table) {
	dt.SetMetaData("name", "EpochLog")
	dt.SetMetaData("desc", "Record of performance over epochs of training")
	dt.SetMetaData("read-only", "true")
	dt.SetMetaData("precision", strconv.Itoa(LogPrec))

	sch := etable.Schema{
		{"Epoch", etensor.INT64, nil, nil},
		{"PctCor", etensor.FLOAT64, nil, nil},
		{"AvgSpikes", etensor.FLOAT64, nil, nil},
		{"MaxSpikes", etensor.FLOAT64, nil, nil},
		{"RateAvg", etensor.FLOAT64, nil, nil},
		{"SatTotal", etensor.INT64, nil, nil},
		{"WtOutAbs", etensor.INT64, nil, nil},
	}
	dt.SetFromSchema(sch, 0)
}

func bool2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// LogTick adds a row for the tick just run, if TickOn
func (lg *Logs) LogTick(ct *Controller, to *TickOut) {
	if !lg.TickOn {
		return
	}
	dt := lg.TickLog
	row := dt.Rows
	dt.SetNumRows(row + 1)

	dt.SetCellFloat("Epoch", row, float64(ct.Epoch))
	dt.SetCellFloat("Sample", row, float64(ct.SmpIdx))
	dt.SetCellFloat("Tick", row, float64(to.Tick))
	dt.SetCellFloat("NSpikes", row, float64(to.NSpikes))
	yt := dt.CellTensor("Y", row)
	fw := ct.Cfg.FpLocW.Out
	for o, y := range to.Y {
		if o < yt.Len() {
			yt.SetFloat1D(o, float64(y)/float64(int64(1)<<uint(fw)))
		}
	}
	dt.SetCellFloat("Emit", row, bool2f(to.Emit))
	lbl := -1
	if to.LabelTick {
		lbl = ct.tgt.Label
	}
	dt.SetCellFloat("Label", row, float64(lbl))
	dt.SetCellFloat("Learned", row, bool2f(to.Learned))
}

// LogSample adds a row for the completed sample
func (lg *Logs) LogSample(ct *Controller, so *SampleOut) {
	dt := lg.SampleLog
	row := dt.Rows
	dt.SetNumRows(row + 1)

	dt.SetCellFloat("Epoch", row, float64(ct.Epoch))
	dt.SetCellFloat("Sample", row, float64(ct.SmpIdx))
	dt.SetCellFloat("Label", row, float64(so.Label))
	dt.SetCellFloat("Pred", row, float64(so.Pred))
	dt.SetCellFloat("Correct", row, bool2f(so.Correct))
	dt.SetCellFloat("NSpikes", row, float64(so.NSpikes))
	dt.SetCellFloat("RateAvg", row, float64(so.Rate.Avg))
	dt.SetCellFloat("RateMax", row, float64(so.Rate.Max))
}

// LogEpoch adds a row for the completed epoch
func (lg *Logs) LogEpoch(ct *Controller, es *EpochStats) {
	dt := lg.EpochLog
	row := dt.Rows
	dt.SetNumRows(row + 1)

	dt.SetCellFloat("Epoch", row, float64(es.Epoch))
	dt.SetCellFloat("PctCor", row, float64(es.PctCor))
	dt.SetCellFloat("AvgSpikes", row, float64(es.Spikes.Avg))
	dt.SetCellFloat("MaxSpikes", row, float64(es.Spikes.Max))
	dt.SetCellFloat("RateAvg", row, float64(es.Rate.Avg))
	dt.SetCellFloat("SatTotal", row, float64(es.SatTotal))
	dt.SetCellFloat("WtOutAbs", row, float64(es.WtOutAbs))
}

// LogFileName returns the log file name for given run name and log
func LogFileName(runName, lognm string) string {
	return runName + "_" + lognm + ".tsv"
}

// SaveLogs saves every non-empty log as a tab-separated file named for runName
func (lg *Logs) SaveLogs(runName string) error {
	var rerr error
	for _, dt := range []*etable.Table{lg.TickLog, lg.SampleLog, lg.EpochLog} {
		if dt == nil || dt.Rows == 0 {
			continue
		}
		fnm := LogFileName(runName, dt.MetaData["name"])
		err := dt.SaveCSV(gi.FileName(fnm), etable.Tab, etable.Headers)
		if err != nil {
			log.Println(err)
			rerr = err
		} else {
			fmt.Printf("Saved log: %s\n", fnm)
		}
	}
	return rerr
}
