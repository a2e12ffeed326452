// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reckon

import (
	"github.com/emer/emergent/params"
)

// ParamSets are the standard parameter sets for the core.  Base is the
// header default behavior (learning off); the others turn on e-prop
// variants on top of Base.  Enum fields take their numeric value.
var ParamSets = params.Sets{
	{Name: "Base", Desc: "reference testbench values", Sheets: params.Sheets{
		"Config": &params.Sheet{
			{Sel: "Config", Desc: "header defaults",
				Params: params.Params{
					"Config.Kappa":         "121",
					"Config.EnStochRound":  "true",
					"Config.LearnSigScale": "5",
				}},
		},
	}},
	{Name: "EpropLabel", Desc: "learn once per sample at the label tick", Sheets: params.Sheets{
		"Config": &params.Sheet{
			{Sel: "Config", Desc: "delayed supervision: one label at the end of each sample",
				Params: params.Params{
					"Config.DoEprop":     "2",
					"Config.SingleLabel": "true",
				}},
		},
	}},
	{Name: "EpropTick", Desc: "learn at every tick once the label is known", Sheets: params.Sheets{
		"Config": &params.Sheet{
			{Sel: "Config", Desc: "every tick is a learning event",
				Params: params.Params{
					"Config.DoEprop":     "1",
					"Config.SingleLabel": "true",
				}},
		},
	}},
	{Name: "NoRegul", Desc: "e-prop at label ticks without firing-rate regularization", Sheets: params.Sheets{
		"Config": &params.Sheet{
			{Sel: "Config", Desc: "regularization off",
				Params: params.Params{
					"Config.DoEprop":   "2",
					"Config.RegulMode": "0",
				}},
		},
	}},
}

// SetParams applies the Base set and then the named set (if not empty or
// Base) from sets to the config.  If setMsg is true, a message is output
// for each param that is set.
func SetParams(cf *Config, sets params.Sets, setNm string, setMsg bool) error {
	err := SetParamsSet(cf, sets, "Base", setMsg)
	if err != nil {
		return err
	}
	if setNm != "" && setNm != "Base" {
		err = SetParamsSet(cf, sets, setNm, setMsg)
	}
	return err
}

// SetParamsSet applies the "Config" sheet of the named set to the config
func SetParamsSet(cf *Config, sets params.Sets, setNm string, setMsg bool) error {
	pset, err := sets.SetByNameTry(setNm)
	if err != nil {
		return err
	}
	if sh, ok := pset.Sheets["Config"]; ok {
		sh.Apply(cf, setMsg)
	}
	return nil
}
