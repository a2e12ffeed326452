// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reckon

import (
	"compress/gzip"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/emer/emergent/weights"
	"github.com/emer/reckon/fixpt"
	"github.com/goki/gi/gi"
	"github.com/goki/ki/indent"
	"github.com/pkg/errors"
)

// Layer and projection names used in the weights file
const (
	HiddenName = "Hidden"
	OutputName = "Output"
	InputName  = "Input"
)

//////////////////////////////////////////////////////////////////////////////////////
//  Weights File

// SaveWtsJSON saves the learned weights and the fixed feedback matrix
// to a JSON-formatted file.  If filename has .gz extension, then file is gzip compressed.
func (cr *Core) SaveWtsJSON(filename gi.FileName) error {
	fp, err := os.Create(string(filename))
	if err != nil {
		log.Println(err)
		return err
	}
	defer fp.Close()
	ext := filepath.Ext(string(filename))
	if ext == ".gz" {
		gzr := gzip.NewWriter(fp)
		defer gzr.Close()
		cr.WriteWtsJSON(gzr)
	} else {
		cr.WriteWtsJSON(fp)
	}
	return nil
}

// OpenWtsJSON opens weights saved by SaveWtsJSON.
// If filename has .gz extension, then file is gzip uncompressed.
func (cr *Core) OpenWtsJSON(filename gi.FileName) error {
	fp, err := os.Open(string(filename))
	if err != nil {
		log.Println(err)
		return err
	}
	defer fp.Close()
	ext := filepath.Ext(string(filename))
	if ext == ".gz" {
		gzr, err := gzip.NewReader(fp)
		if err != nil {
			log.Println(err)
			return err
		}
		defer gzr.Close()
		return cr.ReadWtsJSON(gzr)
	}
	return cr.ReadWtsJSON(fp)
}

// WriteWtsJSON writes the weights in the emergent network weights format:
// a Hidden layer receiving the Input and recurrent Hidden projections, and an
// Output layer receiving from Hidden, whose MetaData carries the feedback
// matrix as raw integers.
func (cr *Core) WriteWtsJSON(w io.Writer) {
	cf := &cr.Cfg
	depth := 0
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("{\n"))
	depth++
	w.Write(indent.TabBytes(depth))
	w.Write([]byte(fmt.Sprintf("\"Network\": %q,\n", cr.Nm)))
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("\"MetaData\": {\n"))
	w.Write(indent.TabBytes(depth + 1))
	w.Write([]byte(fmt.Sprintf("\"Shape\": \"%d %d %d\"\n", cf.NumInp, cf.NumRec, cf.NumOut)))
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("},\n"))
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("\"Layers\": [\n"))
	depth++

	cr.writeLayerJSON(w, depth, HiddenName, func(d int) {
		cr.Prjns[Inp].WriteWtsJSON(w, d, InputName, cf.FpLocW.Inp, nil)
		w.Write([]byte(",\n"))
		cr.Prjns[Rec].WriteWtsJSON(w, d, HiddenName, cf.FpLocW.Rec, nil)
		w.Write([]byte("\n"))
	})
	w.Write([]byte(",\n"))
	cr.writeLayerJSON(w, depth, OutputName, func(d int) {
		cr.Prjns[Out].WriteWtsJSON(w, d, HiddenName, cf.FpLocW.Out, map[string]string{"Fb": cr.FbString()})
		w.Write([]byte("\n"))
	})
	w.Write([]byte("\n"))

	depth--
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("]\n"))
	depth--
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("}\n"))
}

// writeLayerJSON writes one layer, with prjns writing its projections.
// The layer is left unterminated.
func (cr *Core) writeLayerJSON(w io.Writer, depth int, name string, prjns func(depth int)) {
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("{\n"))
	depth++
	w.Write(indent.TabBytes(depth))
	w.Write([]byte(fmt.Sprintf("\"Layer\": %q,\n", name)))
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("\"Prjns\": [\n"))
	prjns(depth + 1)
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("]\n"))
	depth--
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("}"))
}

// FbString returns the feedback matrix as space separated raw integers
func (cr *Core) FbString() string {
	var b strings.Builder
	for i, v := range cr.Fb {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(int(v)))
	}
	return b.String()
}

// SetFbString sets the feedback matrix from a FbString value.  The matrix
// is left unchanged if any value is malformed or outside WtBits.
func (cr *Core) SetFbString(s string) error {
	fs := strings.Fields(s)
	if len(fs) != len(cr.Fb) {
		return errors.Errorf("reckon.Core %s: feedback matrix has %d values, expected %d", cr.Nm, len(fs), len(cr.Fb))
	}
	fb := make([]int16, len(fs))
	for i, f := range fs {
		v, err := strconv.Atoi(f)
		if err != nil {
			return errors.Wrapf(err, "reckon.Core %s: feedback value %d", cr.Nm, i)
		}
		if int64(v) < fixpt.Min(WtBits) || int64(v) > fixpt.Max(WtBits) {
			return NewError(ConfigInvalid, "FB", "feedback value %d = %d out of %d-bit bounds", i, v, WtBits)
		}
		fb[i] = int16(v)
	}
	copy(cr.Fb, fb)
	return nil
}

// ReadWtsJSON reads weights written by WriteWtsJSON.  Reads entire file into a
// temporary weights.Network structure that is then applied using SetWts.
func (cr *Core) ReadWtsJSON(r io.Reader) error {
	nw, err := weights.NetReadJSON(r)
	if err != nil {
		return err // note: already logged
	}
	err = cr.SetWts(nw)
	if err != nil {
		log.Println(err)
	}
	return err
}

// SetWts sets the weights and feedback matrix from weights.Network decoded
// values.  Projections are matched by layer and sender name.
func (cr *Core) SetWts(nw *weights.Network) error {
	cf := &cr.Cfg
	var err error
	for li := range nw.Layers {
		lw := &nw.Layers[li]
		for pi := range lw.Prjns {
			pw := &lw.Prjns[pi]
			var er error
			switch {
			case lw.Layer == HiddenName && pw.From == InputName:
				er = cr.Prjns[Inp].SetWts(pw, cf.FpLocW.Inp)
			case lw.Layer == HiddenName && pw.From == HiddenName:
				er = cr.Prjns[Rec].SetWts(pw, cf.FpLocW.Rec)
			case lw.Layer == OutputName && pw.From == HiddenName:
				er = cr.Prjns[Out].SetWts(pw, cf.FpLocW.Out)
				if fb, ok := pw.MetaData["Fb"]; ok && er == nil {
					er = cr.SetFbString(fb)
				}
			default:
				er = errors.Errorf("reckon.Core %s SetWts: unknown projection %s <- %s", cr.Nm, lw.Layer, pw.From)
			}
			if er != nil {
				err = er
			}
		}
	}
	return err
}
