// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reckon

import (
	"bytes"
	"math/big"
	"reflect"
	"strings"
	"testing"
)

func TestParseLiteral(t *testing.T) {
	tests := []struct {
		lit   string
		val   int64
		width int
	}{
		{"10", 10, 0},
		{"-3", -3, 0},
		{"1'b1", 1, 1},
		{"3'b011", 3, 3},
		{"9'b0", 0, 9},
		{"4'b0101", 5, 4},
		{"8'h79", 0x79, 8},
		{"5'd8", 8, 5},
		{"12'd160", 160, 12},
		{"15'hF4F4", 0x74F4, 15},
		{"17'h00FF0", 0xFF0, 17},
		{"32'b0", 0, 32},
		{"$signed(16'd205)", 205, 16},
		{"$signed(5'd1)", 1, 5},
		{"$signed(16'hFFFB)", -5, 16},
		{"$signed(5'd31)", -1, 5},
		{"-16'sd5", -5, 16},
		{"8'b1111_0000", 0xF0, 8},
	}
	for _, tt := range tests {
		v, w, err := ParseLiteral(tt.lit)
		if err != nil {
			t.Errorf("%s: %v", tt.lit, err)
			continue
		}
		if v.Int64() != tt.val || w != tt.width {
			t.Errorf("%s: got %v width %d, expected %d width %d", tt.lit, v, w, tt.val, tt.width)
		}
	}
	for _, bad := range []string{"8'q12", "3'b012", "x'h1", "abc", "8'"} {
		if _, _, err := ParseLiteral(bad); err == nil {
			t.Errorf("%s: no error", bad)
		}
	}
	v, _, _ := ParseLiteral("128'h0102030405060708090A0B0C0D0E0F10")
	exp, _ := new(big.Int).SetString("0102030405060708090A0B0C0D0E0F10", 16)
	if v.Cmp(exp) != 0 {
		t.Errorf("128-bit literal: %x", v)
	}
}

func TestReadHeaderDefaults(t *testing.T) {
	def := NewConfig()
	cf := &Config{}
	if err := cf.OpenHeader("testdata/tbench.h"); err != nil {
		t.Fatal(err)
	}
	// software-only fields are not in the testbench header
	cf.ThrBase = def.ThrBase
	cf.MaxInp, cf.MaxRec, cf.MaxOut = def.MaxInp, def.MaxRec, def.MaxOut
	if !reflect.DeepEqual(cf, def) {
		for _, fd := range cf.Fields() {
			dfd, _ := def.FieldByName(fd.Name)
			if fd.Int() != dfd.Int() {
				t.Errorf("%s: header %d, default %d", fd.Name, fd.Int(), dfd.Int())
			}
		}
		t.Errorf("header config differs from defaults")
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	cf := NewConfig()
	cf.DoEprop = EpropLabel
	cf.ThrH3 = -40
	cf.H2 = -3
	cf.ThrBase = 300
	cf.AlphaConf[0] = 0xEE
	cf.AlphaConf[15] = 0x01
	cf.AlphaConf[7] = 0x80
	var b bytes.Buffer
	if err := cf.WriteHeader(&b); err != nil {
		t.Fatal(err)
	}
	hdr := b.String()
	for _, s := range []string{"`define CLK_HALF_PERIOD", "`define SPI_KAPPA", "8'd121", "$signed(16'hFFD8)", "`define SPI_ALPHA_CONF", "128'h01"} {
		if !strings.Contains(hdr, s) {
			t.Errorf("header missing %q:\n%s", s, hdr)
		}
	}
	rc := &Config{}
	if err := rc.ReadHeader(strings.NewReader(hdr)); err != nil {
		t.Fatal(err)
	}
	rc.MaxInp, rc.MaxRec, rc.MaxOut = cf.MaxInp, cf.MaxRec, cf.MaxOut
	if !reflect.DeepEqual(cf, rc) {
		t.Errorf("header round trip differs:\n%+v\n%+v", cf, rc)
	}
}

func TestReadHeaderUnknown(t *testing.T) {
	cf := NewConfig()
	hdr := "// comment\n`define SPI_NOT_A_FIELD 3'b1\n`define KAPPA 8'd100 // no prefix\n\n"
	if err := cf.ReadHeader(strings.NewReader(hdr)); err != nil {
		t.Fatal(err)
	}
	if cf.Kappa != 100 {
		t.Errorf("kappa: %d", cf.Kappa)
	}
	if err := cf.ReadHeader(strings.NewReader("`define SPI_KAPPA 8'hZZ\n")); err == nil {
		t.Errorf("bad literal accepted")
	}
}
