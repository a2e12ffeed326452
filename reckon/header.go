// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reckon

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"math/big"
	"os"
	"strings"

	"github.com/goki/gi/gi"
	"github.com/pkg/errors"
)

// SPIPrefix is the prefix of the fields shifted in over the configuration bus
const SPIPrefix = "SPI_"

// AlphaConfName is the header name of the packed per-neuron leak factors
const AlphaConfName = "ALPHA_CONF"

// AlphaConfWidth is the width of ALPHA_CONF in bits
const AlphaConfWidth = NAlpha * 8

// testbench-level fields, written without the SPI_ prefix
var tbFields = map[string]bool{
	"CLK_HALF_PERIOD": true,
	"SCK_HALF_PERIOD": true,
	"EPOCHS":          true,
	"THR_BASE":        true,
}

// ParseLiteral parses a Verilog integer literal as used in `define lines:
// plain decimals, sized literals such as 8'h79, 3'b011, 5'd8 (underscores
// allowed), optionally wrapped in $signed( ), which sign-extends from the
// literal width.  Sized values are truncated to their width.  Returns the
// value and the literal width (0 if unsized).
func ParseLiteral(s string) (*big.Int, int, error) {
	s = strings.TrimSpace(s)
	signed := false
	if strings.HasPrefix(s, "$signed(") && strings.HasSuffix(s, ")") {
		signed = true
		s = strings.TrimSpace(s[len("$signed(") : len(s)-1])
	}
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = strings.TrimSpace(s[1:])
	}
	s = strings.ReplaceAll(s, "_", "")
	ap := strings.IndexByte(s, '\'')
	v := new(big.Int)
	if ap < 0 {
		if _, ok := v.SetString(s, 10); !ok {
			return nil, 0, errors.Errorf("reckon.ParseLiteral: invalid decimal %q", s)
		}
		if neg {
			v.Neg(v)
		}
		return v, 0, nil
	}
	width := 0
	if ap > 0 {
		if _, err := fmt.Sscanf(s[:ap], "%d", &width); err != nil || width <= 0 {
			return nil, 0, errors.Errorf("reckon.ParseLiteral: invalid width in %q", s)
		}
	}
	rest := s[ap+1:]
	if strings.HasPrefix(rest, "s") || strings.HasPrefix(rest, "S") {
		signed = true
		rest = rest[1:]
	}
	if rest == "" {
		return nil, 0, errors.Errorf("reckon.ParseLiteral: missing base in %q", s)
	}
	base := 0
	switch rest[0] {
	case 'b', 'B':
		base = 2
	case 'o', 'O':
		base = 8
	case 'd', 'D':
		base = 10
	case 'h', 'H':
		base = 16
	default:
		return nil, 0, errors.Errorf("reckon.ParseLiteral: invalid base %q in %q", rest[0], s)
	}
	if _, ok := v.SetString(rest[1:], base); !ok {
		return nil, 0, errors.Errorf("reckon.ParseLiteral: invalid digits in %q", s)
	}
	if neg {
		v.Neg(v)
	}
	if width > 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(width))
		v.Mod(v, mod)
		if signed {
			half := new(big.Int).Rsh(mod, 1)
			if v.Cmp(half) >= 0 {
				v.Sub(v, mod)
			}
		}
	}
	return v, width, nil
}

// ReadHeader reads `define lines of a testbench header into the config,
// overriding only the fields present.  The SPI_ prefix is optional.
// Unknown names are logged and skipped; values that do not fit their
// register are stored as given and left for Validate to report.
func (cf *Config) ReadHeader(r io.Reader) error {
	sc := bufio.NewScanner(r)
	ln := 0
	for sc.Scan() {
		ln++
		line := sc.Text()
		if ci := strings.Index(line, "//"); ci >= 0 {
			line = line[:ci]
		}
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "`define") {
			continue
		}
		fs := strings.Fields(line[len("`define"):])
		if len(fs) < 2 {
			return errors.Errorf("reckon.ReadHeader: line %d: missing value", ln)
		}
		name := strings.TrimPrefix(fs[0], SPIPrefix)
		lit := strings.Join(fs[1:], "")
		v, _, err := ParseLiteral(lit)
		if err != nil {
			return errors.Wrapf(err, "reckon.ReadHeader: line %d: %s", ln, name)
		}
		if name == AlphaConfName {
			cf.SetAlphaConf(v)
			continue
		}
		fd, ok := cf.FieldByName(name)
		if !ok {
			log.Printf("reckon.ReadHeader: line %d: unknown field %s skipped\n", ln, fs[0])
			continue
		}
		if !v.IsInt64() {
			return NewError(ConfigInvalid, name, "header value %v does not fit 64 bits", v)
		}
		fd.SetInt(v.Int64())
	}
	return sc.Err()
}

// OpenHeader reads a testbench header file into the config
func (cf *Config) OpenHeader(filename gi.FileName) error {
	fp, err := os.Open(string(filename))
	if err != nil {
		log.Println(err)
		return err
	}
	defer fp.Close()
	return cf.ReadHeader(fp)
}

// AlphaConfInt returns the packed leak factors: byte i of AlphaConf holds bits 8i..8i+7
func (cf *Config) AlphaConfInt() *big.Int {
	v := new(big.Int)
	for i := NAlpha - 1; i >= 0; i-- {
		v.Lsh(v, 8)
		v.Or(v, big.NewInt(int64(cf.AlphaConf[i])))
	}
	return v
}

// SetAlphaConf unpacks the leak factors from the packed value
func (cf *Config) SetAlphaConf(v *big.Int) {
	w := new(big.Int).Set(v)
	mask := big.NewInt(0xFF)
	b := new(big.Int)
	for i := 0; i < NAlpha; i++ {
		cf.AlphaConf[i] = uint8(b.And(w, mask).Int64())
		w.Rsh(w, 8)
	}
}

func literal(fd *Field) string {
	v := fd.Int()
	switch {
	case fd.Signed:
		u := v & (int64(1)<<uint(fd.Width) - 1)
		if v >= 0 {
			return fmt.Sprintf("$signed(%d'd%d)", fd.Width, v)
		}
		return fmt.Sprintf("$signed(%d'h%X)", fd.Width, u)
	case fd.Width == 1:
		return fmt.Sprintf("1'b%d", v&1)
	case tbFields[fd.Name]:
		return fmt.Sprintf("%d", v)
	case strings.HasPrefix(fd.Name, "SEED_"):
		return fmt.Sprintf("%d'h%X", fd.Width, v)
	default:
		return fmt.Sprintf("%d'd%d", fd.Width, v)
	}
}

// WriteHeader writes the config as testbench `define lines, in header order
func (cf *Config) WriteHeader(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, fd := range cf.Fields() {
		nm := fd.Name
		if !tbFields[nm] {
			nm = SPIPrefix + nm
		}
		fmt.Fprintf(bw, "`define %-27s %s\n", nm, literal(&fd))
		if fd.Name == "CYCLES_PER_TICK" {
			fmt.Fprintf(bw, "`define %-27s %d'h%0*X\n", SPIPrefix+AlphaConfName, AlphaConfWidth, AlphaConfWidth/4, cf.AlphaConfInt())
		}
	}
	return bw.Flush()
}

// SaveHeader writes the config to a testbench header file
func (cf *Config) SaveHeader(filename gi.FileName) error {
	fp, err := os.Create(string(filename))
	if err != nil {
		log.Println(err)
		return err
	}
	defer fp.Close()
	return cf.WriteHeader(fp)
}
