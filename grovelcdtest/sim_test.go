// Copyright 2025 The GroveLCD Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package grovelcdtest

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestProbe(t *testing.T) {
	s := &Sim{}
	if err := s.Tx(0x3e, nil, nil); err != nil {
		t.Errorf("LCD probe: %v", err)
	}
	if err := s.Tx(0x62, nil, nil); err != nil {
		t.Errorf("RGB probe: %v", err)
	}
	if err := s.Tx(0x30, nil, nil); err == nil {
		t.Error("probe of an absent controller succeeded")
	}
	if err := s.Tx(0x3e, nil, make([]byte, 1)); err == nil {
		t.Error("read from a write-only board succeeded")
	}
}

func TestProbeV5(t *testing.T) {
	s := &Sim{RGBAddr: 0x30}
	if err := s.Tx(0x30, nil, nil); err != nil {
		t.Errorf("RGB probe: %v", err)
	}
	if err := s.Tx(0x62, nil, nil); err == nil {
		t.Error("probe of an absent controller succeeded")
	}
}

func write(t *testing.T, s *Sim, addr uint16, w ...byte) {
	t.Helper()
	if err := s.Tx(addr, w, nil); err != nil {
		t.Fatal(err)
	}
}

func TestDDRAM(t *testing.T) {
	s := &Sim{}
	write(t, s, 0x3e, 0x80, 0x80)      // DDRAM address 0
	write(t, s, 0x3e, 0x40, 'H', 'I')  // burst data write
	write(t, s, 0x3e, 0x80, 0xc0)      // row 1
	write(t, s, 0x3e, 0x40, 'L')
	write(t, s, 0x3e, 0x40, 'O')
	if got, want := s.Line(0), "HI              "; got != want {
		t.Errorf("row 0 = %q, want %q", got, want)
	}
	if got, want := s.Line(1), "LO              "; got != want {
		t.Errorf("row 1 = %q, want %q", got, want)
	}
	// Clear wipes everything.
	write(t, s, 0x3e, 0x80, 0x01)
	if got := strings.TrimSpace(s.Line(0) + s.Line(1)); got != "" {
		t.Errorf("content after clear: %q", got)
	}
}

func TestShift(t *testing.T) {
	s := &Sim{}
	write(t, s, 0x3e, 0x80, 0x80)
	write(t, s, 0x3e, 0x40, 'A', 'B', 'C')
	write(t, s, 0x3e, 0x80, 0x18) // shift display left
	if got := s.Line(0)[:2]; got != "BC" {
		t.Errorf("after shift left: %q", got)
	}
	write(t, s, 0x3e, 0x80, 0x1c) // shift display right
	if got := s.Line(0)[:3]; got != "ABC" {
		t.Errorf("after shift back: %q", got)
	}
	write(t, s, 0x3e, 0x80, 0x18)
	write(t, s, 0x3e, 0x80, 0x02) // home undoes the shift
	if got := s.Line(0)[:3]; got != "ABC" {
		t.Errorf("after home: %q", got)
	}
}

func TestCGRAM(t *testing.T) {
	s := &Sim{}
	glyph := [8]byte{0x00, 0x0a, 0x1f, 0x1f, 0x0e, 0x04, 0x00, 0x00}
	write(t, s, 0x3e, 0x80, 0x40|2<<3) // CGRAM slot 2
	for _, b := range glyph {
		write(t, s, 0x3e, 0x40, b)
	}
	if diff := cmp.Diff(glyph, s.Glyph(2)); diff != "" {
		t.Errorf("slot 2 mismatch (-want +got):\n%s", diff)
	}
	if s.Glyph(0) != [8]byte{} {
		t.Error("slot 0 written unexpectedly")
	}
}

func TestColor(t *testing.T) {
	v4 := &Sim{}
	write(t, v4, 0x62, 0x04, 0x11) // red
	write(t, v4, 0x62, 0x03, 0x22) // green
	write(t, v4, 0x62, 0x02, 0x33) // blue
	if c := v4.Color(); c.R != 0x11 || c.G != 0x22 || c.B != 0x33 {
		t.Errorf("v4 color = %v", c)
	}

	v5 := &Sim{RGBAddr: 0x30}
	write(t, v5, 0x30, 0x06, 0x11)
	write(t, v5, 0x30, 0x07, 0x22)
	write(t, v5, 0x30, 0x08, 0x33)
	if c := v5.Color(); c.R != 0x11 || c.G != 0x22 || c.B != 0x33 {
		t.Errorf("v5 color = %v", c)
	}
}

func TestBadWrites(t *testing.T) {
	s := &Sim{}
	if err := s.Tx(0x3e, []byte{0x99, 0x00}, nil); err == nil {
		t.Error("bad control byte accepted")
	}
	if err := s.Tx(0x3e, []byte{0x80, 0x01, 0x02}, nil); err == nil {
		t.Error("oversized command frame accepted")
	}
	if err := s.Tx(0x3e, []byte{0x80, 0x00}, nil); err == nil {
		t.Error("null command accepted")
	}
	if err := s.Tx(0x62, []byte{0x40, 0x00}, nil); err == nil {
		t.Error("out of range backlight register accepted")
	}
}

func TestRender(t *testing.T) {
	s := &Sim{}
	write(t, s, 0x3e, 0x80, 0x0c) // display on
	write(t, s, 0x3e, 0x40, 'H', 'I')
	var b strings.Builder
	if err := s.Render(&b); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	if !strings.Contains(out, "+----------------+") {
		t.Errorf("missing border:\n%s", out)
	}
	if !strings.Contains(out, "|HI              |") {
		t.Errorf("missing content:\n%s", out)
	}

	// With the display off the content is hidden but retained.
	write(t, s, 0x3e, 0x80, 0x08)
	b.Reset()
	if err := s.Render(&b); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(b.String(), "HI") {
		t.Errorf("content visible while off:\n%s", b.String())
	}
}
