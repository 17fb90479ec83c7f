// Copyright 2025 The GroveLCD Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package grovelcdtest emulates a Grove LCD RGB Backlight board for use in
// tests and while waiting for real hardware to arrive by mail.
//
// Sim implements i2c.Bus and decodes the write stream of both chips on the
// board: the AiP31068 LCD controller command set into DDRAM/CGRAM and
// display flags, and the backlight controller registers into a color. Only
// one RGB controller address acknowledges, so hardware detection behaves
// exactly as on a real board of the configured revision. The panel state
// can be inspected programmatically or rendered to a terminal with ANSI
// colors.
package grovelcdtest

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"strings"
	"sync"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

var _rowOffsets = [4]byte{0x00, 0x40, 0x14, 0x54}

// Sim is a fake i2c.Bus behaving like a Grove LCD RGB Backlight board.
//
// The zero value emulates a stock 16x2 v4 board. Set RGBAddr to 0x30 for a
// v5 board. The DDRAM address model is simplified to two linear 64 byte
// banks, which is faithful for everything a driver normally does.
type Sim struct {
	// LCDAddr is the address of the LCD controller. Leave 0 for 0x3e.
	LCDAddr uint16
	// RGBAddr is the address of the backlight controller, and decides
	// which register layout is decoded. Leave 0 for 0x62 (v4); set 0x30
	// for a v5 board.
	RGBAddr uint16
	// Rows and Cols describe the panel geometry used by Line and Render.
	// Leave 0 for 16x2.
	Rows int
	Cols int

	mu    sync.Mutex
	ddram [128]byte
	cgram [64]byte
	regs  [16]byte

	ac        byte
	inCGRAM   bool
	origin    int
	increment bool
	shifting  bool

	on        bool
	underline bool
	blink     bool

	started bool
}

func (s *Sim) String() string {
	return "grovelcdsim"
}

// SetSpeed is accepted and ignored.
func (s *Sim) SetSpeed(f physic.Frequency) error {
	return nil
}

// Tx decodes one bus transaction. Zero length writes act as address probes.
// Reads fail; the board is write-only.
func (s *Sim) Tx(addr uint16, w, r []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensure()
	if len(r) != 0 {
		return errors.New("grovelcdtest: board is write-only")
	}
	switch addr {
	case s.LCDAddr:
		return s.lcdWrite(w)
	case s.RGBAddr:
		return s.rgbWrite(w)
	}
	return fmt.Errorf("grovelcdtest: no device at %#02x", addr)
}

func (s *Sim) ensure() {
	if s.started {
		return
	}
	s.started = true
	if s.LCDAddr == 0 {
		s.LCDAddr = 0x3e
	}
	if s.RGBAddr == 0 {
		s.RGBAddr = 0x62
	}
	if s.Rows == 0 && s.Cols == 0 {
		s.Rows, s.Cols = 2, 16
	}
	for i := range s.ddram {
		s.ddram[i] = ' '
	}
	s.increment = true
}

func (s *Sim) lcdWrite(w []byte) error {
	if len(w) == 0 {
		return nil
	}
	switch w[0] {
	case 0x80:
		if len(w) != 2 {
			return fmt.Errorf("grovelcdtest: command frame of %d bytes", len(w))
		}
		return s.command(w[1])
	case 0x40:
		for _, b := range w[1:] {
			s.data(b)
		}
		return nil
	}
	return fmt.Errorf("grovelcdtest: unknown control byte %#02x", w[0])
}

func (s *Sim) rgbWrite(w []byte) error {
	if len(w) == 0 {
		return nil
	}
	if len(w) != 2 || int(w[0]) >= len(s.regs) {
		return fmt.Errorf("grovelcdtest: bad backlight write % x", w)
	}
	s.regs[w[0]] = w[1]
	return nil
}

func (s *Sim) command(cmd byte) error {
	switch {
	case cmd >= 0x80: // set DDRAM address
		s.ac = cmd & 0x7f
		s.inCGRAM = false
	case cmd >= 0x40: // set CGRAM address
		s.ac = cmd & 0x3f
		s.inCGRAM = true
	case cmd >= 0x20: // function set
	case cmd >= 0x10: // cursor/display shift
		if cmd&0x08 != 0 {
			if cmd&0x04 != 0 {
				s.origin--
			} else {
				s.origin++
			}
		} else {
			s.step(cmd&0x04 != 0)
		}
	case cmd >= 0x08: // display control
		s.on = cmd&0x04 != 0
		s.underline = cmd&0x02 != 0
		s.blink = cmd&0x01 != 0
	case cmd >= 0x04: // entry mode set
		s.increment = cmd&0x02 != 0
		s.shifting = cmd&0x01 != 0
	case cmd == 0x02: // return home
		s.ac = 0
		s.inCGRAM = false
		s.origin = 0
	case cmd == 0x01: // clear display
		for i := range s.ddram {
			s.ddram[i] = ' '
		}
		s.ac = 0
		s.inCGRAM = false
		s.origin = 0
		s.increment = true
	default:
		return fmt.Errorf("grovelcdtest: unknown command %#02x", cmd)
	}
	return nil
}

func (s *Sim) data(b byte) {
	if s.inCGRAM {
		s.cgram[s.ac&0x3f] = b
	} else {
		s.ddram[s.ac&0x7f] = b
	}
	s.step(s.increment)
	if s.shifting && !s.inCGRAM {
		if s.increment {
			s.origin++
		} else {
			s.origin--
		}
	}
}

// step advances the shared address counter.
func (s *Sim) step(forward bool) {
	mask := byte(0x7f)
	if s.inCGRAM {
		mask = 0x3f
	}
	if forward {
		s.ac = (s.ac + 1) & mask
	} else {
		s.ac = (s.ac - 1) & mask
	}
}

// Line returns the visible content of a row as raw character codes.
func (s *Sim) Line(row int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensure()
	if row < 0 || row >= s.Rows || row >= len(_rowOffsets) {
		return ""
	}
	offset := _rowOffsets[row]
	bank := offset & 0x40
	pos := int(offset & 0x3f)
	b := make([]byte, s.Cols)
	for i := range b {
		j := (pos + i + s.origin) % 40
		if j < 0 {
			j += 40
		}
		b[i] = s.ddram[int(bank)+j]
	}
	return string(b)
}

// Glyph returns the bitmap stored in a CGRAM slot.
func (s *Sim) Glyph(slot int) [8]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensure()
	var g [8]byte
	if slot >= 0 && slot < 8 {
		copy(g[:], s.cgram[slot*8:slot*8+8])
	}
	return g
}

// Color returns the backlight color from the controller's PWM registers.
func (s *Sim) Color() color.NRGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensure()
	if s.RGBAddr == 0x30 {
		return color.NRGBA{R: s.regs[0x06], G: s.regs[0x07], B: s.regs[0x08], A: 255}
	}
	return color.NRGBA{R: s.regs[0x04], G: s.regs[0x03], B: s.regs[0x02], A: 255}
}

// DisplayOn reports whether the display is switched on.
func (s *Sim) DisplayOn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensure()
	return s.on
}

// Render draws the panel and its backlight color to w using ANSI color
// codes. If w is nil, a colorable stdout is used.
func (s *Sim) Render(w io.Writer) error {
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	s.mu.Lock()
	rows, cols, on := s.Rows, s.Cols, s.on
	s.mu.Unlock()

	swatch := strings.Repeat(ansi256.Default.Block(s.Color()), 4) + "\033[0m"
	border := "+" + strings.Repeat("-", cols) + "+"

	var b strings.Builder
	b.WriteString(border)
	b.WriteByte('\n')
	for row := 0; row < rows; row++ {
		line := strings.Repeat(" ", cols)
		if on {
			line = printable(s.Line(row))
		}
		fmt.Fprintf(&b, "|%s|\n", line)
	}
	b.WriteString(border)
	b.WriteString(" backlight ")
	b.WriteString(swatch)
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

// printable maps CGRAM glyph codes and other non ASCII codes to stand-ins.
func printable(line string) string {
	b := []byte(line)
	for i, c := range b {
		if c < 8 {
			b[i] = '#'
		} else if c < 0x20 || c > 0x7e {
			b[i] = ' '
		}
	}
	return string(b)
}

var _ i2c.Bus = &Sim{}
