// Copyright 2025 The GroveLCD Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package aip31068 controls an AiP31068 LCD driver chip over I²C.
//
// The chip implements the HD44780 instruction set behind a native I²C
// interface: every transaction is a control byte selecting the instruction
// or data register, followed by the payload byte. It is not a backpack chip
// providing GPIO pins; commands go straight to the LCD controller. The chip
// is write-only, so command pacing is done with blocking delays rather than
// busy-flag polling.
//
// Implements periph.io/x/conn/display/TextDisplay.
//
// # Datasheet
//
// https://support.newhavendisplay.com/hc/en-us/article_attachments/4414498095511
package aip31068

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/i2c"
)

// Glyph is a user defined 5x8 character bitmap for one of the eight CGRAM
// slots. Each byte is one pixel row, top row first; only the low five bits
// of each byte are used.
type Glyph [8]byte

var (
	// ErrInvalidPosition is returned when a cursor position is outside the
	// configured geometry. Writing an out of range DDRAM address produces
	// garbage on real panels, so it is rejected instead of clamped.
	ErrInvalidPosition = errors.New("position out of range")
	// ErrInvalidSlot is returned for CGRAM slots outside 0-7.
	ErrInvalidSlot = errors.New("CGRAM slot out of range")
)

// Opts holds the configuration for the display.
type Opts struct {
	// Addr is the I²C address of the chip. Leave 0 for the fixed default
	// 0x3e.
	Addr uint16
	// Rows and Cols describe the panel geometry. 16 column panels support
	// 1-2 rows, 20 column panels up to 4. Leave 0 for 16x2.
	Rows int
	Cols int
	// Backlight optionally attaches the board's backlight controller. It
	// should implement display.DisplayBacklight or
	// display.DisplayRGBBacklight. Nil if the backlight is hard-wired.
	Backlight any
	// Sleep performs the blocking settle delays the chip requires between
	// commands. Leave nil to use time.Sleep. A test harness can substitute
	// an instrumented function.
	Sleep func(time.Duration)
}

// DefaultOpts is for a 16x2 panel at the default address.
var DefaultOpts = Opts{Addr: DefaultAddr, Rows: 2, Cols: 16}

// Dev is an open handle to the display.
//
// A Dev is not safe for concurrent use. It owns the bus transactions and the
// chip's single address counter; callers that share it across goroutines
// must serialize access themselves.
type Dev struct {
	d     *i2c.Dev
	rows  int
	cols  int
	sleep func(time.Duration)

	blMono display.DisplayBacklight
	blRGB  display.DisplayRGBBacklight

	// The chip has no individually writable flag registers; the composite
	// control and entry mode bytes are rebuilt from these on every toggle.
	on         bool
	underline  bool
	blink      bool
	increment  bool
	autoscroll bool
}

// New opens the display, runs the power-on initialization sequence and
// leaves it cleared with the display on, cursor and blink off, left to
// right entry and the backlight (if any) at full intensity.
//
// On error the display must be considered uninitialized and New called
// again.
func New(bus i2c.Bus, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	addr := opts.Addr
	if addr == 0 {
		addr = DefaultAddr
	}
	rows, cols := opts.Rows, opts.Cols
	if rows == 0 && cols == 0 {
		rows, cols = 2, 16
	}
	maxRows := 2
	if cols == 20 {
		maxRows = 4
	}
	if cols < 1 || cols > 20 || rows < 1 || rows > maxRows {
		return nil, fmt.Errorf("aip31068: unsupported geometry %dx%d", cols, rows)
	}

	d := &Dev{
		d:     &i2c.Dev{Bus: bus, Addr: addr},
		rows:  rows,
		cols:  cols,
		sleep: opts.Sleep,
	}
	if d.sleep == nil {
		d.sleep = time.Sleep
	}
	// Controllers like the pca9632 implement both interfaces; capture each
	// capability separately so RGBBacklight does not degrade to white.
	if bl, ok := opts.Backlight.(display.DisplayBacklight); ok {
		d.blMono = bl
	}
	if bl, ok := opts.Backlight.(display.DisplayRGBBacklight); ok {
		d.blRGB = bl
	}
	if err := d.init(); err != nil {
		return nil, err
	}
	return d, nil
}

// init performs the power-on routine from the datasheet. The function set
// command is repeated while the controller settles; skipping the delays
// loses commands silently.
func (d *Dev) init() error {
	d.sleep(_SETTLE_POWER_ON)

	function := _CMD_FUNCTION_SET | _FUNCTION_8BIT
	if d.rows > 1 {
		function |= _FUNCTION_2LINE
	}
	if err := d.command(function); err != nil {
		return err
	}
	d.sleep(_SETTLE_FUNCTION_1ST)
	if err := d.command(function); err != nil {
		return err
	}
	d.sleep(_SETTLE_FUNCTION_2ND)
	if err := d.command(function); err != nil {
		return err
	}

	d.on = true
	d.underline = false
	d.blink = false
	if err := d.writeDisplayControl(); err != nil {
		return err
	}
	if err := d.Clear(); err != nil {
		return err
	}
	d.increment = true
	d.autoscroll = false
	if err := d.writeEntryMode(); err != nil {
		return err
	}
	// Grove boards power up with the backlight dark. A panel without an
	// attached controller is fine; a failing controller is reported.
	if err := d.Backlight(0xff); err != nil && !errors.Is(err, display.ErrNotImplemented) {
		return err
	}
	return nil
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("aip31068: %w", err)
}

// command sends one instruction byte and waits the short settle time.
func (d *Dev) command(cmd byte) error {
	if err := d.d.Tx([]byte{_CONTROL_COMMAND, cmd}, nil); err != nil {
		return wrap(err)
	}
	d.sleep(_SETTLE_SHORT)
	return nil
}

// data sends one character/CGRAM byte and waits the short settle time.
func (d *Dev) data(b byte) error {
	if err := d.d.Tx([]byte{_CONTROL_DATA, b}, nil); err != nil {
		return wrap(err)
	}
	d.sleep(_SETTLE_SHORT)
	return nil
}

// writeDisplayControl re-sends the complete display control byte. The chip
// accepts only the composite command, never a single flag.
func (d *Dev) writeDisplayControl() error {
	cmd := _CMD_DISPLAY_CONTROL
	if d.on {
		cmd |= _DISPLAY_ON
	}
	if d.underline {
		cmd |= _CURSOR_ON
	}
	if d.blink {
		cmd |= _BLINK_ON
	}
	return d.command(cmd)
}

// writeEntryMode re-sends the complete entry mode byte.
func (d *Dev) writeEntryMode() error {
	cmd := _CMD_ENTRY_MODE
	if d.increment {
		cmd |= _ENTRY_INCREMENT
	}
	if d.autoscroll {
		cmd |= _ENTRY_AUTOSCROLL
	}
	return d.command(cmd)
}

// Clear erases the display and moves the cursor home. This is one of the
// two long-running commands.
func (d *Dev) Clear() error {
	if err := d.command(_CMD_CLEAR); err != nil {
		return err
	}
	d.sleep(_SETTLE_LONG)
	return nil
}

// Home moves the cursor home and undoes any display scroll without erasing
// the content.
func (d *Dev) Home() error {
	if err := d.command(_CMD_HOME); err != nil {
		return err
	}
	d.sleep(_SETTLE_LONG)
	return nil
}

// SetCursor moves the cursor to the 0-based column and row.
func (d *Dev) SetCursor(col, row int) error {
	if col < 0 || col >= d.cols || row < 0 || row >= d.rows {
		return fmt.Errorf("aip31068: SetCursor(%d,%d): %w", col, row, ErrInvalidPosition)
	}
	return d.command(_CMD_SET_DDRAM_ADDR | (_rowOffsets[row] + byte(col)))
}

// MoveTo moves the cursor to an arbitrary 0-based row and column.
// Implements display.TextDisplay.
func (d *Dev) MoveTo(row, col int) error {
	return d.SetCursor(col, row)
}

// Move shifts the cursor one position forward or backward without writing.
func (d *Dev) Move(dir display.CursorDirection) error {
	cmd := _CMD_SHIFT
	switch dir {
	case display.Backward:
	case display.Forward:
		cmd |= _SHIFT_RIGHT
	default:
		return wrap(display.ErrNotImplemented)
	}
	return d.command(cmd)
}

// Display turns the display on or off. Content and cursor position are
// preserved while off.
func (d *Dev) Display(on bool) error {
	d.on = on
	return d.writeDisplayControl()
}

// Underline shows or hides the underline cursor.
func (d *Dev) Underline(on bool) error {
	d.underline = on
	return d.writeDisplayControl()
}

// Blink enables or disables blinking of the character cell at the cursor.
func (d *Dev) Blink(on bool) error {
	d.blink = on
	return d.writeDisplayControl()
}

// Cursor sets the cursor mode. You can pass multiple arguments.
// Cursor(CursorUnderline, CursorBlink)
func (d *Dev) Cursor(modes ...display.CursorMode) error {
	underline, blink := false, false
	for _, mode := range modes {
		switch mode {
		case display.CursorOff:
		case display.CursorUnderline:
			underline = true
		case display.CursorBlink, display.CursorBlock:
			blink = true
		default:
			return wrap(display.ErrInvalidCommand)
		}
	}
	d.underline = underline
	d.blink = blink
	return d.writeDisplayControl()
}

// LeftToRight makes writes advance the cursor to the right.
func (d *Dev) LeftToRight() error {
	d.increment = true
	return d.writeEntryMode()
}

// RightToLeft makes writes advance the cursor to the left.
func (d *Dev) RightToLeft() error {
	d.increment = false
	return d.writeEntryMode()
}

// AutoScroll shifts the display instead of the cursor on every write when
// enabled.
func (d *Dev) AutoScroll(enabled bool) error {
	d.autoscroll = enabled
	return d.writeEntryMode()
}

// ScrollDisplayLeft shifts the whole display one position to the left. This
// is a transient shift, not a mode; DDRAM content is unchanged.
func (d *Dev) ScrollDisplayLeft() error {
	return d.command(_CMD_SHIFT | _SHIFT_DISPLAY)
}

// ScrollDisplayRight shifts the whole display one position to the right.
func (d *Dev) ScrollDisplayRight() error {
	return d.command(_CMD_SHIFT | _SHIFT_DISPLAY | _SHIFT_RIGHT)
}

// CreateChar writes a 5x8 glyph into one of the eight CGRAM slots. The
// glyph shows as character code slot (and slot+8). CGRAM and DDRAM share
// the chip's single address counter, so the cursor is repositioned home
// afterwards; follow with SetCursor before writing text.
func (d *Dev) CreateChar(slot int, glyph Glyph) error {
	if slot < 0 || slot > 7 {
		return fmt.Errorf("aip31068: CreateChar(%d): %w", slot, ErrInvalidSlot)
	}
	if err := d.command(_CMD_SET_CGRAM_ADDR | byte(slot)<<3); err != nil {
		return err
	}
	for _, b := range glyph {
		if err := d.data(b); err != nil {
			return err
		}
	}
	return d.Home()
}

// WriteChar writes a single raw character byte at the cursor position. Any
// 8 bit value is passed through to the character ROM/CGRAM unchanged.
func (d *Dev) WriteChar(b byte) error {
	return d.data(b)
}

// Write writes raw character bytes to the display. Characters past the end
// of a row follow the chip's internal DDRAM addressing; no software
// wrapping is applied.
func (d *Dev) Write(p []byte) (int, error) {
	for i, b := range p {
		if err := d.data(b); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

// WriteString writes a string to the display.
func (d *Dev) WriteString(text string) (int, error) {
	return d.Write([]byte(text))
}

// Backlight sets the backlight intensity, 0 is off and 255 full on.
func (d *Dev) Backlight(intensity display.Intensity) error {
	if d.blMono != nil {
		return d.blMono.Backlight(intensity)
	}
	if d.blRGB != nil {
		return d.blRGB.RGBBacklight(intensity, intensity, intensity)
	}
	return wrap(display.ErrNotImplemented)
}

// RGBBacklight sets the backlight color on boards with an RGB backlight
// controller. The range of the values is 0-255.
func (d *Dev) RGBBacklight(red, green, blue display.Intensity) error {
	if d.blRGB != nil {
		return d.blRGB.RGBBacklight(red, green, blue)
	}
	if d.blMono != nil {
		return d.blMono.Backlight(red | green | blue)
	}
	return wrap(display.ErrNotImplemented)
}

// Cols returns the number of columns the display supports.
func (d *Dev) Cols() int {
	return d.cols
}

// Rows returns the number of rows the display supports.
func (d *Dev) Rows() int {
	return d.rows
}

// MinCol returns the minimum column position.
func (d *Dev) MinCol() int {
	return 0
}

// MinRow returns the minimum row position.
func (d *Dev) MinRow() int {
	return 0
}

// Halt clears the display and turns the display and backlight off.
// Implements conn.Resource.
func (d *Dev) Halt() error {
	_ = d.Clear()
	_ = d.Display(false)
	_ = d.Backlight(0)
	return nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("aip31068: %dx%d on %s", d.cols, d.rows, d.d.String())
}

var _ conn.Resource = &Dev{}
var _ display.TextDisplay = &Dev{}
var _ display.DisplayBacklight = &Dev{}
var _ display.DisplayRGBBacklight = &Dev{}
