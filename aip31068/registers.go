// Copyright 2025 The GroveLCD Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package aip31068

import "time"

// DefaultAddr is the fixed I²C address of the AiP31068 LCD controller.
const DefaultAddr uint16 = 0x3e

// Every I²C frame sent to the chip starts with a control byte selecting the
// instruction register or the data register.
const (
	_CONTROL_COMMAND byte = 0x80
	_CONTROL_DATA    byte = 0x40
)

// HD44780 instruction set. The high bit of each command selects the
// instruction, the low bits carry its options.
const (
	_CMD_CLEAR           byte = 0x01
	_CMD_HOME            byte = 0x02
	_CMD_ENTRY_MODE      byte = 0x04
	_CMD_DISPLAY_CONTROL byte = 0x08
	_CMD_SHIFT           byte = 0x10
	_CMD_FUNCTION_SET    byte = 0x20
	_CMD_SET_CGRAM_ADDR  byte = 0x40
	_CMD_SET_DDRAM_ADDR  byte = 0x80
)

const (
	// Options for _CMD_ENTRY_MODE.
	_ENTRY_INCREMENT  byte = 0x02
	_ENTRY_AUTOSCROLL byte = 0x01

	// Options for _CMD_DISPLAY_CONTROL.
	_DISPLAY_ON byte = 0x04
	_CURSOR_ON  byte = 0x02
	_BLINK_ON   byte = 0x01

	// Options for _CMD_SHIFT. Without _SHIFT_DISPLAY the address counter
	// moves instead of the display window.
	_SHIFT_DISPLAY byte = 0x08
	_SHIFT_RIGHT   byte = 0x04

	// Options for _CMD_FUNCTION_SET. The AiP31068 always runs its bus
	// interface in 8 bit mode.
	_FUNCTION_8BIT  byte = 0x10
	_FUNCTION_2LINE byte = 0x08
)

// DDRAM base address of each row. 16 column panels provide rows 0-1, 20
// column panels rows 0-3.
var _rowOffsets = [4]byte{0x00, 0x40, 0x14, 0x54}

// Minimum settle times from the HD44780 datasheet. Omitting them causes
// silent command loss on real hardware.
const (
	_SETTLE_POWER_ON     = 50 * time.Millisecond
	_SETTLE_FUNCTION_1ST = 4500 * time.Microsecond
	_SETTLE_FUNCTION_2ND = 150 * time.Microsecond
	_SETTLE_SHORT        = 50 * time.Microsecond
	_SETTLE_LONG         = 2 * time.Millisecond
)
