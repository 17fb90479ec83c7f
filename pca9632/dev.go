// Copyright 2025 The GroveLCD Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pca9632 controls a PCA9632 compatible four channel LED PWM
// controller over I²C. Grove LCD RGB Backlight boards up to v4 use this
// chip for the backlight, with blue, green and red on PWM channels 0-2.
//
// # Datasheet
//
// https://www.nxp.com/docs/en/data-sheet/PCA9632.pdf
package pca9632

import (
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/i2c"
)

// DefaultAddr is the address the chip responds to on Grove LCD v4 boards.
const DefaultAddr uint16 = 0x62

// Register offsets from the datasheet.
const (
	_DEV_MODE1 byte = iota
	_DEV_MODE2
	_PWM0
	_PWM1
	_PWM2
	_PWM3
	_GRPPWM
	_GRPFREQ
	_LEDOUT
)

// The board wires the backlight LEDs to fixed channels.
const (
	_PWM_BLUE  = _PWM0
	_PWM_GREEN = _PWM1
	_PWM_RED   = _PWM2
)

// All four outputs in individual+group PWM mode.
const _LEDOUT_ALL_PWM byte = 0xff

// Dev represents a PCA9632 LED PWM controller.
type Dev struct {
	d *i2c.Dev
}

// New returns an initialized PCA9632 ready for use: oscillator running,
// group dimming off and all outputs under PWM control.
func New(bus i2c.Bus, address uint16) (*Dev, error) {
	dev := &Dev{d: &i2c.Dev{Bus: bus, Addr: address}}
	return dev, dev.init()
}

func (d *Dev) init() error {
	// MODE1 bit 4 must be written 0 to wake the oscillator from sleep.
	for _, w := range [][2]byte{
		{_DEV_MODE1, 0x00},
		{_DEV_MODE2, 0x00},
		{_LEDOUT, _LEDOUT_ALL_PWM},
	} {
		if err := d.d.Tx(w[:], nil); err != nil {
			return wrap(err)
		}
	}
	return nil
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("pca9632: %w", err)
}

// RGBBacklight sets the backlight color. The range of the values is 0-255.
// The channels are non-contiguous relative to other backlight chips, so the
// registers are written individually.
func (d *Dev) RGBBacklight(red, green, blue display.Intensity) error {
	for _, w := range [][2]byte{
		{_PWM_RED, byte(red & 0xff)},
		{_PWM_GREEN, byte(green & 0xff)},
		{_PWM_BLUE, byte(blue & 0xff)},
	} {
		if err := d.d.Tx(w[:], nil); err != nil {
			return wrap(err)
		}
	}
	return nil
}

// Backlight sets all three channels to the same intensity, 0 is off and
// 255 full on.
func (d *Dev) Backlight(intensity display.Intensity) error {
	return d.RGBBacklight(intensity, intensity, intensity)
}

// Halt turns the backlight off. Implements conn.Resource.
func (d *Dev) Halt() error {
	return d.RGBBacklight(0, 0, 0)
}

func (d *Dev) String() string {
	return fmt.Sprintf("pca9632: %s", d.d.String())
}

var _ conn.Resource = &Dev{}
var _ display.DisplayBacklight = &Dev{}
var _ display.DisplayRGBBacklight = &Dev{}
