// Copyright 2025 The GroveLCD Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sgm31323 controls an SGM31323 three channel LED controller over
// I²C. Grove LCD RGB Backlight v5 boards use this chip for the backlight,
// with red, green and blue on LED channels 1-3. The register layout is not
// compatible with the PCA9632 used on earlier boards.
//
// # Datasheet
//
// https://www.sg-micro.com/uploads/soft/20220506/1651829741.pdf
package sgm31323

import (
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/i2c"
)

// DefaultAddr is the address the chip responds to on Grove LCD v5 boards.
const DefaultAddr uint16 = 0x30

const (
	// Shutdown/control register; the low three bits enable the channels.
	_CTRL byte = 0x00
	// LED mode register; two bits per channel, 0b01 selects PWM dimming.
	_LED_MODE byte = 0x04
	// PWM duty registers.
	_PWM_RED   byte = 0x06
	_PWM_GREEN byte = 0x07
	_PWM_BLUE  byte = 0x08
)

const (
	_CTRL_ENABLE_ALL  byte = 0x07
	_LED_MODE_ALL_PWM byte = 0x15
)

// Dev represents an SGM31323 LED controller.
type Dev struct {
	d *i2c.Dev
}

// New returns an initialized SGM31323 with all three channels enabled and
// under PWM control.
func New(bus i2c.Bus, address uint16) (*Dev, error) {
	dev := &Dev{d: &i2c.Dev{Bus: bus, Addr: address}}
	return dev, dev.init()
}

func (d *Dev) init() error {
	for _, w := range [][2]byte{
		{_CTRL, _CTRL_ENABLE_ALL},
		{_LED_MODE, _LED_MODE_ALL_PWM},
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
	return fmt.Errorf("sgm31323: %w", err)
}

// RGBBacklight sets the backlight color. The range of the values is 0-255.
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
	return fmt.Sprintf("sgm31323: %s", d.d.String())
}

var _ conn.Resource = &Dev{}
var _ display.DisplayBacklight = &Dev{}
var _ display.DisplayRGBBacklight = &Dev{}
