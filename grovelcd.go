// Copyright 2025 The GroveLCD Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package grovelcd controls the Seeed Grove 16x2 LCD with RGB backlight.
//
// The board carries two chips on one Grove I²C connector: an [aip31068]
// HD44780 compatible character controller at 0x3e, and an RGB backlight
// controller whose type depends on the board revision:
//
//   - up to v4: PCA9632 compatible LED PWM controller at 0x62
//   - v5: SGM31323 LED controller at 0x30
//
// The two register layouts are incompatible, so New probes both addresses
// once and wires up the matching [pca9632] or [sgm31323] controller. The
// returned Dev exposes the full text display surface plus the RGB
// backlight.
//
// # Datasheet
//
// https://wiki.seeedstudio.com/Grove-LCD_RGB_Backlight/
package grovelcd

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/i2c"

	"github.com/grovekit/grovelcd/aip31068"
	"github.com/grovekit/grovelcd/pca9632"
	"github.com/grovekit/grovelcd/sgm31323"
)

// Variant identifies the backlight controller fitted to a board revision.
type Variant string

const (
	// VariantAuto probes the bus to find the controller.
	VariantAuto Variant = ""
	// VariantV4 is the PCA9632 compatible controller at 0x62.
	VariantV4 Variant = "v4"
	// VariantV5 is the SGM31323 controller at 0x30.
	VariantV5 Variant = "v5"
)

// ErrNoBacklightController is returned when neither RGB controller address
// acknowledges during detection.
var ErrNoBacklightController = errors.New("grovelcd: no RGB backlight controller found")

// Opts holds the configuration for the display.
type Opts struct {
	// Rows and Cols describe the panel geometry. Leave 0 for the stock
	// 16x2 panel.
	Rows int
	Cols int
	// Variant pins the board revision and skips bus probing. Leave
	// VariantAuto to detect it.
	Variant Variant
	// Sleep performs the blocking settle delays between LCD commands.
	// Leave nil to use time.Sleep.
	Sleep func(time.Duration)
}

// DefaultOpts is for a stock board with auto detection.
var DefaultOpts = Opts{Rows: 2, Cols: 16}

// Dev is an open handle to the display and its backlight.
type Dev struct {
	*aip31068.Dev
	variant Variant
}

// Detect probes the bus for the RGB backlight controller with a zero
// length write at each candidate address and reports the board variant.
// Detection runs once; the hardware is assumed static afterwards.
func Detect(bus i2c.Bus) (Variant, error) {
	if err := bus.Tx(pca9632.DefaultAddr, nil, nil); err == nil {
		return VariantV4, nil
	}
	if err := bus.Tx(sgm31323.DefaultAddr, nil, nil); err == nil {
		return VariantV5, nil
	}
	return VariantAuto, ErrNoBacklightController
}

// New opens and initializes the display. The backlight controller is
// detected (unless pinned through Opts.Variant) and initialized first,
// then the LCD controller runs its power-on sequence. On error nothing is
// assumed initialized and New must be called again.
func New(bus i2c.Bus, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	variant := opts.Variant
	if variant == VariantAuto {
		var err error
		if variant, err = Detect(bus); err != nil {
			return nil, err
		}
	}

	var bl any
	var err error
	switch variant {
	case VariantV4:
		bl, err = pca9632.New(bus, pca9632.DefaultAddr)
	case VariantV5:
		bl, err = sgm31323.New(bus, sgm31323.DefaultAddr)
	default:
		return nil, fmt.Errorf("grovelcd: unknown variant %q", variant)
	}
	if err != nil {
		return nil, err
	}

	lcd, err := aip31068.New(bus, &aip31068.Opts{
		Addr:      aip31068.DefaultAddr,
		Rows:      opts.Rows,
		Cols:      opts.Cols,
		Backlight: bl,
		Sleep:     opts.Sleep,
	})
	if err != nil {
		return nil, err
	}
	return &Dev{Dev: lcd, variant: variant}, nil
}

// Variant returns the detected or pinned board variant.
func (d *Dev) Variant() Variant {
	return d.variant
}

func (d *Dev) String() string {
	return fmt.Sprintf("grovelcd %s: %s", d.variant, d.Dev.String())
}
