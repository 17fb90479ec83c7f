// Copyright 2025 The GroveLCD Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sgm31323

import (
	"strings"
	"testing"

	"periph.io/x/conn/v3/i2c/i2ctest"
)

func initOps() []i2ctest.IO {
	return []i2ctest.IO{
		{Addr: 0x30, W: []byte{0x00, 0x07}},
		{Addr: 0x30, W: []byte{0x04, 0x15}},
	}
}

func TestNew(t *testing.T) {
	bus := &i2ctest.Playback{Ops: initOps(), DontPanic: true}
	if _, err := New(bus, DefaultAddr); err != nil {
		t.Fatal(err)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestRGBBacklight(t *testing.T) {
	// Red, green and blue are contiguous registers starting at 0x06.
	bus := &i2ctest.Playback{
		Ops: append(initOps(),
			i2ctest.IO{Addr: 0x30, W: []byte{0x06, 0x00}},
			i2ctest.IO{Addr: 0x30, W: []byte{0x07, 0xff}},
			i2ctest.IO{Addr: 0x30, W: []byte{0x08, 0x00}},
		),
		DontPanic: true,
	}
	d, err := New(bus, DefaultAddr)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.RGBBacklight(0, 255, 0); err != nil {
		t.Fatal(err)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestBacklightHalt(t *testing.T) {
	bus := &i2ctest.Playback{
		Ops: append(initOps(),
			i2ctest.IO{Addr: 0x30, W: []byte{0x06, 0x40}},
			i2ctest.IO{Addr: 0x30, W: []byte{0x07, 0x40}},
			i2ctest.IO{Addr: 0x30, W: []byte{0x08, 0x40}},
			i2ctest.IO{Addr: 0x30, W: []byte{0x06, 0x00}},
			i2ctest.IO{Addr: 0x30, W: []byte{0x07, 0x00}},
			i2ctest.IO{Addr: 0x30, W: []byte{0x08, 0x00}},
		),
		DontPanic: true,
	}
	d, err := New(bus, DefaultAddr)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Backlight(0x40); err != nil {
		t.Fatal(err)
	}
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestString(t *testing.T) {
	bus := &i2ctest.Playback{Ops: initOps(), DontPanic: true}
	d, err := New(bus, DefaultAddr)
	if err != nil {
		t.Fatal(err)
	}
	if got := d.String(); !strings.HasPrefix(got, "sgm31323: ") {
		t.Errorf("String() = %q", got)
	}
}
