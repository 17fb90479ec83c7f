// Copyright 2025 The GroveLCD Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package example

import (
	"fmt"
	"log"
	"time"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/grovekit/grovelcd"
)

// Example writes a counter to the panel and cycles the backlight through a
// small palette for a few seconds.
func Example() {

	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// Use i2creg I²C bus registry to find the first available I²C bus.
	bus, err := i2creg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer bus.Close()

	d, err := grovelcd.New(bus, &grovelcd.DefaultOpts)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(d.String())

	if _, err := d.WriteString("Backlight demo"); err != nil {
		log.Fatal(err)
	}

	colors := [][3]display.Intensity{
		{255, 0, 0},
		{255, 128, 0},
		{255, 255, 0},
		{0, 255, 0},
		{0, 0, 255},
		{128, 0, 255},
	}

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	// stop after 6 seconds
	stop := time.After(6 * time.Second)

	for i := 0; ; i++ {
		select {
		case <-stop:
			_ = d.Halt()
			return
		case <-ticker.C:
			c := colors[i%len(colors)]
			if err := d.RGBBacklight(c[0], c[1], c[2]); err != nil {
				log.Fatal(err)
			}
			if err := d.SetCursor(0, 1); err != nil {
				log.Fatal(err)
			}
			fmt.Fprintf(d, "tick %d", i)
		}
	}
}
