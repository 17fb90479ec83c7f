//go:build examples
// +build examples

// Copyright 2025 The GroveLCD Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package grovelcd_test

import (
	"fmt"
	"log"
	"time"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/grovekit/grovelcd"
)

// basic example program for a Grove LCD RGB Backlight using this library.
//
// To execute this as a stand-alone program:
//
// Copy the file example_test.go to a new directory.
// rename the file to main.go
// rename the Example() function to main, and the package to main
//
// execute:
//
//	go mod init mydomain.com/grovelcd
//	go mod tidy
//	go build -o main main.go
//	./main
func Example() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	bus, err := i2creg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer bus.Close()

	dev, err := grovelcd.New(bus, &grovelcd.DefaultOpts)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("detected a %s board\n", dev.Variant())

	if _, err := dev.WriteString("Hello, world!"); err != nil {
		log.Fatal(err)
	}
	if err := dev.SetCursor(0, 1); err != nil {
		log.Fatal(err)
	}
	_, _ = dev.WriteString(time.Now().Format("15:04:05"))

	_ = dev.RGBBacklight(0, 128, 255)
	time.Sleep(5 * time.Second)
	_ = dev.Halt()
}
