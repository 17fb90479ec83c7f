// Copyright 2025 The GroveLCD Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package grovelcd

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"

	"github.com/grovekit/grovelcd/aip31068"
)

// GlyphFromImage converts an image to a 5x8 CGRAM glyph for
// [aip31068.Dev.CreateChar]. The image is scaled to 5x8 and thresholded:
// pixels darker than mid gray light up on the panel, matching black-on-white
// glyph art. Alpha is ignored.
func GlyphFromImage(img image.Image) aip31068.Glyph {
	small := image.NewRGBA(image.Rect(0, 0, 5, 8))
	xdraw.NearestNeighbor.Scale(small, small.Bounds(), img, img.Bounds(), xdraw.Src, nil)

	var g aip31068.Glyph
	for y := 0; y < 8; y++ {
		var row byte
		for x := 0; x < 5; x++ {
			gray := color.GrayModel.Convert(small.At(x, y)).(color.Gray)
			if gray.Y < 0x80 {
				row |= 1 << (4 - x)
			}
		}
		g[y] = row
	}
	return g
}
