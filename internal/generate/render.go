/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */

package generate

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"golang.org/x/image/draw"
)

// basePattern is the tile the placeholder renderer scales to the requested
// size. 16x16 keeps the encoded PNG small while staying visibly a pattern.
const basePattern = 16

// renderPlaceholderPNG renders a magenta/black checkerboard (the classic
// "missing texture" look) at w x h and returns the encoded PNG bytes.
func renderPlaceholderPNG(w, h int) ([]byte, error) {
	base := image.NewRGBA(image.Rect(0, 0, basePattern, basePattern))
	magenta := color.RGBA{R: 255, B: 255, A: 255}
	black := color.RGBA{A: 255}
	for y := 0; y < basePattern; y++ {
		for x := 0; x < basePattern; x++ {
			if (x/4+y/4)%2 == 0 {
				base.SetRGBA(x, y, magenta)
			} else {
				base.SetRGBA(x, y, black)
			}
		}
	}

	out := base
	if w != basePattern || h != basePattern {
		out = image.NewRGBA(image.Rect(0, 0, w, h))
		draw.NearestNeighbor.Scale(out, out.Bounds(), base, base.Bounds(), draw.Src, nil)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
