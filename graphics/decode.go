// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package graphics

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	// Registered image formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrEmptyImage is returned when decoding an empty byte slice.
var ErrEmptyImage = errors.New("graphics: empty image data")

// Decode decodes a PNG, JPEG, GIF, BMP, TIFF or WebP image and reports the
// format name.
func Decode(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", ErrEmptyImage
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("graphics: decode image: %w", err)
	}
	return img, format, nil
}
