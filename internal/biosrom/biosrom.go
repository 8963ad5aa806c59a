// Package biosrom builds a synthetic PCI Expansion ROM image for the
// demo CLI's decode_bar(ExpansionROM) walkthrough: a PCI ROM header
// (signature, image size, checksum byte) followed by a small identifying
// splash bitmap, the same role the teacher's media-loader code plays
// for the video outputs it drives, adapted here to a BAR rather than a
// framebuffer.
package biosrom

import (
	"bytes"
	"image"
	"image/color"

	"golang.org/x/image/bmp"
)

// ROMSignature is the mandatory PCI Expansion ROM signature bytes.
var ROMSignature = [2]byte{0x55, 0xAA}

// Build renders a width x height checkerboard splash (standing in for
// a real vendor boot-splash) as a BMP, wraps it in a minimal PCI ROM
// header, and pads the result to sizeBytes (required to be a multiple
// of 512, the PCI ROM block granularity). The trailing checksum byte is
// computed so the whole image sums to zero mod 256, matching the PCI
// Expansion ROM header's mandated checksum field.
func Build(width, height int, sizeBytes int) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x/8+y/8)%2 == 0 {
				img.Set(x, y, color.RGBA{R: 0x20, G: 0x40, B: 0x80, A: 0xFF})
			} else {
				img.Set(x, y, color.RGBA{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF})
			}
		}
	}

	var bmpBuf bytes.Buffer
	if err := bmp.Encode(&bmpBuf, img); err != nil {
		return nil, err
	}

	rom := make([]byte, sizeBytes)
	rom[0] = ROMSignature[0]
	rom[1] = ROMSignature[1]
	rom[2] = byte(sizeBytes / 512)
	copy(rom[16:], bmpBuf.Bytes())

	var sum byte
	for i := 0; i < sizeBytes-1; i++ {
		sum += rom[i]
	}
	rom[sizeBytes-1] = byte(256 - int(sum))

	return rom, nil
}
