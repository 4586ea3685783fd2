// Package ico serializes RGBA frames into a Windows ICO container with
// PNG-compressed images. PNG-in-ICO is understood by Vista and later,
// which is everything the Flutter windows runner targets.
package ico

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/png"
)

const (
	headerSize = 6  // ICONDIR
	entrySize  = 16 // ICONDIRENTRY
)

// maxFrameSide is the largest dimension an ICO directory entry can declare
// (a zero byte encodes 256).
const maxFrameSide = 256

// Pack serializes frames into a single ICO byte buffer. Directory order is
// the frame order given. Frames keep their alpha channel. The whole
// container is assembled in memory so a caller can write it atomically.
func Pack(frames []*image.NRGBA) ([]byte, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("ico: no frames to pack")
	}
	if len(frames) > 0xffff {
		return nil, fmt.Errorf("ico: %d frames exceed the uint16 directory count", len(frames))
	}

	encoded := make([][]byte, len(frames))
	total := headerSize + entrySize*len(frames)
	for i, f := range frames {
		w := f.Bounds().Dx()
		h := f.Bounds().Dy()
		if w < 1 || h < 1 || w > maxFrameSide || h > maxFrameSide {
			return nil, fmt.Errorf("ico: frame %d is %dx%d, dimensions must be 1-%d", i, w, h, maxFrameSide)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, f); err != nil {
			return nil, fmt.Errorf("ico: encode frame %d (%dx%d): %w", i, w, h, err)
		}
		encoded[i] = buf.Bytes()
		total += buf.Len()
	}

	out := make([]byte, total)

	// ICONDIR: reserved, type 1 (icon), count.
	binary.LittleEndian.PutUint16(out[0:], 0)
	binary.LittleEndian.PutUint16(out[2:], 1)
	binary.LittleEndian.PutUint16(out[4:], uint16(len(frames)))

	offset := headerSize + entrySize*len(frames)
	for i, f := range frames {
		e := out[headerSize+entrySize*i:]
		e[0] = sideByte(f.Bounds().Dx())
		e[1] = sideByte(f.Bounds().Dy())
		e[2] = 0                                                 // color count (truecolor)
		e[3] = 0                                                 // reserved
		binary.LittleEndian.PutUint16(e[4:], 0)                  // color planes
		binary.LittleEndian.PutUint16(e[6:], 32)                 // bits per pixel
		binary.LittleEndian.PutUint32(e[8:], uint32(len(encoded[i])))
		binary.LittleEndian.PutUint32(e[12:], uint32(offset))

		copy(out[offset:], encoded[i])
		offset += len(encoded[i])
	}

	return out, nil
}

// sideByte encodes a frame dimension for a directory entry; 256 becomes 0.
func sideByte(n int) byte {
	if n >= maxFrameSide {
		return 0
	}
	return byte(n)
}
