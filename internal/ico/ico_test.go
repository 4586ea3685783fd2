package ico

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"testing"

	sergeico "github.com/sergeymakinen/go-ico"
)

// frame builds a size×size raster with a solid color and transparent corners,
// so frames are distinguishable and carry real alpha.
func frame(size int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	img.SetNRGBA(0, 0, color.NRGBA{})
	return img
}

// dirEntry is one parsed ICONDIRENTRY.
type dirEntry struct {
	width, height byte
	planes, bpp   uint16
	length, off   uint32
}

func parseDir(t *testing.T, data []byte) []dirEntry {
	t.Helper()
	if len(data) < 6 {
		t.Fatalf("container too short: %d bytes", len(data))
	}
	if reserved := binary.LittleEndian.Uint16(data[0:]); reserved != 0 {
		t.Errorf("reserved = %d, want 0", reserved)
	}
	if typ := binary.LittleEndian.Uint16(data[2:]); typ != 1 {
		t.Errorf("image type = %d, want 1 (icon)", typ)
	}
	count := int(binary.LittleEndian.Uint16(data[4:]))
	entries := make([]dirEntry, count)
	for i := 0; i < count; i++ {
		e := data[6+16*i:]
		entries[i] = dirEntry{
			width:  e[0],
			height: e[1],
			planes: binary.LittleEndian.Uint16(e[4:]),
			bpp:    binary.LittleEndian.Uint16(e[6:]),
			length: binary.LittleEndian.Uint32(e[8:]),
			off:    binary.LittleEndian.Uint32(e[12:]),
		}
	}
	return entries
}

func TestPackDirectoryRoundTrip(t *testing.T) {
	sizes := []int{16, 32, 48, 256}
	frames := make([]*image.NRGBA, len(sizes))
	for i, s := range sizes {
		frames[i] = frame(s, color.NRGBA{R: byte(40 * i), G: 100, B: 200, A: 255})
	}

	data, err := Pack(frames)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}

	entries := parseDir(t, data)
	if len(entries) != len(sizes) {
		t.Fatalf("directory has %d entries, want %d", len(entries), len(sizes))
	}

	wantFirstOffset := uint32(6 + 16*len(sizes))
	prevEnd := wantFirstOffset
	for i, e := range entries {
		wantSide := byte(sizes[i])
		if sizes[i] == 256 {
			wantSide = 0 // 0 encodes 256
		}
		if e.width != wantSide || e.height != wantSide {
			t.Errorf("entry %d: declared %dx%d, want %dx%d", i, e.width, e.height, wantSide, wantSide)
		}
		if e.planes != 0 {
			t.Errorf("entry %d: planes = %d, want 0", i, e.planes)
		}
		if e.bpp != 32 {
			t.Errorf("entry %d: bpp = %d, want 32", i, e.bpp)
		}
		if e.off != prevEnd {
			t.Errorf("entry %d: offset = %d, want %d (offsets must accumulate exactly)", i, e.off, prevEnd)
		}
		if e.off+e.length > uint32(len(data)) {
			t.Errorf("entry %d: offset %d + length %d exceeds container size %d", i, e.off, e.length, len(data))
		}
		prevEnd = e.off + e.length
	}
	if prevEnd != uint32(len(data)) {
		t.Errorf("container size %d, want %d (no trailing bytes)", len(data), prevEnd)
	}
}

func TestPackEmbedsDecodablePNGFrames(t *testing.T) {
	sizes := []int{16, 48, 128}
	frames := make([]*image.NRGBA, len(sizes))
	for i, s := range sizes {
		frames[i] = frame(s, color.NRGBA{R: 250, G: byte(i), B: 3, A: 180})
	}

	data, err := Pack(frames)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}

	for i, e := range parseDir(t, data) {
		img, err := png.Decode(bytes.NewReader(data[e.off : e.off+e.length]))
		if err != nil {
			t.Fatalf("frame %d: embedded data is not a PNG: %v", i, err)
		}
		if img.Bounds().Dx() != sizes[i] || img.Bounds().Dy() != sizes[i] {
			t.Errorf("frame %d: embedded PNG is %dx%d, want %dx%d",
				i, img.Bounds().Dx(), img.Bounds().Dy(), sizes[i], sizes[i])
		}
	}
}

func TestPackedContainerDecodesAsICO(t *testing.T) {
	frames := []*image.NRGBA{
		frame(16, color.NRGBA{R: 255, A: 255}),
		frame(32, color.NRGBA{G: 255, A: 255}),
		frame(256, color.NRGBA{B: 255, A: 255}),
	}

	data, err := Pack(frames)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}

	img, err := sergeico.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ico.Decode rejected our container: %v", err)
	}
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	if w != h {
		t.Errorf("decoded frame is %dx%d, want square", w, h)
	}
	if w != 16 && w != 32 && w != 256 {
		t.Errorf("decoded frame side %d is none of the packed sizes", w)
	}
}

func TestPackPreservesFrameOrder(t *testing.T) {
	// Descending input order must be preserved in the directory.
	frames := []*image.NRGBA{
		frame(64, color.NRGBA{A: 255}),
		frame(16, color.NRGBA{A: 255}),
		frame(32, color.NRGBA{A: 255}),
	}
	data, err := Pack(frames)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	entries := parseDir(t, data)
	want := []byte{64, 16, 32}
	for i, e := range entries {
		if e.width != want[i] {
			t.Errorf("entry %d: width %d, want %d", i, e.width, want[i])
		}
	}
}

func TestPackRejectsNoFrames(t *testing.T) {
	if _, err := Pack(nil); err == nil {
		t.Error("expected error for empty frame list")
	}
}

func TestPackRejectsOversizedFrame(t *testing.T) {
	if _, err := Pack([]*image.NRGBA{frame(257, color.NRGBA{A: 255})}); err == nil {
		t.Error("expected error for 257px frame")
	}
}
