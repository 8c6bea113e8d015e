package sheet2pdf

import (
	"fmt"
	"image"
	"os"
	"sort"

	// Register decoders for the formats logos come in.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// PaletteExtractor extracts a dominant-color palette from an image file.
type PaletteExtractor interface {
	// Dominant returns at most maxColors colors ordered by prominence.
	// Implementations fail soft on bad input: an error with no palette,
	// never a panic.
	Dominant(path string, maxColors int) ([]RGB, error)
}

// Compile-time interface check.
var _ PaletteExtractor = (*QuantizingExtractor)(nil)

// QuantizingExtractor buckets pixels into a reduced color cube and ranks
// buckets by population. Good enough for logos, which have few flat colors.
type QuantizingExtractor struct{}

// NewQuantizingExtractor creates a QuantizingExtractor.
func NewQuantizingExtractor() *QuantizingExtractor {
	return &QuantizingExtractor{}
}

// paletteStride subsamples large images; every Nth pixel per axis is enough
// to rank dominant colors.
const paletteStride = 4

// quantBits is the per-channel precision kept when bucketing (4 bits =
// 4096 buckets).
const quantBits = 4

// Dominant decodes the image and returns its most frequent colors, ordered
// by pixel count. Near-transparent pixels are ignored.
func (q *QuantizingExtractor) Dominant(path string, maxColors int) ([]RGB, error) {
	if maxColors <= 0 {
		return nil, nil
	}

	f, err := os.Open(path) // #nosec G304 -- logo path is user-provided
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaletteExtraction, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaletteExtraction, err)
	}

	type bucket struct {
		count   int
		r, g, b uint64 // running sums for averaging
	}
	buckets := make(map[uint32]*bucket)

	bounds := img.Bounds()
	shift := 8 - quantBits
	for y := bounds.Min.Y; y < bounds.Max.Y; y += paletteStride {
		for x := bounds.Min.X; x < bounds.Max.X; x += paletteStride {
			r, g, b, a := img.At(x, y).RGBA()
			if a < 0x8000 {
				continue
			}
			r8, g8, b8 := uint8(r>>8), uint8(g>>8), uint8(b>>8)
			key := uint32(r8>>shift)<<16 | uint32(g8>>shift)<<8 | uint32(b8>>shift)
			bk := buckets[key]
			if bk == nil {
				bk = &bucket{}
				buckets[key] = bk
			}
			bk.count++
			bk.r += uint64(r8)
			bk.g += uint64(g8)
			bk.b += uint64(b8)
		}
	}

	if len(buckets) == 0 {
		return nil, fmt.Errorf("%w: no opaque pixels", ErrPaletteExtraction)
	}

	keys := make([]uint32, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		bi, bj := buckets[keys[i]], buckets[keys[j]]
		if bi.count != bj.count {
			return bi.count > bj.count
		}
		return keys[i] < keys[j] // deterministic tie-break
	})

	if len(keys) > maxColors {
		keys = keys[:maxColors]
	}

	palette := make([]RGB, 0, len(keys))
	for _, k := range keys {
		bk := buckets[k]
		n := uint64(bk.count)
		palette = append(palette, RGB{
			R: uint8(bk.r / n),
			G: uint8(bk.g / n),
			B: uint8(bk.b / n),
		})
	}
	return palette, nil
}
