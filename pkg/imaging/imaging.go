package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"github.com/chai2010/webp"
	"github.com/nfnt/resize"
	xwebp "golang.org/x/image/webp"

	"emojigrab/pkg/errors"
)

// Asset is a decoded emoji image. Static assets carry a single frame,
// animated assets keep the whole GIF so frame timing and disposal
// survive re-encoding.
type Asset struct {
	Frame  image.Image
	GIF    *gif.GIF
	Format string
}

// Animated reports whether the asset holds more than a single still frame.
func (a *Asset) Animated() bool {
	return a.GIF != nil
}

// Bounds returns the asset's canvas rectangle.
func (a *Asset) Bounds() image.Rectangle {
	if a.Animated() {
		return image.Rect(0, 0, a.GIF.Config.Width, a.GIF.Config.Height)
	}
	return a.Frame.Bounds()
}

// FrameCount returns the number of frames (1 for static assets).
func (a *Asset) FrameCount() int {
	if a.Animated() {
		return len(a.GIF.Image)
	}
	return 1
}

// Decode sniffs the payload format and decodes it. GIF payloads keep
// every frame, WebP decodes through golang.org/x/image/webp, and
// PNG/JPEG go through the standard library decoders.
func Decode(data []byte) (*Asset, error) {
	switch sniffFormat(data) {
	case "gif":
		g, err := gif.DecodeAll(bytes.NewReader(data))
		if err != nil {
			return nil, decodeError("gif", err)
		}
		if len(g.Image) == 0 {
			return nil, decodeError("gif", fmt.Errorf("no frames"))
		}
		return &Asset{GIF: g, Format: "gif"}, nil
	case "webp":
		img, err := xwebp.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, decodeError("webp", err)
		}
		return &Asset{Frame: img, Format: "webp"}, nil
	default:
		img, format, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, decodeError("image", err)
		}
		return &Asset{Frame: img, Format: format}, nil
	}
}

// FitInside scales the asset down so it fits a max by max box while
// preserving aspect ratio. Sources already inside the box pass through
// untouched; upscaling never happens.
func FitInside(a *Asset, max int) *Asset {
	if max <= 0 {
		return a
	}
	if a.Animated() {
		fitGIF(a.GIF, max)
		return a
	}
	a.Frame = resize.Thumbnail(uint(max), uint(max), a.Frame, resize.Lanczos3)
	return a
}

// Encode re-encodes the asset for disk. Static frames become lossy WebP
// at the given quality with extension "webp", animated assets are
// reassembled as GIF with extension "gif".
func Encode(a *Asset, quality int) ([]byte, string, error) {
	var buf bytes.Buffer
	if a.Animated() {
		if err := gif.EncodeAll(&buf, a.GIF); err != nil {
			return nil, "", &errors.Error{
				Type:    errors.ErrorTypeEncode,
				Message: fmt.Sprintf("failed to encode gif: %v", err),
			}
		}
		return buf.Bytes(), "gif", nil
	}
	opts := &webp.Options{Lossless: false, Quality: float32(quality)}
	if err := webp.Encode(&buf, a.Frame, opts); err != nil {
		return nil, "", &errors.Error{
			Type:    errors.ErrorTypeEncode,
			Message: fmt.Sprintf("failed to encode webp: %v", err),
		}
	}
	return buf.Bytes(), "webp", nil
}

func decodeError(format string, err error) error {
	return &errors.Error{
		Type:    errors.ErrorTypeDecode,
		Message: fmt.Sprintf("failed to decode %s: %v", format, err),
	}
}

// sniffFormat inspects magic bytes for the formats that need a
// dedicated decode path. Anything else falls through to image.Decode.
func sniffFormat(data []byte) string {
	switch {
	case len(data) >= 6 && (bytes.HasPrefix(data, []byte("GIF87a")) || bytes.HasPrefix(data, []byte("GIF89a"))):
		return "gif"
	case len(data) >= 12 && bytes.HasPrefix(data, []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")):
		return "webp"
	default:
		return ""
	}
}

// fitGIF scales every frame by the factor that brings the canvas inside
// the box. Frames that only cover part of the canvas keep their relative
// position so optimized animations stay intact.
func fitGIF(g *gif.GIF, max int) {
	cw, ch := g.Config.Width, g.Config.Height
	if cw == 0 || ch == 0 {
		b := g.Image[0].Bounds()
		cw, ch = b.Dx(), b.Dy()
	}
	if cw <= max && ch <= max {
		return
	}

	scale := float64(max) / float64(cw)
	if s := float64(max) / float64(ch); s < scale {
		scale = s
	}
	nw := scaleDim(cw, scale)
	nh := scaleDim(ch, scale)

	for i, frame := range g.Image {
		b := frame.Bounds()
		fw := scaleDim(b.Dx(), scale)
		fh := scaleDim(b.Dy(), scale)
		minX := int(math.Floor(float64(b.Min.X) * scale))
		minY := int(math.Floor(float64(b.Min.Y) * scale))
		if minX+fw > nw {
			minX = nw - fw
		}
		if minY+fh > nh {
			minY = nh - fh
		}
		if minX < 0 {
			minX = 0
		}
		if minY < 0 {
			minY = 0
		}

		resized := resize.Resize(uint(fw), uint(fh), frame, resize.Lanczos3)
		pal := image.NewPaletted(image.Rect(minX, minY, minX+fw, minY+fh), frame.Palette)
		draw.FloydSteinberg.Draw(pal, pal.Bounds(), resized, image.Point{})
		g.Image[i] = pal
	}

	g.Config.Width = nw
	g.Config.Height = nh
}

func scaleDim(d int, scale float64) int {
	n := int(math.Round(float64(d) * scale))
	if n < 1 {
		n = 1
	}
	return n
}
