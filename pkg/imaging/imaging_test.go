package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xwebp "golang.org/x/image/webp"

	"emojigrab/pkg/errors"
)

func makePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func makeGIF(t *testing.T, frames, width, height int) []byte {
	t.Helper()
	g := &gif.GIF{}
	for i := 0; i < frames; i++ {
		frame := image.NewPaletted(image.Rect(0, 0, width, height), palette.Plan9)
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				frame.SetColorIndex(x, y, uint8((x+y+i)%256))
			}
		}
		g.Image = append(g.Image, frame)
		g.Delay = append(g.Delay, 10)
	}
	var buf bytes.Buffer
	require.NoError(t, gif.EncodeAll(&buf, g))
	return buf.Bytes()
}

func TestDecodeStaticPNG(t *testing.T) {
	asset, err := Decode(makePNG(t, 40, 30))
	require.NoError(t, err)

	assert.False(t, asset.Animated())
	assert.Equal(t, "png", asset.Format)
	assert.Equal(t, 1, asset.FrameCount())
	assert.Equal(t, 40, asset.Bounds().Dx())
	assert.Equal(t, 30, asset.Bounds().Dy())
}

func TestDecodeAnimatedGIF(t *testing.T) {
	asset, err := Decode(makeGIF(t, 3, 64, 64))
	require.NoError(t, err)

	assert.True(t, asset.Animated())
	assert.Equal(t, "gif", asset.Format)
	assert.Equal(t, 3, asset.FrameCount())
	assert.Equal(t, 64, asset.Bounds().Dx())
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode([]byte("definitely not an image"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeDecode, errors.TypeOf(err))
}

func TestDecodeEmpty(t *testing.T) {
	_, err := Decode(nil)
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeDecode, errors.TypeOf(err))
}

func TestFitInsideDownscales(t *testing.T) {
	asset, err := Decode(makePNG(t, 1024, 512))
	require.NoError(t, err)

	asset = FitInside(asset, 512)

	assert.Equal(t, 512, asset.Bounds().Dx())
	assert.Equal(t, 256, asset.Bounds().Dy(), "aspect ratio should be preserved")
}

func TestFitInsideNeverUpscales(t *testing.T) {
	asset, err := Decode(makePNG(t, 100, 100))
	require.NoError(t, err)

	asset = FitInside(asset, 512)

	assert.Equal(t, 100, asset.Bounds().Dx())
	assert.Equal(t, 100, asset.Bounds().Dy())
}

func TestFitInsideExactFit(t *testing.T) {
	asset, err := Decode(makePNG(t, 512, 512))
	require.NoError(t, err)

	asset = FitInside(asset, 512)

	assert.Equal(t, 512, asset.Bounds().Dx())
	assert.Equal(t, 512, asset.Bounds().Dy())
}

func TestFitInsideAnimated(t *testing.T) {
	asset, err := Decode(makeGIF(t, 3, 128, 128))
	require.NoError(t, err)

	asset = FitInside(asset, 64)

	assert.Equal(t, 3, asset.FrameCount())
	assert.Equal(t, 64, asset.Bounds().Dx())
	assert.Equal(t, 64, asset.Bounds().Dy())
	for i, frame := range asset.GIF.Image {
		b := frame.Bounds()
		assert.LessOrEqual(t, b.Max.X, 64, "frame %d exceeds canvas", i)
		assert.LessOrEqual(t, b.Max.Y, 64, "frame %d exceeds canvas", i)
	}
	assert.Len(t, asset.GIF.Delay, 3, "frame delays should survive the resize")
}

func TestFitInsideAnimatedNoUpscale(t *testing.T) {
	asset, err := Decode(makeGIF(t, 2, 48, 48))
	require.NoError(t, err)

	asset = FitInside(asset, 512)

	assert.Equal(t, 48, asset.Bounds().Dx())
	assert.Equal(t, 48, asset.GIF.Image[0].Bounds().Dx())
}

func TestFitInsideAnimatedPartialFrames(t *testing.T) {
	first := image.NewPaletted(image.Rect(0, 0, 200, 200), palette.Plan9)
	second := image.NewPaletted(image.Rect(100, 100, 200, 200), palette.Plan9)
	g := &gif.GIF{
		Image:  []*image.Paletted{first, second},
		Delay:  []int{5, 5},
		Config: image.Config{Width: 200, Height: 200},
	}
	var buf bytes.Buffer
	require.NoError(t, gif.EncodeAll(&buf, g))

	asset, err := Decode(buf.Bytes())
	require.NoError(t, err)

	asset = FitInside(asset, 100)

	require.Equal(t, 2, asset.FrameCount())
	assert.Equal(t, 100, asset.Bounds().Dx())
	b := asset.GIF.Image[1].Bounds()
	assert.Equal(t, image.Pt(50, 50), b.Min, "partial frame should keep its relative position")
	assert.Equal(t, 50, b.Dx())
}

func TestEncodeStatic(t *testing.T) {
	asset, err := Decode(makePNG(t, 64, 64))
	require.NoError(t, err)

	data, ext, err := Encode(asset, 80)
	require.NoError(t, err)

	assert.Equal(t, "webp", ext)
	require.NotEmpty(t, data)
	assert.True(t, bytes.HasPrefix(data, []byte("RIFF")), "output should be a RIFF container")

	decoded, err := xwebp.Decode(bytes.NewReader(data))
	require.NoError(t, err, "encoded webp should decode cleanly")
	assert.Equal(t, 64, decoded.Bounds().Dx())
}

func TestEncodeAnimated(t *testing.T) {
	asset, err := Decode(makeGIF(t, 3, 32, 32))
	require.NoError(t, err)

	data, ext, err := Encode(asset, 80)
	require.NoError(t, err)

	assert.Equal(t, "gif", ext)
	require.NotEmpty(t, data)

	decoded, err := gif.DecodeAll(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Len(t, decoded.Image, 3, "all frames should survive re-encoding")
}

func TestDecodeWebP(t *testing.T) {
	asset, err := Decode(makePNG(t, 24, 24))
	require.NoError(t, err)
	data, _, err := Encode(asset, 80)
	require.NoError(t, err)

	back, err := Decode(data)
	require.NoError(t, err)

	assert.False(t, back.Animated())
	assert.Equal(t, "webp", back.Format)
	assert.Equal(t, 24, back.Bounds().Dx())
}
