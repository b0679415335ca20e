package imageprep

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gorgonia.org/tensor"
)

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(255 * x / w), G: uint8(255 * y / h), B: 90, A: 255})
		}
	}
	return img
}

func checkTensor(t *testing.T, d *tensor.Dense) []float32 {
	require.True(t, d.Shape().Eq(tensor.Shape{1, 28, 28, 1}), "%v", d.Shape())
	data, ok := d.Data().([]float32)
	require.True(t, ok)
	require.Len(t, data, 28*28)
	for _, v := range data {
		require.True(t, v >= 0 && v <= 1, "%v out of range", v)
	}
	return data
}

func TestNormalizeJPEG(t *testing.T) {
	name := filepath.Join(t.TempDir(), "shirt.jpg")
	f, err := os.Create(name)
	require.NoError(t, err)
	require.NoError(t, jpeg.Encode(f, gradient(100, 60), nil))
	require.NoError(t, f.Close())

	d, err := Normalize(name)
	require.NoError(t, err)
	checkTensor(t, d)
}

func TestNormalizeWhitePNG(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 10, 10))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	name := filepath.Join(t.TempDir(), "white.png")
	f, err := os.Create(name)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	d, err := Normalize(name)
	require.NoError(t, err)
	for _, v := range checkTensor(t, d) {
		require.InDelta(t, 1, v, 1e-6)
	}
}

func TestFromImageKeepsDarkAndLight(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 56, 56))
	for y := 0; y < 56; y++ {
		for x := 28; x < 56; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	d, err := FromImage(img)
	require.NoError(t, err)
	data := checkTensor(t, d)
	require.InDelta(t, 0, data[28*14+2], 1e-6)
	require.InDelta(t, 1, data[28*14+25], 1e-6)
}

func TestNormalizeUndecodable(t *testing.T) {
	name := filepath.Join(t.TempDir(), "broken.jpg")
	require.NoError(t, os.WriteFile(name, []byte("not an image"), 0644))
	_, err := Normalize(name)
	require.Error(t, err)

	_, err = Normalize(filepath.Join(t.TempDir(), "missing.jpg"))
	require.Error(t, err)
}

// emptyGIF is a well formed GIF89a whose screen and only frame are 0x0
var emptyGIF = []byte{
	'G', 'I', 'F', '8', '9', 'a',
	0, 0, 0, 0, 0x80, 0, 0, // 0x0 screen, 2 entry color table
	0, 0, 0, 255, 255, 255,
	0x2c, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 0x0 frame
	2, 1, 0x2c, 0, // lzw: clear, end
	0x3b,
}

func TestNormalizeEmptyImage(t *testing.T) {
	name := filepath.Join(t.TempDir(), "empty.jpg")
	require.NoError(t, os.WriteFile(name, emptyGIF, 0644))
	_, err := Normalize(name)
	require.True(t, errors.Is(err, ErrEmpty), "%v", err)

	_, err = FromImage(image.NewGray(image.Rect(0, 0, 0, 0)))
	require.True(t, errors.Is(err, ErrEmpty))
}
