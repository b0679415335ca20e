// Package imageprep turns image files into network input tensors
package imageprep

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorgonia.org/tensor"
)

// Width and Height of the network input
const (
	Width  = 28
	Height = 28
)

// ErrEmpty is returned for an image without pixels
var ErrEmpty = errors.New("image has no pixels")

// Normalize loads the image at path, converts it to grayscale, resizes it to
// 28x28 and scales it to [0,1]. The result has the shape (1, 28, 28, 1).
// Failures are logged and returned, callers skip the image.
func Normalize(path string) (*tensor.Dense, error) {
	img, err := imaging.Open(path)
	if err != nil {
		log.Debug("[Normalize] Couldn't open image ", path, ": ", err.Error())
		return nil, errors.Wrapf(err, "cannot normalize '%s'", path)
	}
	t, err := FromImage(img)
	if err != nil {
		log.Debug("[Normalize] Couldn't normalize image ", path, ": ", err.Error())
		return nil, errors.Wrapf(err, "cannot normalize '%s'", path)
	}
	return t, nil
}

// FromImage normalizes an already decoded image the way Normalize does
func FromImage(img image.Image) (*tensor.Dense, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmpty
	}
	gray := imaging.Grayscale(img)
	small := imaging.Resize(gray, Width, Height, imaging.CatmullRom)
	if small.Rect.Dx() != Width || small.Rect.Dy() != Height {
		return nil, errors.Errorf("resized to %dx%d, want %dx%d", small.Rect.Dx(), small.Rect.Dy(), Width, Height)
	}

	data := make([]float32, Width*Height)
	for y := 0; y < Height; y++ {
		row := small.Pix[y*small.Stride:]
		for x := 0; x < Width; x++ {
			// grayscale NRGBA has R == G == B
			data[Width*y+x] = float32(row[4*x]) / 255
		}
	}
	return tensor.New(tensor.WithShape(1, Height, Width, 1), tensor.WithBacking(data)), nil
}
