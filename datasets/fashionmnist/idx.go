package fashionmnist

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

const (
	labelsMagic = 0x00000801
	imagesMagic = 0x00000803
)

// ErrFormat is returned for dataset files which do not parse
var ErrFormat = errors.New("malformed dataset file")

func parseImages(data []byte) ([]Input, error) {
	if len(data) < 16 {
		return nil, errors.Wrap(ErrFormat, "images header truncated")
	}
	if magic := binary.BigEndian.Uint32(data[0:]); magic != imagesMagic {
		return nil, errors.Wrapf(ErrFormat, "images magic %#x", magic)
	}
	count := int(binary.BigEndian.Uint32(data[4:]))
	rows := binary.BigEndian.Uint32(data[8:])
	cols := binary.BigEndian.Uint32(data[12:])
	if rows != ImgSize || cols != ImgSize {
		return nil, errors.Wrapf(ErrFormat, "images are %dx%d", rows, cols)
	}
	// skip header
	data = data[16:]
	if len(data) != count*ImgSize*ImgSize {
		return nil, errors.Wrapf(ErrFormat, "%d bytes of pixels for %d images", len(data), count)
	}
	set := make([]Input, count)
	for i := range set {
		copy(set[i][:], data[i*ImgSize*ImgSize:])
	}
	return set, nil
}

func parseLabels(data []byte) ([]byte, error) {
	if len(data) < 8 {
		return nil, errors.Wrap(ErrFormat, "labels header truncated")
	}
	if magic := binary.BigEndian.Uint32(data[0:]); magic != labelsMagic {
		return nil, errors.Wrapf(ErrFormat, "labels magic %#x", magic)
	}
	count := int(binary.BigEndian.Uint32(data[4:]))
	// skip header
	data = data[8:]
	if len(data) != count {
		return nil, errors.Wrapf(ErrFormat, "%d labels for count %d", len(data), count)
	}
	for i, v := range data {
		if v >= Classes {
			return nil, errors.Wrapf(ErrFormat, "label %d at %d", v, i)
		}
	}
	return data, nil
}

func loadIDX(images, labels string) (Samples, error) {
	data, err := readFile(images)
	if err != nil {
		return nil, err
	}
	set, err := parseImages(data)
	if err != nil {
		return nil, errors.Wrap(err, images)
	}
	data, err = readFile(labels)
	if err != nil {
		return nil, err
	}
	values, err := parseLabels(data)
	if err != nil {
		return nil, errors.Wrap(err, labels)
	}
	if len(set) != len(values) {
		return nil, errors.Wrapf(ErrFormat, "%d images but %d labels", len(set), len(values))
	}
	samples := make(Samples, len(set))
	for i := range samples {
		samples[i] = Sample{Image: set[i], Label: values[i]}
	}
	return samples, nil
}
