package fashionmnist

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// loadCSV reads the CSV export: a header row, then label,pixel1,...,pixel784 per row
func loadCSV(name string) (Samples, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open dataset file")
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 1 + ImgSize*ImgSize
	reader.ReuseRecord = true

	if _, err := reader.Read(); err != nil {
		return nil, errors.Wrapf(err, "header of '%s'", name)
	}

	var samples Samples
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading '%s'", name)
		}
		var s Sample
		label, err := strconv.Atoi(rec[0])
		if err != nil || label < 0 || label >= Classes {
			return nil, errors.Wrapf(ErrFormat, "'%s' row %d: label %q", name, len(samples)+1, rec[0])
		}
		s.Label = byte(label)
		for i, field := range rec[1:] {
			v, err := strconv.ParseUint(field, 10, 8)
			if err != nil {
				return nil, errors.Wrapf(ErrFormat, "'%s' row %d: pixel %q", name, len(samples)+1, field)
			}
			s.Image[i] = byte(v)
		}
		samples = append(samples, s)
	}
	return samples, nil
}
