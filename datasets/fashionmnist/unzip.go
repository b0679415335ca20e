package fashionmnist

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Unzip extracts archive into the directory dst, creating it if needed,
// and returns the number of files written. Entries which would land outside
// dst are rejected.
func Unzip(archive, dst string) (n int, err error) {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return 0, errors.Wrapf(err, "cannot open archive '%s'", archive)
	}
	defer r.Close()

	root, err := filepath.Abs(dst)
	if err != nil {
		return 0, errors.Wrap(err, "extract directory")
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return 0, errors.Wrap(err, "extract directory")
	}

	for _, f := range r.File {
		target := filepath.Join(root, f.Name)
		if !strings.HasPrefix(target, root+string(os.PathSeparator)) {
			return n, errors.Errorf("archive entry '%s' escapes '%s'", f.Name, dst)
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return n, errors.Wrapf(err, "create '%s'", target)
			}
			continue
		}
		if err := extract(f, target); err != nil {
			return n, err
		}
		n++
	}
	log.WithFields(log.Fields{
		"archive": archive,
		"dir":     dst,
		"files":   n,
	}).Info("[Dataset] Archive extracted")
	return n, nil
}

func extract(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errors.Wrapf(err, "create '%s'", filepath.Dir(target))
	}
	src, err := f.Open()
	if err != nil {
		return errors.Wrapf(err, "open entry '%s'", f.Name)
	}
	defer src.Close()

	out, err := os.Create(target)
	if err != nil {
		return errors.Wrapf(err, "create '%s'", target)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return errors.Wrapf(err, "extract '%s'", f.Name)
	}
	return errors.Wrapf(out.Close(), "close '%s'", target)
}
