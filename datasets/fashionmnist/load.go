package fashionmnist

import (
	"compress/gzip"
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const tmpDirectory = "/tmp/fashion-mnist/"

const (
	trainSetImg = "train-images-idx3-ubyte"
	trainSetVal = "train-labels-idx1-ubyte"
	inferSetImg = "t10k-images-idx3-ubyte"
	inferSetVal = "t10k-labels-idx1-ubyte"
	trainSetCSV = "fashion-mnist_train.csv"
	inferSetCSV = "fashion-mnist_test.csv"
)

// published digests of the gzip distribution
var checksums = map[string]string{
	trainSetImg + ".gz": "8d4fb7e6c68d591d4c3dfef9ec88bf0d",
	trainSetVal + ".gz": "25c81989df183df01b3e8a0aad5dffbe",
	inferSetImg + ".gz": "bef4ecab320f06d8554ea6380940ec79",
	inferSetVal + ".gz": "bb300cfdad3c16e7a12a480ee83cd310",
}

// New searches dirs, then /tmp/fashion-mnist/, for the dataset and returns
// the 60000 training and 10000 test samples of the first directory holding
// a complete copy. Gzip IDX files are preferred over raw IDX files, which are
// preferred over the CSV export.
func New(dirs ...string) (train, test Samples, err error) {
	dirs = append(dirs, tmpDirectory)
	var tried []string
	for _, dir := range dirs {
		train, test, err = loadDir(dir)
		if err == nil {
			log.WithFields(log.Fields{
				"dir":   dir,
				"train": len(train),
				"test":  len(test),
			}).Info("[Dataset] Loaded fashion-mnist")
			return train, test, nil
		}
		log.WithError(err).WithField("dir", dir).Debug("[Dataset] Directory skipped")
		tried = append(tried, err.Error())
	}
	return nil, nil, errors.Errorf("fashion-mnist dataset not found: %s", strings.Join(tried, "; "))
}

func exists(name string) bool {
	_, err := os.Stat(name)
	return err == nil
}

func loadDir(dir string) (train, test Samples, err error) {
	for _, suffix := range []string{".gz", ""} {
		if !exists(filepath.Join(dir, trainSetImg+suffix)) {
			continue
		}
		train, err = loadIDX(filepath.Join(dir, trainSetImg+suffix), filepath.Join(dir, trainSetVal+suffix))
		if err != nil {
			return nil, nil, err
		}
		test, err = loadIDX(filepath.Join(dir, inferSetImg+suffix), filepath.Join(dir, inferSetVal+suffix))
		if err != nil {
			return nil, nil, err
		}
		return train, test, nil
	}
	if exists(filepath.Join(dir, trainSetCSV)) {
		train, err = loadCSV(filepath.Join(dir, trainSetCSV))
		if err != nil {
			return nil, nil, err
		}
		test, err = loadCSV(filepath.Join(dir, inferSetCSV))
		if err != nil {
			return nil, nil, err
		}
		return train, test, nil
	}
	return nil, nil, errors.Errorf("no dataset files in '%s'", dir)
}

// readFile returns the contents of name, decompressing .gz files. The
// compressed bytes of known files are checked against the published digest.
func readFile(name string) ([]byte, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open dataset file")
	}
	defer f.Close()

	if !strings.HasSuffix(name, ".gz") {
		data, err := io.ReadAll(f)
		return data, errors.Wrapf(err, "cannot read file '%s'", name)
	}

	h := md5.New()
	gzipReader, err := gzip.NewReader(io.TeeReader(f, h))
	if err != nil {
		return nil, errors.Wrapf(err, "gzip file '%s'", name)
	}
	data, err := io.ReadAll(gzipReader)
	gzipReader.Close()
	if err != nil {
		return nil, errors.Wrapf(err, "buffering file '%s'", name)
	}
	if _, err := io.Copy(h, f); err != nil {
		return nil, errors.Wrapf(err, "cannot hash file '%s'", name)
	}

	if want, ok := checksums[filepath.Base(name)]; ok {
		if got := hex.EncodeToString(h.Sum(nil)); got != want {
			log.WithFields(log.Fields{
				"file": name,
				"md5":  got,
				"want": want,
			}).Warn("[Dataset] File hash is incorrect")
		}
	}
	return data, nil
}
