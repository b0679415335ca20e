package feedforward

import "compress/lzw"
import "encoding/json"
import "io"
import "os"

import "github.com/pkg/errors"

import "github.com/neurlang/fashion/layer"
import "github.com/neurlang/fashion/layer/conv2d"
import "github.com/neurlang/fashion/layer/flatten"
import "github.com/neurlang/fashion/layer/full"
import "github.com/neurlang/fashion/layer/maxpool2d"

// Format tags the model file layout
const Format = "fashion.v1"

// ErrModelNotFound is returned by Load when there is no model file
var ErrModelNotFound = errors.New("model file not found")

// ErrModelFormat is returned when a model file can not be decoded
var ErrModelFormat = errors.New("malformed model file")

type paramFile struct {
	Name  string    `json:"name"`
	Shape []int     `json:"shape"`
	Value []float32 `json:"value"`
}

type layerFile struct {
	Kind   string          `json:"kind"`
	Config json.RawMessage `json:"config"`
	Params []paramFile     `json:"params,omitempty"`
}

type modelFile struct {
	Format  string      `json:"format"`
	Input   layer.Shape `json:"input"`
	Classes []string    `json:"classes,omitempty"`
	Layers  []layerFile `json:"layers"`
}

// WriteCompressedWeightsToFile writes model architecture and weights to a lzw file
func (f FeedforwardNetwork) WriteCompressedWeightsToFile(name string) error {
	file, err := os.Create(name)
	if err != nil {
		return errors.Wrap(err, "cannot create model file")
	}
	err = f.WriteCompressedWeights(file)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return err
}

// WriteCompressedWeights writes model architecture and weights to a writer
func (f FeedforwardNetwork) WriteCompressedWeights(w io.Writer) error {
	if !f.Compiled() {
		return errors.New("cannot save a network which was not compiled")
	}
	m := modelFile{
		Format:  Format,
		Input:   f.input,
		Classes: f.classes,
	}
	for i, l := range f.layers {
		config, err := json.Marshal(l)
		if err != nil {
			return errors.Wrapf(err, "layer %d (%s)", i, l.Kind())
		}
		lf := layerFile{Kind: l.Kind(), Config: config}
		for _, p := range f.combiners[i].Params() {
			lf.Params = append(lf.Params, paramFile{Name: p.Name, Shape: p.Shape, Value: p.Value})
		}
		m.Layers = append(m.Layers, lf)
	}

	lw := lzw.NewWriter(w, lzw.LSB, 8)
	if err := json.NewEncoder(lw).Encode(&m); err != nil {
		lw.Close()
		return errors.Wrap(err, "cannot encode model")
	}
	return lw.Close()
}

// ReadCompressedWeightsFromFile reads model architecture and weights from a lzw file
func (f *FeedforwardNetwork) ReadCompressedWeightsFromFile(name string) error {
	file, err := os.Open(name)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(ErrModelNotFound, "'%s'", name)
		}
		return errors.Wrap(err, "cannot open model file")
	}
	defer file.Close()
	return errors.Wrapf(f.ReadCompressedWeights(file), "'%s'", name)
}

// ReadCompressedWeights replaces the network with the one stored in the reader
func (f *FeedforwardNetwork) ReadCompressedWeights(r io.Reader) error {
	lr := lzw.NewReader(r, lzw.LSB, 8)
	defer lr.Close()

	var m modelFile
	if err := json.NewDecoder(lr).Decode(&m); err != nil {
		return errors.Wrap(ErrModelFormat, err.Error())
	}
	if m.Format != Format {
		return errors.Wrapf(ErrModelFormat, "format %q", m.Format)
	}

	var net FeedforwardNetwork
	for i, lf := range m.Layers {
		l, err := decodeLayer(lf)
		if err != nil {
			return errors.Wrapf(err, "layer %d", i)
		}
		net.NewLayer(l)
	}
	if m.Classes != nil {
		net.SetClasses(m.Classes)
	}
	if err := net.Compile(m.Input, nil); err != nil {
		return errors.Wrap(ErrModelFormat, err.Error())
	}
	for i, lf := range m.Layers {
		params := net.combiners[i].Params()
		if len(params) != len(lf.Params) {
			return errors.Wrapf(ErrModelFormat, "layer %d has %d params, want %d", i, len(lf.Params), len(params))
		}
		for j, p := range params {
			if lf.Params[j].Name != p.Name || len(lf.Params[j].Value) != p.Len() {
				return errors.Wrapf(ErrModelFormat, "layer %d param %q does not fit %q%v",
					i, lf.Params[j].Name, p.Name, p.Shape)
			}
			copy(p.Value, lf.Params[j].Value)
		}
	}
	*f = net
	return nil
}

func decodeLayer(lf layerFile) (l layer.Layer, err error) {
	switch lf.Kind {
	case conv2d.Kind:
		l = &conv2d.Conv2DLayer{}
	case maxpool2d.Kind:
		l = &maxpool2d.MaxPool2DLayer{}
	case flatten.Kind:
		l = &flatten.FlattenLayer{}
	case full.Kind:
		l = &full.FullLayer{}
	default:
		return nil, errors.Wrapf(ErrModelFormat, "unknown layer kind %q", lf.Kind)
	}
	if len(lf.Config) > 0 {
		if err = json.Unmarshal(lf.Config, l); err != nil {
			return nil, errors.Wrap(ErrModelFormat, err.Error())
		}
	}
	return l, nil
}

// Load reads a trained network from a model file
func Load(name string) (*FeedforwardNetwork, error) {
	var net FeedforwardNetwork
	if err := net.ReadCompressedWeightsFromFile(name); err != nil {
		return nil, err
	}
	return &net, nil
}
