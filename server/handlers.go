package server

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/neurlang/fashion/imageprep"
	"github.com/neurlang/fashion/parallel"
)

// Prediction is the classification of one image
type Prediction struct {
	Image      string `json:"image"`
	Prediction string `json:"prediction"`
}

func (s *Server) index(c *gin.Context) {
	c.String(http.StatusOK, Banner)
}

// predict classifies every image in the directory. Every outcome, errors
// included, is answered with 200.
func (s *Server) predict(c *gin.Context) {
	paths, err := s.listImages()
	if err != nil {
		log.WithField("request_id", c.GetString("request_id")).
			Error("[Predict] Couldn't list images: ", err.Error())
		c.JSON(http.StatusOK, gin.H{"error": err.Error()})
		return
	}
	if len(paths) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No new data to process"})
		return
	}

	results := make([]*Prediction, len(paths))
	parallel.ForEach(len(paths), s.threads, func(i int) {
		defer func() {
			if r := recover(); r != nil {
				log.WithField("request_id", c.GetString("request_id")).
					Error("[Predict] Recovered from panic on ", paths[i], ": ", r)
				results[i] = nil
			}
		}()
		results[i] = s.classify(paths[i])
	})

	predictions := make([]Prediction, 0, len(paths))
	for _, p := range results {
		if p != nil {
			predictions = append(predictions, *p)
		}
	}
	c.JSON(http.StatusOK, gin.H{"predictions": predictions})
}

// listImages returns the paths of the directory entries with the image
// extension, in lexical order
func (s *Server) listImages() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), s.ext) {
			paths = append(paths, filepath.Join(s.dir, e.Name()))
		}
	}
	return paths, nil
}

// classify returns nil when the image can not be normalized
func (s *Server) classify(path string) *Prediction {
	start := time.Now()
	t, err := imageprep.Normalize(path)
	if err != nil {
		log.Warn("[Predict] Image normalization failed for ", path, ": ", err.Error())
		return nil
	}
	class, probs, err := s.net.Predict(t)
	if err != nil {
		log.Warn("[Predict] Couldn't classify ", path, ": ", err.Error())
		return nil
	}
	s.metrics.inference.Observe(time.Since(start).Seconds())

	name := fmt.Sprintf("unknown(%d)", class)
	if class < len(s.classes) {
		name = s.classes[class]
	}
	s.metrics.predictions.WithLabelValues(name).Inc()
	log.WithFields(log.Fields{
		"image":      path,
		"prediction": name,
	}).Debug("[Predict] Raw predictions: ", probs)
	return &Prediction{Image: path, Prediction: name}
}
