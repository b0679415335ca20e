package trainer

import "github.com/pkg/errors"
import log "github.com/sirupsen/logrus"

import "github.com/neurlang/fashion/datasets/fashionmnist"
import "github.com/neurlang/fashion/net/feedforward"

// Resume replaces net with the model stored in dstmodel when resume is set.
// A missing model is not an error, training then starts from scratch.
func Resume(net *feedforward.FeedforwardNetwork, resume bool, dstmodel string) error {
	if !resume || dstmodel == "" {
		return nil
	}
	loaded, err := feedforward.Load(dstmodel)
	if errors.Is(err, feedforward.ErrModelNotFound) {
		log.WithField("model", dstmodel).Warn("[Trainer] Nothing to resume, training from scratch")
		return nil
	}
	if err != nil {
		return err
	}
	if err := fashionmnist.CheckClasses(loaded.Classes()); err != nil {
		return errors.Wrapf(err, "cannot resume '%s'", dstmodel)
	}
	if loaded.Len() != net.Len() || loaded.Input() != net.Input() {
		return errors.Errorf("cannot resume '%s': topology differs", dstmodel)
	}
	*net = *loaded
	log.WithField("model", dstmodel).Info("[Trainer] Resuming from saved model")
	return nil
}
