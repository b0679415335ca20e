package main

import "os"
import "runtime/pprof"

import "github.com/pkg/errors"
import log "github.com/sirupsen/logrus"

// startPGO collects a cpu profile into name until stop is called. The file
// can be used for profile guided optimization of later builds.
func startPGO(name string) (stop func(), err error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create profile")
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "cannot start profile")
	}
	log.WithField("profile", name).Info("[Main] Collecting cpu profile")
	return func() {
		pprof.StopCPUProfile()
		f.Close()
	}, nil
}
