package goloops

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ReadOpts reads YAML-encoded Opts.  Keys absent from the input keep their DefaultOpts() value.
func ReadOpts(in io.Reader) (Opts, error) {
	opts := DefaultOpts()
	err := yaml.NewDecoder(in).Decode(&opts)
	if err == io.EOF {
		err = nil
	}
	if err != nil {
		return opts, errors.Wrap(ErrBadOpts, err.Error())
	}
	if err = opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// Validate normalizes and checks these Opts.
func (opts *Opts) Validate() error {
	if opts.TargetCurves < 0 {
		return errors.Wrapf(ErrBadOpts, "target_curves must be >= 0 (got %d)", opts.TargetCurves)
	}
	if opts.TargetCurves == 0 {
		opts.TargetCurves = DefaultTargetCurves
	}
	return nil
}
