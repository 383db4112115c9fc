package config

import (
	"github.com/msbkrkyn/safememefi-analyzer-sub000/pkg/config/reader"
)

type Options struct {
	Reader reader.Reader
}

type Option func(o *Options)

// WithReader sets the config reader
func WithReader(r reader.Reader) Option {
	return func(o *Options) {
		o.Reader = r
	}
}
