// options.go - Functional options for opening and exporting tables
package gonde

import (
	"go.uber.org/zap"

	"github.com/wilhasse/go-nde/field"
	"github.com/wilhasse/go-nde/schema"
)

// Option configures a Table, Dump or Export.
type Option func(*options)

type options struct {
	log           *zap.Logger
	maxHops       int
	workers       int
	strictPrimary bool
	table         string
}

func defaultOptions() options {
	return options{
		log:     zap.NewNop(),
		maxHops: field.DefaultMaxRedirectHops,
		workers: 1,
		table:   schema.DefaultTable,
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log == nil {
			log = zap.NewNop()
		}
		o.log = log
	}
}

// WithMaxRedirectHops bounds redirect chains. Values <= 0 select the
// default of 64.
func WithMaxRedirectHops(n int) Option {
	return func(o *options) {
		if n <= 0 {
			n = field.DefaultMaxRedirectHops
		}
		o.maxHops = n
	}
}

// WithWorkers sets how many records are decoded concurrently. 1 (the
// default) decodes sequentially.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.workers = n
	}
}

// WithStrictPrimary makes a missing index 255 an error instead of falling
// back to the first index in the file.
func WithStrictPrimary(strict bool) Option {
	return func(o *options) { o.strictPrimary = strict }
}

// WithTable names the table written by the sql and sqlite export formats.
func WithTable(name string) Option {
	return func(o *options) {
		if name != "" {
			o.table = name
		}
	}
}
