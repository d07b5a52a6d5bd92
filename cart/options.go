package cart

import (
	"github.com/YuminosukeSato/pcart/pkg/log"
)

// Option configures a search.
type Option func(*searchConfig)

type searchConfig struct {
	logger  log.Logger
	workers int
}

func defaultSearchConfig() searchConfig {
	return searchConfig{workers: 1}
}

// WithLogger sets the logger a search reports to. By default the global
// logger named after the operation is used.
func WithLogger(logger log.Logger) Option {
	return func(c *searchConfig) {
		c.logger = logger
	}
}

// WithParallelism sets how many workers OptimizeTree uses to evaluate the
// root's candidate splits. Values <= 0 mean one worker per CPU; 1 (the
// default) runs sequentially. The result does not depend on this setting.
func WithParallelism(workers int) Option {
	return func(c *searchConfig) {
		c.workers = workers
	}
}
