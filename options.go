package pbitheme

import (
	"io"

	"github.com/charmbracelet/log"
)

// Option configures a Session.
type Option func(*options)

// options holds the configuration of a Session.
type options struct {
	logger *log.Logger
}

// defaultOptions returns the default options. The default logger discards
// everything.
func defaultOptions() options {
	return options{
		logger: log.New(io.Discard),
	}
}

// WithLogger sets the logger for the session and the model builder.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
