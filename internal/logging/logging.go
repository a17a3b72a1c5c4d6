// Package logging sets up the logrus logger used by the commands and adapts
// it to the view pipeline's stage events.
package logging

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/imgajeed76/dataview/internal/view"
)

type ctxKey struct{}

// New returns a text logger writing to w (stderr when nil). Verbose
// enables debug output; otherwise only warnings and errors are shown so
// table output stays clean.
func New(w io.Writer, verbose bool) *logrus.Logger {
	if w == nil {
		w = os.Stderr
	}
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableQuote:     true,
	})
	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// WithLogger stores a logger on ctx.
func WithLogger(ctx context.Context, log logrus.FieldLogger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// FromContext returns the logger stored on ctx, or a discarding logger.
func FromContext(ctx context.Context) logrus.FieldLogger {
	if ctx != nil {
		if log, ok := ctx.Value(ctxKey{}).(logrus.FieldLogger); ok {
			return log
		}
	}
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	return discard
}

// StageLogger logs pipeline recomputation at debug level and cache hits at
// trace level.
type StageLogger struct {
	log logrus.FieldLogger
}

func NewStageLogger(log logrus.FieldLogger) *StageLogger {
	return &StageLogger{log: log}
}

func (s *StageLogger) StageEvaluated(stage view.Stage, cached bool) {
	entry := s.log.WithField("stage", string(stage))
	if cached {
		entry.Trace("stage cached")
		return
	}
	entry.Debug("stage recomputed")
}

var _ view.Observer = (*StageLogger)(nil)
