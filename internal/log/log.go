// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package log builds the logrus logger shared by the CLI and the server.
package log

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// InitLogs returns a text logger on stderr at the named level. An empty
// level means info.
func InitLogs(level string) (*logrus.Logger, error) {
	return New(os.Stderr, level)
}

// New returns a logger writing to w at the named level.
func New(w io.Writer, level string) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	log.SetLevel(lvl)
	return log, nil
}

// WithReqID attaches a request id field.
func WithReqID(reqID string, inner logrus.FieldLogger) logrus.FieldLogger {
	return inner.WithField("request_id", reqID)
}
