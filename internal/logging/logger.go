// Package logging wires zap into the CLI. Command output is plain stdout;
// the structured log is a debug aid, enabled by GROVE_DEBUG and written to
// a file inside the metadata directory so it never pollutes command output.
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

type Logger struct {
	*zap.Logger
}

// New returns a logger writing to debug.log under metaDir when GROVE_DEBUG
// is set, and a no-op logger otherwise.
func New(metaDir string) (*Logger, error) {
	if os.Getenv("GROVE_DEBUG") == "" {
		return &Logger{zap.NewNop()}, nil
	}

	config := zap.NewProductionConfig()
	config.OutputPaths = []string{filepath.Join(metaDir, "debug.log")}
	config.ErrorOutputPaths = config.OutputPaths

	logger, err := config.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{logger}, nil
}
