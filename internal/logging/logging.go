// Package logging configures the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

const DefaultFileName = "wegive.log"

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// fileCloser points the logger back at stderr before closing the file.
type fileCloser struct{ f *os.File }

func (c fileCloser) Close() error {
	log.SetOutput(os.Stderr)
	return c.f.Close()
}

// Init sets level, formatter and output. The TUI owns the terminal, so logs
// go to a file unless file is "-". An empty file means dataDir/wegive.log.
// The returned closer releases the log file.
func Init(level, file, dataDir string) (io.Closer, error) {
	logLevel, err := log.ParseLevel(level)
	if err != nil {
		log.SetLevel(log.InfoLevel)
	} else {
		log.SetLevel(logLevel)
	}

	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})

	if file == "-" {
		log.SetOutput(os.Stderr)
		return nopCloser{}, nil
	}
	if file == "" {
		file = filepath.Join(dataDir, DefaultFileName)
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return nil, fmt.Errorf("log dir: %w", err)
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	log.WithField("prefix", "init").Debug("logging to ", file)
	return fileCloser{f}, nil
}
