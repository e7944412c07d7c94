package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"digital.vasic.checks/pkg/assertion"
	"digital.vasic.checks/pkg/logging"
	"digital.vasic.checks/pkg/sink"
)

// BuildLogger constructs the logger selected by c.Log. The console
// format also writes JSON Lines to c.Log.Output when one is set.
func (c *Config) BuildLogger() (logging.Logger, error) {
	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	if c.Log.Verbose {
		level = logging.LevelDebug
	}

	switch c.Log.Format {
	case FormatConsole, "":
		console := logging.NewConsoleLogger(c.Log.Verbose)
		console.SetLevel(level)
		if c.Log.Output == "" {
			return console, nil
		}
		file, err := logging.NewJSONLogger(logging.LoggerConfig{
			OutputPath: c.Log.Output,
			Level:      level,
			Verbose:    c.Log.Verbose,
		})
		if err != nil {
			return nil, err
		}
		return logging.NewMultiLogger(console, file), nil
	case FormatJSON:
		return logging.NewJSONLogger(logging.LoggerConfig{
			OutputPath: c.Log.Output,
			Level:      level,
			Verbose:    c.Log.Verbose,
		})
	case FormatZap:
		return logging.NewZapLogger(level, c.Log.Verbose)
	default:
		return nil, fmt.Errorf("unsupported log format: %s", c.Log.Format)
	}
}

// BuildSink constructs the diagnostic sink selected by
// c.Diagnostics. The returned closer releases an opened file and is
// never nil.
func (c *Config) BuildSink(
	logger logging.Logger,
) (assertion.Sink, io.Closer, error) {
	var sinks []assertion.Sink
	var closer io.Closer = nopCloser{}

	switch c.Diagnostics.Output {
	case OutputNone:
	case OutputStderr, "":
		sinks = append(sinks, sink.NewWriterSink(os.Stderr))
	case OutputStdout:
		sinks = append(sinks, sink.NewWriterSink(os.Stdout))
	default:
		path := c.Diagnostics.Output
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, nil, fmt.Errorf(
				"failed to create diagnostics directory: %w", err,
			)
		}
		file, err := os.OpenFile(
			path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644,
		)
		if err != nil {
			return nil, nil, fmt.Errorf(
				"failed to open diagnostics file: %w", err,
			)
		}
		sinks = append(sinks, sink.NewWriterSink(file))
		closer = file
	}

	if c.Diagnostics.Log && logger != nil {
		sinks = append(sinks, sink.NewLoggerSink(logger))
	}

	return sink.NewMultiSink(sinks...), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
