package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var root zerolog.Logger

func init() {
	writer := zerolog.MultiLevelWriter(
		SpecificLevelWriter{
			Writer: zerolog.ConsoleWriter{
				Out:        os.Stdout,
				TimeFormat: time.RFC3339,
			},
			Levels: []zerolog.Level{
				zerolog.DebugLevel, zerolog.InfoLevel, zerolog.WarnLevel,
			},
		},
		SpecificLevelWriter{
			Writer: zerolog.ConsoleWriter{
				Out: os.Stderr,
			},
			Levels: []zerolog.Level{
				zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel,
			},
		},
	)
	root = zerolog.New(writer).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}

// SetVerbose lowers the global level to debug.
func SetVerbose(verbose bool) {
	if verbose {
		root = root.Level(zerolog.DebugLevel)
	}
}

// For returns a child logger scoped to a component.
func For(component string) zerolog.Logger {
	return root.With().Str("component", component).Logger()
}

func Info(msg string) {
	root.Info().Msg(msg)
}

func Infof(format string, args ...interface{}) {
	root.Info().Msgf(format, args...)
}

func Warnf(format string, args ...interface{}) {
	root.Warn().Msgf(format, args...)
}

func Errorf(format string, args ...interface{}) {
	root.Error().Msgf(format, args...)
}

func Debugf(format string, args ...interface{}) {
	root.Debug().Msgf(format, args...)
}

// SpecificLevelWriter forwards only the listed levels to its writer, so info
// and errors can go to different streams.
type SpecificLevelWriter struct {
	io.Writer
	Levels []zerolog.Level
}

func (w SpecificLevelWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	for _, l := range w.Levels {
		if l == level {
			return w.Write(p)
		}
	}
	return len(p), nil
}
