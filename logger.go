package spiderkit

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// Logger defines logging methods used by the library. Implementations should be cheap.
// Default is FmtLogger which writes to stdout/stderr using fmt.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// FmtLogger is a minimal logger that prints messages with level prefixes.
// Debug/Info go to stdout; Warn/Error go to stderr.
type FmtLogger struct{}

// NewFmtLogger creates a new FmtLogger.
func NewFmtLogger() *FmtLogger { return &FmtLogger{} }

func (FmtLogger) Debugf(format string, args ...any) { fmt.Printf("[DEBUG] "+format+"\n", args...) }
func (FmtLogger) Infof(format string, args ...any)  { fmt.Printf("[INFO]  "+format+"\n", args...) }
func (FmtLogger) Warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "[WARN]  "+format+"\n", args...)
}
func (FmtLogger) Errorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "[ERROR] "+format+"\n", args...)
}

// ZeroLogger adapts a zerolog.Logger to the Logger interface, for
// applications that want structured output from the dispatch loop.
type ZeroLogger struct {
	L zerolog.Logger
}

// NewZeroLogger wraps the given zerolog logger.
func NewZeroLogger(l zerolog.Logger) *ZeroLogger { return &ZeroLogger{L: l} }

func (z *ZeroLogger) Debugf(format string, args ...any) { z.L.Debug().Msgf(format, args...) }
func (z *ZeroLogger) Infof(format string, args ...any)  { z.L.Info().Msgf(format, args...) }
func (z *ZeroLogger) Warnf(format string, args ...any)  { z.L.Warn().Msgf(format, args...) }
func (z *ZeroLogger) Errorf(format string, args ...any) { z.L.Error().Msgf(format, args...) }
