package logging

import (
	"context"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Setup configures zerolog globally and returns a context carrying a logger tagged
// with tag. Unknown levels fall back to info.
func Setup(tag, level string, out io.Writer) context.Context {
	if out == nil {
		out = os.Stderr
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	// keep only the last directory of the caller's path
	zerolog.CallerMarshalFunc = func(_ uintptr, file string, line int) string {
		parts := strings.Split(file, "/")
		if len(parts) > 1 {
			return strings.Join(parts[len(parts)-2:], "/") + ":" + strconv.Itoa(line)
		}
		return file + ":" + strconv.Itoa(line)
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	logger := zerolog.New(out).With().Timestamp().Str("@tag", tag).Caller().Logger()
	return logger.WithContext(context.Background())
}
