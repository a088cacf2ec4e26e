package log

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/gotabular/tabprep/pkg/errors"
)

// EnableZerologWarnings routes library warnings (pkg/errors.Warn) through a
// zerolog logger writing to w. Warning types implementing
// zerolog.LogObjectMarshaler are emitted with their structured fields.
// Passing nil writes to stderr.
func EnableZerologWarnings(w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	logger := zerolog.New(w).With().Timestamp().Logger()

	errors.SetZerologWarnFunc(func(warning error) {
		ev := logger.Warn()
		if obj, ok := warning.(zerolog.LogObjectMarshaler); ok {
			ev.EmbedObject(obj).Msg(warning.Error())
			return
		}
		ev.Err(warning).Msg("tabprep warning")
	})
	return logger
}
