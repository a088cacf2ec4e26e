// Package log provides structured logging for tabprep preprocessing runs.
//
// The package configures Go's log/slog with a JSON handler whose records are
// enriched with stack traces extracted from cockroachdb/errors values, and
// bridges library warnings into a zerolog logger.
package log

import (
	"fmt"
	"log/slog"
	"os"
)

// Standard attribute keys used across the library.
const (
	// OperationKey names the preprocessing operation being performed.
	// Standard values: "encode", "audit", "fit", "transform", "pairwise_test", "joint_test"
	OperationKey = "op"

	// ColumnKey names the dataset column an operation targets.
	ColumnKey = "column"

	// RowsKey carries the number of dataset rows involved.
	RowsKey = "dataset.rows"

	// ColumnsKey carries the number of dataset columns involved.
	ColumnsKey = "dataset.columns"

	// MissingKey carries a missing-value count.
	MissingKey = "missing.count"

	// GroupsKey carries the number of imputation groups.
	GroupsKey = "groups.count"

	// PValueKey carries a test p-value.
	PValueKey = "test.p_value"

	// StatisticKey carries a test statistic.
	StatisticKey = "test.statistic"
)

// SetupLogger installs the default slog logger used by the library.
func SetupLogger(loglevel string) {
	ops := slog.HandlerOptions{
		AddSource: true,
		Level:     ToLogLevel(loglevel),
	}
	handler := slog.NewJSONHandler(os.Stderr, &ops)
	errFmtHandler := WrapByErrFmtHandler(handler)
	slog.SetDefault(slog.New(errFmtHandler))
}

// ToLogLevel converts a level name to a slog.Level.
func ToLogLevel(level string) slog.Level {
	switch level {
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		panic(fmt.Sprintf("invalid log level :%s", level))
	}
}

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}
