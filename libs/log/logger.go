package log

const (
	// LogFormatPlain defines a logging format used for human-readable
	// text-based logging that is not structured. Typically this format is
	// used for development and testing purposes.
	LogFormatPlain string = "plain"

	// LogFormatText is an alias of the plain format.
	LogFormatText string = "text"

	// LogFormatJSON defines a logging format for structured JSON-based
	// logging that is typically used in production environments, which can
	// be sent to logging facilities that support complex log parsing and
	// querying.
	LogFormatJSON string = "json"

	// Supported logging levels.
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// Logger defines a generic logging interface used throughout windvane.
type Logger interface {
	Debug(msg string, keyVals ...interface{})
	Info(msg string, keyVals ...interface{})
	Error(msg string, keyVals ...interface{})

	With(keyVals ...interface{}) Logger
}
