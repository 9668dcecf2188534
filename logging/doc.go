// Package logging builds the slog loggers used by nmconfig: JSON by default,
// logfmt-style text on request. The fx App installs one as the default logger.
package logging
