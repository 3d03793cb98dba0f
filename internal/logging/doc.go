// Package logging builds slog loggers with console and JSON handlers plus
// the attribute helpers shared across subkit components.
package logging
