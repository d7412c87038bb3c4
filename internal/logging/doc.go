// Package logging builds the slog loggers used across the tool: a pretty
// console handler for interactive use and a JSON handler for machine
// consumption, selected by configuration.
package logging
