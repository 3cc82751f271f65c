// Package logger configures the process-wide slog JSON logger and carries
// request-scoped loggers (with trace_id and user_id attached) through
// context.Context.
package logger
