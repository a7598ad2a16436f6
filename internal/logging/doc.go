// Package logging assembles structured slog loggers for dubmux.
//
// Open builds a Session at startup: a console handler (pretty or JSON) plus an
// optional rotating, append-only log file, both fed by the same logger. The
// session must be closed on shutdown to release the file. Components receive
// the *slog.Logger by injection and tag their records with
// NewComponentLogger; WarnWithContext and ErrorWithContext enforce the
// event_type / error_hint / impact fields used for recoverable failures.
package logging
