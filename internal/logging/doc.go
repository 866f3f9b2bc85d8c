// Package logging constructs the slog logger used across wavextract.
// Two formats are offered: a compact human-readable console handler and
// standard JSON. The verbose CLI flag maps to the debug level, which is
// where external tool command lines are echoed.
package logging
