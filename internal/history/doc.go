// Package history persists run records to a SQLite database kept alongside
// the extracted files. Each run stores its settings, status counts, and the
// full outcome sequence, so past extractions can be audited after the CSV
// report has been deleted or overwritten.
package history
