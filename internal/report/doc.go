// Package report defines the per-stream outcome record and writes the run
// report. The CSV file is the durable record of a run; console output is
// advisory only.
package report
