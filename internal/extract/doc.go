// Package extract drives the per-file, per-stream extraction workflow:
// probe each input, name each audio stream's output, enforce the
// skip/overwrite policy, invoke the transcoder, and accumulate one outcome
// record per decision in enumeration order.
//
// Processing is strictly sequential and per-item failures never abort the
// run; the accumulated outcomes are the run's durable result.
package extract
