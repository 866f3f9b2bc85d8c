// Package naming builds deterministic, filesystem-safe output paths for
// extracted audio streams. Determinism matters: the skip/overwrite policy
// compares paths across runs, so identical inputs must always map to the
// same name.
package naming
