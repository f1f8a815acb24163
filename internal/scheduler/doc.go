// Package scheduler computes the dependency-ordered batch plan for an
// orchestration run. Each batch holds modules whose dependencies all settled
// in strictly earlier batches; modules within a batch may initialize
// concurrently.
//
// A dependency naming no registered module is treated as already satisfied by
// default. This leniency allows optional cross-cutting dependencies but can
// mask configuration typos, so Options.StrictDeps turns it into an
// UnknownDependencyError instead.
//
// When no progress can be made (a circular or permanently unsatisfiable
// dependency), the remaining modules are reported in Plan.Stuck rather than
// silently folded into the batches; the caller decides whether to attempt
// them anyway or fail the run.
package scheduler
