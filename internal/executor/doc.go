// Package executor drives dependency-ordered module initialization. It runs
// the batches produced by the scheduler one after another, initializing every
// module inside a batch concurrently, with per-module timeout and a fixed
// retry delay between attempts.
//
// A batch always settles completely before the run moves on: a required
// module failing does not cut short its concurrent siblings, but once the
// batch has settled the run aborts and later batches never start. Optional
// module failures are recorded and the run continues. After the last batch
// (or after an abort) the advisory health checks of every successfully
// initialized module run; their failures appear in the summary but never
// change a module's outcome.
package executor
