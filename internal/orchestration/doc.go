// Package orchestration renders one scene with several strategies
// concurrently and checks that every strategy produced the same frame. It
// decouples the comparison logic from presentation via the ProgressReporter
// and ResultPresenter interfaces.
package orchestration
