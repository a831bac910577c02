// Package parallel provides the reusable worker pool that executes row
// chunks and the first-error collector used to fail a frame as a whole.
package parallel
