// Package logging defines the Logger the pool, the renderer and the mode
// runners log through, backed by zerolog or by the standard log package.
package logging
