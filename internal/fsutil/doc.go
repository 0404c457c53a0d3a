// Package fsutil renames files without silently clobbering an existing
// destination.
package fsutil
