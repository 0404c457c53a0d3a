// Package media classifies directory entries as movie or subtitle files by
// extension and lists them for a rename run.
package media
