// Package logtail reads the end of podium's JSON log file for the in-app
// log overlay.
//
// Read keeps a ring buffer of the last N lines so large files are scanned
// once without holding them in memory. Parse turns one zap JSON line into an
// Entry with the level, message and remaining fields split out; anything
// that is not JSON is shown as-is.
package logtail
