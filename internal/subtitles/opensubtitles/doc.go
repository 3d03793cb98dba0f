// Package opensubtitles talks to the OpenSubtitles REST API: rate-limited
// search and download, backed by a locked single-file SQLite cache.
package opensubtitles
