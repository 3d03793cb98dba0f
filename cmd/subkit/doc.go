// Package main hosts the subkit CLI entrypoint and command graph.
//
// The Cobra-based command tree surfaces the subtitle workflows: probing
// stream layout, extracting embedded tracks to SRT, fetching missing
// subtitles from OpenSubtitles, and aligning subtitle timing. It centralizes
// configuration resolution and structured logging setup so subcommands can
// focus on user experience instead of wiring.
package main
