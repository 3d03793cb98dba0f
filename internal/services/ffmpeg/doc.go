// Package ffmpeg shells out to the ffmpeg CLI for subtitle stream demux and
// SubRip re-encoding. All format handling stays inside ffmpeg.
package ffmpeg
