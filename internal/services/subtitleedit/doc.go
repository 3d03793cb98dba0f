// Package subtitleedit invokes Subtitle Edit in batch mode to OCR
// image-based subtitle formats into SubRip files.
package subtitleedit
