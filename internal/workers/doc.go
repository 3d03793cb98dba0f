// Package workers provides the bounded worker pool the extraction pipeline
// uses to process independent videos.
package workers
