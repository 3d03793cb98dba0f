// Package services provides the shared error taxonomy and subprocess
// execution plumbing for the external tools subkit orchestrates.
package services
