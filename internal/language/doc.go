// Package language normalizes language codes (ISO 639-1/639-2, optional
// country suffixes) for subtitle track selection and provider queries.
package language
