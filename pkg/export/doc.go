// Package export serializes canonical posts as JSON or CSV.
package export
