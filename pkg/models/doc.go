// Package models defines the post records that flow through a run:
// RawPost from the fetcher, and CanonicalPost after normalization.
package models
