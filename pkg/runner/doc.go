// Package runner drives a full export: it loads the username list, fetches
// each profile in turn, enriches and normalizes the raw posts, and writes the
// output file plus a latest snapshot.
//
// A username that fails is logged and contributes no rows; the rest of the
// run is unaffected. The snapshot is best effort.
package runner
