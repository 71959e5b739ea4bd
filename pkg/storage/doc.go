// Package storage writes export files for a run.
//
// The Manager resolves relative paths against a root directory and writes
// every file atomically: data goes to a temporary file next to the target
// which is renamed into place once complete, so a failed export never leaves
// a truncated file behind. Missing parent directories are created.
//
// Usage:
//
//	manager, err := storage.NewManager(".")
//	if err != nil {
//		return err
//	}
//	path, err := manager.WriteFile("data/sample_output.json", func(w io.Writer) error {
//		return export.WriteJSON(w, posts)
//	})
package storage
