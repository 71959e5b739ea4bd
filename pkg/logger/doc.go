// Package logger provides the structured logging interface used across igposts.
//
// It wraps zerolog with a small interface so components can take a Logger
// and tests can substitute a TestLogger or NewNopLogger:
//
//	logger.Initialize(&cfg.Logging)
//	logger.WithField("username", "zuck").Info("Fetching posts")
//	log.WarnWithFields("live fetch failed, falling back to mock", map[string]interface{}{
//	    "username": "zuck",
//	    "attempts": 3,
//	})
//
// Console output is colored only when stderr is a terminal. When a log file
// is configured, JSON lines are appended to it as well.
package logger
