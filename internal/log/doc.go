// Package log provides logging with automatic redaction of credential-like
// values, built on top of the standard slog package.
//
// Site configurations may carry cookies and authorization headers for demo
// servers. The RedactHandler masks those values before they reach the
// underlying handler, so verbose logging during a live workshop never puts
// a credential on the projector.
//
// # Usage
//
//	logger := log.NewRedactedLogger(os.Stderr, true) // verbose=true
//	logger.Debug("request prepared",
//	    "cookie", "session=abc123", // masked
//	    "url", "http://localhost:8893/",
//	)
package log
