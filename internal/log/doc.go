// Package log provides logging for the page auditor, built on top of the
// standard slog package.
//
// This package extends slog to provide:
//   - Automatic truncation of oversized attribute values (raw HTML, CSS
//     text, long selectors) so one noisy page cannot flood the log
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Truncation
//
// Page analysis routinely logs fragments of the page being audited:
// unparseable style declarations, generated selectors, sampled text.
// These values have no natural upper bound. The TruncateHandler caps
// every string attribute at a fixed length before it reaches the
// underlying handler, marking truncated values with an ellipsis suffix.
//
// # Usage
//
//	// Create a logger
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Debug("unparseable declaration",
//	    "page", "https://example.com/",
//	    "value", longCSSText, // Truncated to the configured cap
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
