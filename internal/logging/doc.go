// Package logging provides structured logging for qdev.
//
// It wraps a zap logger behind package-level convenience functions. Logging
// is silent by default so normal CLI output stays clean; set QDEV_LOG_LEVEL
// to enable it, which is mainly useful when debugging the preview server.
package logging
