// Package logging provides structured logging configuration for the mock.
//
// This package wraps log/slog. Components accept a *slog.Logger in their
// constructor; when none is given they fall back to Nop().
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatText,
//	})
//	logger = logging.Component(logger, "runs")
//	logger.Debug("route called", "route", "runs.retrieve", "call", 3)
package logging
