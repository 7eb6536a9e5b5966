// Package logging constructs the zap loggers used across the tool.
package logging
