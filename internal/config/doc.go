// Package config provides configuration structures and utilities for
// the accessibility evaluator: evaluation options, per-site settings
// loaded from the .a11yscan file, and XDG directory helpers.
package config
