// Package log provides a slog.Handler wrapper that masks sensitive
// values before they are written. Audits of pages behind a login carry
// cookies and auth headers in their configuration, and those must not
// leak into log output.
package log
