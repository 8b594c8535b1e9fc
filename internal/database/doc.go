// Package database provides SQLite-based storage for audit history.
//
// Evaluation reports are stored as JSON alongside the columns needed to
// list and compare audits (url, timestamp, score, severity summary)
// without decoding full reports. The CGO-free modernc.org/sqlite driver
// keeps cross-compilation simple and the database is a single file
// under the XDG data directory.
package database
