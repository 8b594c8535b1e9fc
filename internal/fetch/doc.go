// Package fetch retrieves pages over HTTP with the timeouts, size limits
// and custom headers an accessibility evaluation needs. It deliberately
// stops at raw bytes; parsing into a structured page is the crawler's job.
package fetch
