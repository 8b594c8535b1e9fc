// Package crawler parses fetched documents into structured pages and
// optionally discovers further same-host pages for multi-page audits.
//
// The Parser does a single DOM pass over golang.org/x/net/html output and
// pre-extracts every element group the accessibility checks need. The
// Spider walks a site breadth-first, sequentially, with depth and page
// caps plus a politeness delay between requests.
package crawler
