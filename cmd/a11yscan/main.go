// Package main provides the entry point for the a11yscan CLI.
//
// a11yscan evaluates websites against WCAG 2.2 and ABNT NBR 17225:2025
// and reports accessibility issues in Portuguese.
//
// Usage:
//
//	a11yscan                 (interactive session)
//	a11yscan audit <url>
//	a11yscan history <url>
//
// See --help for all available options.
package main

// main is the entry point for a11yscan.
func main() {
	Execute()
}
