// Package report renders evaluation results in different output formats.
//
// This package contains writers for each format:
//   - ConsoleWriter: Portuguese text output for terminal display
//   - JSONWriter: structured JSON output for tool integration
//   - MarkdownWriter: Markdown output for documentation and sharing
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed with MultiWriter for multi-format output.
// ExportJSON and ExportMarkdown wrap the writers with file handling for
// the interactive export prompts.
package report
