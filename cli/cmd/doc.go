// Package cmd implements the hyprtxt subcommands: render, fmt, site, and
// assets.
//
// Commands read their kong context and output writer from the
// [context.Context] passed to Run. Template errors are returned as
// [SourceError] values and can be reported with [Diagnose].
package cmd
