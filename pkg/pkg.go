// Package pkg holds identity metadata shared by the hyprtxt command and its
// packages.
//
//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version returns the semantic version embedded at build time.
func Version() string { return strings.TrimSpace(version) }

const (
	// Name is the command name. It appears in help text and default
	// configuration paths.
	Name = "hyprtxt"
	// Description is the one-line summary shown in help output.
	Description = "Compile compact markup templates into HTML"
)
