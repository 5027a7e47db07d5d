// Package version holds build information of refguard binaries.
package version

import (
	"fmt"

	"github.com/fatih/color"
)

// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version.
	Version = "0.3.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	nameColor    = color.New(color.FgCyan, color.Bold)
	versionColor = color.New(color.FgYellow, color.Bold)
	detailColor  = color.New(color.Faint)
)

// String renders version information as a single line. Colors are off
// when useColor is false.
func String(name string, useColor bool) string {
	paint := func(c *color.Color, s string) string {
		if !useColor {
			return s
		}
		c.EnableColor()
		return c.Sprint(s)
	}

	res := paint(nameColor, name) + " " + paint(versionColor, Version)
	switch {
	case GitCommit != "" && BuildDate != "":
		res += " " + paint(detailColor, fmt.Sprintf("(%s, %s)", GitCommit, BuildDate))
	case GitCommit != "":
		res += " " + paint(detailColor, fmt.Sprintf("(%s)", GitCommit))
	case BuildDate != "":
		res += " " + paint(detailColor, fmt.Sprintf("(%s)", BuildDate))
	}

	return res
}
