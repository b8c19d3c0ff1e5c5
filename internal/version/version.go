package version

import "github.com/fatih/color"

// Version information for the stylefix CLI.
// These variables can be overridden at build time via -ldflags.

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Version is the plain semantic version, suitable for machine output
	// (JSON, SARIF, scripted --version checks).
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Pretty renders the version with per-component colors for terminals.
func Pretty() string {
	return versionMajorColor.Sprint("0") + "." +
		versionMinorColor.Sprint("1") + "." +
		versionPatchColor.Sprint("0") + "-dev"
}
