// Package version exposes the build version string cobra's --version flag reports.
package version

// Current is overridden at build time via -ldflags "-X nodal/internal/shared/version.Current=...".
var Current = "dev"
