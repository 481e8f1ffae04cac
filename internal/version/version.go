// Package version holds the application version string.
package version

// Version is the current gpt-proxy release. Overridden at build time via
// -ldflags "-X .../internal/version.Version=v1.2.3".
var Version = "dev"
