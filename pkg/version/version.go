// Package version holds build information stamped in with -ldflags.
package version

// Build information. Populated at build time via
// -ldflags "-X github.com/rshade/cafetable/pkg/version.version=v1.2.3".
//
//nolint:gochecknoglobals // Set by the linker.
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// GetVersion returns the release version, or "dev" for local builds.
func GetVersion() string {
	return version
}

// GetGitCommit returns the commit the binary was built from.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return buildDate
}
