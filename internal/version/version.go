package version

// Version is the current repolens release. Bump it on every release.
const Version = "0.1.0"

// FullVersion returns the version with the "v" prefix.
func FullVersion() string {
	return "v" + Version
}
