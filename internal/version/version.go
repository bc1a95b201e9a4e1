// /internal/version/version.go
package version

import "runtime/debug"

var (
	AppName = "Modbot"

	// Version is set at build time:
	// -ldflags "-X github.com/keshon/modbot/internal/version.Version=v1.2.3"
	Version = ""
)

// String returns the release version, falling back to module build
// info for plain go-build binaries.
func String() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "devel"
}
