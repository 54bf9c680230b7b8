// Package platform detects the host OS, architecture, and Linux
// distribution. The result feeds two consumers: the Chrome-style
// User-Agent platform token used when impersonating a browser against
// the extension update endpoint, and the read-only `platform` table
// injected into Lua configuration files.
package platform

import "context"

// Info contains platform detection information.
type Info struct {
	OS      string // "linux", "darwin", "windows"
	Arch    string // "amd64", "arm64" (normalized)
	ArchRaw string // original GOARCH value

	// Linux distribution details, empty on non-Linux hosts or when
	// distro detection fails.
	Distro        string // distro ID (e.g., "ubuntu", "arch")
	DistroVersion string // distro version (e.g., "22.04")
}

// Detector detects the host platform.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}

// IsLinux returns true if the platform is Linux.
func (i *Info) IsLinux() bool {
	return i.OS == "linux"
}

// IsMacOS returns true if the platform is macOS.
func (i *Info) IsMacOS() bool {
	return i.OS == "darwin"
}

// IsWindows returns true if the platform is Windows.
func (i *Info) IsWindows() bool {
	return i.OS == "windows"
}

// UserAgentToken returns the platform segment of a Chrome User-Agent
// string for this host, matching what a genuine browser on the same
// platform would send.
func (i *Info) UserAgentToken() string {
	switch i.OS {
	case "windows":
		return "Windows NT 10.0; Win64; x64"
	case "darwin":
		return "Macintosh; Intel Mac OS X 10_15_7"
	default:
		if i.Arch == "arm64" {
			return "X11; Linux aarch64"
		}
		return "X11; Linux x86_64"
	}
}
