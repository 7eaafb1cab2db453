package platform

import (
	"fmt"
	"strings"
)

// familyMap maps distribution names to their canonical family names.
var familyMap = map[string]string{
	"debian":   FamilyDebian,
	"ubuntu":   FamilyDebian,
	"rhel":     FamilyRHEL,
	"centos":   FamilyRHEL,
	"rocky":    FamilyRHEL,
	"fedora":   FamilyFedora,
	"suse":     FamilySUSE,
	"opensuse": FamilySUSE,
	"arch":     FamilyArch,
	"manjaro":  FamilyArch,
	"alpine":   FamilyAlpine,
	"gentoo":   FamilyGentoo,
}

// ParseOS converts a GOOS value to an OS.
func ParseOS(goos string) (OS, error) {
	switch strings.ToLower(strings.TrimSpace(goos)) {
	case "linux":
		return OSLinux, nil
	case "darwin", "macos", "mac":
		return OSMac, nil
	case "windows":
		return OSWindows, nil
	default:
		return 0, fmt.Errorf("unsupported operating system: %s", goos)
	}
}

// ParseArch converts a GOARCH value, or a kernel machine name such as
// "x86_64" or "aarch64", to an Arch.
func ParseArch(arch string) (Arch, error) {
	switch strings.ToLower(strings.TrimSpace(arch)) {
	case "arm64", "aarch64":
		return ArchAarch64, nil
	case "386", "i386", "i686", "x86":
		return ArchX86, nil
	case "amd64", "x86_64", "x64":
		return ArchX8664, nil
	default:
		return 0, fmt.Errorf("unsupported architecture: %s", arch)
	}
}

// ParseKey parses an "os/arch" pair such as "linux/amd64".
func ParseKey(s string) (Key, error) {
	osPart, archPart, ok := strings.Cut(s, "/")
	if !ok {
		return Key{}, fmt.Errorf("invalid platform %q: want os/arch", s)
	}
	o, err := ParseOS(osPart)
	if err != nil {
		return Key{}, err
	}
	a, err := ParseArch(archPart)
	if err != nil {
		return Key{}, err
	}
	return Key{OS: o, Arch: a}, nil
}

func normalizePlatform(platform string) string {
	return strings.ToLower(strings.TrimSpace(platform))
}

// mapFamily maps distribution family strings to canonical family names.
func mapFamily(family string) string {
	if canonical, ok := familyMap[normalizePlatform(family)]; ok {
		return canonical
	}
	return FamilyUnknown
}
