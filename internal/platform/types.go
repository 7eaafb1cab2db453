// Package platform detects the operating system and CPU architecture that
// golangci-ls is provisioning a language server for.
//
// Detection yields a Key, a closed {OS, Arch} pair that the binary package
// maps onto release asset names. Linux distribution details are detected with
// gopsutil for diagnostics and for the read-only platform table exposed to Lua
// settings files; a failed distro lookup never fails detection.
package platform

import (
	"context"
	"fmt"
)

// Linux distribution family constants.
const (
	FamilyDebian  = "debian"  // Debian, Ubuntu, Linux Mint
	FamilyRHEL    = "rhel"    // RHEL, CentOS, Rocky Linux, AlmaLinux
	FamilyFedora  = "fedora"  // Fedora
	FamilySUSE    = "suse"    // openSUSE, SLES
	FamilyArch    = "arch"    // Arch Linux, Manjaro
	FamilyAlpine  = "alpine"  // Alpine Linux
	FamilyGentoo  = "gentoo"  // Gentoo
	FamilyUnknown = "unknown" // Unrecognized distributions
)

// OS is an operating system a language server release is published for.
type OS int

const (
	OSLinux OS = iota
	OSMac
	OSWindows
)

// AllOS lists every OS variant. Label mappings are tested against it.
var AllOS = []OS{OSLinux, OSMac, OSWindows}

// String returns the GOOS spelling of the OS.
func (o OS) String() string {
	switch o {
	case OSLinux:
		return "linux"
	case OSMac:
		return "darwin"
	case OSWindows:
		return "windows"
	default:
		return fmt.Sprintf("OS(%d)", int(o))
	}
}

// Arch is a CPU architecture a language server release is published for.
type Arch int

const (
	ArchAarch64 Arch = iota
	ArchX86
	ArchX8664
)

// AllArch lists every Arch variant.
var AllArch = []Arch{ArchAarch64, ArchX86, ArchX8664}

// String returns the GOARCH spelling of the architecture.
func (a Arch) String() string {
	switch a {
	case ArchAarch64:
		return "arm64"
	case ArchX86:
		return "386"
	case ArchX8664:
		return "amd64"
	default:
		return fmt.Sprintf("Arch(%d)", int(a))
	}
}

// Key identifies the platform a binary must run on.
type Key struct {
	OS   OS
	Arch Arch
}

func (k Key) String() string {
	return k.OS.String() + "/" + k.Arch.String()
}

// Info contains platform detection results.
type Info struct {
	Key        Key
	GOOS       string // runtime.GOOS
	GOARCH     string // runtime.GOARCH
	KernelArch string // machine architecture reported by the kernel, may be empty
	Platform   string // distro ID (Linux only, e.g., "ubuntu")
	Family     string // canonical family (e.g., "debian")
	Version    string // distro version (e.g., "22.04")
}

// Distro contains Linux distribution information.
type Distro struct {
	ID      string
	Family  string
	Version string
}

// GetDistro returns distro information, or nil on non-Linux platforms and
// when distro detection failed.
func (i *Info) GetDistro() *Distro {
	if i.Key.OS != OSLinux || i.Platform == "" {
		return nil
	}
	return &Distro{
		ID:      i.Platform,
		Family:  i.Family,
		Version: i.Version,
	}
}

// Detector is the interface for platform detection.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}

// StaticDetector always reports the same platform.
type StaticDetector struct {
	Info Info
}

// NewStaticDetector returns a detector that reports key.
func NewStaticDetector(key Key) *StaticDetector {
	return &StaticDetector{Info: Info{
		Key:    key,
		GOOS:   key.OS.String(),
		GOARCH: key.Arch.String(),
	}}
}

// Detect returns a copy of the configured info.
func (s *StaticDetector) Detect(ctx context.Context) (*Info, error) {
	info := s.Info
	return &info, nil
}
