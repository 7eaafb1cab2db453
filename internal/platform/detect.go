package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// RealDetector implements Detector for the running process.
type RealDetector struct {
	goos   string
	goarch string
}

// NewDetector creates a detector for the running process.
func NewDetector() Detector {
	return &RealDetector{goos: runtime.GOOS, goarch: runtime.GOARCH}
}

// Detect derives the platform Key from runtime.GOOS and runtime.GOARCH, so the
// provisioned server matches the architecture this process runs under.
//
// gopsutil supplies the kernel machine architecture and, on Linux, the
// distribution. Both are informational: if gopsutil fails the Info is
// returned without them, unless ctx was cancelled.
func (d *RealDetector) Detect(ctx context.Context) (*Info, error) {
	o, err := ParseOS(d.goos)
	if err != nil {
		return nil, fmt.Errorf("platform detection failed: %w", err)
	}
	a, err := ParseArch(d.goarch)
	if err != nil {
		return nil, fmt.Errorf("platform detection failed: %w", err)
	}

	info := &Info{
		Key:    Key{OS: o, Arch: a},
		GOOS:   d.goos,
		GOARCH: d.goarch,
	}

	if kernelArch, err := host.KernelArch(); err == nil {
		info.KernelArch = kernelArch
	}

	if o != OSLinux {
		return info, nil
	}

	platform, family, version, err := host.PlatformInformationWithContext(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("platform detection cancelled: %w", ctx.Err())
		}
		return info, nil
	}

	if platform = normalizePlatform(platform); platform != "" {
		info.Platform = platform
		info.Family = mapFamily(family)
		info.Version = normalizePlatform(version)
	}

	return info, nil
}
