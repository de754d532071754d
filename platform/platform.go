package platform

import (
	"runtime"
	"strings"

	"github.com/wippyai/turnkey/errors"
)

// OperatingSystem is a supported operating system.
// The zero value is not a valid operating system.
type OperatingSystem uint8

const (
	MacOS OperatingSystem = iota + 1
	Linux
	Windows
)

// CPUArchitecture is a supported CPU architecture.
// The zero value is not a valid architecture.
type CPUArchitecture uint8

const (
	X86     CPUArchitecture = iota + 1 // Intel/AMD 32 bit
	AMD64                              // Intel/AMD 64 bit
	AArch64                            // ARMv8 64 bit
)

// Platform is a fully identified (OS, CPU) pair.
type Platform struct {
	OS  OperatingSystem
	CPU CPUArchitecture
}

// host report seams; tests replace them to simulate other hosts
var (
	hostOSReport  = func() string { return osReport(runtime.GOOS) }
	hostCPUReport = func() string { return cpuReport(runtime.GOARCH) }
)

// osReport translates a runtime.GOOS value into the report string ParseOS
// classifies. Unknown values pass through and fail classification.
func osReport(goos string) string {
	switch goos {
	case "darwin":
		return "Mac OS X"
	case "linux":
		return "Linux"
	case "windows":
		return "Windows"
	}
	return goos
}

// cpuReport translates a runtime.GOARCH value into the report string ParseCPU
// classifies.
func cpuReport(goarch string) string {
	switch goarch {
	case "386":
		return "x86"
	case "arm64":
		return "aarch64"
	}
	return goarch
}

// Token returns the directory name used for the OS's libraries.
func (o OperatingSystem) Token() string {
	switch o {
	case MacOS:
		return "osx"
	case Linux:
		return "linux"
	case Windows:
		return "windows"
	}
	return ""
}

// Valid reports whether o is one of the supported operating systems.
func (o OperatingSystem) Valid() bool {
	return o.Token() != ""
}

func (o OperatingSystem) String() string {
	switch o {
	case MacOS:
		return "macOS"
	case Linux:
		return "Linux"
	case Windows:
		return "Windows"
	}
	return "invalid"
}

// Token returns the directory name used for the architecture's libraries.
func (cpu CPUArchitecture) Token() string {
	switch cpu {
	case X86:
		return "x86"
	case AMD64:
		return "amd64"
	case AArch64:
		return "aarch64"
	}
	return ""
}

// Valid reports whether cpu is one of the supported architectures.
func (cpu CPUArchitecture) Valid() bool {
	return cpu.Token() != ""
}

func (cpu CPUArchitecture) String() string {
	if t := cpu.Token(); t != "" {
		return t
	}
	return "invalid"
}

// String renders the platform as "<os-token>/<cpu-token>".
func (p Platform) String() string {
	return p.OS.Token() + "/" + p.CPU.Token()
}

// Valid reports whether both components are supported values.
func (p Platform) Valid() bool {
	return p.OS.Valid() && p.CPU.Valid()
}

// ParseOS classifies an operating system report string.
//
// "Mac OS X" is macOS, "Linux" is Linux and anything starting with "Windows"
// (the version suffix is ignored) is Windows. Everything else is an
// unsupported platform.
func ParseOS(report string) (OperatingSystem, error) {
	switch {
	case report == "Mac OS X":
		return MacOS, nil
	case report == "Linux":
		return Linux, nil
	case strings.HasPrefix(report, "Windows"):
		return Windows, nil
	}
	return 0, errors.UnsupportedReport("operating system", report)
}

// ParseCPU classifies a CPU architecture report string.
//
// "x86" and "i386" (the Linux spelling) are X86, "aarch64" is AArch64, and
// "amd64" and "x86_64" (the macOS spelling) are AMD64. Everything else is an
// unsupported platform.
func ParseCPU(report string) (CPUArchitecture, error) {
	switch report {
	case "x86", "i386":
		return X86, nil
	case "aarch64":
		return AArch64, nil
	case "amd64", "x86_64":
		return AMD64, nil
	}
	return 0, errors.UnsupportedReport("CPU architecture", report)
}

// IdentifyOS returns the operating system the process runs on.
func IdentifyOS() (OperatingSystem, error) {
	return ParseOS(hostOSReport())
}

// IdentifyCPU returns the CPU architecture the process was built for.
// For a 32-bit binary on a 64-bit CPU this is the 32-bit architecture:
// libraries must match the caller's pointer width, not the silicon.
func IdentifyCPU() (CPUArchitecture, error) {
	return ParseCPU(hostCPUReport())
}

// Identify returns the current host platform.
func Identify() (Platform, error) {
	o, err := IdentifyOS()
	if err != nil {
		return Platform{}, err
	}
	cpu, err := IdentifyCPU()
	if err != nil {
		return Platform{}, err
	}
	return Platform{OS: o, CPU: cpu}, nil
}
