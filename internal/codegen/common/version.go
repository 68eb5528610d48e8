package common

import (
	"fmt"
	"strings"
)

// Version is set via ldflags at build time: -ldflags "-X github.com/Alia5/routegen/internal/codegen/common.Version=x.y.z"
var Version = ""

// GetVersion returns the version string that was set at build time via ldflags.
// Returns "0.0.1-dev" if Version is empty (development builds only).
func GetVersion() (string, error) {
	if Version == "" {
		return "0.0.1-dev", nil
	}

	version := strings.TrimPrefix(Version, "v")
	baseVersion := strings.SplitN(version, "-", 2)[0]
	if !strings.Contains(baseVersion, ".") {
		return "", fmt.Errorf("invalid version format: %s (expected x.y.z)", Version)
	}

	return version, nil
}

// FileHeader returns the header written at the top of every generated Go
// file. The "DO NOT EDIT" line follows the go generate convention so tools
// recognise the file as generated.
func FileHeader() string {
	v, err := GetVersion()
	if err != nil {
		v = "unknown"
	}
	return "// Code generated by routegen " + v + ". DO NOT EDIT.\n"
}
