// Package misc keeps build identification helpers used across the program.
package misc

import "runtime/debug"

const appName = "mdnovx"

// Overwritten by linker flags on release builds.
var (
	version = "development"
	gitHash = "unknown"
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	if version != "development" {
		return version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return version
}

func GetGitHash() string {
	if gitHash != "unknown" {
		return gitHash
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return gitHash
}
