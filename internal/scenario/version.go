package scenario

import (
	"strings"

	"golang.org/x/mod/semver"
)

const (
	// ReleaseVersion is written into every exported file.
	ReleaseVersion = "2.9.1"
	// SchemaVersion tracks minor document changes within a release.
	SchemaVersion = 2
)

// IsCompatibleVersion reports whether a file written by the stored release
// can be loaded. Only a major version change is breaking. Files without a
// version predate versioning and are rejected.
func IsCompatibleVersion(stored string) bool {
	if stored == "" || strings.Count(stored, ".") != 2 {
		return false
	}

	v := "v" + stored
	if !semver.IsValid(v) {
		return false
	}

	return semver.Major(v) == semver.Major("v"+ReleaseVersion)
}
