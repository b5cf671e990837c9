package version

import "fmt"

var (
	Version             string // Version should be updated by hand at each release. It must follow SemVer (https://semver.org)
	GitCommit, GitState string // GitCommit and GitState will be overwritten automatically by the build system
	BuildDate           string // BuildDate will be overwritten automatically by the build system
)

func ToDetailVersion() string {
	if GitState != "" {
		return fmt.Sprintf("version=%s git=%s(%s) build=%s", Version, GitCommit, GitState, BuildDate)
	}
	return fmt.Sprintf("version=%s git=%s build=%s", Version, GitCommit, BuildDate)
}
