package version

var (
	// GitCommit is the current HEAD set using ldflags.
	GitCommit string

	// Version is the built software version.
	Version = WindvaneSemVer
)

func init() {
	if GitCommit != "" {
		Version += "-" + GitCommit
	}
}

// WindvaneSemVer is the current version of the windvane client.
// It's the Semantic Version of the software.
const WindvaneSemVer = "0.1.0"
