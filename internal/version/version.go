package version

// Version is the signal engine version recorded in stats.yaml and checked against
// the version field of run configs. It is set at build time with
// -ldflags "-X github.com/rxtech-lab/argo-signal/internal/version.Version=1.2.3".
// "main" marks a development build.
var Version = "v1.0.0"

func GetVersion() string {
	return Version
}
