package examiner

//nolint:gochecknoglobals // set via ldflags at build time.
var (
	// Version is the release version.
	Version = "dev"
	// Commit is the source revision.
	Commit = "none"
	// CompiledAt is the build timestamp.
	CompiledAt = "unknown"
)
