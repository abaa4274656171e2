package gntraits

var (
	// Version is the semantic version of the gntraits app.
	// It is set during the build process.
	Version = "v0.0.1"

	// Build is a timestamp of the build.
	// It is set during the build process.
	Build = "n/a"
)
