package index

import "github.com/sciops/mzml/internal/options"

type buildConfig struct {
	forceRebuild bool
}

// BuildOption configures Build.
type BuildOption = options.Option[*buildConfig]

// WithForceRebuild skips the fast path entirely and always scans the whole
// file, even when a parsable embedded index is present.
func WithForceRebuild() BuildOption {
	return options.NoError(func(c *buildConfig) { c.forceRebuild = true })
}
