package deps

// Source provides direct-dependency lookups for the graph builder.
//
// Implementations must be deterministic: repeated lookups of the same
// package return the same list in the same order for the lifetime of one
// resolution.
type Source interface {
	// DirectDependencies returns pkg's declared direct dependencies in
	// declaration order, and ok=false when pkg is unknown to the source.
	// Unknown packages are valid lookups - the builder records them as
	// leaves, never as errors.
	DirectDependencies(pkg string) (deps []string, ok bool)
}

// Options configures graph building behavior.
type Options struct {
	Logger func(string, ...any) // Trace callback for traversal steps (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}
