package taxid

// Options controls the optional checks of ValidateINN.
type Options struct {
	// ValidateStructure enables the region code and index checks. Default true.
	ValidateStructure bool `json:"validateStructure"`
	// AllowForeignOrgs accepts the reserved foreign-organization prefix. Default true.
	AllowForeignOrgs bool `json:"allowForeignOrgs"`
	// StrictMode is accepted for compatibility and currently changes nothing.
	StrictMode bool `json:"strictMode"`
}

// Option configures a single validation call.
type Option func(*Options)

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		ValidateStructure: true,
		AllowForeignOrgs:  true,
		StrictMode:        false,
	}
}

func WithStructure(enabled bool) Option {
	return func(o *Options) { o.ValidateStructure = enabled }
}

func WithForeignOrgs(allowed bool) Option {
	return func(o *Options) { o.AllowForeignOrgs = allowed }
}

func WithStrictMode(strict bool) Option {
	return func(o *Options) { o.StrictMode = strict }
}

// WithOptions replaces all options at once.
func WithOptions(opts Options) Option {
	return func(o *Options) { *o = opts }
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
