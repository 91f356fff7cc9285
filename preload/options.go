package preload

// FinishedFunc receives the outcome of a batch once every image has settled.
// results maps each resolved path to whether it loaded.
type FinishedFunc func(results map[string]bool, loaded, failed int)

// ErrorFunc is called once for every image that fails to load.
type ErrorFunc func(path string, err error)

// Options configures a single Preload call. Zero fields are absent.
type Options struct {
	// BaseURL is prefixed to every resolved path. A trailing slash is
	// appended when missing. Empty means derive from the Preloader's location.
	BaseURL string
	// Finished is invoked exactly once per Preload call.
	Finished FinishedFunc
	// Error is invoked for each failed image before Finished.
	Error ErrorFunc
}

// NormalizeOptions turns a loosely typed configuration value into Options.
//
// Accepted shapes are Options, *Options, map[string]any and a zero-argument
// func returning one of those. A func is invoked once; anything else yields
// empty Options. Recognized map keys are base_url, finished and error; a key
// whose value has the wrong type is treated as unset. Unknown keys are ignored.
func NormalizeOptions(v any) Options {
	switch fn := v.(type) {
	case func() any:
		return normalizeValue(fn())
	case func() Options:
		return fn()
	case func() map[string]any:
		return normalizeValue(fn())
	}
	return normalizeValue(v)
}

func normalizeValue(v any) Options {
	switch o := v.(type) {
	case Options:
		return o
	case *Options:
		if o == nil {
			return Options{}
		}
		return *o
	case map[string]any:
		return optionsFromMap(o)
	default:
		return Options{}
	}
}

func optionsFromMap(m map[string]any) Options {
	var opts Options
	if s, ok := m["base_url"].(string); ok {
		opts.BaseURL = s
	}
	switch fn := m["finished"].(type) {
	case FinishedFunc:
		opts.Finished = fn
	case func(map[string]bool, int, int):
		opts.Finished = fn
	}
	switch fn := m["error"].(type) {
	case ErrorFunc:
		opts.Error = fn
	case func(string, error):
		opts.Error = fn
	}
	return opts
}
