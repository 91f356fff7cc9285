// Package preload warms a batch of images relative to a base URL.
//
// Callers describe images with References: a Literal path, a Sequence of
// paths, or a Generator that derives a path from those resolved so far.
// Preload flattens the references, loads every path concurrently and
// reports once each load has settled, either through the Finished callback
// in Options or through the returned Report.
//
//	report, err := preload.Preload(ctx,
//		map[string]any{"base_url": "https://cdn.example.com/img"},
//		"logo.png", []string{"a.png", "b.png"})
package preload
