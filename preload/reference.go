package preload

import (
	"context"
	"fmt"
	"slices"

	"github.com/projecteru2/core/log"
)

// Reference describes one or more image paths.
// It is implemented by Literal, Sequence and Generator only.
type Reference interface {
	resolve(ctx context.Context, resolved []string) []string
}

// Literal is a single image path.
type Literal string

// Sequence is an ordered list of image paths.
type Sequence []string

// Generator derives an image path from the paths resolved before it.
// It receives a copy of those paths. Returning "" adds nothing; returning an
// error or panicking skips the generator without affecting other references.
type Generator func(resolved []string) (string, error)

func (l Literal) resolve(_ context.Context, resolved []string) []string {
	return append(resolved, string(l))
}

func (s Sequence) resolve(_ context.Context, resolved []string) []string {
	return append(resolved, s...)
}

func (g Generator) resolve(ctx context.Context, resolved []string) []string {
	path, err := g.call(slices.Clone(resolved))
	if err != nil {
		log.WithFunc("preload.Resolve").Errorf(ctx, err, "cannot resolve image generator")
		return resolved
	}
	if path == "" {
		return resolved
	}
	return append(resolved, path)
}

func (g Generator) call(resolved []string) (path string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrGeneratorPanic, r)
		}
	}()
	return g(resolved)
}

// Resolve flattens refs, in order, into a single list of paths.
func Resolve(ctx context.Context, refs ...Reference) []string {
	logger := log.WithFunc("preload.Resolve")
	var resolved []string
	for i, ref := range refs {
		if ref == nil {
			logger.Warnf(ctx, "cannot use argument [%d] as image path: <nil>", i)
			continue
		}
		resolved = ref.resolve(ctx, resolved)
	}
	return resolved
}

// ReferencesFrom converts loosely typed values into References.
//
// Strings become Literals, string slices (including []any holding strings)
// become Sequences, and funcs of the shapes func([]string) string or
// func([]string) (string, error) become Generators. Any other value is
// logged and skipped.
func ReferencesFrom(ctx context.Context, vals ...any) []Reference {
	logger := log.WithFunc("preload.ReferencesFrom")
	refs := make([]Reference, 0, len(vals))
	for i, v := range vals {
		switch ref := v.(type) {
		case Reference:
			refs = append(refs, ref)
		case string:
			refs = append(refs, Literal(ref))
		case []string:
			refs = append(refs, Sequence(ref))
		case []any:
			seq := make(Sequence, 0, len(ref))
			for j, elem := range ref {
				s, ok := elem.(string)
				if !ok {
					logger.Warnf(ctx, "cannot use argument [%d][%d] as image path: %v", i, j, elem)
					continue
				}
				seq = append(seq, s)
			}
			refs = append(refs, seq)
		case func([]string) (string, error):
			refs = append(refs, Generator(ref))
		case func([]string) string:
			refs = append(refs, Generator(func(resolved []string) (string, error) {
				return ref(resolved), nil
			}))
		default:
			logger.Warnf(ctx, "cannot use argument [%d] as image path: %v", i, v)
		}
	}
	return refs
}
