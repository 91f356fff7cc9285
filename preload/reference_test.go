package preload

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name     string
		refs     []Reference
		expected []string
	}{
		{
			name:     "literal and sequence",
			refs:     []Reference{Literal("x.png"), Sequence{"y.png", "z.png"}},
			expected: []string{"x.png", "y.png", "z.png"},
		},
		{
			name: "generator sees accumulated paths",
			refs: []Reference{
				Sequence{"a.png", "b.png"},
				Generator(func(resolved []string) (string, error) {
					return "count-" + string(rune('0'+len(resolved))) + ".png", nil
				}),
			},
			expected: []string{"a.png", "b.png", "count-2.png"},
		},
		{
			name: "generator returning nothing",
			refs: []Reference{
				Literal("a.png"),
				Generator(func([]string) (string, error) { return "", nil }),
			},
			expected: []string{"a.png"},
		},
		{
			name: "failing generator is skipped",
			refs: []Reference{
				Literal("a.png"),
				Generator(func([]string) (string, error) { return "", errors.New("boom") }),
				Literal("b.png"),
			},
			expected: []string{"a.png", "b.png"},
		},
		{
			name: "panicking generator is skipped",
			refs: []Reference{
				Generator(func([]string) (string, error) { panic("kaboom") }),
				Literal("b.png"),
			},
			expected: []string{"b.png"},
		},
		{
			name:     "nil generator is skipped",
			refs:     []Reference{Generator(nil), Literal("c.png")},
			expected: []string{"c.png"},
		},
		{
			name:     "nil reference is skipped",
			refs:     []Reference{nil, Literal("c.png")},
			expected: []string{"c.png"},
		},
		{
			name:     "duplicates preserved",
			refs:     []Reference{Literal("a.png"), Sequence{"a.png"}},
			expected: []string{"a.png", "a.png"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Resolve(ctx, tc.refs...))
		})
	}
}

func TestGeneratorCannotMutateResolved(t *testing.T) {
	got := Resolve(context.Background(),
		Sequence{"a.png"},
		Generator(func(resolved []string) (string, error) {
			resolved[0] = "mutated.png"
			return "", nil
		}),
	)
	assert.Equal(t, []string{"a.png"}, got)
}

func TestReferencesFrom(t *testing.T) {
	ctx := context.Background()
	refs := ReferencesFrom(ctx,
		"x.png",
		[]string{"y.png"},
		[]any{"z.png", 3, "w.png"},
		42,
		func(resolved []string) string { return "gen.png" },
		func([]string) (string, error) { return "", errors.New("nope") },
		Literal("lit.png"),
		map[string]any{"not": "a path"},
	)
	assert.Len(t, refs, 6)
	assert.Equal(t,
		[]string{"x.png", "y.png", "z.png", "w.png", "gen.png", "lit.png"},
		Resolve(ctx, refs...),
	)
}

func TestResolvedLengthProperty(t *testing.T) {
	ctx := context.Background()
	refs := []Reference{
		Literal("a"),
		Sequence{"b", "c", "d"},
		Generator(func([]string) (string, error) { return "e", nil }),
		Generator(func([]string) (string, error) { return "", nil }),
		Generator(func([]string) (string, error) { return "", errors.New("x") }),
		Sequence{},
		Literal("f"),
	}
	// 2 literals + 3 sequence elements + 1 generator that returned a path
	assert.Len(t, Resolve(ctx, refs...), 6)
}
