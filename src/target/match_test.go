package target

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcher(t *testing.T) {
	list := NewTargetList(
		"aarch64-unknown-linux-gnu",
		"aarch64-unknown-linux-musl",
		"x86_64-unknown-linux-gnu",
		"x86_64-unknown-linux-musl",
	)

	tests := []struct {
		name     string
		patterns []string
		want     []string
	}{
		{"include", []string{"^aarch64-"}, []string{"aarch64-unknown-linux-gnu", "aarch64-unknown-linux-musl"}},
		{"exclude only", []string{"!musl$"}, []string{"aarch64-unknown-linux-gnu", "x86_64-unknown-linux-gnu"}},
		{"exclude wins", []string{"^x86_64-", "!musl"}, []string{"x86_64-unknown-linux-gnu"}},
		{"no patterns", nil, []string{
			"aarch64-unknown-linux-gnu", "aarch64-unknown-linux-musl",
			"x86_64-unknown-linux-gnu", "x86_64-unknown-linux-musl",
		}},
		{"no match", []string{"^riscv"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := CompileMatcher(tt.patterns)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Select(list))
		})
	}
}

func TestCompileMatcherInvalid(t *testing.T) {
	_, err := CompileMatcher([]string{"(unclosed"})
	assert.Error(t, err)
}
