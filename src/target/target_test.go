package target

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewClassifiesAgainstList(t *testing.T) {
	list := NewTargetList("aarch64-unknown-linux-gnu")

	builtin := New("aarch64-unknown-linux-gnu", list)
	assert.True(t, builtin.IsBuiltIn())
	assert.Equal(t, "aarch64-unknown-linux-gnu", builtin.String())

	custom := New("my-board-none-elf", list)
	assert.False(t, custom.IsBuiltIn())
	assert.Equal(t, Custom, custom.Kind())
}

func TestEqualIgnoresKind(t *testing.T) {
	a := New("aarch64-unknown-linux-gnu", DefaultTargetList())
	b := NewCustom("aarch64-unknown-linux-gnu")
	assert.True(t, a.Equal(b))
	assert.NotEqual(t, a.Kind(), b.Kind())
}

func TestEnvKey(t *testing.T) {
	tg := NewCustom("armv7-unknown-linux-gnueabihf")
	assert.Equal(t, "ARMV7_UNKNOWN_LINUX_GNUEABIHF", tg.EnvKey())
}

func TestDebArch(t *testing.T) {
	tests := []struct {
		triple string
		want   string
		ok     bool
	}{
		{"aarch64-unknown-linux-gnu", "arm64", true},
		{"x86_64-unknown-linux-musl", "amd64", true},
		{"armv7-unknown-linux-gnueabihf", "armhf", true},
		{"arm-unknown-linux-gnueabi", "armel", true},
		{"i686-unknown-linux-gnu", "i386", true},
		{"powerpc64le-unknown-linux-gnu", "ppc64el", true},
		{"thumbv7em-none-eabihf", "", false},
		{"wasm32-unknown-emscripten", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.triple, func(t *testing.T) {
			got, ok := NewCustom(tt.triple).DebArch()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultTargetList(t *testing.T) {
	list := DefaultTargetList()
	assert.Equal(t, len(DefaultTriples()), list.Len())
	assert.True(t, list.Contains("x86_64-unknown-linux-gnu"))
	assert.False(t, list.Contains("x86_64-unknown-linux-gnux32"))
}

func TestHostTriple(t *testing.T) {
	got, ok := hostTriple("linux", "arm64")
	assert.True(t, ok)
	assert.Equal(t, "aarch64-unknown-linux-gnu", got)

	_, ok = hostTriple("plan9", "mips")
	assert.False(t, ok)
}
