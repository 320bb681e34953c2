package target

import (
	"strings"
)

// Kind distinguishes triples the toolchain knows about from arbitrary user strings.
type Kind int

const (
	BuiltIn Kind = iota
	Custom
)

func (k Kind) String() string {
	if k == BuiltIn {
		return "built-in"
	}
	return "custom"
}

// Target names a compilation target triple.
//
// Two targets are the same target when their triples match; the kind only
// decides whether a default image exists for it. Configuration maps are
// therefore keyed by Triple(), never by the Target value itself.
type Target struct {
	triple string
	kind   Kind
}

// New classifies triple against the list of known triples.
func New(triple string, known TargetList) Target {
	kind := Custom
	if known.Contains(triple) {
		kind = BuiltIn
	}
	return Target{triple: triple, kind: kind}
}

// NewCustom returns a target that is never treated as built-in.
func NewCustom(triple string) Target {
	return Target{triple: triple, kind: Custom}
}

func (t Target) Triple() string { return t.triple }
func (t Target) Kind() Kind      { return t.kind }
func (t Target) IsBuiltIn() bool { return t.kind == BuiltIn }
func (t Target) String() string  { return t.triple }

// Equal reports whether both targets name the same triple.
func (t Target) Equal(other Target) bool {
	return t.triple == other.triple
}

// Arch returns the architecture component of the triple ("aarch64" for
// "aarch64-unknown-linux-gnu").
func (t Target) Arch() string {
	arch, _, _ := strings.Cut(t.triple, "-")
	return arch
}

// EnvKey renders the triple as an environment variable segment:
// "aarch64-unknown-linux-gnu" becomes "AARCH64_UNKNOWN_LINUX_GNU".
func (t Target) EnvKey() string {
	return strings.ToUpper(strings.ReplaceAll(t.triple, "-", "_"))
}

// TargetList is the set of triples recognized as built-in.
type TargetList struct {
	triples map[string]struct{}
}

// NewTargetList builds a list from the given triples.
func NewTargetList(triples ...string) TargetList {
	l := TargetList{triples: make(map[string]struct{}, len(triples))}
	for _, t := range triples {
		l.triples[t] = struct{}{}
	}
	return l
}

// Contains reports whether triple is a known triple.
func (l TargetList) Contains(triple string) bool {
	_, ok := l.triples[triple]
	return ok
}

// Len returns the number of known triples.
func (l TargetList) Len() int { return len(l.triples) }

// defaultTriples are the targets crossfreight publishes toolchain images for.
var defaultTriples = []string{
	"aarch64-linux-android",
	"aarch64-unknown-linux-gnu",
	"aarch64-unknown-linux-musl",
	"arm-linux-androideabi",
	"arm-unknown-linux-gnueabi",
	"arm-unknown-linux-gnueabihf",
	"arm-unknown-linux-musleabi",
	"arm-unknown-linux-musleabihf",
	"armv5te-unknown-linux-gnueabi",
	"armv5te-unknown-linux-musleabi",
	"armv7-linux-androideabi",
	"armv7-unknown-linux-gnueabi",
	"armv7-unknown-linux-gnueabihf",
	"armv7-unknown-linux-musleabi",
	"armv7-unknown-linux-musleabihf",
	"i586-unknown-linux-gnu",
	"i586-unknown-linux-musl",
	"i686-linux-android",
	"i686-pc-windows-gnu",
	"i686-unknown-freebsd",
	"i686-unknown-linux-gnu",
	"i686-unknown-linux-musl",
	"mips-unknown-linux-gnu",
	"mips-unknown-linux-musl",
	"mips64-unknown-linux-gnuabi64",
	"mips64el-unknown-linux-gnuabi64",
	"mipsel-unknown-linux-gnu",
	"mipsel-unknown-linux-musl",
	"powerpc-unknown-linux-gnu",
	"powerpc64-unknown-linux-gnu",
	"powerpc64le-unknown-linux-gnu",
	"riscv64gc-unknown-linux-gnu",
	"s390x-unknown-linux-gnu",
	"sparc64-unknown-linux-gnu",
	"sparcv9-sun-solaris",
	"thumbv6m-none-eabi",
	"thumbv7em-none-eabi",
	"thumbv7em-none-eabihf",
	"thumbv7m-none-eabi",
	"wasm32-unknown-emscripten",
	"x86_64-linux-android",
	"x86_64-pc-windows-gnu",
	"x86_64-unknown-freebsd",
	"x86_64-unknown-linux-gnu",
	"x86_64-unknown-linux-musl",
	"x86_64-unknown-netbsd",
}

// DefaultTargetList returns the triples crossfreight ships images for.
func DefaultTargetList() TargetList {
	return NewTargetList(defaultTriples...)
}

// DefaultTriples returns a copy of the built-in triples in sorted order.
func DefaultTriples() []string {
	out := make([]string, len(defaultTriples))
	copy(out, defaultTriples)
	return out
}
