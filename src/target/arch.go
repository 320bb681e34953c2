package target

import "strings"

// debArches maps triple architectures to Debian architecture names.
var debArches = map[string]string{
	"aarch64":     "arm64",
	"arm":         "armel",
	"armv5te":     "armel",
	"armv7":       "armel",
	"i586":        "i386",
	"i686":        "i386",
	"mips":        "mips",
	"mipsel":      "mipsel",
	"mips64":      "mips64",
	"mips64el":    "mips64el",
	"powerpc":     "powerpc",
	"powerpc64":   "ppc64",
	"powerpc64le": "ppc64el",
	"riscv64gc":   "riscv64",
	"s390x":       "s390x",
	"sparc64":     "sparc64",
	"x86_64":      "amd64",
}

// DebArch returns the Debian architecture the target's packages are built for.
// ok is false for architectures without a Debian port (bare-metal thumb, wasm).
func (t Target) DebArch() (arch string, ok bool) {
	a := t.Arch()
	deb, ok := debArches[a]
	if !ok {
		return "", false
	}
	// Hard-float ARM ABIs use the armhf port.
	if deb == "armel" && strings.HasSuffix(t.triple, "hf") {
		return "armhf", true
	}
	return deb, true
}
