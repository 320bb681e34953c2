package target

import "runtime"

// hostTriples maps GOOS/GOARCH to the triple of a native build.
var hostTriples = map[string]string{
	"linux/amd64":   "x86_64-unknown-linux-gnu",
	"linux/386":     "i686-unknown-linux-gnu",
	"linux/arm64":   "aarch64-unknown-linux-gnu",
	"linux/arm":     "armv7-unknown-linux-gnueabihf",
	"linux/ppc64le": "powerpc64le-unknown-linux-gnu",
	"linux/riscv64": "riscv64gc-unknown-linux-gnu",
	"linux/s390x":   "s390x-unknown-linux-gnu",
	"darwin/amd64":  "x86_64-apple-darwin",
	"darwin/arm64":  "aarch64-apple-darwin",
	"windows/amd64": "x86_64-pc-windows-msvc",
	"windows/arm64": "aarch64-pc-windows-msvc",
	"freebsd/amd64": "x86_64-unknown-freebsd",
}

// HostTriple returns the triple of the machine running crossfreight.
func HostTriple() (string, bool) {
	return hostTriple(runtime.GOOS, runtime.GOARCH)
}

func hostTriple(goos, goarch string) (string, bool) {
	t, ok := hostTriples[goos+"/"+goarch]
	return t, ok
}
