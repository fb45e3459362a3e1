// Package version exposes vidscribe build information.
//
// Version, git commit, branch, and build time are set at compile time
// via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/vidscribe/version.Version=1.0.0" ./cmd/vidscribe
//
// Values missing from ldflags fall back to the VCS stamps the Go toolchain
// embeds in the binary.
package version
