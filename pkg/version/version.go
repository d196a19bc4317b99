package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version is the current application version.
// This is a var (not const) so it can be overridden at build time via:
//
//	go build -ldflags "-X github.com/vanderheijden86/kairo/pkg/version.Version=v1.2.3"
var Version = "v0.1.0"

// String returns the version with the VCS revision when the binary carries
// build info.
func String() string {
	s := Version
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, kv := range info.Settings {
			if kv.Key == "vcs.revision" && len(kv.Value) >= 7 {
				s += " (" + kv.Value[:7] + ")"
			}
		}
	}
	return fmt.Sprintf("kairo %s %s/%s", s, runtime.GOOS, runtime.GOARCH)
}
