package version

import (
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
)

const versionDevel = "devel"

// version is set via ldflags at build time.
// falls back to debug.ReadBuildInfo for go install.
var version = versionDevel

var once sync.Once

func Get() string {
	once.Do(func() {
		if version != versionDevel {
			return
		}
		info, ok := debug.ReadBuildInfo()
		if !ok {
			return
		}
		if v := info.Main.Version; v != "" && v != "("+versionDevel+")" {
			version = strings.TrimPrefix(v, "v")
		}
	})
	return version
}

// Library identifies this library and the Go runtime in outbound user agents.
func Library() string {
	return "shop0 API Library v" + Get() + " | Go " + runtime.Version()
}
