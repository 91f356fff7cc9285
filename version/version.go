package version

import (
	"fmt"
	"runtime"
)

// Set at link time via -ldflags "-X github.com/projecteru2/preload/version.REVISION=...".
var (
	NAME     = "preload"
	VERSION  = "0.1.1"
	REVISION = "HEAD"
	BUILTAT  = "now"
)

// String returns the multi-line build description printed by `preload version`.
func String() string {
	return fmt.Sprintf("%s\nVersion:        %s\nGit hash:       %s\nBuilt:          %s\nGolang version: %s\nOS/Arch:        %s/%s\n",
		NAME, VERSION, REVISION, BUILTAT, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
