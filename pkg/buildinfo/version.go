// Package buildinfo carries the release identity of a stackbar binary.
//
// Release builds stamp the values through the linker; a plain go build
// reports "dev". The same identity is shown by stackbar --version, sent
// as the Server header of stackbar serve, and returned by its /version
// route:
//
//	go build -ldflags "-X github.com/matzehuels/stackbar/pkg/buildinfo.Version=$(git describe --tags) \
//	    -X github.com/matzehuels/stackbar/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/stackbar/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/stackbar
package buildinfo

import "fmt"

// Linker-stamped release values.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is a snapshot of the stamped values.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Get returns the current build identity.
func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

// Dev reports whether the binary was built without release stamping.
func (i Info) Dev() bool { return i.Version == "dev" }

func (i Info) String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", i.Version, i.Commit, i.Date)
}

// Template is the cobra version template for the root command.
func Template() string {
	return Get().String() + "\n"
}

// UserAgent identifies stackbar in server headers.
func UserAgent() string {
	return "stackbar/" + Version
}
