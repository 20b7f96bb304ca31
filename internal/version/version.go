package version

import (
	"fmt"
	"runtime/debug"
)

// Se pueden fijar con -ldflags "-X github.com/soyunomas/fileorg/internal/version.Version=v1.0.0"
var (
	Version = "dev"
	Commit  = "unknown"
)

// Get devuelve la versión, prefiriendo la de compilación.
func Get() string {
	if Version != "dev" && Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			return info.Main.Version
		}
	}
	return "development"
}

// Full añade el commit corto cuando se conoce.
func Full() string {
	commit := Commit
	if commit == "unknown" || commit == "" {
		if info, ok := debug.ReadBuildInfo(); ok {
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" {
					commit = s.Value
				}
			}
		}
	}
	if len(commit) > 7 {
		return fmt.Sprintf("%s (%s)", Get(), commit[:7])
	}
	return Get()
}
