// Package version exposes the build version of contractmask.
//
// An -ldflags override wins over the VCS revision recorded in
// debug.BuildInfo; without either the commit is "dev".
//
//	version.GitCommit  // "a3f8c2d1" or "dev"
//	version.Full()     // "contractmask/a3f8c2d1"
package version

import "runtime/debug"

// AppName prefixes version strings and the tagger User-Agent.
const AppName = "contractmask"

// gitCommitOverride is set with
// -ldflags "-X github.com/codeready-toolchain/contractmask/pkg/version.gitCommitOverride=<sha>".
var gitCommitOverride string

// GitCommit is the short (8 character) commit of the running binary.
var GitCommit = resolveCommit(gitCommitOverride, readBuildInfo)

func readBuildInfo() (*debug.BuildInfo, bool) {
	return debug.ReadBuildInfo()
}

func resolveCommit(override string, info func() (*debug.BuildInfo, bool)) string {
	if override != "" {
		return shortCommit(override)
	}
	bi, ok := info()
	if !ok {
		return "dev"
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			return shortCommit(s.Value)
		}
	}
	return "dev"
}

func shortCommit(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}

// Full returns "contractmask/<commit>".
func Full() string {
	return AppName + "/" + GitCommit
}
