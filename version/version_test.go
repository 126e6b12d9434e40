package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyBuildInfo(t *testing.T) {
	info := Info{CommitHash: "dev", BuildTime: "unknown", Version: "dev"}
	applyBuildInfo(&info, &debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2026-10-01T12:00:00Z"},
		},
	})
	assert.Equal(t, "v0.3.0", info.Version)
	assert.Equal(t, "0123456789abcdef", info.CommitHash)
	assert.Equal(t, "taxogen v0.3.0 (commit 0123456, built 2026-10-01T12:00:00Z)", info.String())
}

func TestApplyBuildInfoKeepsLdflags(t *testing.T) {
	info := Info{CommitHash: "feedface", BuildTime: "yesterday", Version: "dev"}
	applyBuildInfo(&info, &debug.BuildInfo{
		Main:     debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "0123456789abcdef"}},
	})
	assert.Equal(t, "feedface", info.CommitHash)
	assert.Equal(t, "taxogen dev (commit feedfac, built yesterday)", info.String())
}

func TestShort(t *testing.T) {
	assert.Equal(t, "abc", Info{CommitHash: "abc"}.Short())
}
