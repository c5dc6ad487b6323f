package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetInfo(t *testing.T) {
	info := GetInfo()

	assert.Equal(t, Version, info.Version)
	assert.Equal(t, GitCommit, info.GitCommit)
	assert.Equal(t, BuildDate, info.BuildDate)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
}

func TestInfoString(t *testing.T) {
	info := Info{
		Version:   "v1.2.3",
		GitCommit: "abc1234",
		BuildDate: "2026-01-01",
		GoVersion: "go1.25.0",
		Platform:  "linux/amd64",
	}

	s := info.String()
	assert.Contains(t, s, "bundlegen:")
	assert.Contains(t, s, "Version:  v1.2.3")
	assert.Contains(t, s, "Build ID: 2026-01-01/abc1234")
	assert.Contains(t, s, "go1.25.0 (linux/amd64)")
}
