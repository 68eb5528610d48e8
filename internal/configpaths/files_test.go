package configpaths

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix layout")
	}
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	dir, err := DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/xdg", "routegen"), dir)

	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/u")
	dir, err = DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/u", ".config", "routegen"), dir)

	path, err := DefaultNamedConfigPath("watch", "yml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/u", ".config", "routegen", "watch.yaml"), path)
}

func TestConfigCandidatePathsRoutesUserPath(t *testing.T) {
	tests := []struct {
		user             string
		json, yaml, toml bool
	}{
		{user: "a.json", json: true},
		{user: "a.yml", yaml: true},
		{user: "a.yaml", yaml: true},
		{user: "a.toml", toml: true},
		{user: "a.conf", json: true},
	}
	for _, tt := range tests {
		t.Run(tt.user, func(t *testing.T) {
			j, y, to := ConfigCandidatePaths(tt.user)
			assert.Equal(t, tt.json, j[0] == tt.user)
			assert.Equal(t, tt.yaml, y[0] == tt.user)
			assert.Equal(t, tt.toml, to[0] == tt.user)
		})
	}

	j, _, _ := ConfigCandidatePaths("")
	assert.Equal(t, "routegen.json", filepath.Base(j[0]))
	if runtime.GOOS != "windows" {
		assert.Equal(t, filepath.Join("/etc/routegen", "config.json"), j[len(j)-1])
	}
}
