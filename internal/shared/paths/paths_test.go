package paths

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDirs struct {
	resource    string
	appData     string
	resourceErr error
	appDataErr  error
}

func (s stubDirs) ResourceDir() (string, error) { return s.resource, s.resourceErr }
func (s stubDirs) AppDataDir() (string, error)  { return s.appData, s.appDataErr }

func TestDerive(t *testing.T) {
	root := t.TempDir()
	resource := filepath.Join(root, "Resources")
	data := filepath.Join(root, "data")

	r, err := Derive(resource, data)
	require.NoError(t, err)

	assert.Equal(t, resource, r.ResourceDir)
	assert.Equal(t, data, r.AppDataDir)
	assert.Equal(t, filepath.Join(data, "storage"), r.StorageDir)
	assert.Equal(t, filepath.Join(data, "memory"), r.MemoryDir)
	assert.Equal(t, filepath.Join(data, "pro-chat.db"), r.DatabaseFile)
	assert.Equal(t, filepath.Join(resource, "api"), r.APIDir())
	assert.Equal(t, filepath.Join(resource, "node_modules"), r.NodeModulesDir())
	assert.NoError(t, r.Validate())

	// Derive is pure
	_, statErr := os.Stat(data)
	assert.True(t, os.IsNotExist(statErr))
}

func TestDeriveMakesRelativePathsAbsolute(t *testing.T) {
	r, err := Derive("res", "data")
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(r.ResourceDir))
	assert.True(t, filepath.IsAbs(r.AppDataDir))
	assert.NoError(t, r.Validate())
}

func TestResolveCreatesWritableDirectories(t *testing.T) {
	root := t.TempDir()
	resource := filepath.Join(root, "Resources")
	data := filepath.Join(root, "nested", "data")

	r, err := Resolve(stubDirs{resource: resource, appData: data})
	require.NoError(t, err)

	for _, dir := range []string{r.AppDataDir, r.StorageDir, r.MemoryDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir(), dir)
	}

	// Resource dir is never created
	_, err = os.Stat(resource)
	assert.True(t, os.IsNotExist(err))

	// Database file is left to the worker
	_, err = os.Stat(r.DatabaseFile)
	assert.True(t, os.IsNotExist(err))
}

func TestEnsureDirectoriesIdempotent(t *testing.T) {
	root := t.TempDir()
	r, err := Derive(filepath.Join(root, "res"), filepath.Join(root, "data"))
	require.NoError(t, err)

	require.NoError(t, r.EnsureDirectories())
	before, err := os.ReadDir(r.AppDataDir)
	require.NoError(t, err)

	require.NoError(t, r.EnsureDirectories())
	after, err := os.ReadDir(r.AppDataDir)
	require.NoError(t, err)

	assert.Len(t, after, len(before))
	assert.Len(t, after, 2)
}

func TestResolveHostErrors(t *testing.T) {
	noHome := errors.New("no home directory")

	tests := []struct {
		name    string
		dirs    stubDirs
		wantDir string
	}{
		{
			name:    "resource dir unavailable",
			dirs:    stubDirs{resourceErr: noHome, appData: t.TempDir()},
			wantDir: "resource",
		},
		{
			name:    "app data dir unavailable",
			dirs:    stubDirs{resource: t.TempDir(), appDataErr: noHome},
			wantDir: "app data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.dirs)
			require.Error(t, err)

			var resErr *ResolutionError
			require.ErrorAs(t, err, &resErr)
			assert.Equal(t, tt.wantDir, resErr.Dir)
			assert.ErrorIs(t, err, noHome)
		})
	}
}

func TestEnsureDirectoriesReportsIOError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file-as-parent layout behaves differently on windows")
	}

	root := t.TempDir()
	blocker := filepath.Join(root, "data")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0o644))

	_, err := Resolve(stubDirs{resource: filepath.Join(root, "res"), appData: blocker})
	require.Error(t, err)

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, blocker, ioErr.Path)
	assert.Contains(t, err.Error(), blocker)
}

func TestValidate(t *testing.T) {
	r := &Resolved{ResourceDir: "/res", AppDataDir: "/data", StorageDir: "/data/storage", MemoryDir: "/data/memory"}
	assert.Error(t, r.Validate())

	r.DatabaseFile = "relative.db"
	assert.Error(t, r.Validate())

	r.DatabaseFile = "/data/pro-chat.db"
	if runtime.GOOS != "windows" {
		assert.NoError(t, r.Validate())
	}
}
