package path

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootPathContainsGoMod(t *testing.T) {
	_, err := os.Stat(filepath.Join(RootPath(), "go.mod"))
	assert.NoError(t, err)
}

func TestResolve(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "seed.yaml")
	assert.Equal(t, abs, Resolve(abs))
	assert.Empty(t, Resolve(""))

	// 測試的工作目錄是套件目錄，conf/ 只存在於專案根目錄
	resolved := Resolve("conf/seed.yaml")
	assert.Equal(t, filepath.Join(RootPath(), "conf", "seed.yaml"), resolved)
	_, err := os.Stat(resolved)
	require.NoError(t, err)

	assert.Equal(t, "path.go", Resolve("path.go"))
}
