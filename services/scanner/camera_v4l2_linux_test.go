//go:build linux

package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeviceLabel(t *testing.T) {

	t.Run("Label from sysfs", func(t *testing.T) {
		// setup
		root := t.TempDir()

		// given
		require.NoError(t, os.MkdirAll(filepath.Join(root, "video2"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(root, "video2", "name"), []byte("USB Back Camera\n"), 0o644))

		// when
		label := deviceLabel(root, "video2")

		// then
		assert.Equal(t, "USB Back Camera", label)
	})

	t.Run("Falls back to node name", func(t *testing.T) {
		// when
		label := deviceLabel(t.TempDir(), "video0")

		// then
		assert.Equal(t, "video0", label)
	})
}
