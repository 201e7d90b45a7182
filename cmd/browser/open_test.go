package browser

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCmd(t *testing.T) {
	cmd, err := OpenCmd("/tmp/compass_export.md")
	switch runtime.GOOS {
	case "linux", "darwin", "windows", "freebsd", "openbsd":
		require.NoError(t, err)
		assert.Equal(t, "/tmp/compass_export.md", cmd.Args[len(cmd.Args)-1])
	default:
		assert.ErrorIs(t, err, ErrUnsupportedPlatform)
	}
}
