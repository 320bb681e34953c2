package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageTag(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "dev"
	assert.Equal(t, "main", ImageTag())

	Version = "v0.3.0"
	assert.Equal(t, "0.3.0", ImageTag())
	assert.Contains(t, String(), "crossfreight v0.3.0")
}
