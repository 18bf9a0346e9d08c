package logging

import (
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWritesToDataDir(t *testing.T) {
	dir := t.TempDir()
	c, err := Init("debug", "", dir)
	require.NoError(t, err)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	log.WithField("prefix", "test").Info("hello from the test")
	require.NoError(t, c.Close())

	b, err := os.ReadFile(filepath.Join(dir, DefaultFileName))
	require.NoError(t, err)
	assert.Contains(t, string(b), "hello from the test")
	assert.Equal(t, log.DebugLevel, log.GetLevel())
}

func TestInitBadLevelFallsBackToInfo(t *testing.T) {
	c, err := Init("loud", "-", "")
	require.NoError(t, err)
	assert.NoError(t, c.Close())
	assert.Equal(t, log.InfoLevel, log.GetLevel())
}
