package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweeply/sweep/internal/common"
)

func TestResolveDirs_KeepsExistingDropsMissing(t *testing.T) {
	good := t.TempDir()
	missing := filepath.Join(good, "does-not-exist")

	dirs, err := resolveDirs([]string{good, missing})
	require.NoError(t, err)
	assert.Equal(t, []string{good}, dirs)
}

func TestResolveDirs_NoneResolvableIsFatal(t *testing.T) {
	_, err := resolveDirs([]string{filepath.Join(t.TempDir(), "nope")})
	assert.ErrorIs(t, err, common.ErrNoScanDirs)
}
