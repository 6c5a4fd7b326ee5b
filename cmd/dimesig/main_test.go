package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestVerifyExitCodesSplitIOFromStructuralFailure locks down spec.md §6/§7's
// exit-code contract: a missing file is an I/O failure (2), a present but
// corrupt signet body is a structural failure (3) - the two must not both
// collapse onto the same code.
func TestVerifyExitCodesSplitIOFromStructuralFailure(t *testing.T) {
	dir := t.TempDir()

	missing := filepath.Join(dir, "does-not-exist.pem")
	assert.Equal(t, exitIOError, run([]string{"verify", "--in", missing}))

	corrupt := filepath.Join(dir, "corrupt.pem")
	require.NoError(t, os.WriteFile(corrupt, []byte("not a pem file at all"), 0o600))
	assert.Equal(t, exitStructFailure, run([]string{"verify", "--in", corrupt}))
}

func TestDumpExitCodesSplitIOFromStructuralFailure(t *testing.T) {
	dir := t.TempDir()

	missing := filepath.Join(dir, "does-not-exist.pem")
	assert.Equal(t, exitIOError, run([]string{"dump", "--in", missing}))

	corrupt := filepath.Join(dir, "corrupt.pem")
	require.NoError(t, os.WriteFile(corrupt, []byte("not a pem file at all"), 0o600))
	assert.Equal(t, exitStructFailure, run([]string{"dump", "--in", corrupt}))
}
