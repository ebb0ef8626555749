package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/polarvid/rt-thread/internal/xerrors"
)

const nmFixture = `nm: output

Symbols from rtthread.elf:

Name                  Value           Class Type      Size             Line  Section

rt_thread_create     |00008010|      T    |FUNC|0000004c||.text
`

func TestExitCodeForConvention(t *testing.T) {
	require.Equal(t, 1, exitCodeFor(xerrors.ErrMissingInput))
	require.Equal(t, 2, exitCodeFor(xerrors.ErrMalformedInput))
	require.Equal(t, 0, exitCodeFor(nil))
}

func TestExitCodeForWrapsSentinels(t *testing.T) {
	wrapped := fmt.Errorf("open input: %w", xerrors.ErrMissingInput)
	require.Equal(t, 1, exitCodeFor(wrapped))
	require.Equal(t, 2, exitCodeFor(errors.New("boom")))
}

func TestRunCompileWritesBlobToFile(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "symbols.nm")
	require.NoError(t, os.WriteFile(inPath, []byte(nmFixture), 0o644))
	outPath := filepath.Join(dir, "out.c")

	root := newRootCmd()
	root.SetArgs([]string{"compile", "--out", outPath, inPath})
	require.NoError(t, root.Execute())

	out, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Contains(t, string(out), "0x20233202")
	require.Contains(t, string(out), "SYMBOL_CNT 1")
}

func TestRunCompileMissingInputExitsOne(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"compile", filepath.Join(t.TempDir(), "missing.nm")})
	err := root.Execute()
	require.Error(t, err)
	require.Equal(t, 1, exitCodeFor(err))
}
