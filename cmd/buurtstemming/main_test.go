package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRollCommand(t *testing.T) {
	root := newRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetArgs([]string{"roll"})

	require.NoError(t, root.Execute())
	require.Equal(t, "101, 103, 105, 107, 109, 111, 113, 115, 117, 119, 121, 123, 125, 127, 129, 131, 133\n", out.String())
}

func TestRollCommandRejectsArgs(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"roll", "extra"})

	require.Error(t, root.Execute())
}
