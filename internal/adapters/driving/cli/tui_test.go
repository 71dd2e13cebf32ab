package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewCmd_Exists(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Use == "review" {
			found = true
			break
		}
	}
	assert.True(t, found, "review command should be registered")
}

func TestReviewCmd_Short(t *testing.T) {
	assert.Equal(t, "Review items interactively", reviewCmd.Short)
}

func TestReviewCmd_HelpOutput(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"review", "--help"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "terminal UI")
	assert.Contains(t, buf.String(), "commit the cart")
}
