package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApproveCmd_Use(t *testing.T) {
	assert.Equal(t, "approve [id]", approveCmd.Use)
}

func TestApproveCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"approve"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestApproveCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"approve", "1"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Approved item 1")
}

func TestApproveCmd_NotFound(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"approve", "999"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRejectCmd_Use(t *testing.T) {
	assert.Equal(t, "reject [id]", rejectCmd.Use)
}

func TestRejectCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"reject", "2"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Rejected item 2")
}

func TestCartCmd_Use(t *testing.T) {
	assert.Equal(t, "cart", cartCmd.Use)
}

func TestCartCmd_EmptyCart(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"cart"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Cart is empty")
}

func TestCartCmd_ListsApprovedItems(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"approve", "1"})
	assert.NoError(t, rootCmd.Execute())

	buf.Reset()
	rootCmd.SetArgs([]string{"cart"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "#1")
	assert.Contains(t, buf.String(), "1 item(s) ready to commit")
}

func TestCommitCmd_Use(t *testing.T) {
	assert.Equal(t, "commit", commitCmd.Use)
}

func TestCommitCmd_EmptyCart(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"commit"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no approved items")
}

func TestCommitCmd_CommitsApprovedItems(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"approve", "1"})
	assert.NoError(t, rootCmd.Execute())
	rootCmd.SetArgs([]string{"approve", "2"})
	assert.NoError(t, rootCmd.Execute())

	buf.Reset()
	rootCmd.SetArgs([]string{"commit"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Committed 2 item(s)")
	assert.Contains(t, buf.String(), "batch-test")
}
