package cli

import (
	"fmt"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/calcifer/internal/errors"
)

func TestIsValidOutputFormat(t *testing.T) {
	assert.True(t, IsValidOutputFormat(OutputText))
	assert.True(t, IsValidOutputFormat(OutputJSON))
	assert.False(t, IsValidOutputFormat("yaml"))
	assert.False(t, IsValidOutputFormat(""))
}

func TestAddGlobalFlagsDefaults(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	flags := &GlobalFlags{}
	AddGlobalFlags(cmd, flags)

	require.NoError(t, cmd.ParseFlags([]string{}))
	assert.Equal(t, OutputText, flags.Output)
	assert.False(t, flags.Verbose)
	assert.False(t, flags.Quiet)
}

func TestAddGlobalFlagsParsing(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	flags := &GlobalFlags{}
	AddGlobalFlags(cmd, flags)

	require.NoError(t, cmd.ParseFlags([]string{"-o", "json", "-v"}))
	assert.Equal(t, OutputJSON, flags.Output)
	assert.True(t, flags.Verbose)
}

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, ExitSuccess},
		{"generic error", fmt.Errorf("boom"), ExitError},
		{"invalid output format", errors.ErrInvalidOutputFormat, ExitInvalidInput},
		{"wrapped invalid output format", fmt.Errorf("check: %w", errors.ErrInvalidOutputFormat), ExitInvalidInput},
		{"empty value", fmt.Errorf("title is required: %w", errors.ErrEmptyValue), ExitInvalidInput},
		{"invalid category", fmt.Errorf("category %q: %w", "bogus", errors.ErrInvalidCategory), ExitInvalidInput},
		{"index out of range", errors.ErrIndexOutOfRange, ExitInvalidInput},
		{"unknown endpoint type", errors.ErrUnknownEndpointType, ExitInvalidInput},
		{"cobra unknown flag", fmt.Errorf("unknown flag: --bogus"), ExitInvalidInput},
		{"cobra mutually exclusive", fmt.Errorf("if any flags in the group [verbose quiet] are set none of the others can be"), ExitInvalidInput},
		{"store failure", errors.ErrStoreOperation, ExitError},
		{"merge failure", errors.ErrMergeFailed, ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExitCodeForError(tt.err))
		})
	}
}
