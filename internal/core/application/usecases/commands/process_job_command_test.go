package commands_test

import (
	"testing"

	"optiroute/internal/core/application/usecases/commands"
	"optiroute/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProcessJobCommand(t *testing.T) {
	id := kernel.NewUUID()

	cmd, err := commands.NewProcessJobCommand(id)
	require.NoError(t, err)
	assert.NoError(t, cmd.Validate())
	assert.True(t, id.IsEqual(cmd.JobID()))
}

func TestNewProcessJobCommand_InvalidID(t *testing.T) {
	_, err := commands.NewProcessJobCommand(kernel.UUID{})
	require.Error(t, err)
}

func TestProcessJobCommand_Validate_NotConstructed(t *testing.T) {
	cmd := commands.ProcessJobCommand{}
	require.ErrorIs(t, cmd.Validate(), commands.ErrProcessJobCommandIsNotConstructed)
}
