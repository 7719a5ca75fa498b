package queries_test

import (
	"testing"

	"optiroute/internal/core/application/usecases/queries"
	"optiroute/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetJobQuery_Valid(t *testing.T) {
	id := kernel.NewUUID()

	query, err := queries.NewGetJobQuery(id)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, id.IsEqual(query.JobID()))
}

func TestNewGetJobQuery_InvalidID(t *testing.T) {
	_, err := queries.NewGetJobQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestGetJobQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetJobQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetJobQueryIsNotConstructed)
}
