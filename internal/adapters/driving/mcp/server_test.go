package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil item service returns error", func(t *testing.T) {
		ports := &Ports{Similarity: &mockSimilarityService{}}
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingItemService)
	})

	t.Run("nil similarity service returns error", func(t *testing.T) {
		ports := &Ports{Item: &mockItemService{}}
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingSimilarityService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		ports := &Ports{
			Item:       &mockItemService{},
			Similarity: &mockSimilarityService{},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("item and similarity are required", func(t *testing.T) {
		ports := &Ports{}
		assert.ErrorIs(t, ports.Validate(), ErrMissingItemService)
	})

	t.Run("review and generation are optional", func(t *testing.T) {
		ports := &Ports{
			Item:       &mockItemService{},
			Similarity: &mockSimilarityService{},
		}
		assert.NoError(t, ports.Validate())
	})

	t.Run("all ports is valid", func(t *testing.T) {
		ports := &Ports{
			Item:       &mockItemService{},
			Similarity: &mockSimilarityService{},
			Review:     &mockReviewService{},
			Generation: &mockGenerationService{},
		}
		assert.NoError(t, ports.Validate())
	})
}
