package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morningstarxcdcode/dgc-platform/internal/repository"
)

func TestChainListener_FirstPollSetsWatermark(t *testing.T) {
	repo := repository.NewMemoryNFTRepo()
	listener := NewChainListener(repo, time.Second)

	require.NoError(t, listener.Poll(context.Background()))
	assert.Empty(t, listener.ProcessedEvents())

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestChainListener_IndexesNewBlock(t *testing.T) {
	repo := repository.NewMemoryNFTRepo()
	listener := NewChainListener(repo, time.Second)

	// Rewind the watermark so the current block looks freshly minted.
	listener.mu.Lock()
	listener.lastProcessed = latestBlockNumber() - 1
	listener.mu.Unlock()

	require.NoError(t, listener.Poll(context.Background()))

	events := listener.ProcessedEvents()
	require.Len(t, events, 1)
	event := events[0]
	assert.True(t, strings.HasPrefix(event.Creator, "0x"))
	assert.Len(t, event.Creator, 42)
	assert.True(t, strings.HasPrefix(event.MetadataCID, "Qm"))
	assert.Len(t, event.MetadataCID, 46)
	assert.Len(t, event.ProvenanceHash, 66)

	nft, err := repo.GetByTokenID(context.Background(), event.TokenID)
	require.NoError(t, err)
	assert.Equal(t, event.Creator, nft.CreatorAddress)
	assert.Equal(t, event.MetadataCID, nft.MetadataCID)
	assert.Contains(t, nft.Name, "Living Art #")

	// Nothing new: the same block is not processed twice.
	require.NoError(t, listener.Poll(context.Background()))
	assert.Len(t, listener.ProcessedEvents(), 1)
}
