package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morningstarxcdcode/dgc-platform/internal/domain"
)

func TestContentStore_UploadRoundTrip(t *testing.T) {
	store := NewContentStore("http://localhost:8080/ipfs")

	cid, err := store.Upload([]byte("hello dgc"), true)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(cid, "Qm"), "CIDv0 starts with Qm, got %s", cid)

	content, err := store.Get(cid)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello dgc"), content)

	// Same bytes, same CID.
	again, err := store.Upload([]byte("hello dgc"), false)
	require.NoError(t, err)
	assert.Equal(t, cid, again)

	meta, err := store.Metadata(cid)
	require.NoError(t, err)
	assert.Equal(t, 9, meta.Size)
	assert.True(t, meta.Pinned)

	assert.True(t, store.Verify(cid))
	assert.Equal(t, "ipfs://"+cid, store.IPFSURL(cid))
	assert.Equal(t, "http://localhost:8080/ipfs/"+cid, store.GatewayURL(cid))
}

func TestContentStore_EmptyContent(t *testing.T) {
	store := NewContentStore("")
	_, err := store.Upload(nil, true)
	assert.ErrorIs(t, err, domain.ErrEmptyContent)
}

func TestContentStore_GetUnknown(t *testing.T) {
	store := NewContentStore("")
	_, err := store.Get("QmUnknown")
	assert.ErrorIs(t, err, domain.ErrContentNotFound)
	_, err = store.Metadata("QmUnknown")
	assert.ErrorIs(t, err, domain.ErrContentNotFound)
	assert.False(t, store.Verify("QmUnknown"))
}

func TestContentStore_PinLifecycle(t *testing.T) {
	store := NewContentStore("")

	cid, err := store.Upload([]byte("pin me"), false)
	require.NoError(t, err)
	assert.False(t, store.IsPinned(cid))

	require.NoError(t, store.Pin(cid))
	assert.True(t, store.IsPinned(cid))

	store.Unpin(cid)
	assert.False(t, store.IsPinned(cid))

	// Unpinning something never stored is not an error.
	store.Unpin("QmUnknown")
	assert.ErrorIs(t, store.Pin("QmUnknown"), domain.ErrContentNotFound)
}

func TestContentStore_UploadJSONDeterministic(t *testing.T) {
	store := NewContentStore("")

	doc := map[string]any{"name": "Living Art #1", "attributes": []string{"vivid"}}
	first, err := store.UploadJSON(doc, true)
	require.NoError(t, err)
	second, err := store.UploadJSON(doc, true)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSniffContentType(t *testing.T) {
	assert.Equal(t, "image/png", SniffContentType([]byte("DGC_IMAGE:42:cat:\x01\x02")))
	assert.Equal(t, "audio/wav", SniffContentType([]byte("DGC_MUSIC:42:song:\x01")))
	assert.Equal(t, "image/png", SniffContentType([]byte("\x89PNG\r\n\x1a\n")))
	assert.Equal(t, "image/jpeg", SniffContentType([]byte{0xff, 0xd8, 0xff, 0xe0}))
	assert.Equal(t, "application/json", SniffContentType([]byte(`{"a":1}`)))
	assert.Equal(t, "text/plain", SniffContentType([]byte("plain words")))
	assert.Equal(t, "application/octet-stream", SniffContentType([]byte{0xff, 0xfe, 0x00, 0x80}))
}
