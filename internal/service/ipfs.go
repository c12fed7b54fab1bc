package service

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/mr-tron/base58"
	log "github.com/sirupsen/logrus"

	"github.com/morningstarxcdcode/dgc-platform/internal/domain"
)

// ContentMeta describes one stored blob.
type ContentMeta struct {
	Size       int       `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
	Pinned     bool      `json:"pinned"`
}

// ContentStore is an in-memory content-addressed store with the same
// addressing scheme as an IPFS node: CIDv0, the base58 encoding of a
// sha2-256 multihash. Content survives for the process lifetime only.
type ContentStore struct {
	mu         sync.RWMutex
	blobs      map[string][]byte
	meta       map[string]*ContentMeta
	gatewayURL string
}

func NewContentStore(gatewayURL string) *ContentStore {
	return &ContentStore{
		blobs:      make(map[string][]byte),
		meta:       make(map[string]*ContentMeta),
		gatewayURL: gatewayURL,
	}
}

// CIDv0 multihash prefix: sha2-256 function code, 32-byte digest length.
var cidPrefix = []byte{0x12, 0x20}

func computeCID(content []byte) string {
	digest := sha256.Sum256(content)
	return base58.Encode(append(append([]byte{}, cidPrefix...), digest[:]...))
}

// Upload stores content and returns its CID. Re-uploading identical bytes
// yields the same CID and does not duplicate the blob.
func (s *ContentStore) Upload(content []byte, pin bool) (string, error) {
	if len(content) == 0 {
		return "", domain.ErrEmptyContent
	}
	cid := computeCID(content)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blobs[cid]; !ok {
		s.blobs[cid] = content
		s.meta[cid] = &ContentMeta{
			Size:       len(content),
			UploadedAt: time.Now().UTC(),
		}
	}
	if pin {
		s.meta[cid].Pinned = true
	}
	log.WithFields(log.Fields{"cid": cid, "size": len(content), "pinned": pin}).
		Debug("content stored")
	return cid, nil
}

// UploadJSON stores the canonical JSON rendering of v. Keys are sorted and
// the output is indented so identical documents always map to one CID.
func (s *ContentStore) UploadJSON(v any, pin bool) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal content: %w", err)
	}
	return s.Upload(data, pin)
}

func (s *ContentStore) Get(cid string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.blobs[cid]
	if !ok {
		return nil, domain.ErrContentNotFound
	}
	return content, nil
}

func (s *ContentStore) Metadata(cid string) (*ContentMeta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	meta, ok := s.meta[cid]
	if !ok {
		return nil, domain.ErrContentNotFound
	}
	copied := *meta
	return &copied, nil
}

func (s *ContentStore) Pin(cid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	meta, ok := s.meta[cid]
	if !ok {
		return domain.ErrContentNotFound
	}
	meta.Pinned = true
	return nil
}

// Unpin is a no-op for unknown CIDs, matching pin-service semantics where
// removing an absent pin is not an error.
func (s *ContentStore) Unpin(cid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if meta, ok := s.meta[cid]; ok {
		meta.Pinned = false
	}
}

func (s *ContentStore) IsPinned(cid string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	meta, ok := s.meta[cid]
	return ok && meta.Pinned
}

// Verify re-hashes the stored blob and checks it still matches its CID.
func (s *ContentStore) Verify(cid string) bool {
	content, err := s.Get(cid)
	if err != nil {
		return false
	}
	return computeCID(content) == cid
}

func (s *ContentStore) IPFSURL(cid string) string {
	return "ipfs://" + cid
}

func (s *ContentStore) GatewayURL(cid string) string {
	return s.gatewayURL + "/" + cid
}

// SniffContentType guesses a media type from the blob itself. Generated
// content carries a DGC_ header; everything else falls back to magic bytes
// and a UTF-8 check.
func SniffContentType(content []byte) string {
	switch {
	case len(content) >= 10 && string(content[:10]) == "DGC_IMAGE:":
		return "image/png"
	case len(content) >= 10 && string(content[:10]) == "DGC_MUSIC:":
		return "audio/wav"
	case len(content) >= 4 && string(content[:4]) == "\x89PNG":
		return "image/png"
	case len(content) >= 3 && content[0] == 0xff && content[1] == 0xd8 && content[2] == 0xff:
		return "image/jpeg"
	case json.Valid(content) && len(content) > 0 && (content[0] == '{' || content[0] == '['):
		return "application/json"
	case utf8.Valid(content):
		return "text/plain"
	}
	return "application/octet-stream"
}
