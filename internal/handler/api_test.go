package handler

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/morningstarxcdcode/dgc-platform/internal/repository"
	"github.com/morningstarxcdcode/dgc-platform/internal/service"
	"github.com/morningstarxcdcode/dgc-platform/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAPIRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := New(Services{
		Environment: "test",
		Generation:  service.NewGenerationService(1000, 30*time.Second),
		Store:       service.NewContentStore("https://ipfs.io/ipfs"),
		NFTs:        repository.NewMemoryNFTRepo(),
		Listings:    repository.NewMemoryListingRepo(),
		DNA:         service.NewSeededDNAEngine(1),
		Emotion:     service.NewEmotionAI(),
		Wallet:      service.NewWalletService("http://127.0.0.1:1", "http://127.0.0.1:1", 50*time.Millisecond),
		Search:      service.NewSearchEngine(),
		Agents:      service.NewAgentController(),
		Hub:         ws.NewHub(),
	})
	r := gin.New()
	h.RegisterRoutes(r)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRootAndHealth(t *testing.T) {
	r := setupAPIRouter()

	w := doJSON(t, r, "GET", "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "DGC Platform API", resp["message"])
	assert.Equal(t, "1.0.0", resp["version"])

	w = doJSON(t, r, "GET", "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	services := resp["services"].(map[string]any)
	assert.Equal(t, "operational", services["generation"])
}

func TestGenerate(t *testing.T) {
	r := setupAPIRouter()

	w := doJSON(t, r, "POST", "/api/generate", map[string]any{
		"prompt":          "a calm lake at dawn",
		"content_type":    "IMAGE",
		"creator_address": "0x1234567890abcdef1234567890abcdef12345678",
		"seed":            42,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NotEmpty(t, resp["job_id"])
	assert.Contains(t, []any{"PENDING", "IN_PROGRESS"}, resp["status"])
	assert.Equal(t, float64(42), resp["seed"])

	// Job should be retrievable by id immediately.
	w = doJSON(t, r, "GET", "/api/generate/"+resp["job_id"].(string), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGenerate_Validation(t *testing.T) {
	r := setupAPIRouter()

	w := doJSON(t, r, "POST", "/api/generate", map[string]any{
		"prompt":          "x",
		"content_type":    "VIDEO",
		"creator_address": "0x1234567890abcdef1234567890abcdef12345678",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, "GET", "/api/generate/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, "GET", "/api/generate/00000000-0000-0000-0000-000000000001", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadAndFetchContent(t *testing.T) {
	r := setupAPIRouter()

	payload := base64.StdEncoding.EncodeToString([]byte("hello ipfs"))
	w := doJSON(t, r, "POST", "/api/upload", map[string]any{"content": payload})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	cid := resp["cid"].(string)
	assert.True(t, strings.HasPrefix(cid, "Qm"))
	assert.Equal(t, float64(10), resp["size"])
	assert.Equal(t, true, resp["pinned"])
	assert.Equal(t, "ipfs://"+cid, resp["ipfs_url"])

	w = doJSON(t, r, "GET", "/api/content/"+cid, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello ipfs", w.Body.String())

	// Pin lifecycle
	w = doJSON(t, r, "DELETE", "/api/content/"+cid+"/pin", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, "POST", "/api/content/"+cid+"/pin", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "GET", "/api/content/QmUnknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpload_PlainTextFallback(t *testing.T) {
	r := setupAPIRouter()

	w := doJSON(t, r, "POST", "/api/upload", map[string]any{"content": `{"name":"not base64!"}`})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, float64(22), resp["size"])
}

func TestDNAEndpoints(t *testing.T) {
	r := setupAPIRouter()

	w := doJSON(t, r, "POST", "/api/dna/generate", map[string]any{"prompt": "neon jellyfish"})
	assert.Equal(t, http.StatusOK, w.Code)

	var first map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &first)
	hash1 := first["dna_hash"].(string)
	assert.Len(t, first["genes"].(map[string]any), 8)
	assert.Equal(t, float64(0), first["generation"])

	w = doJSON(t, r, "POST", "/api/dna/generate", map[string]any{"prompt": "molten glass"})
	var second map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &second)
	hash2 := second["dna_hash"].(string)

	w = doJSON(t, r, "POST", "/api/dna/breed", map[string]any{
		"parent1_hash": hash1,
		"parent2_hash": hash2,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var child map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &child)
	assert.Equal(t, float64(1), child["generation"])
	assert.ElementsMatch(t, []any{hash1, hash2}, child["parent_hashes"].([]any))

	w = doJSON(t, r, "GET", "/api/dna/"+hash1, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "GET", "/api/dna/compatibility/"+hash1+"/"+hash2, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var compat map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &compat)
	assert.NotEmpty(t, compat["recommendation"])

	w = doJSON(t, r, "POST", "/api/dna/breed", map[string]any{
		"parent1_hash": "missing",
		"parent2_hash": hash2,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEmotionEndpoints(t *testing.T) {
	r := setupAPIRouter()

	w := doJSON(t, r, "POST", "/api/emotion/analyze", map[string]any{"text": "so happy and excited"})
	assert.Equal(t, http.StatusOK, w.Code)

	var state map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &state)
	assert.Equal(t, "HAPPY", state["primary_emotion"])

	w = doJSON(t, r, "POST", "/api/emotion/analyze", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, "POST", "/api/emotion/adapt", map[string]any{})
	assert.Equal(t, http.StatusOK, w.Code)
	var adapt map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &adapt)
	assert.Contains(t, adapt, "adaptation")
	assert.Contains(t, adapt, "css_filters")

	w = doJSON(t, r, "POST", "/api/emotion/profile", map[string]any{
		"content_id": "art-1",
		"base_mood":  "HAPPY",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "GET", "/api/emotion/profile/art-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "GET", "/api/emotion/profile/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, "POST", "/api/emotion/record/art-1", map[string]any{"text": "wonderful"})
	assert.Equal(t, http.StatusOK, w.Code)
	var recorded map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &recorded)
	assert.Equal(t, "recorded", recorded["status"])

	w = doJSON(t, r, "GET", "/api/emotion/resonance/art-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var resonance map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resonance)
	assert.Equal(t, float64(1), resonance["interaction_count"])
}

func TestSearchEndpoints(t *testing.T) {
	r := setupAPIRouter()

	w := doJSON(t, r, "GET", "/api/search/autocomplete?q=eth", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var auto map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &auto)
	assert.Equal(t, "eth", auto["query"])

	w = doJSON(t, r, "GET", "/api/search/autocomplete?q=", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, "POST", "/api/search", map[string]any{"query": "eth"})
	assert.Equal(t, http.StatusOK, w.Code)
	var outcome map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &outcome)
	assert.Equal(t, "eth", outcome["query"])

	w = doJSON(t, r, "POST", "/api/search", map[string]any{
		"query":      "eth",
		"categories": []string{"BOGUS"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, "GET", "/api/search?q=dai&category=TOKEN", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "GET", "/api/search/analytics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var analytics map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &analytics)
	assert.Equal(t, float64(2), analytics["total_searches"])
}

func TestAgentCatalogAndPresets(t *testing.T) {
	r := setupAPIRouter()

	w := doJSON(t, r, "GET", "/api/agents", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var catalog map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &catalog)
	assert.Len(t, catalog["agents"].([]any), 7)

	w = doJSON(t, r, "POST", "/api/agents/execute", map[string]any{"input_data": map[string]any{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, "POST", "/api/agents/execute", map[string]any{"agent_types": []string{"WEATHER"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, "POST", "/api/agents/execute/WEATHER", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, "GET", "/api/agents/execution/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, "POST", "/api/agents/presets", map[string]any{
		"name":           "my pipeline",
		"enabled_agents": []string{"TEXT", "SEARCH"},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	var created map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &created)
	presetID := created["id"].(string)
	assert.NotEmpty(t, presetID)

	w = doJSON(t, r, "GET", "/api/agents/presets", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var listed map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &listed)
	assert.Len(t, listed["presets"].([]any), 1)

	w = doJSON(t, r, "DELETE", "/api/agents/presets/"+presetID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "GET", "/api/agents/presets/"+presetID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGasPriceEndpoint(t *testing.T) {
	r := setupAPIRouter()

	// The RPC endpoint is unreachable, so the simulated fallback answers.
	w := doJSON(t, r, "GET", "/api/gas-price", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var gas map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &gas)
	assert.Greater(t, gas["standard"], float64(0))
}

func TestWalletEndpoints(t *testing.T) {
	r := setupAPIRouter()
	address := "0xAbCd567890abcdef1234567890abcdef12345678"

	w := doJSON(t, r, "GET", "/api/wallet/"+address+"/balance", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var balance map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &balance)
	assert.Equal(t, address, balance["address"])
	assert.NotEmpty(t, balance["eth_balance"])

	w = doJSON(t, r, "GET", "/api/wallet/"+address+"/transactions?limit=2", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var txs map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &txs)
	assert.Len(t, txs["transactions"].([]any), 2)

	w = doJSON(t, r, "GET", "/api/wallet/"+address+"/transactions?limit=500", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAgentWebsocketAndSystemStatus(t *testing.T) {
	r := setupAPIRouter()
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/agents"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "ping"}))

	var pong map[string]any
	require.NoError(t, conn.ReadJSON(&pong))
	assert.Equal(t, "pong", pong["type"])

	// The pong guarantees the hub registration happened.
	w := doJSON(t, r, "GET", "/api/system/status", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var status map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &status)
	connections := status["connections"].(map[string]any)
	assert.Equal(t, float64(1), connections["agent_connections"])
	assert.Equal(t, float64(1), connections["total_connections"])
	services := status["services"].(map[string]any)
	assert.Equal(t, "operational", services["websockets"])
}
