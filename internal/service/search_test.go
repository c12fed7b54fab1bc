package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morningstarxcdcode/dgc-platform/internal/domain"
)

func TestAutocomplete_FullTransactionHash(t *testing.T) {
	e := NewSearchEngine()
	hash := "0x" + strings.Repeat("ab", 32)

	suggestions := e.Autocomplete(hash, 10)
	require.Len(t, suggestions, 1)
	assert.Equal(t, domain.SearchCategoryTransaction, suggestions[0].Category)
	assert.InDelta(t, 1.0, suggestions[0].Score, 0.0001)
	assert.Equal(t, hash, suggestions[0].Metadata["hash"])
}

func TestAutocomplete_FullAddress(t *testing.T) {
	e := NewSearchEngine()
	address := "0x" + strings.Repeat("cd", 20)

	suggestions := e.Autocomplete(address, 10)
	require.Len(t, suggestions, 1)
	assert.Equal(t, domain.SearchCategoryAddress, suggestions[0].Category)
}

func TestAutocomplete_PartialHex(t *testing.T) {
	e := NewSearchEngine()

	suggestions := e.Autocomplete("0xab12", 10)
	require.Len(t, suggestions, 2)
	assert.Equal(t, domain.SearchCategoryTransaction, suggestions[0].Category)
	assert.InDelta(t, 0.8, suggestions[0].Score, 0.0001)
	assert.Equal(t, domain.SearchCategoryAddress, suggestions[1].Category)
	assert.InDelta(t, 0.7, suggestions[1].Score, 0.0001)
}

func TestAutocomplete_BlockNumber(t *testing.T) {
	e := NewSearchEngine()

	suggestions := e.Autocomplete("12345678", 10)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Block #12345678", suggestions[0].Text)
	assert.Equal(t, int64(12345678), suggestions[0].Metadata["block_number"])
}

func TestAutocomplete_Keywords(t *testing.T) {
	e := NewSearchEngine()

	suggestions := e.Autocomplete("us", 10)
	require.NotEmpty(t, suggestions)
	// Token matches rank above popular-term completions.
	assert.Equal(t, domain.SearchCategoryToken, suggestions[0].Category)
	assert.Equal(t, "USD Coin (USDC)", suggestions[0].Text)

	suggestions = e.Autocomplete("nft art", 10)
	require.Len(t, suggestions, 1)
	assert.Equal(t, domain.SearchCategoryNFT, suggestions[0].Category)

	assert.Empty(t, e.Autocomplete("  ", 10))

	suggestions = e.Autocomplete("eth", 1)
	assert.Len(t, suggestions, 1)
}

func TestSearch_HexQuery(t *testing.T) {
	e := NewSearchEngine()

	outcome := e.Search("0x12345678ab", nil, 20)
	require.Len(t, outcome.Transactions, 1)
	assert.Len(t, outcome.Transactions[0].Hash, 66)
	require.Len(t, outcome.Addresses, 1)
	assert.Len(t, outcome.Addresses[0].Address, 42)
	assert.Equal(t, outcome.TotalResults,
		len(outcome.Transactions)+len(outcome.Addresses)+len(outcome.Tokens)+len(outcome.NFTs)+len(outcome.Blocks))
}

func TestSearch_CategoryFilter(t *testing.T) {
	e := NewSearchEngine()

	outcome := e.Search("eth", []domain.SearchCategory{domain.SearchCategoryToken}, 20)
	require.NotEmpty(t, outcome.Tokens)
	assert.Equal(t, "ETH", outcome.Tokens[0].Symbol)
	assert.Empty(t, outcome.NFTs)
	assert.Empty(t, outcome.Blocks)

	require.NotNil(t, outcome.Tokens[0].PriceUSD)
	assert.InDelta(t, 2500.0, *outcome.Tokens[0].PriceUSD, 0.0001)

	stable := e.Search("usdc", []domain.SearchCategory{domain.SearchCategoryToken}, 20)
	require.NotEmpty(t, stable.Tokens)
	assert.InDelta(t, 1.0, *stable.Tokens[0].PriceUSD, 0.0001)
}

func TestSearch_BlockQuery(t *testing.T) {
	e := NewSearchEngine()

	outcome := e.Search("15000000", []domain.SearchCategory{domain.SearchCategoryBlock}, 20)
	require.Len(t, outcome.Blocks, 1)
	assert.Equal(t, int64(15000000), outcome.Blocks[0].Number)
	assert.Equal(t, 150, outcome.Blocks[0].TransactionCount)
}

func TestSearch_NFTQuery(t *testing.T) {
	e := NewSearchEngine()

	outcome := e.Search("dreamscape horizon", []domain.SearchCategory{domain.SearchCategoryNFT}, 20)
	require.Len(t, outcome.NFTs, 1)
	assert.Equal(t, "Living Art #dreamscape", outcome.NFTs[0].Name)
}

func TestAnalytics(t *testing.T) {
	e := NewSearchEngine()

	e.Search("eth", nil, 20)
	e.Search("eth", nil, 20)
	e.Search("dai", nil, 20)

	analytics := e.Analytics()
	assert.Equal(t, 3, analytics.TotalSearches)
	assert.Len(t, analytics.RecentSearches, 3)
	assert.Equal(t, 2, analytics.PopularTerms["eth"])
	assert.Equal(t, 1, analytics.PopularTerms["dai"])
}
