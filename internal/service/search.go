package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/morningstarxcdcode/dgc-platform/internal/domain"
)

var categoryIcons = map[domain.SearchCategory]string{
	domain.SearchCategoryTransaction: "🔗",
	domain.SearchCategoryAddress:     "👛",
	domain.SearchCategoryToken:       "🪙",
	domain.SearchCategoryNFT:         "🖼️",
	domain.SearchCategoryBlock:       "📦",
}

var popularTerms = []string{
	"ethereum", "eth", "usdc", "usdt", "dai", "weth",
	"nft", "mint", "transfer", "swap", "approve",
}

type knownToken struct {
	name   string
	symbol string
}

var knownTokens = []struct {
	key   string
	token knownToken
}{
	{"eth", knownToken{"Ethereum", "ETH"}},
	{"usdc", knownToken{"USD Coin", "USDC"}},
	{"usdt", knownToken{"Tether", "USDT"}},
	{"dai", knownToken{"Dai Stablecoin", "DAI"}},
	{"weth", knownToken{"Wrapped Ether", "WETH"}},
}

// SearchEngine serves autocomplete and category search over blockchain
// data. Result lookup is mocked; scoring, analytics and the suggestion
// rules are the real product surface.
type SearchEngine struct {
	mu           sync.RWMutex
	history      []domain.SearchRecord
	popularCache map[string]int
}

func NewSearchEngine() *SearchEngine {
	return &SearchEngine{popularCache: make(map[string]int)}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// Autocomplete suggests completions for a partial query, best score first.
func (e *SearchEngine) Autocomplete(query string, limit int) []domain.SearchSuggestion {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return []domain.SearchSuggestion{}
	}

	var suggestions []domain.SearchSuggestion
	switch {
	case strings.HasPrefix(query, "0x"):
		suggestions = hexSuggestions(query)
	case isDigits(query):
		number, _ := strconv.ParseInt(query, 10, 64)
		suggestions = []domain.SearchSuggestion{{
			Text:     fmt.Sprintf("Block #%s", query),
			Category: domain.SearchCategoryBlock,
			Icon:     categoryIcons[domain.SearchCategoryBlock],
			Metadata: map[string]any{"block_number": number},
			Score:    1.0,
		}}
	default:
		suggestions = keywordSuggestions(query)
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})
	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}

func hexSuggestions(query string) []domain.SearchSuggestion {
	switch len(query) {
	case 66:
		return []domain.SearchSuggestion{{
			Text:     fmt.Sprintf("Transaction %s...%s", query[:10], query[len(query)-8:]),
			Category: domain.SearchCategoryTransaction,
			Icon:     categoryIcons[domain.SearchCategoryTransaction],
			Metadata: map[string]any{"hash": query},
			Score:    1.0,
		}}
	case 42:
		return []domain.SearchSuggestion{{
			Text:     fmt.Sprintf("Address %s...%s", query[:10], query[len(query)-8:]),
			Category: domain.SearchCategoryAddress,
			Icon:     categoryIcons[domain.SearchCategoryAddress],
			Metadata: map[string]any{"address": query},
			Score:    1.0,
		}}
	}
	return []domain.SearchSuggestion{
		{
			Text:     fmt.Sprintf("Search for %s...", query),
			Category: domain.SearchCategoryTransaction,
			Icon:     categoryIcons[domain.SearchCategoryTransaction],
			Metadata: map[string]any{"partial": query},
			Score:    0.8,
		},
		{
			Text:     fmt.Sprintf("Address starting with %s...", query),
			Category: domain.SearchCategoryAddress,
			Icon:     categoryIcons[domain.SearchCategoryAddress],
			Metadata: map[string]any{"partial": query},
			Score:    0.7,
		},
	}
}

func keywordSuggestions(query string) []domain.SearchSuggestion {
	var suggestions []domain.SearchSuggestion

	for _, entry := range knownTokens {
		if strings.HasPrefix(entry.key, query) || strings.HasPrefix(strings.ToLower(entry.token.name), query) {
			suggestions = append(suggestions, domain.SearchSuggestion{
				Text:     fmt.Sprintf("%s (%s)", entry.token.name, entry.token.symbol),
				Category: domain.SearchCategoryToken,
				Icon:     categoryIcons[domain.SearchCategoryToken],
				Metadata: map[string]any{"name": entry.token.name, "symbol": entry.token.symbol},
				Score:    0.9,
			})
		}
	}

	for _, term := range popularTerms {
		if strings.HasPrefix(term, query) && term != query {
			suggestions = append(suggestions, domain.SearchSuggestion{
				Text:     term,
				Category: domain.SearchCategoryAll,
				Icon:     "🔍",
				Metadata: map[string]any{},
				Score:    0.6,
			})
		}
	}

	if strings.Contains(query, "nft") || query == "art" || query == "collect" || query == "mint" {
		suggestions = append(suggestions, domain.SearchSuggestion{
			Text:     fmt.Sprintf("NFTs matching '%s'", query),
			Category: domain.SearchCategoryNFT,
			Icon:     categoryIcons[domain.SearchCategoryNFT],
			Metadata: map[string]any{"search_term": query},
			Score:    0.7,
		})
	}
	return suggestions
}

func hasCategory(categories []domain.SearchCategory, want domain.SearchCategory) bool {
	for _, c := range categories {
		if c == domain.SearchCategoryAll || c == want {
			return true
		}
	}
	return false
}

// Search executes a query across the requested categories and records it
// for analytics. Results are mocked lookups shaped like the real indexes.
func (e *SearchEngine) Search(query string, categories []domain.SearchCategory, limit int) *domain.SearchOutcome {
	if len(categories) == 0 {
		categories = []domain.SearchCategory{domain.SearchCategoryAll}
	}
	e.record(query, categories)

	start := time.Now()
	queryLower := strings.TrimSpace(strings.ToLower(query))
	now := time.Now().Unix()

	outcome := &domain.SearchOutcome{
		Query:        query,
		Transactions: []domain.TransactionSearchResult{},
		Addresses:    []domain.AddressSearchResult{},
		Tokens:       []domain.TokenSearchResult{},
		NFTs:         []domain.NFTSearchResult{},
		Blocks:       []domain.BlockSearchResult{},
	}

	if hasCategory(categories, domain.SearchCategoryTransaction) &&
		strings.HasPrefix(queryLower, "0x") && len(queryLower) >= 10 {
		outcome.Transactions = append(outcome.Transactions, domain.TransactionSearchResult{
			Type:        "transaction",
			Hash:        padHex(queryLower, 66),
			FromAddress: "0x1234567890123456789012345678901234567890",
			ToAddress:   "0x0987654321098765432109876543210987654321",
			Value:       "1.0",
			BlockNumber: 12345678,
			Timestamp:   now,
			Status:      "confirmed",
		})
	}

	if hasCategory(categories, domain.SearchCategoryAddress) &&
		strings.HasPrefix(queryLower, "0x") && len(queryLower) >= 10 {
		outcome.Addresses = append(outcome.Addresses, domain.AddressSearchResult{
			Type:             "address",
			Address:          padHex(queryLower, 42),
			Balance:          "5.25",
			TransactionCount: 42,
			IsContract:       false,
		})
	}

	if hasCategory(categories, domain.SearchCategoryToken) {
		outcome.Tokens = searchTokens(queryLower, limit)
	}

	if hasCategory(categories, domain.SearchCategoryNFT) && queryLower != "" {
		name := queryLower
		if len(name) > 10 {
			name = name[:10]
		}
		imageURL := "https://example.com/nft.png"
		collection := "DGC Living NFTs"
		owner := "0x..."
		outcome.NFTs = append(outcome.NFTs, domain.NFTSearchResult{
			Type:            "nft",
			ContractAddress: "0xDGC...",
			TokenID:         1,
			Name:            "Living Art #" + name,
			ImageURL:        &imageURL,
			CollectionName:  &collection,
			Owner:           &owner,
		})
	}

	if hasCategory(categories, domain.SearchCategoryBlock) && isDigits(queryLower) {
		number, _ := strconv.ParseInt(queryLower, 10, 64)
		outcome.Blocks = append(outcome.Blocks, domain.BlockSearchResult{
			Type:             "block",
			Number:           number,
			Hash:             "0x" + strings.Repeat("a", 64),
			Timestamp:        now,
			TransactionCount: 150,
			GasUsed:          15000000,
			Miner:            "0xMiner...",
		})
	}

	outcome.TotalResults = len(outcome.Transactions) + len(outcome.Addresses) +
		len(outcome.Tokens) + len(outcome.NFTs) + len(outcome.Blocks)
	outcome.ExecutionTimeMS = time.Since(start).Milliseconds()
	return outcome
}

func padHex(query string, width int) string {
	if len(query) >= width {
		return query
	}
	return query + strings.Repeat("0", width-len(query))
}

var tokenIndex = []struct {
	key      string
	address  string
	name     string
	symbol   string
	decimals int
	supply   string
}{
	{"eth", "0x0", "Ethereum", "ETH", 18, "120000000"},
	{"usdc", "0xA0b8...", "USD Coin", "USDC", 6, "40000000000"},
	{"dai", "0x6B17...", "Dai Stablecoin", "DAI", 18, "5000000000"},
}

func searchTokens(query string, limit int) []domain.TokenSearchResult {
	results := []domain.TokenSearchResult{}
	for _, t := range tokenIndex {
		if query == "" || strings.Contains(t.key, query) || strings.Contains(strings.ToLower(t.name), query) {
			price := 2500.0
			if strings.Contains(t.key, "usd") {
				price = 1.0
			}
			results = append(results, domain.TokenSearchResult{
				Type:            "token",
				ContractAddress: t.address,
				Name:            t.name,
				Symbol:          t.symbol,
				Decimals:        t.decimals,
				TotalSupply:     t.supply,
				PriceUSD:        &price,
			})
		}
		if len(results) == limit {
			break
		}
	}
	return results
}

func (e *SearchEngine) record(query string, categories []domain.SearchCategory) {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = string(c)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history = append(e.history, domain.SearchRecord{
		Query:      query,
		Timestamp:  time.Now().Unix(),
		Categories: names,
	})
	e.popularCache[strings.ToLower(query)]++
}

// Analytics reports totals, the last 100 searches and the ten most
// frequent terms.
func (e *SearchEngine) Analytics() domain.SearchAnalytics {
	e.mu.RLock()
	defer e.mu.RUnlock()

	recent := e.history
	if len(recent) > 100 {
		recent = recent[len(recent)-100:]
	}
	recentCopy := make([]domain.SearchRecord, len(recent))
	copy(recentCopy, recent)

	type termCount struct {
		term  string
		count int
	}
	terms := make([]termCount, 0, len(e.popularCache))
	for term, count := range e.popularCache {
		terms = append(terms, termCount{term, count})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].count != terms[j].count {
			return terms[i].count > terms[j].count
		}
		return terms[i].term < terms[j].term
	})
	if len(terms) > 10 {
		terms = terms[:10]
	}
	popular := make(map[string]int, len(terms))
	for _, t := range terms {
		popular[t.term] = t.count
	}

	return domain.SearchAnalytics{
		TotalSearches:  len(e.history),
		RecentSearches: recentCopy,
		PopularTerms:   popular,
	}
}
