package domain

type SearchCategory string

const (
	SearchCategoryTransaction SearchCategory = "TRANSACTION"
	SearchCategoryAddress     SearchCategory = "ADDRESS"
	SearchCategoryToken       SearchCategory = "TOKEN"
	SearchCategoryNFT         SearchCategory = "NFT"
	SearchCategoryBlock       SearchCategory = "BLOCK"
	SearchCategoryAll         SearchCategory = "ALL"
)

type SearchSuggestion struct {
	Text     string         `json:"text"`
	Category SearchCategory `json:"category"`
	Icon     string         `json:"icon"`
	Metadata map[string]any `json:"metadata"`
	Score    float64        `json:"score"`
}

type TransactionSearchResult struct {
	Type        string  `json:"type"`
	Hash        string  `json:"hash"`
	FromAddress string  `json:"from_address"`
	ToAddress   string  `json:"to_address"`
	Value       string  `json:"value"`
	BlockNumber int64   `json:"block_number"`
	Timestamp   int64   `json:"timestamp"`
	Status      string  `json:"status"`
	MethodName  *string `json:"method_name"`
}

type AddressSearchResult struct {
	Type             string  `json:"type"`
	Address          string  `json:"address"`
	Balance          string  `json:"balance"`
	TransactionCount int     `json:"transaction_count"`
	IsContract       bool    `json:"is_contract"`
	Label            *string `json:"label"`
}

type TokenSearchResult struct {
	Type            string   `json:"type"`
	ContractAddress string   `json:"contract_address"`
	Name            string   `json:"name"`
	Symbol          string   `json:"symbol"`
	Decimals        int      `json:"decimals"`
	TotalSupply     string   `json:"total_supply"`
	PriceUSD        *float64 `json:"price_usd"`
}

type NFTSearchResult struct {
	Type            string  `json:"type"`
	ContractAddress string  `json:"contract_address"`
	TokenID         int64   `json:"token_id"`
	Name            string  `json:"name"`
	ImageURL        *string `json:"image_url"`
	CollectionName  *string `json:"collection_name"`
	Owner           *string `json:"owner"`
}

type BlockSearchResult struct {
	Type             string `json:"type"`
	Number           int64  `json:"number"`
	Hash             string `json:"hash"`
	Timestamp        int64  `json:"timestamp"`
	TransactionCount int    `json:"transaction_count"`
	GasUsed          int64  `json:"gas_used"`
	Miner            string `json:"miner"`
}

// SearchOutcome groups results by category for one executed search.
type SearchOutcome struct {
	Query           string                    `json:"query"`
	TotalResults    int                       `json:"total_results"`
	Transactions    []TransactionSearchResult `json:"transactions"`
	Addresses       []AddressSearchResult     `json:"addresses"`
	Tokens          []TokenSearchResult       `json:"tokens"`
	NFTs            []NFTSearchResult         `json:"nfts"`
	Blocks          []BlockSearchResult       `json:"blocks"`
	ExecutionTimeMS int64                     `json:"execution_time_ms"`
}

type SearchRecord struct {
	Query      string   `json:"query"`
	Timestamp  int64    `json:"timestamp"`
	Categories []string `json:"categories"`
}

type SearchAnalytics struct {
	TotalSearches  int            `json:"total_searches"`
	RecentSearches []SearchRecord `json:"recent_searches"`
	PopularTerms   map[string]int `json:"popular_terms"`
}
