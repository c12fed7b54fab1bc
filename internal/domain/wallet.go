package domain

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusConfirmed TransactionStatus = "success"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// Transaction uses the camelCase field names the dashboard consumes.
type Transaction struct {
	Hash        string            `json:"hash"`
	From        string            `json:"from"`
	To          string            `json:"to"`
	Value       string            `json:"value"`
	GasPrice    string            `json:"gasPrice"`
	GasUsed     *int64            `json:"gasUsed"`
	Status      TransactionStatus `json:"status"`
	BlockNumber *int64            `json:"blockNumber"`
	Timestamp   *int64            `json:"timestamp"`
	Type        string            `json:"type"`
}

type TokenBalance struct {
	ContractAddress string   `json:"contract_address"`
	Symbol          string   `json:"symbol"`
	Name            string   `json:"name"`
	Balance         string   `json:"balance"`
	Decimals        int      `json:"decimals"`
	USDValue        *float64 `json:"usd_value"`
}

// NFTHolding is a token held by a wallet.
type NFTHolding struct {
	Contract   string  `json:"contract"`
	TokenID    string  `json:"tokenId"`
	Name       string  `json:"name"`
	TokenURI   *string `json:"tokenURI"`
	Collection *string `json:"collection"`
	FloorPrice *string `json:"floor_price"`
}

// GasPrice per tier, in gwei.
type GasPrice struct {
	Slow      int64 `json:"slow"`
	Standard  int64 `json:"standard"`
	Fast      int64 `json:"fast"`
	Instant   int64 `json:"instant"`
	BaseFee   int64 `json:"base_fee"`
	Timestamp int64 `json:"timestamp"`
}

// WalletData is the complete wallet snapshot served to the dashboard.
type WalletData struct {
	Address      string         `json:"address"`
	ETHBalance   string         `json:"eth_balance"`
	ETHUSDValue  *float64       `json:"eth_usd_value"`
	Tokens       []TokenBalance `json:"tokens"`
	NFTs         []NFTHolding   `json:"nfts"`
	Transactions []Transaction  `json:"transactions"`
	GasPrice     *GasPrice      `json:"gas_price"`
	LastUpdated  int64          `json:"last_updated"`
}
