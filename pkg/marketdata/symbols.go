package marketdata

import "strings"

// Category routes a symbol to the crypto or stocks adapter family.
type Category string

const (
	CategoryCrypto Category = "crypto"
	CategoryStocks Category = "stocks"
)

// cryptoSymbols is the fixed membership set used to classify ad-hoc symbols.
// Anything outside it is treated as an equity.
var cryptoSymbols = map[string]struct{}{
	"BTC": {}, "ETH": {}, "USDT": {}, "BNB": {}, "SOL": {},
	"XRP": {}, "USDC": {}, "ADA": {}, "AVAX": {}, "DOGE": {},
	"DOT": {}, "MATIC": {}, "LINK": {}, "UNI": {}, "ATOM": {},
}

// coinIDs maps crypto tickers to CoinGecko coin ids, whose API addresses
// assets by id rather than symbol.
var coinIDs = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"USDT":  "tether",
	"BNB":   "binancecoin",
	"SOL":   "solana",
	"XRP":   "ripple",
	"USDC":  "usd-coin",
	"ADA":   "cardano",
	"AVAX":  "avalanche-2",
	"DOGE":  "dogecoin",
	"DOT":   "polkadot",
	"MATIC": "matic-network",
	"LINK":  "chainlink",
	"UNI":   "uniswap",
	"ATOM":  "cosmos",
}

// Classify reports whether a symbol belongs to the crypto set or defaults to
// stocks. Case-insensitive, no network calls.
func Classify(symbol string) Category {
	if _, ok := cryptoSymbols[strings.ToUpper(strings.TrimSpace(symbol))]; ok {
		return CategoryCrypto
	}
	return CategoryStocks
}

// CoinID resolves a crypto ticker to its CoinGecko id. Unmapped symbols fall
// back to the lower-cased raw symbol; the upstream may answer not-found for
// those, which is surfaced as a normal provider failure.
func CoinID(symbol string) string {
	if id, ok := coinIDs[strings.ToUpper(strings.TrimSpace(symbol))]; ok {
		return id
	}
	return strings.ToLower(strings.TrimSpace(symbol))
}
