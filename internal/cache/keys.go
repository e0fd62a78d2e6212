package cache

import (
	"strings"
	"time"

	"marketdash-api/internal/config"
)

// Namespace is the Redis key prefix for the marketdash application.
const Namespace = "marketdash"

// TTLClass represents a config-driven TTL bucket.
type TTLClass string

const (
	TTLShort  TTLClass = "short"
	TTLMedium TTLClass = "medium"
	TTLLong   TTLClass = "long"
)

// TTLSet normalises cache TTLs from config into time.Duration values.
type TTLSet struct {
	Short  time.Duration
	Medium time.Duration
	Long   time.Duration
}

// NewTTLSet converts config TTLs (in seconds) into durations.
func NewTTLSet(cfg config.CacheTTL) TTLSet {
	return TTLSet{
		Short:  durationOrDefault(cfg.Short, 60*time.Second),
		Medium: durationOrDefault(cfg.Medium, 2*time.Minute),
		Long:   durationOrDefault(cfg.Long, 5*time.Minute),
	}
}

func durationOrDefault(seconds int, fallback time.Duration) time.Duration {
	if seconds < 0 {
		return 0
	}
	if seconds == 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}

// Duration returns the configured duration for the given TTL class.
func (t TTLSet) Duration(class TTLClass) time.Duration {
	switch class {
	case TTLShort:
		return t.Short
	case TTLMedium:
		return t.Medium
	case TTLLong:
		return t.Long
	default:
		return 0
	}
}

func formatKey(parts ...string) string {
	values := make([]string, 0, len(parts)+1)
	values = append(values, Namespace)
	for _, part := range parts {
		clean := strings.TrimSpace(part)
		if clean == "" {
			continue
		}
		values = append(values, clean)
	}
	return strings.Join(values, ":")
}

// --- Market Keys ------------------------------------------------------------

// MarketBatchKey caches a merged multi-symbol quote response. The symbol
// list is joined sorted upstream so equivalent requests share an entry.
func MarketBatchKey(adapter, symbols string) string {
	return formatKey("market", adapter, symbols)
}

// ChartKey caches normalized chart points for one symbol and interval.
func ChartKey(adapter, symbol, interval string) string {
	return formatKey("chart", adapter, symbol, interval)
}

// --- News & Calendar Keys ---------------------------------------------------

// NewsKey caches a news search result for one query signature.
func NewsKey(adapter, signature string) string {
	return formatKey("news", adapter, signature)
}

// CalendarKey caches a calendar listing for one query signature.
func CalendarKey(adapter, signature string) string {
	return formatKey("calendar", adapter, signature)
}

// --- Crypto Dashboard Keys --------------------------------------------------

// CryptoStatsKey holds the global crypto stats payload.
func CryptoStatsKey() string {
	return formatKey("crypto", "stats")
}

// TopMoversKey holds the top gainers/losers payload.
func TopMoversKey() string {
	return formatKey("crypto", "top_movers")
}

// IndicesKey holds the macro indices snapshot.
func IndicesKey() string {
	return formatKey("indices")
}

// --- TTL Helpers ------------------------------------------------------------

// QuoteTTL returns the short TTL used for quote and batch payloads.
func QuoteTTL(ttl TTLSet) time.Duration {
	return ttl.Duration(TTLShort)
}

// ChartTTL returns the TTL for chart payloads.
func ChartTTL(ttl TTLSet) time.Duration {
	return ttl.Duration(TTLMedium)
}

// NewsTTL returns the TTL for news listings.
func NewsTTL(ttl TTLSet) time.Duration {
	return ttl.Duration(TTLMedium)
}

// CalendarTTL returns the TTL for calendar listings.
func CalendarTTL(ttl TTLSet) time.Duration {
	return ttl.Duration(TTLLong)
}

// CryptoStatsTTL returns the TTL for global crypto stats.
func CryptoStatsTTL(ttl TTLSet) time.Duration {
	return ttl.Duration(TTLLong)
}

// TopMoversTTL returns the TTL for the top movers payload.
func TopMoversTTL(ttl TTLSet) time.Duration {
	return ttl.Duration(TTLMedium)
}

// IndicesTTL returns the TTL for the indices snapshot.
func IndicesTTL(ttl TTLSet) time.Duration {
	return ttl.Duration(TTLLong)
}

// FormatCacheKey is exported for dynamic key construction when patterns are
// not covered by helpers.
func FormatCacheKey(parts ...string) string {
	return formatKey(parts...)
}
