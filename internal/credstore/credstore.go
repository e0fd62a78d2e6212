package credstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/zeromicro/go-zero/core/logx"

	"marketdash-api/internal/model"
	"marketdash-api/pkg/adapters"
)

// Store resolves per-user provider credentials. Results are intentionally
// never cached: user keys can change between requests, and a stale key must
// not leak into another user's adapter selection.
type Store struct {
	keys model.UserApiKeysModel
}

// New constructs a Store. A nil model yields a store that always resolves
// empty credentials, which keeps anonymous-only deployments free of a
// database requirement.
func New(keys model.UserApiKeysModel) *Store {
	return &Store{keys: keys}
}

// Resolve returns the credential set stored for userID. A blank userID, a
// missing row, or a lookup failure all resolve to the zero set; lookup
// failures are logged since they silently downgrade the caller to
// service-level keys.
func (s *Store) Resolve(ctx context.Context, userID string) adapters.Credentials {
	if s == nil || s.keys == nil || userID == "" {
		return adapters.Credentials{}
	}

	row, err := s.keys.FindOneByUserId(ctx, userID)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			logx.WithContext(ctx).Errorf("credstore: lookup user=%s err=%v", userID, err)
		}
		return adapters.Credentials{}
	}

	return adapters.Credentials{
		TwelveData:       nullable(row.TwelveDataApiKey),
		Polygon:          nullable(row.PolygonApiKey),
		Finnhub:          nullable(row.FinnhubApiKey),
		AlphaVantage:     nullable(row.AlphaVantageApiKey),
		FRED:             nullable(row.FredApiKey),
		TradingEconomics: nullable(row.TradingEconApiKey),
		OpenAI:           nullable(row.OpenaiApiKey),
	}
}

func nullable(v sql.NullString) string {
	if !v.Valid {
		return ""
	}
	return v.String
}
