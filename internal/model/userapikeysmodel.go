package model

import (
	"context"
	"database/sql"
	"time"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var _ UserApiKeysModel = (*defaultUserApiKeysModel)(nil)

// ErrNotFound aliases the sqlx sentinel so callers need not import sqlx.
var ErrNotFound = sqlx.ErrNotFound

type (
	// UserApiKeys mirrors one row of the user_api_keys table. Key columns
	// are nullable; a NULL means the user never stored that key.
	UserApiKeys struct {
		Id                 int64          `db:"id"`
		UserId             string         `db:"user_id"`
		TwelveDataApiKey   sql.NullString `db:"twelve_data_api_key"`
		PolygonApiKey      sql.NullString `db:"polygon_api_key"`
		FinnhubApiKey      sql.NullString `db:"finnhub_api_key"`
		AlphaVantageApiKey sql.NullString `db:"alpha_vantage_api_key"`
		FredApiKey         sql.NullString `db:"fred_api_key"`
		TradingEconApiKey  sql.NullString `db:"trading_economics_api_key"`
		OpenaiApiKey       sql.NullString `db:"openai_api_key"`
		CreatedAt          time.Time      `db:"created_at"`
		UpdatedAt          time.Time      `db:"updated_at"`
	}

	UserApiKeysModel interface {
		FindOneByUserId(ctx context.Context, userId string) (*UserApiKeys, error)
		Upsert(ctx context.Context, data *UserApiKeys) error
		DeleteByUserId(ctx context.Context, userId string) error
	}

	defaultUserApiKeysModel struct {
		conn sqlx.SqlConn
	}
)

// NewUserApiKeysModel returns a model for the user_api_keys table.
func NewUserApiKeysModel(conn sqlx.SqlConn) UserApiKeysModel {
	return &defaultUserApiKeysModel{conn: conn}
}

const userApiKeysColumns = `id, user_id, twelve_data_api_key, polygon_api_key, finnhub_api_key, alpha_vantage_api_key, fred_api_key, trading_economics_api_key, openai_api_key, created_at, updated_at`

func (m *defaultUserApiKeysModel) FindOneByUserId(ctx context.Context, userId string) (*UserApiKeys, error) {
	query := `SELECT ` + userApiKeysColumns + ` FROM user_api_keys WHERE user_id = $1 LIMIT 1`
	var resp UserApiKeys
	err := m.conn.QueryRowCtx(ctx, &resp, query, userId)
	switch err {
	case nil:
		return &resp, nil
	default:
		return nil, err
	}
}

func (m *defaultUserApiKeysModel) Upsert(ctx context.Context, data *UserApiKeys) error {
	query := `INSERT INTO user_api_keys
        (user_id, twelve_data_api_key, polygon_api_key, finnhub_api_key, alpha_vantage_api_key, fred_api_key, trading_economics_api_key, openai_api_key, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
        ON CONFLICT (user_id) DO UPDATE SET
        twelve_data_api_key = EXCLUDED.twelve_data_api_key,
        polygon_api_key = EXCLUDED.polygon_api_key,
        finnhub_api_key = EXCLUDED.finnhub_api_key,
        alpha_vantage_api_key = EXCLUDED.alpha_vantage_api_key,
        fred_api_key = EXCLUDED.fred_api_key,
        trading_economics_api_key = EXCLUDED.trading_economics_api_key,
        openai_api_key = EXCLUDED.openai_api_key,
        updated_at = now()`
	_, err := m.conn.ExecCtx(ctx, query,
		data.UserId,
		data.TwelveDataApiKey,
		data.PolygonApiKey,
		data.FinnhubApiKey,
		data.AlphaVantageApiKey,
		data.FredApiKey,
		data.TradingEconApiKey,
		data.OpenaiApiKey,
	)
	return err
}

func (m *defaultUserApiKeysModel) DeleteByUserId(ctx context.Context, userId string) error {
	query := `DELETE FROM user_api_keys WHERE user_id = $1`
	_, err := m.conn.ExecCtx(ctx, query, userId)
	return err
}
