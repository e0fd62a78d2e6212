package svc

import (
	"errors"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx driver
	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
	"github.com/zeromicro/go-zero/core/syncx"

	cachekit "marketdash-api/internal/cache"
	"marketdash-api/internal/config"
	"marketdash-api/internal/credstore"
	"marketdash-api/internal/model"
	"marketdash-api/pkg/adapters"
	"marketdash-api/pkg/insight"
	"marketdash-api/pkg/marketdata/coingecko"
	"marketdash-api/pkg/marketdata/feargreed"
)

// errCacheMiss is the not-found sentinel the go-zero cache layer stores for
// absent keys.
var errCacheMiss = errors.New("cache: miss")

type ServiceContext struct {
	Config config.Config

	Factory   *adapters.Factory
	CredStore *credstore.Store
	Insight   *insight.Generator

	// Keyless clients used by the crypto dashboard endpoints directly.
	CoinGecko *coingecko.Client
	FearGreed *feargreed.Client

	// Cache is nil when Redis is unconfigured; cached endpoints degrade to
	// fetching every time.
	Cache cache.Cache
	TTL   cachekit.TTLSet

	DBConn           sqlx.SqlConn
	UserApiKeysModel model.UserApiKeysModel
}

func NewServiceContext(c config.Config) *ServiceContext {
	svc := &ServiceContext{
		Config: c,
		Factory: adapters.NewFactory(adapters.Credentials{
			TwelveData:       c.Keys.TwelveData,
			Polygon:          c.Keys.Polygon,
			Finnhub:          c.Keys.Finnhub,
			AlphaVantage:     c.Keys.AlphaVantage,
			FRED:             c.Keys.FRED,
			TradingEconomics: c.Keys.TradingEconomics,
			OpenAI:           c.Keys.OpenAI,
		}),
		CoinGecko: coingecko.NewClient(),
		FearGreed: feargreed.NewClient(),
		TTL:       cachekit.NewTTLSet(c.TTL),
	}

	insightCfg := c.Insight.Value
	if insightCfg == nil {
		insightCfg = insight.Default()
	}
	if insightCfg.APIKey == "" {
		insightCfg.APIKey = c.Keys.OpenAI
	}
	svc.Insight = insight.NewGenerator(insightCfg)

	if len(c.Redis.Host) > 0 {
		rds := redis.MustNewRedis(c.Redis)
		svc.Cache = cache.NewNode(rds, syncx.NewSingleFlight(), cache.NewStat(cachekit.Namespace), errCacheMiss)
	}

	// Only wire the credential store when a database is configured; without
	// one every request resolves service-level keys.
	if c.Postgres.DSN != "" {
		conn := sqlx.NewSqlConn("pgx", c.Postgres.DSN)
		svc.DBConn = conn
		svc.UserApiKeysModel = model.NewUserApiKeysModel(conn)
	}
	svc.CredStore = credstore.New(svc.UserApiKeysModel)

	return svc
}
