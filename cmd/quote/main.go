package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"marketdash-api/internal/config"
	"marketdash-api/internal/logic"
	"marketdash-api/internal/svc"
	"marketdash-api/internal/types"
)

// quote is a small operational CLI: fetch quotes or a chart through the same
// adapter selection the API uses, and print the JSON payload.
var (
	configFile = flag.String("f", "etc/marketdash.yaml", "the config file")
	symbols    = flag.String("symbols", "", "comma separated symbols to quote")
	chart      = flag.String("chart", "", "symbol to fetch chart data for")
	interval   = flag.String("interval", "1d", "chart interval")
	adapter    = flag.String("adapter", "", "explicit adapter name")
	timeout    = flag.Duration("timeout", 60*time.Second, "overall timeout")
)

func main() {
	flag.Parse()
	if *symbols == "" && *chart == "" {
		fmt.Fprintln(os.Stderr, "usage: quote -symbols BTC,AAPL | quote -chart BTC [-interval 1d]")
		os.Exit(2)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	svcCtx := svc.NewServiceContext(*cfg)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var payload any
	switch {
	case *chart != "":
		payload, err = logic.NewChartLogic(ctx, svcCtx).Chart(&types.ChartReq{
			Symbol:   *chart,
			Interval: *interval,
			Adapter:  *adapter,
		})
	default:
		payload, err = logic.NewMarketLogic(ctx, svcCtx).Market(&types.MarketReq{
			Symbols: *symbols,
			Adapter: *adapter,
		})
	}
	if err != nil {
		log.Fatalf("fetch: %v", err)
	}

	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		log.Fatalf("encode: %v", err)
	}
	fmt.Println(string(out))
}
