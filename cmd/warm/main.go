package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"marketdash-api/internal/cli"
	"marketdash-api/internal/config"
	"marketdash-api/internal/logic"
	"marketdash-api/internal/svc"
	"marketdash-api/internal/types"
)

const (
	quoteInterval   = 1 * time.Minute  // Quote warming interval
	moversInterval  = 2 * time.Minute  // Top movers warming interval
	indicesInterval = 5 * time.Minute  // Indices warming interval
	apiTimeout      = 30 * time.Second // Timeout for one warming pass
	shutdownTimeout = 10 * time.Second // Grace period for shutdown
)

// warmedSymbols keeps the dashboard's headline quotes hot so first page
// loads never pay the provider round trip.
var warmedSymbols = "BTC,ETH,SOL,AAPL,MSFT,TSLA"

var configFile = flag.String("f", "etc/marketdash.yaml", "the config file")

func main() {
	flag.Parse()
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	log.Println("[main] Starting cache warmer...")

	appCfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("[main] Failed to load app config: %v", err)
	}

	log.Printf("[main] Configuration loaded:")
	for _, line := range cli.ConfigSummaryLines(appCfg) {
		log.Printf("  - %s", line)
	}
	if appCfg.Redis.Host == "" {
		log.Println("[main] Warning: Redis not configured, warming only exercises providers")
	}

	svcCtx := svc.NewServiceContext(*appCfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		runWarmer(ctx, "quotes", quoteInterval, func(ctx context.Context) error {
			_, err := logic.NewMarketLogic(ctx, svcCtx).Market(&types.MarketReq{Symbols: warmedSymbols})
			return err
		})
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		runWarmer(ctx, "top_movers", moversInterval, func(ctx context.Context) error {
			_, err := logic.NewTopMoversLogic(ctx, svcCtx).TopMovers()
			return err
		})
	}()

	if appCfg.Keys.FRED != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runWarmer(ctx, "indices", indicesInterval, func(ctx context.Context) error {
				_, err := logic.NewIndicesLogic(ctx, svcCtx).Indices()
				return err
			})
		}()
	}

	log.Println("[main] Cache warmer started. Press Ctrl+C to stop.")

	<-ctx.Done()
	log.Println("[main] Shutdown signal received, stopping tasks...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("[main] All tasks stopped cleanly")
	case <-shutdownCtx.Done():
		log.Println("[main] Shutdown timeout exceeded, forcing exit")
	}

	log.Println("[main] Cache warmer stopped")
}

// runWarmer invokes warm on a schedule until the context is cancelled. The
// first pass runs immediately on startup.
func runWarmer(ctx context.Context, name string, interval time.Duration, warm func(context.Context) error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	warmOnce(ctx, name, warm)

	for {
		select {
		case <-ctx.Done():
			log.Printf("[%s] Stopping warmer", name)
			return
		case <-ticker.C:
			warmOnce(ctx, name, warm)
		}
	}
}

func warmOnce(parentCtx context.Context, name string, warm func(context.Context) error) {
	if parentCtx.Err() != nil {
		return
	}

	ctx, cancel := context.WithTimeout(parentCtx, apiTimeout)
	defer cancel()

	start := time.Now()
	err := warm(ctx)
	elapsed := time.Since(start)

	if err != nil {
		log.Printf("[%s] [ERROR] %v, took %dms", name, err, elapsed.Milliseconds())
		return
	}
	log.Printf("[%s] [OK] warmed, took %dms", name, elapsed.Milliseconds())
}
