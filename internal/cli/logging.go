package cli

import (
	"fmt"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"marketdash-api/internal/config"
	"marketdash-api/pkg/confkit"
)

// ConfigSummaryLines returns human readable lines describing the loaded app config.
func ConfigSummaryLines(cfg *config.Config) []string {
	if cfg == nil {
		return []string{"Configuration: <nil>"}
	}

	lines := []string{
		fmt.Sprintf("Environment: %s", cfg.Env),
		fmt.Sprintf("Postgres: %s", presence(cfg.Postgres.DSN != "")),
		fmt.Sprintf("Redis: %s", presence(strings.TrimSpace(cfg.Redis.Host) != "")),
		fmt.Sprintf("TTL (short/medium/long): %ds / %ds / %ds", cfg.TTL.Short, cfg.TTL.Medium, cfg.TTL.Long),
		fmt.Sprintf("Provider keys: %s", keySummary(cfg.Keys)),
		sectionLine("Insight config", cfg.Insight),
	}

	return lines
}

// LogConfigSummary emits the configuration summary using logx.
func LogConfigSummary(cfg *config.Config) {
	lines := ConfigSummaryLines(cfg)
	if len(lines) == 0 {
		return
	}
	logx.Info("configuration summary")
	for _, line := range lines {
		logx.Infof("config • %s", line)
	}
}

func presence(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}

// keySummary names which provider keys are present without echoing values.
func keySummary(keys config.ProviderKeys) string {
	present := make([]string, 0, 7)
	for _, key := range []struct {
		name  string
		value string
	}{
		{"twelvedata", keys.TwelveData},
		{"polygon", keys.Polygon},
		{"finnhub", keys.Finnhub},
		{"alphavantage", keys.AlphaVantage},
		{"fred", keys.FRED},
		{"tradingeconomics", keys.TradingEconomics},
		{"openai", keys.OpenAI},
	} {
		if strings.TrimSpace(key.value) != "" {
			present = append(present, key.name)
		}
	}
	if len(present) == 0 {
		return "none"
	}
	return strings.Join(present, ", ")
}

func sectionLine[T any](name string, section confkit.Section[T]) string {
	switch {
	case strings.TrimSpace(section.File) != "":
		return fmt.Sprintf("%s: %s", name, section.File)
	case section.Value != nil:
		return fmt.Sprintf("%s: inline", name)
	default:
		return fmt.Sprintf("%s: not configured", name)
	}
}
