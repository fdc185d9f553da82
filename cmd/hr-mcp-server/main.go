package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fatimanet/hr-mcp-server/configs"
	"github.com/fatimanet/hr-mcp-server/internal/app"
	"github.com/fatimanet/hr-mcp-server/internal/audit"
	"github.com/fatimanet/hr-mcp-server/internal/cache"
	"github.com/fatimanet/hr-mcp-server/internal/config"
	"github.com/fatimanet/hr-mcp-server/internal/dsl"
	"github.com/fatimanet/hr-mcp-server/internal/log"
	"github.com/fatimanet/hr-mcp-server/internal/market"
	"github.com/fatimanet/hr-mcp-server/internal/protocol"
	"github.com/fatimanet/hr-mcp-server/internal/ratelimit"
	"github.com/fatimanet/hr-mcp-server/internal/render"
	"github.com/fatimanet/hr-mcp-server/internal/runtime"
	"github.com/fatimanet/hr-mcp-server/internal/templates"
	"github.com/fatimanet/hr-mcp-server/internal/watch"
)

func main() {
	embeddedConfig := flag.String("embedded-config", "", "Use embedded config from configs/ (filename)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := log.New(cfg.LogLevel)

	dslCfg, err := loadDSL(*embeddedConfig, cfg.ConfigPath)
	if err != nil {
		logger.Error("load config failed", "error", err)
		os.Exit(1)
	}

	templateBundle, err := templates.Load(cfg.Lang)
	if err != nil {
		logger.Error("load templates failed", "error", err)
		os.Exit(1)
	}

	store := market.NewStore(companiesFrom(dslCfg))

	var guard *ratelimit.Guard
	if dslCfg.Server.RateLimit.Enabled {
		guard = ratelimit.New(ratelimit.Policy{
			PerMinute: dslCfg.Server.RateLimit.PerMinute,
			Burst:     dslCfg.Server.RateLimit.Burst,
			MaxTotal:  dslCfg.Server.RateLimit.MaxTotal,
		})
	}

	var quotes *cache.Cache[protocol.StockQuote]
	if dslCfg.Server.QuoteCache.Enabled {
		ttl, err := time.ParseDuration(dslCfg.Server.QuoteCache.TTL)
		if err != nil {
			logger.Error("invalid quote cache ttl", "error", err)
			os.Exit(1)
		}
		quotes = cache.New[protocol.StockQuote](ttl, dslCfg.Server.QuoteCache.MaxEntries)
	}

	auditLog := audit.New(logger)
	builder := runtime.Builder{
		Logger:    logger,
		Audit:     auditLog,
		Templates: templateBundle,
		Market:    store,
		Limits:    guard,
		Quotes:    quotes,
	}
	server, err := builder.Build(dslCfg)
	if err != nil {
		logger.Error("build server failed", "error", err)
		os.Exit(1)
	}

	baseCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP)
	go func() {
		sig := <-sigCh
		logger.Warn("shutdown requested", "signal", sig.String())
		cancel()
	}()

	if dslCfg.Server.WatchConfig && *embeddedConfig == "" {
		watcher := watch.Watcher{
			Path:   cfg.ConfigPath,
			Logger: logger,
			Audit:  auditLog,
			Apply: func() error {
				reloaded, err := loadDSL("", cfg.ConfigPath)
				if err != nil {
					return err
				}
				store.Replace(companiesFrom(reloaded))
				return nil
			},
		}
		go func() {
			if err := watcher.Run(baseCtx); err != nil {
				logger.Warn("config watcher stopped", "error", err)
			}
		}()
	}

	switch dslCfg.Server.Transport {
	case "stdio":
		if err := server.Run(baseCtx, &mcp.StdioTransport{}); err != nil {
			logger.Error("runtime error", "error", err)
			os.Exit(1)
		}
	default:
		if err := runHTTP(baseCtx, cfg, dslCfg, server, logger); err != nil {
			logger.Error("runtime error", "error", err)
			os.Exit(1)
		}
	}
}

func loadDSL(embeddedName, path string) (*dsl.Config, error) {
	var rendered []byte
	var err error
	if embeddedName != "" {
		raw, loadErr := configs.Load(embeddedName)
		if loadErr != nil {
			return nil, loadErr
		}
		rendered, err = render.RenderBytes(embeddedName, raw)
	} else {
		rendered, err = render.RenderFile(path)
	}
	if err != nil {
		return nil, err
	}
	return dsl.Load(rendered)
}

func companiesFrom(cfg *dsl.Config) []protocol.Company {
	if len(cfg.Companies) == 0 {
		return market.DefaultCompanies()
	}
	return market.FromConfig(cfg.Companies)
}

func runHTTP(ctx context.Context, envCfg config.Config, dslCfg *dsl.Config, server *mcp.Server, logger *slog.Logger) error {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{
		Stateless: dslCfg.Server.HTTP.Stateless,
	})

	application, err := app.New(ctx, dslCfg.Server, handler, logger, envCfg.ShutdownTimeout)
	if err != nil {
		return err
	}

	return application.Run(ctx)
}
