package app

import (
	"context"
	"time"

	"arenda/pkg/rentobj"
	"arenda/pkg/report"
	"arenda/pkg/telegram"

	"github.com/labstack/echo/v4"
	"github.com/vmkteam/appkit"
	"github.com/vmkteam/embedlog"
)

// sessionTTL bounds how long an idle conversation snapshot survives in
// Redis. In-memory sessions live until restart.
const sessionTTL = 24 * time.Hour

type Config struct {
	Server struct {
		Host    string
		Port    int
		IsDevel bool
	}
	Telegram struct {
		Token string
		Debug bool
	}
	Backend struct {
		URI string
	}
	Redis struct {
		Addr string
	}
	Report struct {
		Dir string
	}
}

type App struct {
	embedlog.Logger
	appName  string
	cfg      Config
	echo     *echo.Echo
	backend  *rentobj.Client
	sessions telegram.SessionStore
	redis    *telegram.RedisStore
	tgBot    *telegram.Bot
}

func New(ctx context.Context, appName string, sl embedlog.Logger, cfg Config) (*App, error) {
	a := &App{
		appName: appName,
		cfg:     cfg,
		echo:    appkit.NewEcho(),
		Logger:  sl,
	}

	a.backend = rentobj.NewClient(cfg.Backend.URI, sl)

	if cfg.Redis.Addr != "" {
		rs, err := telegram.NewRedisStore(ctx, cfg.Redis.Addr, sessionTTL)
		if err != nil {
			return nil, err
		}
		a.redis = rs
		a.sessions = rs
	} else {
		a.sessions = telegram.NewMemoryStore()
	}

	if cfg.Telegram.Token != "" {
		menu := telegram.NewMenu(a.backend, a.sessions, report.NewXLSXWriter(cfg.Report.Dir), sl)

		tgBot, err := telegram.New(ctx, telegram.Config{
			Token: cfg.Telegram.Token,
			Debug: cfg.Telegram.Debug,
		}, menu, sl)
		if err != nil {
			return nil, err
		}
		a.tgBot = tgBot
	}

	return a, nil
}

// Run is a function that runs application.
func (a *App) Run(ctx context.Context) error {
	a.registerMetrics()
	a.registerDebugHandlers()
	a.registerMetadata()

	// Start Telegram bot if configured
	if a.tgBot != nil {
		go func() {
			if err := a.tgBot.Start(ctx); err != nil {
				a.Error(ctx, "telegram bot error", "err", err)
			}
		}()
	}

	return a.runHTTPServer(ctx, a.cfg.Server.Host, a.cfg.Server.Port)
}

// Shutdown is a function that gracefully stops HTTP server.
func (a *App) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop Telegram bot
	if a.tgBot != nil {
		a.tgBot.Stop(ctx)
	}

	if a.redis != nil {
		_ = a.redis.Close()
	}

	return a.echo.Shutdown(ctx)
}

// registerMetadata is a function that registers meta info from service.
func (a *App) registerMetadata() {
	services := []appkit.ServiceMetadata{}
	if a.tgBot != nil {
		// Telegram bot runs asynchronously in a separate goroutine
		services = append(services, appkit.NewServiceMetadata("telegram-bot", appkit.MetadataServiceTypeAsync))
	}

	opts := appkit.MetadataOpts{
		HasPublicAPI:  false, // No public API, only Telegram bot
		HasPrivateAPI: false,
		Services:      services,
	}

	md := appkit.NewMetadataManager(opts)
	md.RegisterMetrics()

	a.echo.GET("/debug/metadata", md.Handler)
}
