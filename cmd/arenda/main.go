package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"arenda/pkg/app"

	"github.com/vmkteam/embedlog"
)

const appName = "arenda"

var (
	flHost      = flag.String("host", "0.0.0.0", "http listen host")
	flPort      = flag.Int("port", 8075, "http listen port")
	flDevel     = flag.Bool("devel", false, "enable devel mode")
	flToken     = flag.String("token", "", "telegram bot token (falls back to TELEGRAM_TOKEN env)")
	flTgDebug   = flag.Bool("tg-debug", false, "enable telegram api debug logging")
	flBackend   = flag.String("backend", "http://localhost:8000", "storage backend base url")
	flRedis     = flag.String("redis", "", "redis address for sessions, empty for in-memory")
	flReportDir = flag.String("report-dir", "", "directory for generated reports, empty for os temp dir")
	flVerbose   = flag.Bool("verbose", false, "enable verbose logging")
	flJSON      = flag.Bool("json", false, "enable json logging")
)

func main() {
	flag.Parse()

	sl := embedlog.NewLogger(*flVerbose, *flJSON)
	ctx := context.Background()

	cfg := app.Config{}
	cfg.Server.Host = *flHost
	cfg.Server.Port = *flPort
	cfg.Server.IsDevel = *flDevel
	cfg.Telegram.Token = *flToken
	cfg.Telegram.Debug = *flTgDebug
	cfg.Backend.URI = *flBackend
	cfg.Redis.Addr = *flRedis
	cfg.Report.Dir = *flReportDir

	if cfg.Telegram.Token == "" {
		cfg.Telegram.Token = os.Getenv("TELEGRAM_TOKEN")
	}

	a, err := app.New(ctx, appName, sl, cfg)
	if err != nil {
		log.Fatal(err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		sl.Print(ctx, "shutting down", "app", appName)
		if err := a.Shutdown(5 * time.Second); err != nil {
			sl.Error(ctx, "shutdown failed", "err", err)
		}
	}()

	if err := a.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
