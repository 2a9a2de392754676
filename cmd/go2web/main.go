package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"go2web/internal/config"
	"go2web/internal/interface/connection"
	"go2web/internal/interface/handler"
	"go2web/internal/interface/repository/access"
	"go2web/internal/interface/repository/cache"
	"go2web/internal/interface/repository/logger"
	"go2web/internal/interface/repository/metrics"
	"go2web/internal/usecase"
)

const (
	exitOK          = 0
	exitFailure     = 1
	exitUsage       = 2
	exitInterrupted = 130
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(argv []string, stdout, stderr io.Writer) int {
	// コンフィグの解析
	fs, args := config.NewFlagSet("go2web")
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(stderr, fs) }
	if err := fs.Parse(argv); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if args.Help {
		usage(stdout, fs)
		return exitOK
	}
	if args.Search != "" && fs.NArg() > 0 {
		args.Search = strings.Join(append([]string{args.Search}, fs.Args()...), " ")
	}
	if args.URL == "" && args.Search == "" && !args.ClearCache && !args.Stats {
		usage(stderr, fs)
		return exitUsage
	}
	if args.URL != "" && args.Search != "" {
		fmt.Fprintln(stderr, "go2web: --url and --search cannot be used together")
		return exitUsage
	}

	cfg, err := config.Load(fs, args)
	if err != nil {
		fmt.Fprintf(stderr, "go2web: %v\n", err)
		return exitUsage
	}

	// ロガーの初期化
	level := logrus.InfoLevel
	if cfg.Debug {
		level = logrus.DebugLevel
	}
	loggerRepo, err := logger.New(cfg.LogDir, "go2web.log", logger.DefaultRotationConfig(), level)
	if err != nil {
		fmt.Fprintf(stderr, "go2web: failed to initialize logger: %v\n", err)
		return exitFailure
	}
	defer loggerRepo.Close()

	// アクセス制御の初期化
	accessController, err := access.New(cfg.BlocklistFile, loggerRepo)
	if err != nil {
		loggerRepo.Error("Failed to load blocklist", err, map[string]interface{}{"file": cfg.BlocklistFile})
		fmt.Fprintf(stderr, "go2web: failed to load blocklist %s: %v\n", cfg.BlocklistFile, err)
		return exitFailure
	}

	// キャッシュとメトリクスの初期化
	cacheManager := cache.New(cfg.CacheDir)
	metricsCollector := metrics.New(cfg.StatsFile)
	metricsUseCase := usecase.NewMetricsUseCase(metricsCollector, loggerRepo)

	// フェッチのユースケース作成
	fetchUseCase := usecase.NewFetchUseCase(
		connection.NewManager(cfg.DialTimeout, cfg.ReadTimeout), // domain.Dialer
		cacheManager,     // domain.CacheManager
		accessController, // domain.AccessController
		metricsCollector, // domain.MetricsCollector
		loggerRepo,       // domain.Logger
		usecase.FetchConfig{
			UserAgent:    cfg.UserAgent,
			MaxRedirects: cfg.MaxRedirects,
			StrictStatus: cfg.StrictStatus,
		},
	)

	// ハンドラーの作成
	fetchHandler := handler.NewFetchHandler(fetchUseCase, loggerRepo, stdout)
	searchHandler := handler.NewSearchHandler(&cfg.Search, fetchHandler, loggerRepo, stdout)
	metricsHandler := handler.NewMetricsHandler(metricsUseCase, cacheManager, loggerRepo, stdout)

	// Ctrl-C で処理中の接続を閉じる
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loggerRepo.Debug("Starting", map[string]interface{}{
		"cache_dir": cfg.CacheDir,
		"url":       args.URL,
		"search":    args.Search,
	})

	err = dispatch(ctx, args, fetchHandler, searchHandler, metricsHandler)

	if flushErr := metricsUseCase.Flush(); flushErr != nil {
		fmt.Fprintf(stderr, "go2web: %v\n", flushErr)
	}

	if err != nil {
		fmt.Fprintf(stderr, "go2web: %s\n", handler.Describe(err))
		if errors.Is(err, context.Canceled) {
			return exitInterrupted
		}
		return exitFailure
	}
	return exitOK
}

func dispatch(
	ctx context.Context,
	args *config.CliArgs,
	fetchHandler *handler.FetchHandler,
	searchHandler *handler.SearchHandler,
	metricsHandler *handler.MetricsHandler,
) error {
	if args.ClearCache {
		if err := metricsHandler.HandleClearCache(); err != nil {
			return err
		}
	}

	switch {
	case args.URL != "":
		if err := fetchHandler.HandleURL(ctx, args.URL); err != nil {
			return err
		}
	case args.Search != "":
		if err := searchHandler.HandleSearch(ctx, args.Search, args.Open); err != nil {
			return err
		}
	}

	if args.Stats {
		return metricsHandler.HandleStats(args.StatsFmt)
	}
	return nil
}

func usage(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintf(w, `go2web - fetch web pages and search the web from the terminal

Usage:
  go2web -u <URL>           fetch the URL and print a readable response
  go2web -s <search-term>   search the web and print the top results
  go2web -h                 show this help

Options:
%s`, fs.FlagUsages())
}
