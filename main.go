// Package main はプリペイド課金Acct Server（RADIUS Accounting）のエントリーポイント。
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/oyaguma3/prepaid-acct-server/internal/acct"
	"github.com/oyaguma3/prepaid-acct-server/internal/config"
	"github.com/oyaguma3/prepaid-acct-server/internal/event"
	"github.com/oyaguma3/prepaid-acct-server/internal/fanout"
	"github.com/oyaguma3/prepaid-acct-server/internal/intake"
	"github.com/oyaguma3/prepaid-acct-server/internal/radius"
	"github.com/oyaguma3/prepaid-acct-server/internal/repository"
	"github.com/oyaguma3/prepaid-acct-server/internal/server"
	"github.com/oyaguma3/prepaid-acct-server/internal/store"
	"github.com/oyaguma3/prepaid-acct-server/pkg/logging"
	"golang.org/x/sync/errgroup"
	layehradius "layeh.com/radius"
)

func main() {
	// 1. 環境変数読み込み
	cfg, err := config.Load()
	if err != nil {
		slog.Error("設定読み込み失敗", "error", err)
		os.Exit(1)
	}

	// 2. ロガー初期化（JSON形式、INFO以上）
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})).With("app", "prepaid-acct-server")
	slog.SetDefault(logger)

	slog.Info("prepaid-acct-server起動開始",
		"listen_addr", cfg.ListenAddr,
		"disconnect_mode", cfg.DisconnectMode,
		"stream_intake", cfg.StreamIntakeEnabled,
	)

	if err := run(cfg); err != nil {
		slog.Error("異常終了", "event_id", "SYS_ERR", "error", err)
		os.Exit(1)
	}
	slog.Info("prepaid-acct-server停止完了")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// 3. Valkeyクライアント初期化
	valkeyClient, err := store.NewValkeyClient(cfg)
	if err != nil {
		slog.Error("Valkey接続失敗",
			"event_id", "VALKEY_CONN_ERR",
			"error", err,
		)
		return err
	}
	defer valkeyClient.Close()
	slog.Info("Valkey接続完了", "addr", cfg.ValkeyAddr())

	// 4. バケットDB接続
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("バケットDB接続失敗",
			"event_id", "DB_CONN_ERR",
			"error", err,
		)
		return err
	}
	defer pool.Close()

	// 5. Store層生成
	clientStore := store.NewClientStore(valkeyClient)
	stateStore := store.NewStateStore(valkeyClient)
	markerStore := store.NewStopMarkerStore(valkeyClient)

	// 6. イベント発行先の組み立て
	masker := logging.NewMasker(cfg.LogMaskUserName)
	producer := newProducer(cfg, valkeyClient, clientStore)

	// 7. Acct層生成
	processor := acct.NewProcessor(
		cfg,
		stateStore,
		acct.NewDuplicateDetector(markerStore),
		repository.New(pool),
		fanout.NewDisconnector(producer, masker),
		producer,
		masker,
	)

	// 8. RADIUSサーバー
	secretSource := server.NewSecretSource(clientStore, cfg.RadiusSecret)
	srv := server.NewServer(cfg.ListenAddr, server.NewHandler(processor), secretSource)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("RADIUSサーバー起動", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, layehradius.ErrServerShutdown) {
			return err
		}
		return nil
	})

	// 9. Stream受信（有効時のみ）
	if cfg.StreamIntakeEnabled {
		consumer := intake.NewConsumer(valkeyClient.Client(), processor, cfg)
		g.Go(func() error {
			return consumer.Run(gctx)
		})
	}

	// 10. シグナル待機 → Graceful Shutdown
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("シャットダウン開始")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("シャットダウンエラー", "error", err)
		}
		return nil
	})

	err = g.Wait()

	// 送信中のCDRを待つ
	processor.Wait()
	return err
}

// newProducer はDB更新・CDR・切断指示の送信先を設定に従って組み立てる。
func newProducer(cfg *config.Config, vc *store.ValkeyClient, clients store.ClientStore) *event.Router {
	stream := event.NewStreamProducer(vc.Client())

	var base event.Producer = stream
	if cfg.CDRHTTPURL != "" {
		base = event.NewTee(stream, event.NewHTTPForwarder(cfg.CDRHTTPURL))
		slog.Info("CDR HTTP転送有効", "url", cfg.CDRHTTPURL)
	}

	var sender event.DisconnectSender = stream
	if cfg.DisconnectMode == config.DisconnectModeRadius {
		sender = radius.NewDisconnectClient(clients, cfg.RadiusSecret, cfg.CoAPort)
	}
	return event.NewRouter(base, sender)
}
