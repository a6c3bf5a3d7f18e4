package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"libreserve/cmd/bootstrap"
	"libreserve/internal/pkg/config"
	"libreserve/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

func init() {
	// 設定ミスでもデバッグ情報を公開しない（フェイルセーフ）
	gin.SetMode(gin.ReleaseMode)

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}
}

// rebuildAvailability replays confirmed reservations into the in-memory
// availability index so slot decisions survive restarts.
func rebuildAvailability(engine commands.SchedulingEngine, logger *slog.Logger) error {
	if err := engine.RebuildIndex(context.Background()); err != nil {
		logger.Error("空き状況インデックスの再構築に失敗しました", "error", err)
		return err
	}
	logger.Info("空き状況インデックスを再構築しました")
	return nil
}

// startJanitor periodically sweeps past-end confirmed reservations into
// the Completed state.
func startJanitor(lc fx.Lifecycle, engine commands.SchedulingEngine, cfg config.Config, logger *slog.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				ticker := time.NewTicker(cfg.Booking.JanitorInterval)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						n, err := engine.CompletePast(ctx)
						if err != nil {
							logger.Error("期限切れ予約の完了処理に失敗しました", "error", err)
							continue
						}
						if n > 0 {
							logger.Info("期限切れ予約を完了にしました", "count", n)
						}
					}
				}
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			return nil
		},
	})
}

func startServer(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			gin.EnableJsonDecoderDisallowUnknownFields()
			listenAddr := ":" + cfg.Server.Port
			logger.Info("🚀 サーバーを起動します", "address", listenAddr, "mode", gin.Mode())
			go func() {
				if err := engine.Run(listenAddr); err != nil {
					logger.Error("サーバーの起動に失敗しました", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			logger.Info("🛑 サーバーを停止します")
			return nil
		},
	})
}

func main() {
	app := fx.New(
		bootstrap.Module,
		fx.Provide(
			func() *gin.Engine {
				return gin.New()
			},
		),
		fx.Invoke(
			rebuildAvailability,
			startJanitor,
			startServer,
		),
	)

	if err := app.Start(context.Background()); err != nil {
		slog.Error("アプリケーションの起動に失敗しました", "error", err)
		os.Exit(1)
	}

	<-app.Done()

	if err := app.Stop(context.Background()); err != nil {
		slog.Error("アプリケーションの停止に失敗しました", "error", err)
	}

	slog.Info("アプリケーションが正常に停止しました")
}
