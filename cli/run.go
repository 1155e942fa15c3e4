package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"handin/assembler"
	"handin/bot"
	"handin/config"
	"handin/db"
	"handin/flow"
	"handin/grpc/service"
	"handin/handler"
	"handin/messages"
	"handin/review"
	"handin/store"

	"github.com/spf13/cobra"
	"github.com/zeromicro/go-zero/core/logx"
)

const (
	queueWorkers = 8
	queueBacklog = 64
)

// NewRunCommand starts the bot and blocks until SIGINT or SIGTERM.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Connect to Discord and start accepting submissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, rootOpts)
		},
	}
}

func run(ctx context.Context, rootOpts *RootOptions) error {
	if err := config.LoadConfig(rootOpts.ConfigDir); err != nil {
		return fmt.Errorf("加载配置文件时出错: %w", err)
	}
	cfg := config.Cfg
	if err := config.Validate(cfg); err != nil {
		return err
	}
	logx.MustSetup(cfg.Log)
	defer logx.Close()

	if !config.ReviewChannelConfigured(cfg.Review) {
		logx.Infow("review channel not configured, submissions will be held")
	}

	var (
		storeOpts []store.Option
		dispOpts  []handler.Option
	)
	if cfg.Storage.Path != "" {
		conn, err := db.Open(cfg.Storage.Path)
		if err != nil {
			return err
		}
		defer conn.Close()
		storeOpts = append(storeOpts, store.WithSequence(db.NewCounter(conn)))
		dispOpts = append(dispOpts, handler.WithArchive(db.NewArchive(conn)))
	}

	st := store.NewMemory(storeOpts...)
	msgs := messages.Default()
	protocol := review.NewProtocol(st, cfg.Review.ReviewerID, msgs)
	engine := flow.New(st, assembler.New(st, msgs, cfg.Review, protocol), msgs)

	session, err := bot.NewSession(cfg.Token)
	if err != nil {
		return err
	}
	disp := handler.NewDispatcher(engine, protocol, msgs, bot.NewSender(session), dispOpts...)
	queue := handler.NewQueue(queueWorkers, queueBacklog)
	defer queue.Close()

	var health *service.HealthServer
	if cfg.Health.Addr != "" {
		health, err = service.NewHealthServer(cfg.Health.Addr)
		if err != nil {
			return err
		}
		go func() {
			if err := health.Serve(ctx); err != nil {
				logx.Errorw("health server stopped", logx.Field("err", err))
			}
		}()
	}

	b := bot.New(session, cfg, disp, queue)
	if err := b.Open(); err != nil {
		return err
	}
	if health != nil {
		health.SetServing()
	}

	<-ctx.Done()
	logx.Infow("shutting down")
	if health != nil {
		health.SetNotServing()
	}
	return b.Close()
}
