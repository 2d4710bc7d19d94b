package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/telex-integrations/mention-notifier/pkg/cli/config"
	controller "github.com/telex-integrations/mention-notifier/pkg/controller/http"
	"github.com/telex-integrations/mention-notifier/pkg/domain/interfaces"
	"github.com/telex-integrations/mention-notifier/pkg/domain/types"
	"github.com/telex-integrations/mention-notifier/pkg/service/mention"
	"github.com/telex-integrations/mention-notifier/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg    config.Server
		mailerCfg    config.Mailer
		directoryCfg config.Directory
		resolverCfg  config.Resolver
	)

	flags := joinFlags(
		serverCfg.Flags(),
		mailerCfg.Flags(),
		directoryCfg.Flags(),
		resolverCfg.Flags(),
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start HTTP server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if err := resolverCfg.Validate(); err != nil {
				return err
			}
			if err := mailerCfg.Validate(); err != nil {
				return err
			}

			logger.Info("Starting mention-notifier server",
				slog.Any("server", serverCfg),
				slog.Any("mailer", mailerCfg),
				slog.Any("directory", directoryCfg),
				slog.Any("resolver", resolverCfg),
			)

			transporter := mailerCfg.Configure()

			var dir interfaces.Directory
			if resolverCfg.ResolveMode() == usecase.ModeDirectory {
				client := directoryCfg.Configure()
				if client == nil {
					return goerr.New("directory mode requires TELEX_DIRECTORY_API_URL")
				}
				dir = client
			}

			relayUC := usecase.NewRelay(usecase.Config{
				Mode:           resolverCfg.ResolveMode(),
				Pattern:        resolverCfg.MentionPattern(),
				Sender:         types.EmailAddress(mailerCfg.Sender),
				RequireMention: resolverCfg.RequireMention,
			}, dir, transporter)

			// The GET self-test route always runs the direct pipeline
			// over a sample message, independent of the deployed mode.
			selfTestUC := usecase.NewRelay(usecase.Config{
				Mode:    usecase.ModeDirect,
				Pattern: mention.PatternEmail,
				Sender:  types.EmailAddress(mailerCfg.Sender),
			}, nil, transporter)

			server := controller.NewServer(ctx, serverCfg.Addr, serverCfg.BaseURL, relayUC, selfTestUC)

			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
