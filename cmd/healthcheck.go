package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gateway/internal/config"
	"gateway/internal/deploy"
	"gateway/pkg/logger"
)

// healthcheckCommand constructs the 'healthcheck' subcommand that verifies a
// deployed gateway answers its readiness check.
func healthcheckCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "healthcheck",
		Short: "Checks that /health/ready answers 200 {\"status\":\"ok\"}",
		RunE: func(cmd *cobra.Command, args []string) error {
			url, _ := cmd.Flags().GetString("url")
			timeout, _ := cmd.Flags().GetDuration("timeout")
			if url == "" {
				url = deploy.ReadyURL(cfg.HTTP.Addr)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			if err := deploy.CheckReady(ctx, &http.Client{Timeout: timeout}, url); err != nil {
				logger.Error(ctx, "service is not ready", zap.String("url", url), zap.Error(err))

				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "ok") //nolint: forbidigo

			return nil
		},
	}

	cmd.Flags().String("url", "", "Readiness URL (defaults to HTTP_ADDR + /health/ready)")
	cmd.Flags().Duration("timeout", 5*time.Second, "Request timeout")

	return cmd
}
