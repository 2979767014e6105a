package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gateway/internal/config"
	"gateway/internal/deploy"
	"gateway/pkg/logger"
)

// unitCommand constructs the 'unit' subcommand that renders the systemd unit,
// the environment file and the firewall steps for the configured deployment.
func unitCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unit",
		Short: "Renders the systemd unit, environment file and firewall commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			withSecrets, _ := cmd.Flags().GetBool("with-secrets")

			opts := deploy.NewOptions(cfg)
			unit, err := deploy.Unit(opts)
			if err != nil {
				return err
			}
			env, err := deploy.EnvFile(cfg, withSecrets)
			if err != nil {
				return err
			}
			port, err := deploy.Port(cfg.HTTP.Addr)
			if err != nil {
				return err
			}
			steps := append(deploy.FirewallCommands(port), deploy.InstallCommands(opts)...)
			script := "#!/bin/sh\nset -e\n" + strings.Join(steps, "\n") + "\n"

			if out == "" {
				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "# %s\n%s\n", opts.UnitFileName(), unit)
				fmt.Fprintf(w, "# %s\n%s\n", filepath.Base(opts.EnvFile), env)
				fmt.Fprintf(w, "# firewall and install steps\n%s", strings.Join(steps, "\n")+"\n")

				return nil
			}

			if err := os.MkdirAll(out, 0o755); err != nil {
				return fmt.Errorf("could not create %s: %w", out, err)
			}
			files := []struct {
				name string
				body string
				perm os.FileMode
			}{
				{name: opts.UnitFileName(), body: unit, perm: 0o644},
				{name: "env", body: env, perm: 0o600},
				{name: "install.sh", body: script, perm: 0o755},
			}
			for _, f := range files {
				path := filepath.Join(out, f.name)
				if err := os.WriteFile(path, []byte(f.body), f.perm); err != nil {
					return fmt.Errorf("could not write %s: %w", path, err)
				}
				logger.Info(cmd.Context(), "rendered deploy file", zap.String("path", path))
			}

			return nil
		},
	}

	cmd.Flags().String("out", "", "Directory to write the rendered files to (stdout when empty)")
	cmd.Flags().Bool("with-secrets", false, "Write the Azure OpenAI API key instead of a placeholder")

	return cmd
}
