package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nao1215/phoneinv/internal/config"
	"github.com/nao1215/phoneinv/internal/export"
	"github.com/nao1215/phoneinv/internal/extract"
	plog "github.com/nao1215/phoneinv/internal/log"
	"github.com/nao1215/phoneinv/internal/probe"
	"github.com/nao1215/phoneinv/internal/scanner"
	"github.com/nao1215/phoneinv/internal/subnet"
	"github.com/spf13/cobra"
)

// addScanFlags registers the scan flags on the root command.
func addScanFlags(cmd *cobra.Command) {
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Per-host timeout covering connect, TLS handshake and response")
	cmd.Flags().IntP("workers", "w", config.DefaultWorkers,
		"Number of hosts probed concurrently (1 scans sequentially)")
	cmd.Flags().IntP("port", "p", config.DefaultPort,
		"HTTPS port of the phone web interface")
	cmd.Flags().Bool("insecure", true,
		"Skip TLS certificate verification (phones use self-signed certificates)")
	cmd.Flags().String("proxy", "",
		"Route probes through a SOCKS5 proxy (e.g. socks5://127.0.0.1:1080)")

	cmd.Flags().StringP("layout", "l", config.DefaultLayout,
		"Page layout: centered-div, table-index or auto")
	cmd.Flags().Int("table-index", 0,
		"Zero-based table index for --layout table-index")
	cmd.Flags().String("user-agent", config.DefaultUserAgent,
		"User-Agent header sent to each host")
	cmd.Flags().Int64("max-body-size", config.DefaultMaxBodySize,
		"Maximum number of bytes read from a status page")
	cmd.Flags().Int("max-hosts", config.DefaultMaxHosts,
		"Refuse subnets with more hosts than this (0 disables the check)")

	cmd.Flags().StringP("output", "o", "",
		"Inventory file (default: "+config.DefaultOutputName+" next to the executable)")
	cmd.Flags().StringP("format", "f", "",
		"Inventory format: xlsx, csv, json, md or sqlite (default: from the file extension)")

	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .phoneinv in current or home directory)")
}

// runScanCmd executes a scan of the subnet given as the only argument.
func runScanCmd(cmd *cobra.Command, args []string) error {
	sn, err := subnet.Parse(args[0])
	if err != nil {
		return &usageError{err: err}
	}

	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger, err := setupLogger(cmd, cfg.Verbose)
	if err != nil {
		return err
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Warn("received shutdown signal, writing partial inventory")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runScan(ctx, cfg, sn, cmd.OutOrStdout(), logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates the redacting logger on the command's stderr.
func setupLogger(cmd *cobra.Command, verbose bool) (*slog.Logger, error) {
	format, err := cmd.Flags().GetString("log-format")
	if err != nil {
		format = "text"
	}
	return plog.New(cmd.ErrOrStderr(), format, verbose)
}

// buildConfig merges defaults, the configuration file and explicitly set
// flags, in increasing order of precedence.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Subnet = args[0]
	cfg.Verbose = getVerboseFlag(cmd)

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// An explicit path that does not exist is an error. A missing file in
	// the default locations is not.
	if configPath := config.FindConfigFile(cfg.ConfigFilePath); configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.Apply(file.ProfileFor(cfg.Subnet))
	}

	flags := cmd.Flags()
	if flags.Changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("workers") {
		if cfg.Workers, err = flags.GetInt("workers"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("port") {
		if cfg.Port, err = flags.GetInt("port"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("insecure") {
		if cfg.Insecure, err = flags.GetBool("insecure"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("proxy") {
		if cfg.ProxyURL, err = flags.GetString("proxy"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("layout") {
		if cfg.Layout, err = flags.GetString("layout"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("table-index") {
		if cfg.TableIndex, err = flags.GetInt("table-index"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("user-agent") {
		if cfg.UserAgent, err = flags.GetString("user-agent"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("max-body-size") {
		if cfg.MaxBodySize, err = flags.GetInt64("max-body-size"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("max-hosts") {
		if cfg.MaxHosts, err = flags.GetInt("max-hosts"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("output") {
		if cfg.OutputPath, err = flags.GetString("output"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("format") {
		if cfg.Format, err = flags.GetString("format"); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// runScan probes sn, prints one status line per host to out and exports
// the inventory. On cancellation the partial inventory is still exported
// and the cancellation is returned.
func runScan(ctx context.Context, cfg *config.Config, sn subnet.Subnet, out io.Writer, logger *slog.Logger) error {
	layout, err := extract.ParseLayout(cfg.Layout, cfg.TableIndex)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	outputPath := cfg.OutputPath
	if outputPath == "" {
		if outputPath, err = export.DefaultPath(); err != nil {
			return err
		}
	}
	format, err := export.ResolveFormat(outputPath, cfg.Format)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	if cfg.Insecure {
		logger.Warn("TLS certificate verification is disabled")
	}
	if cfg.ProxyURL != "" {
		logger.Info("using proxy", "proxy", cfg.ProxyURL)
	}

	client, err := probe.NewHTTPClient(cfg.Timeout,
		probe.WithInsecureSkipVerify(cfg.Insecure),
		probe.WithProxy(cfg.ProxyURL),
	)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	prober := probe.NewProber(client,
		probe.WithLayout(layout),
		probe.WithPort(cfg.Port),
		probe.WithTimeout(cfg.Timeout),
		probe.WithMaxBodySize(cfg.MaxBodySize),
		probe.WithUserAgent(cfg.UserAgent),
		probe.WithLogger(logger),
	)

	s := scanner.New(prober,
		scanner.WithWorkers(cfg.Workers),
		scanner.WithMaxHosts(cfg.MaxHosts),
		scanner.WithOutput(out),
		scanner.WithLogger(logger),
	)

	inv, summary, scanErr := s.Scan(ctx, sn)
	if errors.Is(scanErr, scanner.ErrTooManyHosts) {
		return fmt.Errorf("%w (raise --max-hosts or use 0 to disable the limit)", scanErr)
	}

	if err := export.Export(inv, outputPath, format); err != nil {
		return err
	}

	logger.Info("inventory written",
		"path", outputPath,
		"format", string(format),
		"devices", inv.Len(),
		"ok", summary.OK,
		"void", summary.Unreachable,
		"fail", summary.ParseFailures,
		"duplicates", summary.Collisions,
		"elapsed", summary.Elapsed,
	)

	if scanErr != nil {
		return fmt.Errorf("partial inventory of %d devices written to %s: %w", inv.Len(), outputPath, scanErr)
	}
	return nil
}
