// Package cli provides the Cobra command tree for subgather.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"subgather/internal/config"
	"subgather/internal/creds"
	"subgather/internal/httpclient"
	"subgather/internal/input"
	"subgather/internal/output"
	"subgather/internal/postprocess"
	"subgather/internal/runner"
	"subgather/internal/sources"
	"subgather/internal/version"
)

// rootOptions holds all flags for the root command.
type rootOptions struct {
	configFile  string
	file        string
	allSources  bool
	exclude     []string
	subsOnly    bool
	flush       bool
	concurrency int
	timeoutSecs int
	verbose     bool
	userAgent   string
	proxy       string
}

// NewRootCmd creates the root command with dependency injection. getenv feeds
// the credential provider and userConfigDir the config loader, so tests never
// touch the real environment or the user's config directory.
func NewRootCmd(
	logger *slog.Logger,
	levelVar *slog.LevelVar,
	getenv func(string) string,
	userConfigDir func() (string, error),
) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "subgather [domain]",
		Short: "Gather subdomains from passive sources",
		Long: `Subgather queries passive-data providers (certificate transparency logs,
passive DNS archives, web archives) for subdomains of the given root hosts
and merges the partial results into one filtered stream.

Roots come from a single domain argument, a newline-delimited file (--file),
or stdin. Keyed sources are skipped unless --all is set; their API keys are
read from the environment (C99_KEY, SECURITYTRAILS_KEY) or the config file.

A source that fails, times out, or has nothing never aborts the run; the exit
status is zero as long as the configuration itself was valid.`,
		Example: `  # Single domain, free sources only
  subgather example.com

  # Roots from a file, including keyed sources, strict subdomains only
  subgather --file roots.txt --all --subs-only

  # Pipe roots, stream results as they arrive, skip slow sources
  cat roots.txt | subgather --flush -e wayback -e axfr`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if opts.verbose {
				levelVar.Set(slog.LevelDebug)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return gather(cmd, opts, logger, getenv, userConfigDir, args)
		},
	}

	cmd.Version = version.Version
	cmd.SetVersionTemplate("subgather version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "",
		"config file (default: $HOME/.config/subgather/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false,
		"enable verbose logging (debug level)")

	cmd.Flags().StringVarP(&opts.file, "file", "f", "",
		"newline-delimited file of root hosts")
	cmd.Flags().BoolVarP(&opts.allSources, "all", "a", false,
		"also use sources that require an API key")
	cmd.Flags().StringSliceVarP(&opts.exclude, "exclude", "e", nil,
		"source names to omit regardless of mode (repeatable)")
	cmd.Flags().BoolVar(&opts.subsOnly, "subs-only", false,
		"keep only proper subdomains of the roots (the root itself is dropped)")
	cmd.Flags().BoolVar(&opts.flush, "flush", false,
		"print results as they arrive; still filtered, but not deduplicated")
	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "c", runner.DefaultConcurrency,
		"number of tasks fetching provider data concurrently")
	cmd.Flags().IntVarP(&opts.timeoutSecs, "timeout", "t", 15,
		"per-request timeout in seconds; useful against slow sources like the wayback archive")
	cmd.Flags().StringVar(&opts.userAgent, "user-agent", "",
		"custom User-Agent string")
	cmd.Flags().StringVar(&opts.proxy, "proxy", "",
		"proxy URL (supports HTTP, HTTPS, SOCKS5)")

	cmd.AddCommand(
		newSourcesCmd(logger),
		newVersionCmd(),
	)

	return cmd
}

// gather wires the pipeline: hosts × enabled sources → runner → filter → sink.
func gather(
	cmd *cobra.Command,
	opts *rootOptions,
	logger *slog.Logger,
	getenv func(string) string,
	userConfigDir func() (string, error),
	args []string,
) error {
	cfg, err := config.Load(opts.configFile, userConfigDir)
	if err != nil {
		return err
	}

	// Explicit flags win; the config file only fills in unchanged defaults.
	concurrency := opts.concurrency
	if !cmd.Flags().Changed("concurrency") && cfg.Global.Concurrency > 0 {
		concurrency = cfg.Global.Concurrency
	}
	timeoutSecs := opts.timeoutSecs
	if !cmd.Flags().Changed("timeout") && cfg.Global.Timeout > 0 {
		timeoutSecs = cfg.Global.Timeout
	}
	userAgent := opts.userAgent
	if userAgent == "" {
		userAgent = cfg.Global.UserAgent
	}
	proxy := opts.proxy
	if proxy == "" {
		proxy = cfg.Global.Proxy
	}

	if concurrency < 1 {
		return fmt.Errorf("--concurrency must be at least 1, got %d", concurrency)
	}
	if timeoutSecs < 1 {
		return fmt.Errorf("--timeout must be at least 1 second, got %d", timeoutSecs)
	}

	hosts, err := resolveHosts(cmd, args, opts.file)
	if err != nil {
		return err
	}

	client, err := httpclient.New(proxy, userAgent, logger, opts.verbose)
	if err != nil {
		return fmt.Errorf("creating HTTP client: %w", err)
	}

	provider := creds.NewEnvProvider(getenv, cfg.CredentialFallback())
	registry := sources.NewDefaultRegistry(client, provider, logger)

	run := runner.New(registry, logger,
		runner.WithConcurrency(concurrency),
		runner.WithTimeout(time.Duration(timeoutSecs)*time.Second),
		runner.WithExcluded(opts.exclude...),
		runner.WithAllSources(opts.allSources),
	)

	batches, err := run.Run(cmd.Context(), hosts)
	if err != nil {
		return err
	}

	var filter *postprocess.Filter
	if opts.subsOnly {
		filter = postprocess.NewAnySubdomain(hosts)
	} else {
		filter = postprocess.NewAnyRoot(hosts)
	}

	var sink output.Sink
	if opts.flush {
		sink = output.NewFlushSink(cmd.OutOrStdout())
	} else {
		sink = output.NewBufferSink(cmd.OutOrStdout())
	}

	for batch := range batches {
		for _, name := range filter.Apply(batch.Names) {
			if err := sink.Emit(name); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
		}
	}
	if err := sink.Close(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// resolveHosts applies the input precedence: explicit domain > file > stdin.
// Interactive stdin with no argument is a configuration error.
func resolveHosts(cmd *cobra.Command, args []string, file string) ([]string, error) {
	if len(args) > 0 {
		host := strings.TrimSpace(args[0])
		if host == "" {
			return nil, fmt.Errorf("domain argument is empty")
		}
		return []string{host}, nil
	}
	if file != "" {
		return input.ReadHostsFile(file)
	}
	r := cmd.InOrStdin()
	if f, ok := r.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return nil, fmt.Errorf("no input: pass a domain, use --file, or pipe stdin")
	}
	return input.ReadHosts(r)
}
