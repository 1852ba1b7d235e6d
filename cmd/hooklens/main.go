package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/hooklens/internal/config"
	"github.com/standardbeagle/hooklens/internal/debug"
	"github.com/standardbeagle/hooklens/internal/mcp"
	"github.com/standardbeagle/hooklens/internal/resolver"
	"github.com/standardbeagle/hooklens/internal/types"
	"github.com/standardbeagle/hooklens/internal/version"
)

// loadConfigWithOverrides loads configuration and applies CLI flag overrides
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if timeout := c.Int("timeout"); timeout > 0 {
		cfg.Fetch.TimeoutMs = timeout * 1000
	}
	if allowFlags := c.StringSlice("allow"); len(allowFlags) > 0 {
		cfg.Allow = allowFlags
	}
	if denyFlags := c.StringSlice("deny"); len(denyFlags) > 0 {
		cfg.Deny = append(cfg.Deny, denyFlags...)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	app := &cli.App{
		Name:                   "hooklens",
		Usage:                  "Resolve readable variable names for React hook observations via source maps",
		Version:                version.Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to .hooklens.kdl configuration file",
			},
			&cli.IntFlag{
				Name:    "timeout",
				Aliases: []string{"t"},
				Usage:   "Fetch timeout in seconds",
			},
			&cli.StringSliceFlag{
				Name:  "allow",
				Usage: "Bundle URL glob to allow (repeatable; empty allows all)",
			},
			&cli.StringSliceFlag{
				Name:  "deny",
				Usage: "Bundle URL glob to deny (repeatable)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log pipeline diagnostics to stderr",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "resolve",
				Usage:     "Read a hook log JSON document and print it with variable names filled in",
				ArgsUsage: "[hook-log.json] (stdin when omitted)",
				Action:    runResolve,
			},
			{
				Name:   "serve",
				Usage:  "Serve the resolver as an MCP tool over stdio",
				Action: runServe,
			},
			{
				Name:  "version",
				Usage: "Print version information",
				Action: func(c *cli.Context) error {
					fmt.Println(version.FullInfo())
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runResolve(c *cli.Context) error {
	if c.Bool("verbose") {
		debug.SetOutput(os.Stderr)
	}

	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}

	input, err := readHookLog(c.Args().First())
	if err != nil {
		return err
	}

	var roots []*types.HookNode
	if err := json.Unmarshal(input, &roots); err != nil {
		return fmt.Errorf("invalid hook log: %w", err)
	}

	r, err := resolver.New(cfg, nil)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	enriched, err := r.Resolve(ctx, roots)
	if err != nil {
		// Best-effort: the unenriched tree is still valid output.
		debug.Logf("hooklens: resolve failed: %v", err)
		enriched = roots
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(enriched)
}

func runServe(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}

	r, err := resolver.New(cfg, nil)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	return mcp.NewServer(r).Run(ctx)
}

func readHookLog(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// signalContext cancels on SIGINT/SIGTERM so an interrupted resolve
// hands the caller their tree back unchanged.
func signalContext() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		select {
		case <-sigChan:
			cancel()
			// Pause briefly before exiting; sigChan stays registered
			// until stop runs, so further signals are captured rather
			// than terminating the process.
			time.Sleep(10 * time.Millisecond)
		case <-done:
		}
	}()
	return ctx, func() {
		signal.Stop(sigChan)
		close(done)
		cancel()
	}
}
