package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/KirkDiggler/rpg-inventory/internal/config"
	"github.com/KirkDiggler/rpg-inventory/internal/entities/item"
	"github.com/KirkDiggler/rpg-inventory/internal/orchestrators/inventory"
)

// app carries what every subcommand needs once configuration is loaded
type app struct {
	v       *viper.Viper
	cfg     *config.Config
	service inventory.Service
	catalog item.Catalog
	out     io.Writer
	closers []func() error
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
	a.closers = nil
}

// execute runs invctl with args, releasing the storage backend afterwards
func execute(ctx context.Context, out io.Writer, args []string) error {
	a := &app{v: config.New(), out: out}
	defer a.close()

	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCmd(a *app) *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:           "invctl",
		Short:         "Inspect and edit saved inventories",
		Long:          `invctl manages named, slot-based inventories stored in files, Redis or SQLite.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.Context(), configFile)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default is $XDG_CONFIG_HOME/invctl/config.yaml)")
	flags.String("backend", "", "storage backend: file, redis, sqlite or memory")
	flags.String("data-dir", "", "directory holding save files and the sqlite database")
	flags.String("redis-addr", "", "redis address (host:port)")
	flags.String("codec", "", "encoding for new saves: cbor or json")
	flags.String("compression", "", "compression for new saves: none, zstd or lz4")
	flags.String("catalog", "", "item catalog file (yaml or json)")
	flags.String("log-level", "", "log level: debug, info, warn or error")

	for key, flag := range map[string]string{
		config.KeyBackend:     "backend",
		config.KeyDataDir:     "data-dir",
		config.KeyRedisAddr:   "redis-addr",
		config.KeyCodec:       "codec",
		config.KeyCompression: "compression",
		config.KeyCatalog:     "catalog",
		config.KeyLogLevel:    "log-level",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(
		newCreateCmd(a),
		newAddCmd(a),
		newRemoveCmd(a),
		newShowCmd(a),
		newSortCmd(a),
		newResizeCmd(a),
		newClearCmd(a),
		newDeleteCmd(a),
		newListCmd(a),
	)

	return rootCmd
}

// setup loads configuration and wires the orchestrator
func (a *app) setup(ctx context.Context, configFile string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(a.v, configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	if cfg.Catalog != "" {
		catalog, err := item.ReadCatalog(cfg.Catalog)
		if err != nil {
			return err
		}
		a.catalog = catalog
	}

	service, closers, err := newService(ctx, cfg)
	if err != nil {
		return err
	}
	a.service = service
	a.closers = closers
	return nil
}
