package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"time"

	"github.com/golang/glog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/a1s/gridbind/internal/aws"
	"github.com/a1s/gridbind/internal/config"
	"github.com/a1s/gridbind/internal/config/data"
	"github.com/a1s/gridbind/internal/dao"
	"github.com/a1s/gridbind/internal/model"
	"github.com/a1s/gridbind/internal/model1"
	"github.com/a1s/gridbind/internal/ui"
	"github.com/a1s/gridbind/internal/view"
)

const (
	appName     = "gridbind"
	appVersion  = "0.1.0"
	openTimeout = 30 * time.Second
)

var (
	gridFlags   *data.Flags
	configFile  string
	metricsAddr string
	rootCmd     = &cobra.Command{
		Use:   appName,
		Short: "A sectioned grid bound to a live data source",
		Long:  `gridbind shows sectioned rows from memory, SQLite or S3 and animates every change.`,
		RunE:  run,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, appVersion)
		},
	}
)

func init() {
	gridFlags = config.NewFlags()
	initGridFlags()
	rootCmd.AddCommand(versionCmd)
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
}

func initGridFlags() {
	rootCmd.Flags().Float32VarP(gridFlags.RefreshRate, "refresh", "r", 0, "Store polling rate in seconds")
	rootCmd.Flags().StringVar(gridFlags.LogDir, "logDir", "", "Log directory")
	rootCmd.Flags().StringVarP(gridFlags.Source, "source", "s", "", "Content source (memory, sqlite, s3)")
	rootCmd.Flags().StringVar(gridFlags.DBPath, "db", "", "SQLite database path")
	rootCmd.Flags().StringVar(gridFlags.Bucket, "bucket", "", "S3 bucket holding the snapshot")
	rootCmd.Flags().StringVar(gridFlags.Key, "key", "", "S3 snapshot key")
	rootCmd.Flags().StringVar(gridFlags.Profile, "profile", "", "AWS profile to use")
	rootCmd.Flags().StringVar(gridFlags.Region, "region", "", "AWS region to use")
	rootCmd.Flags().StringVar(gridFlags.Seed, "seed", "", "YAML file seeding an empty source")
	rootCmd.Flags().BoolVar(gridFlags.ReadOnly, "readonly", false, "Disable all edits")
	rootCmd.Flags().BoolVar(gridFlags.Strict, "strict", false, "Panic on malformed change batches")
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "Config file path")
	rootCmd.Flags().StringVar(&metricsAddr, "metrics", "", "Serve prometheus metrics on this address")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		glog.Exit(err)
	}
}

func run(cmd *cobra.Command, args []string) error {
	defer glog.Flush()

	// 1. Initialize locations
	if err := config.InitLocs(); err != nil {
		return fmt.Errorf("failed to initialize locations: %w", err)
	}

	// 2. Route logs away from the terminal
	logDir := config.AppLogDir
	if config.IsStringSet(gridFlags.LogDir) {
		logDir = *gridFlags.LogDir
	}
	if err := flag.Set("log_dir", logDir); err != nil {
		return fmt.Errorf("failed to set log dir: %w", err)
	}

	// 3. Load configuration: yaml, then animations ini, then flags
	cfg := config.NewConfig()
	path, force := config.AppConfigFile, false
	if configFile != "" {
		path, force = configFile, true
	}
	if err := cfg.Load(path, force); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.LoadAnimations(config.AppAnimationsFile); err != nil {
		return fmt.Errorf("failed to load animations: %w", err)
	}
	if err := cfg.Refine(gridFlags); err != nil {
		return fmt.Errorf("failed to refine configuration: %w", err)
	}
	g := cfg.Gridbind

	// 4. Seed content
	seed := config.DefaultSeed()
	if g.Store.Seed != "" {
		s, err := config.LoadSeed(g.Store.Seed)
		if err != nil {
			return fmt.Errorf("failed to load seed: %w", err)
		}
		seed = s
	}

	// 5. Metrics
	reg := prometheus.NewRegistry()
	if metricsAddr != "" {
		go serveMetrics(reg, metricsAddr)
	}

	// 6. Build the app and the provider
	app := view.NewApp(cfg, appVersion)
	if err := app.Init(); err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	provider, closeFn, err := newProvider(g, seed, app)
	if err != nil {
		return err
	}
	defer closeFn()

	grid := view.NewGrid(g.UI.Title, provider, model1.NewHeader(seed.Columns...), g.Animations,
		ui.WithStrict(g.Strict),
		ui.WithMetrics(ui.NewMetrics(reg)),
	)
	grid.SetFeatureGates(g.EditGates())
	grid.SetFlash(app.Flash())
	grid.SetConfirmFn(app.Confirm)
	grid.SetRowEditFn(view.NewRowEditFn(app.Application))
	if err := app.Push(grid); err != nil {
		return err
	}

	// 7. Run the application
	return app.Run()
}

// newProvider returns the grid rows for the configured source.
func newProvider(g *config.Gridbind, seed *config.Seed, app *view.App) (view.RowProvider, func(), error) {
	if g.Store.Source == data.SourceMemory {
		ss := make([]model.ArraySection[model1.Row], 0, len(seed.Sections))
		for _, s := range seed.Sections {
			ss = append(ss, model.ArraySection[model1.Row]{Name: s.Name, Items: s.Rows})
		}
		return model.NewNamedArrayProvider(ss...), func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), openTimeout)
	defer cancel()

	store, err := openStore(ctx, g.Store)
	if err != nil {
		return nil, nil, err
	}
	if ok, err := dao.Seed(ctx, store, seed.Sections); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to seed %s store: %w", g.Store.Source, err)
	} else if ok {
		glog.Infof("[main] seeded %s store\n", g.Store.Source)
	}

	timeout, err := g.GetCommitTimeout()
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	p := model.NewStoreProvider(store)
	p.SetDispatcher(app.QueueUpdateDraw)
	p.SetCommitTimeout(timeout)
	p.SetCommitErrorFn(app.Flash().Err)
	if err := p.Watch(context.Background(), g.GetRefreshRate()); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to load %s store: %w", g.Store.Source, err)
	}

	return p, func() {
		p.Stop()
		if err := store.Close(); err != nil {
			glog.Errorf("[main] close store: %v\n", err)
		}
	}, nil
}

func openStore(ctx context.Context, s data.Store) (dao.Store, error) {
	switch s.Source {
	case data.SourceSQLite:
		return dao.OpenSQLite(s.Path)
	case data.SourceS3:
		t, err := aws.Resolve(aws.NewSharedFiles(), s.Profile, s.Region)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve aws profile: %w", err)
		}
		glog.Infof("[main] s3 store s3://%s/%s as %s\n", s.Bucket, s.Key, t)
		st, err := dao.NewS3StoreFromProfile(ctx, t.Profile, t.Region, s.Bucket, s.Key)
		if err != nil {
			return nil, err
		}
		return dao.NewCachedStore(st, dao.DefaultCacheTTL), nil
	default:
		return nil, fmt.Errorf("unsupported source %q", s.Source)
	}
}

func serveMetrics(reg *prometheus.Registry, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		glog.Errorf("[metrics] %v\n", err)
	}
}
