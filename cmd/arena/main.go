package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/zeusync/arena/internal/catalog"
	"github.com/zeusync/arena/internal/config"
	"github.com/zeusync/arena/internal/core/observability/log"
	"github.com/zeusync/arena/internal/core/render"
	"github.com/zeusync/arena/internal/injector"
	"github.com/zeusync/arena/internal/inspect"
)

const usage = `usage: arena [-config file] [command]

commands:
  run           load the catalog and level and run frames (default)
  check         load the catalog and level and report what they contain
  pack <out>    write the loaded catalog to out (.json, .yaml, optionally .zst)
`

func main() {
	configPath := flag.String("config", "", "path to a config file (yaml, json or toml)")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	args := flag.Args()
	cmd := "run"
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "run":
		err = run(ctx, cfg)
	case "check":
		err = check(ctx, cfg)
	case "pack":
		if len(args) != 1 {
			flag.Usage()
			os.Exit(2)
		}
		err = pack(ctx, cfg, args[0])
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, cmd+":", err)
		os.Exit(1)
	}
}

func loadCatalog(ctx context.Context, cfg config.Config, logger log.Log) (*catalog.Catalog, error) {
	var opts []catalog.Option
	if cfg.Catalog.Strict {
		opts = append(opts, catalog.WithStrict())
	}
	if cfg.Catalog.SkipMalformed {
		opts = append(opts, catalog.WithSkipMalformed(logger))
	}

	info, err := os.Stat(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	if info.IsDir() {
		return catalog.LoadDir(ctx, cfg.Catalog.Path, opts...)
	}
	return catalog.Load(cfg.Catalog.Path, opts...)
}

func run(ctx context.Context, cfg config.Config) error {
	var renderer render.Renderer = render.Nop{}
	if cfg.Render.Terminal {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		defer screen.Fini()

		var cancel context.CancelFunc
		ctx, cancel = context.WithCancel(ctx)
		defer cancel()
		go watchKeys(screen, cancel)

		renderer = render.NewTerminal(screen, render.TerminalConfig{
			CellWidth:  cfg.Render.CellSize,
			CellHeight: 2 * cfg.Render.CellSize,
		})
	}

	app, cleanup, err := injector.InitializeApp(cfg, renderer)
	if err != nil {
		return err
	}
	defer cleanup()

	cat, err := loadCatalog(ctx, cfg, app.Logger)
	if err != nil {
		return err
	}
	if rejected := cat.Rejected(); rejected != nil {
		app.Logger.Warn("catalog definitions skipped", log.Error(rejected))
	}
	level, err := catalog.LoadLevel(cfg.Level.Path)
	if err != nil {
		return err
	}
	if _, err := app.Game.SpawnLevel(cat, level); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	runCtx, finish := context.WithCancel(ctx)
	defer finish()

	if cfg.Inspect.Enabled {
		srv := inspect.NewServer(app.Logger)
		app.Game.AddObserver(srv)
		g.Go(func() error { return srv.ListenAndServe(runCtx, cfg.Inspect.Addr) })
	}
	g.Go(func() error {
		defer finish()
		return app.Game.Run(runCtx, cfg.Game.Frames)
	})

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	app.Logger.Info("arena stopped", log.Uint64("frames", app.Game.Frame()))
	return err
}

// watchKeys cancels the run on Escape or Ctrl-C. It returns once the screen
// is finalized.
func watchKeys(screen tcell.Screen, cancel context.CancelFunc) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		if key, ok := ev.(*tcell.EventKey); ok {
			if key.Key() == tcell.KeyEscape || key.Key() == tcell.KeyCtrlC {
				cancel()
			}
		}
	}
}

func check(ctx context.Context, cfg config.Config) error {
	cat, err := loadCatalog(ctx, cfg, log.NewNop())
	if err != nil {
		return err
	}
	sum, err := cat.Fingerprint()
	if err != nil {
		return err
	}
	fmt.Printf("catalog %s: %d definitions, fingerprint %016x\n", cfg.Catalog.Path, cat.Len(), sum)
	if rejected := cat.Rejected(); rejected != nil {
		fmt.Printf("skipped: %v\n", rejected)
	}

	level, err := catalog.LoadLevel(cfg.Level.Path)
	if err != nil {
		return err
	}
	fmt.Printf("level %q: %d solids, %d sproingers, %d items\n", level.Name, len(level.Solids), len(level.Sproingers), len(level.Items))
	if missing := level.Missing(cat); len(missing) > 0 {
		return fmt.Errorf("level places undefined items: %v", missing)
	}
	return nil
}

func pack(ctx context.Context, cfg config.Config, out string) error {
	cat, err := loadCatalog(ctx, cfg, log.NewNop())
	if err != nil {
		return err
	}
	if err := cat.Save(out); err != nil {
		return err
	}
	fmt.Printf("wrote %d definitions to %s\n", cat.Len(), out)
	return nil
}
