package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/oomph-ac/wallrun/internal/logger"
	"github.com/oomph-ac/wallrun/scenario"
	"github.com/oomph-ac/wallrun/settings"
	"github.com/oomph-ac/wallrun/worker"
	"go.uber.org/zap"
)

var (
	flags        settings.Flags
	scenarioPath string
	watch        bool
	batch        int
	saveDefault  string
)

// The following program runs a wall running scenario and prints a summary of it.
func main() {
	flags.Register(flag.CommandLine)
	flag.StringVar(&scenarioPath, "scenario", "", "Path to a YAML scenario, the built in one is used if empty")
	flag.BoolVar(&watch, "watch", false, "Re-run whenever the settings or scenario file changes")
	flag.IntVar(&batch, "batch", 1, "Run the scenario this many times concurrently and check the runs agree")
	flag.StringVar(&saveDefault, "save-default", "", "Write the default settings to this path and exit")
	flag.Parse()

	if saveDefault != "" {
		if err := settings.SaveDefault(saveDefault); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("Default settings written to %s\n", saveDefault)
		return
	}

	conf, err := flags.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := run(conf); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(conf *settings.Settings) error {
	l := logger.Default(conf.Logging)
	defer l.Close()
	log := l.Log

	if conf.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         conf.Sentry.DSN,
			Environment: conf.Sentry.Environment,
		}); err != nil {
			return fmt.Errorf("sentry: %w", err)
		}
		defer sentry.Flush(2 * time.Second)
		defer sentry.Recover()
	}

	if conf.Stats.Addr != "" {
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr(conf.Stats.Addr))
		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
		log.Info("serving runtime stats", zap.String("addr", conf.Stats.Addr))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := runOnce(ctx, conf, log); err != nil {
		if !watch {
			return err
		}
		log.Error("run failed", zap.Error(err))
	}
	if !watch {
		return nil
	}

	w, err := settings.NewWatcher(flags.Config, scenarioPath)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()
	log.Info("watching for changes", zap.String("config", flags.Config), zap.String("scenario", scenarioPath))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", zap.Error(err))
		case file, ok := <-w.Events:
			if !ok {
				return nil
			}
			log.Info("file changed, running again", zap.String("file", file))
			next, err := flags.Load()
			if err != nil {
				log.Error("reload settings", zap.Error(err))
				continue
			}
			conf = next
			if err := runOnce(ctx, conf, log); err != nil {
				log.Error("run failed", zap.Error(err))
			}
		}
	}
}

func runOnce(ctx context.Context, conf *settings.Settings, log *zap.Logger) error {
	sc := scenario.Default()
	if scenarioPath != "" {
		var err error
		if sc, err = scenario.LoadFile(scenarioPath); err != nil {
			return err
		}
	}

	runner := scenario.NewRunner(conf, log)
	summaries := make([]scenario.Summary, max(batch, 1))
	jobs := make([]worker.Job, len(summaries))
	for i := range jobs {
		jobs[i] = func(ctx context.Context) (err error) {
			summaries[i], err = runner.Run(ctx, sc)
			return err
		}
	}

	start := time.Now()
	if err := worker.RunAll(ctx, 0, jobs...); err != nil {
		return err
	}
	for _, s := range summaries[1:] {
		if s.Checksum != summaries[0].Checksum {
			return fmt.Errorf("run %s diverged from run %s: checksum %016x != %016x",
				s.RunID, summaries[0].RunID, s.Checksum, summaries[0].Checksum)
		}
	}

	fmt.Println(summaries[0])
	log.Info("scenario complete",
		zap.String("scenario", sc.Name),
		zap.Int("runs", len(summaries)),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}
