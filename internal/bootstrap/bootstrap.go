package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	playerinadapter "sankalp/internal/modules/player/adapter/in"
	playeroutadapter "sankalp/internal/modules/player/adapter/out"
	playerout "sankalp/internal/modules/player/port/out"
	playerservice "sankalp/internal/modules/player/service"
	playerusecase "sankalp/internal/modules/player/usecase"
	remindinadapter "sankalp/internal/modules/reminder/adapter/in"
	remindoutadapter "sankalp/internal/modules/reminder/adapter/out"
	remindservice "sankalp/internal/modules/reminder/service"
	remindusecase "sankalp/internal/modules/reminder/usecase"
	sankalpinadapter "sankalp/internal/modules/sankalp/adapter/in"
	sankalpoutadapter "sankalp/internal/modules/sankalp/adapter/out"
	sankalpservice "sankalp/internal/modules/sankalp/service"
	sankalpusecase "sankalp/internal/modules/sankalp/usecase"
	"sankalp/internal/platform/clock"
	"sankalp/internal/platform/config"
	"sankalp/internal/platform/id"
	"sankalp/internal/platform/kv"
	"sankalp/internal/platform/metrics"
	"sankalp/internal/platform/notify"
	"sankalp/internal/platform/tx"
	uiapp "sankalp/internal/ui/app"
)

type App struct {
	Config config.Config
	Logger zerolog.Logger

	SankalpCLI  sankalpinadapter.CLIHandler
	SankalpTUI  sankalpinadapter.TUIHandler
	PlayerCLI   playerinadapter.CLIHandler
	PlayerTUI   playerinadapter.TUIHandler
	ReminderCLI remindinadapter.CLIHandler
	ReminderTUI remindinadapter.TUIHandler

	Scheduler *remindoutadapter.GocronScheduler
	Metrics   *metrics.PrometheusRecorder

	player  io.Closer
	closers []io.Closer
}

func New(cfg config.Config, logger zerolog.Logger) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.UUID{}
	txm := tx.NewMutexManager()
	recorder := metrics.NewPrometheusRecorder(prom.NewRegistry())

	app := &App{Config: cfg, Logger: logger, Metrics: recorder}

	store, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	if c, ok := store.(io.Closer); ok {
		app.closers = append(app.closers, c)
	}

	var sink notify.Sink
	switch cfg.Notifier {
	case config.NotifierLog:
		sink = notify.NewLogSink(logger.With().Str("component", "notify").Logger())
	default:
		sink = notify.NewDesktopSink()
	}

	sankalpSvc := sankalpservice.NewTrackerService(
		clk,
		sankalpoutadapter.NewKVStateStore(store, logger),
		txm,
		sankalpservice.WithNotifier(sankalpoutadapter.NewSinkNotifier(sink)),
		sankalpservice.WithRecorder(recorder),
		sankalpservice.WithLogger(logger.With().Str("module", "sankalp").Logger()),
	)
	sankalpUC := sankalpusecase.NewInteractor(sankalpSvc)

	var ctrl playerout.Controller
	if len(cfg.PlayerCommand) > 0 {
		ctrl = playeroutadapter.NewProcessController(cfg.PlayerCommand, cfg.TrackDuration, logger.With().Str("component", "player").Logger())
	} else {
		ctrl = playeroutadapter.NewSimulatedController(cfg.TrackDuration)
	}
	playerUC := playerusecase.NewInteractor(playerservice.NewOrchestrator(
		ctrl,
		playeroutadapter.NewSankalpTrackerAdapter(sankalpUC),
		cfg.AudioPath,
		playerservice.WithPollInterval(cfg.PollInterval),
		playerservice.WithLogger(logger.With().Str("module", "player").Logger()),
	))
	app.player = playerUC

	scheduler, err := remindoutadapter.NewGocronScheduler(sink,
		remindoutadapter.WithRecorder(recorder),
		remindoutadapter.WithSchedulerLogger(logger.With().Str("component", "scheduler").Logger()),
	)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.Scheduler = scheduler
	reminderUC := remindusecase.NewInteractor(remindservice.NewReminderService(
		remindoutadapter.NewKVListStore(store, logger),
		scheduler,
		clk,
		ids,
		txm,
		remindservice.WithLogger(logger.With().Str("module", "reminder").Logger()),
	))

	app.SankalpCLI = sankalpinadapter.NewCLIHandler(sankalpUC)
	app.SankalpTUI = sankalpinadapter.NewTUIHandler(sankalpUC)
	app.PlayerCLI = playerinadapter.NewCLIHandler(playerUC)
	app.PlayerTUI = playerinadapter.NewTUIHandler(playerUC)
	app.ReminderCLI = remindinadapter.NewCLIHandler(reminderUC)
	app.ReminderTUI = remindinadapter.NewTUIHandler(reminderUC)
	return app, nil
}

func openStore(cfg config.Config) (kv.Store, error) {
	switch cfg.Store {
	case config.StoreFile:
		return kv.NewFileStore(cfg.StatePath), nil
	default:
		store, err := kv.NewSQLiteStore(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open state store: %w", err)
		}
		return store, nil
	}
}

// Own registers c to be closed with the app.
func (a *App) Own(c io.Closer) {
	if c != nil {
		a.closers = append(a.closers, c)
	}
}

// NewWatcher watches whatever files back the configured store.
func (a *App) NewWatcher() (*kv.Watcher, error) {
	logger := a.Logger.With().Str("component", "watcher").Logger()
	if a.Config.Store == config.StoreFile {
		return kv.NewWatcher(a.Config.StatePath, nil, logger)
	}
	return kv.NewWatcher(filepath.Dir(a.Config.DBPath), kv.MatchPrefix(filepath.Base(a.Config.DBPath)), logger)
}

// Close stops playback before the store goes away.
func (a *App) Close() error {
	var errs []error
	if a.player != nil {
		if err := a.player.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.Scheduler != nil {
		if err := a.Scheduler.Shutdown(); err != nil {
			errs = append(errs, err)
		}
	}
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func RunTUI(app *App) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := app.PlayerTUI.Run(ctx); err != nil {
			app.Logger.Warn().Err(err).Msg("player stopped")
		}
	}()

	var changes <-chan struct{}
	if err := ensureWatchDir(app.Config); err == nil {
		if w, err := app.NewWatcher(); err != nil {
			app.Logger.Warn().Err(err).Msg("state watcher unavailable")
		} else {
			changes = w.Changes()
			go w.Run(ctx)
		}
	}

	model := uiapp.NewModel(app.SankalpTUI, app.PlayerTUI, app.ReminderTUI, changes, app.Config.AudioPath)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	cancel()
	if cerr := app.PlayerTUI.Close(); cerr != nil {
		app.Logger.Debug().Err(cerr).Msg("player close")
	}
	return err
}

// RunDaemon fires reminders until ctx is done. It re-syncs the schedule when
// another process changes the stored list, keeps the progress gauges in step
// with the stored record, and serves /metrics when metricsAddr is set.
func RunDaemon(ctx context.Context, app *App, metricsAddr string) error {
	d := &daemon{app: app}
	if _, err := d.resync(ctx); err != nil {
		return err
	}
	d.observe(ctx)
	app.Scheduler.Start()

	var srv *http.Server
	if metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", app.Metrics.Handler())
		srv = &http.Server{Addr: metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				app.Logger.Error().Err(err).Str("addr", metricsAddr).Msg("metrics server failed")
			}
		}()
		app.Logger.Info().Str("addr", metricsAddr).Msg("serving metrics")
	}

	var changes <-chan struct{}
	if err := ensureWatchDir(app.Config); err == nil {
		if w, err := app.NewWatcher(); err != nil {
			app.Logger.Warn().Err(err).Msg("state watcher unavailable; schedule will not follow edits")
		} else {
			changes = w.Changes()
			go w.Run(ctx)
		}
	}

	// Rollover happens on read, so the gauges are refreshed even when nothing
	// is written.
	ticker := time.NewTicker(progressRefresh)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if srv != nil {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				_ = srv.Shutdown(shutdownCtx)
				cancel()
			}
			return nil
		case <-ticker.C:
			d.observe(ctx)
		case <-changes:
			d.observe(ctx)
			if _, err := d.resync(ctx); err != nil {
				app.Logger.Warn().Err(err).Msg("reminder resync failed")
			}
		}
	}
}

const progressRefresh = time.Minute

// daemon remembers the reminder list it last scheduled. In sqlite mode every
// write to the database wakes the watcher, including marks and undos.
type daemon struct {
	app    *App
	synced []string
	primed bool
}

// resync schedules the stored reminders unless they match the last synced
// list. It reports whether a sync ran.
func (d *daemon) resync(ctx context.Context) (bool, error) {
	list, err := d.app.ReminderCLI.List(ctx)
	if err != nil {
		return false, err
	}
	raw := make([]string, 0, len(list.Reminders))
	for _, r := range list.Reminders {
		raw = append(raw, r.Raw)
	}
	if d.primed && slices.Equal(raw, d.synced) {
		return false, nil
	}
	out, err := d.app.ReminderCLI.Sync(ctx)
	if err != nil {
		return false, err
	}
	d.synced, d.primed = raw, true
	d.app.Logger.Info().Int("scheduled", out.Scheduled).Int("skipped", out.Skipped).Bool("permitted", out.Permitted).Msg("reminders synced")
	return true, nil
}

// observe reads the record without writing it; the tracker reports the
// reading to the metrics recorder.
func (d *daemon) observe(ctx context.Context) {
	if _, err := d.app.SankalpCLI.Resume(ctx); err != nil {
		d.app.Logger.Warn().Err(err).Msg("progress read failed")
	}
}

func ensureWatchDir(cfg config.Config) error {
	dir := filepath.Dir(cfg.DBPath)
	if cfg.Store == config.StoreFile {
		dir = cfg.StatePath
	}
	return os.MkdirAll(dir, 0o755)
}
