package daemon

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/inkpost/inkpost/internal/auth"
	"github.com/inkpost/inkpost/internal/config"
	"github.com/inkpost/inkpost/internal/db/controller/setting"
	"github.com/inkpost/inkpost/internal/metrics"
	"github.com/inkpost/inkpost/internal/settings"
	"github.com/inkpost/inkpost/internal/themeconfig"
	"github.com/inkpost/inkpost/internal/themes"
	"github.com/inkpost/inkpost/internal/web"
)

// ErrNilConfig is returned if no configuration is passed.
var ErrNilConfig = errors.New("config is nil")

// Core is the settings stack shared by the daemon and the cli.
type Core struct {
	DB     *gorm.DB
	Auth   *auth.Service
	Store  *settings.Store
	Lister themes.DirLister
	Sink   *themeconfig.Store
}

// Options configure the metrics of a Daemon.
type Options struct {
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// Daemon represents the main application daemon.
type Daemon struct {
	*Core
	webService *web.Service
}

// openDB is replaced in tests to observe the opened database.
var openDB = OpenDB

// OpenCore opens the database, seeds it and loads the settings store.
// The database is closed again when a later step fails.
func OpenCore(ctx context.Context, cfg *config.Config, listeners ...settings.Listener) (*Core, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	core, err := loadCore(ctx, cfg, db, listeners)
	if err != nil {
		if closeErr := closeDB(db); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close database")
		}

		return nil, err
	}

	log.Info().Int("settings", core.Store.Len()).Str("engine", cfg.DB.Engine).Msg("settings loaded")

	return core, nil
}

func loadCore(ctx context.Context, cfg *config.Config, db *gorm.DB, listeners []settings.Listener) (*Core, error) {
	authService := auth.NewService(db)

	if err := seed(ctx, cfg, db, authService); err != nil {
		return nil, err
	}

	storage, err := themeconfig.NewStorage(cfg)
	if err != nil {
		return nil, err
	}

	sink := themeconfig.New(storage)
	lister := themes.DirLister{ThemesPath: cfg.Content.ThemesPath, AppsPath: cfg.Content.AppsPath}

	store, err := settings.New(ctx, settings.Deps{
		Persistence: setting.NewProvider(db, nil),
		Permissions: authService,
		Lister:      lister,
		Sink:        sink,
		Listeners:   append([]settings.Listener{settings.AuditLog}, listeners...),
	})
	if err != nil {
		_ = sink.Close()

		return nil, err
	}

	return &Core{DB: db, Auth: authService, Store: store, Lister: lister, Sink: sink}, nil
}

// Close releases the theme storage and the database.
func (c *Core) Close() error {
	var errs []error

	if err := c.Sink.Close(); err != nil {
		errs = append(errs, err)
	}

	errs = append(errs, closeDB(c.DB))

	return errors.Join(errs...)
}

// New creates a new Daemon instance with the provided configuration.
func New(ctx context.Context, cfg *config.Config, opts Options) (*Daemon, error) {
	if opts.Registerer == nil {
		opts.Registerer = prometheus.DefaultRegisterer
	}

	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}

	core, err := OpenCore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	core.Store.Subscribe(metrics.NewSettings(opts.Registerer, core.Store.Len))

	webService, err := web.New(cfg, web.Deps{
		Store:         core.Store,
		Themes:        themes.NewAPI(core.Store, core.Lister, core.Auth),
		ThemeSource:   core.Sink,
		Authenticator: core.Auth,
		Gatherer:      opts.Gatherer,
	})
	if err != nil {
		_ = core.Close()

		return nil, err
	}

	return &Daemon{Core: core, webService: webService}, nil
}

// App returns the fiber app of the web service.
func (d *Daemon) App() *fiber.App {
	return d.webService.App
}

// Start serves http until SIGINT or SIGTERM and shuts down gracefully.
func (d *Daemon) Start() error {
	var g errgroup.Group

	g.Go(func() error {
		return d.webService.Start(d.webService.Addr())
	})

	g.Go(func() error {
		d.webService.WaitShutdown()

		return nil
	})

	err := g.Wait()

	return errors.Join(err, d.Close())
}
