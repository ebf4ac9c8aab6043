package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path"
	"strconv"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/inkpost/inkpost/internal/config"
	fiberlogger "github.com/inkpost/inkpost/internal/logger/adapter/fiber"
	"github.com/inkpost/inkpost/internal/settings"
	"github.com/inkpost/inkpost/internal/themes"
	"github.com/inkpost/inkpost/internal/web/handler"
	"github.com/inkpost/inkpost/internal/web/handler/blog"
	settingshandler "github.com/inkpost/inkpost/internal/web/handler/settings"
	themeshandler "github.com/inkpost/inkpost/internal/web/handler/themes"
	authmiddleware "github.com/inkpost/inkpost/internal/web/middleware/auth"
)

const (
	// CheckAlivePath answers load balancer health checks.
	CheckAlivePath = "/checkalive"

	// MetricsPath exposes the prometheus metrics.
	MetricsPath = "/metrics"
)

var errNilDependency = errors.New("web service dependency is nil")

// Deps are the collaborators served by the web service.
type Deps struct {
	Store         *settings.Store
	Themes        *themes.API
	ThemeSource   blog.Source
	Authenticator authmiddleware.Authenticator
	// Gatherer serves /metrics, prometheus.DefaultGatherer if nil.
	Gatherer prometheus.Gatherer
}

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// Addr returns the listen address of the configured port.
func (s *Service) Addr() string {
	return ":" + strconv.Itoa(s.cfg.Webserver.Port)
}

// WaitShutdown waits for SIGINT or SIGTERM and shuts the service down gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	s.Shutdown()
}

// Shutdown stops the http server. Unless fast shutdown is set, checkalive
// fails for the configured time first so load balancers drain this instance.
func (s *Service) Shutdown() {
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		log.Error().Err(err).Msg("")
	}

	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, deps Deps) (*Service, error) {
	if cfg == nil || deps.Store == nil || deps.Themes == nil || deps.ThemeSource == nil || deps.Authenticator == nil {
		return nil, errNilDependency
	}

	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	httpFS := http.FS(templateEmbedFS{embeddedTemplates})
	templateEngine := html.NewFileSystem(httpFS, ".gohtml")

	// in debug mode, use local filesystem for templates
	if cfg.DevMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("debug mode enabled: using local filesystem for templates")
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			Views:          templateEngine,
			ErrorHandler:   handler.ErrorHandler,
		},
	)

	service := &Service{
		App:          app,
		cfg:          cfg,
		fastShutDown: cfg.Webserver.ShutDownTime == 0,
	}
	service.alive.Store(true)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New())
	}

	if cfg.Webserver.CleanPath {
		app.Use(cleanPath)
	}

	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:   cfg.Log,
		SkipURIs: []string{CheckAlivePath, MetricsPath},
	}))

	app.Get(CheckAlivePath, service.checkAlive)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))

	api := app.Group(handler.APIPrefix, noCache, authmiddleware.New(deps.Authenticator))

	handlers := []handler.Service{
		settingshandler.New(deps.Store),
		themeshandler.New(deps.Themes),
	}
	for _, h := range handlers {
		if err := h.Init(api); err != nil {
			return nil, err
		}
	}

	if err := blog.New(cfg, deps.ThemeSource).Init(app); err != nil {
		return nil, err
	}

	return service, nil
}

func (s *Service) checkAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	return c.SendString("OK")
}

// noCache marks api responses as private.
func noCache(c *fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, handler.CacheControlPrivate)

	return c.Next()
}

// cleanPath collapses repeated slashes so "//api//settings" is routed as "/api/settings".
func cleanPath(c *fiber.Ctx) error {
	p := c.Path()
	if strings.Contains(p, "//") {
		cleaned := path.Clean(p)
		if strings.HasSuffix(p, "/") && cleaned != "/" {
			cleaned += "/"
		}

		c.Path(cleaned)
	}

	return c.Next()
}
