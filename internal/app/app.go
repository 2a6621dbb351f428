package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	urlpicker "github.com/goliatone/go-urlpicker"
	"github.com/goliatone/go-urlpicker/components/linkdialog"
	"github.com/goliatone/go-urlpicker/internal/config"
	"github.com/goliatone/go-urlpicker/internal/httpserver"
	"github.com/goliatone/go-urlpicker/internal/httpserver/deps"
	"github.com/goliatone/go-urlpicker/internal/httpserver/routes"
	"github.com/goliatone/go-urlpicker/internal/logger"
	"github.com/goliatone/go-urlpicker/pkg/dialog/remote"
	"github.com/goliatone/go-urlpicker/pkg/picker"
	"github.com/goliatone/go-urlpicker/pkg/render"
	"github.com/goliatone/go-urlpicker/pkg/renderers/vanilla"
)

type App struct {
	cfg        *config.Config
	logger     logger.Logger
	backend    *Backend
	controller *picker.Controller
	server     *httpserver.Server
}

// New wires the picker server from cfg. The caller owns backend; it is
// closed when Run returns.
func New(cfg *config.Config, loggerClient logger.Logger, backend *Backend, version string) (*App, error) {
	loc := Localize(cfg)

	form, err := LoadForm(cfg, loc)
	if err != nil {
		return nil, err
	}

	endpoint := linkdialog.MountPath("/")
	renderer, err := vanilla.New(
		vanilla.WithEndpoint(endpoint),
		vanilla.WithAssetBase(routes.AssetsPath),
		vanilla.WithSubmitLabel(render.Translate(loc, "form.submit", "Save")),
	)
	if err != nil {
		return nil, err
	}

	dialogLabels := DialogLabels(loc)
	provider, err := newProvider(cfg, loggerClient, renderer, dialogLabels, endpoint)
	if err != nil {
		return nil, err
	}

	notices := picker.NewNoticeBuffer(0)
	controller, err := picker.New(backend.Store, provider,
		picker.WithLoadTimeout(cfg.Dialog.LoadTimeout),
		picker.WithNotifier(notices),
		picker.WithLogger(loggerClient.With(logger.String("component", "picker"))),
		picker.WithLabels(PickerLabels(cfg, loc)),
		picker.WithHomeURL(cfg.HomeURL),
	)
	if err != nil {
		return nil, err
	}

	d := deps.Deps{
		Logger:      loggerClient,
		StartTime:   time.Now(),
		Version:     version,
		TimeNow:     time.Now,
		Controller:  controller,
		Sessions:    provider,
		Notices:     notices,
		Renderer:    renderer,
		Form:        form,
		Submissions: deps.NewSubmissions(),
		Localize:    loc,
		Dialog:      []linkdialog.OptionFn{linkdialog.WithDialogLabels(dialogLabels)},
		Ready:       backend.Ping,
	}

	return &App{
		cfg:        cfg,
		logger:     loggerClient,
		backend:    backend,
		controller: controller,
		server:     httpserver.New(cfg, loggerClient, d),
	}, nil
}

// newProvider fetches the dialog fragment from cfg.Dialog.FragmentURL or,
// when unset, installs the fragment this server renders itself.
func newProvider(cfg *config.Config, log logger.Logger, renderer *vanilla.Renderer, labels linkdialog.DialogLabels, endpoint string) (*remote.Provider, error) {
	opts := []remote.Option{
		remote.WithLogger(log.With(logger.String("component", "dialog"))),
		remote.WithRootSelector(cfg.Dialog.RootSelector),
	}
	if cfg.Dialog.FragmentURL != "" {
		return remote.New(cfg.Dialog.FragmentURL, opts...)
	}

	provider, err := urlpicker.InProcessDialog(endpoint, renderer.Templates(), labels, opts...)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	return provider, nil
}

// Controller exposes the picker controller.
func (a *App) Controller() *picker.Controller {
	return a.controller
}

// Handler returns the HTTP handler tree without starting a listener.
func (a *App) Handler() http.Handler {
	return a.server.Handler()
}

// Run serves until SIGINT/SIGTERM or a server error.
func (a *App) Run() error {
	a.logger.Info("starting urlpicker",
		logger.String("listen", a.cfg.Listen),
		logger.String("store", a.cfg.Store.Driver))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutting down gracefully...")
	case err := <-errCh:
		_ = a.backend.Close()
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		a.logger.Error("server shutdown failed", logger.Error(err))
	}
	if err := a.backend.Close(); err != nil {
		a.logger.Error("store close failed", logger.Error(err))
	}
	a.logger.Info("server stopped")
	return nil
}
