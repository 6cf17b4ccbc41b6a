package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"maisonoutfits.dev/storefront/internal/api"
	"maisonoutfits.dev/storefront/internal/config"
	"maisonoutfits.dev/storefront/internal/content"
	"maisonoutfits.dev/storefront/internal/metrics"
	mw "maisonoutfits.dev/storefront/internal/middleware"
	"maisonoutfits.dev/storefront/internal/payments"
	"maisonoutfits.dev/storefront/internal/push"
	"maisonoutfits.dev/storefront/internal/store"
)

// app wires the storefront's collaborators. The client store itself is
// request-scoped; everything here is process-wide.
type app struct {
	cfg     config.Config
	logger  *zap.Logger
	gateway *api.Client
	codec   *store.Codec
	tracker *payments.Tracker
	hub     *push.Hub
	metrics *metrics.Collector
	home    content.Home

	templatesDir string
	devMode      bool
	pages        map[string]*template.Template
	frags        *template.Template
}

func main() {
	logger, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	var (
		addr        string
		tmplPath    string
		contentPath string
	)
	flag.StringVar(&addr, "addr", cfg.Server.Addr, "HTTP listen address")
	flag.StringVar(&tmplPath, "templates", "templates", "templates directory")
	flag.StringVar(&contentPath, "content", "", "home content YAML (optional)")
	flag.Parse()

	home, err := content.LoadHome(contentPath)
	if err != nil {
		logger.Warn("home content fallback", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	gateway := api.NewClient(cfg.Backend.BaseURL, cfg.Backend.RequestTimeout)
	poller := payments.NewPoller(func(ctx context.Context, sessionID string) (api.PaymentStatus, error) {
		st, err := gateway.PaymentStatus(ctx, sessionID)
		collector.RecordGatewayCall(err)
		return st, err
	}, cfg.Payment.PollInterval, cfg.Payment.PollAttempts, logger)

	tracker := payments.NewTracker(poller, logger)
	tracker.OnFinish(func(res payments.Result) {
		collector.RecordPollResult(res.State.String())
	})

	hub := push.NewHub(logger)

	a := &app{
		cfg:          cfg,
		logger:       logger,
		gateway:      gateway,
		codec:        store.NewCodec(cfg.Session.SigningKey, cfg.Session.Secure, logger),
		tracker:      tracker,
		hub:          hub,
		metrics:      collector,
		home:         home,
		templatesDir: tmplPath,
		devMode:      cfg.Server.DevMode,
	}
	if !a.devMode {
		// Parse templates once in production.
		if err := a.parseTemplates(); err != nil {
			logger.Fatal("parse templates", zap.Error(err))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pushClient, err := push.NewClient(cfg.Backend.BaseURL, cfg.Backend.PushPath, hub, logger)
	if err != nil {
		logger.Fatal("push client", zap.Error(err))
	}
	pushClient.OnEvent(collector.RecordPushEvent)
	go pushClient.Run(ctx)

	srv := &http.Server{
		Addr:              addr,
		Handler:           a.router(reg),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("storefront listening", zap.String("addr", addr), zap.Bool("dev_mode", a.devMode))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("listen", zap.Error(err))
	}
}

func (a *app) router(reg *prometheus.Registry) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// Behind a trusted reverse proxy RealIP resolves the client address from
	// X-Forwarded-For; ensure only trusted proxies set it in production.
	r.Use(chimw.RealIP)
	r.Use(mw.HTMX)
	r.Use(mw.Session(a.codec))
	r.Use(mw.CSRF(a.cfg.Session.Secure))
	r.Use(mw.Logger(a.logger, a.metrics.RecordHTTPStatus))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler(reg))

	r.Get("/", a.HomeHandler)
	r.Get("/products/{category}", a.ProductsHandler)
	r.Get("/product/{id}", a.ProductDetailHandler)
	r.Get("/product/{id}/price", a.ProductPriceFrag)

	r.Get("/cart", a.CartHandler)
	r.Post("/cart/add", a.CartAddHandler)
	r.Post("/cart/remove", a.CartRemoveHandler)

	r.Get("/wishlist", a.WishlistHandler)
	r.Post("/wishlist/add", a.WishlistAddHandler)
	r.Post("/wishlist/remove", a.WishlistRemoveHandler)

	r.Get("/checkout", a.CheckoutHandler)
	r.Post("/checkout/place-order", a.PlaceOrderHandler)
	r.Get("/checkout/success", a.CheckoutSuccessHandler)
	r.Get("/checkout/success/status", a.CheckoutSuccessStatusFrag)

	r.Get("/profile", a.ProfileHandler)

	r.Get("/admin", a.AdminHandler)
	r.Get("/admin/events", a.AdminEventsHandler)

	r.Get("/ai-stylist", a.StylistHandler)
	stylistLimiter := mw.NewRateLimiter(a.cfg.Stylist.PerMinute)
	r.With(stylistLimiter.Middleware).Post("/ai-stylist", a.StylistSubmitHandler)

	r.Get("/auth", a.AuthHandler)
	r.Post("/auth/login", a.LoginHandler)
	r.Post("/auth/signup", a.SignupHandler)
	r.Post("/auth/logout", a.LogoutHandler)

	return r
}

func newLogger() (*zap.Logger, error) {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL"))))); err != nil {
		_ = level.UnmarshalText([]byte("info"))
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// parseTemplates builds one template set per page (base layout + partials +
// the page file) plus a shared set for fragments. Per-page sets let every
// page define its own "content" block.
func (a *app) parseTemplates() error {
	funcMap := templateFuncs()

	layouts, err := collect(filepath.Join(a.templatesDir, "layout"))
	if err != nil {
		return err
	}
	pageFiles, err := collect(filepath.Join(a.templatesDir, "pages"))
	if err != nil {
		return err
	}
	fragFiles, err := collect(filepath.Join(a.templatesDir, "fragments"))
	if err != nil {
		return err
	}
	if len(layouts) == 0 || len(pageFiles) == 0 {
		return fmt.Errorf("no templates found under %s", a.templatesDir)
	}

	pages := make(map[string]*template.Template, len(pageFiles))
	for _, pf := range pageFiles {
		name := strings.TrimSuffix(filepath.Base(pf), ".tmpl")
		// Fragments are included so pages can embed them for first paint.
		files := append(append([]string{}, layouts...), fragFiles...)
		files = append(files, pf)
		t, err := template.New(name).Funcs(funcMap).ParseFiles(files...)
		if err != nil {
			return err
		}
		pages[name] = t
	}

	frags := template.New("_frags").Funcs(funcMap)
	if len(fragFiles) > 0 {
		if frags, err = frags.ParseFiles(fragFiles...); err != nil {
			return err
		}
	}

	a.pages = pages
	a.frags = frags
	return nil
}

func collect(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
