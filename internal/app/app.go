package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/revcart/storefront/config"
	"github.com/revcart/storefront/internal/adapter/events"
	"github.com/revcart/storefront/internal/adapter/gateway"
	"github.com/revcart/storefront/internal/adapter/state"
	"github.com/revcart/storefront/internal/adapter/term"
	"github.com/revcart/storefront/internal/core/port"
	"github.com/revcart/storefront/internal/core/service"
	"github.com/revcart/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type App struct {
	ctx      context.Context
	cfg      config.Config
	db       state.DB
	producer port.EventsProducer
	shell    *term.Shell
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initState()
	app.initEventsProducer()
	app.initServices()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initState() {
	const op = "App.initState"

	db, err := state.NewDB(app.ctx, app.cfg.StateDB)
	if err != nil {
		app.fallDown(op, err)
	}
	app.db = db
}

// initEventsProducer wires the client-events telemetry when brokers are
// configured; without them the client runs with a no-op producer.
func (app *App) initEventsProducer() {
	const op = "App.initEventsProducer"

	evCfg := app.cfg.Events
	if len(evCfg.SeedBrokers) == 0 {
		slog.Info("no seed brokers configured, client events are off")
		app.producer = events.NopProducer{}
		return
	}

	srClient, err := sr.NewClient(sr.URLs(evCfg.SchemaRegistryURLs...))
	if err != nil {
		app.fallDown(op, err)
	}
	schemaCreater := schema.NewSchemaCreater(srClient)

	subject := evCfg.ClientEventsTopic + "-value"
	serde, err := schema.NewSerdeClientEventV1(
		app.ctx,
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	producer, err := events.NewProducer(
		app.ctx, evCfg.SeedBrokers, evCfg.ClientEventsTopic, serde,
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.producer = producer
}

func (app *App) initServices() {
	ctx := app.ctx

	cartRepo := state.NewCartRepository(app.db)
	sessionRepo := state.NewSessionRepository(app.db)
	wishlistRepo := state.NewWishlistRepository(app.db)

	transport := gateway.NewTransport(nil)
	client := gateway.NewClient(app.cfg.GatewayBaseURL, transport)

	authAPI := gateway.NewAuthAPI(client)
	cartAPI := gateway.NewCartAPI(client)
	profileAPI := gateway.NewProfileAPI(client)
	orderAPI := gateway.NewOrderAPI(client)
	paymentAPI := gateway.NewPaymentAPI(client)
	catalogAPI := gateway.NewCatalogAPI(client)
	adminAPI := gateway.NewAdminAPI(client)
	deliveryAPI := gateway.NewDeliveryAPI(client)

	shell := term.NewShell(os.Stdin, os.Stdout)

	session := service.NewSession(ctx, authAPI, sessionRepo, shell)
	transport.Bind(
		session,
		func() { session.HandleUnauthorized(ctx) },
		func() { session.HandleForbidden(ctx) },
	)

	cart := service.NewCart(ctx, cartRepo, cartAPI, app.producer, session)
	wishlist := service.NewWishlist(ctx, wishlistRepo, profileAPI, app.producer, session)
	checkout := service.NewCheckout(
		cart, cartAPI, profileAPI, orderAPI, paymentAPI, session, shell, app.producer,
	)
	orders := service.NewOrders(orderAPI, adminAPI, deliveryAPI, session)

	shell.Use(term.Services{
		Session:   session,
		Cart:      cart,
		Wishlist:  wishlist,
		Checkout:  checkout,
		Orders:    orders,
		Catalog:   catalogAPI,
		Addresses: profileAPI,
	})
	app.shell = shell
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.shell.Run(app.ctx, stopFn)

	slog.Info("application is running", "client", app.cfg.ClientName)
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.producer.Close()
	app.db.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
