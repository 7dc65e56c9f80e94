package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/adapter/kafka"
	"github.com/niksmo/storefront/internal/adapter/llm"
	"github.com/niksmo/storefront/internal/adapter/mongodb"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/niksmo/storefront/pkg/schema"
)

const handlerHeadroom = 10 * time.Second

// handlerTimeout keeps the handler deadline above the completer timeout so
// completer-bound requests are not cut off mid-flight.
func handlerTimeout(completerTimeout time.Duration) time.Duration {
	return completerTimeout + handlerHeadroom
}

type stores struct {
	catalog port.CatalogStore
	cart    port.CartStore
	chat    port.ChatStore
}

type services struct {
	catalog   port.CatalogProvider
	searcher  port.ProductsSearcher
	recommend port.Recommender
	cart      port.CartManager
	assistant port.Assistant
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	mongo      mongodb.Client
	stores     stores
	completer  port.TextCompleter
	events     port.ClientEventsProducer
	producer   kafka.ClientEventsProducer
	service    services
	httpServer httphandler.HTTPServer
}

func New(context context.Context, config config.Config) *App {
	app := &App{ctx: context, cfg: config}

	app.initLogger()
	app.initStorage()
	app.initCompleter()
	app.initEventsProducer()
	app.initCoreServices()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initStorage() {
	const op = "App.initStorage"

	client, err := mongodb.NewClient(
		app.ctx, app.cfg.Mongo.URI, app.cfg.Mongo.Database,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.mongo = client

	catalog := mongodb.NewCatalogRepository(client)
	if err := catalog.EnsureIndexes(app.ctx); err != nil {
		app.fallDown(op, err)
	}
	app.stores.catalog = catalog
	app.stores.cart = mongodb.NewCartRepository(client)
	app.stores.chat = mongodb.NewChatRepository(client)
}

func (app *App) initCompleter() {
	app.completer = llm.NewCompleter(llm.Config{
		BaseURL: app.cfg.LLM.BaseURL,
		APIKey:  app.cfg.LLM.APIKey,
		Model:   app.cfg.LLM.Model,
		Timeout: time.Duration(app.cfg.LLM.TimeoutSeconds) * time.Second,
	})
}

// initEventsProducer wires the analytics producer. Without configured
// brokers the application runs with client events disabled.
func (app *App) initEventsProducer() {
	const op = "App.initEventsProducer"

	if len(app.cfg.Broker.SeedBrokers) == 0 {
		slog.Info("client events are disabled: no seed brokers configured")
		return
	}

	serde, err := schema.NewSerdeClientEventV1()
	if err != nil {
		app.fallDown(op, err)
	}

	producer, err := kafka.NewClientEventsProducer(
		kafka.ProducerClientOpt(
			app.ctx,
			app.cfg.Broker.SeedBrokers,
			app.cfg.Broker.ClientEventsTopic,
		),
		kafka.ProducerEncoderOpt(serde),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.producer = producer
	app.events = producer
}

func (app *App) initCoreServices() {
	app.service.catalog = service.NewCatalogService(
		app.stores.catalog, app.completer,
	)

	composer := service.NewQueryComposer(
		app.completer, app.stores.catalog, app.stores.cart, app.events,
	)
	app.service.searcher = composer
	app.service.recommend = composer

	app.service.cart = service.NewCartService(
		app.stores.cart, app.stores.catalog, app.events,
	)
	app.service.assistant = service.NewConversationService(
		app.completer, app.stores.cart, app.stores.catalog,
		app.stores.chat, app.events,
	)
}

func (app *App) initInboundAdapters() {
	mux := http.NewServeMux()
	httphandler.RegisterProducts(
		mux, app.service.catalog, app.service.searcher, app.service.recommend,
	)
	httphandler.RegisterCart(mux, app.service.cart)
	httphandler.RegisterChat(mux, app.service.assistant)

	handler := httphandler.AllowJSON(mux)
	completerTimeout := time.Duration(app.cfg.LLM.TimeoutSeconds) * time.Second
	httpServer := httphandler.NewHTTPServer(
		app.cfg.HTTPServerAddr, handler, handlerTimeout(completerTimeout),
	)
	app.httpServer = httpServer
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	if app.events != nil {
		app.producer.Close()
	}
	app.mongo.Close(ctx)

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
