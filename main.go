package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/MarcGrol/selfcheckout/lib/myconfig"
	"github.com/MarcGrol/selfcheckout/lib/myevents"
	"github.com/MarcGrol/selfcheckout/lib/myhttpclient"
	"github.com/MarcGrol/selfcheckout/lib/mylog"
	"github.com/MarcGrol/selfcheckout/lib/mynotify"
	"github.com/MarcGrol/selfcheckout/lib/mypublisher"
	"github.com/MarcGrol/selfcheckout/lib/mypubsub"
	"github.com/MarcGrol/selfcheckout/lib/myqueue"
	"github.com/MarcGrol/selfcheckout/lib/mystore"
	"github.com/MarcGrol/selfcheckout/lib/mytime"
	"github.com/MarcGrol/selfcheckout/services/backendclient"
	"github.com/MarcGrol/selfcheckout/services/cart"
	"github.com/MarcGrol/selfcheckout/services/checkout"
	"github.com/MarcGrol/selfcheckout/services/checkoutadyen"
	"github.com/MarcGrol/selfcheckout/services/checkoutapi"
	"github.com/MarcGrol/selfcheckout/services/checkoutevents"
	"github.com/MarcGrol/selfcheckout/services/checkoutmollie"
	"github.com/MarcGrol/selfcheckout/services/checkoutstripe"
	"github.com/MarcGrol/selfcheckout/services/kiosk"
	"github.com/MarcGrol/selfcheckout/services/product"
	"github.com/MarcGrol/selfcheckout/services/scanner"
	"github.com/MarcGrol/selfcheckout/services/session"
	"github.com/MarcGrol/selfcheckout/services/warmup"
)

const (
	cameraWidth   = 640
	cameraHeight  = 480
	shutdownGrace = 5 * time.Second
)

type endpointRegistrar interface {
	RegisterEndpoints(c context.Context, router *mux.Router) error
}

func main() {
	logger := mylog.New("main")

	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := myconfig.Load()
	if err != nil {
		logger.Log(c, "", mylog.SeverityError, "Error loading configuration: %s", err)
		mylog.Sync()
		os.Exit(1)
	}

	err = run(c, cfg, logger)
	if err != nil {
		logger.Log(c, "", mylog.SeverityError, "Kiosk stopped: %s", err)
		mylog.Sync()
		os.Exit(1)
	}
	mylog.Sync()
}

func run(c context.Context, cfg myconfig.Config, logger mylog.Logger) error {
	nower := mytime.RealNower{}
	feed := mynotify.NewFeed(nower)

	storeOptions := mystore.Options{
		Backend:   cfg.StoreBackend,
		RedisURL:  cfg.RedisURL,
		ProjectID: cfg.GoogleProject,
	}

	sessionStore, sessionStoreCleanup, err := mystore.New[session.Record](c, storeOptions)
	if err != nil {
		return fmt.Errorf("error creating session store: %s", err)
	}
	defer sessionStoreCleanup()

	salesStore, salesStoreCleanup, err := mystore.New[checkout.Sale](c, storeOptions)
	if err != nil {
		return fmt.Errorf("error creating sales store: %s", err)
	}
	defer salesStoreCleanup()

	outboxStore, outboxStoreCleanup, err := mystore.New[myevents.EventEnvelope](c, storeOptions)
	if err != nil {
		return fmt.Errorf("error creating outbox store: %s", err)
	}
	defer outboxStoreCleanup()

	paymentStore, paymentStoreCleanup, err := mystore.New[checkoutapi.PaymentContext](c, storeOptions)
	if err != nil {
		return fmt.Errorf("error creating payment store: %s", err)
	}
	defer paymentStoreCleanup()

	viewCache, viewCacheCleanup, err := newViewCache(cfg, nower)
	if err != nil {
		return fmt.Errorf("error creating cart cache: %s", err)
	}
	defer viewCacheCleanup()

	pubsub, pubsubCleanup, err := mypubsub.New(c, mypubsub.Options{
		Backend:   cfg.BrokerBackend,
		ProjectID: cfg.GoogleProject,
		AMQPURL:   cfg.AMQPURL,
	})
	if err != nil {
		return fmt.Errorf("error creating broker client: %s", err)
	}
	defer pubsubCleanup()

	queue, queueCleanup, err := newOutboxQueue(c, cfg)
	if err != nil {
		return fmt.Errorf("error creating task queue: %s", err)
	}
	defer queueCleanup()

	publisher := mypublisher.New(outboxStore, pubsub, queue, nower)
	err = publisher.CreateTopic(c, checkoutevents.TopicName)
	if err != nil {
		logger.Log(c, "", mylog.SeverityWarn, "Error creating topic %s: %s", checkoutevents.TopicName, err)
	}
	go publisher.Run(c, cfg.OutboxInterval)

	// backend clients
	sender := myhttpclient.New("backend", cfg.HTTPTimeout)
	sessionReader := session.NewReader(sessionStore)
	cartClient := backendclient.NewCartClient(cfg.BackendBaseURL, sender, sessionReader)
	productClient := backendclient.NewProductClient(cfg.BackendBaseURL, sender)
	transactionClient := backendclient.NewTransactionClient(cfg.BackendBaseURL, sender, sessionReader)

	sessions := session.NewManager(sessionStore, cartClient, nower)
	engine := cart.NewEngine(cartClient, productClient, sessions, viewCache, feed, cfg.CartStaleTime)

	gateway, err := newGateway(cfg, transactionClient, engine, paymentStore, nower)
	if err != nil {
		return err
	}
	journal := checkout.NewSalesJournal(salesStore, publisher, nower, cfg.Currency)
	controller := checkout.NewController(gateway, journal, feed, cfg.PollInterval)
	defer controller.Close()

	frames := scanner.NewLatestFrame()
	barcodeScanner := scanner.New(newCamera(cfg), scanner.NewZXingDecoder(), frames, scanner.NewDebouncer(cfg.ScanDebounce), nower, cfg.CameraDevice)
	defer barcodeScanner.Close()

	kioskScreen := kiosk.New(engine, barcodeScanner, controller, feed)
	err = kioskScreen.StartScanner(c)
	if err != nil {
		logger.Log(c, "", mylog.SeverityWarn, "Scanner not started: %s", err)
	}

	router := mux.NewRouter()
	for _, service := range []endpointRegistrar{
		cart.NewWebService(engine),
		checkout.NewWebService(controller, journal),
		product.NewWebService(product.NewService(productClient, feed)),
		kiosk.NewWebService(kioskScreen, frames, feed),
		warmup.NewService(engine),
		publisher,
	} {
		err = service.RegisterEndpoints(c, router)
		if err != nil {
			return fmt.Errorf("error registering endpoints: %s", err)
		}
	}

	return startWebServerBlocking(c, cfg.Port, router, logger)
}

func newViewCache(cfg myconfig.Config, nower mytime.Nower) (cart.ViewCache, func(), error) {
	if cfg.StoreBackend != mystore.BackendRedis {
		return cart.NewMemoryViewCache(nower), func() {}, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, func() {}, fmt.Errorf("error parsing redis url: %s", err)
	}
	client := redis.NewClient(opts)

	return cart.NewRedisViewCache(client), func() { client.Close() }, nil
}

// newOutboxQueue returns nil when the outbox is triggered in-process.
func newOutboxQueue(c context.Context, cfg myconfig.Config) (myqueue.TaskQueuer, func(), error) {
	if cfg.OutboxTrigger != "cloudtasks" {
		return nil, func() {}, nil
	}
	return myqueue.New(c, myqueue.Options{
		Backend:   myqueue.BackendGcloud,
		ProjectID: cfg.GoogleProject,
		Location:  cfg.TasksLocation,
		QueueName: cfg.TasksQueue,
		BaseURL:   cfg.PublicBaseURL,
	})
}

func newGateway(cfg myconfig.Config, transactions *backendclient.TransactionClient, carts checkoutapi.CartReader, paymentStore mystore.Store[checkoutapi.PaymentContext], nower mytime.Nower) (checkout.Gateway, error) {
	switch cfg.PaymentGateway {
	case "mollie":
		payer, err := checkoutmollie.NewPayer(cfg.Environment != "production")
		if err != nil {
			return nil, err
		}
		return checkoutmollie.NewGateway(cfg.MollieAPIKey, payer, carts, paymentStore, nower, cfg.Currency, cfg.PaymentReturnURL), nil
	case "stripe":
		return checkoutstripe.NewGateway(cfg.StripeAPIKey, checkoutstripe.NewPayer(), carts, paymentStore, nower, cfg.Currency, cfg.PaymentReturnURL), nil
	case "adyen":
		return checkoutadyen.NewGateway(checkoutadyen.Config{
			APIKey:          cfg.AdyenAPIKey,
			MerchantAccount: cfg.AdyenMerchant,
			CountryCode:     cfg.AdyenCountryCode,
			ShopperLocale:   cfg.AdyenLocale,
			Currency:        cfg.Currency,
			ReturnURL:       cfg.PaymentReturnURL,
		}, checkoutadyen.NewPayer(cfg.AdyenEnvironment), carts, paymentStore, nower), nil
	default:
		return transactions, nil
	}
}

func newCamera(cfg myconfig.Config) scanner.Camera {
	if !cfg.CameraEnabled {
		return scanner.NoCamera{}
	}
	return scanner.NewSystemCamera(cameraWidth, cameraHeight)
}

func startWebServerBlocking(c context.Context, port string, router *mux.Router, logger mylog.Logger) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           otelhttp.NewHandler(router, "kiosk"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-c.Done()

		shutdownContext, cancel := context.WithTimeout(context.WithoutCancel(c), shutdownGrace)
		defer cancel()

		err := server.Shutdown(shutdownContext)
		if err != nil {
			logger.Log(c, "", mylog.SeverityWarn, "Error shutting down webserver: %s", err)
		}
	}()

	logger.Log(c, "", mylog.SeverityInfo, "Starting webserver on port %s (try http://localhost:%s)", port, port)
	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("error starting webserver on port %s: %s", port, err)
	}

	return nil
}
