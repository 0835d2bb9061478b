// Package app assembles the escrow service from configuration.
package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"blindbuy-escrow/config"
	"blindbuy-escrow/internal/adapter/custody"
	kafkaSink "blindbuy-escrow/internal/adapter/events/kafka"
	"blindbuy-escrow/internal/adapter/gateway/local"
	"blindbuy-escrow/internal/adapter/gateway/remote"
	httpHandler "blindbuy-escrow/internal/adapter/http/handler"
	"blindbuy-escrow/internal/adapter/http/stream"
	"blindbuy-escrow/internal/adapter/storage/memory"
	"blindbuy-escrow/internal/adapter/storage/pebblestore"
	pgStorage "blindbuy-escrow/internal/adapter/storage/postgres"
	redisStorage "blindbuy-escrow/internal/adapter/storage/redis"
	"blindbuy-escrow/internal/core/domain"
	"blindbuy-escrow/internal/core/engine"
	"blindbuy-escrow/internal/core/ports"
	"blindbuy-escrow/internal/service"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// App is the wired service. Handler serves HTTP; Run drives the background
// workers.
type App struct {
	Engine  *engine.Engine
	Handler http.Handler
	Local   *local.Gateway // nil in remote gateway mode

	dispatcher *service.EventDispatcher
	settler    *service.AutoSettler
	hub        *stream.Hub
	closers    []func() error
	log        zerolog.Logger
}

type storage struct {
	journal   ports.Journal
	loader    ports.StateLoader
	health    []ports.HealthChecker
	reporting ports.ReportingService
	audit     ports.AuditService
}

// New builds the service. On error every resource opened so far is closed.
func New(ctx context.Context, cfg *config.Config, apiSpec []byte, log zerolog.Logger) (_ *App, err error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	a := &App{log: log}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	a.closers = append(a.closers, rdb.Close)

	store, err := a.openStorage(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	store.health = append(store.health, redisStorage.NewHealthCheck(rdb))
	if store.audit == nil {
		store.audit = service.NewAuditService(nil, log)
	}

	sigSvc := service.NewHMACSignatureService()
	dispatcher := service.NewEventDispatcher(log, cfg.Events.Buffer, a.sinks(cfg, sigSvc, log)...)
	a.dispatcher = dispatcher

	var cust ports.Custody = custody.NewLogCustody(log)
	if cfg.Custody.URL != "" {
		cust = custody.NewClient(custody.Config{
			BaseURL:   cfg.Custody.URL,
			AccessKey: cfg.Peers.Custody.AccessKey,
			SecretKey: cfg.Peers.Custody.SecretKey,
			Timeout:   cfg.Custody.Timeout,
		}, nil, log)
	}

	admin := cfg.Engine.AdminAddress()
	instance := cfg.Engine.InstanceAddress()

	var gateway ports.ConcealmentGateway
	switch cfg.Gateway.Mode {
	case "local":
		gw, err := local.New(common.FromHex(cfg.Gateway.MasterKey), instance, cfg.Gateway.RevealDelay, log)
		if err != nil {
			return nil, fmt.Errorf("local gateway: %w", err)
		}
		a.Local = gw
		gateway = gw
	case "remote":
		gateway = remote.New(remote.Config{
			BaseURL:     cfg.Gateway.URL,
			AccessKey:   cfg.Peers.Gateway.AccessKey,
			SecretKey:   cfg.Peers.Gateway.SecretKey,
			CallbackURL: cfg.Gateway.CallbackURL,
			Timeout:     cfg.Gateway.Timeout,
		}, instance, nil)
	}

	eng := engine.New(admin, gateway, cust, store.journal, engine.NewRandomPicker(), dispatcher, log)
	if a.Local != nil {
		a.Local.SetHandler(eng)
	}
	if err := eng.Recover(ctx, store.loader); err != nil {
		return nil, fmt.Errorf("recover engine: %w", err)
	}
	if err := seedPrices(ctx, eng, admin, cfg.Seed.Prices, log); err != nil {
		return nil, err
	}
	a.Engine = eng

	peers, err := peerDirectory(cfg.Peers)
	if err != nil {
		return nil, err
	}

	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	deps := httpHandler.RouterDeps{
		Engine:         eng,
		AuthSvc:        service.NewAuthService(redisStorage.NewChallengeStore(rdb), service.NewEthWalletVerifier(), tokenSvc, cfg.Engine.ChallengeTTL),
		DepositSvc:     service.NewDepositService(eng, redisStorage.NewReceiptCache(rdb), log),
		ReportingSvc:   store.reporting,
		Peers:          peers,
		SigSvc:         sigSvc,
		NonceStore:     redisStorage.NewNonceStore(rdb),
		TokenSvc:       tokenSvc,
		RateLimitStore: redisStorage.NewRateLimitStore(rdb),
		HealthCheckers: store.health,
		AuditSvc:       store.audit,
		Stream:         a.hub,
		APISpec:        apiSpec,
		Logger:         log,
	}
	if a.Local != nil && cfg.Gateway.DevConceal {
		deps.Concealer = a.Local
	}

	var handler http.Handler = httpHandler.SetupRouter(deps)
	if len(cfg.CORS.AllowedOrigins) > 0 {
		handler = cors.New(cors.Options{
			AllowedOrigins:   cfg.CORS.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
			AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
			AllowCredentials: true,
		}).Handler(handler)
	}
	a.Handler = handler

	if cfg.Engine.AutoPickInterval > 0 {
		a.settler = service.NewAutoSettler(eng, admin, cfg.Engine.AutoPickInterval, log)
	}
	return a, nil
}

func (a *App) openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storage, error) {
	switch cfg.Storage.Driver {
	case "postgres":
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		a.closers = append(a.closers, func() error { pool.Close(); return nil })
		if err := pgStorage.EnsureSchema(ctx, pool); err != nil {
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		audit := service.NewAuditService(pgStorage.NewAuditRepository(pool), log)
		a.closers = append(a.closers, func() error { audit.Wait(); return nil })
		return &storage{
			journal:   pgStorage.NewJournal(pool),
			loader:    pgStorage.NewStateLoader(pool),
			health:    []ports.HealthChecker{pgStorage.NewHealthCheck(pool)},
			reporting: service.NewReportingService(pgStorage.NewOrderRepo(pool)),
			audit:     audit,
		}, nil
	case "pebble":
		db, err := pebblestore.Open(cfg.Storage.PebblePath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		log.Info().Str("path", cfg.Storage.PebblePath).Msg("Pebble journal opened")
		return &storage{journal: db, loader: db, health: []ports.HealthChecker{db}}, nil
	default:
		log.Warn().Msg("memory journal in use, state is lost on exit")
		db := memory.NewStore()
		return &storage{journal: db, loader: db}, nil
	}
}

func (a *App) sinks(cfg *config.Config, sigSvc *service.HMACSignatureService, log zerolog.Logger) []ports.EventSink {
	var sinks []ports.EventSink
	if len(cfg.Kafka.Brokers) > 0 {
		k := kafkaSink.NewSink(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		a.closers = append(a.closers, k.Close)
		sinks = append(sinks, k)
	}
	if cfg.Events.WebhookURL != "" {
		sinks = append(sinks, service.NewWebhookSink(
			cfg.Events.WebhookURL,
			cfg.Events.WebhookAccessKey,
			cfg.Events.WebhookSecretKey,
			sigSvc,
			nil,
			log,
		))
	}
	if cfg.Events.Stream {
		a.hub = stream.NewHub(cfg.CORS.AllowedOrigins, log)
		sinks = append(sinks, a.hub)
	}
	return sinks
}

func peerDirectory(cfg config.PeersConfig) (*service.StaticPeerDirectory, error) {
	var peers []ports.Peer
	for name, creds := range map[string]config.PeerCredentials{
		httpHandler.PeerGateway: cfg.Gateway,
		httpHandler.PeerCustody: cfg.Custody,
	} {
		if creds.AccessKey == "" {
			continue
		}
		peers = append(peers, ports.Peer{Name: name, AccessKey: creds.AccessKey, SecretKey: creds.SecretKey})
	}
	dir, err := service.NewStaticPeerDirectory(peers...)
	if err != nil {
		return nil, fmt.Errorf("peers: %w", err)
	}
	return dir, nil
}

// seedPrices sets configured prices for assets that have none yet, so a
// restart never overrides a price the operator changed at runtime.
func seedPrices(ctx context.Context, eng *engine.Engine, admin common.Address, prices map[string]string, log zerolog.Logger) error {
	for raw, ether := range prices {
		asset := common.HexToAddress(raw)
		if !eng.Price(asset).IsZero() {
			continue
		}
		price, err := domain.ParseEther(ether)
		if err != nil {
			return fmt.Errorf("seed price for %s: %w", asset.Hex(), err)
		}
		if err := eng.SetPrice(ctx, admin, asset, price); err != nil {
			return fmt.Errorf("seed price for %s: %w", asset.Hex(), err)
		}
		log.Info().Str("asset", asset.Hex()).Str("price", ether).Msg("seed price set")
	}
	return nil
}

// Run drives the event dispatcher and the optional settler until ctx is done.
func (a *App) Run(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = a.dispatcher.Run(ctx)
	}()
	if a.settler != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = a.settler.Run(ctx)
		}()
	}
	wg.Wait()
}

// Close waits for in-flight local reveals, then releases resources in
// reverse order of acquisition.
func (a *App) Close() {
	if a.Local != nil {
		a.Local.Wait()
	}
	if a.hub != nil {
		a.hub.Close()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Error().Err(err).Msg("close failed")
		}
	}
	a.closers = nil
}
