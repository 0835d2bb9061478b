package handler

import (
	"blindbuy-escrow/internal/adapter/http/middleware"
	"blindbuy-escrow/internal/adapter/http/stream"
	"blindbuy-escrow/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Peer names HMAC callers must be registered under.
const (
	PeerGateway = "gateway"
	PeerCustody = "custody"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Engine         ports.EscrowEngine
	AuthSvc        ports.AuthService
	DepositSvc     ports.DepositService
	ReportingSvc   ports.ReportingService // nil = history and stats disabled
	Concealer      ports.Concealer        // nil = development concealment disabled
	Peers          ports.PeerDirectory
	SigSvc         ports.SignatureService
	NonceStore     ports.NonceStore
	TokenSvc       ports.TokenService
	RateLimitStore middleware.Limiter // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	AuditSvc       ports.AuditService // nil = audit logging disabled
	Stream         *stream.Hub        // nil = websocket feed disabled
	APISpec        []byte             // nil = /swagger/spec answers 404
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Audit logging (after response)
	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	docs := NewAPIDocs(deps.APISpec)
	swagger := r.Group("/swagger")
	{
		swagger.GET("", docs.UI)
		swagger.GET("/spec", docs.Spec)
	}

	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	v1 := r.Group("/api/v1")

	// --- Public routes (no auth) ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	auth := v1.Group("/auth")
	{
		auth.POST("/challenge", rl("auth_challenge"), authHandler.Challenge)
		auth.POST("/login", rl("auth_login"), authHandler.Login)
	}

	orderHandler := NewOrderHandler(deps.Engine, deps.ReportingSvc, deps.Concealer)
	escrowHandler := NewEscrowHandler(deps.Engine)
	adminHandler := NewAdminHandler(deps.Engine, deps.ReportingSvc)
	peerHandler := NewPeerHandler(deps.Engine, deps.DepositSvc)

	v1.GET("/orders/pending", rl("public"), orderHandler.Pending)
	v1.GET("/assets/:asset", rl("public"), escrowHandler.Asset)
	v1.GET("/escrow/summary", rl("public"), escrowHandler.Summary)
	if deps.Stream != nil {
		v1.GET("/stream", deps.Stream.ServeWS)
	}

	// --- HMAC-authenticated routes (gateway relayer, custody rail) ---
	hmacAuth := middleware.HMACAuth(deps.Peers, deps.SigSvc, deps.NonceStore, deps.Logger)
	v1.POST("/gateway/reveals", rl("peer"), hmacAuth, middleware.RequirePeer(PeerGateway), peerHandler.RevealCallback)
	v1.POST("/custody/deposits", rl("peer"), hmacAuth, middleware.RequirePeer(PeerCustody), peerHandler.Deposit)

	// --- JWT-authenticated routes (wallets) ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)

	orders := v1.Group("/orders", jwtAuth)
	{
		orders.POST("", rl("orders_submit"), orderHandler.Submit)
		orders.GET("/mine", rl("orders"), orderHandler.Mine)
		orders.GET("/:id", rl("orders"), orderHandler.Get)
		orders.POST("/:id/cancel", rl("orders"), orderHandler.Cancel)
		if deps.ReportingSvc != nil {
			orders.GET("/history", rl("orders"), orderHandler.History)
			orders.GET("/stats", rl("orders"), orderHandler.Stats)
		}
	}

	escrow := v1.Group("/escrow", jwtAuth)
	{
		escrow.GET("/balance", rl("orders"), escrowHandler.Balance)
		escrow.POST("/withdrawals", rl("withdrawals"), escrowHandler.Withdraw)
	}

	admin := v1.Group("/admin", jwtAuth, rl("admin"))
	{
		admin.PUT("/prices/:asset", adminHandler.SetPrice)
		admin.POST("/inventory/:asset/deposit", adminHandler.DepositInventory)
		admin.POST("/inventory/:asset/withdraw", adminHandler.WithdrawInventory)
		admin.POST("/settlements/pick", adminHandler.Pick)
		if deps.ReportingSvc != nil {
			admin.GET("/stats", adminHandler.Stats)
			admin.GET("/orders", adminHandler.Orders)
		}
	}

	if deps.Concealer != nil {
		v1.POST("/dev/conceal", jwtAuth, orderHandler.Conceal)
	}

	return r
}
