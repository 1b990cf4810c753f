package handlers

import (
	"net/http"
	"time"

	"github.com/SscSPs/customer_payment_service/cmd/docs"
	"github.com/SscSPs/customer_payment_service/internal/core/domain"
	portssvc "github.com/SscSPs/customer_payment_service/internal/core/ports/services"
	"github.com/SscSPs/customer_payment_service/internal/middleware"
	"github.com/SscSPs/customer_payment_service/internal/platform/config"
	"github.com/SscSPs/customer_payment_service/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// BasePath is the prefix every ledger route lives under.
const BasePath = "/api/customer-payment"

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// createLimiter may be nil, which leaves the create endpoints unthrottled.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	createLimiter *limiter.Limiter,
	posthogClient *utils.PosthogClientWrapper,
) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.CORSAllowedOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "Idempotency-Key", middleware.APIKeyHeader, middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}))

	base := r.Group(BasePath)
	base.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})

	api := base.Group("", authMiddlewares(cfg)...)
	api.Use(middleware.PosthogMiddleware(posthogClient))

	var createMiddlewares []gin.HandlerFunc
	if createLimiter != nil {
		createMiddlewares = append(createMiddlewares, middleware.RateLimit(createLimiter))
	}
	RegisterPaymentRoutes(api, services.Payment, services.Balance, createMiddlewares...)

	setupSwaggerRoutes(r, cfg)
}

// RegisterPaymentRoutes registers the ledger routes on rg. createMiddlewares run only in front of
// the two create endpoints.
func RegisterPaymentRoutes(
	rg *gin.RouterGroup,
	paymentService portssvc.PaymentSvcFacade,
	balanceService portssvc.BalanceResolverSvc,
	createMiddlewares ...gin.HandlerFunc,
) {
	registerValidations()

	ph := newPaymentHandler(paymentService)
	ch := newContractHandler(paymentService, balanceService)

	create := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, createMiddlewares...), h)
	}
	rg.POST("", create(ph.createPayment)...)
	rg.POST("/multiple-contracts", create(ph.createMultiContractPayment)...)
	rg.GET("", ph.listPayments)

	payment := rg.Group("/payment")
	{
		payment.GET("/:id", ph.getPayment)
		payment.GET("/:id/contract-payments", ph.listPaymentAllocations)
	}

	customer := rg.Group("/customer")
	{
		customer.GET("/:customerId", ph.listCustomerPayments)
		customer.GET("/:customerId/active-contracts", ph.listActiveContracts)
	}

	contract := rg.Group("/contract")
	{
		contract.GET("/:contractId", ch.listContractPayments)
		contract.GET("/:contractId/payment-info", ch.getPaymentInfo)
		contract.GET("/:contractId/total-paid", ch.getTotalPaid)
		contract.GET("/:contractId/remaining-amount", ch.getRemainingAmount)
		contract.GET("/:contractId/contract-payments", ch.listContractAllocations)
	}
}

// authMiddlewares builds the credential chain. An API key is tried first; the bearer token
// decides when the key is absent or wrong. With neither configured every request runs as the
// system user.
func authMiddlewares(cfg *config.Config) []gin.HandlerFunc {
	if !cfg.AuthEnabled() {
		return []gin.HandlerFunc{middleware.AnonymousAs(domain.SystemUser)}
	}

	var chain []gin.HandlerFunc
	if cfg.APIKeyHash != "" {
		chain = append(chain, middleware.APIKeyAuth(cfg.APIKeyHash, cfg.APIKeyCaller))
	}
	if cfg.JWTSecret != "" {
		chain = append(chain, middleware.AuthMiddleware(cfg.JWTSecret))
	} else {
		chain = append(chain, middleware.RequireAuthenticated())
	}
	return chain
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = BasePath
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
