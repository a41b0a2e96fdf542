// Package routes assembles the gin engine: middleware chain and every
// route group spec.md §6 names (public, authenticated, node agent, admin).
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"nodal/internal/infrastructure/auth"
	"nodal/internal/infrastructure/authorization"
	"nodal/internal/infrastructure/metrics"
	"nodal/internal/interfaces/http/handlers"
	"nodal/internal/interfaces/http/handlers/admin"
	"nodal/internal/interfaces/http/middleware"
)

// Handlers bundles every constructed handler the router wires up, built
// once at process start and passed in rather than constructed here, so
// this package stays free of use-case wiring concerns.
type Handlers struct {
	Auth         *handlers.AuthHandler
	User         *handlers.UserHandler
	Package      *handlers.PackageHandler
	Order        *handlers.OrderHandler
	Subscription *handlers.SubscriptionHandler
	NodeAgent    *handlers.NodeAgentHandler
	Recharge     *handlers.RechargeHandler

	AdminNode    *admin.NodeHandler
	AdminPackage *admin.PackageHandler
	AdminUser    *admin.UserHandler
	AdminStats   *admin.StatsHandler
	AdminClash   *admin.ClashHandler
}

// Dependencies bundles the cross-cutting infrastructure every middleware
// needs, separate from Handlers since middleware wraps routes rather than
// serving them.
type Dependencies struct {
	JWT         *auth.JWTService
	Enforcer    *authorization.Enforcer
	Metrics     *metrics.Metrics
	CORSOrigins []string
	RedisClient *redis.Client
}

// New builds the gin engine with the full middleware chain and every
// route group.
func New(h *Handlers, deps *Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(deps.CORSOrigins))
	r.Use(middleware.RequestLogger())
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}

	r.GET("/health", handlers.Health)
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	rateLimit := middleware.RateLimit(deps.RedisClient)

	r.GET("/sub/:token", rateLimit, h.Subscription.GetByToken)

	api := r.Group("/api")
	{
		authGroup := api.Group("/auth")
		authGroup.Use(rateLimit)
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh", h.Auth.Refresh)

		api.GET("/packages", rateLimit, h.Package.List)
		api.POST("/webhooks/stripe", h.Recharge.StripeWebhook)

		api.GET("/node/config", h.NodeAgent.GetConfig)
		api.POST("/node/heartbeat", h.NodeAgent.Heartbeat)
		api.POST("/node/traffic", h.NodeAgent.ReportTraffic)

		authed := api.Group("")
		authed.Use(middleware.Auth(deps.JWT), rateLimit)
		{
			authed.GET("/user/balance", h.User.GetBalance)
			authed.GET("/user/referral", h.User.GetReferral)
			authed.GET("/user/referral/stats", h.User.GetReferralStats)
			authed.GET("/user/traffic", h.User.GetTraffic)
			authed.POST("/user/recharge", h.Recharge.Create)

			authed.GET("/subscription/link", h.User.GetSubscriptionLink)
			authed.POST("/subscription/link/reset", h.User.ResetSubscriptionLink)

			authed.POST("/packages/:id/purchase", h.Package.Purchase)

			authed.GET("/orders", h.Order.List)
			authed.GET("/orders/:id", h.Order.Get)

			adminGroup := authed.Group("/admin")
			adminGroup.Use(middleware.RequireAdmin())
			{
				nodes := adminGroup.Group("/nodes")
				nodes.Use(middleware.RequirePermission(deps.Enforcer, "node", "read"))
				nodes.GET("", h.AdminNode.List)
				nodes.POST("", middleware.RequirePermission(deps.Enforcer, "node", "create"), h.AdminNode.Create)
				nodes.PUT("/:id", middleware.RequirePermission(deps.Enforcer, "node", "update"), h.AdminNode.Update)
				nodes.DELETE("/:id", middleware.RequirePermission(deps.Enforcer, "node", "delete"), h.AdminNode.Delete)

				packages := adminGroup.Group("/packages")
				packages.Use(middleware.RequirePermission(deps.Enforcer, "package", "read"))
				packages.GET("", h.AdminPackage.List)
				packages.POST("", middleware.RequirePermission(deps.Enforcer, "package", "create"), h.AdminPackage.Create)
				packages.PUT("/:id", middleware.RequirePermission(deps.Enforcer, "package", "update"), h.AdminPackage.Update)
				packages.DELETE("/:id", middleware.RequirePermission(deps.Enforcer, "package", "delete"), h.AdminPackage.Delete)

				users := adminGroup.Group("/users")
				users.Use(middleware.RequirePermission(deps.Enforcer, "user", "update"))
				users.POST("/:id/balance", h.AdminUser.AdjustBalance)
				users.POST("/:id/traffic", h.AdminUser.AdjustTraffic)

				adminGroup.GET("/stats/overview", h.AdminStats.Overview)
				adminGroup.GET("/stats/traffic", h.AdminStats.Traffic)
				adminGroup.GET("/access-logs", h.AdminStats.AccessLogs)
				adminGroup.GET("/admin-logs", h.AdminStats.AdminLogs)

				clash := adminGroup.Group("/clash")
				clash.GET("/proxy-groups", h.AdminClash.ProxyGroups)
				clash.GET("/rules", h.AdminClash.Rules)
				clash.GET("/generate", h.AdminClash.Generate)
			}
		}
	}

	return r
}
