// Package server implements the `nodal server` cobra command: build every
// use case, middleware, and handler, then serve the gin engine.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	appadmin "nodal/internal/application/admin"
	appcatalog "nodal/internal/application/catalog"
	appnode "nodal/internal/application/node"
	apporder "nodal/internal/application/order"
	apppurchase "nodal/internal/application/purchase"
	appsubscription "nodal/internal/application/subscription"
	appuser "nodal/internal/application/user"
	"nodal/internal/infrastructure/auth"
	"nodal/internal/infrastructure/authorization"
	"nodal/internal/infrastructure/cache"
	"nodal/internal/infrastructure/config"
	"nodal/internal/infrastructure/database"
	"nodal/internal/infrastructure/metrics"
	"nodal/internal/infrastructure/payment"
	"nodal/internal/infrastructure/persistence/repository"
	"nodal/internal/infrastructure/pubsub"
	"nodal/internal/infrastructure/stream"
	"nodal/internal/interfaces/http/handlers"
	adminhandlers "nodal/internal/interfaces/http/handlers/admin"
	"nodal/internal/interfaces/http/routes"
	"nodal/internal/shared/goroutine"
	applogger "nodal/internal/shared/logger"
)

const (
	casbinModelPath    = "configs/rbac_model.conf"
	dispatcherCapacity = 256
)

func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Run the nodal API server",
		Long:  "Start the HTTP API serving the subscription, purchase, and admin surfaces.",
		RunE:  run,
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	applogger.Init(applogger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log := applogger.Get()
	log.Info("starting nodal server", "host", cfg.APIHost, "port", cfg.APIPort)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("unwrap sql.DB: %w", err)
	}
	defer sqlDB.Close()

	redisClient, err := cache.NewClient(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer redisClient.Close()

	enforcer, err := authorization.NewEnforcer(db, casbinModelPath)
	if err != nil {
		return fmt.Errorf("init authorization enforcer: %w", err)
	}
	if err := enforcer.SeedDefaultPolicies(); err != nil {
		log.Warn("seed default policies failed", "error", err)
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	txManager := database.NewTransactionManager(db)
	dispatcher := goroutine.NewDispatcher(dispatcherCapacity, log)

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiresIn)
	hasher := auth.NewBcryptPasswordHasher(12)

	userRepo := repository.NewUserRepository(db)
	packageRepo := repository.NewPackageRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	transactionRepo := repository.NewCoinTransactionRepository(db)
	entitlementRepo := repository.NewUserPackageRepository(db)
	nodeRepo := repository.NewNodeRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	accessLogRepo := repository.NewAccessLogRepository(db)
	adminLogRepo := repository.NewAdminLogRepository(db)

	userPackageCache := cache.NewUserPackageCache(redisClient)
	subscriptionCache := cache.NewSubscriptionCache(redisClient)
	nodesCache := cache.NewNodesCache(redisClient)
	nodeConfigBus := pubsub.NewNodeConfigBus(redisClient)

	stripeClient := payment.NewClient(cfg.StripeSecretKey, cfg.StripeWebhookSecret, cfg.FrontendURL+"/recharge/success", cfg.FrontendURL+"/recharge/cancel")

	registerUC := appuser.NewRegisterUseCase(userRepo, hasher, jwtService, enforcer)
	loginUC := appuser.NewLoginUseCase(userRepo, hasher, jwtService)
	refreshUC := appuser.NewRefreshUseCase(jwtService)
	balanceUC := appuser.NewGetBalanceUseCase(userRepo, transactionRepo)
	referralUC := appuser.NewGetReferralUseCase(userRepo, cfg.FrontendURL)
	referralStatsUC := appuser.NewGetReferralStatsUseCase(userRepo, transactionRepo)
	trafficUC := appuser.NewGetTrafficUseCase(userRepo)
	subLinkUC := appuser.NewGetSubscriptionLinkUseCase(subscriptionRepo, cfg.APIBaseURL)
	subLinkResetUC := appuser.NewResetSubscriptionLinkUseCase(subscriptionRepo, cfg.APIBaseURL, subscriptionCache)

	listPackagesUC := appcatalog.NewListActiveUseCase(packageRepo)
	listOrdersUC := apporder.NewListUseCase(orderRepo)
	getOrderUC := apporder.NewGetUseCase(orderRepo)

	rebateUC := apppurchase.NewReferralRebateUseCase(userRepo, orderRepo, transactionRepo, txManager)
	purchaseUC := apppurchase.NewUseCase(packageRepo, userRepo, orderRepo, transactionRepo, entitlementRepo, txManager, userPackageCache, dispatcher, m, rebateUC)
	createRechargeUC := apppurchase.NewCreateRechargeUseCase(stripeClient)
	rechargeWebhookUC := apppurchase.NewRechargeWebhookUseCase(stripeClient, userRepo, transactionRepo, txManager, m)

	materializeUC := appsubscription.NewMaterializeUseCase(subscriptionRepo, userRepo, entitlementRepo, nodeRepo, accessLogRepo, subscriptionCache, dispatcher)

	trafficProducer := stream.NewTrafficProducer(redisClient)

	getConfigUC := appnode.NewGetConfigUseCase(nodeRepo, userRepo)
	heartbeatUC := appnode.NewHeartbeatUseCase(nodeRepo, nodesCache)
	reportTrafficUC := appnode.NewReportTrafficUseCase(nodeRepo, trafficProducer)

	nodeMutationUC := appadmin.NewNodeMutationUseCase(nodeRepo, nodesCache, nodeConfigBus)
	listNodesUC := appadmin.NewListNodesUseCase(nodeRepo)
	packageMutationUC := appadmin.NewPackageMutationUseCase(packageRepo)
	listPackagesAdminUC := appadmin.NewListPackagesUseCase(packageRepo)
	adjustBalanceUC := appadmin.NewAdjustBalanceUseCase(userRepo, transactionRepo, txManager)
	adjustTrafficUC := appadmin.NewAdjustTrafficUseCase(userRepo, userPackageCache, txManager)
	overviewUC := appadmin.NewGetOverviewUseCase(nodeRepo)
	trafficStatsUC := appadmin.NewGetTrafficStatsUseCase(nodeRepo)
	accessLogsUC := appadmin.NewListAccessLogsUseCase(accessLogRepo)
	adminLogsUC := appadmin.NewListAdminLogsUseCase(adminLogRepo)
	recordAdminActionUC := appadmin.NewRecordAdminActionUseCase(adminLogRepo)
	clashPreviewUC := appadmin.NewClashPreviewUseCase(nodeRepo)

	h := &routes.Handlers{
		Auth:         handlers.NewAuthHandler(registerUC, loginUC, refreshUC),
		User:         handlers.NewUserHandler(balanceUC, referralUC, referralStatsUC, trafficUC, subLinkUC, subLinkResetUC),
		Package:      handlers.NewPackageHandler(listPackagesUC, purchaseUC),
		Order:        handlers.NewOrderHandler(listOrdersUC, getOrderUC),
		Subscription: handlers.NewSubscriptionHandler(materializeUC),
		NodeAgent:    handlers.NewNodeAgentHandler(getConfigUC, heartbeatUC, reportTrafficUC),
		Recharge:     handlers.NewRechargeHandler(createRechargeUC, rechargeWebhookUC),

		AdminNode:    adminhandlers.NewNodeHandler(nodeMutationUC, listNodesUC, recordAdminActionUC),
		AdminPackage: adminhandlers.NewPackageHandler(packageMutationUC, listPackagesAdminUC, recordAdminActionUC),
		AdminUser:    adminhandlers.NewUserHandler(adjustBalanceUC, adjustTrafficUC, recordAdminActionUC),
		AdminStats:   adminhandlers.NewStatsHandler(overviewUC, trafficStatsUC, accessLogsUC, adminLogsUC),
		AdminClash:   adminhandlers.NewClashHandler(clashPreviewUC),
	}

	deps := &routes.Dependencies{
		JWT:         jwtService,
		Enforcer:    enforcer,
		Metrics:     m,
		CORSOrigins: cfg.CORSOrigins,
		RedisClient: redisClient,
	}

	engine := routes.New(h, deps)

	srv := &http.Server{
		Addr:         cfg.APIHost + ":" + cfg.APIPort,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()
	log.Info("server listening", "addr", srv.Addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		return err
	}
	log.Info("server exited gracefully")
	return nil
}
