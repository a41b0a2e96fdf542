package models

const (
	TableUsers            = "users"
	TablePackages         = "packages"
	TableOrders           = "orders"
	TableUserPackages     = "user_packages"
	TableNodes            = "nodes"
	TableSubscriptions    = "subscriptions"
	TableCoinTransactions = "coin_transactions"
	TableTrafficLogs      = "traffic_logs"
	TableAccessLogs       = "access_logs"
	TableAdminLogs        = "admin_logs"
	TableProcessedWebhook = "processed_webhook_events"
)
