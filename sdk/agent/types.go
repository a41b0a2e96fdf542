package agent

// NodeUser is the projection of one entitled account the control plane
// hands to an agent so it can provision inbound users (spec.md §4.4).
type NodeUser struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

// Config is the response body of GET /api/node/config.
type Config struct {
	NodeID   uint           `json:"node_id"`
	Name     string         `json:"name"`
	Host     string         `json:"host"`
	Port     int            `json:"port"`
	Protocol string         `json:"protocol"`
	Config   map[string]any `json:"config"`
	Users    []NodeUser     `json:"users"`
	MaxUsers int            `json:"max_users"`
}

// HeartbeatRequest is the request body of POST /api/node/heartbeat.
type HeartbeatRequest struct {
	NodeID            uint   `json:"node_id"`
	Secret            string `json:"secret"`
	Status            string `json:"status"`
	ActiveConnections *int   `json:"active_connections,omitempty"`
}

// TrafficSample is one user's upload/download delta since the last report.
type TrafficSample struct {
	UserID   uint   `json:"user_id"`
	Upload   uint64 `json:"upload"`
	Download uint64 `json:"download"`
}

// trafficReportRequest is the request body of POST /api/node/traffic.
type trafficReportRequest struct {
	NodeID  uint            `json:"node_id"`
	Secret  string          `json:"secret"`
	Samples []TrafficSample `json:"samples"`
}

// apiError mirrors the {"error":{"code","message"}} envelope every nodal
// error response uses (utils.ErrorResponse).
type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
