package health

// healthResponse represents the health status of the API
type healthResponse struct {
	Status        string `json:"status" example:"healthy"`                 // Health status (healthy or unhealthy)
	Timestamp     string `json:"timestamp" example:"2024-01-01T12:00:00Z"` // Current server timestamp in RFC3339 format
	Uptime        string `json:"uptime" example:"2h30m45s"`                // Server uptime since start
	RoomsActive   int    `json:"rooms_active" example:"3"`                 // Live, non-expired rooms
	QuizzesLoaded int    `json:"quizzes_loaded" example:"12"`              // Quizzes in the registry
}
