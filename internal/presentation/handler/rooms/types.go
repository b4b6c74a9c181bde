package rooms

// createRoomRequest creates a new game room; both fields are optional
type createRoomRequest struct {
	HostName   string `json:"host_name" example:"Player1"` // Display name of the host
	MaxPlayers *int   `json:"max_players" example:"10"`    // Room capacity, defaults to the configured value
}

// createRoomResponse is returned after creating a room
type createRoomResponse struct {
	RoomCode   string `json:"room_code" example:"042137"`                // 6-digit join code
	HostName   string `json:"host_name" example:"Player1"`               // Host display name
	CreatedAt  string `json:"created_at" example:"2025-11-10T12:00:00Z"` // Creation timestamp
	ExpiresAt  string `json:"expires_at" example:"2025-11-10T12:30:00Z"` // Fixed expiry deadline
	MaxPlayers int    `json:"max_players" example:"10"`                  // Room capacity
}

// joinRoomRequest joins an existing room by code
type joinRoomRequest struct {
	RoomCode   string `json:"room_code" example:"042137"`
	PlayerName string `json:"player_name" example:"Player2"`
}

// joinRoomResponse is returned after a successful join
type joinRoomResponse struct {
	RoomCode    string   `json:"room_code"`
	PlayerName  string   `json:"player_name"`
	Players     []string `json:"players"`
	HostName    string   `json:"host_name"`
	PlayerCount int      `json:"player_count"`
	MaxPlayers  int      `json:"max_players"`
	Status      string   `json:"status"`
}

// roomResponse is the full room snapshot
type roomResponse struct {
	RoomCode    string   `json:"room_code"`
	HostName    string   `json:"host_name"`
	Players     []string `json:"players"`
	PlayerCount int      `json:"player_count"`
	MaxPlayers  int      `json:"max_players"`
	Status      string   `json:"status"`
	CreatedAt   string   `json:"created_at"`
	ExpiresAt   string   `json:"expires_at"`
}

// updateStatusRequest moves the room along its status state machine
type updateStatusRequest struct {
	Status string `json:"status" example:"ready" enum:"pending,ready,playing,finished"`
}

type updateStatusResponse struct {
	RoomCode string `json:"room_code"`
	Status   string `json:"status"`
	Message  string `json:"message"`
}

// roomSummary is the listing view of a room
type roomSummary struct {
	RoomCode    string `json:"room_code"`
	HostName    string `json:"host_name"`
	PlayerCount int    `json:"player_count"`
	MaxPlayers  int    `json:"max_players"`
	Status      string `json:"status"`
}

type listRoomsResponse struct {
	Rooms []roomSummary `json:"rooms"`
	Total int           `json:"total"`
}
