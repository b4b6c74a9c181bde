package rooms

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/quizmatch/server/internal/domain"
	"github.com/quizmatch/server/internal/infrastructure/configs"
	"github.com/quizmatch/server/internal/infrastructure/json"
	"github.com/quizmatch/server/internal/infrastructure/logging"
	"github.com/quizmatch/server/internal/infrastructure/metrics"
	"github.com/quizmatch/server/internal/infrastructure/repository"
	"github.com/quizmatch/server/internal/infrastructure/validate"
)

const defaultHostName = "Host"

var (
	validateRoomCode = validate.Field("room_code",
		validate.Required(),
		validate.Length(domain.CodeLength),
		validate.DigitsOnly(),
	)
	validatePlayerName = validate.Field("player_name",
		validate.Required(),
		validate.MaxLength(50),
	)
)

type Handler struct {
	rooms  *repository.RoomRepository
	cfg    configs.RoomStoreConfig
	logger logging.Logger
}

func NewHandler(rooms *repository.RoomRepository, cfg configs.RoomStoreConfig, logger logging.Logger) *Handler {
	return &Handler{
		rooms:  rooms,
		cfg:    cfg,
		logger: logger,
	}
}

// CreateRoomHandler godoc
// @Summary      Create a new game room
// @Description  Creates a room with a fresh 6-digit code and the host as its first player
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        request body createRoomRequest false "Room creation parameters"
// @Success      201 {object} createRoomResponse "Room created"
// @Failure      400 {object} map[string]interface{} "Invalid input"
// @Router       /room/create [post]
func (h *Handler) CreateRoomHandler(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if r.ContentLength != 0 {
		if err := json.Read(r, &req); err != nil {
			json.WriteValidationError(w, err)
			return
		}
	}

	hostName := strings.TrimSpace(req.HostName)
	if hostName == "" {
		hostName = defaultHostName
	}

	maxPlayers := h.cfg.DefaultPlayers
	if req.MaxPlayers != nil {
		maxPlayers = *req.MaxPlayers
		if maxPlayers < 1 || maxPlayers > h.cfg.MaxPlayers {
			json.WriteBadRequestError(w, fmt.Sprintf("max_players must be between 1 and %d", h.cfg.MaxPlayers))
			return
		}
	}

	room, err := h.rooms.Create(r.Context(), hostName, maxPlayers)
	if err != nil {
		// Code-space exhaustion is fatal to this request, not to the process.
		h.logger.Error(logging.RoomStore, logging.ExternalService, "failed to create room", map[logging.ExtraKey]any{
			logging.ErrorMessage: err.Error(),
		})
		json.WriteError(w, http.StatusInternalServerError, err, "Could not allocate a room code")
		return
	}

	metrics.RoomsCreated.Inc()

	resp := createRoomResponse{
		RoomCode:   room.Code,
		HostName:   room.HostName,
		CreatedAt:  room.CreatedAt.UTC().Format(time.RFC3339),
		ExpiresAt:  room.ExpiresAt.UTC().Format(time.RFC3339),
		MaxPlayers: room.MaxPlayers,
	}

	json.Write(w, http.StatusCreated, resp)
}

// JoinRoomHandler godoc
// @Summary      Join a game room
// @Description  Adds a player to the room behind the given code
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        request body joinRoomRequest true "Join parameters"
// @Success      200 {object} joinRoomResponse "Joined"
// @Failure      400 {object} map[string]interface{} "Malformed code or missing name"
// @Failure      403 {object} map[string]interface{} "Room is full"
// @Failure      404 {object} map[string]interface{} "Room not found or expired"
// @Failure      409 {object} map[string]interface{} "Player name already taken"
// @Router       /room/join [post]
func (h *Handler) JoinRoomHandler(w http.ResponseWriter, r *http.Request) {
	var req joinRoomRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	roomCode := strings.TrimSpace(req.RoomCode)
	playerName := strings.TrimSpace(req.PlayerName)

	if err := validatePlayerName(playerName); err != nil {
		json.WriteValidationError(w, err)
		return
	}
	if err := validateRoomCode(roomCode); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	room, err := h.rooms.Join(r.Context(), roomCode, playerName)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRoomNotFound):
			json.WriteError(w, http.StatusNotFound, err, "Room not found or expired")
		case errors.Is(err, domain.ErrPlayerNameTaken):
			json.WriteError(w, http.StatusConflict, err, "Player name already exists in this room")
		case errors.Is(err, domain.ErrRoomFull):
			json.WriteError(w, http.StatusForbidden, err, "Room is full")
		default:
			json.WriteInternalError(w, err)
		}
		return
	}

	metrics.RoomsJoined.Inc()

	resp := joinRoomResponse{
		RoomCode:    room.Code,
		PlayerName:  playerName,
		Players:     room.Players,
		HostName:    room.HostName,
		PlayerCount: len(room.Players),
		MaxPlayers:  room.MaxPlayers,
		Status:      string(room.Status),
	}

	json.Write(w, http.StatusOK, resp)
}

// GetRoomHandler godoc
// @Summary      Get room details
// @Tags         rooms
// @Produce      json
// @Param        code path string true "6-digit room code"
// @Success      200 {object} roomResponse "Room snapshot"
// @Failure      400 {object} map[string]interface{} "Malformed code"
// @Failure      404 {object} map[string]interface{} "Room not found or expired"
// @Router       /room/{code} [get]
func (h *Handler) GetRoomHandler(w http.ResponseWriter, r *http.Request) {
	roomCode := chi.URLParam(r, "code")
	if err := validateRoomCode(roomCode); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	room, err := h.rooms.Get(r.Context(), roomCode)
	if err != nil {
		json.WriteError(w, http.StatusNotFound, err, "Room not found or expired")
		return
	}

	json.Write(w, http.StatusOK, roomResponse{
		RoomCode:    room.Code,
		HostName:    room.HostName,
		Players:     room.Players,
		PlayerCount: len(room.Players),
		MaxPlayers:  room.MaxPlayers,
		Status:      string(room.Status),
		CreatedAt:   room.CreatedAt.UTC().Format(time.RFC3339),
		ExpiresAt:   room.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// UpdateRoomStatusHandler godoc
// @Summary      Update room status
// @Description  Moves the room forward through pending → ready → playing → finished
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        code path string true "6-digit room code"
// @Param        request body updateStatusRequest true "Target status"
// @Success      200 {object} updateStatusResponse "Status updated"
// @Failure      400 {object} map[string]interface{} "Malformed code or unknown status"
// @Failure      404 {object} map[string]interface{} "Room not found or expired"
// @Failure      409 {object} map[string]interface{} "Transition not allowed"
// @Router       /room/{code} [put]
func (h *Handler) UpdateRoomStatusHandler(w http.ResponseWriter, r *http.Request) {
	roomCode := chi.URLParam(r, "code")
	if err := validateRoomCode(roomCode); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	var req updateStatusRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	status, err := domain.ParseStatus(strings.TrimSpace(req.Status))
	if err != nil {
		json.WriteBadRequestError(w, "Invalid status. Must be one of: pending, ready, playing, finished")
		return
	}

	room, err := h.rooms.UpdateStatus(r.Context(), roomCode, status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRoomNotFound):
			json.WriteError(w, http.StatusNotFound, err, "Room not found or expired")
		case errors.Is(err, domain.ErrInvalidTransition):
			json.WriteError(w, http.StatusConflict, err, fmt.Sprintf("Cannot transition to %q", status))
		default:
			json.WriteInternalError(w, err)
		}
		return
	}

	json.Write(w, http.StatusOK, updateStatusResponse{
		RoomCode: room.Code,
		Status:   string(room.Status),
		Message:  "Room status updated successfully",
	})
}

// ListRoomsHandler godoc
// @Summary      List all live rooms
// @Tags         rooms
// @Produce      json
// @Success      200 {object} listRoomsResponse "Live rooms"
// @Router       /rooms [get]
func (h *Handler) ListRoomsHandler(w http.ResponseWriter, r *http.Request) {
	rooms := h.rooms.List(r.Context())

	summaries := make([]roomSummary, 0, len(rooms))
	for _, room := range rooms {
		summaries = append(summaries, roomSummary{
			RoomCode:    room.Code,
			HostName:    room.HostName,
			PlayerCount: len(room.Players),
			MaxPlayers:  room.MaxPlayers,
			Status:      string(room.Status),
		})
	}

	json.Write(w, http.StatusOK, listRoomsResponse{
		Rooms: summaries,
		Total: len(summaries),
	})
}
