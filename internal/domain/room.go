package domain

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
	"time"
)

const (
	CodeLength = 6

	codeDigits      = "0123456789"
	maxCodeAttempts = 1000
)

var (
	digitCount = big.NewInt(int64(len(codeDigits)))

	ErrRoomNotFound      = errors.New("room not found")
	ErrPlayerNameTaken   = errors.New("player name already exists in this room")
	ErrRoomFull          = errors.New("room is full")
	ErrInvalidStatus     = errors.New("invalid room status")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrCodesExhausted    = errors.New("room code space exhausted")
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusReady    Status = "ready"
	StatusPlaying  Status = "playing"
	StatusFinished Status = "finished"
)

// allowedTransitions is the explicit forward-edge table. Anything not listed,
// including skips, backward moves and self-transitions, is rejected.
// StatusFinished is terminal.
var allowedTransitions = map[Status]Status{
	StatusPending: StatusReady,
	StatusReady:   StatusPlaying,
	StatusPlaying: StatusFinished,
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusReady, StatusPlaying, StatusFinished:
		return Status(s), nil
	}

	return "", ErrInvalidStatus
}

func (s Status) CanTransitionTo(next Status) bool {
	return allowedTransitions[s] == next
}

type Room struct {
	Code       string    `json:"code"`
	HostName   string    `json:"host_name"`
	Players    []string  `json:"players"`
	MaxPlayers int       `json:"max_players"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// NewRoom seeds the player list with the host. The expiry deadline is fixed at
// creation and never extended by activity.
func NewRoom(code, hostName string, maxPlayers int, now time.Time, expiry time.Duration) *Room {
	return &Room{
		Code:       code,
		HostName:   hostName,
		Players:    []string{hostName},
		MaxPlayers: maxPlayers,
		Status:     StatusPending,
		CreatedAt:  now,
		ExpiresAt:  now.Add(expiry),
	}
}

// Expired reports whether the room is gone at the given instant. The deadline
// itself counts as expired.
func (r *Room) Expired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

// HasPlayer matches case-sensitively.
func (r *Room) HasPlayer(name string) bool {
	for _, p := range r.Players {
		if p == name {
			return true
		}
	}

	return false
}

// AddPlayer appends a player, preserving insertion order. The caller must hold
// the store lock.
func (r *Room) AddPlayer(name string) error {
	if r.HasPlayer(name) {
		return ErrPlayerNameTaken
	}
	if len(r.Players) >= r.MaxPlayers {
		return ErrRoomFull
	}

	r.Players = append(r.Players, name)

	return nil
}

func (r *Room) Transition(next Status) error {
	if !r.Status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}

	r.Status = next

	return nil
}

// Clone returns a deep copy so callers never share the store's mutable state.
func (r *Room) Clone() *Room {
	clone := *r
	clone.Players = append([]string(nil), r.Players...)

	return &clone
}

// GenerateCode produces a code of exactly CodeLength digits, each chosen
// uniformly at random (leading zeros are valid), retried until taken reports
// it free. Retries are bounded; running out signals ErrCodesExhausted.
func GenerateCode(taken func(code string) bool) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		var sb strings.Builder
		sb.Grow(CodeLength)

		for i := 0; i < CodeLength; i++ {
			n, err := rand.Int(rand.Reader, digitCount)
			if err != nil {
				return "", err
			}
			sb.WriteByte(codeDigits[n.Int64()])
		}

		if code := sb.String(); !taken(code) {
			return code, nil
		}
	}

	return "", ErrCodesExhausted
}
