package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	code, err := GenerateCode(func(string) bool { return false })
	require.NoError(t, err)

	assert.Len(t, code, CodeLength)
	for _, c := range code {
		assert.True(t, c >= '0' && c <= '9', "code must be digits only, got %q", code)
	}
}

func TestGenerateCodeRetriesTakenCodes(t *testing.T) {
	seen := map[string]bool{}
	rejected := 0

	code, err := GenerateCode(func(code string) bool {
		seen[code] = true
		if rejected < 3 {
			rejected++
			return true
		}
		return false
	})
	require.NoError(t, err)

	assert.Equal(t, 3, rejected)
	assert.Len(t, code, CodeLength)
}

func TestGenerateCodeExhausted(t *testing.T) {
	_, err := GenerateCode(func(string) bool { return true })
	assert.ErrorIs(t, err, ErrCodesExhausted)
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"pending", "ready", "playing", "finished"} {
		status, err := ParseStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, Status(valid), status)
	}

	for _, invalid := range []string{"", "waiting", "PENDING", "done"} {
		_, err := ParseStatus(invalid)
		assert.ErrorIs(t, err, ErrInvalidStatus, "status %q", invalid)
	}
}

func TestTransition(t *testing.T) {
	testCases := []struct {
		name    string
		from    Status
		to      Status
		wantErr bool
	}{
		{name: "pending to ready", from: StatusPending, to: StatusReady},
		{name: "ready to playing", from: StatusReady, to: StatusPlaying},
		{name: "playing to finished", from: StatusPlaying, to: StatusFinished},
		{name: "skip a step", from: StatusPending, to: StatusPlaying, wantErr: true},
		{name: "backward", from: StatusPlaying, to: StatusReady, wantErr: true},
		{name: "self transition", from: StatusReady, to: StatusReady, wantErr: true},
		{name: "finished is terminal", from: StatusFinished, to: StatusPending, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			room := NewRoom("123456", "Host", 4, time.Now(), time.Minute)
			room.Status = tc.from

			err := room.Transition(tc.to)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTransition)
				assert.Equal(t, tc.from, room.Status, "status must not change on a rejected transition")
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.to, room.Status)
			}
		})
	}
}

func TestNewRoomSeedsHost(t *testing.T) {
	now := time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)

	room := NewRoom("042137", "Alice", 10, now, 30*time.Minute)

	assert.Equal(t, []string{"Alice"}, room.Players)
	assert.Equal(t, StatusPending, room.Status)
	assert.Equal(t, now, room.CreatedAt)
	assert.Equal(t, now.Add(30*time.Minute), room.ExpiresAt)
}

func TestAddPlayer(t *testing.T) {
	room := NewRoom("123456", "Alice", 2, time.Now(), time.Minute)

	require.NoError(t, room.AddPlayer("Bob"))
	assert.Equal(t, []string{"Alice", "Bob"}, room.Players)

	assert.ErrorIs(t, room.AddPlayer("Bob"), ErrPlayerNameTaken)
	assert.ErrorIs(t, room.AddPlayer("Carol"), ErrRoomFull)

	// Names match case-sensitively, but the room is already full here.
	room = NewRoom("123456", "Alice", 3, time.Now(), time.Minute)
	require.NoError(t, room.AddPlayer("alice"))
}

func TestExpired(t *testing.T) {
	now := time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)
	room := NewRoom("123456", "Host", 4, now, 30*time.Minute)

	assert.False(t, room.Expired(now))
	assert.False(t, room.Expired(now.Add(30*time.Minute-time.Second)))
	assert.True(t, room.Expired(now.Add(30*time.Minute)), "the deadline itself counts as expired")
	assert.True(t, room.Expired(now.Add(time.Hour)))
}

func TestCloneIsIndependent(t *testing.T) {
	room := NewRoom("123456", "Alice", 4, time.Now(), time.Minute)
	clone := room.Clone()

	require.NoError(t, room.AddPlayer("Bob"))

	assert.Equal(t, []string{"Alice"}, clone.Players)
	assert.Equal(t, []string{"Alice", "Bob"}, room.Players)
}
