package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldPrefixesErrors(t *testing.T) {
	v := Field("room_code", Required(), Length(6), DigitsOnly())

	require.NoError(t, v("123456"))

	assert.EqualError(t, v(""), "room_code: this field is required")
	assert.EqualError(t, v("123"), "room_code: must be exactly 6 characters")
	assert.EqualError(t, v("12345a"), "room_code: must contain only digits")
}

func TestCompose(t *testing.T) {
	v := Compose(Required(), MaxLength(3))

	require.NoError(t, v("abc"))
	assert.Error(t, v(""))
	assert.Error(t, v("abcd"))
}

func TestOneOf(t *testing.T) {
	v := OneOf("pending", "ready")

	require.NoError(t, v("ready"))
	assert.EqualError(t, v("done"), "must be one of: pending, ready")
}

func TestMatches(t *testing.T) {
	v := Matches(`^\d{6}$`, "Invalid room code format. Must be 6 digits")

	require.NoError(t, v("042137"))
	assert.EqualError(t, v("42"), "Invalid room code format. Must be 6 digits")
}
