package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignRoomTokenReturnsTwoPartToken(t *testing.T) {
	claims := Claims{RoomID: "room-1", Origin: "http://127.0.0.1:8787", ExpiresAtMS: 12345}
	tok, err := Sign(claims, "secret")
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 2)
	assert.NotEmpty(t, parts[0])
	assert.NotEmpty(t, parts[1])
}

func TestVerifyRoundTripsClaims(t *testing.T) {
	claims := Claims{RoomID: "room-7", Origin: "http://example.test", ExpiresAtMS: 999}
	tok, err := Sign(claims, "shared-secret")
	require.NoError(t, err)

	got, err := Verify(tok, "shared-secret")
	require.NoError(t, err)
	assert.Equal(t, claims, got)
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	tok, err := Sign(Claims{RoomID: "room-1"}, "secret")
	require.NoError(t, err)

	tampered := tok[:len(tok)-1] + "x"
	_, err = Verify(tampered, "secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	tok, err := Sign(Claims{RoomID: "room-1"}, "secret-a")
	require.NoError(t, err)

	_, err = Verify(tok, "secret-b")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
