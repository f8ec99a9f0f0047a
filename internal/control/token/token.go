// Package token mints and verifies room admission tokens: a base64url,
// unpadded JSON claims payload and an HMAC-SHA256 signature over that
// encoded payload, joined with a dot. Grounded on
// shared/room_token.rs's sign_room_token.
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
)

// Claims is the signed payload granting a client entry to one room.
type Claims struct {
	RoomID      string `json:"roomId"`
	Origin      string `json:"origin"`
	ExpiresAtMS int64  `json:"exp"`
}

var encoding = base64.URLEncoding.WithPadding(base64.NoPadding)

// Sign produces a two-part "payload.signature" token for claims, HMAC-SHA256
// signed with secret.
func Sign(claims Claims, secret string) (string, error) {
	payload, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	payloadB64 := encoding.EncodeToString(payload)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payloadB64))
	sigB64 := encoding.EncodeToString(mac.Sum(nil))

	return payloadB64 + "." + sigB64, nil
}

// ErrInvalidToken is returned for a malformed token or one whose
// signature doesn't match.
var ErrInvalidToken = errors.New("token: invalid room token")

// Verify checks a token's signature against secret and, if valid,
// returns its decoded claims.
func Verify(tokenStr, secret string) (Claims, error) {
	parts := strings.SplitN(tokenStr, ".", 2)
	if len(parts) != 2 {
		return Claims{}, ErrInvalidToken
	}
	payloadB64, sigB64 := parts[0], parts[1]

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payloadB64))
	expectedSig := encoding.EncodeToString(mac.Sum(nil))

	if subtle.ConstantTimeCompare([]byte(expectedSig), []byte(sigB64)) != 1 {
		return Claims{}, ErrInvalidToken
	}

	payload, err := encoding.DecodeString(payloadB64)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}
