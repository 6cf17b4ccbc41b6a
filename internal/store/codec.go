package store

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// SlotName is the single named durable-storage slot holding the serialized
// state. No schema version is stored; a payload that fails to verify or
// parse yields a fresh state.
const SlotName = "outfits-store"

const slotTTL = 30 * 24 * time.Hour

// Codec is the explicit serialize/deserialize boundary between the
// in-memory state and its durable mirror, an HMAC-signed cookie.
type Codec struct {
	key    []byte
	secure bool
}

// NewCodec builds a codec with the given signing key. When the key is empty
// a process-ephemeral one is generated; sessions then do not survive a
// restart, so production deployments must set a key.
func NewCodec(key []byte, secure bool, logger *zap.Logger) *Codec {
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			logger.Fatal("store: generate ephemeral signing key", zap.Error(err))
		}
		logger.Warn("store: using ephemeral signing key; set OUTFITS_WEB_SESSION_SIGNING_KEY for production")
	}
	return &Codec{key: key, secure: secure}
}

// Encode serializes and signs the state into the slot value.
func (c *Codec) Encode(s *State) string {
	b, _ := json.Marshal(s)
	payload := base64.RawURLEncoding.EncodeToString(b)
	mac := hmac.New(sha256.New, c.key)
	mac.Write(b)
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
	return payload + "." + sig
}

// Decode verifies and parses a slot value. The boolean reports whether a
// valid state was recovered.
func (c *Codec) Decode(value string) (*State, bool) {
	parts := strings.Split(value, ".")
	if len(parts) != 2 {
		return nil, false
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, false
	}
	sig, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, false
	}
	mac := hmac.New(sha256.New, c.key)
	mac.Write(payload)
	if !hmac.Equal(sig, mac.Sum(nil)) {
		return nil, false
	}
	var s State
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, false
	}
	return &s, true
}

// Read rehydrates the state from the request's slot cookie. The boolean
// reports whether the slot was present and valid.
func (c *Codec) Read(r *http.Request) (*State, bool) {
	ck, err := r.Cookie(SlotName)
	if err != nil || ck.Value == "" {
		return nil, false
	}
	return c.Decode(ck.Value)
}

// Write mirrors the state into the slot cookie.
func (c *Codec) Write(w http.ResponseWriter, s *State) {
	http.SetCookie(w, &http.Cookie{
		Name:     SlotName,
		Value:    c.Encode(s),
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(slotTTL),
	})
}
