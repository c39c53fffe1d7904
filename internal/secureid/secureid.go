// Copyright (c) 2026 Nexus Engineering <dev@nexusengineering.com>
// All rights reserved. See LICENSE for details.

// Package secureid encodes internal numeric row identifiers into opaque
// public tokens and decodes them back. Tokens are AES-GCM ciphertexts of
// "{id}::{marker}" under a server-held secret, base64url-encoded so they
// survive path segments, query parameters, and JSON bodies unchanged.
//
// The GCM nonce is derived from the plaintext with HMAC-SHA256, which
// makes encoding deterministic: the same id always yields the same token,
// so tokens can be cached and bookmarked. Rotating the secret permanently
// invalidates every previously issued token; that is accepted behavior.
package secureid

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strconv"
	"strings"
)

const separator = "::"

// Codec encodes and decodes row identifiers under one secret.
type Codec struct {
	aead    cipher.AEAD
	hmacKey []byte
	marker  string
}

// New derives a Codec from the application secret. The secret may be any
// non-empty string; the AES key and plaintext marker are both derived
// from it, so a token minted under a different secret fails the marker
// check even if it decrypts.
func New(secret string) *Codec {
	keys := sha256.Sum256([]byte("nexus-secureid:" + secret))
	block, err := aes.NewCipher(keys[:])
	if err != nil {
		// sha256 always yields a valid AES-256 key.
		panic(err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		panic(err)
	}

	markerSum := sha256.Sum256([]byte("nexus-marker:" + secret))
	nonceKey := sha256.Sum256([]byte("nexus-nonce:" + secret))

	return &Codec{
		aead:    aead,
		hmacKey: nonceKey[:],
		marker:  hex.EncodeToString(markerSum[:8]),
	}
}

// Encode derives the opaque public token for id. Encoding is
// deterministic under an unchanged secret.
func (c *Codec) Encode(id int64) string {
	plaintext := []byte(strconv.FormatInt(id, 10) + separator + c.marker)
	nonce := c.nonceFor(plaintext)
	sealed := c.aead.Seal(nil, nonce, plaintext, nil)
	return base64.RawURLEncoding.EncodeToString(append(nonce, sealed...))
}

// Decode reverses Encode. It returns (0, false) when the token is
// malformed, fails the integrity check, was minted under a different
// secret, or does not carry a positive numeric identifier. It never
// panics on attacker-controlled input.
func (c *Codec) Decode(token string) (int64, bool) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, false
	}
	ns := c.aead.NonceSize()
	if len(raw) < ns+c.aead.Overhead() {
		return 0, false
	}
	plaintext, err := c.aead.Open(nil, raw[:ns], raw[ns:], nil)
	if err != nil {
		return 0, false
	}

	idPart, marker, found := strings.Cut(string(plaintext), separator)
	if !found || marker != c.marker {
		return 0, false
	}
	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// nonceFor computes the deterministic GCM nonce for a plaintext.
func (c *Codec) nonceFor(plaintext []byte) []byte {
	mac := hmac.New(sha256.New, c.hmacKey)
	mac.Write(plaintext)
	return mac.Sum(nil)[:c.aead.NonceSize()]
}
