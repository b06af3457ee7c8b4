// Package ident generates and validates the 24-hex-character record ids
// used for news and comments.
package ident

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"time"
)

// New returns a 24-character hex id: a 4-byte unix timestamp followed by
// 8 random bytes. Ids sort roughly by creation time.
func New() string {
	var b [12]byte
	binary.BigEndian.PutUint32(b[:4], uint32(time.Now().Unix()))
	if _, err := rand.Read(b[4:]); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(b[:])
}

// IsValid reports whether s has the id shape: exactly 24 hex characters.
// Anything else is rejected before a lookup is attempted.
func IsValid(s string) bool {
	if len(s) != 24 {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
