// Package pagination implements the opaque keyset cursors handed to polling clients.
package pagination

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// ErrInvalidToken is returned for tokens this package did not produce, or
// that were issued for a different scope.
var ErrInvalidToken = errors.New("invalid pagination token")

// Cursor marks the last row id a client has seen within one scope
// (for chat, one conversation).
type Cursor struct {
	Scope   string `json:"s"`
	AfterID uint64 `json:"a"`
}

// PairScope names the conversation between two users independent of direction.
func PairScope(a, b uint64) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("pair:%d:%d", a, b)
}

// Encode converts a Cursor into an unpadded URL-safe token.
func Encode(c Cursor) (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal cursor: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Decode parses token and checks it belongs to scope.
// An empty token yields the zero cursor for scope (first page).
func Decode(token, scope string) (Cursor, error) {
	if token == "" {
		return Cursor{Scope: scope}, nil
	}

	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, ErrInvalidToken
	}
	var c Cursor
	if err := json.Unmarshal(b, &c); err != nil || c.Scope != scope {
		return Cursor{}, ErrInvalidToken
	}
	return c, nil
}
