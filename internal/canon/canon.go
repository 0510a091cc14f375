// Package canon produces the canonical JSON form used for hashing and for
// the wire format: keys sorted lexicographically, no extra whitespace.
//
// Go's encoding/json already sorts map[string]interface{} keys
// alphabetically when marshaling, so round-tripping a value through a
// generic map gives us the same guarantee Python's json.dumps(sort_keys=True)
// gives the original node, without hand-rolling a key sorter.
package canon

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Canonical returns the sorted-key JSON encoding of v.
func Canonical(v interface{}) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}

	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return "", err
	}

	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(generic); err != nil {
		return "", err
	}

	out := buf.Bytes()
	if len(out) > 0 && out[len(out)-1] == '\n' {
		out = out[:len(out)-1]
	}
	return string(out), nil
}

// SHA256Hex returns the lowercase hex SHA-256 digest of data.
func SHA256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashCanonical canonicalizes v and returns its SHA-256 hex digest.
func HashCanonical(v interface{}) (string, error) {
	c, err := Canonical(v)
	if err != nil {
		return "", err
	}
	return SHA256Hex([]byte(c)), nil
}
