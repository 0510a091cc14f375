package canon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalSortsKeys(t *testing.T) {
	type payload struct {
		Zebra string `json:"zebra"`
		Apple string `json:"apple"`
	}

	c, err := Canonical(payload{Zebra: "z", Apple: "a"})
	require.NoError(t, err)
	assert.Equal(t, `{"apple":"a","zebra":"z"}`, c)
}

func TestCanonicalDoesNotEscapeHTML(t *testing.T) {
	type payload struct {
		Content string `json:"content"`
	}
	c, err := Canonical(payload{Content: "<script>&</script>"})
	require.NoError(t, err)
	assert.Contains(t, c, "<script>&</script>")
}

func TestHashCanonicalDeterministic(t *testing.T) {
	type payload struct {
		A int `json:"a"`
		B int `json:"b"`
	}
	h1, err := HashCanonical(payload{A: 1, B: 2})
	require.NoError(t, err)
	h2, err := HashCanonical(payload{A: 1, B: 2})
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
}

func TestSHA256HexMatchesKnownVector(t *testing.T) {
	// SHA-256("") = e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", SHA256Hex([]byte("")))
}
