package stringutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNullIfBlank(t *testing.T) {
	assert.Nil(t, NullIfBlank(""))
	assert.Nil(t, NullIfBlank("  \t"))
	assert.Equal(t, "https://example.com/img.png", NullIfBlank("https://example.com/img.png"))
}

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, NullIfEmpty(nil))
	assert.Nil(t, NullIfEmpty([]byte{}))
	assert.Equal(t, []byte{0x01}, NullIfEmpty([]byte{0x01}))
}
