package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "ALICE@EXAMPLE.COM", Normalize("Alice@example.com"))
	assert.Equal(t, "ADMIN", Normalize("admin"))
	assert.Equal(t, "ÉMILE", Normalize("émile"))
	assert.Equal(t, "", Normalize(""))
}
