package promoted

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promotedlogger/pkg/models"
)

func TestComputeHash_Deterministic(t *testing.T) {
	h := NewHasher("sha256")
	user := models.User{
		UserID:    "u-1",
		LogUserID: "lu-1",
		Properties: map[string]interface{}{
			"b": 2,
			"a": 1,
			"c": 3,
		},
	}

	first, err := h.ComputeHash(user)
	require.NoError(t, err)
	second, err := h.ComputeHash(user)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
}

func TestComputeHash_DistinguishesRecords(t *testing.T) {
	h := NewHasher("sha256")

	a, err := h.ComputeHash(models.User{UserID: "u-1"})
	require.NoError(t, err)
	b, err := h.ComputeHash(models.User{UserID: "u-2"})
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestComputeHash_Algorithms(t *testing.T) {
	user := models.User{UserID: "u-1"}

	sha, err := NewHasher("sha256").ComputeHash(user)
	require.NoError(t, err)
	md, err := NewHasher("md5").ComputeHash(user)
	require.NoError(t, err)

	assert.Len(t, sha, 64)
	assert.Len(t, md, 32)
	assert.NotEqual(t, sha, md)

	// Unknown algorithms fall back to sha256.
	fallback, err := NewHasher("whirlpool").ComputeHash(user)
	require.NoError(t, err)
	assert.Equal(t, sha, fallback)
}

func TestComputeHash_UnserializableRecord(t *testing.T) {
	h := NewHasher("sha256")

	_, err := h.ComputeHash(map[string]interface{}{"fn": func() {}})
	assert.Error(t, err)
}
