package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequireOwner(t *testing.T) {
	id := Identity{Username: "alice", UserID: 5}
	assert.NoError(t, id.RequireOwner(5))
	assert.ErrorIs(t, id.RequireOwner(7), ErrForbidden)
}

func TestIdentityContext(t *testing.T) {
	_, ok := IdentityFrom(context.Background())
	assert.False(t, ok)

	ctx := WithIdentity(context.Background(), Identity{Username: "alice", UserID: 5})
	got, ok := IdentityFrom(ctx)
	assert.True(t, ok)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, int64(5), got.UserID)
}
