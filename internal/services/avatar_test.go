package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parla-app/parla-backend/pkg/utils"
)

func TestInlineIngester(t *testing.T) {
	ctx := context.Background()
	ing := NewInlineIngester()

	t.Run("encodes a data URI", func(t *testing.T) {
		out, err := ing.Ingest(ctx, "image/jpeg", []byte{0xFF, 0xD8, 0xFF})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "data:image/jpeg;base64,"))
	})

	t.Run("defaults the content type", func(t *testing.T) {
		out, err := ing.Ingest(ctx, "", []byte{0x89, 0x50})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "data:image/png;base64,"))
	})

	t.Run("rejects images over 5 MB", func(t *testing.T) {
		big := make([]byte, MaxAvatarBytes+1)
		_, err := ing.Ingest(ctx, "image/png", big)
		var verr *utils.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, utils.CodeSizeExceeded, verr.Code)
	})

	t.Run("accepts exactly 5 MB", func(t *testing.T) {
		exact := make([]byte, MaxAvatarBytes)
		_, err := ing.Ingest(ctx, "image/png", exact)
		assert.NoError(t, err)
	})
}

func TestUpdateAvatar(t *testing.T) {
	ctx := context.Background()

	t.Run("oversized upload leaves the record unchanged", func(t *testing.T) {
		u := aliUser()
		u.Avatar = "data:image/png;base64,old"
		store := newMemStore(u)
		svc := newTestService(store, newMemBios())

		big := make([]byte, MaxAvatarBytes+1) // 5 MB + 1
		_, err := svc.UpdateAvatar(ctx, u.ID, "image/png", big)
		requireCode(t, err, utils.CodeSizeExceeded)

		stored, _ := store.Get(ctx, u.ID)
		assert.Equal(t, "data:image/png;base64,old", stored.Avatar)
	})

	t.Run("stores the encoded avatar", func(t *testing.T) {
		u := aliUser()
		store := newMemStore(u)
		svc := newTestService(store, newMemBios())

		avatar, err := svc.UpdateAvatar(ctx, u.ID, "image/jpeg", []byte{0xFF, 0xD8})
		require.NoError(t, err)

		stored, _ := store.Get(ctx, u.ID)
		assert.Equal(t, avatar, stored.Avatar)
	})

	t.Run("delete clears the field", func(t *testing.T) {
		u := aliUser()
		u.Avatar = "data:image/png;base64,old"
		store := newMemStore(u)
		svc := newTestService(store, newMemBios())

		require.NoError(t, svc.DeleteAvatar(ctx, u.ID))

		stored, _ := store.Get(ctx, u.ID)
		assert.Empty(t, stored.Avatar)
	})

	t.Run("missing record", func(t *testing.T) {
		svc := newTestService(newMemStore(), newMemBios())
		_, err := svc.UpdateAvatar(ctx, "c8d1f7aa-2f4b-47cd-9a3e-5b6d7e8f9a0b", "image/png", []byte{1})
		requireCode(t, err, utils.CodeRecordNotFound)
	})
}
