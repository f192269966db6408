package repository

import (
	"context"
	"testing"
	"time"

	"rentadmin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStateRepository(t *testing.T) {
	repo := NewMemoryStateRepository(time.Hour)
	ctx := context.Background()

	t.Run("SetAndGetState", func(t *testing.T) {
		state := &models.UIState{OperatorID: "op-1", WidgetX: 40, WidgetY: 120}
		err := repo.SetState(ctx, state)
		require.NoError(t, err)

		got, err := repo.GetState(ctx, "op-1")
		require.NoError(t, err)
		assert.Equal(t, state, got)
	})

	t.Run("GetUnknownOperator", func(t *testing.T) {
		got, err := repo.GetState(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("ClearState", func(t *testing.T) {
		err := repo.ClearState(ctx, "op-1")
		require.NoError(t, err)
		got, _ := repo.GetState(ctx, "op-1")
		assert.Nil(t, got)
	})

	t.Run("Expiry", func(t *testing.T) {
		short := NewMemoryStateRepository(10 * time.Millisecond)
		require.NoError(t, short.SetState(ctx, &models.UIState{OperatorID: "op-2"}))

		time.Sleep(20 * time.Millisecond)
		got, err := short.GetState(ctx, "op-2")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
