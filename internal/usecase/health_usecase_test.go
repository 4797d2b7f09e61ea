package usecase_test

import (
	"context"
	"errors"
	"testing"

	"job-board-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheck(t *testing.T) {
	ok := usecase.PingFunc(func(context.Context) error { return nil })
	down := usecase.PingFunc(func(context.Context) error { return errors.New("refused") })

	t.Run("Should report ok when every dependency answers", func(t *testing.T) {
		uc := usecase.NewHealthUsecase(map[string]usecase.Pinger{"database": ok, "redis": ok, "storage": nil})

		status, healthy := uc.Check(context.Background())
		assert.True(t, healthy)
		assert.Equal(t, map[string]string{"status": "ok", "database": "ok", "redis": "ok"}, status)
	})

	t.Run("Should degrade when a dependency is down", func(t *testing.T) {
		uc := usecase.NewHealthUsecase(map[string]usecase.Pinger{"database": ok, "redis": down})

		status, healthy := uc.Check(context.Background())
		assert.False(t, healthy)
		assert.Equal(t, "degraded", status["status"])
		assert.Equal(t, "unavailable", status["redis"])
	})
}
