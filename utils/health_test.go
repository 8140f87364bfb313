package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthMonitor_CheckNow(t *testing.T) {
	m := NewHealthMonitor(map[string]HealthCheck{
		"actor": func(context.Context) error { return nil },
		"redis": func(context.Context) error { return errors.New("down") },
	})

	status := m.CheckNow(context.Background())

	assert.True(t, status.Services["actor"])
	assert.False(t, status.Services["redis"])
	assert.False(t, status.Healthy())
	assert.Equal(t, status, m.Status())
}

func TestHealthStatus_EmptyIsHealthy(t *testing.T) {
	assert.True(t, HealthStatus{}.Healthy())
}
