//go:build integration

package minio

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/turtacn/KeyIP-PatentClient/internal/infrastructure/cache"
	"github.com/turtacn/KeyIP-PatentClient/internal/infrastructure/monitoring/logging"
)

func startMinIO(t *testing.T) *MinIOClient {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "minio/minio:latest",
			ExposedPorts: []string{"9000/tcp"},
			Env: map[string]string{
				"MINIO_ROOT_USER":     "keyip",
				"MINIO_ROOT_PASSWORD": "keyip-secret",
			},
			Cmd:        []string{"server", "/data"},
			WaitingFor: wait.ForHTTP("/minio/health/live").WithPort("9000/tcp").WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "9000")
	require.NoError(t, err)

	client, err := NewMinIOClient(&MinIOConfig{
		Endpoint:        fmt.Sprintf("%s:%s", host, port.Port()),
		AccessKeyID:     "keyip",
		SecretAccessKey: "keyip-secret",
		Bucket:          "keyip-it",
	}, logging.NewNopLogger())
	require.NoError(t, err)
	return client
}

func TestObjectCache_Integration(t *testing.T) {
	c := NewObjectCache(startMinIO(t), "peds", logging.NewNopLogger())
	ctx := context.Background()

	_, err := c.Get(ctx, "missing.json")
	assert.True(t, cache.IsMiss(err))

	require.NoError(t, c.Put(ctx, "a1.json", []byte(`{"numFound":1}`)))
	got, err := c.Get(ctx, "a1.json")
	require.NoError(t, err)
	assert.Equal(t, `{"numFound":1}`, string(got))

	n, err := c.Sweep(ctx, time.Hour)
	require.NoError(t, err)
	assert.Zero(t, n)

	c.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	n, err = c.Sweep(ctx, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

//Personal.AI order the ending
