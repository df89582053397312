package redis

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

// TestRedisIntegration exercises the client against a real Redis.
func TestRedisIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	host, port, containerInstance := initializeRedis(ctx, t)
	defer func() {
		if err := containerInstance.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}()

	var client *RedisClient

	app := fx.New(
		FXModule,
		fx.Provide(
			func() Config { return Config{Enabled: true, Host: host, Port: port} },
		),
		fx.Populate(&client),
	)

	require.NoError(t, app.Start(ctx))
	defer app.Stop(ctx)
	require.NotNil(t, client)

	t.Run("Set and Get", func(t *testing.T) {
		require.NoError(t, client.Set(ctx, "test-key", "test-value", 0))

		value, err := client.Get(ctx, "test-key")
		require.NoError(t, err)
		assert.Equal(t, "test-value", value)
	})

	t.Run("Missing key is Nil", func(t *testing.T) {
		_, err := client.Get(ctx, "no-such-key")
		assert.True(t, IsNilError(err))
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, client.Set(ctx, "delete-key", "value", 0))

		deleted, err := client.Delete(ctx, "delete-key")
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted)
	})

	t.Run("JSON and MGet", func(t *testing.T) {
		require.NoError(t, client.SetJSON(ctx, "vec:a", []float32{0.25, 0.5}, time.Minute))

		var got []float32
		require.NoError(t, client.GetJSON(ctx, "vec:a", &got))
		assert.Equal(t, []float32{0.25, 0.5}, got)

		values, err := client.MGet(ctx, "vec:a", "vec:missing")
		require.NoError(t, err)
		require.Len(t, values, 2)
		assert.Equal(t, "[0.25,0.5]", values[0])
		assert.Nil(t, values[1])
	})

	t.Run("TTL expiry", func(t *testing.T) {
		require.NoError(t, client.Set(ctx, "short-lived", "v", 500*time.Millisecond))
		assert.Eventually(t, func() bool {
			_, err := client.Get(ctx, "short-lived")
			return IsNilError(err)
		}, 5*time.Second, 100*time.Millisecond)
	})

	t.Run("Lock", func(t *testing.T) {
		lock, err := client.AcquireLock(ctx, "lock:ingest:1", 10*time.Second)
		require.NoError(t, err)

		_, err = client.AcquireLock(ctx, "lock:ingest:1", 10*time.Second)
		assert.ErrorIs(t, err, ErrLockNotAcquired)

		require.NoError(t, lock.Release(ctx))
		assert.ErrorIs(t, lock.Release(ctx), ErrLockNotHeld)

		again, err := client.AcquireLock(ctx, "lock:ingest:1", 10*time.Second)
		require.NoError(t, err)
		require.NoError(t, again.Release(ctx))
	})

	t.Run("Concurrent lock", func(t *testing.T) {
		var wg sync.WaitGroup
		var mu sync.Mutex
		winners := 0
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := client.AcquireLock(ctx, "lock:ingest:2", 10*time.Second); err == nil {
					mu.Lock()
					winners++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, winners)
	})
}

func TestDisabledClientIsNil(t *testing.T) {
	var client *RedisClient

	app := fx.New(
		FXModule,
		fx.Provide(func() Config { return Config{} }),
		fx.Populate(&client),
	)
	require.NoError(t, app.Err())
	assert.Nil(t, client)
}

// Helper functions

func initializeRedis(ctx context.Context, t *testing.T) (string, int, testcontainers.Container) {
	hostPort, err := getFreePort()
	require.NoError(t, err)

	containerInstance, err := createRedisContainer(ctx, hostPort)
	require.NoError(t, err)

	port, err := containerInstance.MappedPort(ctx, "6379")
	require.NoError(t, err)

	host, err := containerInstance.Host(ctx)
	require.NoError(t, err)

	// Wait for Redis to be ready
	require.Eventually(t, func() bool {
		conn, err := net.DialTimeout("tcp", net.JoinHostPort(host, port.Port()), 2*time.Second)
		if err != nil {
			return false
		}
		_ = conn.Close()
		return true
	}, 30*time.Second, 500*time.Millisecond, "Redis port not ready")

	return host, port.Int(), containerInstance
}

func createRedisContainer(ctx context.Context, hostPort string) (testcontainers.Container, error) {
	portBindings := nat.PortMap{
		"6379/tcp": []nat.PortBinding{{HostPort: hostPort}},
	}

	req := testcontainers.ContainerRequest{
		Image: "redis:7-alpine",
		ExposedPorts: []string{
			"6379/tcp",
		},
		HostConfigModifier: func(cfg *container.HostConfig) {
			cfg.PortBindings = portBindings
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("6379/tcp").WithStartupTimeout(30*time.Second),
			wait.ForLog("Ready to accept connections").WithStartupTimeout(30*time.Second),
		),
	}

	var containerInstance testcontainers.Container
	var lastErr error

	for attempt := 0; attempt < 3; attempt++ {
		containerInstance, lastErr = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
		if lastErr == nil {
			return containerInstance, nil
		}

		if strings.Contains(lastErr.Error(), "docker.sock") {
			time.Sleep(time.Duration(attempt+1) * time.Second)
			continue
		}

		break
	}

	return nil, fmt.Errorf("failed to start Redis container after 3 attempts: %w", lastErr)
}

func getFreePort() (string, error) {
	l, err := net.Listen("tcp", ":0")
	if err != nil {
		return "", err
	}
	defer l.Close()
	addr := l.Addr().(*net.TCPAddr)
	return strconv.Itoa(addr.Port), nil
}
