package postgres

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/Aleph-Alpha/tagsearch/v1/logger"
)

type testRow struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex"`
}

// PostgresContainer represents a Postgres container for testing
type PostgresContainer struct {
	testcontainers.Container
	Config Config
}

// setupPostgresContainer sets up a Postgres container for testing
func setupPostgresContainer(ctx context.Context) (*PostgresContainer, error) {
	port, err := getFreePort()
	if err != nil {
		return nil, fmt.Errorf("could not get free port: %w", err)
	}

	portBindings := nat.PortMap{
		"5432/tcp": []nat.PortBinding{{HostPort: fmt.Sprintf("%d", port)}},
	}

	req := testcontainers.ContainerRequest{
		Image: "postgres:15",
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "testdb",
		},
		ExposedPorts: []string{"5432/tcp"},
		HostConfigModifier: func(cfg *container.HostConfig) {
			cfg.PortBindings = portBindings
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort("5432/tcp"),
		).WithDeadline(60 * time.Second),
	}

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, fmt.Errorf("failed to get host: %w", err)
	}
	mappedPort, err := c.MappedPort(ctx, "5432")
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, fmt.Errorf("failed to get mapped port: %w", err)
	}

	return &PostgresContainer{
		Container: c,
		Config: Config{Connection: Connection{
			Host:     host,
			Port:     mappedPort.Port(),
			User:     "testuser",
			Password: "testpass",
			DbName:   "testdb",
			SSLMode:  "disable",
		}},
	}, nil
}

// getFreePort gets a free port from the OS
func getFreePort() (int, error) {
	addr, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}
	defer func() { _ = addr.Close() }()

	return addr.Addr().(*net.TCPAddr).Port, nil
}

func TestPostgresWithFXModule(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	pgContainer, err := setupPostgresContainer(ctx)
	require.NoError(t, err)
	defer func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}()

	var pg *Postgres
	app := fxtest.New(t,
		fx.Provide(
			func() Config { return pgContainer.Config },
			logger.NewNop,
		),
		FXModule,
		fx.Populate(&pg),
	)
	app.RequireStart()
	defer app.RequireStop()

	require.NotNil(t, pg)
	require.NoError(t, pg.HealthCheck(ctx))
	require.NoError(t, pg.Migrate(ctx, &testRow{}))

	t.Run("DuplicateKeyIsTranslated", func(t *testing.T) {
		require.NoError(t, pg.DB().WithContext(ctx).Create(&testRow{Name: "alpha"}).Error)

		err := pg.DB().WithContext(ctx).Create(&testRow{Name: "alpha"}).Error
		assert.ErrorIs(t, TranslateError(err), ErrDuplicateKey)
	})

	t.Run("NotFoundIsTranslated", func(t *testing.T) {
		var row testRow
		err := pg.DB().WithContext(ctx).Where("name = ?", "missing").First(&row).Error
		assert.ErrorIs(t, TranslateError(err), ErrRecordNotFound)
	})

	t.Run("UndefinedTable", func(t *testing.T) {
		err := pg.DB().WithContext(ctx).Exec("SELECT * FROM no_such_table").Error
		assert.ErrorIs(t, TranslateError(err), ErrUndefinedTable)
	})
}
