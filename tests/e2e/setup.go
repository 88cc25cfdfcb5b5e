//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"booking-marketplace/cmd/bootstrap"
	"booking-marketplace/cmd/bootstrap/components"
	"booking-marketplace/internal/infra/cache"
	"booking-marketplace/internal/infra/db"
	"booking-marketplace/internal/infra/gateway"
	"booking-marketplace/internal/pkg/config"
	"booking-marketplace/internal/usecase/commands"
	"booking-marketplace/internal/usecase/shared"
	"booking-marketplace/migrations"
	"booking-marketplace/tests/common/authtest"
	"booking-marketplace/tests/common/dbtest"
	"booking-marketplace/tests/e2e/common/helper"

	"github.com/cenkalti/backoff/v4"
	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

const (
	pgUser     = "test"
	pgPassword = "testpass"
	pgPort     = nat.Port("5432/tcp")
)

// the container outlives individual suites; each suite gets its own database
var (
	pgOnce      sync.Once
	pgContainer testcontainers.Container
	pgErr       error
)

type pgEndpoint struct {
	host string
	port string
}

func (e pgEndpoint) dsn(database string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", pgUser, pgPassword, e.host, e.port, database)
}

type SharedSuite struct {
	suite.Suite
	Router    *gin.Engine
	DB        *pgxpool.Pool
	Config    config.Config
	Gateway   *helper.FakeGateway
	Publisher *helper.RecordingPublisher
	JWT       *authtest.JWTHelper
	Outbox    commands.OutboxCommands
}

func (s *SharedSuite) SetupSuite() {
	t := s.T()
	gin.SetMode(gin.TestMode)

	var dbCfg config.DBConfig
	s.DB, dbCfg = createSuiteDatabase(t, postgresEndpoint(t))

	s.Gateway = helper.NewFakeGateway()
	t.Cleanup(s.Gateway.Close)
	s.Publisher = &helper.RecordingPublisher{}

	s.startApp(t, dbCfg)
	s.JWT = authtest.NewJWTHelper(s.Config.JWT)
}

func (s *SharedSuite) SetupSubTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "failed to reset database state")
}

// startApp wires the production graph. Redis and the broker are replaced in-process and the gateway
// client points at the fake server.
func (s *SharedSuite) startApp(t *testing.T, dbCfg config.DBConfig) {
	cfg := config.NewTestConfig()
	cfg.DB = dbCfg
	cfg.Gateway.BaseURL = s.Gateway.URL()

	app := fx.New(
		fx.Supply(cfg),
		fx.Provide(
			func(cfg config.Config) config.JWTConfig { return cfg.JWT },
			func(cfg config.Config) config.GatewayConfig { return cfg.Gateway },
			func(cfg config.Config) config.PaymentConfig { return cfg.Payment },
			func(cfg config.Config) config.PointsConfig { return cfg.Points },
			func(cfg config.Config) config.WorkerConfig { return cfg.Worker },
			bootstrap.NewPointPolicy,

			func() *pgxpool.Pool { return s.DB },
			func() shared.BalanceCache { return cache.NoopBalanceCache{} },
			func() shared.EventPublisher { return s.Publisher },
			fx.Annotate(gateway.NewClient, fx.As(new(commands.PaymentGateway))),
			func() *gin.Engine { return gin.New() },
		),
		bootstrap.LoggerModule,
		bootstrap.JWTModule,
		components.PersistenceModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Populate(&s.Router, &s.Config, &s.Outbox),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "failed to start application graph")
	require.NotNil(t, s.Router, "application graph has no router")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("failed to stop application graph", "error", err)
		}
	})
}

// createSuiteDatabase creates a fresh database, applies the embedded schema and drops it when the suite ends.
func createSuiteDatabase(t *testing.T, endpoint pgEndpoint) (*pgxpool.Pool, config.DBConfig) {
	t.Helper()
	name := "e2e_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	admin, err := pgxpool.New(ctx, endpoint.dsn("postgres"))
	require.NoError(t, err, "admin connection failed")
	defer admin.Close()

	// CREATE DATABASE contends on the template database when suites start together
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(500*time.Millisecond), 5), ctx)
	err = backoff.RetryNotify(func() error {
		_, err := admin.Exec(ctx, "CREATE DATABASE "+name)
		return err
	}, policy, func(err error, wait time.Duration) {
		slog.Warn("retrying database creation", "database", name, "error", err, "wait", wait)
	})
	require.NoError(t, err, "failed to create suite database")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		admin, err := pgxpool.New(ctx, endpoint.dsn("postgres"))
		if err != nil {
			slog.Warn("drop connection failed", "database", name, "error", err)
			return
		}
		defer admin.Close()
		if _, err := admin.Exec(ctx, "DROP DATABASE IF EXISTS "+name+" WITH (FORCE)"); err != nil {
			slog.Warn("failed to drop suite database", "database", name, "error", err)
		}
	})

	dbCfg := config.DBConfig{
		Host:     endpoint.host,
		Port:     endpoint.port,
		User:     pgUser,
		Password: pgPassword,
		DBName:   name,
		SSLMode:  "disable",
		TimeZone: "UTC",
		MaxConns: 40,
	}
	pool, cleanup, err := db.Connect(dbCfg)
	require.NoError(t, err, "suite database connection failed")
	t.Cleanup(cleanup)

	require.NoError(t, migrations.Apply(ctx, pool), "migration failed")
	return pool, dbCfg
}

// postgresEndpoint starts the shared container on first use.
func postgresEndpoint(t *testing.T) pgEndpoint {
	t.Helper()
	pgOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()
		pgContainer, pgErr = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "postgres:17",
				ExposedPorts: []string{string(pgPort)},
				Env: map[string]string{
					"POSTGRES_USER":     pgUser,
					"POSTGRES_PASSWORD": pgPassword,
				},
				Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=512m"},
				Cmd: []string{
					"postgres",
					"-c", "fsync=off",
					"-c", "synchronous_commit=off",
					"-c", "max_connections=200",
				},
				WaitingFor: wait.ForSQL(pgPort, "pgx", func(host string, port nat.Port) string {
					return pgEndpoint{host: host, port: port.Port()}.dsn("postgres")
				}).WithStartupTimeout(time.Minute),
				Labels: map[string]string{"purpose": "e2e-tests"},
			},
			Started: true,
		})
	})
	require.NoError(t, pgErr, "failed to start PostgreSQL container")

	ctx := context.Background()
	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, pgPort)
	require.NoError(t, err)
	return pgEndpoint{host: host, port: port.Port()}
}
