//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"storefront-pricing/cmd/bootstrap"
	"storefront-pricing/cmd/bootstrap/components"
	"storefront-pricing/internal/infra/db"
	"storefront-pricing/internal/pkg/config"
	"storefront-pricing/tests/common/dbtest"

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
	pgUser     = "pricing"
	pgPassword = "pricing"
	pgPort     = nat.Port("5432/tcp")
)

// 1 プロセスにつき Postgres コンテナは 1 つ、DB はスイートごとに作る
var (
	pgOnce      sync.Once
	pgContainer testcontainers.Container
	pgEndpoint  endpoint
	pgErr       error
)

type endpoint struct {
	host string
	port string
}

func (e endpoint) dsn(database string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", pgUser, pgPassword, e.host, e.port, database)
}

// ------------------------------------------------------------
// Postgres コンテナ
// ------------------------------------------------------------

func postgresEndpoint(t *testing.T) endpoint {
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
					"POSTGRES_DB":       "postgres",
				},
				// データは RAM 上、耐久性は不要
				Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=512m"},
				Cmd: []string{
					"postgres",
					"-c", "fsync=off",
					"-c", "full_page_writes=off",
					"-c", "synchronous_commit=off",
					"-c", "max_connections=200",
					"-c", "log_statement=none",
				},
				WaitingFor: wait.ForSQL(pgPort, "pgx", func(host string, port nat.Port) string {
					return endpoint{host: host, port: port.Port()}.dsn("postgres")
				}).WithStartupTimeout(60 * time.Second),
				Labels: map[string]string{"purpose": "storefront-pricing-e2e"},
			},
			Started: true,
		})
		if pgErr != nil {
			return
		}

		var mapped nat.Port
		if mapped, pgErr = pgContainer.MappedPort(ctx, pgPort); pgErr != nil {
			return
		}
		var host string
		if host, pgErr = pgContainer.Host(ctx); pgErr != nil {
			return
		}
		pgEndpoint = endpoint{host: host, port: mapped.Port()}
	})
	require.NoError(t, pgErr, "PostgreSQLコンテナの起動に失敗")
	return pgEndpoint
}

// ------------------------------------------------------------
// スイート専用データベース
// ------------------------------------------------------------

func createDatabase(t *testing.T, ep endpoint) config.DBConfig {
	t.Helper()
	name := "pricing_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	admin, err := pgxpool.New(ctx, ep.dsn("postgres"))
	require.NoError(t, err, "管理者接続に失敗")
	defer admin.Close()

	// 並列スイートが同時に CREATE DATABASE すると template1 のロックで失敗することがある
	for attempt := range 5 {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * 500 * time.Millisecond)
		}
		if _, err = admin.Exec(ctx, "CREATE DATABASE "+name); err == nil {
			break
		}
		slog.Warn("データベース作成を再試行中", "attempt", attempt+1, "error", err.Error())
	}
	require.NoError(t, err, "テスト用データベースの作成に失敗")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		admin, err := pgxpool.New(ctx, ep.dsn("postgres"))
		if err != nil {
			slog.Warn("クリーンアップ用の接続に失敗しました", "database", name, "error", err.Error())
			return
		}
		defer admin.Close()
		if _, err := admin.Exec(ctx, "DROP DATABASE IF EXISTS "+name+" WITH (FORCE)"); err != nil {
			slog.Warn("テストデータベースの削除に失敗しました", "database", name, "error", err.Error())
		}
	})

	return config.DBConfig{
		Host:     ep.host,
		Port:     ep.port,
		User:     pgUser,
		Password: pgPassword,
		DBName:   name,
		SSLMode:  "disable",
		TimeZone: "Asia/Kolkata",
	}
}

// migrations/*.sql are applied in file name order.
func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	dir, err := migrationsDir()
	if err != nil {
		return err
	}
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return err
	}
	sort.Strings(files)

	for _, file := range files {
		sql, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read %s: %w", file, err)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("apply %s: %w", filepath.Base(file), err)
		}
	}
	return nil
}

// go test runs in the package directory, so walk up to the module root.
func migrationsDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return filepath.Join(dir, "migrations"), nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found above working directory")
		}
		dir = parent
	}
}

// ------------------------------------------------------------
// fx アプリケーション
// ------------------------------------------------------------

// startApp wires the production modules against the suite database.
// Redis and Kafka stay disabled unless an override turns them on.
func startApp(t *testing.T, pool *pgxpool.Pool, dbConfig config.DBConfig, overrides ...func(*config.Config)) (*gin.Engine, config.Config) {
	t.Helper()

	cfg := config.NewTestConfig()
	cfg.DB = dbConfig
	for _, override := range overrides {
		override(&cfg)
	}

	var router *gin.Engine
	app := fx.New(
		fx.Supply(cfg, pool),
		fx.Provide(bootstrap.NewDBTX),
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		bootstrap.RedisModule,
		bootstrap.KafkaModule,
		bootstrap.JWTModule,
		components.PersistenceModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Populate(&router),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "fxアプリケーションの起動に失敗")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("fxアプリケーションの停止に失敗しました", "error", err.Error())
		}
	})
	return router, cfg
}

// ------------------------------------------------------------
// E2Eテストスイートで共通のセットアップ
// ------------------------------------------------------------
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	DB     *pgxpool.Pool
	Config config.Config

	// SetupSuite より前に設定すること
	ConfigOverrides []func(*config.Config)
}

func (s *SharedSuite) SetupSuite() {
	t := s.T()
	gin.SetMode(gin.TestMode)

	dbConfig := createDatabase(t, postgresEndpoint(t))

	pool, _, err := db.Connect(dbConfig)
	require.NoError(t, err, "データベース接続に失敗")
	t.Cleanup(pool.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, migrate(ctx, pool), "データベースマイグレーションに失敗")
	require.NoError(t, dbtest.SeedReferenceData(pool), "参照データの投入に失敗")

	s.DB = pool
	s.Router, s.Config = startApp(t, pool, dbConfig, s.ConfigOverrides...)
}

// Each subtest starts from an empty catalog.
func (s *SharedSuite) SetupSubTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "Failed to reset database state")
}
