package testhelpers

import (
	"context"
	"fmt"
	"os/exec"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sanchezegido/recipedia/internal/database"
	"github.com/sanchezegido/recipedia/internal/models"
)

// SetupTestDatabase returns a migrated in-memory sqlite database private to t
func SetupTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Open(sqlite.Open(dsn), logger.Default.LogMode(logger.Silent))
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sqlite handle: %v", err)
	}
	// One connection keeps the shared in-memory database alive and serialises writers
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

// SetupPostgresDatabase starts a PostgreSQL container and returns a migrated
// connection using the lib/pq driver. Skipped when docker is unavailable or
// the test run is short.
func SetupPostgresDatabase(t *testing.T) *gorm.DB {
	t.Helper()
	requireDocker(t)

	ctx := context.Background()
	const user, password, name = "recipedia", "recipedia", "recipedia"

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     user,
				"POSTGRES_PASSWORD": password,
				"POSTGRES_DB":       name,
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForSQL("5432/tcp", "postgres", func(host string, port nat.Port) string {
					return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
						user, password, host, port.Port(), name)
				}),
			).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := container.Terminate(ctx); err != nil {
			t.Errorf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port.Port(), user, password, name)
	db, err := database.Open(postgres.New(postgres.Config{
		DriverName: "postgres",
		DSN:        dsn,
	}), logger.Default.LogMode(logger.Silent))
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// CreateUser inserts a user with a random id
func CreateUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{ID: uuid.New(), Username: username}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

// CreateRecipe inserts a recipe owned by owner. Zero fields get usable defaults.
func CreateRecipe(t *testing.T, db *gorm.DB, owner *models.User, recipe models.Recipe) *models.Recipe {
	t.Helper()
	if recipe.Name == "" {
		recipe.Name = "Recipe " + uuid.NewString()[:8]
	}
	if recipe.Difficulty == "" {
		recipe.Difficulty = models.DifficultyEasy
	}
	if recipe.Type == "" {
		recipe.Type = models.TypeMainCourse
	}
	if recipe.Rations == 0 {
		recipe.Rations = 2
	}
	if recipe.Time == 0 {
		recipe.Time = 30
	}
	if recipe.Steps == "" {
		recipe.Steps = "Mix and cook."
	}
	recipe.UserID = owner.ID
	if err := db.Omit("User").Create(&recipe).Error; err != nil {
		t.Fatalf("failed to create recipe %s: %v", recipe.Name, err)
	}
	return &recipe
}

func requireDocker(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not installed, skipping container-based test")
	}
}

