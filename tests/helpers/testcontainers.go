// Helpers for running tests against a real MariaDB instance with
// testcontainers. Unit tests use in-memory SQLite instead; these helpers back
// the integration tests only.

package helpers

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/conduitapp/conduit/data"
)

const (
	mariadbImage    = "mariadb:11"
	mariadbPort     = nat.Port("3306/tcp")
	mariadbDatabase = "conduit"
	mariadbPassword = "conduit_test_root"
)

// TestDatabase is a MariaDB container provisioned with the conduit schema.
type TestDatabase struct {
	Container testcontainers.Container
	Host      string
	Port      string
	Database  string
	User      string
	Password  string
}

// DSN returns a go-sql-driver DSN for the containerized database.
func (td *TestDatabase) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		td.User, td.Password, td.Host, td.Port, td.Database)
}

// Terminate stops and removes the container.
func (td *TestDatabase) Terminate(t *testing.T) {
	if td.Container == nil {
		return
	}
	if err := td.Container.Terminate(context.Background()); err != nil {
		t.Logf("Failed to terminate MariaDB container: %v", err)
	}
}

// StartMariaDB launches a MariaDB container, waits for it to accept
// connections, and applies the embedded DDL.
func StartMariaDB(t *testing.T) (*TestDatabase, error) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        mariadbImage,
		Name:         "conduit-test-mariadb-" + uuid.New().String()[:8],
		ExposedPorts: []string{string(mariadbPort)},
		Env: map[string]string{
			"MARIADB_ROOT_PASSWORD": mariadbPassword,
			"MARIADB_DATABASE":      mariadbDatabase,
		},
		WaitingFor: wait.ForListeningPort(mariadbPort).WithStartupTimeout(2 * time.Minute),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start MariaDB container: %w", err)
	}

	td := &TestDatabase{
		Container: container,
		Database:  mariadbDatabase,
		User:      "root",
		Password:  mariadbPassword,
	}

	host, err := container.Host(ctx)
	if err != nil {
		td.Terminate(t)
		return nil, err
	}
	td.Host = host

	mapped, err := container.MappedPort(ctx, mariadbPort)
	if err != nil {
		td.Terminate(t)
		return nil, err
	}
	td.Port = mapped.Port()

	if err := td.applySchema(); err != nil {
		td.Terminate(t)
		return nil, err
	}

	return td, nil
}

// applySchema waits for the server to answer pings and executes the embedded
// DDL statement by statement.
func (td *TestDatabase) applySchema() error {
	db, err := sql.Open("mysql", td.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	deadline := time.Now().Add(2 * time.Minute)
	for {
		if err = db.Ping(); err == nil {
			break
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("MariaDB never became reachable: %w", err)
		}
		time.Sleep(time.Second)
	}

	for _, statement := range strings.Split(data.InitdbMariaDBTables, ";") {
		statement = strings.TrimSpace(statement)
		if statement == "" {
			continue
		}
		if _, err := db.Exec(statement); err != nil {
			return fmt.Errorf("failed to apply DDL: %w", err)
		}
	}

	return nil
}
