package database

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hugohenrick/erp-multinegocio/internal/config"
	"github.com/hugohenrick/erp-multinegocio/pkg/logger"
)

var (
	testPool     *pgxpool.Pool
	testPoolOnce sync.Once
	testPoolErr  error
)

// TestPool devolve um pool compartilhado entre os testes de integração,
// com as migrações aplicadas. Pula o teste se TEST_DATABASE_URL não existir.
func TestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL não definida, pulando teste de integração")
	}

	testPoolOnce.Do(func() {
		if testPoolErr = RunMigrations(url, logger.Nop()); testPoolErr != nil {
			return
		}
		testPool, testPoolErr = NewPostgresPool(context.Background(), config.DatabaseConfig{MaxConnections: 5}, url)
	})

	if testPoolErr != nil {
		t.Fatalf("falha ao preparar banco de testes: %v", testPoolErr)
	}
	return testPool
}
