package repository_test

import (
	"testing"

	"github.com/hugohenrick/erp-multinegocio/internal/adapter/repository"
	"github.com/hugohenrick/erp-multinegocio/internal/infrastructure/database"
	"github.com/hugohenrick/erp-multinegocio/internal/storage"
	"github.com/hugohenrick/erp-multinegocio/internal/storage/storagetest"
	"github.com/hugohenrick/erp-multinegocio/pkg/logger"
)

// sharedPool mantém o pool aberto entre os subtestes
type sharedPool struct {
	*repository.PostgresStore
}

func (sharedPool) Close() {}

func TestStorageContract(t *testing.T) {
	pool := database.TestPool(t)

	storagetest.Run(t, func(t *testing.T) storage.Storage {
		return sharedPool{repository.NewPostgresStore(pool, logger.Nop())}
	})
}
