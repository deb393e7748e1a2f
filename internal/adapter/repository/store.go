// Package repository implementa o armazenamento sobre PostgreSQL com pgx.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/shared"
	"github.com/hugohenrick/erp-multinegocio/internal/infrastructure/database"
	"github.com/hugohenrick/erp-multinegocio/internal/storage"
	"github.com/hugohenrick/erp-multinegocio/pkg/logger"
)

// PostgresStore implementa storage.Storage sobre um pool pgx
type PostgresStore struct {
	pool *pgxpool.Pool
	log  logger.Logger
}

// NewPostgresStore cria o armazenamento PostgreSQL
func NewPostgresStore(pool *pgxpool.Pool, log logger.Logger) *PostgresStore {
	return &PostgresStore{pool: pool, log: log}
}

var _ storage.Storage = (*PostgresStore)(nil)

// Repositories implementa storage.Storage
func (s *PostgresStore) Repositories() storage.Repositories {
	return NewRepositories(s.pool)
}

// WithinTx implementa storage.Storage
func (s *PostgresStore) WithinTx(ctx context.Context, fn storage.TxFunc) error {
	return database.Transaction(ctx, s.pool, s.log, func(tx pgx.Tx) error {
		return fn(ctx, NewRepositories(tx))
	})
}

// Driver implementa storage.Storage
func (s *PostgresStore) Driver() storage.Driver { return storage.DriverPostgres }

// Ping implementa storage.Storage
func (s *PostgresStore) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return shared.Unavailable("ping no banco", err)
	}
	return nil
}

// Close implementa storage.Storage
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// NewRepositories cria todos os repositórios sobre db, que pode ser o pool ou uma transação
func NewRepositories(db database.PGXDB) storage.Repositories {
	return storage.Repositories{
		Companies:            NewPostgresCompanyRepository(db),
		Branches:             NewPostgresBranchRepository(db),
		Users:                NewPostgresUserRepository(db),
		Clients:              NewPostgresClientRepository(db),
		Products:             NewPostgresProductRepository(db),
		Sales:                NewPostgresSaleRepository(db),
		Coupons:              NewPostgresCouponRepository(db),
		FinancialEntries:     NewPostgresFinanceRepository(db),
		Appointments:         NewPostgresAppointmentRepository(db),
		Integrations:         NewPostgresIntegrationRepository(db),
		NotificationSettings: NewPostgresNotificationRepository(db),
		Transfers:            NewPostgresTransferRepository(db),
		Messages:             NewPostgresMessageRepository(db),
	}
}

// rowScanner é satisfeita por pgx.Row e pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// dbError converte falhas de conexão em indisponibilidade e anota as demais
func dbError(op string, err error) error {
	var (
		connErr *pgconn.ConnectError
		netErr  net.Error
	)
	if errors.As(err, &connErr) || errors.As(err, &netErr) || pgconn.Timeout(err) {
		return shared.Unavailable(op, err)
	}
	return fmt.Errorf("falha ao %s: %w", op, err)
}

// toJSON serializa v para uma coluna JSONB NOT NULL; nil vira empty
func toJSON(v any, empty string) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("falha ao serializar JSON: %w", err)
	}
	if string(b) == "null" {
		return empty, nil
	}
	return string(b), nil
}

// collect percorre rows aplicando scan a cada linha
func collect[T any](rows pgx.Rows, scan func(rowScanner) (*T, error)) ([]*T, error) {
	defer rows.Close()

	list := make([]*T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("percorrer resultados", err)
	}
	return list, nil
}

// queryList executa query e coleta as linhas
func queryList[T any](ctx context.Context, db database.PGXDB, op string, scan func(rowScanner) (*T, error), query string, args ...any) ([]*T, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, dbError(op, err)
	}
	return collect(rows, scan)
}

// execAffecting executa um comando e devolve notFound se nenhuma linha foi afetada
func execAffecting(ctx context.Context, db database.PGXDB, op string, notFound error, query string, args ...any) error {
	tag, err := db.Exec(ctx, query, args...)
	if err != nil {
		return dbError(op, err)
	}
	if tag.RowsAffected() == 0 {
		return notFound
	}
	return nil
}

// countRows executa um SELECT COUNT(*)
func countRows(ctx context.Context, db database.PGXDB, op, query string, args ...any) (int, error) {
	var n int
	if err := db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, dbError(op, err)
	}
	return n, nil
}

// limitOffset acrescenta paginação ao final da query, com os próximos placeholders
func limitOffset(query string, args []any, limit, offset int) (string, []any) {
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if offset > 0 {
		args = append(args, offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return query, args
}
