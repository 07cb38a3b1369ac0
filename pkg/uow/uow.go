package uow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RepositoryName string
type Repository any
type RepositoryFactory func(DBTX) Repository

type UnitOfWork struct {
	conn             *pgxpool.Pool
	repositories     map[RepositoryName]RepositoryFactory
	lockTimeout      time.Duration
	statementTimeout time.Duration
}

type Option func(*UnitOfWork)

// WithLockTimeout ограничивает время ожидания блокировки строки внутри транзакции (SET LOCAL lock_timeout).
func WithLockTimeout(d time.Duration) Option {
	return func(u *UnitOfWork) {
		u.lockTimeout = d
	}
}

// WithStatementTimeout ограничивает время выполнения каждого запроса транзакции (SET LOCAL statement_timeout).
func WithStatementTimeout(d time.Duration) Option {
	return func(u *UnitOfWork) {
		u.statementTimeout = d
	}
}

func NewUnitOfWork(conn *pgxpool.Pool, opts ...Option) *UnitOfWork {
	u := &UnitOfWork{
		conn:         conn,
		repositories: make(map[RepositoryName]RepositoryFactory),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Register регистрирует репозиторий у себя в мапе. Если репозиторий уже зарегистрирован, возвращает
// ошибку ErrRepositoryAlreadyRegistered.
func (u *UnitOfWork) Register(name RepositoryName, factory RepositoryFactory) error {
	if _, ok := u.repositories[name]; ok {
		return ErrRepositoryAlreadyRegistered
	}
	u.repositories[name] = factory
	return nil
}

// Do выполняет функцию fn внутри транзакции. Любая ошибка fn откатывает транзакцию, соединение
// возвращается в пул в любом случае.
func (u *UnitOfWork) Do(ctx context.Context, fn func(context.Context, TX) error) (err error) {
	tx, txErr := u.conn.BeginTx(ctx, pgx.TxOptions{})
	if txErr != nil {
		return txErr //nolint:wrapcheck
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			if err == nil {
				err = rollbackErr
			} else {
				err = errors.Join(err, rollbackErr)
			}
		}
	}()

	if err = u.applyTimeouts(ctx, tx); err != nil {
		return err
	}

	transErr := fn(ctx, NewTransaction(tx, u.repositories))
	if transErr != nil {
		return transErr
	}
	err = tx.Commit(ctx)
	return
}

// applyTimeouts выставляет таймауты, действующие только до конца текущей транзакции.
func (u *UnitOfWork) applyTimeouts(ctx context.Context, tx pgx.Tx) error {
	if u.lockTimeout > 0 {
		if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = %d", u.lockTimeout.Milliseconds())); err != nil {
			return fmt.Errorf("[uow] set lock_timeout: %w", err)
		}
	}
	if u.statementTimeout > 0 {
		q := fmt.Sprintf("SET LOCAL statement_timeout = %d", u.statementTimeout.Milliseconds())
		if _, err := tx.Exec(ctx, q); err != nil {
			return fmt.Errorf("[uow] set statement_timeout: %w", err)
		}
	}
	return nil
}

// GetRepository возвращает репозиторий или ошибку ErrRepositoryNotRegistered.
func (u *UnitOfWork) GetRepository(name RepositoryName) (Repository, error) {
	if repoFactory, ok := u.repositories[name]; ok {
		return repoFactory(u.conn), nil
	}
	return nil, ErrRepositoryNotRegistered
}

// GetRepositoryAs возвращает репозиторий по имени name и приводит его к типу T. Возвращает ошибки
// ErrRepositoryNotRegistered и ErrInvalidRepositoryType.
func GetRepositoryAs[T any](u UOW, name RepositoryName) (T, error) {
	var res T
	repo, err := u.GetRepository(name)
	if err != nil {
		return res, err //nolint:wrapcheck
	}
	r, ok := repo.(T)

	if !ok {
		return res, ErrInvalidRepositoryType
	}

	return r, nil
}
