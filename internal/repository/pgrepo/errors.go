package pgrepo

import (
	"errors"
	"fmt"

	"github.com/fsdevblog/hustlaa/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolationCode      = "23505"
	lockNotAvailableCode     = "55P03"
	serializationFailureCode = "40001"
	deadlockDetectedCode     = "40P01"
	queryCanceledCode        = "57014"
)

// convertErr приводит ошибку pgx к ошибкам слоя репозитория с префиксом контекста:
//   - pgx.ErrNoRows -> domain.ErrRecordNotFound;
//   - нарушение уникальности -> domain.ErrDuplicateKey;
//   - lock_timeout, statement_timeout, deadlock и ошибки сериализации -> domain.ErrConcurrencyConflict;
//   - остальное -> domain.ErrUnknown с оригинальным сообщением.
func convertErr(err error, format string, formatArgs ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, formatArgs...)

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("[repository/%s] %w", msg, domain.ErrRecordNotFound)
	}

	var pgErr *pgconn.PgError
	errType := domain.ErrUnknown

	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			errType = domain.ErrDuplicateKey
		case lockNotAvailableCode, serializationFailureCode, deadlockDetectedCode, queryCanceledCode:
			errType = domain.ErrConcurrencyConflict
		}
	}

	return fmt.Errorf("[repository/%s] %w: %s", msg, errType, err.Error())
}
