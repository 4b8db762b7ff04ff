package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/gl_backoffice/internal/apperrors"
	"github.com/SscSPs/gl_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/gl_backoffice/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

type PgxSequenceRepository struct {
	BaseRepository
}

func newPgxSequenceRepository(db DB) *PgxSequenceRepository {
	return &PgxSequenceRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.SequenceRepository = (*PgxSequenceRepository)(nil)

const (
	lockCounterQuery = `
		SELECT last_value FROM document_sequences
		WHERE tenant_id = $1 AND doc_type = $2 AND period_key = $3
		FOR UPDATE;`

	createCounterQuery = `
		INSERT INTO document_sequences (tenant_id, doc_type, period_key, prefix, pad, last_value, updated_at)
		VALUES ($1, $2, $3, $4, $5, 1, now())
		ON CONFLICT (tenant_id, doc_type, period_key) DO NOTHING;`

	bumpCounterQuery = `
		UPDATE document_sequences SET last_value = last_value + 1, prefix = $4, pad = $5, updated_at = now()
		WHERE tenant_id = $1 AND doc_type = $2 AND period_key = $3
		RETURNING last_value;`
)

// NextValue increments the counter under a row lock. A missing counter is created at 1;
// when a concurrent caller creates it first, the row is locked and incremented instead.
func (r *PgxSequenceRepository) NextValue(ctx context.Context, key domain.SequenceKey, prefix string, pad int) (*domain.SequenceCounter, error) {
	counter := &domain.SequenceCounter{SequenceKey: key, Prefix: prefix, Pad: pad}

	err := r.withTx(ctx, func(tx pgx.Tx) error {
		var current int64
		err := tx.QueryRow(ctx, lockCounterQuery, key.TenantID, key.DocType, key.PeriodKey).Scan(&current)
		if errors.Is(err, pgx.ErrNoRows) {
			tag, err := tx.Exec(ctx, createCounterQuery, key.TenantID, key.DocType, key.PeriodKey, prefix, pad)
			if err != nil {
				return apperrors.NewStorageError("failed to create sequence counter", err)
			}
			if tag.RowsAffected() == 1 {
				counter.LastValue = 1
				return nil
			}
			err = tx.QueryRow(ctx, lockCounterQuery, key.TenantID, key.DocType, key.PeriodKey).Scan(&current)
		}
		if err != nil {
			return apperrors.NewStorageError("failed to lock sequence counter", err)
		}

		if err := tx.QueryRow(ctx, bumpCounterQuery, key.TenantID, key.DocType, key.PeriodKey, prefix, pad).Scan(&counter.LastValue); err != nil {
			return apperrors.NewStorageError("failed to increment sequence counter", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return counter, nil
}

func (r *PgxSequenceRepository) FindCounter(ctx context.Context, key domain.SequenceKey) (*domain.SequenceCounter, error) {
	counter := &domain.SequenceCounter{SequenceKey: key}
	err := r.Pool.QueryRow(ctx, `
		SELECT prefix, pad, last_value FROM document_sequences
		WHERE tenant_id = $1 AND doc_type = $2 AND period_key = $3;`,
		key.TenantID, key.DocType, key.PeriodKey,
	).Scan(&counter.Prefix, &counter.Pad, &counter.LastValue)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("sequence %s/%s", key.DocType, key.PeriodKey))
	}
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read sequence counter", err)
	}
	return counter, nil
}

// ListUsedNumbers collects the numbers starting with prefix. Sequence doc types are free
// strings, so numbers are matched by prefix rather than by document kind.
func (r *PgxSequenceRepository) ListUsedNumbers(ctx context.Context, tenantID string, prefix string) ([]string, error) {
	query := `
		SELECT number FROM trade_documents WHERE tenant_id = $1 AND starts_with(number, $2)
		UNION ALL
		SELECT number FROM payments WHERE tenant_id = $1 AND starts_with(number, $2)
		UNION ALL
		SELECT reference FROM payroll_runs WHERE tenant_id = $1 AND starts_with(reference, $2);`

	rows, err := r.Pool.Query(ctx, query, tenantID, prefix)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to query used document numbers", err)
	}
	defer rows.Close()

	numbers := []string{}
	for rows.Next() {
		var number string
		if err := rows.Scan(&number); err != nil {
			return nil, apperrors.NewStorageError("failed to scan document number", err)
		}
		numbers = append(numbers, number)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("error iterating document numbers", err)
	}
	return numbers, nil
}
