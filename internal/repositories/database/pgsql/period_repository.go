package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/gl_backoffice/internal/apperrors"
	"github.com/SscSPs/gl_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/gl_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/gl_backoffice/internal/models"
	"github.com/SscSPs/gl_backoffice/internal/utils/mapping"
)

type PgxPeriodLockRepository struct {
	BaseRepository
}

func newPgxPeriodLockRepository(db DB) *PgxPeriodLockRepository {
	return &PgxPeriodLockRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.PeriodLockRepositoryFacade = (*PgxPeriodLockRepository)(nil)

// MaxLockDate returns nil when the tenant has no lock.
func (r *PgxPeriodLockRepository) MaxLockDate(ctx context.Context, tenantID string) (*time.Time, error) {
	var lockDate *time.Time
	err := r.Pool.QueryRow(ctx,
		`SELECT MAX(lock_date) FROM period_locks WHERE tenant_id = $1;`,
		tenantID,
	).Scan(&lockDate)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read lock date", err)
	}
	if lockDate == nil {
		return nil, nil
	}
	d := domain.DateOnly(*lockDate)
	return &d, nil
}

// ListLocks returns the lock history, latest first.
func (r *PgxPeriodLockRepository) ListLocks(ctx context.Context, tenantID string) ([]domain.PeriodLock, error) {
	query := `
		SELECT lock_id, tenant_id, lock_date, reason,
			created_at, created_by, last_updated_at, last_updated_by
		FROM period_locks
		WHERE tenant_id = $1
		ORDER BY lock_date DESC, lock_id DESC;`

	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to query period locks", err)
	}
	defer rows.Close()

	locks := []domain.PeriodLock{}
	for rows.Next() {
		var m models.PeriodLock
		if err := rows.Scan(
			&m.LockID, &m.TenantID, &m.LockDate, &m.Reason,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewStorageError("failed to scan period lock row", err)
		}
		locks = append(locks, mapping.ToDomainPeriodLock(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("error iterating period lock rows", err)
	}
	return locks, nil
}

func (r *PgxPeriodLockRepository) SaveLock(ctx context.Context, lock domain.PeriodLock) (*domain.PeriodLock, error) {
	m := mapping.ToModelPeriodLock(lock)
	query := `
		INSERT INTO period_locks (tenant_id, lock_date, reason, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING lock_id;`

	err := r.Pool.QueryRow(ctx, query,
		m.TenantID, m.LockDate, m.Reason,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	).Scan(&m.LockID)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to save period lock", err)
	}
	saved := mapping.ToDomainPeriodLock(m)
	return &saved, nil
}
