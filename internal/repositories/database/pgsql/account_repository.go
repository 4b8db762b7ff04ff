package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/gl_backoffice/internal/apperrors"
	"github.com/SscSPs/gl_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/gl_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/gl_backoffice/internal/models"
	"github.com/SscSPs/gl_backoffice/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for chart of accounts data.
func newPgxAccountRepository(db DB) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.AccountReader = (*PgxAccountRepository)(nil)

const selectAccountColumns = `
		SELECT account_id, tenant_id, code, name, account_type, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		FROM accounts`

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID, &m.TenantID, &m.Code, &m.Name, &m.AccountType, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// FindAccountByID retrieves a single account of the tenant.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, tenantID string, accountID int64) (*domain.Account, error) {
	query := selectAccountColumns + `
		WHERE tenant_id = $1 AND account_id = $2;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, tenantID, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %d", accountID))
		}
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to load account %d", accountID), err)
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// FindAccountsByCodes retrieves the accounts whose code is in codes, keyed by code.
func (r *PgxAccountRepository) FindAccountsByCodes(ctx context.Context, tenantID string, codes []string) (map[string]domain.Account, error) {
	if len(codes) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := selectAccountColumns + `
		WHERE tenant_id = $1 AND code = ANY($2);`

	rows, err := r.Pool.Query(ctx, query, tenantID, codes)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to query accounts by code", err)
	}
	defer rows.Close()

	var found []models.Account
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewStorageError("failed to scan account row", err)
		}
		found = append(found, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("error iterating account rows", err)
	}
	return mapping.ToDomainAccountMap(found), nil
}

// PgxSettingsRepository reads tenant_settings.
type PgxSettingsRepository struct {
	BaseRepository
}

func newPgxSettingsRepository(db DB) *PgxSettingsRepository {
	return &PgxSettingsRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.SettingsReader = (*PgxSettingsRepository)(nil)

// GetSetting returns "" for keys the tenant never set.
func (r *PgxSettingsRepository) GetSetting(ctx context.Context, tenantID string, key string) (string, error) {
	var value string
	err := r.Pool.QueryRow(ctx,
		`SELECT setting_value FROM tenant_settings WHERE tenant_id = $1 AND setting_key = $2;`,
		tenantID, key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", apperrors.NewStorageError("failed to read setting "+key, err)
	}
	return value, nil
}
