package repositories

import (
	"context"

	"github.com/SscSPs/gl_backoffice/internal/core/domain"
)

// SequenceRepository persists document number counters.
type SequenceRepository interface {
	// NextValue atomically increments the counter for key, creating it at 1 when absent,
	// and records prefix (already expanded) and pad as the counter's latest options.
	NextValue(ctx context.Context, key domain.SequenceKey, prefix string, pad int) (*domain.SequenceCounter, error)

	// FindCounter returns apperrors.ErrNotFound when no number was ever issued for key.
	FindCounter(ctx context.Context, key domain.SequenceKey) (*domain.SequenceCounter, error)

	// ListUsedNumbers returns the numbers starting with prefix saved on trade documents,
	// payments and payroll runs of the tenant, whatever their kind.
	ListUsedNumbers(ctx context.Context, tenantID string, prefix string) ([]string, error)
}
