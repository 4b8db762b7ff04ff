package pgsql

import (
	portsrepo "github.com/SscSPs/gl_backoffice/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every Postgres repository onto one pool. A *pgxpool.Pool
// satisfies DB.
func NewRepositoryProvider(db DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:   newPgxAccountRepository(db),
		SettingsRepo:  newPgxSettingsRepository(db),
		PeriodRepo:    newPgxPeriodLockRepository(db),
		SequenceRepo:  newPgxSequenceRepository(db),
		DocumentRepo:  newPgxDocumentRepository(db),
		JournalRepo:   newPgxJournalRepository(db),
		ReportingRepo: newReportingRepository(db),
		InventoryRepo: newInventoryRepository(db),
	}
}
