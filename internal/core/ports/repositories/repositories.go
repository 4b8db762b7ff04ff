package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AccountRepo   AccountReader
	SettingsRepo  SettingsReader
	PeriodRepo    PeriodLockRepositoryFacade
	SequenceRepo  SequenceRepository
	DocumentRepo  DocumentReader
	JournalRepo   JournalRepositoryFacade
	ReportingRepo ReportingRepository
	InventoryRepo InventoryRepository
}
