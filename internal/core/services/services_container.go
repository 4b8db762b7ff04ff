package services

import (
	portsrepo "github.com/SscSPs/gl_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/gl_backoffice/internal/core/ports/services"
	"github.com/SscSPs/gl_backoffice/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// AccountsMap and Period are collaborators of posting and reconciliation, so they go first
	container.AccountsMap = NewAccountsMapService(repos.SettingsRepo, repos.AccountRepo, cfg.AccountDefaults)
	container.Period = NewPeriodService(repos.PeriodRepo)
	container.Sequence = NewDocumentSequenceService(repos.SequenceRepo)

	var postingOptions []PostingServiceOption
	if repos.InventoryRepo != nil {
		container.Inventory = NewInventoryService(repos.InventoryRepo, repos.SettingsRepo, cfg.AllowNegativeStock)
		postingOptions = append(postingOptions, WithInventory(container.Inventory))
	}

	container.Posting = NewPostingService(
		repos.DocumentRepo,
		repos.JournalRepo,
		repos.AccountRepo,
		container.AccountsMap,
		container.Period,
		postingOptions...,
	)
	container.Reversal = NewReversalService(repos.JournalRepo, container.Period)
	container.Journal = NewJournalQueryService(repos.JournalRepo)
	container.Reconciler = NewReconcilerService(repos.ReportingRepo, repos.SequenceRepo, container.AccountsMap)

	return container
}
