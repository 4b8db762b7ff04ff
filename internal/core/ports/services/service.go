package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	AccountsMap AccountsMapSvc
	Period      PeriodSvc
	Sequence    DocumentSequenceSvc
	Posting     PostingSvc
	Reversal    ReversalSvc
	Journal     JournalQuerySvc
	Reconciler  ReconcilerSvc
	Inventory   InventorySvc
}
