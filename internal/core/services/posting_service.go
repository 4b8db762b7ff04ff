package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/gl_backoffice/internal/apperrors"
	"github.com/SscSPs/gl_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/gl_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/gl_backoffice/internal/core/ports/services"
	"github.com/SscSPs/gl_backoffice/internal/utils/accounting"
)

type postingService struct {
	BaseService
	documents   portsrepo.DocumentReader
	journals    portsrepo.JournalRepositoryFacade
	accounts    portsrepo.AccountReader
	accountsMap portssvc.AccountsMapSvc
	periods     portssvc.PeriodSvc
	inventory   portssvc.InventorySvc
	now         func() time.Time
}

// PostingServiceOption is a functional option for configuring the posting service
type PostingServiceOption func(*postingService)

// WithInventory enables stock movements for stocked document lines.
func WithInventory(inventory portssvc.InventorySvc) PostingServiceOption {
	return func(s *postingService) {
		s.inventory = inventory
	}
}

// WithPostingClock overrides the clock used for audit timestamps.
func WithPostingClock(now func() time.Time) PostingServiceOption {
	return func(s *postingService) {
		s.now = now
	}
}

func NewPostingService(
	documents portsrepo.DocumentReader,
	journals portsrepo.JournalRepositoryFacade,
	accounts portsrepo.AccountReader,
	accountsMap portssvc.AccountsMapSvc,
	periods portssvc.PeriodSvc,
	options ...PostingServiceOption,
) portssvc.PostingSvc {
	svc := &postingService{
		documents:   documents,
		journals:    journals,
		accounts:    accounts,
		accountsMap: accountsMap,
		periods:     periods,
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.PostingSvc = (*postingService)(nil)

// postingPlan describes how one source document becomes a journal.
type postingPlan struct {
	source         domain.SourceRef
	entryDate      time.Time
	reference      string
	description    string
	priorJournalID *int64
	projectID      *int64
	empty          bool

	// build adds lines to the draft. Side effects outside the draft belong in draft.afterVerify.
	build func(ctx context.Context, d *postingDraft) error

	// check runs on the final lines before the generic balance validation.
	check func(lines []domain.JournalLine) error
}

type postingDraft struct {
	lines    *accounting.LineBuilder
	required []string
	deferred []func(ctx context.Context) error
}

// require marks account codes that must exist even though no line references them yet.
func (d *postingDraft) require(codes ...string) {
	d.required = append(d.required, codes...)
}

// afterVerify registers a step that runs once every account has been verified.
func (d *postingDraft) afterVerify(fn func(ctx context.Context) error) {
	d.deferred = append(d.deferred, fn)
}

func (s *postingService) post(ctx context.Context, tenantID, userID string, plan postingPlan) (*domain.JournalEntry, error) {
	logger := s.GetLogger(ctx).With(
		slog.String("source_type", string(plan.source.Type)),
		slog.Int64("source_id", plan.source.ID),
	)
	label := plan.source.Type.Label() + " " + plan.reference

	if err := s.ensureOpen(ctx, tenantID, plan.entryDate); err != nil {
		logger.Warn("Posting refused", slog.String("error", err.Error()))
		return nil, err
	}

	replaceID, err := s.priorJournal(ctx, tenantID, plan.priorJournalID)
	if err != nil {
		logger.Warn("Re-post refused", slog.String("error", err.Error()))
		return nil, err
	}

	if plan.empty {
		return nil, apperrors.NewEmptyDocumentError(label)
	}

	draft := &postingDraft{lines: accounting.NewLineBuilder()}
	if err := plan.build(ctx, draft); err != nil {
		return nil, err
	}
	if err := s.verifyAccounts(ctx, tenantID, append(draft.lines.Codes(), draft.required...)); err != nil {
		logger.Warn("Posting refused", slog.String("error", err.Error()))
		return nil, err
	}
	for _, step := range draft.deferred {
		if err := step(ctx); err != nil {
			return nil, err
		}
	}

	lines := draft.lines.Lines()
	if plan.check != nil {
		if err := plan.check(lines); err != nil {
			logger.Warn("Posting refused", slog.String("error", err.Error()))
			return nil, err
		}
	}
	if err := accounting.ValidateLines(lines); err != nil {
		logger.Error("Built journal failed validation", slog.String("error", err.Error()))
		return nil, err
	}

	now := s.now().UTC()
	source := plan.source
	entry := domain.JournalEntry{
		TenantID:    tenantID,
		EntryDate:   domain.DateOnly(plan.entryDate),
		Reference:   plan.reference,
		Description: plan.description,
		Source:      &source,
		Lines:       lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	journalID, err := s.journals.SaveJournal(ctx, portsrepo.JournalWrite{
		Entry:             entry,
		ReplaceJournalID:  replaceID,
		ExpectedJournalID: plan.priorJournalID,
		WriteBack:         &source,
	})
	if err != nil {
		logger.Error("Failed to save journal", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to post %s: %w", label, err)
	}
	entry.JournalID = journalID
	for i := range entry.Lines {
		entry.Lines[i].JournalID = journalID
	}

	if plan.projectID != nil {
		projectID := *plan.projectID
		s.BestEffort(ctx, "tag project", func(ctx context.Context) error {
			tagger, ok := s.journals.(portsrepo.DimensionTagger)
			if !ok {
				return nil
			}
			return tagger.TagProject(ctx, tenantID, journalID, projectID)
		})
	}

	logger.Info("Journal posted",
		slog.Int64("journal_id", journalID),
		slog.Int("lines", len(entry.Lines)),
		slog.String("total", entry.TotalDebit().StringFixed(2)),
		slog.Bool("replaced_prior", replaceID != nil),
	)
	return &entry, nil
}

func (s *postingService) ensureOpen(ctx context.Context, tenantID string, date time.Time) error {
	locked, err := s.periods.IsLocked(ctx, tenantID, date)
	if err != nil {
		return err
	}
	if locked {
		return apperrors.NewLockedPeriodError(date)
	}
	return nil
}

// priorJournal returns the id of the journal to replace. A prior journal dated inside a
// locked period cannot be deleted, so the re-post is refused instead of double-posting.
// A dangling reference is ignored. A reversed prior journal is kept: it and its reversal
// already net to zero, so the re-post is written as a fresh journal.
func (s *postingService) priorJournal(ctx context.Context, tenantID string, priorID *int64) (*int64, error) {
	if priorID == nil {
		return nil, nil
	}
	prior, err := s.journals.FindJournalByID(ctx, tenantID, *priorID)
	if errors.Is(err, apperrors.ErrNotFound) {
		s.LogWarn(ctx, "Source document references a missing journal", slog.Int64("journal_id", *priorID))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load prior journal %d: %w", *priorID, err)
	}
	if prior.ReversedByID != nil {
		s.LogInfo(ctx, "Prior journal is reversed, keeping it",
			slog.Int64("journal_id", prior.JournalID), slog.Int64("reversed_by", *prior.ReversedByID))
		return nil, nil
	}
	if err := s.ensureOpen(ctx, tenantID, prior.EntryDate); err != nil {
		return nil, err
	}
	id := prior.JournalID
	return &id, nil
}

// verifyAccounts checks that every code is non-empty, exists and is active.
func (s *postingService) verifyAccounts(ctx context.Context, tenantID string, codes []string) error {
	unique := make([]string, 0, len(codes))
	seen := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		if code == "" {
			return apperrors.NewIncompleteConfigurationError("an account setting resolved to an empty code")
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		unique = append(unique, code)
	}
	if len(unique) == 0 {
		return nil
	}

	found, err := s.accounts.FindAccountsByCodes(ctx, tenantID, unique)
	if err != nil {
		return fmt.Errorf("failed to load accounts: %w", err)
	}
	var missing []string
	for _, code := range unique {
		account, ok := found[code]
		if !ok || !account.IsActive {
			missing = append(missing, code)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return apperrors.NewIncompleteConfigurationError("missing or inactive accounts " + strings.Join(missing, ", "))
	}
	return nil
}

// control resolves a required control account setting.
func (s *postingService) control(ctx context.Context, tenantID, settingKey string) (string, error) {
	code, err := s.accountsMap.ResolveSetting(ctx, tenantID, settingKey)
	if err != nil {
		return "", err
	}
	if code == "" {
		return "", apperrors.NewIncompleteConfigurationError(settingKey + " is not set")
	}
	return code, nil
}

// lineAccount resolves an optional per-line account reference, falling back to fallback.
func (s *postingService) lineAccount(ctx context.Context, tenantID string, accountID *int64, fallback string) (string, error) {
	code, found, err := s.accountsMap.ResolveByID(ctx, tenantID, accountID)
	if err != nil {
		return "", err
	}
	if found {
		return code, nil
	}
	return fallback, nil
}

func (s *postingService) requireInventory() error {
	if s.inventory == nil {
		return apperrors.NewIncompleteConfigurationError("stocked lines require an inventory service")
	}
	return nil
}

func refuseUnpostable(status string, label string) error {
	if !domain.IsPostable(status) {
		return apperrors.NewValidationError(fmt.Sprintf("%s is %s and cannot be posted", label, strings.ToLower(status)))
	}
	return nil
}
