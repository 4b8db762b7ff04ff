package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/SscSPs/gl_backoffice/internal/apperrors"
	"github.com/SscSPs/gl_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/gl_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/gl_backoffice/internal/core/ports/services"
	"github.com/SscSPs/gl_backoffice/internal/dto"
)

const defaultSequencePad = 4

type documentSequenceService struct {
	BaseService
	repo portsrepo.SequenceRepository
}

func NewDocumentSequenceService(repo portsrepo.SequenceRepository) portssvc.DocumentSequenceSvc {
	return &documentSequenceService{repo: repo}
}

var _ portssvc.DocumentSequenceSvc = (*documentSequenceService)(nil)

func (s *documentSequenceService) Issue(ctx context.Context, tenantID string, docType string, req dto.IssueNumberRequest) (string, error) {
	docType = strings.TrimSpace(docType)
	if docType == "" {
		return "", apperrors.NewValidationError("document type is required")
	}
	pad := req.Pad
	if pad <= 0 {
		pad = defaultSequencePad
	}
	if isTemplate(req.Prefix) && len(req.PeriodKey) != 6 {
		return "", apperrors.NewValidationError(fmt.Sprintf("prefix %q needs a YYYYMM period key", req.Prefix))
	}
	prefix := ExpandPrefix(req.Prefix, req.PeriodKey)

	key := domain.SequenceKey{TenantID: tenantID, DocType: docType, PeriodKey: req.PeriodKey}
	counter, err := s.repo.NextValue(ctx, key, prefix, pad)
	if err != nil {
		s.LogError(ctx, err, "Failed to advance document sequence", slog.String("doc_type", docType), slog.String("period_key", req.PeriodKey))
		return "", fmt.Errorf("failed to issue %s number: %w", docType, err)
	}

	number := FormatSequenceNumber(prefix, counter.LastValue, pad)
	s.LogDebug(ctx, "Document number issued", slog.String("doc_type", docType), slog.String("number", number))
	return number, nil
}

// FormatSequenceNumber renders prefix followed by value left-padded with zeros to pad digits.
// Values wider than pad are not truncated.
func FormatSequenceNumber(prefix string, value int64, pad int) string {
	digits := strconv.FormatInt(value, 10)
	if len(digits) < pad {
		digits = strings.Repeat("0", pad-len(digits)) + digits
	}
	return prefix + digits
}

var prefixTokens = []string{"{YYYY}", "{YY}", "{MM}", "{PERIOD}"}

func isTemplate(prefix string) bool {
	for _, token := range prefixTokens {
		if strings.Contains(prefix, token) {
			return true
		}
	}
	return false
}

// ExpandPrefix replaces {YYYY}, {YY}, {MM} and {PERIOD} with values from a YYYYMM period key.
// Prefixes without placeholders are returned unchanged.
func ExpandPrefix(prefix, periodKey string) string {
	if !isTemplate(prefix) || len(periodKey) != 6 {
		return prefix
	}
	year, month := periodKey[:4], periodKey[4:]
	return strings.NewReplacer(
		"{YYYY}", year,
		"{YY}", year[2:],
		"{MM}", month,
		"{PERIOD}", periodKey,
	).Replace(prefix)
}
