package accounting

import (
	"fmt"

	"github.com/SscSPs/gl_backoffice/internal/apperrors"
	"github.com/SscSPs/gl_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Round2 rounds to two decimal places, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ToMinorUnits converts an amount to integer cents after rounding.
func ToMinorUnits(d decimal.Decimal) int64 {
	return d.Round(2).Shift(2).IntPart()
}

// LineNet is round2(quantity * unitPrice - discount).
func LineNet(quantity, unitPrice, discount decimal.Decimal) decimal.Decimal {
	return Round2(quantity.Mul(unitPrice).Sub(discount))
}

// LineTax is round2(net * rate / 100). The rate is a percentage.
func LineTax(net, rate decimal.Decimal) decimal.Decimal {
	return Round2(net.Mul(rate).Div(hundred))
}

// NetAndTax applies LineNet and LineTax to a document line.
func NetAndTax(l domain.DocumentLine) (decimal.Decimal, decimal.Decimal) {
	net := LineNet(l.Quantity, l.UnitPrice, l.Discount)
	return net, LineTax(net, l.TaxRate)
}

// HasAtMostTwoDecimals reports whether d needs no rounding to be stored as cents.
func HasAtMostTwoDecimals(d decimal.Decimal) bool {
	return d.Equal(d.Round(2))
}

// ValidateLines checks the invariants every persisted journal must satisfy: at least two
// lines, exactly one non-zero non-negative side per line, amounts in whole cents, and
// debits equal to credits in minor units.
func ValidateLines(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return apperrors.NewUnbalancedError(fmt.Sprintf("journal must have at least two lines, got %d", len(lines)))
	}

	var debit, credit int64
	for i, l := range lines {
		if l.AccountCode == "" {
			return apperrors.NewValidationError(fmt.Sprintf("line %d has no account code", i+1))
		}
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return apperrors.NewValidationError(fmt.Sprintf("line %d has a negative amount", i+1))
		}
		if l.Debit.IsZero() == l.Credit.IsZero() {
			return apperrors.NewValidationError(fmt.Sprintf("line %d must have exactly one of debit or credit", i+1))
		}
		if !HasAtMostTwoDecimals(l.Debit) || !HasAtMostTwoDecimals(l.Credit) {
			return apperrors.NewValidationError(fmt.Sprintf("line %d has more than two decimal places", i+1))
		}
		debit += ToMinorUnits(l.Debit)
		credit += ToMinorUnits(l.Credit)
	}

	if debit != credit {
		return apperrors.NewUnbalancedError(fmt.Sprintf("debits %s do not equal credits %s",
			decimal.New(debit, -2).StringFixed(2), decimal.New(credit, -2).StringFixed(2)))
	}
	return nil
}

type bucket struct {
	code        string
	description string
	dims        domain.Dimensions
	amount      decimal.Decimal // positive is debit
}

// LineBuilder accumulates signed amounts per (account, description, dimensions) bucket
// and emits journal lines in first-seen order.
type LineBuilder struct {
	buckets []*bucket
	index   map[string]*bucket
}

func NewLineBuilder() *LineBuilder {
	return &LineBuilder{index: make(map[string]*bucket)}
}

func (b *LineBuilder) Debit(code string, amount decimal.Decimal, description string, dims domain.Dimensions) {
	b.add(code, amount, description, dims)
}

func (b *LineBuilder) Credit(code string, amount decimal.Decimal, description string, dims domain.Dimensions) {
	b.add(code, amount.Neg(), description, dims)
}

func (b *LineBuilder) add(code string, amount decimal.Decimal, description string, dims domain.Dimensions) {
	key := code + "|" + description + "|" + dims.Key()
	bk, ok := b.index[key]
	if !ok {
		bk = &bucket{code: code, description: description, dims: dims, amount: decimal.Zero}
		b.index[key] = bk
		b.buckets = append(b.buckets, bk)
	}
	bk.amount = bk.amount.Add(amount)
}

// Codes returns the distinct account codes referenced so far.
func (b *LineBuilder) Codes() []string {
	seen := make(map[string]struct{}, len(b.buckets))
	codes := make([]string, 0, len(b.buckets))
	for _, bk := range b.buckets {
		if _, ok := seen[bk.code]; ok {
			continue
		}
		seen[bk.code] = struct{}{}
		codes = append(codes, bk.code)
	}
	return codes
}

// Lines rounds every bucket and returns the non-zero ones as debit or credit lines.
func (b *LineBuilder) Lines() []domain.JournalLine {
	lines := make([]domain.JournalLine, 0, len(b.buckets))
	for _, bk := range b.buckets {
		amount := Round2(bk.amount)
		if amount.IsZero() {
			continue
		}
		line := domain.JournalLine{
			LineNo:      len(lines) + 1,
			AccountCode: bk.code,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
			Description: bk.description,
			Dimensions:  bk.dims,
		}
		if amount.IsPositive() {
			line.Debit = amount
		} else {
			line.Credit = amount.Neg()
		}
		lines = append(lines, line)
	}
	return lines
}

// MirrorLines swaps debit and credit on every line, keeping accounts and dimensions.
func MirrorLines(lines []domain.JournalLine) []domain.JournalLine {
	mirrored := make([]domain.JournalLine, len(lines))
	for i, l := range lines {
		mirrored[i] = domain.JournalLine{
			LineNo:      i + 1,
			AccountCode: l.AccountCode,
			Debit:       l.Credit,
			Credit:      l.Debit,
			Description: l.Description,
			Dimensions:  l.Dimensions,
		}
	}
	return mirrored
}
