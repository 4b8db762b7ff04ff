package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/gl_backoffice/internal/apperrors"
	"github.com/SscSPs/gl_backoffice/internal/core/domain"
	"github.com/SscSPs/gl_backoffice/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type stockMode int

const (
	stockNone stockMode = iota
	stockIssue
	stockReceive
)

// tradePosting describes how a trade document kind maps to ledger sides.
// The control account (AR or AP) takes the gross amount on one side; line buckets
// and tax take the opposite side.
type tradePosting struct {
	kind         domain.DocumentType
	controlKey   string
	lineKey      string
	taxKey       string
	controlDebit bool
	supplierSide bool
	stock        stockMode
}

var (
	invoicePosting = tradePosting{
		kind:         domain.DocInvoice,
		controlKey:   domain.SettingARAccount,
		lineKey:      domain.SettingSalesAccount,
		taxKey:       domain.SettingVATOutputAccount,
		controlDebit: true,
		stock:        stockIssue,
	}
	creditNotePosting = tradePosting{
		kind:       domain.DocCreditNote,
		controlKey: domain.SettingARAccount,
		lineKey:    domain.SettingSalesAccount,
		taxKey:     domain.SettingVATOutputAccount,
	}
	billPosting = tradePosting{
		kind:         domain.DocBill,
		controlKey:   domain.SettingAPAccount,
		lineKey:      domain.SettingExpenseAccount,
		taxKey:       domain.SettingVATInputAccount,
		supplierSide: true,
		stock:        stockReceive,
	}
	vendorCreditPosting = tradePosting{
		kind:         domain.DocVendorCredit,
		controlKey:   domain.SettingAPAccount,
		lineKey:      domain.SettingExpenseAccount,
		taxKey:       domain.SettingVATInputAccount,
		controlDebit: true,
		supplierSide: true,
	}
)

func (s *postingService) PostInvoice(ctx context.Context, tenantID, userID string, invoiceID int64) (*domain.JournalEntry, error) {
	return s.postTrade(ctx, tenantID, userID, invoicePosting, invoiceID)
}

func (s *postingService) PostCreditNote(ctx context.Context, tenantID, userID string, creditNoteID int64) (*domain.JournalEntry, error) {
	return s.postTrade(ctx, tenantID, userID, creditNotePosting, creditNoteID)
}

func (s *postingService) PostBill(ctx context.Context, tenantID, userID string, billID int64) (*domain.JournalEntry, error) {
	return s.postTrade(ctx, tenantID, userID, billPosting, billID)
}

func (s *postingService) PostVendorCredit(ctx context.Context, tenantID, userID string, vendorCreditID int64) (*domain.JournalEntry, error) {
	return s.postTrade(ctx, tenantID, userID, vendorCreditPosting, vendorCreditID)
}

func (s *postingService) postTrade(ctx context.Context, tenantID, userID string, tp tradePosting, documentID int64) (*domain.JournalEntry, error) {
	doc, err := s.documents.FindTradeDocument(ctx, tenantID, tp.kind, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s %d: %w", tp.kind, documentID, err)
	}
	label := tp.kind.Label() + " " + doc.Number
	if err := refuseUnpostable(doc.Status, label); err != nil {
		return nil, err
	}

	source := domain.SourceRef{Module: tp.kind.Module(), Type: tp.kind, ID: doc.DocumentID}
	counterparty := doc.CounterpartyID
	controlDims := domain.Dimensions{CustomerID: &counterparty}
	if tp.supplierSide {
		controlDims = domain.Dimensions{SupplierID: &counterparty}
	}

	return s.post(ctx, tenantID, userID, postingPlan{
		source:         source,
		entryDate:      doc.DocumentDate,
		reference:      doc.Number,
		description:    label,
		priorJournalID: doc.JournalID,
		projectID:      doc.ProjectID,
		empty:          len(doc.Lines) == 0,
		build: func(ctx context.Context, d *postingDraft) error {
			controlCode, err := s.control(ctx, tenantID, tp.controlKey)
			if err != nil {
				return err
			}
			defaultLineCode, err := s.control(ctx, tenantID, tp.lineKey)
			if err != nil {
				return err
			}

			// lineSide books on the opposite side of the control account
			lineSide := d.lines.Credit
			controlSide := d.lines.Debit
			if !tp.controlDebit {
				lineSide, controlSide = d.lines.Debit, d.lines.Credit
			}

			var inventoryCode string
			var stocked []domain.DocumentLine
			gross, taxTotal := decimal.Zero, decimal.Zero
			for _, line := range doc.Lines {
				net, tax := accounting.NetAndTax(line)
				gross = gross.Add(net).Add(tax)
				taxTotal = taxTotal.Add(tax)

				isStocked := tp.stock != stockNone && line.Stocked
				if isStocked {
					if line.ItemID == nil {
						return apperrors.NewValidationError(fmt.Sprintf("%s line %d is stocked but has no item", label, line.LineID))
					}
					if err := s.requireInventory(); err != nil {
						return err
					}
					stocked = append(stocked, line)
				}

				code := ""
				if isStocked && tp.stock == stockReceive {
					if inventoryCode == "" {
						if inventoryCode, err = s.control(ctx, tenantID, domain.SettingInventoryAccount); err != nil {
							return err
						}
					}
					code = inventoryCode
				} else if code, err = s.lineAccount(ctx, tenantID, line.AccountID, defaultLineCode); err != nil {
					return err
				}
				lineSide(code, net, label, domain.Dimensions{})
			}

			if !taxTotal.IsZero() {
				taxCode, err := s.control(ctx, tenantID, tp.taxKey)
				if err != nil {
					return err
				}
				lineSide(taxCode, taxTotal, label, domain.Dimensions{})
			}
			controlSide(controlCode, gross, label, controlDims)

			switch {
			case len(stocked) == 0:
			case tp.stock == stockIssue:
				return s.planStockIssue(ctx, tenantID, d, source, label, stocked)
			case tp.stock == stockReceive:
				d.afterVerify(func(ctx context.Context) error {
					for _, item := range groupByItem(stocked) {
						unitCost := item.net
						if !item.qty.IsZero() {
							unitCost = item.net.Div(item.qty)
						}
						if err := s.inventory.Receive(ctx, tenantID, item.itemID, item.qty, unitCost, source); err != nil {
							return fmt.Errorf("failed to receive stock for item %d: %w", item.itemID, err)
						}
					}
					return nil
				})
			}
			return nil
		},
	})
}

// planStockIssue books cost of sales for stocked lines. The inventory movement runs
// only after every account has been verified, and its cost decides the amounts.
func (s *postingService) planStockIssue(ctx context.Context, tenantID string, d *postingDraft, source domain.SourceRef, label string, stocked []domain.DocumentLine) error {
	cogsCode, err := s.control(ctx, tenantID, domain.SettingCOGSAccount)
	if err != nil {
		return err
	}
	inventoryCode, err := s.control(ctx, tenantID, domain.SettingInventoryAccount)
	if err != nil {
		return err
	}
	d.require(cogsCode, inventoryCode)

	d.afterVerify(func(ctx context.Context) error {
		cost := decimal.Zero
		for _, item := range groupByItem(stocked) {
			itemCost, err := s.inventory.Issue(ctx, tenantID, item.itemID, item.qty, source)
			if err != nil {
				return fmt.Errorf("failed to issue stock for item %d: %w", item.itemID, err)
			}
			cost = cost.Add(itemCost)
		}
		cost = accounting.Round2(cost)
		d.lines.Debit(cogsCode, cost, label, domain.Dimensions{})
		d.lines.Credit(inventoryCode, cost, label, domain.Dimensions{})
		return nil
	})
	return nil
}

type itemMovement struct {
	itemID int64
	qty    decimal.Decimal
	net    decimal.Decimal
}

// groupByItem merges stocked lines per item in first-seen order. Stock moves once per
// item and document.
func groupByItem(lines []domain.DocumentLine) []itemMovement {
	var out []itemMovement
	index := make(map[int64]int, len(lines))
	for _, line := range lines {
		net := accounting.LineNet(line.Quantity, line.UnitPrice, line.Discount)
		if i, ok := index[*line.ItemID]; ok {
			out[i].qty = out[i].qty.Add(line.Quantity)
			out[i].net = out[i].net.Add(net)
			continue
		}
		index[*line.ItemID] = len(out)
		out = append(out, itemMovement{itemID: *line.ItemID, qty: line.Quantity, net: net})
	}
	return out
}
