package mapping

import (
	"github.com/SscSPs/gl_backoffice/internal/core/domain"
	"github.com/SscSPs/gl_backoffice/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:   d.AccountID,
		TenantID:    d.TenantID,
		Code:        d.Code,
		Name:        d.Name,
		AccountType: models.AccountType(d.AccountType),
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		TenantID:    m.TenantID,
		Code:        m.Code,
		Name:        m.Name,
		AccountType: domain.AccountType(m.AccountType),
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountMap keys converted accounts by code.
func ToDomainAccountMap(ms []models.Account) map[string]domain.Account {
	ds := make(map[string]domain.Account, len(ms))
	for _, m := range ms {
		ds[m.Code] = ToDomainAccount(m)
	}
	return ds
}

func ToModelPeriodLock(d domain.PeriodLock) models.PeriodLock {
	return models.PeriodLock{
		LockID:      d.LockID,
		TenantID:    d.TenantID,
		LockDate:    d.LockDate,
		Reason:      d.Reason,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainPeriodLock(m models.PeriodLock) domain.PeriodLock {
	return domain.PeriodLock{
		LockID:      m.LockID,
		TenantID:    m.TenantID,
		LockDate:    domain.DateOnly(m.LockDate),
		Reason:      m.Reason,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
