package domain

// Tenant setting keys naming the control accounts used by posting.
// A setting holds either an account id (all digits) or a literal account code.
const (
	SettingARAccount                      = "finance_ar_account_id"
	SettingAPAccount                      = "finance_ap_account_id"
	SettingBankAccount                    = "finance_bank_account_id"
	SettingVATOutputAccount               = "finance_vat_output_account_id"
	SettingVATInputAccount                = "finance_vat_input_account_id"
	SettingSalesAccount                   = "finance_sales_account_id"
	SettingExpenseAccount                 = "finance_expense_account_id"
	SettingCOGSAccount                    = "finance_cogs_account_id"
	SettingInventoryAccount               = "finance_inventory_account_id"
	SettingSalaryExpenseAccount           = "finance_salary_expense_account_id"
	SettingPayrollBankAccount             = "finance_payroll_bank_account_id"
	SettingPAYEAccount                    = "finance_paye_account_id"
	SettingUIFAccount                     = "finance_uif_account_id"
	SettingSDLAccount                     = "finance_sdl_account_id"
	SettingDepreciationExpenseAccount     = "finance_depreciation_expense_account_id"
	SettingAccumulatedDepreciationAccount = "finance_accumulated_depreciation_account_id"

	// SettingAllowNegativeStock lets inventory issues exceed on-hand quantity for a tenant.
	SettingAllowNegativeStock = "inventory_allow_negative_stock"
)
