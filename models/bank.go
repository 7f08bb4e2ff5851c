package models

import (
	"gorm.io/gorm"
)

// Bank account types.
const (
	BankAccountSavings = "Savings"
	BankAccountCurrent = "Current"
	BankAccountSalary  = "Salary"
)

// Bank is a payout account attached to a storefront owner.
type Bank struct {
	gorm.Model
	UserID        uint   `gorm:"not null;index" json:"user_id"`
	Name          string `gorm:"not null" json:"name"`
	BankName      string `json:"bank_name"`
	Branch        string `gorm:"not null" json:"branch"`
	BranchAddress string `json:"branch_address"`
	AccountType   string `gorm:"default:'Savings'" json:"account_type"`
	AccountNumber string `gorm:"not null;uniqueIndex" json:"account_number"`
	IFSCCode      string `json:"ifsc_code"`
}
