package tenant

import "gorm.io/gorm"

// Scope restricts a query to one company. Every repository read and write
// goes through this so a request can never see or touch another tenant's rows.
func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}

// ScopeTable is Scope for queries that touch a joined or explicitly named
// table and need the column qualified.
func ScopeTable(table, companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(table+".company_id = ?", companyID)
	}
}
