package models

import "time"

// CategoryKind distinguishes expense categories from income categories.
type CategoryKind string

const (
	CategoryExpense CategoryKind = "expense"
	CategoryIncome  CategoryKind = "income"
)

// ValidCategoryKind returns true if k is a valid category kind.
func ValidCategoryKind(k CategoryKind) bool {
	return k == CategoryExpense || k == CategoryIncome
}

// SubcategoryRole tags a subcategory with the lifecycle event it classifies.
// Role resolution replaces the legacy name-convention lookup; the names are
// kept only as a fallback for data created before roles existed.
type SubcategoryRole string

const (
	RoleNone           SubcategoryRole = "none"
	RoleLoanGranted    SubcategoryRole = "loan_granted"
	RoleLoanCollection SubcategoryRole = "loan_collection"
	RoleCreditObtained SubcategoryRole = "credit_obtained"
	RoleCreditPayment  SubcategoryRole = "credit_payment"
)

var validSubcategoryRoles = map[SubcategoryRole]bool{
	RoleNone:           true,
	RoleLoanGranted:    true,
	RoleLoanCollection: true,
	RoleCreditObtained: true,
	RoleCreditPayment:  true,
}

// ValidSubcategoryRole returns true if r is a valid role.
func ValidSubcategoryRole(r SubcategoryRole) bool {
	return validSubcategoryRoles[r]
}

// LegacyRoleNames maps roles to the human-readable names the original data
// used by convention. Matching is case-insensitive substring.
var LegacyRoleNames = map[SubcategoryRole]string{
	RoleLoanGranted:    "préstamo otorgado",
	RoleLoanCollection: "cobranza de préstamo",
	RoleCreditObtained: "crédito obtenido",
	RoleCreditPayment:  "pago de crédito",
}

// Subcategory is a leaf classification; every transaction references exactly
// one subcategory id (possibly empty when no classification applies).
type Subcategory struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Role SubcategoryRole `json:"role,omitempty"`
}

// Category groups subcategories for either incomes or expenses.
type Category struct {
	ID            string        `json:"id"`
	Kind          CategoryKind  `json:"kind"`
	Name          string        `json:"name"`
	Subcategories []Subcategory `json:"subcategories"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// FindSubcategory returns the subcategory with the given id, or nil.
func (c *Category) FindSubcategory(id string) *Subcategory {
	for i := range c.Subcategories {
		if c.Subcategories[i].ID == id {
			return &c.Subcategories[i]
		}
	}
	return nil
}
