package catalog

// Product types.
const (
	ProductDropIn     = "drop_in"
	ProductPackage    = "package"
	ProductMembership = "membership"
)

type ClassType struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes"`
}

type Instructor struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Bio      string `json:"bio"`
	IsActive bool   `json:"is_active"`
}

// ProductMeta carries the type-specific fields: credits and expiry for
// packages, duration for memberships. Drop-ins carry nothing.
type ProductMeta struct {
	Credits      int `json:"credits,omitempty"`
	ExpiryDays   int `json:"expiry_days,omitempty"`
	DurationDays int `json:"duration_days,omitempty"`
}

type Product struct {
	ID          string      `json:"id"`
	Type        string      `json:"type"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	PriceCents  int64       `json:"price_cents"`
	Currency    string      `json:"currency"`
	IsActive    bool        `json:"is_active"`
	Meta        ProductMeta `json:"meta"`
}

type ClassTypeForm struct {
	Name            string `form:"name" binding:"required"`
	Description     string `form:"description"`
	DurationMinutes int    `form:"duration_minutes" binding:"required,min=1"`
}

type InstructorForm struct {
	FullName string `form:"full_name" binding:"required"`
	Bio      string `form:"bio"`
	IsActive bool   `form:"is_active"`
}

type ProductForm struct {
	Type         string `form:"type" binding:"required,oneof=drop_in package membership"`
	Name         string `form:"name" binding:"required"`
	Description  string `form:"description"`
	PriceCents   int64  `form:"price_cents" binding:"required,min=0"`
	Currency     string `form:"currency"`
	IsActive     bool   `form:"is_active"`
	Credits      int    `form:"credits"`
	ExpiryDays   int    `form:"expiry_days"`
	DurationDays int    `form:"duration_days"`
}

// Meta builds the payload meta for the selected product type, dropping the
// fields that do not apply.
func (f ProductForm) Meta() map[string]int {
	switch f.Type {
	case ProductPackage:
		return map[string]int{"credits": f.Credits, "expiry_days": f.ExpiryDays}
	case ProductMembership:
		return map[string]int{"duration_days": f.DurationDays}
	default:
		return map[string]int{}
	}
}
