package models

import "time"

// Status represents the current state of a claim.
type Status string

// Possible values for Status. The declared order here is also the
// column order on the board.
const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
	StatusDeclined  Status = "declined"
)

// AllStatuses lists every valid status in board column order.
var AllStatuses = []Status{
	StatusPending,
	StatusApproved,
	StatusRejected,
	StatusPaid,
	StatusCancelled,
	StatusDeclined,
}

// IsValid reports whether s is one of the known status values.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusPaid, StatusCancelled, StatusDeclined:
		return true
	}
	return false
}

// Label returns the human-readable form of the status.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusApproved:
		return "Approved"
	case StatusRejected:
		return "Rejected"
	case StatusPaid:
		return "Paid"
	case StatusCancelled:
		return "Cancelled"
	case StatusDeclined:
		return "Declined"
	}
	return string(s)
}

// Category represents the expense category of a claim.
type Category string

// Possible values for Category
const (
	CategoryTravel        Category = "travel"
	CategoryAccommodation Category = "accommodation"
	CategoryMeals         Category = "meals"
	CategoryEntertainment Category = "entertainment"
	CategoryTransport     Category = "transport"
	CategoryOther         Category = "other"
)

// AllCategories lists every valid category.
var AllCategories = []Category{
	CategoryTravel,
	CategoryAccommodation,
	CategoryMeals,
	CategoryEntertainment,
	CategoryTransport,
	CategoryOther,
}

// IsValid reports whether c is one of the known category values.
func (c Category) IsValid() bool {
	switch c {
	case CategoryTravel, CategoryAccommodation, CategoryMeals, CategoryEntertainment, CategoryTransport, CategoryOther:
		return true
	}
	return false
}

// Claim represents an expense reimbursement request.
type Claim struct {
	ID          int64      `json:"id"`
	Amount      float64    `json:"amount"`
	Category    Category   `json:"category"`
	Comments    string     `json:"comments"`
	Status      Status     `json:"status"`
	DocumentURL *string    `json:"document_url,omitempty"`
	VerifiedAt  *time.Time `json:"verified_at,omitempty"`
	OwnerID     int64      `json:"owner_id"`
	Owner       *User      `json:"owner,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// EnsureDefaults fills zero-value fields that have a conventional default.
// New claims start out pending unless the creator says otherwise.
func (c *Claim) EnsureDefaults() {
	if c.Status == "" {
		c.Status = StatusPending
	}
	if c.Category == "" {
		c.Category = CategoryOther
	}
}

// User represents a user account.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Surname      string    `json:"surname"`
	Email        string    `json:"email"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	if u.Surname == "" {
		return u.Name
	}
	return u.Name + " " + u.Surname
}
