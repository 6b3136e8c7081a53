package models

import (
	"time"

	"loandesk-backoffice/internal/core/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ============================================================
// Identity tables
// ============================================================

// User represents users table. Phone number is the login key; email is
// optional but unique when present. Rows are hard-deleted because the
// delete cascade (transactions -> loans -> profile -> user) must actually
// remove data, not soft-hide it.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Role        string    `gorm:"size:20;not null;index" json:"role"`
	PhoneNumber string    `gorm:"uniqueIndex;size:20;not null" json:"phone_number"`
	Email       *string   `gorm:"uniqueIndex;size:100" json:"email"`
	Password    string    `gorm:"size:255;not null" json:"-"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID          uint      `json:"id"`
	Role        string    `json:"role"`
	PhoneNumber string    `json:"phone_number"`
	Email       *string   `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Role:        u.Role,
		PhoneNumber: u.PhoneNumber,
		Email:       u.Email,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Profile tables
// ============================================================

// Customer represents customers table (1:1 with a role=customer user).
// The user id doubles as the customer id everywhere else in the system.
type Customer struct {
	UserID               uint      `gorm:"primaryKey" json:"user_id"`
	SocialSecurityNumber string    `gorm:"uniqueIndex;size:20;not null" json:"social_security_number"`
	FirstName            string    `gorm:"size:100;not null" json:"first_name"`
	LastName             string    `gorm:"size:100;not null" json:"last_name"`
	DateOfBirth          time.Time `gorm:"type:date;not null" json:"date_of_birth"`
	Address              string    `gorm:"type:text" json:"address"`
	IsActive             bool      `gorm:"default:true" json:"is_active"`
	CreatedAt            time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Customer) TableName() string {
	return "customers"
}

// CustomerResponse DTO with contact fields joined from the user row and
// the derived age.
type CustomerResponse struct {
	UserID               uint      `json:"user_id"`
	SocialSecurityNumber string    `json:"social_security_number"`
	FirstName            string    `json:"first_name"`
	LastName             string    `json:"last_name"`
	DateOfBirth          time.Time `json:"date_of_birth"`
	Address              string    `json:"address"`
	IsActive             bool      `json:"is_active"`
	Age                  int       `json:"age"`
	PhoneNumber          string    `json:"phone_number,omitempty"`
	Email                *string   `json:"email,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (c *Customer) ToResponse() *CustomerResponse {
	resp := &CustomerResponse{
		UserID:               c.UserID,
		SocialSecurityNumber: c.SocialSecurityNumber,
		FirstName:            c.FirstName,
		LastName:             c.LastName,
		DateOfBirth:          c.DateOfBirth,
		Address:              c.Address,
		IsActive:             c.IsActive,
		Age:                  yearsSince(c.DateOfBirth, time.Now()),
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
	if c.User != nil {
		resp.PhoneNumber = c.User.PhoneNumber
		resp.Email = c.User.Email
	}
	return resp
}

// Employee represents employees table (1:1 with a role=employee user)
type Employee struct {
	UserID      uint      `gorm:"primaryKey" json:"user_id"`
	Position    string    `gorm:"size:100;not null" json:"position"`
	FirstName   string    `gorm:"size:100;not null" json:"first_name"`
	LastName    string    `gorm:"size:100;not null" json:"last_name"`
	DateOfBirth time.Time `gorm:"type:date;not null" json:"date_of_birth"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Employee) TableName() string {
	return "employees"
}

// EmployeeResponse DTO
type EmployeeResponse struct {
	UserID      uint      `json:"user_id"`
	Position    string    `json:"position"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	DateOfBirth time.Time `json:"date_of_birth"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Email       *string   `json:"email,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (e *Employee) ToResponse() *EmployeeResponse {
	resp := &EmployeeResponse{
		UserID:      e.UserID,
		Position:    e.Position,
		FirstName:   e.FirstName,
		LastName:    e.LastName,
		DateOfBirth: e.DateOfBirth,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	if e.User != nil {
		resp.PhoneNumber = e.User.PhoneNumber
		resp.Email = e.User.Email
	}
	return resp
}

// ============================================================
// Ledger tables
// ============================================================

// Loan represents loans table. Only cumulative amounts are stored; every
// derived figure (outstanding principal, interest due, overdue penalty,
// status) is recomputed per read by domain.CalculateLoanDetails. Rate and
// schedule terms are copied from config at creation so later config changes
// never rewrite history.
type Loan struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	CustomerID    uint            `gorm:"not null;index" json:"customer_id"`
	LoanAmount    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"loan_amount"`
	PaidAmount    decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"paid_amount"`
	PaidInterest  decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"paid_interest"`
	InterestRate  decimal.Decimal `gorm:"type:decimal(8,4);not null" json:"interest_rate"`
	OverdueRate   decimal.Decimal `gorm:"type:decimal(8,4);not null" json:"overdue_rate"`
	LoanPeriod    int             `gorm:"not null" json:"loan_period"`
	ExtensionDays int             `gorm:"not null;default:0" json:"extension_days"`
	WaitingDays   int             `gorm:"not null;default:0" json:"waiting_days"`
	StartDate     time.Time       `gorm:"not null" json:"start_date"`
	ExtensionDate *time.Time      `json:"extension_date"`
	DefaultDate   *time.Time      `json:"default_date"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	Customer *Customer `gorm:"foreignKey:CustomerID" json:"-"`
}

func (Loan) TableName() string {
	return "loans"
}

// Snapshot detaches the stored fields for the derivation calculator.
func (l *Loan) Snapshot() domain.LoanSnapshot {
	return domain.LoanSnapshot{
		ID:            l.ID,
		CustomerID:    l.CustomerID,
		LoanAmount:    l.LoanAmount,
		PaidAmount:    l.PaidAmount,
		PaidInterest:  l.PaidInterest,
		StartDate:     l.StartDate,
		ExtensionDate: l.ExtensionDate,
		DefaultDate:   l.DefaultDate,
		Terms: domain.Terms{
			InterestRate:  l.InterestRate,
			OverdueRate:   l.OverdueRate,
			LoanPeriod:    l.LoanPeriod,
			ExtensionDays: l.ExtensionDays,
			WaitingDays:   l.WaitingDays,
		},
	}
}

// LoanResponse DTO: stored fields plus the derived view
type LoanResponse struct {
	ID            uint            `json:"id"`
	CustomerID    uint            `json:"customer_id"`
	LoanAmount    decimal.Decimal `json:"loan_amount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	PaidInterest  decimal.Decimal `json:"paid_interest"`
	InterestRate  decimal.Decimal `json:"interest_rate"`
	OverdueRate   decimal.Decimal `json:"overdue_rate"`
	LoanPeriod    int             `json:"loan_period"`
	ExtensionDays int             `json:"extension_days"`
	WaitingDays   int             `json:"waiting_days"`
	StartDate     time.Time       `json:"start_date"`
	ExtensionDate *time.Time      `json:"extension_date"`
	DefaultDate   *time.Time      `json:"default_date"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	domain.LoanDetails
}

func (l *Loan) ToResponse(details *domain.LoanDetails) *LoanResponse {
	return &LoanResponse{
		ID:            l.ID,
		CustomerID:    l.CustomerID,
		LoanAmount:    l.LoanAmount,
		PaidAmount:    l.PaidAmount,
		PaidInterest:  l.PaidInterest,
		InterestRate:  l.InterestRate,
		OverdueRate:   l.OverdueRate,
		LoanPeriod:    l.LoanPeriod,
		ExtensionDays: l.ExtensionDays,
		WaitingDays:   l.WaitingDays,
		StartDate:     l.StartDate,
		ExtensionDate: l.ExtensionDate,
		DefaultDate:   l.DefaultDate,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
		LoanDetails:   *details,
	}
}

// Transaction represents transactions table: one immutable ledger entry per
// principal or interest movement. PrincipleAmount is the outstanding
// principal snapshot after the entry is applied. The customer id is
// denormalized from the loan for query convenience.
type Transaction struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	LoanID             uint            `gorm:"not null;index" json:"loan_id"`
	CustomerID         uint            `gorm:"not null;index" json:"customer_id"`
	EmployeeID         *uint           `json:"employee_id"`
	TransactionAmount  decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"transaction_amount"`
	TransactionPurpose string          `gorm:"size:50;not null" json:"transaction_purpose"`
	PrincipleAmount    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"principle_amount"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	Loan     *Loan     `gorm:"foreignKey:LoanID" json:"-"`
	Customer *Customer `gorm:"foreignKey:CustomerID;references:UserID" json:"-"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// TransactionResponse DTO with customer names joined for listings
type TransactionResponse struct {
	ID                 uint            `json:"id"`
	LoanID             uint            `json:"loan_id"`
	CustomerID         uint            `json:"customer_id"`
	EmployeeID         *uint           `json:"employee_id"`
	TransactionAmount  decimal.Decimal `json:"transaction_amount"`
	TransactionPurpose string          `json:"transaction_purpose"`
	PrincipleAmount    decimal.Decimal `json:"principle_amount"`
	CustomerFirstName  string          `json:"customer_first_name,omitempty"`
	CustomerLastName   string          `json:"customer_last_name,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

func (t *Transaction) ToResponse() *TransactionResponse {
	resp := &TransactionResponse{
		ID:                 t.ID,
		LoanID:             t.LoanID,
		CustomerID:         t.CustomerID,
		EmployeeID:         t.EmployeeID,
		TransactionAmount:  t.TransactionAmount,
		TransactionPurpose: t.TransactionPurpose,
		PrincipleAmount:    t.PrincipleAmount,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
	if t.Customer != nil {
		resp.CustomerFirstName = t.Customer.FirstName
		resp.CustomerLastName = t.Customer.LastName
	}
	return resp
}

// yearsSince computes full years elapsed between two dates.
func yearsSince(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	anniversary := birth.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Customer{},
		&Employee{},
		&Loan{},
		&Transaction{},
	)
}
