package models

import "gorm.io/gorm"

const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

// Payment status values for purchases and enrollments
const (
	PaymentPending = "pending"
	PaymentSuccess = "success"
	PaymentPaid    = "paid"
)

type User struct {
	gorm.Model
	Name        string  `json:"name"`
	Email       string  `json:"email" gorm:"unique;not null"`
	Password    string  `json:"-"` // bcrypt hash, empty for OAuth accounts
	Role        string  `json:"role" gorm:"default:'student'"` // student, instructor, admin
	GoogleID    *string `json:"-" gorm:"index"`
	FacebookID  *string `json:"-" gorm:"index"`
	IsSuspended bool    `json:"is_suspended" gorm:"default:false"`
	IsDeleted   bool    `json:"-" gorm:"default:false"`

	Purchases []Purchase `json:"purchases,omitempty"`
}

// Purchase records a payment attempt for a course, keyed by the
// gateway transaction reference.
type Purchase struct {
	gorm.Model
	UserID        uint   `json:"user_id" gorm:"index;not null"`
	CourseID      uint   `json:"course_id" gorm:"index;not null"`
	PaymentStatus string `json:"payment_status" gorm:"default:'pending'"` // pending, success
	Reference     string `json:"reference" gorm:"index"`
}
