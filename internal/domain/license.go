package domain

import "time"

// License grants a user access until ValidTill. Every license belongs to
// exactly one existing user; users with licenses cannot be deleted.
type License struct {
	ID          uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Key         string    `json:"key" gorm:"uniqueIndex;not null"`
	ValidTill   time.Time `json:"valid_till" gorm:"not null"`
	UserID      uint      `json:"user_id" gorm:"not null;index"`
	IssuedBy    string    `json:"issued_by" gorm:"not null"`
	LicenseType *string   `json:"license_type"`
	IsActive    bool      `json:"is_active" gorm:"not null;default:true"`
	Comments    *string   `json:"comments"`
	Audit
}

func (License) TableName() string { return "license" }

// Fields lists the license's columns by name, audit columns included.
func (l *License) Fields() map[string]any {
	m := map[string]any{
		"id":           l.ID,
		"key":          l.Key,
		"valid_till":   l.ValidTill,
		"user_id":      l.UserID,
		"issued_by":    l.IssuedBy,
		"license_type": l.LicenseType,
		"is_active":    l.IsActive,
		"comments":     l.Comments,
	}
	l.Audit.fields(m)
	return m
}
