package domain

// User is an application user identified by mobile number. Users are
// created outside this service.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Email        *string   `json:"email" gorm:"uniqueIndex"`
	Name         string    `json:"name" gorm:"not null"`
	MobileNumber string    `json:"mobile_number" gorm:"uniqueIndex;not null"`
	DeviceID     string    `json:"device_id" gorm:"not null"`
	Licenses     []License `json:"-" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (User) TableName() string { return "user" }

// Fields lists the user's columns by name.
func (u *User) Fields() map[string]any {
	return map[string]any{
		"id":            u.ID,
		"email":         u.Email,
		"name":          u.Name,
		"mobile_number": u.MobileNumber,
		"device_id":     u.DeviceID,
	}
}
