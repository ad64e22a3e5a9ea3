package models

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Credentials
	Username string `gorm:"unique;not null;size:50" json:"username"`
	Email    string `gorm:"unique;not null;size:100" json:"email"`
	Password string `gorm:"not null" json:"-"`

	// Profile
	Name  string `gorm:"not null;size:100" json:"name"`
	Phone string `gorm:"size:20" json:"phone,omitempty"`

	// Shipping defaults
	Address string `gorm:"type:text" json:"address,omitempty"`
	City    string `gorm:"size:100" json:"city,omitempty"`
	State   string `gorm:"size:100" json:"state,omitempty"`
	Pincode string `gorm:"size:20" json:"pincode,omitempty"`

	IsAdmin bool `gorm:"default:false" json:"is_admin"`
}

// PublicUser is the identity payload returned by auth endpoints.
type PublicUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Email: u.Email, Name: u.Name}
}
