package model

import "time"

// User is an account that authors posts. Secret columns never leave the
// process: the password hash, remember token and two-factor secret are
// excluded from every serialized form.
type User struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"size:255;not null" json:"name"`
	Email           string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash    string    `gorm:"size:255;not null" json:"-"`
	RememberToken   string    `gorm:"size:100" json:"-"`
	TwoFactorSecret string    `gorm:"type:text" json:"-"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	Posts []Post `gorm:"foreignKey:UserID" json:"-"`
}

// UserSummary is the id+name pair handed to the author filter control.
type UserSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
