package models

import (
	"gorm.io/gorm"
)

// TeenAgeThreshold separates the kids world from the teens world.
const TeenAgeThreshold = 13

type User struct {
	gorm.Model
	Username     string `gorm:"unique;not null"`
	Email        string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null"`
	Age          int    `gorm:"not null"`
	Gender       string
}

// IsTeen is always derived from Age, never stored, so the flag
// cannot drift from the age it is based on.
func (u *User) IsTeen() bool {
	return u.Age >= TeenAgeThreshold
}
