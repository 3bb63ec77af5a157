package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" gorm:"uniqueIndex;not null"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
	Role      string `json:"role" gorm:"type:varchar(32);default:guide;index"` // admin, moderator, business_food, business_accommodation, guide
}

// MarshalJSON hides the password hash from every response.
func (u *User) MarshalJSON() ([]byte, error) {
	type Alias User
	aux := &struct {
		Password string `json:"password,omitempty"`
		*Alias
	}{
		Alias: (*Alias)(u),
	}
	aux.Password = ""
	return json.Marshal(aux)
}
