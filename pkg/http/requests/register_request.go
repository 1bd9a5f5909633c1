package requests

import (
	"github.com/oarkflow/chatapp/pkg/models"
)

// RegisterRequest is the browser form post. Gender is empty when no radio
// button was checked.
type RegisterRequest struct {
	FullName     string `json:"fullname" form:"fullname"`
	Username     string `json:"username" form:"username"`
	Email        string `json:"email" form:"email"`
	Password     string `json:"password" form:"password"`
	ConfPassword string `json:"confpassword" form:"confpassword"`
	Gender       string `json:"gender" form:"gender"`
}

func (r RegisterRequest) Fields() map[models.FieldID]string {
	return map[models.FieldID]string{
		models.FieldFullName:        r.FullName,
		models.FieldUsername:        r.Username,
		models.FieldEmail:           r.Email,
		models.FieldPassword:        r.Password,
		models.FieldConfirmPassword: r.ConfPassword,
	}
}

func (r RegisterRequest) GenderValue() models.Gender {
	g := models.Gender(r.Gender)
	if !g.Valid() {
		return models.GenderUnset
	}
	return g
}
