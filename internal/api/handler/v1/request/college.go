package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type CreateCollegeRequest struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
}

func (req *CreateCollegeRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Code, validation.Required, validation.Length(2, 20), is.UpperCase),
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Address, validation.Length(0, 200)),
		validation.Field(&req.ContactEmail, validation.Required, is.Email),
		validation.Field(&req.ContactPhone, validation.Length(0, 20)),
	)
}

type UpdateCollegeRequest struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
}

func (req *UpdateCollegeRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Address, validation.Length(0, 200)),
		validation.Field(&req.ContactEmail, validation.Required, is.Email),
		validation.Field(&req.ContactPhone, validation.Length(0, 20)),
	)
}
