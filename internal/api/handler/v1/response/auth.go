package response

import (
	"github.com/campushq/campus-events-api/internal/domain"
)

type LoginResponse struct {
	Token string           `json:"token"`
	Admin domain.AdminUser `json:"admin"`
}

type StudentLoginResponse struct {
	Token   string         `json:"token"`
	Student domain.Student `json:"student"`
}
