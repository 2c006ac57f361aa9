package dto

import "github.com/propertypinoy/website/internal/models"

type ContactRequest struct {
	FirstName string `json:"firstName" form:"firstName"`
	LastName  string `json:"lastName" form:"lastName"`
	Email     string `json:"email" form:"email"`
	Phone     string `json:"phone" form:"phone"`
	Subject   string `json:"subject" form:"subject"`
	Message   string `json:"message" form:"message"`
	Company   string `json:"company" form:"company"`
}

type ContactResponse struct {
	Message string                     `json:"message"`
	Data    []models.ContactSubmission `json:"data"`
}
