package dto

import (
	"github.com/google/uuid"

	"github.com/propertypinoy/website/internal/models"
)

// CreateUserRequest is one admin user-creation form submission. UserType
// is either a user type id or a label; UserTypeID, when set, wins.
type CreateUserRequest struct {
	Email      string `json:"email" form:"email"`
	Password   string `json:"password" form:"password"`
	FirstName  string `json:"firstName" form:"firstName"`
	LastName   string `json:"lastName" form:"lastName"`
	MiddleName string `json:"middleName" form:"middleName"`
	Gender     string `json:"gender" form:"gender"`
	Birthdate  string `json:"birthdate" form:"birthdate"`
	Phone      string `json:"phone" form:"phone"`
	Address    string `json:"address" form:"address"`
	City       string `json:"city" form:"city"`
	Country    string `json:"country" form:"country"`
	UserType   string `json:"userType" form:"userType"`
	UserTypeID string `json:"userTypeId" form:"userTypeId"`

	CompanyName    string `json:"companyName" form:"companyName"`
	CompanyType    string `json:"companyType" form:"companyType"`
	Industry       string `json:"industry" form:"industry"`
	RegistrationNo string `json:"registrationNo" form:"registrationNo"`
	CompanyAddress string `json:"companyAddress" form:"companyAddress"`
	CompanyCity    string `json:"companyCity" form:"companyCity"`
	CompanyCountry string `json:"companyCountry" form:"companyCountry"`
	CompanyPhone   string `json:"companyPhone" form:"companyPhone"`
	CompanyEmail   string `json:"companyEmail" form:"companyEmail"`
	Website        string `json:"website" form:"website"`
}

type CreateUserResponse struct {
	Message   string               `json:"message"`
	User      UserResponse         `json:"user"`
	UserInfo  []models.UserProfile `json:"userInfo"`
	CompanyID *uuid.UUID           `json:"companyId"`
}

type UserTypeResponse struct {
	ID       uuid.UUID `json:"id"`
	TypeName string    `json:"type_name"`
}
