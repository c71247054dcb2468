package models

import "time"

// Address is the postal address shape shared by clients and employees.
type Address struct {
	Street  string `json:"street"`
	Area    string `json:"area"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

type Client struct {
	ID            int64     `json:"id"`
	CompanyName   string    `json:"companyName"`
	ContactPerson string    `json:"contactPerson"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Address       Address   `json:"address"`
	GSTIN         string    `json:"gstin"`
	PAN           string    `json:"pan"`
	Notes         string    `json:"notes"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ClientRequest is the body for creating or replacing a client
type ClientRequest struct {
	CompanyName   string  `json:"companyName" validate:"required"`
	ContactPerson string  `json:"contactPerson"`
	Email         string  `json:"email" validate:"required,email"`
	Phone         string  `json:"phone" validate:"required"`
	Address       Address `json:"address"`
	GSTIN         string  `json:"gstin"`
	PAN           string  `json:"pan"`
	Notes         string  `json:"notes"`
	IsActive      *bool   `json:"isActive"`
}

// ClientFilter narrows client listings
type ClientFilter struct {
	Search   string
	IsActive *bool
}
