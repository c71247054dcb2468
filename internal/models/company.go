package models

import "time"

const DefaultPaymentTerms = "Payment can only be done in cheque/DD, NEFT, RTGS"

type CompanyAddress struct {
	ShopNo   string `json:"shopNo"`
	Floor    string `json:"floor"`
	Building string `json:"building"`
	Area     string `json:"area"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
}

type CompanyContact struct {
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Website string `json:"website"`
}

type BankDetails struct {
	AccountHolderName string `json:"accountHolderName,omitempty"`
	BankName          string `json:"bankName"`
	AccountNumber     string `json:"accountNumber"`
	IFSCCode          string `json:"ifscCode"`
	Branch            string `json:"branch"`
}

// Company is the single settings document used as invoice letterhead
type Company struct {
	ID           int64          `json:"id"`
	CompanyName  string         `json:"companyName"`
	Address      CompanyAddress `json:"address"`
	Contact      CompanyContact `json:"contact"`
	GSTIN        string         `json:"gstin"`
	CINNo        string         `json:"cinNo"`
	BankDetails  BankDetails    `json:"bankDetails"`
	PaymentTerms string         `json:"paymentTerms"`
	Logo         string         `json:"logo"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// CompanyRequest updates the settings document
type CompanyRequest struct {
	CompanyName  string         `json:"companyName" validate:"required"`
	Address      CompanyAddress `json:"address"`
	Contact      CompanyContact `json:"contact"`
	GSTIN        string         `json:"gstin"`
	CINNo        string         `json:"cinNo"`
	BankDetails  BankDetails    `json:"bankDetails"`
	PaymentTerms string         `json:"paymentTerms"`
	Logo         string         `json:"logo"`
}
