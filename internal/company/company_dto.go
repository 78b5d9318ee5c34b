package company

type CreateCompanyRequest struct {
	Name              string  `json:"name" binding:"required,max=150"`
	Title             *string `json:"title"`
	MersisNo          *string `json:"mersis_no"`
	TaxNumber         *string `json:"tax_number"`
	Logo              *string `json:"logo"`
	TelephoneNumber   *string `json:"telephone_number"`
	Address           *string `json:"address"`
	Email             *string `json:"email" binding:"omitempty,email"`
	FoundationYear    *string `json:"foundation_year"`
	ContractStartDate *string `json:"contract_start_date"`
	ContractEndDate   *string `json:"contract_end_date"`
	IsActive          *bool   `json:"is_active"`
}

type UpdateCompanyRequest struct {
	Name              string  `json:"name" binding:"omitempty,max=150"`
	Title             *string `json:"title"`
	MersisNo          *string `json:"mersis_no"`
	TaxNumber         *string `json:"tax_number"`
	Logo              *string `json:"logo"`
	TelephoneNumber   *string `json:"telephone_number"`
	Address           *string `json:"address"`
	Email             *string `json:"email" binding:"omitempty,email"`
	FoundationYear    *string `json:"foundation_year"`
	ContractStartDate *string `json:"contract_start_date"`
	ContractEndDate   *string `json:"contract_end_date"`
	IsActive          *bool   `json:"is_active"`
}

type CompanyResponse struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Title             *string `json:"title,omitempty"`
	MersisNo          *string `json:"mersis_no,omitempty"`
	TaxNumber         *string `json:"tax_number,omitempty"`
	Logo              *string `json:"logo,omitempty"`
	TelephoneNumber   *string `json:"telephone_number,omitempty"`
	Address           *string `json:"address,omitempty"`
	Email             *string `json:"email,omitempty"`
	FoundationYear    *string `json:"foundation_year,omitempty"`
	ContractStartDate *string `json:"contract_start_date,omitempty"`
	ContractEndDate   *string `json:"contract_end_date,omitempty"`
	IsActive          bool    `json:"is_active"`
}
