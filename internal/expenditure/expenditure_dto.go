package expenditure

import "github.com/shopspring/decimal"

type CreateExpenditureRequest struct {
	ExpenditureTypeID string          `json:"expenditure_type_id" binding:"required,uuid"`
	Title             string          `json:"title" binding:"required,max=200"`
	Currency          *string         `json:"currency" binding:"omitempty,oneof=USD EUR TRY IDR"`
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	ImageURL          *string         `json:"image_url" binding:"omitempty,url"`
}

type DecideExpenditureRequest struct {
	DecisionNote *string `json:"decision_note"`
}

type ExpenditureResponse struct {
	ID                  string          `json:"id"`
	EmployeeID          string          `json:"employee_id"`
	ExpenditureTypeID   string          `json:"expenditure_type_id"`
	ExpenditureTypeName string          `json:"expenditure_type_name,omitempty"`
	Title               string          `json:"title"`
	Currency            *string         `json:"currency,omitempty"`
	Amount              decimal.Decimal `json:"amount"`
	ImageURL            *string         `json:"image_url,omitempty"`
	Status              string          `json:"status"`
	RequestDate         string          `json:"request_date"`
	ApprovalDate        *string         `json:"approval_date,omitempty"`
	ManagerID           *string         `json:"manager_id,omitempty"`
	DecisionNote        *string         `json:"decision_note,omitempty"`
}
