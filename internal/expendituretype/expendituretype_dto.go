package expendituretype

import "github.com/shopspring/decimal"

type CreateExpenditureTypeRequest struct {
	Name     string           `json:"name" binding:"required"`
	MinPrice *decimal.Decimal `json:"min_price"`
	MaxPrice *decimal.Decimal `json:"max_price"`
}

type UpdateExpenditureTypeRequest struct {
	Name     string           `json:"name"`
	MinPrice *decimal.Decimal `json:"min_price"`
	MaxPrice *decimal.Decimal `json:"max_price"`
}

type ExpenditureTypeResponse struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	MinPrice *decimal.Decimal `json:"min_price,omitempty"`
	MaxPrice *decimal.Decimal `json:"max_price,omitempty"`
}
