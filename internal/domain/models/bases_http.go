package models

// Requests for detection HTTP endpoints. Defined in domain for consistency and reuse.

type BasesRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required"`
	Years  int    `query:"years" json:"years" default:"5" validate:"gte=1,lte=10"`
}

type TrendRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required"`
	Date   string `query:"date" json:"date"`
	Years  int    `query:"years" json:"years" default:"5" validate:"gte=1,lte=10"`
}
