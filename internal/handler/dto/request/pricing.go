package request

import (
	"reservation-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

type QuoteRequest struct {
	CategoryID uuid.UUID `json:"category_id" binding:"required"`
	CheckIn    string    `json:"check_in" binding:"required,date"`
	CheckOut   string    `json:"check_out" binding:"required,date"`
	Adults     int       `json:"adults" binding:"required,min=1"`
	Children   int       `json:"children" binding:"min=0"`
	CouponCode string    `json:"coupon_code" binding:"omitempty,max=50"`
}

func (r QuoteRequest) ToInput() (queries.QuoteInput, error) {
	checkIn, checkOut, err := parseStay(r.CheckIn, r.CheckOut)
	if err != nil {
		return queries.QuoteInput{}, err
	}
	return queries.QuoteInput{
		CategoryID: r.CategoryID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Adults:     r.Adults,
		Children:   r.Children,
		CouponCode: r.CouponCode,
	}, nil
}
