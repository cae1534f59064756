package request

import (
	"reservation-engine/internal/domain/booking"
	"reservation-engine/internal/domain/money"
	"reservation-engine/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type GuestRequest struct {
	Name  string `json:"name" binding:"required,max=200"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone" binding:"omitempty,max=50"`
}

type CreateBookingRequest struct {
	CategoryID uuid.UUID      `json:"category_id" binding:"required"`
	CheckIn    string         `json:"check_in" binding:"required,date"`
	CheckOut   string         `json:"check_out" binding:"required,date"`
	Adults     int            `json:"adults" binding:"required,min=1"`
	Children   int            `json:"children" binding:"min=0"`
	CouponCode string         `json:"coupon_code" binding:"omitempty,max=50"`
	Guest      GuestRequest   `json:"guest" binding:"required"`
	Companions []GuestRequest `json:"companions" binding:"omitempty,max=20,dive"`
	Notes      string         `json:"notes" binding:"omitempty,max=2000"`
}

func (r CreateBookingRequest) ToInput() (commands.CreateBookingInput, error) {
	checkIn, checkOut, err := parseStay(r.CheckIn, r.CheckOut)
	if err != nil {
		return commands.CreateBookingInput{}, err
	}

	var companions []booking.Guest
	if err := copier.Copy(&companions, &r.Companions); err != nil {
		return commands.CreateBookingInput{}, err
	}

	return commands.CreateBookingInput{
		CategoryID: r.CategoryID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Adults:     r.Adults,
		Children:   r.Children,
		CouponCode: r.CouponCode,
		Guest: commands.GuestInput{
			Name:  r.Guest.Name,
			Email: r.Guest.Email,
			Phone: r.Guest.Phone,
		},
		Companions: companions,
		Notes:      r.Notes,
	}, nil
}

// ManualBookingRequest is a staff booking; OverrideTotal is in cents.
type ManualBookingRequest struct {
	CreateBookingRequest
	SourceID       *uuid.UUID `json:"source_id"`
	OverrideTotal  *int64     `json:"override_total" binding:"omitempty,min=0"`
	OverrideReason string     `json:"override_reason" binding:"required_with=OverrideTotal,max=500"`
}

func (r ManualBookingRequest) ToInput() (commands.CreateBookingInput, error) {
	in, err := r.CreateBookingRequest.ToInput()
	if err != nil {
		return commands.CreateBookingInput{}, err
	}
	in.SourceID = r.SourceID
	if r.OverrideTotal != nil {
		total := money.Money(*r.OverrideTotal)
		in.OverrideTotal = &total
		in.OverrideReason = r.OverrideReason
	}
	return in, nil
}

type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"omitempty,max=500"`
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required,booking_status"`
	Reason string `json:"reason" binding:"omitempty,max=500"`
}
