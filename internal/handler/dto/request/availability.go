package request

import (
	"time"

	"github.com/google/uuid"
)

type AvailabilityQuery struct {
	CategoryID string `form:"category_id" binding:"required,uuid"`
	CheckIn    string `form:"check_in" binding:"required,date"`
	CheckOut   string `form:"check_out" binding:"required,date"`
}

func (q AvailabilityQuery) Parse() (uuid.UUID, time.Time, time.Time, error) {
	categoryID, err := uuid.Parse(q.CategoryID)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, err
	}
	checkIn, checkOut, err := parseStay(q.CheckIn, q.CheckOut)
	return categoryID, checkIn, checkOut, err
}

type SearchQuery struct {
	CheckIn  string `form:"check_in" binding:"required,date"`
	CheckOut string `form:"check_out" binding:"required,date"`
	Adults   int    `form:"adults,default=1" binding:"min=1"`
	Children int    `form:"children" binding:"min=0"`
}

func (q SearchQuery) Stay() (time.Time, time.Time, error) {
	return parseStay(q.CheckIn, q.CheckOut)
}

func parseStay(checkIn, checkOut string) (time.Time, time.Time, error) {
	in, err := parseDate(checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	out, err := parseDate(checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return in, out, nil
}
