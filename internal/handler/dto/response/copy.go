package response

import (
	"time"

	"github.com/jinzhu/copier"
)

// Calendar dates leave the API as YYYY-MM-DD; instants keep their RFC 3339 form.
var dateConverter = copier.TypeConverter{
	SrcType: time.Time{},
	DstType: copier.String,
	Fn: func(src any) (any, error) {
		return src.(time.Time).Format(time.DateOnly), nil
	},
}

func copyView(dst, src any) error {
	return copier.CopyWithOption(dst, src, copier.Option{
		Converters: []copier.TypeConverter{dateConverter},
	})
}
