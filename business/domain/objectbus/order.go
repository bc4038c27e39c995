package objectbus

import "github.com/wachdienst/dienstplan/business/sdk/order"

var DefaultOrderBy = order.NewBy(OrderByName, order.ASC)

const (
	OrderByID   = "object_id"
	OrderByName = "name"
)
