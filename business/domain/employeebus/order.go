package employeebus

import "github.com/wachdienst/dienstplan/business/sdk/order"

var DefaultOrderBy = order.NewBy(OrderByName, order.ASC)

const (
	OrderByID   = "employee_id"
	OrderByName = "name"
	OrderByRole = "role"
)
