package employeeapp

import "github.com/wachdienst/dienstplan/business/domain/employeebus"

var orderByFields = map[string]string{
	"employee_id": employeebus.OrderByID,
	"name":        employeebus.OrderByName,
	"role":        employeebus.OrderByRole,
}
