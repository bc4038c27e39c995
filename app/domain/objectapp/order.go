package objectapp

import "github.com/wachdienst/dienstplan/business/domain/objectbus"

var orderByFields = map[string]string{
	"object_id": objectbus.OrderByID,
	"name":      objectbus.OrderByName,
}
