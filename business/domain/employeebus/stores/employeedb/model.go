package employeedb

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/wachdienst/dienstplan/business/domain/employeebus"
	"github.com/wachdienst/dienstplan/business/types/name"
	"github.com/wachdienst/dienstplan/business/types/role"
)

type employeeDB struct {
	ID        uuid.UUID `db:"employee_id"`
	TenantID  uuid.UUID `db:"tenant_id"`
	Name      string    `db:"name"`
	Role      string    `db:"role"`
	Email     string    `db:"email"`
	Phone     string    `db:"phone"`
	Address   string    `db:"address"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func toDBEmployee(bus employeebus.Employee) employeeDB {
	return employeeDB{
		ID:        bus.ID,
		TenantID:  bus.TenantID,
		Name:      bus.Name.String(),
		Role:      bus.Role.String(),
		Email:     bus.Email.Address,
		Phone:     bus.Phone,
		Address:   bus.Address,
		CreatedAt: bus.CreatedAt.UTC(),
		UpdatedAt: bus.UpdatedAt.UTC(),
	}
}

func toBusEmployee(db employeeDB) (employeebus.Employee, error) {
	nme, err := name.Parse(db.Name)
	if err != nil {
		return employeebus.Employee{}, fmt.Errorf("parse name: %w", err)
	}

	empRole, err := role.Parse(db.Role)
	if err != nil {
		return employeebus.Employee{}, fmt.Errorf("parse role: %w", err)
	}

	bus := employeebus.Employee{
		ID:        db.ID,
		TenantID:  db.TenantID,
		Name:      nme,
		Role:      empRole,
		Email:     mail.Address{Address: db.Email},
		Phone:     db.Phone,
		Address:   db.Address,
		CreatedAt: db.CreatedAt.In(time.Local),
		UpdatedAt: db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}

func toBusEmployees(dbs []employeeDB) ([]employeebus.Employee, error) {
	bus := make([]employeebus.Employee, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusEmployee(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
