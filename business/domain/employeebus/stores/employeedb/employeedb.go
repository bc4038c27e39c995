// Package employeedb contains employee related CRUD functionality.
package employeedb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/wachdienst/dienstplan/business/domain/employeebus"
	"github.com/wachdienst/dienstplan/business/sdk/order"
	"github.com/wachdienst/dienstplan/business/sdk/page"
	"github.com/wachdienst/dienstplan/business/sdk/sqldb"
	"github.com/wachdienst/dienstplan/foundation/logger"
)

// Store manages the set of APIs for employee database access.
type Store struct {
	log *logger.Logger
	db  sqlx.ExtContext
}

// NewStore constructs the api for data access.
func NewStore(log *logger.Logger, db *sqlx.DB) *Store {
	return &Store{
		log: log,
		db:  db,
	}
}

// NewWithTx constructs a new Store value replacing the sqlx DB
// value with a sqlx DB value that is currently inside a transaction.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (employeebus.Storer, error) {
	ec, err := sqldb.GetExtContext(tx)
	if err != nil {
		return nil, err
	}

	store := Store{
		log: s.log,
		db:  ec,
	}

	return &store, nil
}

// Create inserts a new employee into the database.
func (s *Store) Create(ctx context.Context, emp employeebus.Employee) error {
	const q = `
	INSERT INTO "public"."employees"
		(employee_id, tenant_id, name, role, email, phone, address, created_at, updated_at)
	VALUES
		(:employee_id, :tenant_id, :name, :role, :email, :phone, :address, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBEmployee(emp)); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) {
			return fmt.Errorf("namedexeccontext: %w", employeebus.ErrUniqueEmail)
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces an employee document in the database.
func (s *Store) Update(ctx context.Context, emp employeebus.Employee) error {
	const q = `
	UPDATE
		"public"."employees"
	SET
		name = :name,
		role = :role,
		email = :email,
		phone = :phone,
		address = :address,
		updated_at = :updated_at
	WHERE
		employee_id = :employee_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBEmployee(emp)); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) {
			return employeebus.ErrUniqueEmail
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Query retrieves a list of existing employees from the database.
func (s *Store) Query(ctx context.Context, filter employeebus.QueryFilter, orderBy order.By, page page.Page) ([]employeebus.Employee, error) {
	data := map[string]any{
		"offset":        (page.Number() - 1) * page.RowsPerPage(),
		"rows_per_page": page.RowsPerPage(),
	}

	const q = `
	SELECT
		employee_id, tenant_id, name, role, email, phone, address, created_at, updated_at
	FROM
		"public"."employees"`

	buf := bytes.NewBufferString(q)
	applyFilter(filter, data, buf)

	orderByClause, err := orderByClause(orderBy)
	if err != nil {
		return nil, err
	}

	buf.WriteString(orderByClause)
	buf.WriteString(" OFFSET :offset ROWS FETCH NEXT :rows_per_page ROWS ONLY")

	var dbEmps []employeeDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbEmps); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusEmployees(dbEmps)
}

// Count returns the total number of employees in the DB.
func (s *Store) Count(ctx context.Context, filter employeebus.QueryFilter) (int, error) {
	data := map[string]any{}

	const q = `
	SELECT
		count(1)
	FROM
		"public"."employees"`

	buf := bytes.NewBufferString(q)
	applyFilter(filter, data, buf)

	var count struct {
		Count int `db:"count"`
	}
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, buf.String(), data, &count); err != nil {
		return 0, fmt.Errorf("db: %w", err)
	}

	return count.Count, nil
}

// QueryByID gets the specified employee from the database.
func (s *Store) QueryByID(ctx context.Context, employeeID uuid.UUID) (employeebus.Employee, error) {
	data := struct {
		ID string `db:"employee_id"`
	}{
		ID: employeeID.String(),
	}

	const q = `
	SELECT
		employee_id, tenant_id, name, role, email, phone, address, created_at, updated_at
	FROM
		"public"."employees"
	WHERE
		employee_id = :employee_id`

	var dbEmp employeeDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbEmp); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return employeebus.Employee{}, fmt.Errorf("db: %w", employeebus.ErrNotFound)
		}
		return employeebus.Employee{}, fmt.Errorf("db: %w", err)
	}

	return toBusEmployee(dbEmp)
}
