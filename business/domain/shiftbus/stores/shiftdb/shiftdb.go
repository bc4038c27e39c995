// Package shiftdb contains shift related CRUD functionality.
package shiftdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/wachdienst/dienstplan/business/domain/shiftbus"
	"github.com/wachdienst/dienstplan/business/sdk/sqldb"
	"github.com/wachdienst/dienstplan/business/types/civildate"
	"github.com/wachdienst/dienstplan/foundation/logger"
)

// Store manages the set of APIs for shift database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (shiftbus.Storer, error) {
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

// Create inserts a new shift into the database. The unique index on
// (tenant_id, employee_id, date) surfaces as ErrDBDuplicatedEntry.
func (s *Store) Create(ctx context.Context, shift shiftbus.Shift) error {
	const q = `
	INSERT INTO "public"."shifts"
		(shift_id, tenant_id, employee_id, date, start_time, end_time, object_id,
		 snap_location, snap_address, snap_client, snap_uniform, snap_notes, created_at, updated_at)
	VALUES
		(:shift_id, :tenant_id, :employee_id, :date, :start_time, :end_time, :object_id,
		 :snap_location, :snap_address, :snap_client, :snap_uniform, :snap_notes, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBShift(shift)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces a shift in the database.
func (s *Store) Update(ctx context.Context, shift shiftbus.Shift) error {
	const q = `
	UPDATE
		"public"."shifts"
	SET
		start_time = :start_time,
		end_time = :end_time,
		object_id = :object_id,
		snap_location = :snap_location,
		snap_address = :snap_address,
		snap_client = :snap_client,
		snap_uniform = :snap_uniform,
		snap_notes = :snap_notes,
		updated_at = :updated_at
	WHERE
		tenant_id = :tenant_id AND shift_id = :shift_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBShift(shift)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Delete removes a shift from the database. Zero rows affected is not an
// error.
func (s *Store) Delete(ctx context.Context, tenantID uuid.UUID, shiftID uuid.UUID) error {
	data := struct {
		TenantID string `db:"tenant_id"`
		ShiftID  string `db:"shift_id"`
	}{
		TenantID: tenantID.String(),
		ShiftID:  shiftID.String(),
	}

	const q = `
	DELETE FROM
		"public"."shifts"
	WHERE
		tenant_id = :tenant_id AND shift_id = :shift_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, data); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Query retrieves the shifts in the inclusive civil date range.
func (s *Store) Query(ctx context.Context, tenantID uuid.UUID, from civildate.Date, to civildate.Date) ([]shiftbus.Shift, error) {
	data := struct {
		TenantID string `db:"tenant_id"`
		From     string `db:"from_date"`
		To       string `db:"to_date"`
	}{
		TenantID: tenantID.String(),
		From:     from.String(),
		To:       to.String(),
	}

	const q = `
	SELECT
		shift_id, tenant_id, employee_id, date, start_time, end_time, object_id,
		snap_location, snap_address, snap_client, snap_uniform, snap_notes, created_at, updated_at
	FROM
		"public"."shifts"
	WHERE
		tenant_id = :tenant_id AND date >= :from_date AND date <= :to_date
	ORDER BY
		date ASC, employee_id ASC`

	var dbShifts []shiftDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbShifts); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusShifts(dbShifts)
}

// QueryByID gets the specified shift from the database.
func (s *Store) QueryByID(ctx context.Context, tenantID uuid.UUID, shiftID uuid.UUID) (shiftbus.Shift, error) {
	data := struct {
		TenantID string `db:"tenant_id"`
		ShiftID  string `db:"shift_id"`
	}{
		TenantID: tenantID.String(),
		ShiftID:  shiftID.String(),
	}

	const q = `
	SELECT
		shift_id, tenant_id, employee_id, date, start_time, end_time, object_id,
		snap_location, snap_address, snap_client, snap_uniform, snap_notes, created_at, updated_at
	FROM
		"public"."shifts"
	WHERE
		tenant_id = :tenant_id AND shift_id = :shift_id`

	var dbShift shiftDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbShift); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return shiftbus.Shift{}, fmt.Errorf("db: %w", shiftbus.ErrNotFound)
		}
		return shiftbus.Shift{}, fmt.Errorf("db: %w", err)
	}

	return toBusShift(dbShift)
}

// QueryByCell returns every shift written against the cell. The business
// layer resolves duplicates left over from before the unique index.
func (s *Store) QueryByCell(ctx context.Context, tenantID uuid.UUID, employeeID uuid.UUID, date civildate.Date) ([]shiftbus.Shift, error) {
	data := struct {
		TenantID   string `db:"tenant_id"`
		EmployeeID string `db:"employee_id"`
		Date       string `db:"date"`
	}{
		TenantID:   tenantID.String(),
		EmployeeID: employeeID.String(),
		Date:       date.String(),
	}

	const q = `
	SELECT
		shift_id, tenant_id, employee_id, date, start_time, end_time, object_id,
		snap_location, snap_address, snap_client, snap_uniform, snap_notes, created_at, updated_at
	FROM
		"public"."shifts"
	WHERE
		tenant_id = :tenant_id AND employee_id = :employee_id AND date = :date
	ORDER BY
		created_at DESC, shift_id DESC`

	var dbShifts []shiftDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbShifts); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusShifts(dbShifts)
}
