// Package objectdb contains work object related CRUD functionality.
package objectdb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/wachdienst/dienstplan/business/domain/objectbus"
	"github.com/wachdienst/dienstplan/business/sdk/order"
	"github.com/wachdienst/dienstplan/business/sdk/page"
	"github.com/wachdienst/dienstplan/business/sdk/sqldb"
	"github.com/wachdienst/dienstplan/foundation/logger"
)

// Store manages the set of APIs for work object database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (objectbus.Storer, error) {
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

// Create inserts a new work object into the database.
func (s *Store) Create(ctx context.Context, obj objectbus.WorkObject) error {
	const q = `
	INSERT INTO "public"."work_objects"
		(object_id, tenant_id, name, address, client, uniform, notes, assigned_lead_id, created_at, updated_at)
	VALUES
		(:object_id, :tenant_id, :name, :address, :client, :uniform, :notes, :assigned_lead_id, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBWorkObject(obj)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces a work object in the database.
func (s *Store) Update(ctx context.Context, obj objectbus.WorkObject) error {
	const q = `
	UPDATE
		"public"."work_objects"
	SET
		name = :name,
		address = :address,
		client = :client,
		uniform = :uniform,
		notes = :notes,
		assigned_lead_id = :assigned_lead_id,
		updated_at = :updated_at
	WHERE
		tenant_id = :tenant_id AND object_id = :object_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBWorkObject(obj)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Delete removes a work object from the database. Removing an id that is
// already gone affects zero rows and reports no error.
func (s *Store) Delete(ctx context.Context, tenantID uuid.UUID, objectID uuid.UUID) error {
	data := struct {
		TenantID string `db:"tenant_id"`
		ObjectID string `db:"object_id"`
	}{
		TenantID: tenantID.String(),
		ObjectID: objectID.String(),
	}

	const q = `
	DELETE FROM
		"public"."work_objects"
	WHERE
		tenant_id = :tenant_id AND object_id = :object_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, data); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Query retrieves a list of existing work objects from the database.
func (s *Store) Query(ctx context.Context, filter objectbus.QueryFilter, orderBy order.By, page page.Page) ([]objectbus.WorkObject, error) {
	data := map[string]any{
		"offset":        (page.Number() - 1) * page.RowsPerPage(),
		"rows_per_page": page.RowsPerPage(),
	}

	const q = `
	SELECT
		object_id, tenant_id, name, address, client, uniform, notes, assigned_lead_id, created_at, updated_at
	FROM
		"public"."work_objects"`

	buf := bytes.NewBufferString(q)
	applyFilter(filter, data, buf)

	orderByClause, err := orderByClause(orderBy)
	if err != nil {
		return nil, err
	}

	buf.WriteString(orderByClause)
	buf.WriteString(" OFFSET :offset ROWS FETCH NEXT :rows_per_page ROWS ONLY")

	var dbObjs []workObjectDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbObjs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusWorkObjects(dbObjs)
}

// Count returns the total number of work objects in the DB.
func (s *Store) Count(ctx context.Context, filter objectbus.QueryFilter) (int, error) {
	data := map[string]any{}

	const q = `
	SELECT
		count(1)
	FROM
		"public"."work_objects"`

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

// QueryByID gets the specified work object from the database.
func (s *Store) QueryByID(ctx context.Context, tenantID uuid.UUID, objectID uuid.UUID) (objectbus.WorkObject, error) {
	data := struct {
		TenantID string `db:"tenant_id"`
		ObjectID string `db:"object_id"`
	}{
		TenantID: tenantID.String(),
		ObjectID: objectID.String(),
	}

	const q = `
	SELECT
		object_id, tenant_id, name, address, client, uniform, notes, assigned_lead_id, created_at, updated_at
	FROM
		"public"."work_objects"
	WHERE
		tenant_id = :tenant_id AND object_id = :object_id`

	var dbObj workObjectDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbObj); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return objectbus.WorkObject{}, fmt.Errorf("db: %w", objectbus.ErrNotFound)
		}
		return objectbus.WorkObject{}, fmt.Errorf("db: %w", err)
	}

	return toBusWorkObject(dbObj)
}
