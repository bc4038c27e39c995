// Package templatedb contains shift template related CRUD functionality.
package templatedb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/wachdienst/dienstplan/business/domain/templatebus"
	"github.com/wachdienst/dienstplan/business/sdk/sqldb"
	"github.com/wachdienst/dienstplan/foundation/logger"
)

// Store manages the set of APIs for shift template database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (templatebus.Storer, error) {
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

// Create inserts a new shift template into the database.
func (s *Store) Create(ctx context.Context, tpl templatebus.ShiftTemplate) error {
	const q = `
	INSERT INTO "public"."shift_templates"
		(template_id, tenant_id, name, start_time, end_time, created_at)
	VALUES
		(:template_id, :tenant_id, :name, :start_time, :end_time, :created_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBShiftTemplate(tpl)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Delete removes a shift template from the database. Zero rows affected
// is not an error.
func (s *Store) Delete(ctx context.Context, tenantID uuid.UUID, templateID uuid.UUID) error {
	data := struct {
		TenantID   string `db:"tenant_id"`
		TemplateID string `db:"template_id"`
	}{
		TenantID:   tenantID.String(),
		TemplateID: templateID.String(),
	}

	const q = `
	DELETE FROM
		"public"."shift_templates"
	WHERE
		tenant_id = :tenant_id AND template_id = :template_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, data); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Query retrieves the tenant's shift templates ordered by name.
func (s *Store) Query(ctx context.Context, tenantID uuid.UUID) ([]templatebus.ShiftTemplate, error) {
	data := struct {
		TenantID string `db:"tenant_id"`
	}{
		TenantID: tenantID.String(),
	}

	const q = `
	SELECT
		template_id, tenant_id, name, start_time, end_time, created_at
	FROM
		"public"."shift_templates"
	WHERE
		tenant_id = :tenant_id
	ORDER BY
		name ASC`

	var dbTpls []shiftTemplateDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbTpls); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusShiftTemplates(dbTpls)
}

// QueryByID gets the specified shift template from the database.
func (s *Store) QueryByID(ctx context.Context, tenantID uuid.UUID, templateID uuid.UUID) (templatebus.ShiftTemplate, error) {
	data := struct {
		TenantID   string `db:"tenant_id"`
		TemplateID string `db:"template_id"`
	}{
		TenantID:   tenantID.String(),
		TemplateID: templateID.String(),
	}

	const q = `
	SELECT
		template_id, tenant_id, name, start_time, end_time, created_at
	FROM
		"public"."shift_templates"
	WHERE
		tenant_id = :tenant_id AND template_id = :template_id`

	var dbTpl shiftTemplateDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbTpl); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return templatebus.ShiftTemplate{}, fmt.Errorf("db: %w", templatebus.ErrNotFound)
		}
		return templatebus.ShiftTemplate{}, fmt.Errorf("db: %w", err)
	}

	return toBusShiftTemplate(dbTpl)
}
