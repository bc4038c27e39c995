// Package employeecache contains employee related CRUD functionality with
// caching. Employees are read on every roster render, so a small
// write-through cache sits in front of the database store.
package employeecache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/viccon/sturdyc"
	"github.com/wachdienst/dienstplan/business/domain/employeebus"
	"github.com/wachdienst/dienstplan/business/sdk/order"
	"github.com/wachdienst/dienstplan/business/sdk/page"
	"github.com/wachdienst/dienstplan/business/sdk/sqldb"
	"github.com/wachdienst/dienstplan/foundation/logger"
)

// Store manages the set of APIs for employee data and caching.
type Store struct {
	log    *logger.Logger
	storer employeebus.Storer
	cache  *sturdyc.Client[employeebus.Employee]
}

// NewStore constructs the api for data and caching access.
func NewStore(log *logger.Logger, storer employeebus.Storer, ttl time.Duration) *Store {
	const capacity = 10000
	const numShards = 10
	const evictionPercentage = 10

	cache := sturdyc.New[employeebus.Employee](capacity, numShards, ttl, evictionPercentage)

	return &Store{
		log:    log,
		storer: storer,
		cache:  cache,
	}
}

// NewWithTx constructs a new Store value replacing the storer with one
// that is currently inside a transaction. The cache is bypassed for the
// life of the transaction.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (employeebus.Storer, error) {
	return s.storer.NewWithTx(tx)
}

// Create inserts a new employee into the database.
func (s *Store) Create(ctx context.Context, emp employeebus.Employee) error {
	if err := s.storer.Create(ctx, emp); err != nil {
		return err
	}

	s.writeCache(emp)

	return nil
}

// Update replaces an employee document in the database.
func (s *Store) Update(ctx context.Context, emp employeebus.Employee) error {
	if err := s.storer.Update(ctx, emp); err != nil {
		return err
	}

	s.writeCache(emp)

	return nil
}

// Query retrieves a list of existing employees from the database.
func (s *Store) Query(ctx context.Context, filter employeebus.QueryFilter, orderBy order.By, page page.Page) ([]employeebus.Employee, error) {
	return s.storer.Query(ctx, filter, orderBy, page)
}

// Count returns the total number of employees in the DB.
func (s *Store) Count(ctx context.Context, filter employeebus.QueryFilter) (int, error) {
	return s.storer.Count(ctx, filter)
}

// QueryByID gets the specified employee from the cache falling back to
// the database.
func (s *Store) QueryByID(ctx context.Context, employeeID uuid.UUID) (employeebus.Employee, error) {
	cached, ok := s.readCache(employeeID.String())
	if ok {
		return cached, nil
	}

	emp, err := s.storer.QueryByID(ctx, employeeID)
	if err != nil {
		return employeebus.Employee{}, err
	}

	s.writeCache(emp)

	return emp, nil
}

// readCache performs a safe search in the cache for the specified key.
func (s *Store) readCache(key string) (employeebus.Employee, bool) {
	emp, exists := s.cache.Get(key)
	if !exists {
		return employeebus.Employee{}, false
	}

	return emp, true
}

// writeCache performs a safe write to the cache for the specified employee.
func (s *Store) writeCache(emp employeebus.Employee) {
	s.cache.Set(emp.ID.String(), emp)
}
