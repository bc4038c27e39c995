// Package mid provides app level middleware support.
package mid

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wachdienst/dienstplan/app/sdk/auth"
	"github.com/wachdienst/dienstplan/business/domain/permbus"
	"github.com/wachdienst/dienstplan/business/sdk/sqldb"
	"github.com/wachdienst/dienstplan/business/sdk/web"
)

func checkIsError(e web.Encoder) error {
	err, hasError := e.(error)
	if hasError {
		return err
	}

	return nil
}

// =============================================================================

type ctxKey int

const (
	actorKey ctxKey = iota + 1
	trKey
)

func setActor(ctx context.Context, actor auth.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor returns the authenticated actor from the context.
func GetActor(ctx context.Context) (auth.Actor, error) {
	v, ok := ctx.Value(actorKey).(auth.Actor)
	if !ok {
		return auth.Actor{}, errors.New("actor not found in context")
	}

	return v, nil
}

// GetTenantID returns the tenant id of the authenticated actor.
func GetTenantID(ctx context.Context) (uuid.UUID, error) {
	actor, err := GetActor(ctx)
	if err != nil {
		return uuid.Nil, errors.New("tenant id not found in context")
	}

	return actor.TenantID, nil
}

func setTran(ctx context.Context, tx sqldb.CommitRollbacker) context.Context {
	return context.WithValue(ctx, trKey, tx)
}

// GetTran retrieves the value that can manage a transaction.
func GetTran(ctx context.Context) (sqldb.CommitRollbacker, error) {
	v, ok := ctx.Value(trKey).(sqldb.CommitRollbacker)
	if !ok {
		return nil, errors.New("transaction not found in context")
	}

	return v, nil
}

// GetPermActor returns the business layer view of the authenticated
// actor for the permission resolver.
func GetPermActor(ctx context.Context) (permbus.Actor, error) {
	actor, err := GetActor(ctx)
	if err != nil {
		return permbus.Actor{}, err
	}

	return permbus.Actor{
		ID:    actor.ID,
		Owner: actor.IsProvider(),
		Role:  actor.Role,
	}, nil
}
