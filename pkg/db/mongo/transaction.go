package mongo

import (
	"context"
	stderrors "errors"
	"fmt"

	apperrors "resort/pkg/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type TransactionFunc func(ctx mongo.SessionContext) error

type TransactionManager interface {
	ExecuteTransaction(ctx context.Context, fn TransactionFunc) error
	Supported(ctx context.Context) bool
}

type mongoTransactionManager struct {
	client *mongo.Client
	probe  *mongo.Collection
}

// NewTransactionManager wires a manager around client. probe is the
// collection Supported reads inside its trial transaction; any existing
// collection works.
func NewTransactionManager(client *mongo.Client, probe *mongo.Collection) TransactionManager {
	return &mongoTransactionManager{
		client: client,
		probe:  probe,
	}
}

func (m *mongoTransactionManager) ExecuteTransaction(ctx context.Context, fn TransactionFunc) error {
	session, err := m.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (any, error) {
		return nil, fn(sessCtx)
	})

	if err != nil {
		if apperrors.IsAppError(err) {
			return err
		}
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// Supported probes whether the deployment accepts multi-document
// transactions by running a read inside one. Starting a transaction is a
// client-side state change in the driver, so the probe must reach the
// server: on a standalone mongod the first operation fails with a
// transaction-numbers error. Callers use the result to decide between the
// transactional and lock-based reservation paths at startup.
func (m *mongoTransactionManager) Supported(ctx context.Context) bool {
	session, err := m.client.StartSession()
	if err != nil {
		return false
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (any, error) {
		err := m.probe.FindOne(sessCtx, bson.D{}).Err()
		if err != nil && !stderrors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		return nil, nil
	})
	return err == nil
}
