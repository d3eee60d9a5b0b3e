package repositories

import (
	"context"

	"gorm.io/gorm"
)

type txKeyType struct{}

var txKey txKeyType

// TxManager runs a function with a database transaction carried through the
// context. Repository methods pick the transaction up transparently, so a
// service can group several repository calls into one atomic unit.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type gormTxManager struct {
	db *gorm.DB
}

// NewTxManager creates a TxManager bound to the given database handle.
func NewTxManager(db *gorm.DB) TxManager {
	return &gormTxManager{db: db}
}

// Do runs fn inside a transaction. If the context already carries one, fn
// joins it instead of opening a nested transaction.
func (m *gormTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok && tx != nil {
		return fn(ctx)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey, tx))
	})
}

// dbFromContext returns the transaction carried by ctx, or the base handle.
func dbFromContext(ctx context.Context, base *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return base.WithContext(ctx)
}
