package mocks

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

// TxManager runs the callback with a nil transaction. Return(beginErr,
// commitErr) controls the two failure points around the callback.
type TxManager struct {
	mock.Mock
}

func (m *TxManager) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	if err := fn(nil); err != nil {
		return err
	}
	return args.Error(1)
}
