package txmanager

import (
	"context"
	"sync"
)

type localKey struct{}

// LocalManager сериализует вызовы через мьютекс процесса
// Используется с in-memory хранилищем, где нет транзакций БД
type LocalManager struct {
	mu sync.Mutex
}

// NewLocalManager создает локальный менеджер
func NewLocalManager() *LocalManager {
	return &LocalManager{}
}

func (m *LocalManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *LocalManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *LocalManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *LocalManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(localKey{}) != nil {
		return fn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(context.WithValue(ctx, localKey{}, struct{}{}))
}
