package handlers

import (
	"context"

	"github.com/asakaida/edurecords/internal/entities"
)

// Mock PersonRepository
type mockPersonRepository struct {
	saveFunc      func(ctx context.Context, person entities.Person) error
	findAllFunc   func(ctx context.Context) ([]entities.Person, error)
	updateAgeFunc func(ctx context.Context, name string, newAge int) (int64, error)
	deleteFunc    func(ctx context.Context, name string) (int64, error)
}

func (m *mockPersonRepository) Save(ctx context.Context, person entities.Person) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, person)
	}
	return nil
}

func (m *mockPersonRepository) FindAll(ctx context.Context) ([]entities.Person, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return []entities.Person{}, nil
}

func (m *mockPersonRepository) UpdateAge(ctx context.Context, name string, newAge int) (int64, error) {
	if m.updateAgeFunc != nil {
		return m.updateAgeFunc(ctx, name, newAge)
	}
	return 0, nil
}

func (m *mockPersonRepository) Delete(ctx context.Context, name string) (int64, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, name)
	}
	return 0, nil
}

// Mock AffectedRecorder
type mockRecorder struct {
	calls map[string][]int64
}

func (m *mockRecorder) RecordAffected(operation string, affected int64) {
	if m.calls == nil {
		m.calls = make(map[string][]int64)
	}
	m.calls[operation] = append(m.calls[operation], affected)
}
