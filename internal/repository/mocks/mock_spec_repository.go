package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"specshare/internal/model"
)

type MockSpecRepository struct {
	mock.Mock
}

func (m *MockSpecRepository) Create(ctx context.Context, spec *model.Spec) (*model.Spec, error) {
	args := m.Called(ctx, spec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if f, ok := args.Get(0).(func(context.Context, *model.Spec) *model.Spec); ok {
		return f(ctx, spec), args.Error(1)
	}
	return args.Get(0).(*model.Spec), args.Error(1)
}

func (m *MockSpecRepository) FindContent(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockSpecRepository) FindByID(ctx context.Context, id string) (*model.Spec, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Spec), args.Error(1)
}
