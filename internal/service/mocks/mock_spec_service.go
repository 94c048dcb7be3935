package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"specshare/internal/model"
	"specshare/internal/service"
)

type MockSpecService struct {
	mock.Mock
}

func (m *MockSpecService) Create(ctx context.Context, in service.CreateInput) (*model.Spec, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Spec), args.Error(1)
}

func (m *MockSpecService) Content(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockSpecService) Get(ctx context.Context, id string) (*model.Spec, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Spec), args.Error(1)
}
