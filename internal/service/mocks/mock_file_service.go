package mocks

import (
	"context"

	"filedrop/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockFileService struct {
	mock.Mock
}

func (m *MockFileService) Issue(ctx context.Context, payload []byte, mime, filename string) (*service.IssueResult, error) {
	args := m.Called(ctx, payload, mime, filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.IssueResult), args.Error(1)
}

func (m *MockFileService) Redeem(ctx context.Context, tok string) (string, error) {
	args := m.Called(ctx, tok)
	return args.String(0), args.Error(1)
}

func (m *MockFileService) Metadata(ctx context.Context, tok string) (*service.Metadata, error) {
	args := m.Called(ctx, tok)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Metadata), args.Error(1)
}
