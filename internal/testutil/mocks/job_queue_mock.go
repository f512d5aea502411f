package mocks

import "github.com/stretchr/testify/mock"

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueImport(path string) (string, error) {
	args := m.Called(path)
	return args.String(0), args.Error(1)
}
