package service

import (
	"context"
	"testing"

	"mosaicbot/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Run(ctx context.Context, uploads []domain.Upload,
	progress domain.ProgressFunc) ([]domain.ProcessedResult, error) {
	args := m.Called(ctx, uploads, progress)
	res, _ := args.Get(0).([]domain.ProcessedResult)
	return res, args.Error(1)
}

func TestNewBatchDefaultLimit(t *testing.T) {
	assert.Equal(t, domain.DefaultMaxImages, NewBatch(&MockRunner{}, 0).MaxImages())
	assert.Equal(t, 10, NewBatch(&MockRunner{}, 10).MaxImages())
}

func TestBatchProcess(t *testing.T) {
	tests := []struct {
		name      string
		count     int
		limit     int
		wantRun   bool
		wantErr   error
		wantCount int
	}{
		{name: "empty batch", count: 0, limit: 500, wantRun: true, wantCount: 0},
		{name: "at limit", count: 500, limit: 500, wantRun: true, wantCount: 500},
		{name: "over default limit", count: 501, limit: 0, wantRun: false, wantErr: domain.ErrBatchTooLarge},
		{name: "over custom limit", count: 3, limit: 2, wantRun: false, wantErr: domain.ErrBatchTooLarge},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mr := new(MockRunner)
			in := make([]domain.Upload, tc.count)
			out := make([]domain.ProcessedResult, tc.count)

			if tc.wantRun {
				mr.On("Run", mock.Anything, in, mock.Anything).Return(out, nil).Once()
			}

			results, err := NewBatch(mr, tc.limit).Process(t.Context(), in, nil)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Empty(t, results)
				mr.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				assert.Len(t, results, tc.wantCount)
			}
			mr.AssertExpectations(t)
		})
	}
}

func TestBatchCheck(t *testing.T) {
	b := NewBatch(&MockRunner{}, 3)

	require.NoError(t, b.Check(0))
	require.NoError(t, b.Check(3))
	require.ErrorIs(t, b.Check(4), domain.ErrBatchTooLarge)
}
