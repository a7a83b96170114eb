package schedule

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kamalesh73/smart--study-scheduler/internal/metrics"
	"github.com/kamalesh73/smart--study-scheduler/internal/models"
	"github.com/kamalesh73/smart--study-scheduler/internal/rabbitmq"
)

type GeneratorMock struct{ mock.Mock }

func (m *GeneratorMock) Generate(ctx context.Context, prefs models.Preferences) ([]models.ScheduleEntry, error) {
	args := m.Called(ctx, prefs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ScheduleEntry), args.Error(1)
}

type RepoMock struct{ mock.Mock }

func (m *RepoMock) ReplaceSchedule(ctx context.Context, userUID string, entries []models.ScheduleEntry, dailyHours float64) error {
	return m.Called(ctx, userUID, entries, dailyHours).Error(0)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Invalidate(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(ctx context.Context, routingKey string, message any) error {
	return m.Called(ctx, routingKey, message).Error(0)
}

type MetricsMock struct{ mock.Mock }

func (m *MetricsMock) ObserveGeneration(result string, elapsed time.Duration) {
	m.Called(result, elapsed)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mocks struct {
	gen     *GeneratorMock
	repo    *RepoMock
	cache   *CacheMock
	pub     *PublisherMock
	metrics *MetricsMock
}

func newService() (*Service, mocks) {
	m := mocks{
		gen:     new(GeneratorMock),
		repo:    new(RepoMock),
		cache:   new(CacheMock),
		pub:     new(PublisherMock),
		metrics: new(MetricsMock),
	}
	return New(newNoopLogger(), m.gen, m.repo, m.cache, m.pub, m.metrics), m
}

const userUID = "uid-1"

var (
	prefs = models.Preferences{
		Goal:      "pass exam",
		Subjects:  "Math,Physics",
		Deadline:  7,
		DailyTime: 2,
	}
	entries = []models.ScheduleEntry{
		{DayOfWeek: "Monday", StartTime: "09:00", EndTime: "11:00", Subject: "Math"},
	}
)

func TestService_Generate(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(m mocks)
		wantErr    error
		wantResult string
	}{
		{
			name: "success",
			setup: func(m mocks) {
				m.gen.On("Generate", mock.Anything, prefs).Return(entries, nil).Once()
				m.repo.On("ReplaceSchedule", mock.Anything, userUID, entries, 2.0).Return(nil).Once()
				m.cache.On("Invalidate", mock.Anything, "dashboard:uid-1").Return(nil).Once()
				m.pub.On("Publish", mock.Anything, rabbitmq.RoutingKeyGenerated, mock.MatchedBy(func(e models.ScheduleGenerated) bool {
					return e.UserUID == userUID && e.EventID != "" && e.DailyHours == 2 && len(e.Entries) == 1
				})).Return(nil).Once()
			},
			wantResult: metrics.ResultOK,
		},
		{
			name: "generation failure skips persistence",
			setup: func(m mocks) {
				m.gen.On("Generate", mock.Anything, prefs).Return(nil, models.ErrGenerationParse).Once()
			},
			wantErr:    models.ErrGenerationParse,
			wantResult: metrics.ResultGenerationFailed,
		},
		{
			name: "service failure",
			setup: func(m mocks) {
				m.gen.On("Generate", mock.Anything, prefs).Return(nil, models.ErrGenerationService).Once()
			},
			wantErr:    models.ErrGenerationService,
			wantResult: metrics.ResultGenerationFailed,
		},
		{
			name: "persistence failure keeps cache and publishes nothing",
			setup: func(m mocks) {
				m.gen.On("Generate", mock.Anything, prefs).Return(entries, nil).Once()
				m.repo.On("ReplaceSchedule", mock.Anything, userUID, entries, 2.0).Return(models.ErrPersistence).Once()
			},
			wantErr:    models.ErrPersistence,
			wantResult: metrics.ResultPersistenceFailed,
		},
		{
			name: "cache and publish failures do not fail the request",
			setup: func(m mocks) {
				m.gen.On("Generate", mock.Anything, prefs).Return(entries, nil).Once()
				m.repo.On("ReplaceSchedule", mock.Anything, userUID, entries, 2.0).Return(nil).Once()
				m.cache.On("Invalidate", mock.Anything, "dashboard:uid-1").Return(errors.New("redis down")).Once()
				m.pub.On("Publish", mock.Anything, rabbitmq.RoutingKeyGenerated, mock.Anything).Return(errors.New("amqp down")).Once()
			},
			wantResult: metrics.ResultOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService()
			tt.setup(m)
			m.metrics.On("ObserveGeneration", tt.wantResult, mock.Anything).Return().Once()

			err := svc.Generate(context.Background(), userUID, prefs)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			m.gen.AssertExpectations(t)
			m.repo.AssertExpectations(t)
			m.cache.AssertExpectations(t)
			m.pub.AssertExpectations(t)
			m.metrics.AssertExpectations(t)
		})
	}
}

func TestService_Generate_IgnoresClientCancellation(t *testing.T) {
	svc, m := newService()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	notCancelled := mock.MatchedBy(func(c context.Context) bool { return c.Err() == nil })
	m.gen.On("Generate", notCancelled, prefs).Return(entries, nil).Once()
	m.repo.On("ReplaceSchedule", notCancelled, userUID, entries, 2.0).Return(nil).Once()
	m.cache.On("Invalidate", mock.Anything, mock.Anything).Return(nil).Once()
	m.pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	m.metrics.On("ObserveGeneration", metrics.ResultOK, mock.Anything).Return().Once()

	require.NoError(t, svc.Generate(ctx, userUID, prefs))
	m.repo.AssertExpectations(t)
}
