package service

import (
	"context"
	"time"

	"paymaster/events"
	"paymaster/models"

	"github.com/stretchr/testify/mock"
)

// MockContributionRepository is a mock implementation of ContributionRepository
type MockContributionRepository struct {
	mock.Mock
}

func (m *MockContributionRepository) Create(ctx context.Context, userID int64, day time.Time, value float64) (*models.Contribution, error) {
	args := m.Called(ctx, userID, day, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contribution), args.Error(1)
}

func (m *MockContributionRepository) TotalsByUser(ctx context.Context, from, to time.Time) (map[int64]float64, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]float64), args.Error(1)
}

func (m *MockContributionRepository) TotalForUser(ctx context.Context, userID int64, from, to time.Time) (float64, error) {
	args := m.Called(ctx, userID, from, to)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockContributionRepository) DeleteRange(ctx context.Context, from, to time.Time) (int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Error(1)
}

// MockSettingsRepository is a mock implementation of SettingsRepository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(ctx context.Context, key string) (*string, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*string), args.Error(1)
}

func (m *MockSettingsRepository) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// RecordingEventPublisher captures published events for assertions
type RecordingEventPublisher struct {
	Events []events.Event
}

func (p *RecordingEventPublisher) Publish(event events.Event) {
	p.Events = append(p.Events, event)
}

// MockUnitOfWork is a mock implementation of UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
	contributionRepo ContributionRepository
	settingsRepo     SettingsRepository
	eventPublisher   *RecordingEventPublisher
}

// SetRepositories wires the repositories returned by this unit of work
func (m *MockUnitOfWork) SetRepositories(contributionRepo ContributionRepository, settingsRepo SettingsRepository) {
	m.contributionRepo = contributionRepo
	m.settingsRepo = settingsRepo
	m.eventPublisher = &RecordingEventPublisher{}
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) ContributionRepository() ContributionRepository {
	return m.contributionRepo
}

func (m *MockUnitOfWork) SettingsRepository() SettingsRepository {
	return m.settingsRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.eventPublisher
}

// PublishedEvents returns the events published through this unit of work
func (m *MockUnitOfWork) PublishedEvents() []events.Event {
	return m.eventPublisher.Events
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}

// MockRoleSource is a mock implementation of RoleSource
type MockRoleSource struct {
	mock.Mock
}

func (m *MockRoleSource) RoleLabels(ctx context.Context, userID int64) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockReportSink is a mock implementation of ReportSink
type MockReportSink struct {
	mock.Mock
	Delivered []*models.PayoutReport
}

func (m *MockReportSink) Deliver(ctx context.Context, report *models.PayoutReport) error {
	m.Delivered = append(m.Delivered, report)
	args := m.Called(ctx, report)
	return args.Error(0)
}
