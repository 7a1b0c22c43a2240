package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nbfilms/studio-api/internal/domain/booking"
	"github.com/nbfilms/studio-api/internal/domain/catalog"
	"github.com/nbfilms/studio-api/internal/platform/apperr"
	"github.com/nbfilms/studio-api/internal/platform/kafka"
)

var testNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) Save(ctx context.Context, b *booking.Booking) error {
	return m.Called(ctx, b).Error(0)
}
func (m *mockBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}
func (m *mockBookingRepo) ListAll(ctx context.Context) ([]*booking.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*booking.Booking), args.Error(1)
}
func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status booking.Status) error {
	return m.Called(ctx, id, status).Error(0)
}
func (m *mockBookingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockBookingRepo) BookedDates(ctx context.Context) ([]time.Time, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}
func (m *mockBookingRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}
func (m *mockBookingRepo) CountByMonth(ctx context.Context, year int) (map[time.Month]int64, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[time.Month]int64), args.Error(1)
}

type mockGuard struct{ mock.Mock }

func (m *mockGuard) Reserve(ctx context.Context, date time.Time) (bool, error) {
	args := m.Called(ctx, date)
	return args.Bool(0), args.Error(1)
}
func (m *mockGuard) Release(ctx context.Context, date time.Time) error {
	return m.Called(ctx, date).Error(0)
}

type mockServiceRepo struct{ mock.Mock }

func (m *mockServiceRepo) Save(ctx context.Context, s *catalog.ServicePackage) error {
	return m.Called(ctx, s).Error(0)
}
func (m *mockServiceRepo) Update(ctx context.Context, s *catalog.ServicePackage) error {
	return m.Called(ctx, s).Error(0)
}
func (m *mockServiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockServiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ServicePackage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ServicePackage), args.Error(1)
}
func (m *mockServiceRepo) ListAll(ctx context.Context) ([]*catalog.ServicePackage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.ServicePackage), args.Error(1)
}
func (m *mockServiceRepo) TitleExists(ctx context.Context, title string) (bool, error) {
	args := m.Called(ctx, title)
	return args.Bool(0), args.Error(1)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) SendBookingReceived(ctx context.Context, name, email, eventDate string) error {
	return m.Called(ctx, name, email, eventDate).Error(0)
}
func (m *mockNotifier) SendStatusChanged(ctx context.Context, name, email, status, servicePackage string) error {
	return m.Called(ctx, name, email, status, servicePackage).Error(0)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error {
	return m.Called(ctx, topic, event).Error(0)
}

type bookingFixture struct {
	repo      *mockBookingRepo
	guard     *mockGuard
	services  *mockServiceRepo
	notifier  *mockNotifier
	publisher *mockPublisher
	service   *BookingService
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()
	f := &bookingFixture{
		repo:      &mockBookingRepo{},
		guard:     &mockGuard{},
		services:  &mockServiceRepo{},
		notifier:  &mockNotifier{},
		publisher: &mockPublisher{},
	}
	f.service = NewBookingService(
		f.repo, f.guard, f.services, booking.NewFeed(),
		f.notifier, f.publisher, zap.NewNop(),
	)
	f.service.now = func() time.Time { return testNow }
	return f
}

func validSubmitRequest() SubmitBookingRequest {
	return SubmitBookingRequest{
		Name:           "John Smith",
		Email:          "john@example.com",
		Address:        "12 Hill Road",
		Phone:          "+60123456789",
		ServicePackage: "Wedding Premium",
		EventDate:      "2025-06-15",
		Comments:       "outdoor shoot",
	}
}

func TestSubmit_HappyPath(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	f.guard.On("Reserve", ctx, mock.Anything).Return(true, nil)
	f.repo.On("Save", ctx, mock.Anything).Return(nil)
	f.services.On("TitleExists", ctx, "Wedding Premium").Return(true, nil)
	f.publisher.On("PublishEvent", ctx, mock.Anything, mock.Anything).Return(nil)
	f.notifier.On("SendBookingReceived", ctx, "John Smith", "john@example.com", "2025-06-15").Return(nil)

	result, err := f.service.Submit(ctx, validSubmitRequest())
	require.NoError(t, err)

	assert.Equal(t, "pending", result.Booking.Status)
	assert.Equal(t, "2025-06-15", result.Booking.EventDate)
	assert.True(t, result.EmailSent)
	assert.Empty(t, result.PackageWarning)
	f.repo.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func TestSubmit_ForcesPendingStatus(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	f.guard.On("Reserve", ctx, mock.Anything).Return(true, nil)
	f.repo.On("Save", ctx, mock.MatchedBy(func(b *booking.Booking) bool {
		return b.Status() == booking.StatusPending
	})).Return(nil)
	f.services.On("TitleExists", ctx, mock.Anything).Return(true, nil)
	f.publisher.On("PublishEvent", ctx, mock.Anything, mock.Anything).Return(nil)
	f.notifier.On("SendBookingReceived", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	req := validSubmitRequest()
	req.Status = "confirmed" // submitted status is ignored

	result, err := f.service.Submit(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "pending", result.Booking.Status)
	f.repo.AssertExpectations(t)
}

func TestSubmit_RejectsMissingFieldsWithoutStoreCall(t *testing.T) {
	f := newBookingFixture(t)

	req := validSubmitRequest()
	req.Email = ""

	_, err := f.service.Submit(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.guard.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything)
}

func TestSubmit_RejectsUnparseableDate(t *testing.T) {
	f := newBookingFixture(t)

	req := validSubmitRequest()
	req.EventDate = "15/06/2025"

	_, err := f.service.Submit(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestSubmit_DateAlreadyReserved(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	f.guard.On("Reserve", ctx, mock.Anything).Return(false, nil)

	_, err := f.service.Submit(ctx, validSubmitRequest())
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSubmit_StoreConflictReleasesReservation(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	f.guard.On("Reserve", ctx, mock.Anything).Return(true, nil)
	f.repo.On("Save", ctx, mock.Anything).Return(apperr.NewDateConflictError("2025-06-15"))
	f.guard.On("Release", ctx, mock.Anything).Return(nil)

	_, err := f.service.Submit(ctx, validSubmitRequest())
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	f.guard.AssertCalled(t, "Release", ctx, mock.Anything)
}

func TestSubmit_GuardOutageFallsThroughToStore(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	// Redis down: the unique index remains the correctness mechanism, so the
	// submission proceeds.
	f.guard.On("Reserve", ctx, mock.Anything).Return(false, errors.New("connection refused"))
	f.repo.On("Save", ctx, mock.Anything).Return(nil)
	f.services.On("TitleExists", ctx, mock.Anything).Return(true, nil)
	f.publisher.On("PublishEvent", ctx, mock.Anything, mock.Anything).Return(nil)
	f.notifier.On("SendBookingReceived", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result, err := f.service.Submit(ctx, validSubmitRequest())
	require.NoError(t, err)
	assert.True(t, result.EmailSent)
}

func TestSubmit_EmailFailureIsDegradedSuccess(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	f.guard.On("Reserve", ctx, mock.Anything).Return(true, nil)
	f.repo.On("Save", ctx, mock.Anything).Return(nil)
	f.services.On("TitleExists", ctx, mock.Anything).Return(true, nil)
	f.publisher.On("PublishEvent", ctx, mock.Anything, mock.Anything).Return(nil)
	f.notifier.On("SendBookingReceived", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(apperr.NewNotificationError(errors.New("relay down")))

	result, err := f.service.Submit(ctx, validSubmitRequest())
	require.NoError(t, err, "email failure must not fail the submission")
	assert.False(t, result.EmailSent)
}

func TestSubmit_UnknownPackageYieldsWarning(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	f.guard.On("Reserve", ctx, mock.Anything).Return(true, nil)
	f.repo.On("Save", ctx, mock.Anything).Return(nil)
	f.services.On("TitleExists", ctx, "Wedding Premium").Return(false, nil)
	f.publisher.On("PublishEvent", ctx, mock.Anything, mock.Anything).Return(nil)
	f.notifier.On("SendBookingReceived", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result, err := f.service.Submit(ctx, validSubmitRequest())
	require.NoError(t, err, "a dangling package reference is a warning, not a rejection")
	assert.NotEmpty(t, result.PackageWarning)
}

func storedBooking(t *testing.T, status booking.Status) *booking.Booking {
	t.Helper()
	return booking.Reconstruct(uuid.New(), "John", "john@example.com", "addr", "123",
		"Wedding Premium", testNow.AddDate(0, 0, 14), "", status, 1, testNow, testNow)
}

func TestChangeStatus_CompletedNotificationCarriesPackage(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	bk := storedBooking(t, booking.StatusConfirmed)

	f.repo.On("FindByID", ctx, bk.ID()).Return(bk, nil)
	f.repo.On("UpdateStatus", ctx, bk.ID(), booking.StatusCompleted).Return(nil)
	f.publisher.On("PublishEvent", ctx, mock.Anything, mock.Anything).Return(nil)
	f.notifier.On("SendStatusChanged", ctx, "John", "john@example.com", "completed", "Wedding Premium").Return(nil)

	dto, err := f.service.ChangeStatus(ctx, bk.ID(), "completed")
	require.NoError(t, err)
	assert.Equal(t, "completed", dto.Status)
	f.notifier.AssertExpectations(t)
}

func TestChangeStatus_InvalidTransition(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	bk := storedBooking(t, booking.StatusCompleted)

	f.repo.On("FindByID", ctx, bk.ID()).Return(bk, nil)

	_, err := f.service.ChangeStatus(ctx, bk.ID(), "confirmed")
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	f.repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "SendStatusChanged",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestChangeStatus_UnknownStatus(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.service.ChangeStatus(context.Background(), uuid.New(), "archived")
	require.Error(t, err)
	f.repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestDelete_ReleasesDateAndPublishes(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	bk := storedBooking(t, booking.StatusPending)

	f.repo.On("FindByID", ctx, bk.ID()).Return(bk, nil)
	f.repo.On("Delete", ctx, bk.ID()).Return(nil)
	f.guard.On("Release", ctx, bk.EventDate()).Return(nil)
	f.publisher.On("PublishEvent", ctx, mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, f.service.Delete(ctx, bk.ID()))
	f.guard.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestList_AppliesViewOverSnapshot(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	snapshot := []*booking.Booking{
		storedBooking(t, booking.StatusPending),
		storedBooking(t, booking.StatusConfirmed),
	}
	f.repo.On("ListAll", ctx).Return(snapshot, nil)

	page, err := f.service.List(ctx, booking.ListParams{Status: "pending"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, booking.PageSize, page.Limit)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "pending", page.Items[0].Status)
}

func TestBookedDates_SortedDayKeys(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	f.repo.On("BookedDates", ctx).Return([]time.Time{
		time.Date(2025, 7, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
	}, nil)

	dates, err := f.service.BookedDates(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06-15", "2025-07-20"}, dates)
}

func TestStats_AggregatesCounts(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	f.repo.On("CountByStatus", ctx).Return(map[string]int64{
		"pending": 3, "confirmed": 2, "completed": 5,
	}, nil)
	f.repo.On("CountByMonth", ctx, 2025).Return(map[time.Month]int64{
		time.June: 4, time.July: 6,
	}, nil)

	stats, err := f.service.Stats(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(10), stats.Total)
	assert.Equal(t, 2025, stats.Year, "year defaults to the current year")
	assert.Equal(t, int64(4), stats.ByMonth[6])
	assert.Equal(t, int64(0), stats.ByMonth[1], "empty months are zero-filled")
}

func TestSubscribe_ReceivesSnapshotsAfterCommit(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	f.guard.On("Reserve", ctx, mock.Anything).Return(true, nil)
	f.repo.On("Save", ctx, mock.Anything).Return(nil)
	f.services.On("TitleExists", ctx, mock.Anything).Return(true, nil)
	f.publisher.On("PublishEvent", ctx, mock.Anything, mock.Anything).Return(nil)
	f.notifier.On("SendBookingReceived", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.repo.On("ListAll", ctx).Return([]*booking.Booking{storedBooking(t, booking.StatusPending)}, nil)

	snapshots, unsubscribe := f.service.Subscribe()
	defer unsubscribe()

	_, err := f.service.Submit(ctx, validSubmitRequest())
	require.NoError(t, err)

	select {
	case snapshot := <-snapshots:
		require.Len(t, snapshot, 1)
		assert.Equal(t, "pending", snapshot[0].Status)
	case <-time.After(time.Second):
		t.Fatal("live view missed the committed change")
	}
}
