package earning_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"zestpay/internal/company"
	"zestpay/internal/earning"
	earningerrors "zestpay/internal/earning/errors"
	"zestpay/internal/employee"
	"zestpay/internal/messaging/kafka"
	"zestpay/internal/shared/apperror"
	"zestpay/internal/shared/counter"
	"zestpay/internal/shared/money"
	"zestpay/internal/subscription"
	subscriptionerrors "zestpay/internal/subscription/errors"
	"zestpay/internal/trust"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fakeEarningRepository struct {
	createFn                 func(ctx context.Context, e *earning.Earning) error
	findAllByEmployeeFn      func(ctx context.Context, companyID, employeeID string, since time.Time) ([]earning.Earning, error)
	sumSinceFn               func(ctx context.Context, companyID, employeeID string, since time.Time) (money.Paise, int, error)
	sumBetweenFn             func(ctx context.Context, companyID, employeeID string, from, to time.Time) (money.Paise, error)
	findEmployeeFn           func(ctx context.Context, companyID, employeeID string) (*employee.Employee, error)
	lockEmployeeFn           func(ctx context.Context, companyID, employeeID string) (*employee.Employee, error)
	updateGigScoreFn         func(ctx context.Context, employeeID string, score trust.GigScore) error
	createInstantFn          func(ctx context.Context, iw *earning.InstantWithdrawal) error
	findInstantWithdrawalsFn func(ctx context.Context, companyID, employeeID string) ([]earning.InstantWithdrawal, error)
}

func (f *fakeEarningRepository) WithTx(tx *gorm.DB) earning.Repository {
	return f
}

func (f *fakeEarningRepository) Create(ctx context.Context, e *earning.Earning) error {
	if f.createFn != nil {
		return f.createFn(ctx, e)
	}
	return nil
}

func (f *fakeEarningRepository) FindAllByEmployee(ctx context.Context, companyID, employeeID string, since time.Time) ([]earning.Earning, error) {
	if f.findAllByEmployeeFn != nil {
		return f.findAllByEmployeeFn(ctx, companyID, employeeID, since)
	}
	return nil, nil
}

func (f *fakeEarningRepository) SumSince(ctx context.Context, companyID, employeeID string, since time.Time) (money.Paise, int, error) {
	if f.sumSinceFn != nil {
		return f.sumSinceFn(ctx, companyID, employeeID, since)
	}
	return 0, 0, nil
}

func (f *fakeEarningRepository) SumBetween(ctx context.Context, companyID, employeeID string, from, to time.Time) (money.Paise, error) {
	if f.sumBetweenFn != nil {
		return f.sumBetweenFn(ctx, companyID, employeeID, from, to)
	}
	return 0, nil
}

func (f *fakeEarningRepository) FindEmployee(ctx context.Context, companyID, employeeID string) (*employee.Employee, error) {
	if f.findEmployeeFn != nil {
		return f.findEmployeeFn(ctx, companyID, employeeID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEarningRepository) LockEmployee(ctx context.Context, companyID, employeeID string) (*employee.Employee, error) {
	if f.lockEmployeeFn != nil {
		return f.lockEmployeeFn(ctx, companyID, employeeID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEarningRepository) UpdateGigScore(ctx context.Context, employeeID string, score trust.GigScore) error {
	if f.updateGigScoreFn != nil {
		return f.updateGigScoreFn(ctx, employeeID, score)
	}
	return nil
}

func (f *fakeEarningRepository) CreateInstantWithdrawal(ctx context.Context, iw *earning.InstantWithdrawal) error {
	if f.createInstantFn != nil {
		return f.createInstantFn(ctx, iw)
	}
	return nil
}

func (f *fakeEarningRepository) FindInstantWithdrawals(ctx context.Context, companyID, employeeID string) ([]earning.InstantWithdrawal, error) {
	if f.findInstantWithdrawalsFn != nil {
		return f.findInstantWithdrawalsFn(ctx, companyID, employeeID)
	}
	return nil, nil
}

type fakeCompanyRepo struct {
	company.Repository
	incrementDisbursedFn func(ctx context.Context, id uuid.UUID, amount int64) error
}

func (f *fakeCompanyRepo) WithTx(tx *gorm.DB) company.Repository {
	return f
}

func (f *fakeCompanyRepo) IncrementDisbursed(ctx context.Context, id uuid.UUID, amount int64) error {
	if f.incrementDisbursedFn != nil {
		return f.incrementDisbursedFn(ctx, id, amount)
	}
	return nil
}

type fakeCounterRepo struct {
	nextFn func(ctx context.Context, companyID, sequence string) (int64, error)
}

func (f *fakeCounterRepo) Next(ctx context.Context, companyID string, sequence string) (int64, error) {
	if f.nextFn != nil {
		return f.nextFn(ctx, companyID, sequence)
	}
	return 1, nil
}

type fakeSubscriptionService struct {
	subscription.Service
	requireActiveFn func(ctx context.Context, companyID, employeeID string) error
}

func (f *fakeSubscriptionService) RequireActive(ctx context.Context, companyID, employeeID string) error {
	if f.requireActiveFn != nil {
		return f.requireActiveFn(ctx, companyID, employeeID)
	}
	return nil
}

type fakeOutboxRepository struct {
	events []kafka.OutboxEvent
}

func (f *fakeOutboxRepository) WithTx(tx *gorm.DB) kafka.OutboxRepository {
	return f
}

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeOutboxRepository) ListDue(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error {
	return nil
}

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

var testNow = time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)

type earningServiceDeps struct {
	db           *sql.DB
	sqlMock      sqlmock.Sqlmock
	service      earning.Service
	repo         *fakeEarningRepository
	companyRepo  *fakeCompanyRepo
	counterRepo  *fakeCounterRepo
	subscription *fakeSubscriptionService
	outbox       *fakeOutboxRepository
}

func setupEarningServiceTest(t *testing.T) *earningServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	repo := &fakeEarningRepository{}
	companyRepo := &fakeCompanyRepo{}
	counterRepo := &fakeCounterRepo{}
	subs := &fakeSubscriptionService{}
	outbox := &fakeOutboxRepository{}

	var counterIface counter.Repository = counterRepo
	svc := earning.NewServiceWithClock(
		gdb, repo, companyRepo, counterIface, subs, outbox,
		func() time.Time { return testNow },
	)

	return &earningServiceDeps{
		db:           db,
		sqlMock:      sqlMock,
		service:      svc,
		repo:         repo,
		companyRepo:  companyRepo,
		counterRepo:  counterRepo,
		subscription: subs,
		outbox:       outbox,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func gigEmployee(companyID, employeeID uuid.UUID) *employee.Employee {
	return &employee.Employee{
		ID:                employeeID,
		CompanyID:         companyID,
		FullName:          "Arjun Patel",
		Email:             "arjun@acme.test",
		Status:            employee.StatusActive,
		CompensationModel: employee.ModelGig,
		GigTrustScore:     trust.GigDefault,
		HasSubscription:   true,
	}
}

func TestEarningService_Record(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	employeeID := uuid.New()

	t.Run("success", func(t *testing.T) {
		deps := setupEarningServiceTest(t)
		defer deps.db.Close()

		deps.repo.findEmployeeFn = func(ctx context.Context, cid, eid string) (*employee.Employee, error) {
			return gigEmployee(companyID, employeeID), nil
		}

		var created *earning.Earning
		deps.repo.createFn = func(ctx context.Context, e *earning.Earning) error {
			created = e
			return nil
		}

		resp, err := deps.service.Record(ctx, companyID.String(), employeeID.String(), earning.RecordEarningRequest{
			Amount: 120_000,
			Source: "zomato",
		})

		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.Equal(t, int64(120_000), resp.Amount)
		assert.Equal(t, "zomato", resp.Source)
		assert.Equal(t, testNow, created.EarnedAt)
	})

	t.Run("salaried employees cannot record gig earnings", func(t *testing.T) {
		deps := setupEarningServiceTest(t)
		defer deps.db.Close()

		deps.repo.findEmployeeFn = func(ctx context.Context, cid, eid string) (*employee.Employee, error) {
			empl := gigEmployee(companyID, employeeID)
			empl.CompensationModel = employee.ModelSalaried
			return empl, nil
		}

		_, err := deps.service.Record(ctx, companyID.String(), employeeID.String(), earning.RecordEarningRequest{
			Amount: 120_000,
			Source: "ola",
		})

		assert.ErrorIs(t, err, earningerrors.ErrGigOnly)
	})

	t.Run("amount must be positive", func(t *testing.T) {
		deps := setupEarningServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Record(ctx, companyID.String(), employeeID.String(), earning.RecordEarningRequest{
			Amount: 0,
			Source: "uber",
		})

		assert.ErrorIs(t, err, earningerrors.ErrInvalidAmount)
	})

	t.Run("source required", func(t *testing.T) {
		deps := setupEarningServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Record(ctx, companyID.String(), employeeID.String(), earning.RecordEarningRequest{
			Amount: 120_000,
		})

		assert.ErrorIs(t, err, earningerrors.ErrSourceRequired)
	})
}

func TestEarningService_RollingAverage(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	employeeID := uuid.New()

	t.Run("total over days worked times seven", func(t *testing.T) {
		deps := setupEarningServiceTest(t)
		defer deps.db.Close()

		deps.repo.sumSinceFn = func(ctx context.Context, cid, eid string, since time.Time) (money.Paise, int, error) {
			// Jendela 42 hari ke belakang dari clock tetap.
			assert.Equal(t, testNow.AddDate(0, 0, -42), since)
			return money.Paise(4_200_000), 6, nil
		}

		resp, err := deps.service.RollingAverage(ctx, companyID.String(), employeeID.String())

		assert.NoError(t, err)
		assert.Equal(t, int64(4_200_000), resp.TotalEarnings)
		assert.Equal(t, 6, resp.DaysWorked)
		assert.Equal(t, int64(4_900_000), resp.WeeklyAverage)
	})

	t.Run("no earnings in the window", func(t *testing.T) {
		deps := setupEarningServiceTest(t)
		defer deps.db.Close()

		resp, err := deps.service.RollingAverage(ctx, companyID.String(), employeeID.String())

		assert.NoError(t, err)
		assert.Equal(t, int64(0), resp.WeeklyAverage)
		assert.Equal(t, 0, resp.DaysWorked)
	})
}

func TestEarningService_WithdrawalLimit(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	employeeID := uuid.New()

	t.Run("limit is today's earnings times the gig score", func(t *testing.T) {
		deps := setupEarningServiceTest(t)
		defer deps.db.Close()

		deps.repo.findEmployeeFn = func(ctx context.Context, cid, eid string) (*employee.Employee, error) {
			return gigEmployee(companyID, employeeID), nil
		}
		deps.repo.sumBetweenFn = func(ctx context.Context, cid, eid string, from, to time.Time) (money.Paise, error) {
			assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), from)
			assert.Equal(t, time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC), to)
			return money.Paise(100_000), nil
		}

		resp, err := deps.service.WithdrawalLimit(ctx, companyID.String(), employeeID.String())

		assert.NoError(t, err)
		assert.Equal(t, int64(100_000), resp.TodayEarnings)
		assert.Equal(t, int64(50_000), resp.DailyLimit)
		assert.Equal(t, int64(50_000), resp.SafetyBuffer)
		assert.Equal(t, 0.50, resp.TrustScore)
	})

	t.Run("no earnings today means zero limit", func(t *testing.T) {
		deps := setupEarningServiceTest(t)
		defer deps.db.Close()

		deps.repo.findEmployeeFn = func(ctx context.Context, cid, eid string) (*employee.Employee, error) {
			return gigEmployee(companyID, employeeID), nil
		}

		resp, err := deps.service.WithdrawalLimit(ctx, companyID.String(), employeeID.String())

		assert.NoError(t, err)
		assert.Equal(t, int64(0), resp.DailyLimit)
	})
}

func TestEarningService_ProcessInstantWithdrawal(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	employeeID := uuid.New()

	t.Run("success - completed immediately with score bump", func(t *testing.T) {
		deps := setupEarningServiceTest(t)
		defer deps.db.Close()

		deps.repo.lockEmployeeFn = func(ctx context.Context, cid, eid string) (*employee.Employee, error) {
			return gigEmployee(companyID, employeeID), nil
		}
		deps.repo.sumBetweenFn = func(ctx context.Context, cid, eid string, from, to time.Time) (money.Paise, error) {
			return money.Paise(100_000), nil
		}
		deps.counterRepo.nextFn = func(ctx context.Context, cid, sequence string) (int64, error) {
			assert.Equal(t, "instant_withdrawal_reference", sequence)
			return 3, nil
		}

		var created *earning.InstantWithdrawal
		deps.repo.createInstantFn = func(ctx context.Context, iw *earning.InstantWithdrawal) error {
			created = iw
			return nil
		}

		var newScore trust.GigScore
		deps.repo.updateGigScoreFn = func(ctx context.Context, eid string, score trust.GigScore) error {
			newScore = score
			return nil
		}

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.ProcessInstantWithdrawal(ctx, companyID.String(), employeeID.String(), earning.InstantWithdrawalRequest{
			Amount: 40_000,
		})

		assert.NoError(t, err)
		assert.Equal(t, earning.StatusCompleted, resp.Status)
		assert.Equal(t, "IW-000003", resp.Reference)
		assert.InDelta(t, 0.55, float64(newScore), 1e-9)
		assert.NotNil(t, created)
		// Limit 50.000: 40.000 ditarik, 10.000 jadi buffer tambahan.
		assert.Equal(t, money.Paise(50_000), created.DailyLimitSnapshot)
		assert.Equal(t, money.Paise(10_000), created.SafetyBufferReserved)

		assert.Len(t, deps.outbox.events, 1)
		assert.Equal(t, "instant_withdrawal_completed", deps.outbox.events[0].EventType)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("over the daily limit", func(t *testing.T) {
		deps := setupEarningServiceTest(t)
		defer deps.db.Close()

		deps.repo.lockEmployeeFn = func(ctx context.Context, cid, eid string) (*employee.Employee, error) {
			return gigEmployee(companyID, employeeID), nil
		}
		deps.repo.sumBetweenFn = func(ctx context.Context, cid, eid string, from, to time.Time) (money.Paise, error) {
			return money.Paise(100_000), nil
		}

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.ProcessInstantWithdrawal(ctx, companyID.String(), employeeID.String(), earning.InstantWithdrawalRequest{
			Amount: 60_000,
		})

		assert.ErrorIs(t, err, earningerrors.ErrDailyLimitExceeded)

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, map[string]int64{"daily_limit": 50_000}, appErr.Details)
		assert.Empty(t, deps.outbox.events)
	})

	t.Run("salaried employees are redirected to monthly withdrawal", func(t *testing.T) {
		deps := setupEarningServiceTest(t)
		defer deps.db.Close()

		deps.repo.lockEmployeeFn = func(ctx context.Context, cid, eid string) (*employee.Employee, error) {
			empl := gigEmployee(companyID, employeeID)
			empl.CompensationModel = employee.ModelSalaried
			return empl, nil
		}

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.ProcessInstantWithdrawal(ctx, companyID.String(), employeeID.String(), earning.InstantWithdrawalRequest{
			Amount: 10_000,
		})

		assert.ErrorIs(t, err, earningerrors.ErrGigOnly)
	})

	t.Run("inactive subscription blocks the withdrawal", func(t *testing.T) {
		deps := setupEarningServiceTest(t)
		defer deps.db.Close()

		deps.subscription.requireActiveFn = func(ctx context.Context, cid, eid string) error {
			return subscriptionerrors.ErrSubscriptionRequired
		}

		_, err := deps.service.ProcessInstantWithdrawal(ctx, companyID.String(), employeeID.String(), earning.InstantWithdrawalRequest{
			Amount: 10_000,
		})

		assert.ErrorIs(t, err, subscriptionerrors.ErrSubscriptionRequired)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}
