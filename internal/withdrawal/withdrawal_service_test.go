package withdrawal_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"zestpay/internal/company"
	"zestpay/internal/employee"
	"zestpay/internal/messaging/kafka"
	"zestpay/internal/shared/apperror"
	"zestpay/internal/shared/counter"
	"zestpay/internal/shared/money"
	"zestpay/internal/subscription"
	subscriptionerrors "zestpay/internal/subscription/errors"
	"zestpay/internal/trust"
	"zestpay/internal/withdrawal"
	withdrawalerrors "zestpay/internal/withdrawal/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fakeWithdrawalRepository struct {
	createFn             func(ctx context.Context, w *withdrawal.Withdrawal) error
	findByIDAndCompanyFn func(ctx context.Context, companyID, id string) (*withdrawal.Withdrawal, error)
	findAllByEmployeeFn  func(ctx context.Context, companyID, employeeID string) ([]withdrawal.Withdrawal, error)
	findAllByCompanyFn   func(ctx context.Context, companyID string, filter withdrawal.WithdrawalQueryFilter) ([]withdrawal.Withdrawal, error)
	updateFn             func(ctx context.Context, w *withdrawal.Withdrawal) error
	findEmployeeFn       func(ctx context.Context, companyID, employeeID string) (*employee.Employee, error)
	lockEmployeeFn       func(ctx context.Context, companyID, employeeID string) (*employee.Employee, error)
	incrementWithdrawnFn func(ctx context.Context, employeeID string, amount money.Paise) error
	applyRepaymentFn     func(ctx context.Context, employeeID string, amount money.Paise, onTime bool, newScore trust.SalariedScore) error
	createRepaymentFn    func(ctx context.Context, rp *withdrawal.Repayment) error
}

func (f *fakeWithdrawalRepository) WithTx(tx *gorm.DB) withdrawal.Repository {
	return f
}

func (f *fakeWithdrawalRepository) Create(ctx context.Context, w *withdrawal.Withdrawal) error {
	if f.createFn != nil {
		return f.createFn(ctx, w)
	}
	return nil
}

func (f *fakeWithdrawalRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*withdrawal.Withdrawal, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeWithdrawalRepository) FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]withdrawal.Withdrawal, error) {
	if f.findAllByEmployeeFn != nil {
		return f.findAllByEmployeeFn(ctx, companyID, employeeID)
	}
	return nil, nil
}

func (f *fakeWithdrawalRepository) FindAllByCompany(ctx context.Context, companyID string, filter withdrawal.WithdrawalQueryFilter) ([]withdrawal.Withdrawal, error) {
	if f.findAllByCompanyFn != nil {
		return f.findAllByCompanyFn(ctx, companyID, filter)
	}
	return nil, nil
}

func (f *fakeWithdrawalRepository) Update(ctx context.Context, w *withdrawal.Withdrawal) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, w)
	}
	return nil
}

func (f *fakeWithdrawalRepository) FindEmployee(ctx context.Context, companyID, employeeID string) (*employee.Employee, error) {
	if f.findEmployeeFn != nil {
		return f.findEmployeeFn(ctx, companyID, employeeID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeWithdrawalRepository) LockEmployee(ctx context.Context, companyID, employeeID string) (*employee.Employee, error) {
	if f.lockEmployeeFn != nil {
		return f.lockEmployeeFn(ctx, companyID, employeeID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeWithdrawalRepository) IncrementWithdrawn(ctx context.Context, employeeID string, amount money.Paise) error {
	if f.incrementWithdrawnFn != nil {
		return f.incrementWithdrawnFn(ctx, employeeID, amount)
	}
	return nil
}

func (f *fakeWithdrawalRepository) ApplyRepayment(ctx context.Context, employeeID string, amount money.Paise, onTime bool, newScore trust.SalariedScore) error {
	if f.applyRepaymentFn != nil {
		return f.applyRepaymentFn(ctx, employeeID, amount, onTime, newScore)
	}
	return nil
}

func (f *fakeWithdrawalRepository) CreateRepayment(ctx context.Context, rp *withdrawal.Repayment) error {
	if f.createRepaymentFn != nil {
		return f.createRepaymentFn(ctx, rp)
	}
	return nil
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

var testNow = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

type withdrawalServiceDeps struct {
	db           *sql.DB
	sqlMock      sqlmock.Sqlmock
	service      withdrawal.Service
	repo         *fakeWithdrawalRepository
	companyRepo  *fakeCompanyRepo
	counterRepo  *fakeCounterRepo
	subscription *fakeSubscriptionService
	outbox       *fakeOutboxRepository
}

func setupWithdrawalServiceTest(t *testing.T) *withdrawalServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	repo := &fakeWithdrawalRepository{}
	companyRepo := &fakeCompanyRepo{}
	counterRepo := &fakeCounterRepo{}
	subs := &fakeSubscriptionService{}
	outbox := &fakeOutboxRepository{}

	var counterIface counter.Repository = counterRepo
	svc := withdrawal.NewServiceWithClock(
		gdb, repo, companyRepo, counterIface, subs, outbox,
		func() time.Time { return testNow },
	)

	return &withdrawalServiceDeps{
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

func salariedEmployee(companyID, employeeID uuid.UUID) *employee.Employee {
	return &employee.Employee{
		ID:                employeeID,
		CompanyID:         companyID,
		FullName:          "Rohan Mehta",
		Email:             "rohan@acme.test",
		Status:            employee.StatusActive,
		CompensationModel: employee.ModelSalaried,
		MonthlySalary:     5_000_000,
		TrustScore:        60,
		TotalWithdrawn:    1_000_000,
		HasSubscription:   true,
	}
}

func TestWithdrawalService_Request(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	employeeID := uuid.New()

	t.Run("success - pending with snapshots", func(t *testing.T) {
		deps := setupWithdrawalServiceTest(t)
		defer deps.db.Close()

		deps.repo.lockEmployeeFn = func(ctx context.Context, cid, eid string) (*employee.Employee, error) {
			return salariedEmployee(companyID, employeeID), nil
		}
		deps.counterRepo.nextFn = func(ctx context.Context, cid, sequence string) (int64, error) {
			assert.Equal(t, "withdrawal_reference", sequence)
			return 7, nil
		}

		var created *withdrawal.Withdrawal
		deps.repo.createFn = func(ctx context.Context, w *withdrawal.Withdrawal) error {
			created = w
			return nil
		}

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Request(ctx, companyID.String(), employeeID.String(), withdrawal.RequestWithdrawalRequest{
			Amount: 1_500_000,
			Reason: "school fees",
		})

		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.Equal(t, withdrawal.StatusPending, resp.Status)
		assert.Equal(t, "WD-000007", resp.Reference)
		assert.Equal(t, int64(1_500_000), resp.Amount)
		assert.Equal(t, "school fees", created.Reason)
		assert.Equal(t, "school fees", resp.Reason)
		// Snapshot dibekukan saat request: gaji, score, dan plafon penuh
		// (salary x score / 100), bukan sisa setelah totalWithdrawn.
		assert.Equal(t, int64(5_000_000), resp.MonthlySalary)
		assert.Equal(t, 60, resp.TrustScore)
		assert.Equal(t, int64(3_000_000), resp.MaxAllowed)
		assert.Equal(t, testNow, resp.RequestedAt)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("limit exceeded - error carries remaining limit", func(t *testing.T) {
		deps := setupWithdrawalServiceTest(t)
		defer deps.db.Close()

		deps.repo.lockEmployeeFn = func(ctx context.Context, cid, eid string) (*employee.Employee, error) {
			return salariedEmployee(companyID, employeeID), nil
		}

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Request(ctx, companyID.String(), employeeID.String(), withdrawal.RequestWithdrawalRequest{
			Amount: 2_500_000,
		})

		assert.ErrorIs(t, err, withdrawalerrors.ErrLimitExceeded)

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, map[string]int64{"available": 2_000_000}, appErr.Details)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("amount must be positive", func(t *testing.T) {
		deps := setupWithdrawalServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Request(ctx, companyID.String(), employeeID.String(), withdrawal.RequestWithdrawalRequest{
			Amount: 0,
		})

		assert.ErrorIs(t, err, withdrawalerrors.ErrInvalidAmount)
	})

	t.Run("inactive subscription blocks the request", func(t *testing.T) {
		deps := setupWithdrawalServiceTest(t)
		defer deps.db.Close()

		deps.subscription.requireActiveFn = func(ctx context.Context, cid, eid string) error {
			return subscriptionerrors.ErrSubscriptionRequired
		}

		_, err := deps.service.Request(ctx, companyID.String(), employeeID.String(), withdrawal.RequestWithdrawalRequest{
			Amount: 100_000,
		})

		assert.ErrorIs(t, err, subscriptionerrors.ErrSubscriptionRequired)
		// Gate gagal sebelum transaksi dibuka.
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("gig workers cannot use monthly withdrawal", func(t *testing.T) {
		deps := setupWithdrawalServiceTest(t)
		defer deps.db.Close()

		deps.repo.lockEmployeeFn = func(ctx context.Context, cid, eid string) (*employee.Employee, error) {
			empl := salariedEmployee(companyID, employeeID)
			empl.CompensationModel = employee.ModelGig
			return empl, nil
		}

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Request(ctx, companyID.String(), employeeID.String(), withdrawal.RequestWithdrawalRequest{
			Amount: 100_000,
		})

		assert.ErrorIs(t, err, withdrawalerrors.ErrSalariedOnly)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("unknown employee", func(t *testing.T) {
		deps := setupWithdrawalServiceTest(t)
		defer deps.db.Close()

		deps.repo.lockEmployeeFn = func(ctx context.Context, cid, eid string) (*employee.Employee, error) {
			return nil, gorm.ErrRecordNotFound
		}

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Request(ctx, companyID.String(), employeeID.String(), withdrawal.RequestWithdrawalRequest{
			Amount: 100_000,
		})

		assert.ErrorIs(t, err, withdrawalerrors.ErrEmployeeNotFound)
	})
}

func pendingWithdrawal(companyID, employeeID uuid.UUID) *withdrawal.Withdrawal {
	return &withdrawal.Withdrawal{
		ID:                    uuid.New(),
		CompanyID:             companyID,
		EmployeeID:            employeeID,
		Reference:             "WD-000042",
		Amount:                money.Paise(1_500_000),
		Status:                withdrawal.StatusPending,
		MonthlySalarySnapshot: money.Paise(5_000_000),
		TrustScoreSnapshot:    60,
		MaxAllowedSnapshot:    money.Paise(2_000_000),
		RequestedAt:           testNow.Add(-time.Hour),
	}
}

func TestWithdrawalService_Approve(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	employeeID := uuid.New()

	t.Run("success - totals move and event is queued", func(t *testing.T) {
		deps := setupWithdrawalServiceTest(t)
		defer deps.db.Close()

		w := pendingWithdrawal(companyID, employeeID)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*withdrawal.Withdrawal, error) {
			return w, nil
		}

		var incremented money.Paise
		deps.repo.incrementWithdrawnFn = func(ctx context.Context, eid string, amount money.Paise) error {
			assert.Equal(t, employeeID.String(), eid)
			incremented = amount
			return nil
		}

		var disbursed int64
		deps.companyRepo.incrementDisbursedFn = func(ctx context.Context, id uuid.UUID, amount int64) error {
			assert.Equal(t, companyID, id)
			disbursed = amount
			return nil
		}

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Approve(ctx, companyID.String(), w.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, withdrawal.StatusApproved, resp.Status)
		assert.NotNil(t, resp.ApprovedAt)
		assert.Equal(t, money.Paise(1_500_000), incremented)
		assert.Equal(t, int64(1_500_000), disbursed)

		assert.Len(t, deps.outbox.events, 1)
		assert.Equal(t, "withdrawal_approved", deps.outbox.events[0].EventType)
		assert.Equal(t, "ewa.withdrawal.approved.v1", deps.outbox.events[0].Topic)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("already decided - replay is rejected", func(t *testing.T) {
		deps := setupWithdrawalServiceTest(t)
		defer deps.db.Close()

		w := pendingWithdrawal(companyID, employeeID)
		w.Status = withdrawal.StatusApproved
		approvedAt := testNow.Add(-time.Minute)
		w.ApprovedAt = &approvedAt

		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*withdrawal.Withdrawal, error) {
			return w, nil
		}

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Approve(ctx, companyID.String(), w.ID.String())

		assert.ErrorIs(t, err, withdrawalerrors.ErrNotPending)
		assert.Empty(t, deps.outbox.events)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupWithdrawalServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Approve(ctx, companyID.String(), uuid.New().String())

		assert.ErrorIs(t, err, withdrawalerrors.ErrWithdrawalNotFound)
	})
}

func TestWithdrawalService_Reject(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	employeeID := uuid.New()

	t.Run("success - reason is stored", func(t *testing.T) {
		deps := setupWithdrawalServiceTest(t)
		defer deps.db.Close()

		w := pendingWithdrawal(companyID, employeeID)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*withdrawal.Withdrawal, error) {
			return w, nil
		}

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Reject(ctx, companyID.String(), w.ID.String(), withdrawal.RejectWithdrawalRequest{
			Reason: "suspicious activity",
		})

		assert.NoError(t, err)
		assert.Equal(t, withdrawal.StatusRejected, resp.Status)
		assert.NotNil(t, resp.RejectedAt)
		assert.Equal(t, "suspicious activity", resp.RejectionReason)
	})

	t.Run("reason required", func(t *testing.T) {
		deps := setupWithdrawalServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Reject(ctx, companyID.String(), uuid.New().String(), withdrawal.RejectWithdrawalRequest{})

		assert.ErrorIs(t, err, withdrawalerrors.ErrRejectionReasonRequired)
	})

	t.Run("rejected twice", func(t *testing.T) {
		deps := setupWithdrawalServiceTest(t)
		defer deps.db.Close()

		w := pendingWithdrawal(companyID, employeeID)
		w.Status = withdrawal.StatusRejected

		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*withdrawal.Withdrawal, error) {
			return w, nil
		}

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Reject(ctx, companyID.String(), w.ID.String(), withdrawal.RejectWithdrawalRequest{
			Reason: "duplicate",
		})

		assert.ErrorIs(t, err, withdrawalerrors.ErrNotPending)
	})
}

func TestWithdrawalService_RecordRepayment(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	employeeID := uuid.New()

	t.Run("on-time with strong ratio bumps the score", func(t *testing.T) {
		deps := setupWithdrawalServiceTest(t)
		defer deps.db.Close()

		empl := salariedEmployee(companyID, employeeID)
		empl.TrustScore = 80
		empl.OnTimeRepayments = 8
		empl.LateRepayments = 1

		deps.repo.lockEmployeeFn = func(ctx context.Context, cid, eid string) (*employee.Employee, error) {
			return empl, nil
		}

		var appliedScore trust.SalariedScore
		deps.repo.applyRepaymentFn = func(ctx context.Context, eid string, amount money.Paise, onTime bool, newScore trust.SalariedScore) error {
			assert.Equal(t, money.Paise(500_000), amount)
			assert.True(t, onTime)
			appliedScore = newScore
			return nil
		}

		var audit *withdrawal.Repayment
		deps.repo.createRepaymentFn = func(ctx context.Context, rp *withdrawal.Repayment) error {
			audit = rp
			return nil
		}

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.RecordRepayment(ctx, companyID.String(), withdrawal.RecordRepaymentRequest{
			EmployeeID: employeeID.String(),
			Amount:     500_000,
			OnTime:     true,
		})

		assert.NoError(t, err)
		// Rasio termasuk cicilan ini: (8+1)/10 = 0.9 → +5.
		assert.Equal(t, trust.SalariedScore(85), appliedScore)
		assert.Equal(t, 85, resp.NewTrustScore)
		assert.NotNil(t, audit)
		assert.True(t, audit.OnTime)

		assert.Len(t, deps.outbox.events, 1)
		assert.Equal(t, "repayment_recorded", deps.outbox.events[0].EventType)
		assert.Equal(t, "ewa.repayment.recorded.v1", deps.outbox.events[0].Topic)
	})

	t.Run("late repayment floors at the minimum score", func(t *testing.T) {
		deps := setupWithdrawalServiceTest(t)
		defer deps.db.Close()

		empl := salariedEmployee(companyID, employeeID)
		empl.TrustScore = 35

		deps.repo.lockEmployeeFn = func(ctx context.Context, cid, eid string) (*employee.Employee, error) {
			return empl, nil
		}

		var appliedScore trust.SalariedScore
		deps.repo.applyRepaymentFn = func(ctx context.Context, eid string, amount money.Paise, onTime bool, newScore trust.SalariedScore) error {
			appliedScore = newScore
			return nil
		}

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.RecordRepayment(ctx, companyID.String(), withdrawal.RecordRepaymentRequest{
			EmployeeID: employeeID.String(),
			Amount:     200_000,
			OnTime:     false,
		})

		assert.NoError(t, err)
		assert.Equal(t, trust.SalariedScore(30), appliedScore)
		assert.Equal(t, 30, resp.NewTrustScore)
	})

	t.Run("invalid amount", func(t *testing.T) {
		deps := setupWithdrawalServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.RecordRepayment(ctx, companyID.String(), withdrawal.RecordRepaymentRequest{
			EmployeeID: employeeID.String(),
			Amount:     -1,
			OnTime:     true,
		})

		assert.ErrorIs(t, err, withdrawalerrors.ErrInvalidAmount)
	})

	t.Run("unknown employee rolls back", func(t *testing.T) {
		deps := setupWithdrawalServiceTest(t)
		defer deps.db.Close()

		deps.repo.lockEmployeeFn = func(ctx context.Context, cid, eid string) (*employee.Employee, error) {
			return nil, gorm.ErrRecordNotFound
		}

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.RecordRepayment(ctx, companyID.String(), withdrawal.RecordRepaymentRequest{
			EmployeeID: employeeID.String(),
			Amount:     100_000,
			OnTime:     true,
		})

		assert.ErrorIs(t, err, withdrawalerrors.ErrEmployeeNotFound)
		assert.Empty(t, deps.outbox.events)
	})
}

func TestWithdrawalService_Availability(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	employeeID := uuid.New()

	t.Run("reports ceiling and remaining limit", func(t *testing.T) {
		deps := setupWithdrawalServiceTest(t)
		defer deps.db.Close()

		deps.repo.findEmployeeFn = func(ctx context.Context, cid, eid string) (*employee.Employee, error) {
			return salariedEmployee(companyID, employeeID), nil
		}

		resp, err := deps.service.Availability(ctx, companyID.String(), employeeID.String())

		assert.NoError(t, err)
		assert.Equal(t, int64(3_000_000), resp.Ceiling)
		assert.Equal(t, int64(1_000_000), resp.TotalWithdrawn)
		assert.Equal(t, int64(2_000_000), resp.Available)
	})

	t.Run("withdrawn past the ceiling reads as zero", func(t *testing.T) {
		deps := setupWithdrawalServiceTest(t)
		defer deps.db.Close()

		deps.repo.findEmployeeFn = func(ctx context.Context, cid, eid string) (*employee.Employee, error) {
			empl := salariedEmployee(companyID, employeeID)
			empl.TrustScore = 30            // turun setelah telat bayar
			empl.TotalWithdrawn = 2_000_000 // plafon baru 1.500.000
			return empl, nil
		}

		resp, err := deps.service.Availability(ctx, companyID.String(), employeeID.String())

		assert.NoError(t, err)
		assert.Equal(t, int64(1_500_000), resp.Ceiling)
		assert.Equal(t, int64(0), resp.Available)
	})

	t.Run("malformed id", func(t *testing.T) {
		deps := setupWithdrawalServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Availability(ctx, companyID.String(), "not-a-uuid")

		assert.ErrorIs(t, err, withdrawalerrors.ErrInvalidEmployeeID)
	})
}
