package earning

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"zestpay/internal/company"
	earningerrors "zestpay/internal/earning/errors"
	"zestpay/internal/employee"
	"zestpay/internal/events"
	"zestpay/internal/messaging/kafka"
	"zestpay/internal/shared/contextutil"
	"zestpay/internal/shared/counter"
	"zestpay/internal/shared/money"
	"zestpay/internal/subscription"
	"zestpay/internal/trust"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=earning_service.go -destination=mock/earning_service_mock.go -package=mock
type Service interface {
	Record(ctx context.Context, companyID, employeeID string, req RecordEarningRequest) (EarningResponse, error)

	// RollingAverage menghitung rata-rata mingguan 6 minggu terakhir:
	// total / hari kerja × 7. Hari tanpa setoran tidak ikut dihitung.
	RollingAverage(ctx context.Context, companyID, employeeID string) (RollingAverageResponse, error)

	// WithdrawalLimit menghitung limit harian: floor(penghasilan hari ini
	// × gig score). Sisanya jadi safety buffer.
	WithdrawalLimit(ctx context.Context, companyID, employeeID string) (WithdrawalLimitResponse, error)

	// ProcessInstantWithdrawal langsung final (COMPLETED) dan menaikkan
	// gig score; tidak ada tahap approval.
	ProcessInstantWithdrawal(ctx context.Context, companyID, employeeID string, req InstantWithdrawalRequest) (InstantWithdrawalResponse, error)

	GetEarnings(ctx context.Context, companyID, employeeID string) ([]EarningResponse, error)
	GetInstantWithdrawals(ctx context.Context, companyID, employeeID string) ([]InstantWithdrawalResponse, error)
}

type service struct {
	db           *gorm.DB
	repo         Repository
	companyRepo  company.Repository
	counterRepo  counter.Repository
	subscription subscription.Service
	outbox       kafka.OutboxRepository
	now          func() time.Time
	logger       *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	companyRepo company.Repository,
	counterRepo counter.Repository,
	subscriptionSvc subscription.Service,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("earning.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("earning.service")
	}
	return &service{
		db:           db,
		repo:         repo,
		companyRepo:  companyRepo,
		counterRepo:  counterRepo,
		subscription: subscriptionSvc,
		outbox:       outbox,
		now:          time.Now,
		logger:       l,
	}
}

// NewServiceWithClock is the test constructor with a fixed clock.
func NewServiceWithClock(
	db *gorm.DB,
	repo Repository,
	companyRepo company.Repository,
	counterRepo counter.Repository,
	subscriptionSvc subscription.Service,
	outbox kafka.OutboxRepository,
	now func() time.Time,
	logger ...*zap.Logger,
) Service {
	svc := NewService(db, repo, companyRepo, counterRepo, subscriptionSvc, outbox, logger...).(*service)
	svc.now = now
	return svc
}

func (s *service) Record(ctx context.Context, companyID, employeeID string, req RecordEarningRequest) (EarningResponse, error) {
	if req.Amount <= 0 {
		return EarningResponse{}, earningerrors.ErrInvalidAmount
	}
	if req.Source == "" {
		return EarningResponse{}, earningerrors.ErrSourceRequired
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		return EarningResponse{}, earningerrors.ErrInvalidEmployeeID
	}

	empl, err := s.findGigEmployee(ctx, companyID, employeeID)
	if err != nil {
		return EarningResponse{}, err
	}

	e := &Earning{
		ID:         uuid.New(),
		CompanyID:  empl.CompanyID,
		EmployeeID: empl.ID,
		Amount:     money.Paise(req.Amount),
		Source:     req.Source,
		EarnedAt:   s.now(),
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return EarningResponse{}, err
	}

	s.logger.Debug("earning recorded",
		zap.String("employee_id", employeeID),
		zap.Int64("amount", req.Amount),
		zap.String("source", req.Source),
	)

	return mapEarningResponse(*e), nil
}

func (s *service) RollingAverage(ctx context.Context, companyID, employeeID string) (RollingAverageResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return RollingAverageResponse{}, earningerrors.ErrInvalidEmployeeID
	}

	since := s.now().AddDate(0, 0, -rollingWindowDays)
	total, days, err := s.repo.SumSince(ctx, companyID, employeeID, since)
	if err != nil {
		return RollingAverageResponse{}, err
	}

	resp := RollingAverageResponse{
		EmployeeID:    employeeID,
		TotalEarnings: int64(total),
		DaysWorked:    days,
	}
	if days > 0 {
		// total / hari kerja × 7, dibulatkan ke bawah dalam paise.
		resp.WeeklyAverage = int64(total) * 7 / int64(days)
	}
	return resp, nil
}

func (s *service) WithdrawalLimit(ctx context.Context, companyID, employeeID string) (WithdrawalLimitResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return WithdrawalLimitResponse{}, earningerrors.ErrInvalidEmployeeID
	}

	empl, err := s.findGigEmployee(ctx, companyID, employeeID)
	if err != nil {
		return WithdrawalLimitResponse{}, err
	}

	avg, err := s.RollingAverage(ctx, companyID, employeeID)
	if err != nil {
		return WithdrawalLimitResponse{}, err
	}

	from, to := dayBounds(s.now())
	today, err := s.repo.SumBetween(ctx, companyID, employeeID, from, to)
	if err != nil {
		return WithdrawalLimitResponse{}, err
	}

	score := trust.ClampGig(empl.GigTrustScore)
	limit := dailyLimit(today, score)

	return WithdrawalLimitResponse{
		EmployeeID:    employeeID,
		DailyLimit:    int64(limit),
		WeeklyAverage: avg.WeeklyAverage,
		TodayEarnings: int64(today),
		TrustScore:    float64(score),
		SafetyBuffer:  int64(today - limit),
	}, nil
}

func (s *service) ProcessInstantWithdrawal(
	ctx context.Context,
	companyID, employeeID string,
	req InstantWithdrawalRequest,
) (InstantWithdrawalResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if req.Amount <= 0 {
		return InstantWithdrawalResponse{}, earningerrors.ErrInvalidAmount
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		return InstantWithdrawalResponse{}, earningerrors.ErrInvalidEmployeeID
	}

	if err := s.subscription.RequireActive(ctx, companyID, employeeID); err != nil {
		return InstantWithdrawalResponse{}, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return InstantWithdrawalResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.LockEmployee(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return InstantWithdrawalResponse{}, earningerrors.ErrEmployeeNotFound
		}
		return InstantWithdrawalResponse{}, err
	}

	if empl.CompensationModel != employee.ModelGig {
		return InstantWithdrawalResponse{}, earningerrors.ErrGigOnly
	}

	now := s.now()
	from, to := dayBounds(now)
	today, err := qtx.SumBetween(ctx, companyID, employeeID, from, to)
	if err != nil {
		return InstantWithdrawalResponse{}, err
	}

	score := trust.ClampGig(empl.GigTrustScore)
	limit := dailyLimit(today, score)
	amount := money.Paise(req.Amount)

	if amount > limit {
		s.logger.Warn("instant withdrawal over daily limit",
			zap.String("request_id", rid),
			zap.String("employee_id", employeeID),
			zap.Int64("requested", req.Amount),
			zap.Int64("daily_limit", int64(limit)),
		)
		return InstantWithdrawalResponse{}, earningerrors.ErrDailyLimitExceeded.WithDetails(map[string]int64{
			"daily_limit": int64(limit),
		})
	}

	seq, err := s.counterRepo.Next(ctx, companyID, "instant_withdrawal_reference")
	if err != nil {
		return InstantWithdrawalResponse{}, err
	}

	iw := &InstantWithdrawal{
		ID:                   uuid.New(),
		CompanyID:            empl.CompanyID,
		EmployeeID:           empl.ID,
		Reference:            fmt.Sprintf("IW-%06d", seq),
		Amount:               amount,
		Status:               StatusCompleted,
		DailyLimitSnapshot:   limit,
		SafetyBufferReserved: limit - amount,
		GigScoreSnapshot:     float64(score),
		ProcessedAt:          now,
	}

	if err := qtx.CreateInstantWithdrawal(ctx, iw); err != nil {
		return InstantWithdrawalResponse{}, err
	}

	// Penarikan yang berhasil menaikkan gig score, langsung di transaksi
	// yang sama.
	newScore := trust.AdjustGig(score, true)
	if err := qtx.UpdateGigScore(ctx, employeeID, newScore); err != nil {
		return InstantWithdrawalResponse{}, err
	}

	if err := s.companyRepo.WithTx(tx).IncrementDisbursed(ctx, empl.CompanyID, int64(amount)); err != nil {
		return InstantWithdrawalResponse{}, err
	}

	payload, err := json.Marshal(events.WithdrawalApprovedEvent{
		EventType:    "instant_withdrawal_completed",
		WithdrawalID: iw.ID.String(),
		EmployeeID:   empl.ID.String(),
		CompanyID:    empl.CompanyID.String(),
		AmountPaise:  int64(amount),
		Reference:    iw.Reference,
		OccurredAt:   now.UTC(),
	})
	if err != nil {
		return InstantWithdrawalResponse{}, err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     rid,
		AggregateType: "instant_withdrawal",
		AggregateID:   iw.ID.String(),
		EventType:     "instant_withdrawal_completed",
		Topic:         events.WithdrawalApprovedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		return InstantWithdrawalResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return InstantWithdrawalResponse{}, err
	}

	s.logger.Info("instant withdrawal completed",
		zap.String("request_id", rid),
		zap.String("reference", iw.Reference),
		zap.Int64("amount", req.Amount),
		zap.Float64("new_gig_score", float64(newScore)),
	)

	return InstantWithdrawalResponse{
		ID:            iw.ID.String(),
		Reference:     iw.Reference,
		Amount:        req.Amount,
		Status:        iw.Status,
		NewTrustScore: float64(newScore),
		ProcessedAt:   now,
	}, nil
}

func (s *service) GetEarnings(ctx context.Context, companyID, employeeID string) ([]EarningResponse, error) {
	since := s.now().AddDate(0, 0, -rollingWindowDays)
	list, err := s.repo.FindAllByEmployee(ctx, companyID, employeeID, since)
	if err != nil {
		return nil, err
	}
	res := make([]EarningResponse, len(list))
	for i, e := range list {
		res[i] = mapEarningResponse(e)
	}
	return res, nil
}

func (s *service) GetInstantWithdrawals(ctx context.Context, companyID, employeeID string) ([]InstantWithdrawalResponse, error) {
	list, err := s.repo.FindInstantWithdrawals(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}
	res := make([]InstantWithdrawalResponse, len(list))
	for i, iw := range list {
		res[i] = InstantWithdrawalResponse{
			ID:            iw.ID.String(),
			Reference:     iw.Reference,
			Amount:        int64(iw.Amount),
			Status:        iw.Status,
			NewTrustScore: iw.GigScoreSnapshot,
			ProcessedAt:   iw.ProcessedAt,
		}
	}
	return res, nil
}

func (s *service) findGigEmployee(ctx context.Context, companyID, employeeID string) (*employee.Employee, error) {
	empl, err := s.repo.FindEmployee(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, earningerrors.ErrEmployeeNotFound
		}
		return nil, err
	}
	if empl.CompensationModel != employee.ModelGig {
		return nil, earningerrors.ErrGigOnly
	}
	return empl, nil
}

// dayBounds mengembalikan [awal hari, awal hari berikutnya) pada zona
// waktu t.
func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

func dailyLimit(today money.Paise, score trust.GigScore) money.Paise {
	if today <= 0 {
		return 0
	}
	return money.Paise(math.Floor(float64(today) * float64(score)))
}

func mapEarningResponse(e Earning) EarningResponse {
	return EarningResponse{
		ID:         e.ID.String(),
		EmployeeID: e.EmployeeID.String(),
		Amount:     int64(e.Amount),
		Source:     e.Source,
		EarnedAt:   e.EarnedAt,
	}
}
