package withdrawal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"zestpay/internal/company"
	"zestpay/internal/employee"
	"zestpay/internal/events"
	"zestpay/internal/messaging/kafka"
	"zestpay/internal/shared/contextutil"
	"zestpay/internal/shared/counter"
	"zestpay/internal/shared/money"
	"zestpay/internal/subscription"
	"zestpay/internal/trust"
	withdrawalerrors "zestpay/internal/withdrawal/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=withdrawal_service.go -destination=mock/withdrawal_service_mock.go -package=mock
type Service interface {
	// Availability menghitung plafon dan sisa limit saat ini (read-only).
	Availability(ctx context.Context, companyID, employeeID string) (AvailabilityResponse, error)

	// Request membuat pengajuan pending. Limit dihitung ulang di dalam
	// transaksi dengan baris karyawan terkunci.
	Request(ctx context.Context, companyID, employeeID string, req RequestWithdrawalRequest) (WithdrawalResponse, error)

	// Approve hanya untuk status pending; setelahnya keputusan final.
	Approve(ctx context.Context, companyID, withdrawalID string) (WithdrawalResponse, error)
	Reject(ctx context.Context, companyID, withdrawalID string, req RejectWithdrawalRequest) (WithdrawalResponse, error)

	RecordRepayment(ctx context.Context, companyID string, req RecordRepaymentRequest) (RepaymentResponse, error)

	GetAllByEmployee(ctx context.Context, companyID, employeeID string) ([]WithdrawalResponse, error)
	GetAllByCompany(ctx context.Context, companyID string, filter WithdrawalQueryFilter) ([]WithdrawalResponse, error)
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
	l := zap.L().Named("withdrawal.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("withdrawal.service")
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

func (s *service) Availability(ctx context.Context, companyID, employeeID string) (AvailabilityResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return AvailabilityResponse{}, withdrawalerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindEmployee(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AvailabilityResponse{}, withdrawalerrors.ErrEmployeeNotFound
		}
		return AvailabilityResponse{}, err
	}

	return buildAvailability(empl), nil
}

func (s *service) Request(
	ctx context.Context,
	companyID, employeeID string,
	req RequestWithdrawalRequest,
) (WithdrawalResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("withdrawal requested",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
		zap.Int64("amount", req.Amount),
	)

	if req.Amount <= 0 {
		return WithdrawalResponse{}, withdrawalerrors.ErrInvalidAmount
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		return WithdrawalResponse{}, withdrawalerrors.ErrInvalidEmployeeID
	}

	// Gate langganan dicek sebelum buka transaksi; lazy expiry bisa
	// menulis flip sendiri.
	if err := s.subscription.RequireActive(ctx, companyID, employeeID); err != nil {
		return WithdrawalResponse{}, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return WithdrawalResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.LockEmployee(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return WithdrawalResponse{}, withdrawalerrors.ErrEmployeeNotFound
		}
		return WithdrawalResponse{}, err
	}

	if empl.CompensationModel != employee.ModelSalaried {
		return WithdrawalResponse{}, withdrawalerrors.ErrSalariedOnly
	}

	// Hitung ulang dengan baris terkunci: dua request paralel tidak bisa
	// sama-sama lolos cek limit.
	ceiling := Ceiling(money.Paise(empl.MonthlySalary), empl.TrustScore)
	available := Available(ceiling, money.Paise(empl.TotalWithdrawn))
	amount := money.Paise(req.Amount)

	if amount > available {
		s.logger.Warn("withdrawal limit exceeded",
			zap.String("request_id", rid),
			zap.String("employee_id", employeeID),
			zap.Int64("requested", req.Amount),
			zap.Int64("available", int64(available)),
		)
		return WithdrawalResponse{}, withdrawalerrors.ErrLimitExceeded.WithDetails(map[string]int64{
			"available": int64(available),
		})
	}

	seq, err := s.counterRepo.Next(ctx, companyID, "withdrawal_reference")
	if err != nil {
		return WithdrawalResponse{}, err
	}

	w := &Withdrawal{
		ID:                    uuid.New(),
		CompanyID:             empl.CompanyID,
		EmployeeID:            empl.ID,
		Reference:             fmt.Sprintf("WD-%06d", seq),
		Amount:                amount,
		Reason:                req.Reason,
		Status:                StatusPending,
		MonthlySalarySnapshot: money.Paise(empl.MonthlySalary),
		TrustScoreSnapshot:    empl.TrustScore,
		MaxAllowedSnapshot:    ceiling,
		RequestedAt:           s.now(),
	}

	if err := qtx.Create(ctx, w); err != nil {
		s.logger.Error("persist withdrawal failed", zap.String("request_id", rid), zap.Error(err))
		return WithdrawalResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return WithdrawalResponse{}, err
	}

	s.logger.Info("withdrawal created",
		zap.String("request_id", rid),
		zap.String("withdrawal_id", w.ID.String()),
		zap.String("reference", w.Reference),
	)

	return mapWithdrawalResponse(*w), nil
}

func (s *service) Approve(ctx context.Context, companyID, withdrawalID string) (WithdrawalResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return WithdrawalResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	w, err := qtx.FindByIDAndCompany(ctx, companyID, withdrawalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return WithdrawalResponse{}, withdrawalerrors.ErrWithdrawalNotFound
		}
		return WithdrawalResponse{}, err
	}

	// Approve/reject hanya berlaku sekali; replay dapat error state.
	if w.Status != StatusPending {
		return WithdrawalResponse{}, withdrawalerrors.ErrNotPending
	}

	now := s.now()
	w.Status = StatusApproved
	w.ApprovedAt = &now

	if err := qtx.Update(ctx, w); err != nil {
		return WithdrawalResponse{}, err
	}

	// Running total baru berubah saat approve, bukan saat request.
	if err := qtx.IncrementWithdrawn(ctx, w.EmployeeID.String(), w.Amount); err != nil {
		return WithdrawalResponse{}, err
	}

	if err := s.companyRepo.WithTx(tx).IncrementDisbursed(ctx, w.CompanyID, int64(w.Amount)); err != nil {
		return WithdrawalResponse{}, err
	}

	payload, err := json.Marshal(events.WithdrawalApprovedEvent{
		EventType:    "withdrawal_approved",
		WithdrawalID: w.ID.String(),
		EmployeeID:   w.EmployeeID.String(),
		CompanyID:    w.CompanyID.String(),
		AmountPaise:  int64(w.Amount),
		Reference:    w.Reference,
		OccurredAt:   now.UTC(),
	})
	if err != nil {
		return WithdrawalResponse{}, err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     rid,
		AggregateType: "withdrawal",
		AggregateID:   w.ID.String(),
		EventType:     "withdrawal_approved",
		Topic:         events.WithdrawalApprovedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		return WithdrawalResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return WithdrawalResponse{}, err
	}

	s.logger.Info("withdrawal approved",
		zap.String("request_id", rid),
		zap.String("withdrawal_id", w.ID.String()),
		zap.Int64("amount", int64(w.Amount)),
	)

	return mapWithdrawalResponse(*w), nil
}

func (s *service) Reject(
	ctx context.Context,
	companyID, withdrawalID string,
	req RejectWithdrawalRequest,
) (WithdrawalResponse, error) {
	if req.Reason == "" {
		return WithdrawalResponse{}, withdrawalerrors.ErrRejectionReasonRequired
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return WithdrawalResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	w, err := qtx.FindByIDAndCompany(ctx, companyID, withdrawalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return WithdrawalResponse{}, withdrawalerrors.ErrWithdrawalNotFound
		}
		return WithdrawalResponse{}, err
	}

	if w.Status != StatusPending {
		return WithdrawalResponse{}, withdrawalerrors.ErrNotPending
	}

	now := s.now()
	w.Status = StatusRejected
	w.RejectedAt = &now
	w.RejectionReason = req.Reason

	if err := qtx.Update(ctx, w); err != nil {
		return WithdrawalResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return WithdrawalResponse{}, err
	}

	s.logger.Info("withdrawal rejected",
		zap.String("withdrawal_id", w.ID.String()),
		zap.String("reason", req.Reason),
	)

	return mapWithdrawalResponse(*w), nil
}

func (s *service) RecordRepayment(
	ctx context.Context,
	companyID string,
	req RecordRepaymentRequest,
) (RepaymentResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if req.Amount <= 0 {
		return RepaymentResponse{}, withdrawalerrors.ErrInvalidAmount
	}
	if _, err := uuid.Parse(req.EmployeeID); err != nil {
		return RepaymentResponse{}, withdrawalerrors.ErrInvalidEmployeeID
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return RepaymentResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.LockEmployee(ctx, companyID, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RepaymentResponse{}, withdrawalerrors.ErrEmployeeNotFound
		}
		return RepaymentResponse{}, err
	}

	newScore := trust.AdjustSalaried(empl.TrustScore, req.OnTime, empl.OnTimeRepayments, empl.LateRepayments)

	now := s.now()
	rp := &Repayment{
		ID:         uuid.New(),
		CompanyID:  empl.CompanyID,
		EmployeeID: empl.ID,
		Amount:     money.Paise(req.Amount),
		OnTime:     req.OnTime,
		RecordedAt: now,
	}

	if err := qtx.CreateRepayment(ctx, rp); err != nil {
		return RepaymentResponse{}, err
	}

	if err := qtx.ApplyRepayment(ctx, req.EmployeeID, money.Paise(req.Amount), req.OnTime, newScore); err != nil {
		return RepaymentResponse{}, err
	}

	payload, err := json.Marshal(events.RepaymentRecordedEvent{
		EventType:     "repayment_recorded",
		EmployeeID:    empl.ID.String(),
		CompanyID:     empl.CompanyID.String(),
		AmountPaise:   req.Amount,
		OnTime:        req.OnTime,
		NewTrustScore: int(newScore),
		OccurredAt:    now.UTC(),
	})
	if err != nil {
		return RepaymentResponse{}, err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     rid,
		AggregateType: "repayment",
		AggregateID:   rp.ID.String(),
		EventType:     "repayment_recorded",
		Topic:         events.RepaymentRecordedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		return RepaymentResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return RepaymentResponse{}, err
	}

	s.logger.Info("repayment recorded",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.Int64("amount", req.Amount),
		zap.Bool("on_time", req.OnTime),
		zap.Int("new_trust_score", int(newScore)),
	)

	return RepaymentResponse{
		ID:            rp.ID.String(),
		EmployeeID:    rp.EmployeeID.String(),
		Amount:        req.Amount,
		OnTime:        req.OnTime,
		NewTrustScore: int(newScore),
		RecordedAt:    now,
	}, nil
}

func (s *service) GetAllByEmployee(ctx context.Context, companyID, employeeID string) ([]WithdrawalResponse, error) {
	list, err := s.repo.FindAllByEmployee(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}
	return mapWithdrawalListResponse(list), nil
}

func (s *service) GetAllByCompany(ctx context.Context, companyID string, filter WithdrawalQueryFilter) ([]WithdrawalResponse, error) {
	list, err := s.repo.FindAllByCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	return mapWithdrawalListResponse(list), nil
}

func buildAvailability(empl *employee.Employee) AvailabilityResponse {
	ceiling := Ceiling(money.Paise(empl.MonthlySalary), empl.TrustScore)
	available := Available(ceiling, money.Paise(empl.TotalWithdrawn))
	return AvailabilityResponse{
		EmployeeID:     empl.ID.String(),
		MonthlySalary:  empl.MonthlySalary,
		TrustScore:     int(empl.TrustScore),
		Ceiling:        int64(ceiling),
		TotalWithdrawn: empl.TotalWithdrawn,
		Available:      int64(available),
	}
}

func mapWithdrawalResponse(w Withdrawal) WithdrawalResponse {
	return WithdrawalResponse{
		ID:              w.ID.String(),
		EmployeeID:      w.EmployeeID.String(),
		Reference:       w.Reference,
		Amount:          int64(w.Amount),
		Reason:          w.Reason,
		Status:          w.Status,
		MonthlySalary:   int64(w.MonthlySalarySnapshot),
		TrustScore:      int(w.TrustScoreSnapshot),
		MaxAllowed:      int64(w.MaxAllowedSnapshot),
		RequestedAt:     w.RequestedAt,
		ApprovedAt:      w.ApprovedAt,
		RejectedAt:      w.RejectedAt,
		RejectionReason: w.RejectionReason,
	}
}

func mapWithdrawalListResponse(list []Withdrawal) []WithdrawalResponse {
	res := make([]WithdrawalResponse, len(list))
	for i, w := range list {
		res[i] = mapWithdrawalResponse(w)
	}
	return res
}
