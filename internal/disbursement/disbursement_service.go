package disbursement

import (
	"context"
	"time"

	"zestpay/internal/events"
	"zestpay/internal/shared/money"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=disbursement_service.go -destination=mock/disbursement_service_mock.go -package=mock
type Service interface {
	// CreateFromEvent mencatat pencairan dari event withdrawal yang
	// disetujui. Unique index pada withdrawal_id menahan event ganda;
	// caller yang memutuskan men-skip duplikat.
	CreateFromEvent(ctx context.Context, event events.WithdrawalApprovedEvent) (*Disbursement, error)

	GetAllByEmployee(ctx context.Context, companyID, employeeID string) ([]Disbursement, error)
}

type service struct {
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("disbursement.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("disbursement.service")
	}
	return &service{repo: repo, now: time.Now, logger: l}
}

func (s *service) CreateFromEvent(ctx context.Context, event events.WithdrawalApprovedEvent) (*Disbursement, error) {
	companyID, err := uuid.Parse(event.CompanyID)
	if err != nil {
		return nil, err
	}
	employeeID, err := uuid.Parse(event.EmployeeID)
	if err != nil {
		return nil, err
	}
	withdrawalID, err := uuid.Parse(event.WithdrawalID)
	if err != nil {
		return nil, err
	}

	d := &Disbursement{
		ID:           uuid.New(),
		CompanyID:    companyID,
		EmployeeID:   employeeID,
		WithdrawalID: withdrawalID,
		Reference:    event.Reference,
		Amount:       money.Paise(event.AmountPaise),
		Status:       StatusProcessed,
		ProcessedAt:  s.now(),
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}

	s.logger.Info("disbursement recorded",
		zap.String("withdrawal_id", event.WithdrawalID),
		zap.String("reference", event.Reference),
		zap.Int64("amount", event.AmountPaise),
	)

	return d, nil
}

func (s *service) GetAllByEmployee(ctx context.Context, companyID, employeeID string) ([]Disbursement, error) {
	return s.repo.FindAllByEmployee(ctx, companyID, employeeID)
}
