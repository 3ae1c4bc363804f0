package subscription

import (
	"context"
	"errors"
	"time"

	subscriptionerrors "zestpay/internal/subscription/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=subscription_service.go -destination=mock/subscription_service_mock.go -package=mock
type Service interface {
	// Status melaporkan keadaan langganan dan sekaligus mengoreksi
	// langganan yang sudah lewat masa berlakunya (lazy expiry).
	Status(ctx context.Context, companyID, employeeID string) (SubscriptionStatusResponse, error)
	Activate(ctx context.Context, companyID, employeeID string) (SubscriptionStatusResponse, error)
	// RequireActive dipakai gate withdrawal: error kalau langganan mati.
	RequireActive(ctx context.Context, companyID, employeeID string) error
}

type service struct {
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("subscription.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("subscription.service")
	}
	return &service{repo: repo, now: time.Now, logger: l}
}

// NewServiceWithClock injects a deterministic clock for expiry tests.
func NewServiceWithClock(repo Repository, now func() time.Time, logger ...*zap.Logger) Service {
	svc := NewService(repo, logger...).(*service)
	svc.now = now
	return svc
}

func (s *service) Status(ctx context.Context, companyID, employeeID string) (SubscriptionStatusResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return SubscriptionStatusResponse{}, subscriptionerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByIDAndCompany(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SubscriptionStatusResponse{}, subscriptionerrors.ErrEmployeeNotFound
		}
		return SubscriptionStatusResponse{}, err
	}

	active := empl.HasSubscription
	if active && empl.SubscriptionExpiresAt != nil && empl.SubscriptionExpiresAt.Before(s.now()) {
		// Masa berlaku habis: flip di DB saat dibaca, tidak pakai cron.
		active = false
		if err := s.repo.SetSubscription(ctx, employeeID, false, empl.SubscriptionPaidAt, empl.SubscriptionExpiresAt); err != nil {
			return SubscriptionStatusResponse{}, err
		}
		s.logger.Info("subscription expired on read",
			zap.String("employee_id", employeeID),
			zap.Time("expired_at", *empl.SubscriptionExpiresAt),
		)
	}

	return SubscriptionStatusResponse{
		EmployeeID: employeeID,
		Active:     active,
		PaidAt:     empl.SubscriptionPaidAt,
		ExpiresAt:  empl.SubscriptionExpiresAt,
	}, nil
}

func (s *service) Activate(ctx context.Context, companyID, employeeID string) (SubscriptionStatusResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return SubscriptionStatusResponse{}, subscriptionerrors.ErrInvalidEmployeeID
	}

	if _, err := s.repo.FindByIDAndCompany(ctx, companyID, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SubscriptionStatusResponse{}, subscriptionerrors.ErrEmployeeNotFound
		}
		return SubscriptionStatusResponse{}, err
	}

	paidAt := s.now()
	// Satu bulan kalender, bukan 30 hari: 31 Jan -> 28 Feb dan sejenisnya
	// mengikuti normalisasi AddDate.
	expiresAt := paidAt.AddDate(0, 1, 0)

	if err := s.repo.SetSubscription(ctx, employeeID, true, &paidAt, &expiresAt); err != nil {
		return SubscriptionStatusResponse{}, err
	}

	s.logger.Info("subscription activated",
		zap.String("employee_id", employeeID),
		zap.Time("expires_at", expiresAt),
	)

	return SubscriptionStatusResponse{
		EmployeeID: employeeID,
		Active:     true,
		PaidAt:     &paidAt,
		ExpiresAt:  &expiresAt,
	}, nil
}

func (s *service) RequireActive(ctx context.Context, companyID, employeeID string) error {
	status, err := s.Status(ctx, companyID, employeeID)
	if err != nil {
		return err
	}
	if !status.Active {
		return subscriptionerrors.ErrSubscriptionRequired
	}
	return nil
}
