package company

import (
	"context"
	"errors"
	"strings"

	companyerrors "zestpay/internal/company/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=company_service.go -destination=mock/company_service_mock.go -package=mock
type Service interface {
	Onboard(ctx context.Context, req OnboardCompanyRequest) (CompanyResponse, error)
	GetByID(ctx context.Context, id string) (CompanyResponse, error)
	// ResolveDomain returns the company owning an email domain, or
	// ErrDomainNotRegistered. Used as the registration trust boundary.
	ResolveDomain(ctx context.Context, domain string) (CompanyResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Onboard(ctx context.Context, req OnboardCompanyRequest) (CompanyResponse, error) {
	domain := strings.ToLower(strings.TrimSpace(req.Domain))
	if domain == "" {
		return CompanyResponse{}, companyerrors.ErrInvalidDomain
	}

	if _, err := s.repo.GetByDomain(ctx, domain); err == nil {
		s.logger.Warn("onboard company domain already registered", zap.String("domain", domain))
		return CompanyResponse{}, companyerrors.ErrDomainTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return CompanyResponse{}, err
	}

	comp := &Company{
		ID:       uuid.New(),
		Name:     req.Name,
		Domain:   domain,
		Email:    strings.ToLower(req.Email),
		IsActive: true,
	}

	if err := s.repo.Create(ctx, comp); err != nil {
		s.logger.Error("onboard company persist failed", zap.Error(err))
		return CompanyResponse{}, err
	}

	s.logger.Info("onboard company success",
		zap.String("company_id", comp.ID.String()),
		zap.String("domain", domain),
	)

	return mapToResponse(*comp), nil
}

func (s *service) GetByID(ctx context.Context, id string) (CompanyResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return CompanyResponse{}, companyerrors.ErrInvalidCompanyID
	}

	comp, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CompanyResponse{}, companyerrors.ErrCompanyNotFound
		}
		return CompanyResponse{}, err
	}

	return mapToResponse(*comp), nil
}

func (s *service) ResolveDomain(ctx context.Context, domain string) (CompanyResponse, error) {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return CompanyResponse{}, companyerrors.ErrInvalidDomain
	}

	comp, err := s.repo.GetByDomain(ctx, domain)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CompanyResponse{}, companyerrors.ErrDomainNotRegistered
		}
		return CompanyResponse{}, err
	}

	return mapToResponse(*comp), nil
}

func mapToResponse(c Company) CompanyResponse {
	return CompanyResponse{
		ID:             c.ID.String(),
		Name:           c.Name,
		Domain:         c.Domain,
		Email:          c.Email,
		TotalEmployees: c.TotalEmployees,
		TotalDisbursed: c.TotalDisbursed,
		IsActive:       c.IsActive,
	}
}
