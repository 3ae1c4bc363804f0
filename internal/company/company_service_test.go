package company_test

import (
	"context"
	"testing"

	"zestpay/internal/company"
	companyerrors "zestpay/internal/company/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeCompanyRepository struct {
	withTxFn      func(tx *gorm.DB) company.Repository
	createFn      func(ctx context.Context, c *company.Company) error
	getByIDFn     func(ctx context.Context, id uuid.UUID) (*company.Company, error)
	getByDomainFn func(ctx context.Context, domain string) (*company.Company, error)
	updateFn      func(ctx context.Context, c *company.Company) error
}

func (f *fakeCompanyRepository) WithTx(tx *gorm.DB) company.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeCompanyRepository) Create(ctx context.Context, c *company.Company) error {
	if f.createFn != nil {
		return f.createFn(ctx, c)
	}
	return nil
}

func (f *fakeCompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (*company.Company, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCompanyRepository) GetByDomain(ctx context.Context, domain string) (*company.Company, error) {
	if f.getByDomainFn != nil {
		return f.getByDomainFn(ctx, domain)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCompanyRepository) Update(ctx context.Context, c *company.Company) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, c)
	}
	return nil
}

func (f *fakeCompanyRepository) IncrementEmployees(ctx context.Context, id uuid.UUID, delta int64) error {
	return nil
}

func (f *fakeCompanyRepository) IncrementDisbursed(ctx context.Context, id uuid.UUID, amount int64) error {
	return nil
}

func TestCompanyService_Onboard(t *testing.T) {
	ctx := context.Background()

	t.Run("success - domain normalized", func(t *testing.T) {
		repo := &fakeCompanyRepository{}
		svc := company.NewService(repo)

		var created *company.Company
		repo.createFn = func(ctx context.Context, c *company.Company) error {
			created = c
			return nil
		}

		resp, err := svc.Onboard(ctx, company.OnboardCompanyRequest{
			Name:   "Acme Logistics",
			Domain: "  ACME.test  ",
			Email:  "Admin@Acme.test",
		})

		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.Equal(t, "acme.test", resp.Domain)
		assert.Equal(t, "admin@acme.test", created.Email)
		assert.True(t, created.IsActive)
	})

	t.Run("domain already registered", func(t *testing.T) {
		repo := &fakeCompanyRepository{}
		svc := company.NewService(repo)

		repo.getByDomainFn = func(ctx context.Context, domain string) (*company.Company, error) {
			return &company.Company{ID: uuid.New(), Domain: domain}, nil
		}

		_, err := svc.Onboard(ctx, company.OnboardCompanyRequest{
			Name:   "Acme Twin",
			Domain: "acme.test",
			Email:  "admin@acme.test",
		})

		assert.ErrorIs(t, err, companyerrors.ErrDomainTaken)
	})

	t.Run("empty domain", func(t *testing.T) {
		repo := &fakeCompanyRepository{}
		svc := company.NewService(repo)

		_, err := svc.Onboard(ctx, company.OnboardCompanyRequest{
			Name:  "Nameless",
			Email: "admin@nowhere.test",
		})

		assert.ErrorIs(t, err, companyerrors.ErrInvalidDomain)
	})
}

func TestCompanyService_ResolveDomain(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		repo := &fakeCompanyRepository{}
		svc := company.NewService(repo)

		id := uuid.New()
		repo.getByDomainFn = func(ctx context.Context, domain string) (*company.Company, error) {
			assert.Equal(t, "acme.test", domain)
			return &company.Company{ID: id, Name: "Acme", Domain: domain}, nil
		}

		resp, err := svc.ResolveDomain(ctx, "ACME.test")

		assert.NoError(t, err)
		assert.Equal(t, id.String(), resp.ID)
	})

	t.Run("unregistered domain", func(t *testing.T) {
		repo := &fakeCompanyRepository{}
		svc := company.NewService(repo)

		_, err := svc.ResolveDomain(ctx, "ghost.test")

		assert.ErrorIs(t, err, companyerrors.ErrDomainNotRegistered)
	})
}

func TestCompanyService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("malformed id", func(t *testing.T) {
		repo := &fakeCompanyRepository{}
		svc := company.NewService(repo)

		_, err := svc.GetByID(ctx, "not-a-uuid")

		assert.ErrorIs(t, err, companyerrors.ErrInvalidCompanyID)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &fakeCompanyRepository{}
		svc := company.NewService(repo)

		_, err := svc.GetByID(ctx, uuid.New().String())

		assert.ErrorIs(t, err, companyerrors.ErrCompanyNotFound)
	})
}
