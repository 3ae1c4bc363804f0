package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	autherrors "zestpay/internal/auth/errors"
	"zestpay/internal/company"
	companyerrors "zestpay/internal/company/errors"
	"zestpay/internal/config"
	"zestpay/internal/employee"
	employeeerrors "zestpay/internal/employee/errors"
	"zestpay/internal/rbac"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, resp AuthResponse, err error)

	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)

	GetMe(ctx context.Context, userID string) (*AuthResponse, error)

	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
}

type service struct {
	db           *gorm.DB
	repo         Repository
	rbac         rbac.Service
	employeeRepo employee.Repository
	companyRepo  company.Repository
	logger       *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	rbacService rbac.Service,
	employeeRepo employee.Repository,
	companyRepo company.Repository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		db:           db,
		repo:         repo,
		rbac:         rbacService,
		employeeRepo: employeeRepo,
		companyRepo:  companyRepo,
		logger:       l,
	}
}

func (s *service) Login(ctx context.Context, email, password string) (accessToken, refreshToken string, resp AuthResponse, err error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	// Load company policy untuk Casbin
	if err := s.rbac.LoadCompanyPolicy(user.CompanyID.String()); err != nil {
		return "", "", AuthResponse{}, err
	}

	accessToken, _ = s.generateToken(user, time.Minute*15)
	refreshToken, _ = s.generateToken(user, time.Hour*24*7)

	s.logger.Info("login success",
		zap.String("user_id", user.ID.String()),
		zap.String("company_id", user.CompanyID.String()),
	)

	return accessToken, refreshToken, mapAuthResponse(user), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(config.JWTSecret()), nil
	})

	if err != nil || !token.Valid {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrUserNotFound
	}

	newAccessToken, err := s.generateToken(user, time.Minute*15)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	newRefreshToken, err := s.generateToken(user, time.Hour*24*7)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return newAccessToken, newRefreshToken, mapAuthResponse(user), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, autherrors.ErrInvalidUserID
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, autherrors.ErrUserNotFound
	}

	resp := mapAuthResponse(u)
	return &resp, nil
}

// Register menerapkan batas kepercayaan domain: email hanya bisa mendaftar
// ke perusahaan yang domain emailnya sudah ter-onboard. Registrasi pertama
// untuk perusahaan baru menjadi ADMIN, sisanya harus lewat undangan.
func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return AuthResponse{}, companyerrors.ErrInvalidDomain
	}
	domain := email[at+1:]

	comp, err := s.companyRepo.GetByDomain(ctx, domain)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResponse{}, companyerrors.ErrDomainNotRegistered
		}
		return AuthResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return AuthResponse{}, tx.Error
	}
	defer tx.Rollback()

	user := &User{
		ID:        uuid.New(),
		CompanyID: comp.ID,
		Email:     email,
		Name:      req.Name,
		Password:  string(hashed),
		IsActive:  true,
	}

	empl, err := s.employeeRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if empl.CompanyID != comp.ID {
			return AuthResponse{}, companyerrors.ErrDomainNotRegistered
		}
		// Undangan selesai: karyawan invited jadi aktif saat registrasi.
		if empl.Status == employee.StatusInvited {
			empl.Status = employee.StatusActive
			if err := s.employeeRepo.WithTx(tx).Update(ctx, empl); err != nil {
				return AuthResponse{}, err
			}
		}
		eID := empl.ID
		user.EmployeeID = &eID
		user.Role = RoleEmployee

	case errors.Is(err, gorm.ErrRecordNotFound):
		hasAdmin, aerr := s.repo.HasAdmin(ctx, comp.ID)
		if aerr != nil {
			return AuthResponse{}, aerr
		}
		if hasAdmin {
			return AuthResponse{}, employeeerrors.ErrNotInvited
		}
		user.Role = RoleAdmin

	default:
		return AuthResponse{}, err
	}

	if err := s.repo.WithTx(tx).Create(ctx, user); err != nil {
		return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
	}

	if err := tx.Commit().Error; err != nil {
		return AuthResponse{}, err
	}

	if user.Role == RoleAdmin {
		if err := s.rbac.SeedCompanyDefaults(comp.ID.String(), user.ID.String()); err != nil {
			return AuthResponse{}, err
		}
	} else {
		if err := s.rbac.AssignRoleByName(comp.ID.String(), user.ID.String(), RoleEmployee); err != nil {
			return AuthResponse{}, err
		}
	}

	s.logger.Info("register success",
		zap.String("user_id", user.ID.String()),
		zap.String("company_id", comp.ID.String()),
		zap.String("role", user.Role),
	)

	return mapAuthResponse(user), nil
}

// reusable token generator
func (s *service) generateToken(user *User, expiry time.Duration) (string, error) {
	employeeID := ""
	if user.EmployeeID != nil {
		employeeID = user.EmployeeID.String()
	}

	claims := jwt.MapClaims{
		"user_id":     user.ID.String(),
		"company_id":  user.CompanyID.String(), // Dipakai middleware untuk scoping tenant
		"employee_id": employeeID,
		"role":        user.Role,
		"exp":         time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.JWTSecret()))
}

func mapAuthResponse(user *User) AuthResponse {
	employeeID := ""
	if user.EmployeeID != nil {
		employeeID = user.EmployeeID.String()
	}
	return AuthResponse{
		ID:         user.ID.String(),
		CompanyID:  user.CompanyID.String(),
		EmployeeID: employeeID,
		Email:      user.Email,
		Name:       user.Name,
		Role:       user.Role,
	}
}
