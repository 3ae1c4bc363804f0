package rbac

import (
	"log"
	"sync"

	"github.com/casbin/casbin/v2"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	LoadCompanyPolicy(companyID string) error
	Enforce(req EnforceRequest) (bool, error)
	SeedCompanyDefaults(companyID, ownerUserID string) error
	AssignRoleByName(companyID, userID, roleName string) error
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

func NewService(repo Repository, enforcer *casbin.Enforcer) Service {
	return &service{
		repo:     repo,
		enforcer: enforcer,
	}
}

func (s *service) LoadCompanyPolicy(companyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadCompanyPolicyUnlocked(companyID)
}

func (s *service) loadCompanyPolicyUnlocked(companyID string) error {
	s.enforcer.ClearPolicy()

	// Load grouping policy
	userRoles, err := s.repo.GetUserRoles(companyID)
	if err != nil {
		return err
	}

	for _, ur := range userRoles {
		_, err := s.enforcer.AddGroupingPolicy(
			ur.UserID,
			ur.RoleID,
			companyID,
		)
		if err != nil {
			return err
		}
	}

	// Load permission policy
	rolePerms, err := s.repo.GetRolePermissions(companyID)
	if err != nil {
		return err
	}

	for _, rp := range rolePerms {
		_, err := s.enforcer.AddPolicy(
			rp.RoleID,
			companyID,
			rp.Resource,
			rp.Action,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *service) Enforce(req EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadCompanyPolicyUnlocked(req.CompanyID); err != nil {
		return false, err
	}

	allowed, err := s.enforcer.Enforce(
		req.UserID,
		req.CompanyID,
		req.Resource,
		req.Action,
	)
	if err != nil {
		log.Printf("rbac enforce result: user_id=%s company_id=%s resource=%s action=%s err=%v",
			req.UserID, req.CompanyID, req.Resource, req.Action, err)
		return false, err
	}

	return allowed, nil
}

// defaultPermissions is the permission catalogue seeded for every company.
// ADMIN gets the whole set; EMPLOYEE only the self-service subset.
var defaultPermissions = []struct {
	Resource string
	Action   string
	Label    string
	Category string
	Employee bool
}{
	{"company", "read", "View Company", "Company", false},
	{"company", "update", "Update Company", "Company", false},
	{"employee", "read", "View Employees", "Employees", false},
	{"employee", "create", "Add Employees", "Employees", false},
	{"employee", "update", "Update Employees", "Employees", false},
	{"employee", "delete", "Remove Employees", "Employees", false},
	{"withdrawal", "read", "View Withdrawals", "Withdrawals", true},
	{"withdrawal", "create", "Request Withdrawal", "Withdrawals", true},
	{"withdrawal", "approve", "Approve Withdrawals", "Withdrawals", false},
	{"repayment", "create", "Record Repayments", "Withdrawals", false},
	{"subscription", "read", "View Subscription", "Subscription", true},
	{"subscription", "create", "Activate Subscription", "Subscription", true},
	{"earning", "read", "View Earnings", "Earnings", true},
	{"earning", "create", "Record Earnings", "Earnings", true},
	{"role", "read", "View Roles", "Access", false},
	{"role", "manage", "Manage Roles", "Access", false},
}

// SeedCompanyDefaults provisions the ADMIN and EMPLOYEE roles for a fresh
// company and grants the owner the ADMIN role.
func (s *service) SeedCompanyDefaults(companyID, ownerUserID string) error {
	adminRole, err := s.ensureRole(companyID, "ADMIN", "Full access")
	if err != nil {
		return err
	}
	employeeRole, err := s.ensureRole(companyID, "EMPLOYEE", "Self-service access")
	if err != nil {
		return err
	}

	var adminPerms, employeePerms []string
	for _, p := range defaultPermissions {
		id, err := s.repo.EnsurePermission(p.Resource, p.Action, p.Label, p.Category)
		if err != nil {
			return err
		}
		adminPerms = append(adminPerms, id)
		if p.Employee {
			employeePerms = append(employeePerms, id)
		}
	}

	if err := s.repo.UpdateRolePermissions(adminRole.ID, adminPerms); err != nil {
		return err
	}
	if err := s.repo.UpdateRolePermissions(employeeRole.ID, employeePerms); err != nil {
		return err
	}

	if err := s.repo.AssignRole(ownerUserID, adminRole.ID); err != nil {
		return err
	}

	return s.LoadCompanyPolicy(companyID)
}

func (s *service) AssignRoleByName(companyID, userID, roleName string) error {
	role, err := s.repo.GetRoleByName(companyID, roleName)
	if err != nil {
		return err
	}
	if err := s.repo.AssignRole(userID, role.ID); err != nil {
		return err
	}
	return s.LoadCompanyPolicy(companyID)
}

func (s *service) ensureRole(companyID, name, description string) (*RoleRow, error) {
	role, err := s.repo.GetRoleByName(companyID, name)
	if err == nil {
		return role, nil
	}

	role = &RoleRow{CompanyID: companyID, Name: name, Description: description}
	if err := s.repo.CreateRole(role); err != nil {
		return nil, err
	}
	return role, nil
}
