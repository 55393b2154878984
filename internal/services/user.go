package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/jeevandwaar-backend/internal/data/repos"
	types "github.com/yungbote/jeevandwaar-backend/internal/domain"
	"github.com/yungbote/jeevandwaar-backend/internal/domain/catalog"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/apierr"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/dbctx"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/logger"
)

// PasswordCost is the bcrypt cost for new users. Tests lower it.
var PasswordCost = bcrypt.DefaultCost

type CreateUserInput struct {
	Username          string
	Password          string
	Email             *string
	Phone             *string
	PreferredLanguage *string
}

type AddUserPolicyInput struct {
	PolicyID        string
	NextPremiumDate *time.Time
	NomineeDetails  json.RawMessage
}

type UserService interface {
	Create(dbc dbctx.Context, in CreateUserInput) (*types.User, error)
	Get(dbc dbctx.Context, id string) (*types.User, error)
	ListPolicies(dbc dbctx.Context, userID string) ([]*types.UserPolicy, error)
	AddPolicy(dbc dbctx.Context, userID string, in AddUserPolicyInput) (*types.UserPolicy, error)
	UpdatePolicyStatus(dbc dbctx.Context, userPolicyID, status string) (*types.UserPolicy, error)
	UpdateNominee(dbc dbctx.Context, userPolicyID string, nominee json.RawMessage) (*types.UserPolicy, error)
}

type userService struct {
	db             *gorm.DB
	log            *logger.Logger
	userRepo       repos.UserRepo
	policyRepo     repos.PolicyRepo
	userPolicyRepo repos.UserPolicyRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, policyRepo repos.PolicyRepo, userPolicyRepo repos.UserPolicyRepo) UserService {
	return &userService{
		db:             db,
		log:            log.With("service", "UserService"),
		userRepo:       userRepo,
		policyRepo:     policyRepo,
		userPolicyRepo: userPolicyRepo,
	}
}

func (s *userService) Create(dbc dbctx.Context, in CreateUserInput) (*types.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, apierr.BadRequest("username and password are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), PasswordCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &types.User{
		Username: username,
		Password: string(hash),
		Email:    in.Email,
		Phone:    in.Phone,
	}
	if in.PreferredLanguage != nil {
		u.PreferredLanguage = *in.PreferredLanguage
	}
	created, err := s.userRepo.Create(dbc, u)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, apierr.Conflict("username already exists")
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

func (s *userService) Get(dbc dbctx.Context, id string) (*types.User, error) {
	u, err := s.userRepo.GetByID(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return nil, apierr.NotFound("user")
	}
	return u, nil
}

func (s *userService) ListPolicies(dbc dbctx.Context, userID string) ([]*types.UserPolicy, error) {
	if _, err := s.Get(dbc, userID); err != nil {
		return nil, err
	}
	out, err := s.userPolicyRepo.ListByUser(dbc, userID)
	if err != nil {
		return nil, fmt.Errorf("list user policies: %w", err)
	}
	if out == nil {
		out = []*types.UserPolicy{}
	}
	return out, nil
}

// AddPolicy links an existing user to an existing active policy with status active.
func (s *userService) AddPolicy(dbc dbctx.Context, userID string, in AddUserPolicyInput) (*types.UserPolicy, error) {
	if _, err := s.Get(dbc, userID); err != nil {
		return nil, err
	}
	p, err := s.policyRepo.GetByID(dbc, in.PolicyID)
	if err != nil {
		return nil, fmt.Errorf("get policy: %w", err)
	}
	if p == nil || !p.IsActive {
		return nil, apierr.NotFound("policy")
	}
	nominee := datatypes.JSON([]byte("{}"))
	if len(in.NomineeDetails) > 0 {
		nominee = datatypes.JSON(in.NomineeDetails)
	}
	link := &types.UserPolicy{
		UserID:          userID,
		PolicyID:        p.ID,
		Status:          catalog.StatusActive,
		StartDate:       time.Now().UTC(),
		NextPremiumDate: in.NextPremiumDate,
		NomineeDetails:  nominee,
	}
	created, err := s.userPolicyRepo.Create(dbc, link)
	if err != nil {
		return nil, fmt.Errorf("create user policy: %w", err)
	}
	return created, nil
}

func (s *userService) UpdatePolicyStatus(dbc dbctx.Context, userPolicyID, status string) (*types.UserPolicy, error) {
	switch status {
	case catalog.StatusActive, catalog.StatusLapsed, catalog.StatusClaimed:
	default:
		return nil, apierr.BadRequest("status must be one of active, lapsed, claimed")
	}
	matched, err := s.userPolicyRepo.UpdateStatus(dbc, userPolicyID, status)
	if err != nil {
		return nil, fmt.Errorf("update user policy status: %w", err)
	}
	if !matched {
		return nil, apierr.NotFound("user policy")
	}
	return s.reloadLink(dbc, userPolicyID)
}

func (s *userService) UpdateNominee(dbc dbctx.Context, userPolicyID string, nominee json.RawMessage) (*types.UserPolicy, error) {
	if len(nominee) == 0 {
		return nil, apierr.BadRequest("nomineeDetails is required")
	}
	matched, err := s.userPolicyRepo.UpdateNominee(dbc, userPolicyID, datatypes.JSON(nominee))
	if err != nil {
		return nil, fmt.Errorf("update nominee: %w", err)
	}
	if !matched {
		return nil, apierr.NotFound("user policy")
	}
	return s.reloadLink(dbc, userPolicyID)
}

func (s *userService) reloadLink(dbc dbctx.Context, id string) (*types.UserPolicy, error) {
	link, err := s.userPolicyRepo.GetByID(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("get user policy: %w", err)
	}
	if link == nil {
		return nil, apierr.NotFound("user policy")
	}
	return link, nil
}
