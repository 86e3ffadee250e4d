package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/fitlife/gymsched/internal/authz"
	"github.com/fitlife/gymsched/internal/entity"
	"github.com/fitlife/gymsched/internal/modules/user/dto"
	"github.com/fitlife/gymsched/internal/modules/user/repository"
	"github.com/fitlife/gymsched/internal/validation"
	"github.com/fitlife/gymsched/pkg/apperror"
	"github.com/fitlife/gymsched/pkg/ratelimit"
)

const birthdateLayout = "2006-01-02"

type UserService interface {
	SignUp(ctx context.Context, caller authz.Caller, req dto.SignUpRequest) (*entity.User, error)
	Login(ctx context.Context, caller authz.Caller, req dto.LoginRequest) (*dto.AuthResponse, error)
	ShowByID(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	ShowByEmail(ctx context.Context, email string) (*dto.UserResponse, error)
	Update(ctx context.Context, caller authz.Caller, req dto.UpdateUserRequest) (*entity.User, error)
	Delete(ctx context.Context, caller authz.Caller) (string, error)
}

type userService struct {
	repo     repository.UserRepository
	rdb      *redis.Client
	secret   string
	tokenTTL time.Duration
	lockout  time.Duration
}

func NewUserService(repo repository.UserRepository, rdb *redis.Client, secret string, tokenTTL, loginLockout time.Duration) UserService {
	if tokenTTL == 0 {
		tokenTTL = time.Hour
	}

	return &userService{
		repo:     repo,
		rdb:      rdb,
		secret:   secret,
		tokenTTL: tokenTTL,
		lockout:  loginLockout,
	}
}

func (s *userService) SignUp(ctx context.Context, caller authz.Caller, req dto.SignUpRequest) (*entity.User, error) {
	// An authenticated session cannot re-register; this is a bad request, not
	// a forbidden.
	if authz.RequireNotLoggedIn(caller) != authz.VerdictAllow {
		return nil, apperror.BadRequest("already authenticated")
	}

	birthdate, err := time.Parse(birthdateLayout, req.Birthdate)
	if err != nil {
		return nil, apperror.BadRequest("birthdate must be in YYYY-MM-DD format")
	}

	roleID := req.RoleID
	candidate := &entity.User{
		Name:      req.Name,
		Email:     req.Email,
		Birthdate: birthdate,
		RoleID:    &roleID,
	}

	res, err := validation.ValidateUser(ctx, candidate, s.repo)
	if err != nil {
		return nil, err
	}
	if verr := res.Err(); verr != nil {
		return nil, verr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	candidate.PasswordHash = string(hash)

	if err := s.repo.Create(ctx, candidate); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Validation(apperror.KindDuplicateEmail, "email", "email has already been taken")
		}
		return nil, err
	}

	return candidate, nil
}

func (s *userService) Login(ctx context.Context, caller authz.Caller, req dto.LoginRequest) (*dto.AuthResponse, error) {
	if authz.RequireNotLoggedIn(caller) != authz.VerdictAllow {
		return nil, apperror.BadRequest("already authenticated")
	}

	allowed, err := ratelimit.CheckAndSet(ctx, s.rdb, req.Email, "login", s.lockout)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperror.New(http.StatusTooManyRequests, apperror.KindRateLimited, "too many login attempts, try again shortly")
	}

	user, err := s.repo.UserByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("no account associated with this email")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.New(http.StatusUnauthorized, apperror.KindAuthRequired, "invalid email or password")
	}

	if err := ratelimit.Clear(ctx, s.rdb, req.Email, "login"); err != nil {
		return nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Email:       user.Email,
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokenTTL.Seconds()),
	}, nil
}

func (s *userService) ShowByID(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.repo.UserWithClasses(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}
	return buildUserResponse(user), nil
}

func (s *userService) ShowByEmail(ctx context.Context, email string) (*dto.UserResponse, error) {
	user, err := s.repo.UserWithClassesByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}
	return buildUserResponse(user), nil
}

func (s *userService) Update(ctx context.Context, caller authz.Caller, req dto.UpdateUserRequest) (*entity.User, error) {
	if err := authz.ErrForVerdict(authz.RequireLogin(caller)); err != nil {
		return nil, err
	}

	user, err := s.repo.UserByID(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Birthdate != nil {
		birthdate, err := time.Parse(birthdateLayout, *req.Birthdate)
		if err != nil {
			return nil, apperror.BadRequest("birthdate must be in YYYY-MM-DD format")
		}
		user.Birthdate = birthdate
	}
	if req.RoleID != nil {
		roleID := *req.RoleID
		user.RoleID = &roleID
	}

	res, err := validation.ValidateUser(ctx, user, s.repo)
	if err != nil {
		return nil, err
	}
	if verr := res.Err(); verr != nil {
		return nil, verr
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) Delete(ctx context.Context, caller authz.Caller) (string, error) {
	if err := authz.ErrForVerdict(authz.RequireLogin(caller)); err != nil {
		return "", err
	}

	user, err := s.repo.UserByID(ctx, caller.ID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", apperror.NotFound("user not found")
	}

	if err := s.repo.Delete(ctx, user); err != nil {
		return "", err
	}

	return "User " + user.Name + " deleted successfully", nil
}

func (s *userService) issueToken(user *entity.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

func buildUserResponse(user *entity.User) *dto.UserResponse {
	resp := &dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Birthdate: user.Birthdate.Format(birthdateLayout),
		Role:      user.Role.Name,
	}

	for _, class := range user.TaughtClasses {
		resp.TaughtClasses = append(resp.TaughtClasses, classSummary(&class))
	}
	for _, lesson := range user.Lessons {
		if lesson.GymClass != nil {
			resp.StudentClasses = append(resp.StudentClasses, classSummary(lesson.GymClass))
		}
	}

	return resp
}

func classSummary(class *entity.GymClass) dto.ClassSummary {
	summary := dto.ClassSummary{
		ID:        class.ID,
		Name:      class.Name,
		StartTime: class.StartTime,
		Duration:  class.Duration,
	}
	if class.Category != nil {
		summary.CategoryName = class.Category.Name
	}
	return summary
}
