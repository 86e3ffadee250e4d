package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/fitlife/gymsched/internal/authz"
	"github.com/fitlife/gymsched/internal/entity"
	"github.com/fitlife/gymsched/internal/modules/user/dto"
	"github.com/fitlife/gymsched/pkg/apperror"
)

const testSecret = "test-secret"

// =============================================================================
// Mock repository
// =============================================================================

type mockUserRepository struct {
	createFunc          func(ctx context.Context, user *entity.User) error
	updateFunc          func(ctx context.Context, user *entity.User) error
	deleteFunc          func(ctx context.Context, user *entity.User) error
	userByIDFunc        func(ctx context.Context, id uuid.UUID) (*entity.User, error)
	userByEmailFunc     func(ctx context.Context, email string) (*entity.User, error)
	userWithClassesFunc func(ctx context.Context, id uuid.UUID) (*entity.User, error)
	roleByIDFunc        func(ctx context.Context, id uint) (*entity.Role, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return errors.New("not implemented")
}

func (m *mockUserRepository) Update(ctx context.Context, user *entity.User) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, user)
	}
	return errors.New("not implemented")
}

func (m *mockUserRepository) Delete(ctx context.Context, user *entity.User) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, user)
	}
	return errors.New("not implemented")
}

func (m *mockUserRepository) UserByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if m.userByIDFunc != nil {
		return m.userByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepository) UserByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.userByEmailFunc != nil {
		return m.userByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepository) UserWithClasses(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if m.userWithClassesFunc != nil {
		return m.userWithClassesFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepository) UserWithClassesByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, errors.New("not implemented")
}

func (m *mockUserRepository) RoleByID(ctx context.Context, id uint) (*entity.Role, error) {
	if m.roleByIDFunc != nil {
		return m.roleByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepository) RoleByName(ctx context.Context, name string) (*entity.Role, error) {
	return nil, errors.New("not implemented")
}

// =============================================================================
// Fixtures
// =============================================================================

func signUpRepo() *mockUserRepository {
	return &mockUserRepository{
		roleByIDFunc: func(ctx context.Context, id uint) (*entity.Role, error) {
			if id == 3 {
				return &entity.Role{ID: 3, Name: "student"}, nil
			}
			return nil, nil
		},
		createFunc: func(ctx context.Context, user *entity.User) error {
			return nil
		},
	}
}

func validSignUp() dto.SignUpRequest {
	return dto.SignUpRequest{
		Name:      "Maria Silva",
		Email:     "maria@example.com",
		Password:  "secret1",
		Birthdate: "1995-03-12",
		RoleID:    3,
	}
}

func kindOf(t *testing.T, err error) apperror.Kind {
	t.Helper()
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %v", err)
	}
	return appErr.Kind
}

// =============================================================================
// SignUp
// =============================================================================

func TestSignUp_Valid(t *testing.T) {
	svc := NewUserService(signUpRepo(), nil, testSecret, time.Hour, 0)

	user, err := svc.SignUp(context.Background(), authz.Anonymous(), validSignUp())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.PasswordHash == "" || user.PasswordHash == "secret1" {
		t.Error("password must be stored hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")); err != nil {
		t.Errorf("stored hash does not match the password: %v", err)
	}
}

func TestSignUp_AuthenticatedCaller(t *testing.T) {
	svc := NewUserService(signUpRepo(), nil, testSecret, time.Hour, 0)
	caller := authz.Authenticated(uuid.New(), authz.RoleStudent)

	_, err := svc.SignUp(context.Background(), caller, validSignUp())
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 400 {
		t.Fatalf("got %v, want a 400", err)
	}
}

func TestSignUp_BadBirthdateFormat(t *testing.T) {
	svc := NewUserService(signUpRepo(), nil, testSecret, time.Hour, 0)

	req := validSignUp()
	req.Birthdate = "12/03/1995"
	_, err := svc.SignUp(context.Background(), authz.Anonymous(), req)
	if got := kindOf(t, err); got != apperror.KindInvalidPayload {
		t.Errorf("got kind %s, want %s", got, apperror.KindInvalidPayload)
	}
}

func TestSignUp_UnknownRole(t *testing.T) {
	svc := NewUserService(signUpRepo(), nil, testSecret, time.Hour, 0)

	req := validSignUp()
	req.RoleID = 99
	_, err := svc.SignUp(context.Background(), authz.Anonymous(), req)
	if got := kindOf(t, err); got != apperror.KindInvalidRoleReference {
		t.Errorf("got kind %s, want %s", got, apperror.KindInvalidRoleReference)
	}
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	repo := signUpRepo()
	repo.userByEmailFunc = func(ctx context.Context, email string) (*entity.User, error) {
		return &entity.User{ID: uuid.New(), Email: email}, nil
	}
	svc := NewUserService(repo, nil, testSecret, time.Hour, 0)

	_, err := svc.SignUp(context.Background(), authz.Anonymous(), validSignUp())
	if got := kindOf(t, err); got != apperror.KindDuplicateEmail {
		t.Errorf("got kind %s, want %s", got, apperror.KindDuplicateEmail)
	}
}

// =============================================================================
// Login
// =============================================================================

func loginRepo(t *testing.T, password string) (*mockUserRepository, *entity.User) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing fixture password: %v", err)
	}
	user := &entity.User{
		ID:           uuid.New(),
		Name:         "Maria Silva",
		Email:        "maria@example.com",
		PasswordHash: string(hash),
	}
	repo := &mockUserRepository{
		userByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
			if email == user.Email {
				return user, nil
			}
			return nil, nil
		},
	}
	return repo, user
}

func TestLogin_Valid(t *testing.T) {
	repo, user := loginRepo(t, "secret1")
	svc := NewUserService(repo, nil, testSecret, time.Hour, 0)

	resp, err := svc.Login(context.Background(), authz.Anonymous(), dto.LoginRequest{
		Email:    user.Email,
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.TokenType != "Bearer" {
		t.Errorf("got token type %q, want Bearer", resp.TokenType)
	}
	if resp.ExpiresIn != 3600 {
		t.Errorf("got expires_in %d, want 3600", resp.ExpiresIn)
	}

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(resp.AccessToken, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.Subject != user.ID.String() {
		t.Errorf("token subject = %q, want %q", claims.Subject, user.ID)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repo, user := loginRepo(t, "secret1")
	svc := NewUserService(repo, nil, testSecret, time.Hour, 0)

	_, err := svc.Login(context.Background(), authz.Anonymous(), dto.LoginRequest{
		Email:    user.Email,
		Password: "wrong",
	})
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 401 {
		t.Fatalf("got %v, want a 401", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo, _ := loginRepo(t, "secret1")
	svc := NewUserService(repo, nil, testSecret, time.Hour, 0)

	_, err := svc.Login(context.Background(), authz.Anonymous(), dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret1",
	})
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 404 {
		t.Fatalf("got %v, want a 404", err)
	}
}

func TestLogin_AuthenticatedCaller(t *testing.T) {
	repo, user := loginRepo(t, "secret1")
	svc := NewUserService(repo, nil, testSecret, time.Hour, 0)
	caller := authz.Authenticated(user.ID, authz.RoleStudent)

	_, err := svc.Login(context.Background(), caller, dto.LoginRequest{
		Email:    user.Email,
		Password: "secret1",
	})
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 400 {
		t.Fatalf("got %v, want a 400", err)
	}
}

// =============================================================================
// Show / Update / Delete
// =============================================================================

func TestShowByID_Miss(t *testing.T) {
	svc := NewUserService(&mockUserRepository{}, nil, testSecret, time.Hour, 0)

	_, err := svc.ShowByID(context.Background(), uuid.New())
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 404 {
		t.Fatalf("got %v, want a 404", err)
	}
}

func TestShowByID_BuildsClassSummaries(t *testing.T) {
	classID := uuid.New()
	roleID := uint(3)
	user := &entity.User{
		ID:        uuid.New(),
		Name:      "Maria Silva",
		Email:     "maria@example.com",
		Birthdate: time.Date(1995, time.March, 12, 0, 0, 0, 0, time.UTC),
		RoleID:    &roleID,
		Role:      entity.Role{ID: roleID, Name: "student"},
		Lessons: []entity.Lesson{
			{GymClass: &entity.GymClass{ID: classID, Name: "Boxing", Duration: 45}},
		},
	}
	repo := &mockUserRepository{
		userWithClassesFunc: func(ctx context.Context, id uuid.UUID) (*entity.User, error) {
			return user, nil
		},
	}
	svc := NewUserService(repo, nil, testSecret, time.Hour, 0)

	resp, err := svc.ShowByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Birthdate != "1995-03-12" {
		t.Errorf("got birthdate %q, want 1995-03-12", resp.Birthdate)
	}
	if resp.Role != "student" {
		t.Errorf("got role %q, want student", resp.Role)
	}
	if len(resp.StudentClasses) != 1 || resp.StudentClasses[0].ID != classID {
		t.Errorf("enrolled classes not summarized: %+v", resp.StudentClasses)
	}
}

func TestUpdate_AnonymousCaller(t *testing.T) {
	svc := NewUserService(&mockUserRepository{}, nil, testSecret, time.Hour, 0)

	name := "New Name"
	_, err := svc.Update(context.Background(), authz.Anonymous(), dto.UpdateUserRequest{Name: &name})
	if got := kindOf(t, err); got != apperror.KindAuthRequired {
		t.Errorf("got kind %s, want %s", got, apperror.KindAuthRequired)
	}
}

func TestDelete_ReturnsMessage(t *testing.T) {
	roleID := uint(3)
	user := &entity.User{ID: uuid.New(), Name: "Maria Silva", RoleID: &roleID}
	repo := &mockUserRepository{
		userByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.User, error) {
			return user, nil
		},
		deleteFunc: func(ctx context.Context, u *entity.User) error {
			return nil
		},
	}
	svc := NewUserService(repo, nil, testSecret, time.Hour, 0)
	caller := authz.Authenticated(user.ID, authz.RoleStudent)

	message, err := svc.Delete(context.Background(), caller)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if message != "User Maria Silva deleted successfully" {
		t.Errorf("got message %q", message)
	}
}
