package gymclass

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/fitlife/gymsched/internal/authz"
	"github.com/fitlife/gymsched/internal/entity"
	"github.com/fitlife/gymsched/internal/modules/gymclass/dto"
	"github.com/fitlife/gymsched/pkg/apperror"
	commonDto "github.com/fitlife/gymsched/pkg/dto"
)

// =============================================================================
// Mock repositories
// =============================================================================

type mockGymClassRepository struct {
	createFunc          func(ctx context.Context, class *entity.GymClass) error
	updateFunc          func(ctx context.Context, class *entity.GymClass) error
	deleteFunc          func(ctx context.Context, class *entity.GymClass) error
	gymClassByIDFunc    func(ctx context.Context, id uuid.UUID) (*entity.GymClass, error)
	gymClassesByIDsFunc func(ctx context.Context, ids []uuid.UUID) ([]*entity.GymClass, error)
	findPageFunc        func(ctx context.Context, search string, limit, offset int) ([]*entity.GymClass, int64, error)
}

func (m *mockGymClassRepository) Create(ctx context.Context, class *entity.GymClass) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, class)
	}
	return errors.New("not implemented")
}

func (m *mockGymClassRepository) Update(ctx context.Context, class *entity.GymClass) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, class)
	}
	return errors.New("not implemented")
}

func (m *mockGymClassRepository) Delete(ctx context.Context, class *entity.GymClass) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, class)
	}
	return errors.New("not implemented")
}

func (m *mockGymClassRepository) GymClassByID(ctx context.Context, id uuid.UUID) (*entity.GymClass, error) {
	if m.gymClassByIDFunc != nil {
		return m.gymClassByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockGymClassRepository) GymClassesByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.GymClass, error) {
	if m.gymClassesByIDsFunc != nil {
		return m.gymClassesByIDsFunc(ctx, ids)
	}
	return nil, errors.New("not implemented")
}

func (m *mockGymClassRepository) FindPage(ctx context.Context, search string, limit, offset int) ([]*entity.GymClass, int64, error) {
	if m.findPageFunc != nil {
		return m.findPageFunc(ctx, search, limit, offset)
	}
	return nil, 0, errors.New("not implemented")
}

type mockUserRepository struct {
	userByIDFunc func(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return errors.New("not implemented")
}

func (m *mockUserRepository) Update(ctx context.Context, user *entity.User) error {
	return errors.New("not implemented")
}

func (m *mockUserRepository) Delete(ctx context.Context, user *entity.User) error {
	return errors.New("not implemented")
}

func (m *mockUserRepository) UserByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if m.userByIDFunc != nil {
		return m.userByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepository) UserByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, errors.New("not implemented")
}

func (m *mockUserRepository) UserWithClasses(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return nil, errors.New("not implemented")
}

func (m *mockUserRepository) UserWithClassesByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, errors.New("not implemented")
}

func (m *mockUserRepository) RoleByID(ctx context.Context, id uint) (*entity.Role, error) {
	return nil, errors.New("not implemented")
}

func (m *mockUserRepository) RoleByName(ctx context.Context, name string) (*entity.Role, error) {
	return nil, errors.New("not implemented")
}

// =============================================================================
// Fixtures
// =============================================================================

func newTeacher() *entity.User {
	roleID := uint(2)
	return &entity.User{
		ID:     uuid.New(),
		Name:   "Carlos",
		RoleID: &roleID,
		Role:   entity.Role{ID: roleID, Name: "teacher"},
	}
}

func teacherLookup(teacher *entity.User) *mockUserRepository {
	return &mockUserRepository{
		userByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.User, error) {
			if teacher != nil && id == teacher.ID {
				return teacher, nil
			}
			return nil, nil
		},
	}
}

func validCreateRequest(teacherID uuid.UUID) dto.CreateGymClassRequest {
	return dto.CreateGymClassRequest{
		Name:        "Morning Spin",
		Description: "High intensity cycling session",
		StartTime:   time.Now().AddDate(0, 0, 7),
		Duration:    45,
		TeacherID:   teacherID,
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
// Create
// =============================================================================

func TestCreate_AsTeacher(t *testing.T) {
	teacher := newTeacher()
	var created *entity.GymClass
	repo := &mockGymClassRepository{
		createFunc: func(ctx context.Context, class *entity.GymClass) error {
			class.ID = uuid.New()
			created = class
			return nil
		},
		gymClassByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.GymClass, error) {
			return created, nil
		},
	}
	svc := NewGymClassService(repo, teacherLookup(teacher), nil)
	caller := authz.Authenticated(teacher.ID, authz.RoleTeacher)

	class, err := svc.Create(context.Background(), caller, validCreateRequest(teacher.ID))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if class.Name != "Morning Spin" {
		t.Errorf("got name %q, want %q", class.Name, "Morning Spin")
	}
}

func TestCreate_StudentForbidden(t *testing.T) {
	teacher := newTeacher()
	svc := NewGymClassService(&mockGymClassRepository{}, teacherLookup(teacher), nil)
	caller := authz.Authenticated(uuid.New(), authz.RoleStudent)

	_, err := svc.Create(context.Background(), caller, validCreateRequest(teacher.ID))
	if got := kindOf(t, err); got != apperror.KindAuthForbidden {
		t.Errorf("got kind %s, want %s", got, apperror.KindAuthForbidden)
	}
}

func TestCreate_AnonymousRequiresLogin(t *testing.T) {
	teacher := newTeacher()
	svc := NewGymClassService(&mockGymClassRepository{}, teacherLookup(teacher), nil)

	_, err := svc.Create(context.Background(), authz.Anonymous(), validCreateRequest(teacher.ID))
	if got := kindOf(t, err); got != apperror.KindAuthRequired {
		t.Errorf("got kind %s, want %s", got, apperror.KindAuthRequired)
	}
}

func TestCreate_ShortDuration(t *testing.T) {
	teacher := newTeacher()
	svc := NewGymClassService(&mockGymClassRepository{}, teacherLookup(teacher), nil)
	caller := authz.Authenticated(teacher.ID, authz.RoleTeacher)

	req := validCreateRequest(teacher.ID)
	req.Duration = 4
	_, err := svc.Create(context.Background(), caller, req)
	if got := kindOf(t, err); got != apperror.KindInvalidDuration {
		t.Errorf("got kind %s, want %s", got, apperror.KindInvalidDuration)
	}
}

func TestCreate_StudentAsTeacherIsAMismatch(t *testing.T) {
	roleID := uint(3)
	student := &entity.User{
		ID:     uuid.New(),
		Name:   "Ana",
		RoleID: &roleID,
		Role:   entity.Role{ID: roleID, Name: "student"},
	}
	svc := NewGymClassService(&mockGymClassRepository{}, teacherLookup(student), nil)
	caller := authz.Authenticated(uuid.New(), authz.RoleAdmin)

	_, err := svc.Create(context.Background(), caller, validCreateRequest(student.ID))
	if got := kindOf(t, err); got != apperror.KindTeacherRoleMismatch {
		t.Errorf("got kind %s, want %s", got, apperror.KindTeacherRoleMismatch)
	}
}

// =============================================================================
// Update / Delete
// =============================================================================

func TestUpdate_UnknownClass(t *testing.T) {
	teacher := newTeacher()
	svc := NewGymClassService(&mockGymClassRepository{}, teacherLookup(teacher), nil)
	caller := authz.Authenticated(teacher.ID, authz.RoleTeacher)

	name := "Evening Spin"
	_, err := svc.Update(context.Background(), caller, uuid.New(), dto.UpdateGymClassRequest{Name: &name})
	if got := kindOf(t, err); got != apperror.KindReferenceNotFound {
		t.Errorf("got kind %s, want %s", got, apperror.KindReferenceNotFound)
	}
}

func TestDelete_ReturnsMessage(t *testing.T) {
	teacher := newTeacher()
	existing := &entity.GymClass{ID: uuid.New(), Name: "Boxing"}
	repo := &mockGymClassRepository{
		gymClassByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.GymClass, error) {
			return existing, nil
		},
		deleteFunc: func(ctx context.Context, class *entity.GymClass) error {
			return nil
		},
	}
	svc := NewGymClassService(repo, teacherLookup(teacher), nil)
	caller := authz.Authenticated(uuid.New(), authz.RoleAdmin)

	message, err := svc.Delete(context.Background(), caller, existing.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if message != "Class Boxing deleted successfully" {
		t.Errorf("got message %q", message)
	}
}

// =============================================================================
// List
// =============================================================================

func TestList_DefaultsAndPaging(t *testing.T) {
	teacher := newTeacher()
	var gotLimit, gotOffset int
	repo := &mockGymClassRepository{
		findPageFunc: func(ctx context.Context, search string, limit, offset int) ([]*entity.GymClass, int64, error) {
			gotLimit, gotOffset = limit, offset
			return []*entity.GymClass{{ID: uuid.New(), Name: "Boxing"}}, 61, nil
		},
	}
	svc := NewGymClassService(repo, teacherLookup(teacher), nil)

	page, err := svc.List(context.Background(), commonDto.PageQuery{Page: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != 30 || gotOffset != 30 {
		t.Errorf("got limit=%d offset=%d, want 30/30", gotLimit, gotOffset)
	}
	if page.Meta.TotalPages != 3 {
		t.Errorf("got %d total pages, want 3", page.Meta.TotalPages)
	}
	if page.Meta.TotalItems != 61 {
		t.Errorf("got %d total items, want 61", page.Meta.TotalItems)
	}
}

func TestGet_Miss(t *testing.T) {
	teacher := newTeacher()
	svc := NewGymClassService(&mockGymClassRepository{}, teacherLookup(teacher), nil)

	_, err := svc.Get(context.Background(), uuid.New())
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 404 {
		t.Errorf("got %v, want a 404", err)
	}
}
