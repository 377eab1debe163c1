package command

import (
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/kipharma/pharmacy-platform/internal/user/domain"
	"github.com/kipharma/pharmacy-platform/pkg/apperrors"
	"github.com/kipharma/pharmacy-platform/pkg/auth"
)

type fakeUserRepo struct {
	users  map[uint]*domain.User
	nextID uint

	lastLoginID uint
	lastLoginAt time.Time

	passwordSetID   uint
	passwordSetHash string
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[uint]*domain.User), nextID: 1}
	for _, u := range users {
		repo.users[u.ID] = u
		if u.ID >= repo.nextID {
			repo.nextID = u.ID + 1
		}
	}
	return repo
}

func (r *fakeUserRepo) Create(u *domain.User) error {
	u.ID = r.nextID
	r.nextID++
	stored := *u
	r.users[u.ID] = &stored
	return nil
}

func (r *fakeUserRepo) FindByID(id uint) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindAll(domain.Filter) ([]domain.User, error) { return nil, nil }
func (r *fakeUserRepo) Update(*domain.User) error                    { return nil }
func (r *fakeUserRepo) UpdatePassword(id uint, hash string) error {
	r.passwordSetID = id
	r.passwordSetHash = hash
	if u, ok := r.users[id]; ok {
		u.Password = hash
	}
	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(id uint, at time.Time) error {
	r.lastLoginID = id
	r.lastLoginAt = at
	return nil
}

func (r *fakeUserRepo) Delete(uint) error                 { return nil }
func (r *fakeUserRepo) CountByRole(string) (int64, error) { return 0, nil }
func (r *fakeUserRepo) CountByBranch(uint) (int64, error) { return 0, nil }

type fakeCodeSource struct {
	code string
	err  error
}

func (s *fakeCodeSource) GetValue(string) (string, error) { return s.code, s.err }

func activeUser(t *testing.T) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	return &domain.User{
		ID:       4,
		Name:     "Jean Bosco",
		Email:    "jean@kipharma.com",
		Password: hash,
		Role:     auth.RoleManager,
		BranchID: 2,
		Status:   domain.StatusActive,
	}
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo(activeUser(t))
	handler := NewLoginUserHandler(repo, &fakeCodeSource{code: "shami"})

	resp, err := handler.Handle(LoginUserCommand{
		AccessCode: "shami",
		Email:      "jean@kipharma.com",
		Password:   "correct-horse",
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if resp.Token == "" {
		t.Fatal("empty token")
	}
	claims, err := auth.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 4 || claims.Role != auth.RoleManager || claims.BranchID != 2 {
		t.Errorf("claims = %+v", claims)
	}

	if resp.User.LastLogin == nil {
		t.Error("LastLogin not set on response")
	}
	if repo.lastLoginID != 4 {
		t.Errorf("last login recorded for user %d, want 4", repo.lastLoginID)
	}
}

func TestLoginRejections(t *testing.T) {
	tests := []struct {
		name  string
		code  string
		cmd   LoginUserCommand
		setup func(*domain.User)
		want  error
	}{
		{
			name: "wrong access code",
			code: "shami",
			cmd:  LoginUserCommand{AccessCode: "guess", Email: "jean@kipharma.com", Password: "correct-horse"},
			want: apperrors.ErrUnauthorized,
		},
		{
			name: "unknown email",
			code: "shami",
			cmd:  LoginUserCommand{AccessCode: "shami", Email: "nobody@kipharma.com", Password: "correct-horse"},
			want: apperrors.ErrUnauthorized,
		},
		{
			name: "wrong password",
			code: "shami",
			cmd:  LoginUserCommand{AccessCode: "shami", Email: "jean@kipharma.com", Password: "incorrect"},
			want: apperrors.ErrUnauthorized,
		},
		{
			name:  "inactive account",
			code:  "shami",
			cmd:   LoginUserCommand{AccessCode: "shami", Email: "jean@kipharma.com", Password: "correct-horse"},
			setup: func(u *domain.User) { u.Status = domain.StatusInactive },
			want:  apperrors.ErrUnauthorized,
		},
		{
			name: "missing access code",
			code: "shami",
			cmd:  LoginUserCommand{Email: "jean@kipharma.com", Password: "correct-horse"},
			want: apperrors.ErrValidation,
		},
		{
			name: "missing password",
			code: "shami",
			cmd:  LoginUserCommand{AccessCode: "shami", Email: "jean@kipharma.com"},
			want: apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := activeUser(t)
			if tt.setup != nil {
				tt.setup(user)
			}
			repo := newFakeUserRepo(user)
			handler := NewLoginUserHandler(repo, &fakeCodeSource{code: tt.code})

			_, err := handler.Handle(tt.cmd)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoginUnreadableAccessCode(t *testing.T) {
	repo := newFakeUserRepo(activeUser(t))
	handler := NewLoginUserHandler(repo, &fakeCodeSource{err: errors.New("settings unavailable")})

	_, err := handler.Handle(LoginUserCommand{
		AccessCode: "shami",
		Email:      "jean@kipharma.com",
		Password:   "correct-horse",
	})
	if !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("err = %v, want unauthorized", err)
	}
}
