package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"venuebook/internal/organizers"
	"venuebook/internal/shared/apperrors"
	"venuebook/internal/shared/constants"
	"venuebook/internal/shared/pagination"
	"venuebook/internal/shared/validation"
	"venuebook/internal/users"
	"venuebook/pkg/logger"
)

type fakeUsers struct {
	mu   sync.Mutex
	byID map[string]*users.User
}

func (f *fakeUsers) Create(_ context.Context, u *users.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u.Email = strings.ToLower(u.Email)
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return apperrors.Conflict("an account with this email already exists")
		}
	}
	u.ID = uuid.New()
	f.byID[u.ID.String()] = u
	return nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*users.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == strings.ToLower(email) {
			return u, nil
		}
	}
	return nil, apperrors.NotFound("user")
}

func (f *fakeUsers) FindByID(_ context.Context, id string) (*users.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, apperrors.NotFound("user")
}

func (f *fakeUsers) UpdateProfile(ctx context.Context, id string, up users.ProfileUpdate) (*users.User, error) {
	u, err := f.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if up.Name != nil {
		u.Name = *up.Name
	}
	if up.Phone != nil {
		u.Phone = *up.Phone
	}
	if up.Address != nil {
		u.Address = *up.Address
	}
	return u, nil
}

func (f *fakeUsers) UpdatePassword(ctx context.Context, id, hashed string) error {
	u, err := f.FindByID(ctx, id)
	if err != nil {
		return err
	}
	u.Password = hashed
	return nil
}

func (f *fakeUsers) List(context.Context, pagination.Query, users.Filter) ([]users.User, int64, error) {
	return nil, 0, nil
}

func (f *fakeUsers) Count(context.Context) (int64, error) { return int64(len(f.byID)), nil }

type fakeOrganizers struct {
	byID map[string]*organizers.Organizer
}

func (f *fakeOrganizers) Create(_ context.Context, o *organizers.Organizer) error {
	for _, existing := range f.byID {
		if strings.EqualFold(existing.Email, o.Email) {
			return apperrors.Conflict("an account with this email already exists")
		}
	}
	o.ID = uuid.New()
	f.byID[o.ID.String()] = o
	return nil
}

func (f *fakeOrganizers) FindByEmail(_ context.Context, email string) (*organizers.Organizer, error) {
	for _, o := range f.byID {
		if strings.EqualFold(o.Email, email) {
			return o, nil
		}
	}
	return nil, apperrors.NotFound("organizer")
}

func (f *fakeOrganizers) FindByID(_ context.Context, id string) (*organizers.Organizer, error) {
	if o, ok := f.byID[id]; ok {
		return o, nil
	}
	return nil, apperrors.NotFound("organizer")
}

func (f *fakeOrganizers) CountByRole(context.Context) (map[string]int64, error) {
	return nil, nil
}

func newTestService() (*service, *fakeUsers, *fakeOrganizers) {
	u := &fakeUsers{byID: map[string]*users.User{}}
	o := &fakeOrganizers{byID: map[string]*organizers.Organizer{}}
	s := &service{
		users:      u,
		organizers: o,
		tokens:     testTokens(),
		log:        logger.Discard(),
		hashCost:   bcrypt.MinCost,
	}
	return s, u, o
}

func TestRegisterUserHashesPasswordAndIssuesToken(t *testing.T) {
	s, repo, _ := newTestService()
	resp, err := s.RegisterUser(context.Background(), &RegisterUserRequest{
		Name: "Rahim", Email: "rahim@example.com", Password: "password123",
	})
	if err != nil {
		t.Fatal(err)
	}

	stored := repo.byID[resp.Account.ID]
	if stored.Password == "password123" {
		t.Fatal("password stored in plain text")
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("password123")) != nil {
		t.Error("stored hash does not match")
	}
	if resp.Account.Role != constants.RoleCustomer {
		t.Errorf("role = %s", resp.Account.Role)
	}

	p, err := s.tokens.VerifyAccessToken(resp.Tokens.AccessToken)
	if err != nil || p.UserID != resp.Account.ID || p.Email != "rahim@example.com" {
		t.Errorf("token principal = %+v, err %v", p, err)
	}
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	s, _, _ := newTestService()
	req := &RegisterUserRequest{Name: "A", Email: "dup@example.com", Password: "password123"}
	if _, err := s.RegisterUser(context.Background(), req); err != nil {
		t.Fatal(err)
	}
	_, err := s.RegisterUser(context.Background(), req)
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	s, _, _ := newTestService()
	_, _ = s.RegisterUser(context.Background(), &RegisterUserRequest{Name: "A", Email: "a@example.com", Password: "password123"})

	_, unknown := s.LoginUser(context.Background(), &LoginRequest{Email: "nobody@example.com", Password: "password123"})
	_, wrong := s.LoginUser(context.Background(), &LoginRequest{Email: "a@example.com", Password: "not-it-at-all"})

	for _, err := range []error{unknown, wrong} {
		appErr := apperrors.From(err)
		if appErr.Status != 401 || appErr.Message != "Invalid email or password" {
			t.Errorf("got %d %q", appErr.Status, appErr.Message)
		}
	}
}

func TestLoginSuccess(t *testing.T) {
	s, _, _ := newTestService()
	_, _ = s.RegisterUser(context.Background(), &RegisterUserRequest{Name: "A", Email: "a@example.com", Password: "password123"})

	resp, err := s.LoginUser(context.Background(), &LoginRequest{Email: "A@Example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Tokens.AccessToken == "" || resp.Tokens.RefreshToken == "" {
		t.Error("tokens missing")
	}
}

func TestUserRefreshRejectsOrganizerToken(t *testing.T) {
	s, _, _ := newTestService()
	org, err := s.RegisterOrganizer(context.Background(), &RegisterOrganizerRequest{Name: "Org", Email: "org@example.com", Password: "password123"})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.RefreshUser(context.Background(), org.Tokens.RefreshToken); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if _, err := s.RefreshOrganizer(context.Background(), org.Tokens.RefreshToken); err != nil {
		t.Fatalf("organizer refresh: %v", err)
	}
}

func TestOrganizerRegistrationNeverGrantsAdmin(t *testing.T) {
	s, _, repo := newTestService()
	resp, err := s.RegisterOrganizer(context.Background(), &RegisterOrganizerRequest{Name: "Org", Email: "o@example.com", Password: "password123"})
	if err != nil {
		t.Fatal(err)
	}
	if repo.byID[resp.Account.ID].Role != constants.RoleOrganizer {
		t.Errorf("role = %s", repo.byID[resp.Account.ID].Role)
	}
}

func TestChangePasswordRequiresCurrentPassword(t *testing.T) {
	s, _, _ := newTestService()
	reg, _ := s.RegisterUser(context.Background(), &RegisterUserRequest{Name: "A", Email: "a@example.com", Password: "password123"})

	err := s.ChangeUserPassword(context.Background(), reg.Account.ID, &ChangePasswordRequest{CurrentPassword: "wrong-one", NewPassword: "newpassword1"})
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	if err := s.ChangeUserPassword(context.Background(), reg.Account.ID, &ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "newpassword1"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.LoginUser(context.Background(), &LoginRequest{Email: "a@example.com", Password: "newpassword1"}); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestDeactivatedUserCannotLogin(t *testing.T) {
	s, repo, _ := newTestService()
	reg, _ := s.RegisterUser(context.Background(), &RegisterUserRequest{Name: "A", Email: "a@example.com", Password: "password123"})
	repo.byID[reg.Account.ID].IsActive = false

	_, err := s.LoginUser(context.Background(), &LoginRequest{Email: "a@example.com", Password: "password123"})
	if !errors.Is(err, apperrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestPasswordLimitCountsBytes(t *testing.T) {
	tooLong := strings.Repeat("é", 40) // 40 runes, 80 bytes
	req := &RegisterUserRequest{Name: "Adib", Email: "adib@example.com", Password: tooLong}

	err := validation.Default().Struct(req)
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Status != 400 {
		t.Fatalf("validation err = %v, want 400", err)
	}
	if fields, _ := appErr.Details.([]apperrors.FieldError); len(fields) != 1 || fields[0].Field != "password" {
		t.Errorf("details = %#v", appErr.Details)
	}

	s, u, _ := newTestService()
	if _, err := s.RegisterUser(context.Background(), req); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("RegisterUser err = %v, want validation error", err)
	}
	if len(u.byID) != 0 {
		t.Error("account stored with an unhashable password")
	}

	fits := &RegisterUserRequest{Name: "Adib", Email: "adib@example.com", Password: strings.Repeat("é", 36)}
	if err := validation.Default().Struct(fits); err != nil {
		t.Fatalf("72-byte password rejected: %v", err)
	}
	if _, err := s.RegisterUser(context.Background(), fits); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
}

func TestChangePasswordRejectsOversizedNewPassword(t *testing.T) {
	s, _, _ := newTestService()
	reg, err := s.RegisterUser(context.Background(), &RegisterUserRequest{Name: "A", Email: "a@example.com", Password: "password123"})
	if err != nil {
		t.Fatal(err)
	}

	err = s.ChangeUserPassword(context.Background(), reg.Account.ID, &ChangePasswordRequest{
		CurrentPassword: "password123",
		NewPassword:     strings.Repeat("ß", 37),
	})
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Status != 400 {
		t.Fatalf("err = %v, want 400", err)
	}
	if fields, _ := appErr.Details.([]apperrors.FieldError); len(fields) != 1 || fields[0].Field != "newPassword" {
		t.Errorf("details = %#v", appErr.Details)
	}
}
