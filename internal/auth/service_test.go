// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/househunt/go-backend/internal/core"
)

type fakeUsers struct {
	mu        sync.Mutex
	byEmail   map[string]*UserInfo
	nextID    int
	backfills []string
	rehashed  map[string]string
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{
		byEmail:  map[string]*UserInfo{},
		rehashed: map[string]string{},
	}
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*UserInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) EmailExists(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.byEmail[strings.ToLower(email)]
	return ok, nil
}

func (f *fakeUsers) PhoneExists(_ context.Context, phone string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.byEmail {
		if u.Phone != "" && u.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) Create(_ context.Context, nu NewUser) (*UserInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	status := statusApproved
	if nu.Role == roleOwner {
		status = "pending"
	}
	u := &UserInfo{
		ID:           fmt.Sprintf("user-%d", f.nextID),
		Name:         nu.Name,
		Email:        nu.Email,
		Phone:        nu.Phone,
		PasswordHash: nu.PasswordHash,
		Role:         nu.Role,
		Status:       status,
	}
	f.byEmail[u.Email] = u
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) BackfillStatus(_ context.Context, id, role string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	status := statusApproved
	if role == roleOwner {
		status = "pending"
	}
	for _, u := range f.byEmail {
		if u.ID == id && u.Status == "" {
			u.Status = status
		}
	}
	f.backfills = append(f.backfills, id)
	return status, nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, userID, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.rehashed[userID] = hash
	return nil
}

// seed inserts a record directly, bypassing registration.
func (f *fakeUsers) seed(t *testing.T, u UserInfo, password string) {
	t.Helper()

	if u.PasswordHash == "" {
		hash, err := core.HashPassword(password)
		if err != nil {
			t.Fatalf("hash: %v", err)
		}
		u.PasswordHash = hash
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.byEmail[u.Email] = &u
}

func newTestService(t *testing.T) (*Service, *fakeUsers) {
	t.Helper()

	users := newFakeUsers()
	return NewService(users, newTestTokenManager(t, time.Now())), users
}

func assertStatus(t *testing.T, err error, want int) {
	t.Helper()

	var appErr *core.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError with status %d, got %v", want, err)
	}
	if appErr.StatusCode != want {
		t.Fatalf("expected status %d got %d (%s)", want, appErr.StatusCode, appErr.Message)
	}
}

func TestRegister_RenterIsApprovedWithToken(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Rita Renter",
		Email:    "Rita@Example.com",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if resp.User.Role != roleRenter {
		t.Fatalf("expected default role renter got %q", resp.User.Role)
	}
	if resp.User.Status != statusApproved {
		t.Fatalf("expected approved got %q", resp.User.Status)
	}
	if resp.User.Email != "rita@example.com" {
		t.Fatalf("email should be normalized, got %q", resp.User.Email)
	}
	if resp.Token == nil || resp.TokenPayload == nil {
		t.Fatal("approved registration must return a token")
	}
	if resp.TokenPayload.Status != statusApproved {
		t.Fatalf("token status %q", resp.TokenPayload.Status)
	}
}

func TestRegister_TrimsPaddedEmail(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Pat Renter",
		Email:    "  Pat@Example.com ",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.User.Email != "pat@example.com" {
		t.Fatalf("expected normalized email, got %q", resp.User.Email)
	}
}

func TestRegister_OwnerIsPendingWithoutToken(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Oscar Owner",
		Email:    "oscar@example.com",
		Password: "secret1",
		Role:     roleOwner,
		Phone:    " 555-0100 ",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if resp.User.Status != "pending" {
		t.Fatalf("owner must start pending, got %q", resp.User.Status)
	}
	if resp.Token != nil || resp.TokenPayload != nil {
		t.Fatal("pending owner must not receive a token")
	}
	if resp.User.Phone != "555-0100" {
		t.Fatalf("phone should be trimmed, got %q", resp.User.Phone)
	}
}

func TestRegister_OwnerRequiresPhone(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{
		Name:     "Oscar Owner",
		Email:    "oscar@example.com",
		Password: "secret1",
		Role:     roleOwner,
		Phone:    "   ",
	})
	assertStatus(t, err, http.StatusBadRequest)

	if _, err := svc.Register(ctx, RegisterRequest{
		Name:     "Rita Renter",
		Email:    "rita@example.com",
		Password: "secret1",
		Role:     roleRenter,
	}); err != nil {
		t.Fatalf("renter without phone should succeed: %v", err)
	}
}

func TestRegister_PasswordPolicy(t *testing.T) {
	cases := []struct {
		password string
		weak     bool
	}{
		{"abcdef", true},
		{"abc12", true},
		{"123456", false},
		{"abcdef1", false},
	}

	for _, tc := range cases {
		t.Run(tc.password, func(t *testing.T) {
			svc, _ := newTestService(t)

			_, err := svc.Register(context.Background(), RegisterRequest{
				Name:     "Pat",
				Email:    "pat@example.com",
				Password: tc.password,
			})
			if tc.weak && !errors.Is(err, ErrWeakPassword) {
				t.Fatalf("expected ErrWeakPassword, got %v", err)
			}
			if !tc.weak && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestRegister_Conflicts(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterRequest{
		Name:     "Oscar",
		Email:    "oscar@example.com",
		Password: "secret1",
		Role:     roleOwner,
		Phone:    "555-0100",
	}); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := svc.Register(ctx, RegisterRequest{
		Name:     "Oscar Again",
		Email:    "OSCAR@example.com",
		Password: "secret1",
	})
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}

	_, err = svc.Register(ctx, RegisterRequest{
		Name:     "Other Owner",
		Email:    "other@example.com",
		Password: "secret1",
		Role:     roleOwner,
		Phone:    "555-0100",
	})
	if !errors.Is(err, ErrPhoneExists) {
		t.Fatalf("expected ErrPhoneExists, got %v", err)
	}
}

func TestRegister_InvalidInput(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{
		Name:     "Pat",
		Email:    "pat@example.com",
		Password: "secret1",
		Role:     "landlord",
	})
	assertStatus(t, err, http.StatusBadRequest)

	_, err = svc.Register(ctx, RegisterRequest{
		Email:    "pat@example.com",
		Password: "secret1",
	})
	assertStatus(t, err, http.StatusBadRequest)

	_, err = svc.Register(ctx, RegisterRequest{
		Name:     "Pat",
		Email:    "not-an-email",
		Password: "secret1",
	})
	assertStatus(t, err, http.StatusBadRequest)
}

func TestLogin_InvalidCredentialsAreIndistinguishable(t *testing.T) {
	svc, users := newTestService(t)
	users.seed(t, UserInfo{
		ID:     "u-1",
		Email:  "rita@example.com",
		Role:   roleRenter,
		Status: statusApproved,
	}, "secret1")

	ctx := context.Background()

	_, unknownErr := svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	_, wrongErr := svc.Login(ctx, LoginRequest{Email: "rita@example.com", Password: "wrong12"})

	if !errors.Is(unknownErr, ErrInvalidCredentials) || !errors.Is(wrongErr, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for both, got %v / %v", unknownErr, wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Fatalf("errors differ: %q vs %q", unknownErr, wrongErr)
	}
}

func TestLogin_Success(t *testing.T) {
	svc, users := newTestService(t)
	users.seed(t, UserInfo{
		ID:     "u-1",
		Email:  "rita@example.com",
		Role:   roleRenter,
		Status: statusApproved,
	}, "secret1")

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "Rita@Example.com",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if resp.Message != "Login successful" || resp.Token == "" {
		t.Fatalf("unexpected response %+v", resp)
	}

	claims, err := svc.tokens.VerifyAccessToken(resp.Token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "u-1" || claims.Role != roleRenter || claims.Status != statusApproved {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestLogin_PendingOwnerRejected(t *testing.T) {
	svc, users := newTestService(t)
	users.seed(t, UserInfo{
		ID:     "u-2",
		Email:  "oscar@example.com",
		Role:   roleOwner,
		Status: "pending",
	}, "secret1")

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "oscar@example.com",
		Password: "secret1",
	})
	if !errors.Is(err, ErrPendingApproval) {
		t.Fatalf("expected ErrPendingApproval, got %v", err)
	}
}

func TestLogin_AdminBypassesPending(t *testing.T) {
	svc, users := newTestService(t)
	users.seed(t, UserInfo{
		ID:     "u-3",
		Email:  "ada@example.com",
		Role:   roleAdmin,
		Status: "pending",
	}, "secret1")

	if _, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ada@example.com",
		Password: "secret1",
	}); err != nil {
		t.Fatalf("admin login: %v", err)
	}
}

func TestLogin_BackfillsMissingStatus(t *testing.T) {
	svc, users := newTestService(t)
	users.seed(t, UserInfo{ID: "legacy-renter", Email: "old@example.com", Role: roleRenter}, "secret1")
	users.seed(t, UserInfo{ID: "legacy-owner", Email: "oldowner@example.com", Role: roleOwner}, "secret1")

	ctx := context.Background()

	resp, err := svc.Login(ctx, LoginRequest{Email: "old@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("legacy renter login: %v", err)
	}
	if resp.TokenPayload.Status != statusApproved {
		t.Fatalf("expected approved claim, got %q", resp.TokenPayload.Status)
	}

	_, err = svc.Login(ctx, LoginRequest{Email: "oldowner@example.com", Password: "secret1"})
	if !errors.Is(err, ErrPendingApproval) {
		t.Fatalf("legacy owner should be pending, got %v", err)
	}

	if len(users.backfills) != 2 {
		t.Fatalf("expected two backfills, got %v", users.backfills)
	}
}

func TestLogin_UpgradesLegacyHash(t *testing.T) {
	svc, users := newTestService(t)

	legacy, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	users.seed(t, UserInfo{
		ID:           "u-4",
		Email:        "bee@example.com",
		Role:         roleRenter,
		Status:       statusApproved,
		PasswordHash: string(legacy),
	}, "")

	if _, err := svc.Login(context.Background(), LoginRequest{
		Email:    "bee@example.com",
		Password: "secret1",
	}); err != nil {
		t.Fatalf("login: %v", err)
	}

	if !strings.HasPrefix(users.rehashed["u-4"], "$argon2id$") {
		t.Fatalf("expected argon2id rehash, got %q", users.rehashed["u-4"])
	}
}

func TestLogin_MissingFields(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "rita@example.com"})
	assertStatus(t, err, http.StatusBadRequest)
}

func TestPasswordMeetsPolicy(t *testing.T) {
	if !PasswordMeetsPolicy("abcde1") {
		t.Fatal("six chars with a digit should pass")
	}
	if PasswordMeetsPolicy("abcdef") {
		t.Fatal("no digit should fail")
	}
	if PasswordMeetsPolicy("ab1") {
		t.Fatal("too short should fail")
	}
}
