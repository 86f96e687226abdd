package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"chiroportaal/internal/identity"
	"chiroportaal/internal/mail"
	addressrepo "chiroportaal/internal/repository/address"
	agreementrepo "chiroportaal/internal/repository/agreement"
	eventrepo "chiroportaal/internal/repository/event"
	grouprepo "chiroportaal/internal/repository/group"
	memberrepo "chiroportaal/internal/repository/member"
	"chiroportaal/internal/repository/memdb"
	membershiprepo "chiroportaal/internal/repository/membership"
	parentrepo "chiroportaal/internal/repository/parent"
	sponsorrepo "chiroportaal/internal/repository/sponsor"
	workyearrepo "chiroportaal/internal/repository/workyear"
	addresssvc "chiroportaal/internal/service/address"
	agreementsvc "chiroportaal/internal/service/agreement"
	contactsvc "chiroportaal/internal/service/contact"
	eventsvc "chiroportaal/internal/service/event"
	groupsvc "chiroportaal/internal/service/group"
	membersvc "chiroportaal/internal/service/member"
	membershipsvc "chiroportaal/internal/service/membership"
	parentsvc "chiroportaal/internal/service/parent"
	sponsorsvc "chiroportaal/internal/service/sponsor"
	workyearsvc "chiroportaal/internal/service/workyear"
)

type recordingSender struct {
	sent []mail.Message
}

func (r *recordingSender) Send(_ context.Context, msg mail.Message) error {
	r.sent = append(r.sent, msg)
	return nil
}

type testEnv struct {
	router       *gin.Engine
	sender       *recordingSender
	leidingToken string
	adminToken   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := memdb.New()
	addressRepo := addressrepo.NewMemory(db)
	groupRepo := grouprepo.NewMemory(db)
	workYearRepo := workyearrepo.NewMemory(db)
	memberRepo := memberrepo.NewMemory(db)
	parentRepo := parentrepo.NewMemory(db)
	sponsorRepo := sponsorrepo.NewMemory(db)
	membershipRepo := membershiprepo.NewMemory(db)
	agreementRepo := agreementrepo.NewMemory(db)
	eventRepo := eventrepo.NewMemory(db)

	addressService := addresssvc.New(addressRepo)
	sender := &recordingSender{}

	identityService := identity.NewService(identity.NewMemoryStore(), "test-signing-key", time.Hour)

	ctx := context.Background()
	for _, u := range []identity.CreateUserInput{
		{Email: "leiding@example.com", Password: "wachtwoord1", FirstName: "Lies", LastName: "Leiding", Role: identity.RoleLeiding},
		{Email: "admin@example.com", Password: "wachtwoord1", FirstName: "An", LastName: "Admin", Role: identity.RoleAdmin},
	} {
		if _, err := identityService.CreateUser(ctx, u); err != nil {
			t.Fatalf("create user %s: %v", u.Email, err)
		}
	}
	_, leidingToken, err := identityService.Login(ctx, "leiding@example.com", "wachtwoord1")
	if err != nil {
		t.Fatalf("login leiding: %v", err)
	}
	_, adminToken, err := identityService.Login(ctx, "admin@example.com", "wachtwoord1")
	if err != nil {
		t.Fatalf("login admin: %v", err)
	}

	router := buildRouter(zap.NewNop(), nil, Deps{
		Addresses:   addressService,
		Groups:      groupsvc.New(groupRepo),
		WorkYears:   workyearsvc.New(workYearRepo),
		Members:     membersvc.New(memberRepo, parentRepo),
		Parents:     parentsvc.New(parentRepo, addressService),
		Sponsors:    sponsorsvc.New(sponsorRepo),
		Memberships: membershipsvc.New(membershipRepo, memberRepo, groupRepo, workYearRepo),
		Agreements:  agreementsvc.New(agreementRepo),
		Events:      eventsvc.New(eventRepo, membershipRepo),
		Contact:     contactsvc.New(sender, nil, "leiding@chiro.example"),
		Identity:    identityService,
	})

	return &testEnv{router: router, sender: sender, leidingToken: leidingToken, adminToken: adminToken}
}

func (e *testEnv) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestPublicRoutes_NoTokenNeeded(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/sponsors", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("sponsors: expected 200, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/v1/events/upcoming", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("upcoming events: expected 200, got %d", rec.Code)
	}

	body := `{"name":"Bezoeker","email":"bezoeker@example.com","subject":"Vraagje","message":"Wanneer start het kamp?"}`
	rec = env.do(t, http.MethodPost, "/api/v1/contact", "", body)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("contact: expected 202, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(env.sender.sent) != 1 {
		t.Fatalf("expected 1 mail sent, got %d", len(env.sender.sent))
	}
}

func TestStaffRoutes_RequireToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/members", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: expected 401, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/v1/members", "not-a-token", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: expected 401, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/v1/members", env.leidingToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("leiding token: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAdminRoutes_RequireAdminRole(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/admin/users", env.leidingToken, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("leiding on admin route: expected 403, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/v1/admin/users", env.adminToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("admin on admin route: expected 200, got %d", rec.Code)
	}

	// Admin implies leiding on staff routes.
	rec = env.do(t, http.MethodGet, "/api/v1/members", env.adminToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("admin on staff route: expected 200, got %d", rec.Code)
	}
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/login", "", `{"email":"leiding@example.com","password":"fout"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: expected 401, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/api/v1/auth/login", "", `{"email":"leiding@example.com","password":"wachtwoord1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token in the login response")
	}
	if resp.User.Email != "leiding@example.com" {
		t.Fatalf("unexpected user in login response: %+v", resp.User)
	}
}

func TestErrorMapping(t *testing.T) {
	env := newTestEnv(t)

	// Validation failure carries the per-field messages.
	rec := env.do(t, http.MethodPost, "/api/v1/groups", env.leidingToken, `{"name":""}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid group: expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "fields") {
		t.Fatalf("expected field errors in body, got %s", rec.Body.String())
	}

	rec = env.do(t, http.MethodGet, "/api/v1/members/9999", env.leidingToken, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing member: expected 404, got %d", rec.Code)
	}

	addressBody := `{"street":"Kerkstraat","houseNumber":"12","municipality":"Leuven","postalCode":3000}`
	rec = env.do(t, http.MethodPost, "/api/v1/addresses", env.leidingToken, addressBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create address: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var address struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &address); err != nil {
		t.Fatalf("decode address: %v", err)
	}

	rec = env.do(t, http.MethodPost, "/api/v1/addresses", env.leidingToken, addressBody)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate address: expected 409, got %d", rec.Code)
	}

	parentBody := `{"firstName":"Mia","lastName":"Peeters","phoneNumber":"016123456","email":"mia@example.com","addressId":1}`
	rec = env.do(t, http.MethodPost, "/api/v1/parents", env.leidingToken, parentBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create parent: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	// Deleting the address while a parent lives there names the referrer.
	rec = env.do(t, http.MethodDelete, "/api/v1/addresses/1", env.leidingToken, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("delete referenced address: expected 409, got %d", rec.Code)
	}
	var conflict struct {
		ReferencedBy []string `json:"referencedBy"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &conflict); err != nil {
		t.Fatalf("decode conflict: %v", err)
	}
	if len(conflict.ReferencedBy) == 0 || conflict.ReferencedBy[0] != "parents" {
		t.Fatalf("expected parents in referencedBy, got %v", conflict.ReferencedBy)
	}
}

func TestEligibleGroupsLookup(t *testing.T) {
	env := newTestEnv(t)

	groupBody := `{"name":"Speelclub","minimumAgeDays":2920,"maximumAgeDays":3649,"active":true}`
	rec := env.do(t, http.MethodPost, "/api/v1/groups", env.leidingToken, groupBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create group: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	// A nine year old fits the 8-9 band.
	rec = env.do(t, http.MethodGet, "/api/v1/groups/eligible?birthDate=2016-06-01&gender=F&at=2025-09-01", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("eligible lookup: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var groups []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &groups); err != nil {
		t.Fatalf("decode groups: %v", err)
	}
	if len(groups) != 1 || groups[0].Name != "Speelclub" {
		t.Fatalf("expected Speelclub only, got %v", groups)
	}

	rec = env.do(t, http.MethodGet, "/api/v1/groups/eligible?birthDate=2016-10-05&gender=Q", "", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad gender: expected 400, got %d", rec.Code)
	}
}
