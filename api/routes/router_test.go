package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/hardikraval/medlocate-backend/internal/auth"
	"github.com/hardikraval/medlocate-backend/internal/inventory"
	"github.com/hardikraval/medlocate-backend/internal/medicines"
	"github.com/hardikraval/medlocate-backend/internal/pharmacies"
	"github.com/hardikraval/medlocate-backend/internal/search"
	"github.com/hardikraval/medlocate-backend/internal/users"
	"github.com/hardikraval/medlocate-backend/pkg/config"
	"github.com/hardikraval/medlocate-backend/pkg/enums"
	pkgerrors "github.com/hardikraval/medlocate-backend/pkg/errors"
	"github.com/hardikraval/medlocate-backend/pkg/pagination"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubAuthService struct{}

func (stubAuthService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.AuthResponse, error) {
	return &auth.AuthResponse{AccessToken: "token"}, nil
}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.AuthResponse, error) {
	return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
}

func (stubAuthService) Logout(ctx context.Context, accessID string) error {
	return nil
}

type stubUserService struct{}

func (stubUserService) Me(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	return &users.UserDTO{ID: userID}, nil
}

func (stubUserService) UpdateProfile(ctx context.Context, userID uuid.UUID, input users.UpdateProfileInput) (*users.UserDTO, error) {
	return &users.UserDTO{ID: userID}, nil
}

func (stubUserService) ChangePassword(ctx context.Context, userID uuid.UUID, input users.ChangePasswordInput) error {
	return nil
}

func (stubUserService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	return nil
}

type stubPharmacyService struct{}

func (stubPharmacyService) CreatePharmacy(ctx context.Context, ownerID uuid.UUID, ownerRole enums.UserRole, input pharmacies.CreatePharmacyInput) (*pharmacies.PharmacyDTO, error) {
	return &pharmacies.PharmacyDTO{}, nil
}

func (stubPharmacyService) UpdatePharmacy(ctx context.Context, actorID uuid.UUID, actorRole enums.UserRole, pharmacyID uuid.UUID, input pharmacies.UpdatePharmacyInput) (*pharmacies.PharmacyDTO, error) {
	return &pharmacies.PharmacyDTO{}, nil
}

func (stubPharmacyService) DeletePharmacy(ctx context.Context, actorID uuid.UUID, actorRole enums.UserRole, pharmacyID uuid.UUID) error {
	return nil
}

func (stubPharmacyService) GetPharmacy(ctx context.Context, pharmacyID uuid.UUID) (*pharmacies.PharmacyDTO, error) {
	return &pharmacies.PharmacyDTO{ID: pharmacyID}, nil
}

func (stubPharmacyService) ListMine(ctx context.Context, ownerID uuid.UUID) ([]pharmacies.PharmacyDTO, error) {
	return nil, nil
}

type stubMedicineService struct{}

func (stubMedicineService) ListMedicines(ctx context.Context, q string, params pagination.Params) (*medicines.MedicineListDTO, error) {
	return &medicines.MedicineListDTO{Items: []medicines.MedicineDTO{}}, nil
}

func (stubMedicineService) GetMedicine(ctx context.Context, id uuid.UUID) (*medicines.MedicineDTO, error) {
	return &medicines.MedicineDTO{ID: id}, nil
}

func (stubMedicineService) CreateMedicine(ctx context.Context, actorRole enums.UserRole, input medicines.CreateMedicineInput) (*medicines.MedicineDTO, error) {
	return &medicines.MedicineDTO{}, nil
}

type stubInventoryService struct{}

func (stubInventoryService) UpsertListing(ctx context.Context, actorID uuid.UUID, actorRole enums.UserRole, input inventory.UpsertListingInput) (*inventory.ListingDTO, error) {
	return &inventory.ListingDTO{}, nil
}

func (stubInventoryService) ListListings(ctx context.Context, pharmacyID uuid.UUID, params pagination.Params) (*inventory.ListingPageDTO, error) {
	return &inventory.ListingPageDTO{}, nil
}

func (stubInventoryService) DeleteListing(ctx context.Context, actorID uuid.UUID, actorRole enums.UserRole, listingID uuid.UUID) error {
	return nil
}

type stubSearchService struct {
	lastKind enums.SearchKind
}

func (s *stubSearchService) SearchPharmacies(ctx context.Context, q search.Query) (*search.PharmacyResultDTO, error) {
	s.lastKind = enums.SearchKindPharmacy
	return &search.PharmacyResultDTO{Kind: enums.SearchKindPharmacy, Items: []pharmacies.PharmacyDTO{}}, nil
}

func (s *stubSearchService) SearchMedicines(ctx context.Context, q search.Query) (*search.MedicineResultDTO, error) {
	s.lastKind = enums.SearchKindMedicine
	return &search.MedicineResultDTO{Kind: enums.SearchKindMedicine, Items: []search.ListingResultDTO{}}, nil
}

func (s *stubSearchService) SearchAll(ctx context.Context, q search.Query) (*search.AllResultDTO, error) {
	s.lastKind = enums.SearchKindAll
	return &search.AllResultDTO{Kind: enums.SearchKindAll}, nil
}

func testRouterDeps(searchSvc search.Service) Deps {
	return Deps{
		Config: &config.Config{
			App: config.AppConfig{Env: "dev"},
			JWT: config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60},
		},
		DB:          stubPinger{},
		Sessions:    stubSessionChecker{},
		AuthService: stubAuthService{},
		UserService: stubUserService{},
		Pharmacies:  stubPharmacyService{},
		Medicines:   stubMedicineService{},
		Inventory:   stubInventoryService{},
		Search:      searchSvc,
	}
}

func TestRouterHealthLive(t *testing.T) {
	handler := NewRouter(testRouterDeps(&stubSearchService{}))

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if got := rec.Header().Get("X-MedLocate-Env"); got != "dev" {
		t.Fatalf("expected env header, got %q", got)
	}
}

func TestRouterProtectedRouteRequiresAuth(t *testing.T) {
	handler := NewRouter(testRouterDeps(&stubSearchService{}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestRouterSearchDispatchesOnKind(t *testing.T) {
	cases := []struct {
		kind string
		want enums.SearchKind
	}{
		{kind: "", want: enums.SearchKindAll},
		{kind: "all", want: enums.SearchKindAll},
		{kind: "pharmacy", want: enums.SearchKindPharmacy},
		{kind: "medicine", want: enums.SearchKindMedicine},
	}
	for _, tc := range cases {
		svc := &stubSearchService{}
		handler := NewRouter(testRouterDeps(svc))

		url := "/api/v1/search?q=paracetamol"
		if tc.kind != "" {
			url += "&kind=" + tc.kind
		}
		req := httptest.NewRequest(http.MethodGet, url, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("kind %q: expected 200 got %d", tc.kind, rec.Code)
		}
		if svc.lastKind != tc.want {
			t.Fatalf("kind %q: expected dispatch to %s got %s", tc.kind, tc.want, svc.lastKind)
		}
	}
}

func TestRouterSearchRejectsMissingQuery(t *testing.T) {
	handler := NewRouter(testRouterDeps(&stubSearchService{}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error payload: %v", err)
	}
	if payload.Error.Code != string(pkgerrors.CodeValidation) {
		t.Fatalf("unexpected code %s", payload.Error.Code)
	}
}

func TestRouterHealthReady(t *testing.T) {
	handler := NewRouter(testRouterDeps(&stubSearchService{}))

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}
