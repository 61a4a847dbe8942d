package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/omaralfarsi/fleetledger-backend/internal/trucks"
	"github.com/omaralfarsi/fleetledger-backend/pkg/db/models"
	"github.com/omaralfarsi/fleetledger-backend/pkg/enums"
	pkgerrors "github.com/omaralfarsi/fleetledger-backend/pkg/errors"
	"github.com/omaralfarsi/fleetledger-backend/pkg/types"
)

type fakeTruckService struct {
	createFn func(ctx context.Context, input trucks.CreateTruckInput) (*models.Truck, error)
	getFn    func(ctx context.Context, id uint) (*models.Truck, error)
}

func (f *fakeTruckService) Create(ctx context.Context, input trucks.CreateTruckInput) (*models.Truck, error) {
	return f.createFn(ctx, input)
}

func (f *fakeTruckService) GetByID(ctx context.Context, id uint) (*models.Truck, error) {
	return f.getFn(ctx, id)
}

func (f *fakeTruckService) List(ctx context.Context) ([]models.Truck, error) { return nil, nil }

func (f *fakeTruckService) Update(ctx context.Context, id uint, input trucks.UpdateTruckInput) (*models.Truck, error) {
	return nil, nil
}

func (f *fakeTruckService) Delete(ctx context.Context, id uint) error { return nil }

func TestCreateTruck_Created(t *testing.T) {
	svc := &fakeTruckService{
		createFn: func(ctx context.Context, input trucks.CreateTruckInput) (*models.Truck, error) {
			if input.PlateNumber != "KSA-1024" {
				t.Fatalf("unexpected plate %q", input.PlateNumber)
			}
			return &models.Truck{ID: 1, TruckType: input.TruckType, PlateNumber: input.PlateNumber, Status: enums.TruckStatusActive}, nil
		},
	}

	body := `{"truck_type":"flatbed","plate_number":"KSA-1024"}`
	r := httptest.NewRequest("POST", "/trucks", strings.NewReader(body))
	w := httptest.NewRecorder()
	CreateTruck(svc, nil)(w, r)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var envelope types.SuccessEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	data, ok := envelope.Data.(map[string]any)
	if !ok || data["plate_number"] != "KSA-1024" {
		t.Fatalf("unexpected payload: %v", envelope.Data)
	}
}

func TestCreateTruck_MissingRequiredFields(t *testing.T) {
	svc := &fakeTruckService{
		createFn: func(ctx context.Context, input trucks.CreateTruckInput) (*models.Truck, error) {
			t.Fatal("service must not be called on invalid input")
			return nil, nil
		},
	}

	r := httptest.NewRequest("POST", "/trucks", strings.NewReader(`{"truck_type":"flatbed"}`))
	w := httptest.NewRecorder()
	CreateTruck(svc, nil)(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var envelope types.ErrorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeValidation) {
		t.Fatalf("expected validation code, got %q", envelope.Error.Code)
	}
}

func TestGetTruck_NotFound(t *testing.T) {
	svc := &fakeTruckService{
		getFn: func(ctx context.Context, id uint) (*models.Truck, error) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "truck not found")
		},
	}

	router := chi.NewRouter()
	router.Get("/trucks/{truckId}", GetTruck(svc, nil))

	r := httptest.NewRequest("GET", "/trucks/42", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestGetTruck_BadID(t *testing.T) {
	svc := &fakeTruckService{
		getFn: func(ctx context.Context, id uint) (*models.Truck, error) {
			t.Fatal("service must not be called for a malformed id")
			return nil, nil
		},
	}

	router := chi.NewRouter()
	router.Get("/trucks/{truckId}", GetTruck(svc, nil))

	r := httptest.NewRequest("GET", "/trucks/not-a-number", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
