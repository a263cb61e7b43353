package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/delivery/dto"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
)

func newTestStatsCache(t *testing.T) (*service.StatsCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return service.NewStatsCache(client, quietLogger(), time.Minute), mr
}

func TestAdjustStock(t *testing.T) {
	tests := []struct {
		name       string
		quantity   int
		delta      int
		wantErr    error
		wantQty    int
		wantStatus string
	}{
		{name: "restock", quantity: 20, delta: 200, wantQty: 220, wantStatus: entity.StockStatusAdequate},
		{name: "dispense to low", quantity: 120, delta: -30, wantQty: 90, wantStatus: entity.StockStatusLow},
		{name: "dispense everything", quantity: 50, delta: -50, wantQty: 0, wantStatus: entity.StockStatusCritical},
		{name: "dispense more than held", quantity: 10, delta: -11, wantErr: ErrInsufficientStock},
		{name: "restock past column limit", quantity: maxStockQuantity - 5, delta: 10, wantErr: ErrStockLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, pool := newTestDB(t)
			cache, mr := newTestStatsCache(t)
			mr.Set(service.StatsKeyPrefix+"admin-dashboard", "{}")

			stock := &entity.MedicineStock{ID: 3, HospitalID: 1, Quantity: tt.quantity, ReorderLevel: 100}
			stock.StockStatus = stock.ComputeStockStatus()
			updated := false
			repo := &mockMedicineRepo{
				findByIDForUpdate: func(id int) (*entity.MedicineStock, error) { return stock, nil },
				update: func(s *entity.MedicineStock) error {
					updated = true
					return nil
				},
			}
			audit := &fakeAuditService{}
			uc := NewMedicineStockUsecase(db, quietLogger(), repo, audit, cache)

			resp, err := uc.AdjustStock(context.Background(), 3, tt.delta)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr != nil {
				if updated || pool.commits() != 0 {
					t.Errorf("expected nothing to be written")
				}
				if !mr.Exists(service.StatsKeyPrefix + "admin-dashboard") {
					t.Errorf("expected cache to survive a rejected write")
				}
				return
			}

			if resp.Quantity != tt.wantQty || resp.StockStatus != tt.wantStatus {
				t.Errorf("expected %d/%s, got %d/%s", tt.wantQty, tt.wantStatus, resp.Quantity, resp.StockStatus)
			}
			if mr.Exists(service.StatsKeyPrefix + "admin-dashboard") {
				t.Errorf("expected cache to be invalidated")
			}
			if got := audit.actions(); len(got) != 1 || got[0] != entity.AuditActionMedicineStock {
				t.Errorf("unexpected audit trail %v", got)
			}
		})
	}
}

func TestAdjustStock_NotFound(t *testing.T) {
	db, _ := newTestDB(t)
	repo := &mockMedicineRepo{
		findByIDForUpdate: func(id int) (*entity.MedicineStock, error) { return nil, nil },
	}
	uc := NewMedicineStockUsecase(db, quietLogger(), repo, &fakeAuditService{}, nil)

	if _, err := uc.AdjustStock(context.Background(), 99, 5); !errors.Is(err, ErrMedicineNotFound) {
		t.Fatalf("expected ErrMedicineNotFound, got %v", err)
	}
}

func TestCreateMedicine_DefaultsAndHospitalCheck(t *testing.T) {
	db, _ := newTestDB(t)
	var created *entity.MedicineStock
	repo := &mockMedicineRepo{
		create: func(s *entity.MedicineStock) error {
			created = s
			return nil
		},
	}
	uc := NewMedicineStockUsecase(db, quietLogger(), repo, &fakeAuditService{}, nil)

	_, err := uc.CreateMedicine(context.Background(), &dto.MedicineRequest{
		HospitalID:   1,
		MedicineName: "Paracetamol",
		Quantity:     40,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ReorderLevel != entity.DefaultReorderLevel {
		t.Errorf("expected default reorder level, got %d", created.ReorderLevel)
	}

	repo.create = func(s *entity.MedicineStock) error {
		return &pgconn.PgError{Code: "23503", ConstraintName: "fk_medicine_stock_hospital"}
	}
	if _, err := uc.CreateMedicine(context.Background(), &dto.MedicineRequest{HospitalID: 404, MedicineName: "ORS"}); !errors.Is(err, ErrHospitalNotFound) {
		t.Fatalf("expected ErrHospitalNotFound, got %v", err)
	}
}

func TestUpdateBeds_KeepsCapacityInvariant(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.UpdateBedsRequest
		wantErr error
	}{
		{name: "free a bed", req: dto.UpdateBedsRequest{AvailableBeds: intPtr(11)}},
		{name: "grow ward", req: dto.UpdateBedsRequest{TotalBeds: intPtr(80), AvailableBeds: intPtr(60)}},
		{name: "available above total", req: dto.UpdateBedsRequest{AvailableBeds: intPtr(51)}, wantErr: ErrInvalidCapacity},
		{name: "shrink below available", req: dto.UpdateBedsRequest{TotalBeds: intPtr(5)}, wantErr: ErrInvalidCapacity},
		{name: "icu above total", req: dto.UpdateBedsRequest{AvailableICUBeds: intPtr(9)}, wantErr: ErrInvalidCapacity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, pool := newTestDB(t)
			hospital := &entity.Hospital{ID: 2, Name: "Civil Hospital", TotalBeds: 50, AvailableBeds: 10, ICUBeds: 8, AvailableICUBeds: 2}
			repo := &mockHospitalRepo{
				findByID: func(id int) (*entity.Hospital, error) { return hospital, nil },
				update:   func(h *entity.Hospital) error { return nil },
			}
			uc := NewHospitalUsecase(db, quietLogger(), repo, &fakeAuditService{}, nil)

			resp, err := uc.UpdateBeds(context.Background(), 2, &tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr != nil {
				if pool.commits() != 0 {
					t.Errorf("expected rollback")
				}
				return
			}
			if resp.AvailableBeds > resp.TotalBeds {
				t.Errorf("invariant broken: %+v", resp)
			}
		})
	}
}

func TestUpdateBeds_CheckViolationMapsToCapacity(t *testing.T) {
	db, _ := newTestDB(t)
	repo := &mockHospitalRepo{
		findByID: func(id int) (*entity.Hospital, error) {
			return &entity.Hospital{ID: id, TotalBeds: 10, AvailableBeds: 5}, nil
		},
		update: func(h *entity.Hospital) error {
			return &pgconn.PgError{Code: "23514", ConstraintName: "chk_hospitals_beds"}
		},
	}
	uc := NewHospitalUsecase(db, quietLogger(), repo, &fakeAuditService{}, nil)

	if _, err := uc.UpdateBeds(context.Background(), 1, &dto.UpdateBedsRequest{AvailableBeds: intPtr(4)}); !errors.Is(err, ErrInvalidCapacity) {
		t.Fatalf("expected ErrInvalidCapacity, got %v", err)
	}
}
