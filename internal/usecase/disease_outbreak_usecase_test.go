package usecase

import (
	"errors"
	"testing"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/delivery/dto"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5/pgconn"
)

type outbreakFixture struct {
	uc    DiseaseOutbreakUsecase
	repo  *mockOutbreakRepo
	pool  *fakePool
	audit *fakeAuditService
	mr    *miniredis.Miniredis
}

func newOutbreakFixture(t *testing.T) *outbreakFixture {
	t.Helper()
	db, pool := newTestDB(t)
	statsCache, mr := newTestStatsCache(t)
	mr.Set(dashboardCacheKey, "{}")

	f := &outbreakFixture{
		repo:  &mockOutbreakRepo{},
		pool:  pool,
		audit: &fakeAuditService{},
		mr:    mr,
	}
	f.uc = NewDiseaseOutbreakUsecase(db, quietLogger(), f.repo, f.audit, statsCache)
	return f
}

func dengueRequest() *dto.OutbreakRequest {
	return &dto.OutbreakRequest{
		DiseaseName:       "Dengue",
		DiseaseType:       entity.DiseaseTypeCommunicable,
		Zone:              "Zone C",
		TotalCases:        40,
		ActiveCases:       25,
		RecoveredCases:    14,
		DeathCases:        1,
		FirstReportedDate: "2026-07-01",
		RiskScore:         6.5,
	}
}

func TestCreateOutbreak_Defaults(t *testing.T) {
	f := newOutbreakFixture(t)
	ctx, adminID := adminContext(t)
	var stored *entity.DiseaseOutbreak
	f.repo.create = func(o *entity.DiseaseOutbreak) error {
		o.ID = 7
		stored = o
		return nil
	}

	resp, err := f.uc.CreateOutbreak(ctx, dengueRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.AlertLevel != entity.AlertLevelNormal || stored.OutbreakStatus != entity.OutbreakStatusActive {
		t.Errorf("expected normal/active defaults, got %s/%s", stored.AlertLevel, stored.OutbreakStatus)
	}
	if resp.ID != 7 || resp.RecoveryRate != 35 || resp.FirstReportedDate != "2026-07-01" {
		t.Errorf("unexpected response %+v", resp)
	}
	if len(f.audit.calls) != 1 || f.audit.calls[0].action != entity.AuditActionOutbreakCreate || f.audit.calls[0].entityID != "7" {
		t.Fatalf("unexpected audit calls %+v", f.audit.calls)
	}
	if actor := f.audit.calls[0].actor; actor == nil || *actor != adminID {
		t.Errorf("expected admin as actor, got %v", actor)
	}
	if f.pool.commits() != 1 {
		t.Errorf("expected one commit, got %d", f.pool.commits())
	}
	if f.mr.Exists(dashboardCacheKey) {
		t.Errorf("expected cached stats to be invalidated")
	}
}

func TestCreateOutbreak_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(req *dto.OutbreakRequest)
		repoErr error
		wantErr error
	}{
		{
			name:    "buckets exceed total",
			mutate:  func(req *dto.OutbreakRequest) { req.DeathCases = 2 },
			wantErr: ErrInvalidCaseCount,
		},
		{
			name:    "bad reported date",
			mutate:  func(req *dto.OutbreakRequest) { req.FirstReportedDate = "July 1" },
			wantErr: ErrInvalidDateFormat,
		},
		{
			name:    "database check",
			repoErr: &pgconn.PgError{Code: pgCheckViolation, ConstraintName: "chk_outbreak_cases"},
			wantErr: ErrInvalidCaseCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOutbreakFixture(t)
			created := false
			f.repo.create = func(o *entity.DiseaseOutbreak) error {
				created = true
				return tt.repoErr
			}

			req := dengueRequest()
			if tt.mutate != nil {
				tt.mutate(req)
			}
			if _, err := f.uc.CreateOutbreak(t.Context(), req); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.repoErr == nil && created {
				t.Errorf("invalid request must not reach the repository")
			}
			if f.pool.commits() != 0 || len(f.audit.actions()) != 0 {
				t.Errorf("expected nothing written")
			}
			if !f.mr.Exists(dashboardCacheKey) {
				t.Errorf("expected cached stats to survive a rejected write")
			}
		})
	}
}

func TestUpdateOutbreak(t *testing.T) {
	f := newOutbreakFixture(t)
	f.repo.findByID = func(id int) (*entity.DiseaseOutbreak, error) {
		return &entity.DiseaseOutbreak{ID: id, DiseaseName: "Dengue", Zone: "Zone C", TotalCases: 40, ActiveCases: 40,
			AlertLevel: entity.AlertLevelWarning, OutbreakStatus: entity.OutbreakStatusActive}, nil
	}
	f.repo.update = func(o *entity.DiseaseOutbreak) error { return nil }

	req := dengueRequest()
	req.AlertLevel = entity.AlertLevelCritical
	req.OutbreakStatus = entity.OutbreakStatusMonitoring

	resp, err := f.uc.UpdateOutbreak(t.Context(), 7, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.AlertLevel != entity.AlertLevelCritical || resp.OutbreakStatus != entity.OutbreakStatusMonitoring {
		t.Errorf("unexpected response %+v", resp)
	}
	if got := f.audit.actions(); len(got) != 1 || got[0] != entity.AuditActionOutbreakUpdate {
		t.Errorf("unexpected audit actions %v", got)
	}
	if f.mr.Exists(dashboardCacheKey) {
		t.Errorf("expected cached stats to be invalidated")
	}
}

func TestUpdateOutbreak_NotFound(t *testing.T) {
	f := newOutbreakFixture(t)
	f.repo.findByID = func(id int) (*entity.DiseaseOutbreak, error) { return nil, nil }

	if _, err := f.uc.UpdateOutbreak(t.Context(), 404, dengueRequest()); !errors.Is(err, ErrOutbreakNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if f.pool.commits() != 0 {
		t.Errorf("expected rollback")
	}
}

func TestDeleteOutbreak(t *testing.T) {
	tests := []struct {
		name     string
		existing *entity.DiseaseOutbreak
		affected int64
		wantErr  error
	}{
		{name: "deleted", existing: &entity.DiseaseOutbreak{ID: 7}, affected: 1},
		{name: "missing", wantErr: ErrOutbreakNotFound},
		{name: "removed concurrently", existing: &entity.DiseaseOutbreak{ID: 7}, wantErr: ErrOutbreakNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOutbreakFixture(t)
			f.repo.findByID = func(id int) (*entity.DiseaseOutbreak, error) { return tt.existing, nil }
			f.repo.delete = func(id int) (int64, error) { return tt.affected, nil }

			err := f.uc.DeleteOutbreak(t.Context(), 7)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			wantActions := 0
			if tt.wantErr == nil {
				wantActions = 1
			}
			if got := f.audit.actions(); len(got) != wantActions {
				t.Errorf("expected %d audit entries, got %v", wantActions, got)
			}
			if f.mr.Exists(dashboardCacheKey) == (tt.wantErr == nil) {
				t.Errorf("cache invalidation should follow a successful delete only")
			}
		})
	}
}

func TestZoneSummary_NeverNil(t *testing.T) {
	f := newOutbreakFixture(t)
	f.repo.zoneSummary = func() ([]entity.ZoneCaseCount, error) { return nil, nil }

	rows, err := f.uc.ZoneSummary(t.Context())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows == nil || len(rows) != 0 {
		t.Errorf("expected empty slice, got %#v", rows)
	}
}
