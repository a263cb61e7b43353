package usecase

import (
	"context"
	"time"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/converter"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/delivery/dto"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/repository"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/service"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const adminDashboardKey = "admin-dashboard"

type AdminDashboardUsecase interface {
	Dashboard(ctx context.Context) (*dto.AdminDashboardResponse, error)
}

type adminDashboardUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	userRepo      repository.UserRepository
	hospitalRepo  repository.HospitalRepository
	equipmentRepo repository.EquipmentRepository
	medicineRepo  repository.MedicineStockRepository
	outbreakRepo  repository.DiseaseOutbreakRepository
	campaignRepo  repository.VaccinationCampaignRepository
	statsCache    *service.StatsCache
	now           func() time.Time
}

func NewAdminDashboardUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	hospitalRepo repository.HospitalRepository,
	equipmentRepo repository.EquipmentRepository,
	medicineRepo repository.MedicineStockRepository,
	outbreakRepo repository.DiseaseOutbreakRepository,
	campaignRepo repository.VaccinationCampaignRepository,
	statsCache *service.StatsCache,
) AdminDashboardUsecase {
	return &adminDashboardUsecase{
		db:            db,
		log:           log,
		userRepo:      userRepo,
		hospitalRepo:  hospitalRepo,
		equipmentRepo: equipmentRepo,
		medicineRepo:  medicineRepo,
		outbreakRepo:  outbreakRepo,
		campaignRepo:  campaignRepo,
		statsCache:    statsCache,
		now:           time.Now,
	}
}

func (u *adminDashboardUsecase) Dashboard(ctx context.Context) (*dto.AdminDashboardResponse, error) {
	return service.CachedStats(ctx, u.statsCache, adminDashboardKey, u.compute)
}

// compute runs every aggregation concurrently; the first failure cancels the rest.
func (u *adminDashboardUsecase) compute(ctx context.Context) (*dto.AdminDashboardResponse, error) {
	var (
		totals    *entity.BedTotals
		zoneBeds  []entity.ZoneBedSummary
		equipment []entity.EquipmentStatusSummary
		medicine  []entity.StatusCount
		zoneCases []entity.ZoneCaseCount
		coverage  *entity.CampaignCoverage
		patients  int64
		doctors   int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		totals, err = u.hospitalRepo.BedTotals(u.db.WithContext(gctx))
		return err
	})
	g.Go(func() (err error) {
		zoneBeds, err = u.hospitalRepo.ZoneBedSummary(u.db.WithContext(gctx))
		return err
	})
	g.Go(func() (err error) {
		equipment, err = u.equipmentRepo.SummaryByStatus(u.db.WithContext(gctx))
		return err
	})
	g.Go(func() (err error) {
		medicine, err = u.medicineRepo.CountByStatus(u.db.WithContext(gctx))
		return err
	})
	g.Go(func() (err error) {
		zoneCases, err = u.outbreakRepo.ZoneSummary(u.db.WithContext(gctx))
		return err
	})
	g.Go(func() (err error) {
		coverage, err = u.campaignRepo.Coverage(u.db.WithContext(gctx))
		return err
	})
	g.Go(func() (err error) {
		patients, err = u.userRepo.CountByRole(u.db.WithContext(gctx), entity.RoleIDPatient)
		return err
	})
	g.Go(func() (err error) {
		doctors, err = u.userRepo.CountByRole(u.db.WithContext(gctx), entity.RoleIDDoctor)
		return err
	})

	if err := g.Wait(); err != nil {
		u.log.Warnf("Failed to compute admin dashboard: %+v", err)
		return nil, err
	}

	if totals == nil {
		totals = &entity.BedTotals{}
	}
	if coverage == nil {
		coverage = &entity.CampaignCoverage{}
	}

	return &dto.AdminDashboardResponse{
		Beds:           converter.BedTotalsToResponse(totals),
		ZoneBeds:       nonNilSlice(zoneBeds),
		Equipment:      nonNilSlice(equipment),
		MedicineStatus: nonNilSlice(medicine),
		ZoneCases:      nonNilSlice(zoneCases),
		Campaigns: dto.CampaignCoverageResponse{
			CampaignCoverage: *coverage,
			CoverageRate:     coverage.CoverageRate(),
		},
		Counts: dto.EntityCounts{
			Patients:  patients,
			Doctors:   doctors,
			Hospitals: totals.Hospitals,
		},
		GeneratedAt: u.now().UTC(),
	}, nil
}

func nonNilSlice[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
