package usecase

import (
	"context"
	"errors"
	"strconv"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/converter"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/delivery/dto"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/delivery/http/middleware"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/repository"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrCampaignNotFound  = errors.New("vaccination campaign not found")
	ErrInvalidDateRange  = errors.New("end date must not be before start date")
	ErrInvalidPopulation = errors.New("target population and vaccinated count must not be negative")
)

type VaccinationCampaignUsecase interface {
	CreateCampaign(ctx context.Context, req *dto.CampaignRequest) (*dto.CampaignResponse, error)
	GetCampaign(ctx context.Context, id int) (*dto.CampaignResponse, error)
	ListCampaigns(ctx context.Context, filter *entity.CampaignFilter) ([]dto.CampaignResponse, int64, error)
	UpdateCampaign(ctx context.Context, id int, req *dto.CampaignRequest) (*dto.CampaignResponse, error)
	AddProgress(ctx context.Context, id int, vaccinated int) (*dto.CampaignResponse, error)
	DeleteCampaign(ctx context.Context, id int) error
}

type vaccinationCampaignUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	campaignRepo repository.VaccinationCampaignRepository
	auditService service.AuditService
	statsCache   *service.StatsCache
}

func NewVaccinationCampaignUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	campaignRepo repository.VaccinationCampaignRepository,
	auditService service.AuditService,
	statsCache *service.StatsCache,
) VaccinationCampaignUsecase {
	return &vaccinationCampaignUsecase{
		db:           db,
		log:          log,
		campaignRepo: campaignRepo,
		auditService: auditService,
		statsCache:   statsCache,
	}
}

func campaignFromRequest(req *dto.CampaignRequest, c *entity.VaccinationCampaign) error {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return err
	}
	if end.Before(start) {
		return ErrInvalidDateRange
	}
	if req.TargetPopulation < 0 || req.VaccinatedCount < 0 {
		return ErrInvalidPopulation
	}

	c.CampaignName = req.CampaignName
	c.VaccineName = req.VaccineName
	c.TargetGroup = req.TargetGroup
	c.StartDate = start
	c.EndDate = end
	c.TargetPopulation = req.TargetPopulation
	c.VaccinatedCount = req.VaccinatedCount
	c.Status = req.Status
	c.Zones = req.Zones
	if c.Status == "" {
		c.Status = entity.CampaignStatusPlanned
	}
	return nil
}

func campaignWriteError(err error) error {
	if isCheckViolation(err) {
		return ErrInvalidDateRange
	}
	return nil
}

func (u *vaccinationCampaignUsecase) CreateCampaign(ctx context.Context, req *dto.CampaignRequest) (*dto.CampaignResponse, error) {
	campaign := &entity.VaccinationCampaign{}
	if err := campaignFromRequest(req, campaign); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.campaignRepo.Create(tx, campaign); err != nil {
		if mapped := campaignWriteError(err); mapped != nil {
			return nil, mapped
		}
		u.log.Warnf("Failed to create vaccination campaign: %+v", err)
		return nil, err
	}

	response := converter.CampaignToResponse(campaign)
	if err := u.auditService.LogCreate(ctx, tx, middleware.ActorFromContext(ctx), entity.AuditActionCampaignCreate, "vaccination_campaign", strconv.Itoa(campaign.ID), response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.statsCache.Invalidate(ctx)
	return response, nil
}

func (u *vaccinationCampaignUsecase) GetCampaign(ctx context.Context, id int) (*dto.CampaignResponse, error) {
	campaign, err := u.campaignRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find vaccination campaign: %+v", err)
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}

	return converter.CampaignToResponse(campaign), nil
}

func (u *vaccinationCampaignUsecase) ListCampaigns(ctx context.Context, filter *entity.CampaignFilter) ([]dto.CampaignResponse, int64, error) {
	items, total, err := u.campaignRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find vaccination campaigns: %+v", err)
		return nil, 0, err
	}

	return converter.CampaignsToResponses(items), total, nil
}

func (u *vaccinationCampaignUsecase) UpdateCampaign(ctx context.Context, id int, req *dto.CampaignRequest) (*dto.CampaignResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	campaign, err := u.campaignRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find vaccination campaign: %+v", err)
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}

	oldValue := converter.CampaignToResponse(campaign)
	if err := campaignFromRequest(req, campaign); err != nil {
		return nil, err
	}

	if err := u.campaignRepo.Update(tx, campaign); err != nil {
		if mapped := campaignWriteError(err); mapped != nil {
			return nil, mapped
		}
		u.log.Warnf("Failed to update vaccination campaign: %+v", err)
		return nil, err
	}

	newValue := converter.CampaignToResponse(campaign)
	if err := u.auditService.LogUpdate(ctx, tx, middleware.ActorFromContext(ctx), entity.AuditActionCampaignUpdate, "vaccination_campaign", strconv.Itoa(id), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.statsCache.Invalidate(ctx)
	return newValue, nil
}

// AddProgress increments the vaccinated count. Coverage above the target
// population is kept and reported as is.
func (u *vaccinationCampaignUsecase) AddProgress(ctx context.Context, id int, vaccinated int) (*dto.CampaignResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affectedRows, err := u.campaignRepo.AddVaccinated(tx, id, vaccinated)
	if err != nil {
		u.log.Warnf("Failed to record campaign progress: %+v", err)
		return nil, err
	}
	if affectedRows == 0 {
		return nil, ErrCampaignNotFound
	}

	campaign, err := u.campaignRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find vaccination campaign: %+v", err)
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}

	response := converter.CampaignToResponse(campaign)
	progress := map[string]interface{}{"vaccinated": vaccinated, "vaccinated_count": campaign.VaccinatedCount}
	if err := u.auditService.LogUpdate(ctx, tx, middleware.ActorFromContext(ctx), entity.AuditActionCampaignProgress, "vaccination_campaign", strconv.Itoa(id), nil, progress); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.statsCache.Invalidate(ctx)
	return response, nil
}

func (u *vaccinationCampaignUsecase) DeleteCampaign(ctx context.Context, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	campaign, err := u.campaignRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find vaccination campaign: %+v", err)
		return err
	}
	if campaign == nil {
		return ErrCampaignNotFound
	}
	oldValue := converter.CampaignToResponse(campaign)

	affectedRows, err := u.campaignRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed delete vaccination campaign: %+v", err)
		return err
	}
	if affectedRows == 0 {
		return ErrCampaignNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, middleware.ActorFromContext(ctx), entity.AuditActionCampaignDelete, "vaccination_campaign", strconv.Itoa(id), oldValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.statsCache.Invalidate(ctx)
	return nil
}
