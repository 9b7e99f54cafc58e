package repository

import (
	"gorm.io/gorm"

	"github.com/HawgLeg/equipscout/app/models"
)

// reportRepository implements the ReportRepository interface
type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository instance
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(report *models.Report) error {
	return r.db.Create(report).Error
}

func (r *reportRepository) GetByUUID(uuid string) (*models.Report, error) {
	var report models.Report
	if err := r.db.Where("uuid = ?", uuid).First(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) Update(report *models.Report) error {
	return r.db.Save(report).Error
}

// List returns reports newest first, optionally filtered by status.
func (r *reportRepository) List(status string, limit, offset int) ([]models.Report, error) {
	query := r.db.Order("created_at DESC").Limit(limit).Offset(offset)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var reports []models.Report
	err := query.Find(&reports).Error
	return reports, err
}

func (r *reportRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Report{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
