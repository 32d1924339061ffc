package archive

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/bei612/meraki-workflows/internal/core/domain"
	"github.com/bei612/meraki-workflows/internal/core/ports"
)

// SQLiteArchive implements ports.ReportArchive using GORM and SQLite.
type SQLiteArchive struct {
	db *gorm.DB
}

// RunModel is the GORM model for archived report runs.
type RunModel struct {
	ID             string `gorm:"primaryKey"`
	Type           string `gorm:"index"`
	OrganizationID string
	Success        bool
	ErrorMessage   string
	GeneratedAt    time.Time `gorm:"index"`
	DurationMS     int64
	Payload        []byte
}

// NewSQLiteArchive initializes the database and migrates schema.
func NewSQLiteArchive(path string) (*SQLiteArchive, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&RunModel{}); err != nil {
		return nil, err
	}

	return &SQLiteArchive{db: db}, nil
}

// SaveRun archives one report run.
func (a *SQLiteArchive) SaveRun(ctx context.Context, run domain.ReportRun) error {
	model := toModel(run)
	return a.db.WithContext(ctx).Save(&model).Error
}

// GetRun retrieves an archived run by id.
func (a *SQLiteArchive) GetRun(ctx context.Context, id string) (domain.ReportRun, error) {
	var model RunModel
	if err := a.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ReportRun{}, fmt.Errorf("run %s: %w", id, domain.ErrNotFound)
		}
		return domain.ReportRun{}, err
	}
	return toDomain(model), nil
}

// ListRuns returns the most recent runs, newest first. limit <= 0 selects
// a sane default page.
func (a *SQLiteArchive) ListRuns(ctx context.Context, limit int) ([]domain.ReportRun, error) {
	if limit <= 0 {
		limit = 50
	}
	var models []RunModel
	err := a.db.WithContext(ctx).
		Select("id", "type", "organization_id", "success", "error_message", "generated_at", "duration_ms").
		Order("generated_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	runs := make([]domain.ReportRun, len(models))
	for i, m := range models {
		runs[i] = toDomain(m)
	}
	return runs, nil
}

func (a *SQLiteArchive) Close() error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func toModel(run domain.ReportRun) RunModel {
	return RunModel{
		ID:             run.ID,
		Type:           string(run.Type),
		OrganizationID: run.OrganizationID,
		Success:        run.Success,
		ErrorMessage:   run.ErrorMessage,
		GeneratedAt:    run.GeneratedAt,
		DurationMS:     run.Duration.Milliseconds(),
		Payload:        run.Payload,
	}
}

func toDomain(m RunModel) domain.ReportRun {
	return domain.ReportRun{
		ID:             m.ID,
		Type:           domain.ReportType(m.Type),
		OrganizationID: m.OrganizationID,
		Success:        m.Success,
		ErrorMessage:   m.ErrorMessage,
		GeneratedAt:    m.GeneratedAt,
		Duration:       time.Duration(m.DurationMS) * time.Millisecond,
		Payload:        m.Payload,
	}
}

// Ensure interface compliance
var _ ports.ReportArchive = (*SQLiteArchive)(nil)
