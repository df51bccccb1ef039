package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agrichain/agrichain/repository/models"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Repository error codes
const (
	CodeNotFound      = "NOT_FOUND"
	CodeDatabaseError = "DATABASE_ERROR"
)

// RepositoryError represents repository layer errors
type RepositoryError struct {
	Code    string
	Message string
	Detail  string
}

func (e *RepositoryError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Detail)
}

func databaseError(message string, err error) *RepositoryError {
	return &RepositoryError{Code: CodeDatabaseError, Message: message, Detail: err.Error()}
}

// Connection retry settings
const (
	connectAttempts = 10
	connectBackoff  = 2 * time.Second
)

type Repository struct {
	db     *gorm.DB
	logger cmtlog.Logger
}

func NewRepository(logger cmtlog.Logger) *Repository {
	return &Repository{logger: logger}
}

func dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "postgres":
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", driver)
}

// ConnectDB opens the database, retrying while it comes up
func (r *Repository) ConnectDB(ctx context.Context, driver, dsn string) error {
	dial, err := dialector(driver, dsn)
	if err != nil {
		return err
	}

	var lastErr error
	for i := range connectAttempts {
		r.logger.Info("Connecting to database", "driver", driver, "attempt", i+1)
		db, err := gorm.Open(dial, &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		})
		if err == nil {
			r.db = db
			r.logger.Info("Connected to database", "driver", driver)
			return nil
		}

		lastErr = err
		r.logger.Error("Database connection failed", "attempt", i+1, "err", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(connectBackoff):
		}
	}
	return fmt.Errorf("connecting to %s after %d attempts: %w", driver, connectAttempts, lastErr)
}

// Close releases the underlying connection pool
func (r *Repository) Close() error {
	if r.db == nil {
		return nil
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Migrate creates missing tables
func (r *Repository) Migrate() error {
	migrator := r.db.Migrator()

	tables := []struct {
		name  string
		model interface{}
	}{
		{"Registration", &models.Registration{}},
		{"Activity", &models.Activity{}},
	}

	for _, table := range tables {
		if migrator.HasTable(table.model) {
			r.logger.Info("Table already exists", "table", table.name)
			continue
		}
		if err := migrator.CreateTable(table.model); err != nil {
			return fmt.Errorf("creating %s table: %w", table.name, err)
		}
		r.logger.Info("Table created", "table", table.name)
	}
	return nil
}

// Seed inserts the demo registrations and ledger entries into an empty database
func (r *Repository) Seed() error {
	var count int64
	if err := r.db.Model(&models.Registration{}).Count(&count).Error; err != nil {
		return err
	}
	var activities int64
	if err := r.db.Model(&models.Activity{}).Count(&activities).Error; err != nil {
		return err
	}
	if count > 0 || activities > 0 {
		r.logger.Info("Seed data already exists, skipping")
		return nil
	}

	registrations := []models.Registration{
		{Name: "Rahul Modi", Email: "rahul@farm.com", Organization: "Green Valley Farm", Role: "farmer", RequestDate: "2024-01-20", Status: "pending"},
		{Name: "Piyush Rajat", Email: "piyush@distrib.com", Organization: "Fresh Distribution Co.", Role: "distributor", RequestDate: "2024-01-21", Status: "pending"},
	}
	for i := range registrations {
		if err := r.db.Create(&registrations[i]).Error; err != nil {
			return fmt.Errorf("seeding registration %s: %w", registrations[i].Name, err)
		}
	}

	ledger := []models.Activity{
		{Type: "Product Added", User: "Rahul Modi", Product: "Organic Tomatoes", BatchID: "BATCH-001", Timestamp: time.Date(2024, 1, 25, 10, 30, 0, 0, time.UTC), Status: "Confirmed"},
		{Type: "Product Transferred", User: "Piyush Rajat", Product: "Fresh Lettuce", BatchID: "BATCH-002", Timestamp: time.Date(2024, 1, 25, 11, 15, 0, 0, time.UTC), Status: "Confirmed"},
	}
	for i := range ledger {
		if err := r.db.Create(&ledger[i]).Error; err != nil {
			return fmt.Errorf("seeding activity %s: %w", ledger[i].Type, err)
		}
	}

	r.logger.Info("Database seeding completed", "registrations", len(registrations), "activities", len(ledger))
	return nil
}

// CreateRegistration stores a new sign-up request
func (r *Repository) CreateRegistration(ctx context.Context, reg *models.Registration) *RepositoryError {
	if reg.Status == "" {
		reg.Status = "pending"
	}
	if err := r.db.WithContext(ctx).Create(reg).Error; err != nil {
		return databaseError("Failed to create registration", err)
	}
	return nil
}

// ListRegistrations returns pending sign-up requests, oldest first
func (r *Repository) ListRegistrations(ctx context.Context) ([]models.Registration, *RepositoryError) {
	var regs []models.Registration
	if err := r.db.WithContext(ctx).Order("registration_id asc").Find(&regs).Error; err != nil {
		return nil, databaseError("Failed to list registrations", err)
	}
	return regs, nil
}

// GetRegistration returns one sign-up request
func (r *Repository) GetRegistration(ctx context.Context, id uint) (*models.Registration, *RepositoryError) {
	var reg models.Registration
	err := r.db.WithContext(ctx).First(&reg, "registration_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &RepositoryError{Code: CodeNotFound, Message: "Registration not found", Detail: fmt.Sprintf("registration %d", id)}
	}
	if err != nil {
		return nil, databaseError("Failed to get registration", err)
	}
	return &reg, nil
}

// DeleteRegistration removes exactly one sign-up request
func (r *Repository) DeleteRegistration(ctx context.Context, id uint) *RepositoryError {
	result := r.db.WithContext(ctx).Where("registration_id = ?", id).Delete(&models.Registration{})
	if result.Error != nil {
		return databaseError("Failed to delete registration", result.Error)
	}
	if result.RowsAffected == 0 {
		return &RepositoryError{Code: CodeNotFound, Message: "Registration not found", Detail: fmt.Sprintf("registration %d", id)}
	}
	return nil
}

// AppendActivity adds an entry to the ledger
func (r *Repository) AppendActivity(ctx context.Context, activity *models.Activity) *RepositoryError {
	if activity.Timestamp.IsZero() {
		activity.Timestamp = time.Now().UTC()
	}
	if activity.Status == "" {
		activity.Status = "Confirmed"
	}
	if err := r.db.WithContext(ctx).Create(activity).Error; err != nil {
		return databaseError("Failed to append activity", err)
	}
	return nil
}

// ListActivities returns the newest ledger entries first; limit <= 0 returns all
func (r *Repository) ListActivities(ctx context.Context, limit int) ([]models.Activity, *RepositoryError) {
	var activities []models.Activity
	query := r.db.WithContext(ctx).Order("occurred_at desc").Order("activity_id desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&activities).Error; err != nil {
		return nil, databaseError("Failed to list activities", err)
	}
	return activities, nil
}

// CountActivities returns the number of ledger entries
func (r *Repository) CountActivities(ctx context.Context) (int64, *RepositoryError) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Activity{}).Count(&count).Error; err != nil {
		return 0, databaseError("Failed to count activities", err)
	}
	return count, nil
}
