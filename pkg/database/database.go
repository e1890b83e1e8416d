package database

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/config"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/model"
)

func InitDB(cfg *config.DatabaseConfig, runMigrations bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
		cfg.Host,
		cfg.User,
		cfg.Password,
		cfg.DBName,
		cfg.Port,
		cfg.SSLMode,
		cfg.TimeZone,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if !runMigrations {
		return db, nil
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.LoginHistory{},
		&model.AuditLog{},
		&model.Material{},
		&model.Exam{},
		&model.Question{},
		&model.Choice{},
		&model.ExamAttempt{},
		&model.Score{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// seed an initial admin account so the platform is reachable after
	// a fresh install; the password must be rotated on first login
	var count int64
	db.Model(&model.User{}).Where("role = ?", model.Admin).Count(&count)
	if count == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte("annajah-admin"), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		admin := &model.User{
			Name:     "Administrator",
			Email:    "admin@pkbm-annajah.sch.id",
			Password: string(hashed),
			Role:     model.Admin,
			IsActive: true,
		}
		db.Create(admin)
	}

	return db, nil
}
