// Manual bulk re-grade over every exam in the database.
//
// Useful after changing question weights or fixing answer keys in bulk,
// when re-grading exam by exam through the API would be tedious.
//
// Usage: go run scripts/regrade_all.go
package main

import (
	"errors"
	"log"

	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/config"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/repository"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/service"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/util"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/pkg/database"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.InitLogger(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database, false)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	examRepo := repository.NewExamRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	scoreRepo := repository.NewScoreRepository(db)
	grading := service.NewGradingService(attemptRepo, examRepo, scoreRepo)

	exams, total, err := examRepo.List(1, 10000, "")
	if err != nil {
		log.Fatalf("failed to list exams: %v", err)
	}
	log.Printf("re-grading %d exams...", total)

	for _, exam := range exams {
		outcome, err := grading.GradeExam(exam.ID)
		if err != nil {
			if errors.Is(err, util.ErrNoAttempts) {
				log.Printf("exam %s (%s): no attempts, skipped", exam.ID, exam.Title)
				continue
			}
			log.Printf("exam %s (%s): %v", exam.ID, exam.Title, err)
			continue
		}
		log.Printf("exam %s (%s): graded=%d failed=%d",
			exam.ID, exam.Title, outcome.Summary.Graded, outcome.Summary.Failed)
	}

	log.Println("done")
}
