package main

import (
	"context"
	"fmt"
	"time"

	"github.com/madaris/school-app-backend/internal/config"
	"github.com/madaris/school-app-backend/internal/database"
	"github.com/madaris/school-app-backend/internal/logger"
	"github.com/madaris/school-app-backend/internal/model"
	"github.com/madaris/school-app-backend/internal/repository"
)

// Seeds the reference data a fresh install needs before students can
// register: one active academic year and the starting majors list.
// Running twice is safe; existing rows are left alone.
func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	yearRepo := repository.NewAcademicYearRepository(pool)
	majorRepo := repository.NewMajorRepository(pool)

	// ─── Academic Year ─────────────────────────────────────────────────
	const yearName = "2025-2026"

	years, err := yearRepo.GetAll(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list academic years")
	}

	var seeded *model.AcademicYear
	for i := range years {
		if years[i].Name == yearName {
			seeded = years[i]
			break
		}
	}

	if seeded == nil {
		seeded = &model.AcademicYear{
			Name:      yearName,
			StartDate: time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC),
		}
		if err := yearRepo.Create(ctx, seeded); err != nil {
			log.Fatal().Err(err).Msg("Failed to create academic year")
		}
		fmt.Printf("Created academic year %s\n", yearName)
	} else {
		fmt.Printf("Academic year %s already exists\n", yearName)
	}

	if !seeded.IsActive {
		if err := yearRepo.SetActive(ctx, seeded.ID); err != nil {
			log.Fatal().Err(err).Msg("Failed to activate academic year")
		}
		fmt.Printf("Activated academic year %s\n", yearName)
	}

	// ─── Majors ────────────────────────────────────────────────────────
	majors := []model.Major{
		{Name: "Génie Informatique", Code: "GI"},
		{Name: "Techniques de Management", Code: "TM"},
		{Name: "Génie Électrique", Code: "GE"},
	}

	for i := range majors {
		existing, _ := majorRepo.GetByCode(ctx, majors[i].Code)
		if existing != nil {
			fmt.Printf("Major %s already exists\n", majors[i].Code)
			continue
		}
		if err := majorRepo.Create(ctx, &majors[i]); err != nil {
			log.Fatal().Err(err).Str("code", majors[i].Code).Msg("Failed to create major")
		}
		fmt.Printf("Created major %s (%s)\n", majors[i].Name, majors[i].Code)
	}

	fmt.Println("Seed complete")
}
