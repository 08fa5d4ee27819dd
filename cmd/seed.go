/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/fadelsew02/maxime-app-sub000/internal/config"
	"github.com/fadelsew02/maxime-app-sub000/internal/database"
	"github.com/fadelsew02/maxime-app-sub000/internal/model"
	"github.com/fadelsew02/maxime-app-sub000/internal/repository"
	"github.com/fadelsew02/maxime-app-sub000/internal/workflow"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the laboratory capacity table",
	Long: `Seed the capacites_laboratoire table with the daily capacity and
standard duration of each essai type. Existing rows are left untouched so
a tuned capacity survives a re-run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect database: %w", err)
		}
		defer func() {
			sqlDB, _ := db.DB()
			if sqlDB != nil {
				sqlDB.Close()
			}
		}()

		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		if err := SeedCapacites(db); err != nil {
			return fmt.Errorf("failed to seed capacites: %w", err)
		}

		logrus.Info("Capacity seeding completed successfully!")
		return nil
	},
}

// SeedCapacites inserts the default capacity row for each essai type that
// does not already have one.
func SeedCapacites(db *gorm.DB) error {
	repo := repository.NewCapaciteRepository(db)
	for _, t := range workflow.EssaiTypes() {
		if _, err := repo.FindByType(string(t)); err == nil {
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		capacity, err := workflow.DefaultCapacity(t)
		if err != nil {
			return err
		}
		duration, err := workflow.NominalDuration(t)
		if err != nil {
			return err
		}

		now := time.Now()
		row := &model.Capacite{
			ID:                  uuid.NewString(),
			TypeEssai:           string(t),
			CapaciteQuotidienne: capacity,
			DureeStandardJours:  duration,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		if err := repo.Save(row); err != nil {
			return err
		}
		logrus.Infof("Seeded capacity for %s: %d/day, %d days", t, capacity, duration)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().String("config", "", "Config file path (default: search in current directory, ./config, or $HOME/.labo-api)")
}
