package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"fitness-planner/internal/bot"
	"fitness-planner/internal/config"
	"fitness-planner/internal/logger"
	"fitness-planner/internal/model"
	"fitness-planner/internal/repository"
	"fitness-planner/internal/schedule"
	"fitness-planner/internal/service"
	"fitness-planner/internal/session"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "fitnessbot: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	db, err := repository.NewDB(cfg.Database.URL, log)
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	activitySvc := service.NewActivityService(activityRepo, log.Named("activity"))
	reportSvc := service.NewReportService(activityRepo)
	profileSvc := service.NewProfileService(userRepo, repository.NewConnectionRepository(db), log.Named("profile"))

	scheduler := schedule.NewCron(time.Local, log)
	scheduler.Start()
	defer scheduler.Stop()

	telegramBot, err := bot.New(cfg.Telegram.Token, bot.Deps{
		Users:      userRepo,
		Activities: activitySvc,
		Reports:    reportSvc,
		Profiles:   profileSvc,
		Session: session.Options{
			Runner:              scheduler,
			GoalInterval:        cfg.Goal.TickInterval,
			GoalMaxIncrement:    cfg.Goal.MaxIncrement,
			InactivityThreshold: cfg.Inactivity.Threshold,
			InactivityInterval:  cfg.Inactivity.CheckInterval,
		},
		Logger: log,
	})
	if err != nil {
		return fmt.Errorf("bot: %w", err)
	}
	defer telegramBot.Close()

	if cfg.Report.Enabled {
		day, err := model.ParseWeekday(cfg.Report.Day)
		if err != nil {
			return fmt.Errorf("report day: %w", err)
		}
		if _, err := scheduler.Weekly(day, cfg.Report.Time, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := telegramBot.SendWeeklyReports(jobCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("weekly reports", zap.Error(err))
			}
		}); err != nil {
			return fmt.Errorf("schedule reports: %w", err)
		}
		log.Info("weekly reports scheduled", zap.String("day", string(day)), zap.String("time", cfg.Report.Time))
	}

	log.Info("fitness bot started")
	if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("bot stopped: %w", err)
	}
	log.Info("shutdown complete")
	return nil
}
