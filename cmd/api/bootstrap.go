package main

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"fanfare-backend/internal/core/auth"
	corecache "fanfare-backend/internal/core/cache"
	"fanfare-backend/internal/core/config"
	"fanfare-backend/internal/core/database"
	"fanfare-backend/internal/core/logger"
	"fanfare-backend/internal/repo"
	"fanfare-backend/internal/service"
	"fanfare-backend/internal/transport/http/handler"
	"fanfare-backend/internal/transport/http/router"
)

func newLogger(cfg *config.Config) (*zap.Logger, func()) {
	return logger.New(logger.Options{
		Level:      cfg.Log.Level,
		JSON:       cfg.Log.JSON,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.New(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}

func migrateAndSeed(cfg *config.Config, db *gorm.DB, l *zap.Logger) {
	if cfg.DB.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			l.Fatal("automigrate failed", zap.Error(err))
		}
		l.Info("automigrate done")
	}
	if cfg.DB.Seed {
		if err := database.Seed(db); err != nil {
			l.Fatal("seed failed", zap.Error(err))
		}
		l.Info("seed done")
	}
}

// buildDeps 组装仓储、服务与处理器
func buildDeps(cfg *config.Config, l *zap.Logger, db *gorm.DB, jwter *auth.JWTer) router.Deps {
	store := repo.NewStore(db)

	var cache *corecache.Cache
	if cfg.Redis.Addr != "" {
		cache = corecache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	}

	mailer := service.NewSMTPMailer(
		cfg.Mail.Host, cfg.Mail.Port,
		cfg.Mail.Username, cfg.Mail.Password,
		cfg.Mail.From, cfg.App.Name,
	)

	audit := service.NewActivityService(store, l)
	regs := service.NewRegistrationService(store, audit, mailer, l)
	authSvc := service.NewAuthService(store)
	members := service.NewMemberService(store)
	events := service.NewEventService(store, cache, audit, time.Duration(cfg.Cache.FeedTTLSec)*time.Second)
	badges := service.NewBadgeService(store, audit)
	newsletter := service.NewNewsletterService(store, mailer, audit, l)
	content := service.NewContentService(store, cache, time.Duration(cfg.Cache.StatsTTLSec)*time.Second)

	return router.Deps{
		Cfg:   cfg,
		Log:   l,
		JWTer: jwter,

		Auth:       handler.NewAuthHandler(authSvc, members, jwter),
		Reg:        handler.NewRegistrationHandler(regs, store.Instruments()),
		Profile:    handler.NewProfileHandler(members, badges),
		Content:    handler.NewContentHandler(content, members, events, newsletter, cfg.Club),
		Users:      handler.NewAdminUsersHandler(regs, members, badges),
		Events:     handler.NewAdminEventsHandler(events),
		Badges:     handler.NewAdminBadgesHandler(badges),
		Newsletter: handler.NewAdminNewsletterHandler(newsletter),
		Activities: handler.NewAdminActivitiesHandler(audit),
		Uploads:    handler.NewAdminUploadsHandler(store.StorageObjects(), cfg.Uploads),
	}
}
