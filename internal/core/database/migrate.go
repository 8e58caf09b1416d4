package database

import (
	"gorm.io/gorm"

	"fanfare-backend/internal/domain"
	"fanfare-backend/pkg/utils"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Role{},
		&domain.Instrument{},
		&domain.UserInstrument{},
		&domain.SocialLink{},
		&domain.RegistrationRequest{},
		&domain.Activity{},
		&domain.Venue{},
		&domain.Event{},
		&domain.BadgeDefinition{},
		&domain.Badge{},
		&domain.NewsletterSubscription{},
		&domain.StorageObject{},
	)
}

// Seed 初始化角色与乐器目录，幂等
func Seed(db *gorm.DB) error {
	for _, name := range []string{domain.RoleAdmin, domain.RoleBureau, domain.RoleMember} {
		var count int64
		if err := db.Model(&domain.Role{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := db.Create(&domain.Role{ID: utils.NewID(), Name: name}).Error; err != nil {
				return err
			}
		}
	}

	instruments := []domain.Instrument{
		{Name: "trumpet", Family: "brass"},
		{Name: "trombone", Family: "brass"},
		{Name: "tuba", Family: "brass"},
		{Name: "saxophone", Family: "woodwind"},
		{Name: "clarinet", Family: "woodwind"},
		{Name: "flute", Family: "woodwind"},
		{Name: "snare drum", Family: "percussion"},
		{Name: "bass drum", Family: "percussion"},
		{Name: "cymbals", Family: "percussion"},
		{Name: "sousaphone", Family: "brass"},
	}
	for _, ins := range instruments {
		var count int64
		if err := db.Model(&domain.Instrument{}).Where("name = ?", ins.Name).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			ins.ID = utils.NewID()
			if err := db.Create(&ins).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
