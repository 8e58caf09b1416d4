package repo

import (
	"context"

	"gorm.io/gorm"

	"fanfare-backend/internal/domain"
)

// Store gorm 实现的仓储聚合
type Store struct {
	db *gorm.DB

	users         *UserRepo
	registrations *RegistrationRepo
	instruments   *InstrumentRepo
	activities    *ActivityRepo
	venues        *VenueRepo
	events        *EventRepo
	badges        *BadgeRepo
	newsletter    *NewsletterRepo
	storage       *StorageObjectRepo
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:            db,
		users:         NewUserRepo(db),
		registrations: NewRegistrationRepo(db),
		instruments:   NewInstrumentRepo(db),
		activities:    NewActivityRepo(db),
		venues:        NewVenueRepo(db),
		events:        NewEventRepo(db),
		badges:        NewBadgeRepo(db),
		newsletter:    NewNewsletterRepo(db),
		storage:       NewStorageObjectRepo(db),
	}
}

func (s *Store) Users() domain.UserRepository                        { return s.users }
func (s *Store) Registrations() domain.RegistrationRequestRepository { return s.registrations }
func (s *Store) Instruments() domain.InstrumentRepository            { return s.instruments }
func (s *Store) Activities() domain.ActivityRepository               { return s.activities }
func (s *Store) Venues() domain.VenueRepository                      { return s.venues }
func (s *Store) Events() domain.EventRepository                      { return s.events }
func (s *Store) Badges() domain.BadgeRepository                      { return s.badges }
func (s *Store) Newsletter() domain.NewsletterRepository             { return s.newsletter }
func (s *Store) StorageObjects() domain.StorageObjectRepository      { return s.storage }

// WithTx 单事务内执行 fn；fn 拿到的是绑定事务连接的 Store
func (s *Store) WithTx(ctx context.Context, fn func(domain.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
