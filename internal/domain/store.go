package domain

import "context"

type InstrumentRepository interface {
	List(ctx context.Context) ([]Instrument, error)
	FindByIDs(ctx context.Context, ids []string) ([]Instrument, error)
}

// Store 聚合各仓储，并提供事务闭包：fn 内的所有写要么全部提交要么全部回滚。
type Store interface {
	Users() UserRepository
	Registrations() RegistrationRequestRepository
	Instruments() InstrumentRepository
	Activities() ActivityRepository
	Venues() VenueRepository
	Events() EventRepository
	Badges() BadgeRepository
	Newsletter() NewsletterRepository
	StorageObjects() StorageObjectRepository
	WithTx(ctx context.Context, fn func(Store) error) error
}
