package db

import "gorm.io/gorm"

type Repositories struct {
	Users      *UserRepository
	Entries    *EntryRepository
	WeightLogs *WeightLogRepository
	Onboarding *OnboardingRepository
	Badges     *BadgeRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:      NewUserRepository(database),
		Entries:    NewEntryRepository(database),
		WeightLogs: NewWeightLogRepository(database),
		Onboarding: NewOnboardingRepository(database),
		Badges:     NewBadgeRepository(database),
	}
}

// WithTx rebinds every repository to the given transaction handle, so a
// multi-repository unit of work commits or rolls back as one.
func (repos *Repositories) WithTx(tx *gorm.DB) *Repositories {
	return NewRepositories(tx)
}
