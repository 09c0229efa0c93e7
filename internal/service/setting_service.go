package service

import (
	"strconv"

	"coachpay/internal/domain"
	"coachpay/internal/models"
	"coachpay/internal/repository"
)

// SettingService exposes the runtime commission settings: the performance
// rate schedule and the flat referral commission amounts.
type SettingService struct {
	settingRepo *repository.SettingRepository
}

func NewSettingService(settingRepo *repository.SettingRepository) *SettingService {
	return &SettingService{settingRepo: settingRepo}
}

func (s *SettingService) List() ([]models.SystemSetting, error) {
	return s.settingRepo.GetAll()
}

// Update validates the key and value before writing. Only known keys are
// accepted; a typo must not silently create a setting nothing reads.
func (s *SettingService) Update(key, value string) error {
	switch key {
	case domain.SettingRateSchedule:
		if value != domain.ScheduleLevel && value != domain.ScheduleRank {
			return ErrInvalidSettingValue
		}
	case domain.SettingServiceReferralCents, domain.SettingUpgradeReferralCents:
		if cents, err := strconv.ParseInt(value, 10, 64); err != nil || cents < 0 {
			return ErrInvalidSettingValue
		}
	default:
		return ErrUnknownSetting
	}
	return s.settingRepo.Set(key, value)
}
