package services

import (
	"strings"

	"github.com/hous-app/hous-server/internal/models"
)

type SettingsUserRepository interface {
	UpdateByID(userID uint, updates map[string]any) error
	Save(user *models.User) error
	FindByID(userID uint) (models.User, error)
}

type SettingsService struct {
	users SettingsUserRepository
}

func NewSettingsService(users SettingsUserRepository) *SettingsService {
	return &SettingsService{users: users}
}

type ProfileInput struct {
	Name string   `json:"name"`
	Job  string   `json:"job"`
	Bio  string   `json:"bio"`
	Tags []string `json:"tags"`
}

func (service *SettingsService) UpdateProfile(userID uint, input ProfileInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return ErrNameRequired
	}
	if len([]rune(name)) > models.MaxUserNameLength {
		return ErrNameTooLong
	}

	tags := make([]string, 0, len(input.Tags))
	for _, tag := range input.Tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	if len(tags) > models.MaxUserTags {
		return ErrTooManyTags
	}

	user, err := service.users.FindByID(userID)
	if err != nil {
		return err
	}
	user.Name = name
	user.Job = strings.TrimSpace(input.Job)
	user.Bio = strings.TrimSpace(input.Bio)
	user.Tags = tags
	return service.users.Save(&user)
}

func (service *SettingsService) UpdateNotification(userID uint, enabled bool) error {
	return service.users.UpdateByID(userID, map[string]any{"notification_enabled": enabled})
}

func (service *SettingsService) UpdateFCMToken(userID uint, token string) error {
	return service.users.UpdateByID(userID, map[string]any{"fcm_token": strings.TrimSpace(token)})
}
