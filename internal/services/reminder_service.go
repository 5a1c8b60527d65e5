package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hous-app/hous-server/internal/models"
	"gorm.io/gorm"
)

const fcmSendEndpoint = "https://fcm.googleapis.com/fcm/send"

// ReminderService pushes an FCM nudge to members who are responsible for a
// notification-enabled rule today and have not checked it yet. It is fully
// disabled when no server key is configured.
type ReminderService struct {
	db        *gorm.DB
	serverKey string
	enabled   bool
	hour      int
	location  *time.Location
	client    *http.Client
	mu        sync.Mutex
	sent      map[string]struct{}
	sentDay   Day
}

func NewReminderService(db *gorm.DB, location *time.Location) *ReminderService {
	serverKey := os.Getenv("FCM_SERVER_KEY")

	hour := 20
	if raw := os.Getenv("REMINDER_HOUR"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 && parsed <= 23 {
			hour = parsed
		}
	}

	return &ReminderService{
		db:        db,
		serverKey: serverKey,
		enabled:   serverKey != "",
		hour:      hour,
		location:  location,
		client:    &http.Client{Timeout: 10 * time.Second},
		sent:      make(map[string]struct{}),
	}
}

func (service *ReminderService) Start(ctx context.Context) {
	if !service.enabled {
		log.Printf("reminder service disabled: FCM_SERVER_KEY not set")
		return
	}

	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				service.runOnce(ctx, time.Now())
			}
		}
	}()
}

// runOnce sends due reminders for the current tick. Exported through Start
// only; the tick time is a parameter so tests can drive it directly.
func (service *ReminderService) runOnce(ctx context.Context, now time.Time) {
	if now.In(service.location).Hour() < service.hour {
		return
	}
	today := NewDay(now, service.location)
	service.resetSentMap(today)

	ruleQueries := &ruleReminderQueries{db: service.db}
	checkQueries := &checkReminderQueries{db: service.db}

	rules, err := ruleQueries.listNotificationEnabled()
	if err != nil {
		log.Printf("reminder: load rules failed: %v", err)
		return
	}

	dayStart, dayEnd := today.Range(service.location)
	for _, rule := range rules {
		resolution := ResolveToday(rule, today, service.location)
		for _, userID := range resolution.UserIDs {
			key := fmt.Sprintf("%d:%d", rule.ID, userID)
			if service.alreadySent(key) {
				continue
			}

			checked, err := checkQueries.existsForDay(userID, rule.ID, dayStart, dayEnd)
			if err != nil {
				log.Printf("reminder: check lookup failed for rule %d: %v", rule.ID, err)
				continue
			}
			if checked {
				continue
			}

			user, err := ruleQueries.findUser(userID)
			if err != nil || !user.NotificationEnabled || user.FCMToken == "" {
				continue
			}

			if err := service.push(ctx, user.FCMToken, rule.Name); err != nil {
				log.Printf("reminder: push failed for rule %d user %d: %v", rule.ID, userID, err)
				continue
			}
			service.markSent(key)
		}
	}
}

func (service *ReminderService) push(ctx context.Context, token string, ruleName string) error {
	payload := map[string]any{
		"to": token,
		"notification": map[string]string{
			"title": "Hous",
			"body":  fmt.Sprintf("Don't forget: %s", ruleName),
		},
		"data": map[string]string{
			"pushId": uuid.NewString(),
			"kind":   "rule_reminder",
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, fcmSendEndpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Authorization", "key="+service.serverKey)

	response, err := service.client.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()
	if response.StatusCode >= 300 {
		return fmt.Errorf("fcm send returned status %d", response.StatusCode)
	}
	return nil
}

func (service *ReminderService) resetSentMap(today Day) {
	service.mu.Lock()
	defer service.mu.Unlock()
	if !service.sentDay.Equal(today) {
		service.sent = make(map[string]struct{})
		service.sentDay = today
	}
}

func (service *ReminderService) alreadySent(key string) bool {
	service.mu.Lock()
	defer service.mu.Unlock()
	_, sent := service.sent[key]
	return sent
}

func (service *ReminderService) markSent(key string) {
	service.mu.Lock()
	defer service.mu.Unlock()
	service.sent[key] = struct{}{}
}

type ruleReminderQueries struct {
	db *gorm.DB
}

func (queries *ruleReminderQueries) listNotificationEnabled() ([]models.Rule, error) {
	rules := make([]models.Rule, 0)
	if err := queries.db.
		Preload("Members").
		Where("notification_enabled = ?", true).
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

func (queries *ruleReminderQueries) findUser(userID uint) (models.User, error) {
	var user models.User
	if err := queries.db.First(&user, userID).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

type checkReminderQueries struct {
	db *gorm.DB
}

func (queries *checkReminderQueries) existsForDay(userID uint, ruleID uint, dayStart time.Time, dayEnd time.Time) (bool, error) {
	var matched int64
	if err := queries.db.Model(&models.Check{}).
		Where("user_id = ? AND rule_id = ? AND date >= ? AND date < ?", userID, ruleID, dayStart, dayEnd).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}
