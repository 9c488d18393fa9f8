package scheduler

import (
	"log"
	"time"

	"github.com/ChemaTorresGarvia/fichas-backend/pkg/models"
	"github.com/go-co-op/gocron"
)

// Default reminder window
const (
	DefaultStartHour = 8
	DefaultEndHour   = 22
)

// DueLister reports which cards a user has due today
type DueLister interface {
	DueToday(userKey string, today models.Day) ([]models.Flashcard, error)
}

// UserSource enumerates the users with recorded progress
type UserSource interface {
	ListUsers() ([]string, error)
}

// Notifier delivers a due-card reminder to a user's open views
type Notifier interface {
	SendReminder(userKey string, dueCount int) error
}

// Scheduler runs the hourly due-card reminder check
type Scheduler struct {
	scheduler *gocron.Scheduler
	due       DueLister
	users     UserSource
	notifier  Notifier
	startHour int
	endHour   int
}

// New creates a new scheduler instance. Hours outside 0-23 fall back to the
// default reminder window.
func New(due DueLister, users UserSource, notifier Notifier, startHour, endHour int) *Scheduler {
	if startHour < 0 || startHour > 23 {
		startHour = DefaultStartHour
	}
	if endHour < 0 || endHour > 23 {
		endHour = DefaultEndHour
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.Local),
		due:       due,
		users:     users,
		notifier:  notifier,
		startHour: startHour,
		endHour:   endHour,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Hour().Do(s.checkAndSendReminders)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// checkAndSendReminders notifies every user who still has cards due today
func (s *Scheduler) checkAndSendReminders() {
	currentHour := time.Now().Hour()
	if currentHour < s.startHour || currentHour > s.endHour {
		log.Printf("scheduler: hour %d outside reminder window (%d-%d), skipping",
			currentHour, s.startHour, s.endHour)
		return
	}

	users, err := s.users.ListUsers()
	if err != nil {
		log.Printf("scheduler: error listing users: %v", err)
		return
	}

	today := models.Today()
	for _, userKey := range users {
		due, err := s.due.DueToday(userKey, today)
		if err != nil {
			log.Printf("scheduler: error getting due cards for user %q: %v", userKey, err)
			continue
		}
		if len(due) == 0 {
			continue
		}
		if err := s.notifier.SendReminder(userKey, len(due)); err != nil {
			log.Printf("scheduler: error sending reminder to user %q: %v", userKey, err)
		}
	}
}

// RunManualCheck forces a reminder check for a specific user
func (s *Scheduler) RunManualCheck(userKey string) error {
	due, err := s.due.DueToday(userKey, models.Today())
	if err != nil {
		return err
	}
	if len(due) > 0 {
		return s.notifier.SendReminder(userKey, len(due))
	}
	return nil
}
