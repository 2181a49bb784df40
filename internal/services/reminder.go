package services

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/inexss/crm-backend/internal/config"
	"github.com/inexss/crm-backend/internal/models"
	"github.com/inexss/crm-backend/pkg/logger"
	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/za"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// reminderWindowDays is how far ahead of an action item's due date the
// reminder fires.
const reminderWindowDays = 3

// ReminderService emails assignees about action items that are due soon.
// Reminders only go out on South African business days.
type ReminderService struct {
	db            *gorm.DB
	smtpConfig    *config.SMTPConfig
	calendar      *cal.BusinessCalendar
	cronScheduler *cron.Cron
}

func NewReminderService(db *gorm.DB, smtpCfg *config.SMTPConfig) *ReminderService {
	calendar := cal.NewBusinessCalendar()
	calendar.Name = "South Africa"
	calendar.AddHoliday(za.Holidays...)

	return &ReminderService{
		db:         db,
		smtpConfig: smtpCfg,
		calendar:   calendar,
	}
}

// StartScheduler fires the reminder run every weekday morning.
func (s *ReminderService) StartScheduler() {
	s.cronScheduler = cron.New()

	if _, err := s.cronScheduler.AddFunc("0 7 * * *", func() {
		if err := s.Run(time.Now()); err != nil {
			logger.Errorf("[Reminder] run failed: %v", err)
		}
	}); err != nil {
		logger.Errorf("[Reminder] failed to add cron job: %v", err)
		return
	}

	s.cronScheduler.Start()
	logger.Infof("[Reminder] Scheduler started (daily at 07:00)")
}

func (s *ReminderService) StopScheduler() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
	}
}

// Run sends reminders for action items due within the window. Overdue
// incomplete items are included until they are closed.
func (s *ReminderService) Run(now time.Time) error {
	if !s.calendar.IsWorkday(now) {
		logger.Debugf("[Reminder] %s is not a business day, skipping", now.Format("2006-01-02"))
		return nil
	}

	cutoff := now.AddDate(0, 0, reminderWindowDays)

	var items []models.ActionItem
	if err := s.db.Preload("Assignee").
		Where("completed = ? AND assigned_to IS NOT NULL AND due_date IS NOT NULL AND due_date <= ?", false, cutoff).
		Order("due_date ASC").
		Find(&items).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	byAssignee := make(map[uint][]models.ActionItem)
	for _, item := range items {
		if item.Assignee == nil || !item.Assignee.IsActive || item.Assignee.Email == "" {
			continue
		}
		byAssignee[*item.AssignedTo] = append(byAssignee[*item.AssignedTo], item)
	}

	for _, assigned := range byAssignee {
		assignee := assigned[0].Assignee
		if err := s.sendReminder(assignee, assigned); err != nil {
			logger.Errorf("[Reminder] failed to mail %s: %v", assignee.Email, err)
			continue
		}
		logger.Infof("[Reminder] sent %d item reminder to %s", len(assigned), assignee.Email)
		LogInfo("Reminder", "Send",
			fmt.Sprintf("Reminded %s of %d open action items", assignee.Email, len(assigned)),
			&assignee.ID, "", "", nil)
	}

	return nil
}

func (s *ReminderService) sendReminder(user *models.User, items []models.ActionItem) error {
	if !s.smtpConfig.Enabled {
		logger.Debugf("[Reminder] SMTP disabled, skipping mail to %s", user.Email)
		return nil
	}

	body := buildReminderBody(user.Name, items)

	msg := strings.Join([]string{
		"From: " + s.smtpConfig.From,
		"To: " + user.Email,
		"Subject: Action items due soon",
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", s.smtpConfig.Host, s.smtpConfig.Port)
	var auth smtp.Auth
	if s.smtpConfig.Username != "" {
		auth = smtp.PlainAuth("", s.smtpConfig.Username, s.smtpConfig.Password, s.smtpConfig.Host)
	}

	return smtp.SendMail(addr, auth, s.smtpConfig.From, []string{user.Email}, []byte(msg))
}

// buildReminderBody renders the plain-text reminder listing each open item
// and its due date.
func buildReminderBody(name string, items []models.ActionItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nThe following action items need your attention:\n\n", name)
	for _, item := range items {
		due := "no due date"
		if item.DueDate != nil {
			due = item.DueDate.Format("2006-01-02")
		}
		fmt.Fprintf(&b, "  - %s (due %s)\n", item.Description, due)
	}
	b.WriteString("\nThis is an automated reminder.\n")
	return b.String()
}
