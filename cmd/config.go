package cmd

// Config carries the process configuration loaded from the environment.
// ReminderSchedule is a six-field cron expression; ReminderWindow is a
// Go duration string describing how far ahead the sweep looks.
type Config struct {
	HTTPPort         string
	DBHost           string
	DBPort           string
	DBUser           string
	DBPassword       string
	DBName           string
	DBSslMode        string
	ReminderSchedule string
	ReminderWindow   string
}
