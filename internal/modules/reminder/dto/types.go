package dto

type ReminderOutput struct {
	Index int
	Time  string
	Raw   string
}

type ListOutput struct {
	Reminders []ReminderOutput
}

type SyncOutput struct {
	Scheduled int
	Skipped   int
	Permitted bool
}
