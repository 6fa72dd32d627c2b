package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	apperrors "sankalp/internal/platform/errors"
)

const (
	ReminderTitle = "🕉 Sankalp Reminder"
	DefaultTitle  = "🕉️ Sankalp 7"
	DefaultBody   = "Jai Hanuman 🙏 Time for today’s Chalisa path — tap to play."

	isoLayout = "2006-01-02T15:04:05.000Z07:00"
)

// Messages is the pool a user-added reminder draws its body from.
var Messages = []string{
	"✨ Pause. Breathe. Listen to Hanuman Chalisa.",
	"🙏 Jai Hanuman! A few minutes of bhakti can change your day.",
	"🕉️ Strength, focus, and peace — start your sankalp now.",
	"💡 Inner peace begins with devotion.",
	"🔥 Unleash your energy — one Chalisa now.",
}

// PickMessage draws from Messages; intn behaves like rand.IntN.
func PickMessage(intn func(int) int) string {
	i := intn(len(Messages))
	if i < 0 || i >= len(Messages) {
		i = 0
	}
	return Messages[i]
}

type TimeOfDay struct {
	Hour   int
	Minute int
}

// DefaultTimes are the seven daily prompts of the default schedule.
var DefaultTimes = []TimeOfDay{
	{6, 0}, {9, 0}, {12, 0}, {15, 0}, {18, 0}, {20, 0}, {22, 0},
}

// ParseTimeOfDay accepts an ISO-8601 timestamp, whose local wall clock is
// used and date ignored, or a plain HH:MM.
func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		local := t.Local()
		return TimeOfDay{Hour: local.Hour(), Minute: local.Minute()}, nil
	}
	if t, err := time.Parse("15:04", raw); err == nil {
		return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
	}
	return TimeOfDay{}, fmt.Errorf("%w: time of day %q", apperrors.ErrInvalidInput, raw)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// ISO stamps the time of day onto the local date of day and renders it the
// way the list is persisted.
func (t TimeOfDay) ISO(day time.Time) string {
	local := day.Local()
	at := time.Date(local.Year(), local.Month(), local.Day(), t.Hour, t.Minute, 0, 0, time.Local)
	return at.UTC().Format(isoLayout)
}

// List is the persisted reminder list: ISO-8601 strings in insertion order.
type List []string

// DecodeList treats an absent or corrupt payload as an empty list.
func DecodeList(raw []byte) (List, bool) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return List{}, false
	}
	var list List
	if err := json.Unmarshal(raw, &list); err != nil {
		return List{}, false
	}
	if list == nil {
		list = List{}
	}
	return list, true
}

func EncodeList(l List) ([]byte, error) {
	if l == nil {
		l = List{}
	}
	return json.Marshal(l)
}

// Times parses every entry; entries that do not parse are reported by index.
func (l List) Times() ([]TimeOfDay, []int) {
	times := make([]TimeOfDay, 0, len(l))
	var bad []int
	for i, raw := range l {
		t, err := ParseTimeOfDay(raw)
		if err != nil {
			bad = append(bad, i)
			continue
		}
		times = append(times, t)
	}
	return times, bad
}

func (l List) RemoveAt(index int) (List, error) {
	if index < 0 || index >= len(l) {
		return l, fmt.Errorf("%w: reminder %d of %d", apperrors.ErrIndexOutOfRange, index, len(l))
	}
	out := make(List, 0, len(l)-1)
	out = append(out, l[:index]...)
	return append(out, l[index+1:]...), nil
}

// IsDefaultSchedule reports whether the list is exactly the default seven.
func (l List) IsDefaultSchedule() bool {
	times, bad := l.Times()
	if len(bad) > 0 || len(times) != len(DefaultTimes) {
		return false
	}
	for i, t := range times {
		if t != DefaultTimes[i] {
			return false
		}
	}
	return true
}

// Trigger is one daily notification handed to the scheduler.
type Trigger struct {
	ID    string
	At    TimeOfDay
	Title string
	Body  string
}
