package domain_test

import (
	"errors"
	"testing"
	"time"

	"sankalp/internal/modules/reminder/domain"
	apperrors "sankalp/internal/platform/errors"
)

func TestParseTimeOfDay(t *testing.T) {
	t.Parallel()
	got, err := domain.ParseTimeOfDay("06:30")
	if err != nil || got != (domain.TimeOfDay{Hour: 6, Minute: 30}) {
		t.Fatalf("unexpected %+v %v", got, err)
	}
	for _, bad := range []string{"", "25:00", "6pm", "12:60"} {
		if _, err := domain.ParseTimeOfDay(bad); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("expected invalid input for %q, got %v", bad, err)
		}
	}
}

func TestISORoundTripKeepsLocalWallClock(t *testing.T) {
	t.Parallel()
	tod := domain.TimeOfDay{Hour: 20, Minute: 15}
	iso := tod.ISO(time.Date(2026, 10, 18, 9, 0, 0, 0, time.Local))
	if iso[len(iso)-1] != 'Z' {
		t.Fatalf("expected UTC ISO string, got %s", iso)
	}
	back, err := domain.ParseTimeOfDay(iso)
	if err != nil || back != tod {
		t.Fatalf("round trip failed: %s -> %+v %v", iso, back, err)
	}
}

func TestDecodeListTreatsCorruptAsEmpty(t *testing.T) {
	t.Parallel()
	for _, raw := range []string{"", "{}", "[1,", "null"} {
		l, _ := domain.DecodeList([]byte(raw))
		if len(l) != 0 || l == nil {
			t.Fatalf("expected empty non-nil list for %q, got %#v", raw, l)
		}
	}
	l, ok := domain.DecodeList([]byte(`["2026-10-18T00:30:00.000Z","07:45"]`))
	if !ok || len(l) != 2 {
		t.Fatalf("unexpected list %v %t", l, ok)
	}
	payload, err := domain.EncodeList(nil)
	if err != nil || string(payload) != "[]" {
		t.Fatalf("nil list should encode as [], got %s %v", payload, err)
	}
}

func TestListRemoveAtAndTimes(t *testing.T) {
	t.Parallel()
	l := domain.List{"06:00", "garbage", "22:00"}
	times, bad := l.Times()
	if len(times) != 2 || len(bad) != 1 || bad[0] != 1 {
		t.Fatalf("unexpected parse %v %v", times, bad)
	}
	out, err := l.RemoveAt(1)
	if err != nil || len(out) != 2 || out[1] != "22:00" {
		t.Fatalf("unexpected removal %v %v", out, err)
	}
	if len(l) != 3 {
		t.Fatalf("RemoveAt must not alias the receiver")
	}
	if _, err := l.RemoveAt(3); !errors.Is(err, apperrors.ErrIndexOutOfRange) {
		t.Fatalf("expected out of range, got %v", err)
	}
	if _, err := l.RemoveAt(-1); !errors.Is(err, apperrors.ErrIndexOutOfRange) {
		t.Fatalf("expected out of range, got %v", err)
	}
}

func TestDefaultScheduleDetection(t *testing.T) {
	t.Parallel()
	var l domain.List
	for _, tod := range domain.DefaultTimes {
		l = append(l, tod.String())
	}
	if !l.IsDefaultSchedule() {
		t.Fatalf("default seven not detected")
	}
	if l[:6].IsDefaultSchedule() {
		t.Fatalf("partial list must not count as default")
	}
}

func TestPickMessageStaysInPool(t *testing.T) {
	t.Parallel()
	if got := domain.PickMessage(func(int) int { return 2 }); got != domain.Messages[2] {
		t.Fatalf("unexpected message %q", got)
	}
	if got := domain.PickMessage(func(n int) int { return n + 5 }); got != domain.Messages[0] {
		t.Fatalf("out of range draw should fall back, got %q", got)
	}
}
