package util

import (
	"strconv"
	"testing"
	"time"
)

func TestParseTimeRFC3339(t *testing.T) {
	s := "2024-10-10T10:10:10Z"
	got, ok := ParseTime(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeNaiveIsUTC(t *testing.T) {
	got, ok := ParseTime("2024-10-10T10:10:10.123456")
	if !ok {
		t.Fatalf("expected ok")
	}
	want := time.Date(2024, 10, 10, 10, 10, 10, 123456000, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestParseTimeUnix(t *testing.T) {
	ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
	got, ok := ParseTime(strconv.FormatInt(ts, 10))
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Unix() != ts {
		t.Fatalf("unexpected unix %v", got.Unix())
	}
}

func TestFormatDisplaySameInstantSameText(t *testing.T) {
	loc, err := LoadDisplayLocation("Asia/Shanghai")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	utc, _ := ParseTime("2024-10-10T16:30:00Z")
	offset, _ := ParseTime("2024-10-10T12:30:00-04:00")
	if FormatDisplay(utc, loc) != "2024-10-11 00:30:00" {
		t.Fatalf("unexpected display %q", FormatDisplay(utc, loc))
	}
	if FormatDisplay(utc, loc) != FormatDisplay(offset, loc) {
		t.Fatalf("same instant rendered differently")
	}
}

func TestFormatDisplayZero(t *testing.T) {
	if got := FormatDisplay(time.Time{}, time.UTC); got != "N/A" {
		t.Fatalf("unexpected %q", got)
	}
}
