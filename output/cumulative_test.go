package output

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/hmelementsgreen/HRM-Dashboard/timesheet"
)

func cumulativeEvent(first, last, date, clockIn, clockOut string, kind timesheet.EventKind) timesheet.Event {
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		panic(err)
	}
	in, _ := time.ParseInLocation("2006-01-02 15:04", date+" "+clockIn, time.Local)
	event := timesheet.Event{
		FirstName: first, LastName: last, Kind: kind,
		ClockIn: in, HasClockIn: true,
		ClockInDateText: day.Format("2006-01-02"),
		ClockInTimeText: clockIn,
	}
	if clockOut != "" {
		out, _ := time.ParseInLocation("2006-01-02 15:04", date+" "+clockOut, time.Local)
		event.ClockOut, event.HasClockOut = out, true
		event.ClockOutDateText = day.Format("2006-01-02")
		event.ClockOutTimeText = clockOut
	}
	return event
}

func TestAppendCumulative_CreatesFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "cumulative.csv")

	total, dropped, err := AppendCumulative(path, []timesheet.Event{
		cumulativeEvent("Ada", "Lovelace", "2026-02-09", "09:00", "17:00", timesheet.KindShift),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || dropped != 0 {
		t.Fatalf("total=%d dropped=%d, want 1/0", total, dropped)
	}

	rows := readCSVRows(t, path)
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(rows))
	}
}

func TestAppendCumulative_IncomingRowWinsOnCollision(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "cumulative.csv")

	stale := cumulativeEvent("Ada", "Lovelace", "2026-02-09", "09:00", "", timesheet.KindShift)
	if _, _, err := AppendCumulative(path, []timesheet.Event{stale}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	corrected := cumulativeEvent("Ada", "Lovelace", "2026-02-09", "09:00", "17:00", timesheet.KindShift)
	total, dropped, err := AppendCumulative(path, []timesheet.Event{corrected})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || dropped != 1 {
		t.Fatalf("total=%d dropped=%d, want 1/1", total, dropped)
	}

	rows := readCSVRows(t, path)
	outTime := rows[1][columnIndex(t, rows[0], "Clock Out Time")]
	if outTime != "17:00" {
		t.Errorf("clock-out = %q, want the corrected row to survive", outTime)
	}
}

func TestAppendCumulative_DistinctKindsBothKept(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "cumulative.csv")

	total, _, err := AppendCumulative(path, []timesheet.Event{
		cumulativeEvent("Ada", "Lovelace", "2026-02-09", "09:00", "17:00", timesheet.KindShift),
		cumulativeEvent("Ada", "Lovelace", "2026-02-09", "12:00", "12:30", timesheet.KindBreak),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 {
		t.Fatalf("total=%d, want both kinds kept", total)
	}
}

func TestAppendCumulative_SortedByDayThenName(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "cumulative.csv")

	_, _, err := AppendCumulative(path, []timesheet.Event{
		cumulativeEvent("Zoe", "Young", "2026-02-10", "09:00", "17:00", timesheet.KindShift),
		cumulativeEvent("Ada", "Lovelace", "2026-02-10", "09:00", "17:00", timesheet.KindShift),
		cumulativeEvent("Zoe", "Young", "2026-02-09", "09:00", "17:00", timesheet.KindShift),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows := readCSVRows(t, path)
	firstCol := columnIndex(t, rows[0], "First Name")
	dateCol := columnIndex(t, rows[0], "Clock In Date")
	got := [][2]string{}
	for _, row := range rows[1:] {
		got = append(got, [2]string{row[dateCol], row[firstCol]})
	}
	want := [][2]string{
		{"2026-02-09", "Zoe"},
		{"2026-02-10", "Ada"},
		{"2026-02-10", "Zoe"},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d = %v, want %v (all rows: %v)", i, got[i], want[i], got)
		}
	}
}

func TestAppendCumulative_CorrectionFlagsSurviveLaterAppends(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "cumulative.csv")

	flagged := cumulativeEvent("Ada", "Lovelace", "2026-02-09", "22:00", "02:00", timesheet.KindShift)
	flagged.Anomalies = []timesheet.Anomaly{timesheet.AnomalyOvernight}
	flagged.LocationMismatch = true
	if _, _, err := AppendCumulative(path, []timesheet.Event{flagged}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	later := cumulativeEvent("Alan", "Turing", "2026-02-10", "09:00", "17:00", timesheet.KindShift)
	if _, _, err := AppendCumulative(path, []timesheet.Event{later}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows := readCSVRows(t, path)
	flagsCol := columnIndex(t, rows[0], "Correction Flags")
	firstCol := columnIndex(t, rows[0], "First Name")
	for _, row := range rows[1:] {
		if row[firstCol] != "Ada" {
			continue
		}
		if got := row[flagsCol]; got != "overnight;location_mismatch" {
			t.Fatalf("flags = %q, want the first run's flags intact", got)
		}
		return
	}
	t.Fatalf("flagged row missing from %v", rows)
}

func TestAppendCumulative_MergePreservesExistingDays(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "cumulative.csv")

	if _, _, err := AppendCumulative(path, []timesheet.Event{
		cumulativeEvent("Ada", "Lovelace", "2026-02-09", "09:00", "17:00", timesheet.KindShift),
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	total, dropped, err := AppendCumulative(path, []timesheet.Event{
		cumulativeEvent("Ada", "Lovelace", "2026-02-10", "09:00", "17:00", timesheet.KindShift),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 || dropped != 0 {
		t.Fatalf("total=%d dropped=%d, want 2/0", total, dropped)
	}
}
