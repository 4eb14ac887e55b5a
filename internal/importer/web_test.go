package importer

import (
	"strings"
	"testing"
	"time"

	"toggler/internal/storage"
	"toggler/internal/timeutil"
)

func testStorage(t *testing.T) *storage.Storage {
	t.Helper()
	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	return store
}

// legacyExport builds a browser-style blob with one task, one closed entry
// and an active pair started at the given millis.
func legacyExport(activeStart int64) string {
	return `{
		"tasks": [
			{"id": "t_web_1", "name": "imported work", "color": "#10b981", "createdAt": "2025-03-14T08:00:00.000Z"}
		],
		"dailyData": {
			"2025-03-14": {
				"date": "2025-03-14",
				"timeEntries": [
					{"taskId": "t_web_1", "startTime": 1741942800000, "endTime": 1741944600000, "duration": 1800000, "date": "2025-03-14"}
				],
				"activeTaskId": "t_web_1",
				"activeStartTime": ` + itoa(activeStart) + `
			}
		},
		"currentDate": "2025-03-14"
	}`
}

func itoa(n int64) string {
	if n == 0 {
		return "null"
	}
	var b []byte
	for n > 0 {
		b = append([]byte{byte('0' + n%10)}, b...)
		n /= 10
	}
	return string(b)
}

func TestGetImporter(t *testing.T) {
	if GetImporter("web") == nil {
		t.Error("web importer not registered")
	}
	if GetImporter("csv") != nil {
		t.Error("unexpected importer for unknown format")
	}
	if len(SupportedFormats()) == 0 {
		t.Error("no supported formats")
	}
}

func TestWebImport(t *testing.T) {
	store := testStorage(t)
	now := time.Now()
	store.SetNowFunc(func() time.Time { return now })

	activeStart := now.Add(-10 * time.Minute).UnixMilli()
	imp := &WebImporter{}
	result, err := imp.Import(strings.NewReader(legacyExport(activeStart)), store)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	if result.Tasks != 1 {
		t.Errorf("Tasks = %d, want 1", result.Tasks)
	}
	if result.Entries != 1 {
		t.Errorf("Entries = %d, want 1", result.Entries)
	}

	state, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	task := state.TaskByID("t_web_1")
	if task == nil || task.Name != "imported work" {
		t.Fatalf("imported task = %+v", task)
	}
	if len(state.DayEntries("2025-03-14")) != 1 {
		t.Errorf("day entries = %+v", state.DayEntries("2025-03-14"))
	}

	// The loose active pair became a session.
	day, sess := state.ActiveSession()
	if sess == nil || sess.TaskID != "t_web_1" || sess.StartedAt != activeStart {
		t.Fatalf("session = %+v", sess)
	}
	if day != timeutil.DayKeyMillis(activeStart) {
		t.Errorf("session homed on %q", day)
	}
}

func TestWebImportParsesTaskTimestamps(t *testing.T) {
	store := testStorage(t)
	blob := `{
		"tasks": [
			{"id": "t1", "name": "kept", "createdAt": "2025-03-14T08:00:00.000Z"},
			{"id": "t2", "name": "gone", "createdAt": "2025-03-13T09:30:00.000Z", "archivedAt": "2025-03-14T17:45:00.000Z"}
		],
		"dailyData": {},
		"currentDate": "2025-03-14"
	}`

	imp := &WebImporter{}
	result, err := imp.Import(strings.NewReader(blob), store)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if result.Tasks != 2 {
		t.Fatalf("Tasks = %d, want 2", result.Tasks)
	}

	state, _ := store.Load()
	kept := state.TaskByID("t1")
	if kept == nil {
		t.Fatal("task t1 missing")
	}
	want := time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC)
	if !kept.CreatedAt.Equal(want) {
		t.Errorf("CreatedAt = %v, want %v", kept.CreatedAt, want)
	}

	gone := state.TaskByID("t2")
	if gone == nil || gone.ArchivedAt == nil {
		t.Fatalf("archived task = %+v", gone)
	}
	wantArchived := time.Date(2025, 3, 14, 17, 45, 0, 0, time.UTC)
	if !gone.ArchivedAt.Equal(wantArchived) {
		t.Errorf("ArchivedAt = %v, want %v", gone.ArchivedAt, wantArchived)
	}
}

func TestWebImportSkipsBadTaskTimestamps(t *testing.T) {
	store := testStorage(t)
	blob := `{
		"tasks": [
			{"id": "t1", "name": "bad created", "createdAt": "not a time"},
			{"id": "t2", "name": "bad archived", "createdAt": "2025-03-14T08:00:00.000Z", "archivedAt": "soon"}
		],
		"dailyData": {},
		"currentDate": "2025-03-14"
	}`

	imp := &WebImporter{}
	result, err := imp.Import(strings.NewReader(blob), store)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if result.Tasks != 0 {
		t.Errorf("Tasks = %d, want 0", result.Tasks)
	}
	if result.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", result.Skipped)
	}
	if len(result.Errors) != 2 {
		t.Errorf("Errors = %v, want 2 messages", result.Errors)
	}
}

func TestWebImportIdempotent(t *testing.T) {
	store := testStorage(t)
	now := time.Now()
	store.SetNowFunc(func() time.Time { return now })

	blob := legacyExport(0)
	imp := &WebImporter{}
	if _, err := imp.Import(strings.NewReader(blob), store); err != nil {
		t.Fatalf("first Import() error = %v", err)
	}

	result, err := imp.Import(strings.NewReader(blob), store)
	if err != nil {
		t.Fatalf("second Import() error = %v", err)
	}
	if result.Tasks != 0 || result.Entries != 0 {
		t.Errorf("second import added data: %+v", result)
	}

	state, _ := store.Load()
	if len(state.DayEntries("2025-03-14")) != 1 {
		t.Error("entries duplicated on re-import")
	}
}

func TestWebImportKeepsLocalSession(t *testing.T) {
	store := testStorage(t)
	now := time.Now()
	store.SetNowFunc(func() time.Time { return now })

	local, err := store.AddTask("local")
	if err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}
	if err := store.ToggleTask(local.ID); err != nil {
		t.Fatalf("ToggleTask() error = %v", err)
	}

	imp := &WebImporter{}
	if _, err := imp.Import(strings.NewReader(legacyExport(now.UnixMilli())), store); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	state, _ := store.Load()
	if state.ActiveTaskID() != local.ID {
		t.Error("import displaced the running local session")
	}
}

func TestWebImportSkipsOpenAndMalformedEntries(t *testing.T) {
	store := testStorage(t)
	blob := `{
		"tasks": [{"id": "t1", "name": "x", "createdAt": "2025-03-14T00:00:00.000Z"}],
		"dailyData": {
			"2025-03-14": {
				"date": "2025-03-14",
				"timeEntries": [
					{"taskId": "t1", "startTime": 100, "duration": 0, "date": "2025-03-14"},
					{"taskId": "t1", "startTime": 200, "endTime": 100, "duration": 0, "date": "2025-03-14"},
					{"taskId": "", "startTime": 100, "endTime": 200, "duration": 100, "date": "2025-03-14"}
				]
			}
		},
		"currentDate": "2025-03-14"
	}`

	imp := &WebImporter{}
	result, err := imp.Import(strings.NewReader(blob), store)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if result.Entries != 0 {
		t.Errorf("Entries = %d, want 0", result.Entries)
	}
	if result.Skipped != 3 {
		t.Errorf("Skipped = %d, want 3", result.Skipped)
	}
}

func TestWebImportInvalidJSON(t *testing.T) {
	imp := &WebImporter{}
	if _, err := imp.Import(strings.NewReader("{nope"), testStorage(t)); err == nil {
		t.Fatal("Import() expected error for invalid JSON")
	}
}

func TestWebPreview(t *testing.T) {
	imp := &WebImporter{}
	sum, err := imp.Preview(strings.NewReader(legacyExport(12345)))
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}
	if sum.Tasks != 1 || sum.Days != 1 || sum.Entries != 1 {
		t.Errorf("summary = %+v", sum)
	}
	if !sum.HasActive {
		t.Error("preview missed the active pair")
	}
	if sum.CurrentDate != "2025-03-14" {
		t.Errorf("CurrentDate = %q", sum.CurrentDate)
	}
}
