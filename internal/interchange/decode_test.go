package interchange

import (
	"testing"

	"github.com/avikram/taskdeck/internal/task"
)

// record returns the candidate at index i as a map, failing the test if it
// has some other shape.
func record(t *testing.T, candidates []any, i int) map[string]any {
	t.Helper()
	m, ok := candidates[i].(map[string]any)
	if !ok {
		t.Fatalf("candidate %d is %T, want map", i, candidates[i])
	}
	return m
}

func TestDecodeRecordTopLevelArray(t *testing.T) {
	data := []byte(`[{"id": 1, "task": "A"}, {"id": 2, "task": "B"}]`)
	candidates, err := DecodeRecord(data)
	if err != nil {
		t.Fatalf("DecodeRecord failed: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(candidates))
	}
	if got := record(t, candidates, 0)["task"]; got != "A" {
		t.Errorf("task: got %v, want A", got)
	}
}

func TestDecodeRecordKeyedDocument(t *testing.T) {
	tests := []struct {
		name string
		data string
		want int
	}{
		{"tasks key", `{"tasks": [{"task": "A"}]}`, 1},
		{"task_list key", `{"task_list": [{"task": "A"}, {"task": "B"}]}`, 2},
		{"tasks preferred over task_list", `{"tasks": [{"task": "A"}], "task_list": []}`, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates, err := DecodeRecord([]byte(tt.data))
			if err != nil {
				t.Fatalf("DecodeRecord failed: %v", err)
			}
			if len(candidates) != tt.want {
				t.Errorf("got %d candidates, want %d", len(candidates), tt.want)
			}
		})
	}
}

func TestDecodeRecordFailures(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed json", `{"tasks": [`},
		{"no known key", `{"items": []}`},
		{"tasks not a list", `{"tasks": {"task": "A"}}`},
		{"scalar document", `42`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeRecord([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDecodeRecordEmptyArrayIsValid(t *testing.T) {
	candidates, err := DecodeRecord([]byte(`[]`))
	if err != nil {
		t.Fatalf("DecodeRecord failed: %v", err)
	}
	if len(candidates) != 0 {
		t.Errorf("got %d candidates, want 0", len(candidates))
	}
}

func TestDecodeTable(t *testing.T) {
	data := []byte("id,task,priority,completed,created_at\n" +
		"1,Buy milk,high,true,2024-01-02T10:00:00\n" +
		"x,Call bank,,yes,\n")
	candidates, err := DecodeTable(data)
	if err != nil {
		t.Fatalf("DecodeTable failed: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(candidates))
	}

	first := record(t, candidates, 0)
	if first["id"] != 1 {
		t.Errorf("id: got %v, want 1", first["id"])
	}
	if first["completed"] != true {
		t.Errorf("completed: got %v, want true", first["completed"])
	}
	if first["created_at"] != "2024-01-02T10:00:00" {
		t.Errorf("created_at: got %v", first["created_at"])
	}

	// Non-digit id becomes 0, not a rejection.
	second := record(t, candidates, 1)
	if second["id"] != 0 {
		t.Errorf("id: got %v, want 0", second["id"])
	}
	if second["completed"] != true {
		t.Errorf("completed: got %v, want true for 'yes'", second["completed"])
	}
	// Empty priority cell flows through for the validator to coerce.
	if second["priority"] != "" {
		t.Errorf("priority: got %q, want empty cell", second["priority"])
	}
}

func TestDecodeTableMissingColumnsTakeDefaults(t *testing.T) {
	data := []byte("id,task\n5,Water plants\n")
	candidates, err := DecodeTable(data)
	if err != nil {
		t.Fatalf("DecodeTable failed: %v", err)
	}
	m := record(t, candidates, 0)
	if m["priority"] != string(task.PriorityMedium) {
		t.Errorf("priority: got %v, want medium", m["priority"])
	}
	if m["completed"] != false {
		t.Errorf("completed: got %v, want false", m["completed"])
	}
	if _, err := task.ParseTimestamp(m["created_at"].(string)); err != nil {
		t.Errorf("created_at should be stamped at decode time: %v", err)
	}
}

func TestDecodeTableCompletedSpellings(t *testing.T) {
	tests := []struct {
		cell string
		want bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"Yes", true},
		{"false", false},
		{"0", false},
		{"no", false},
		{"", false},
		{"2", false},
	}
	for _, tt := range tests {
		t.Run("cell="+tt.cell, func(t *testing.T) {
			data := []byte("id,task,completed\n1,A," + tt.cell + "\n")
			candidates, err := DecodeTable(data)
			if err != nil {
				t.Fatalf("DecodeTable failed: %v", err)
			}
			if got := record(t, candidates, 0)["completed"]; got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecodeTableEmptyInputFails(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"header only", "id,task,priority,completed,created_at\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTable([]byte(tt.data)); err == nil {
				t.Error("expected error for input with no rows")
			}
		})
	}
}

func TestDecodeText(t *testing.T) {
	data := []byte("[HIGH] Buy milk\nx [MEDIUM] Call bank\nPlain task\n# comment\n")
	candidates, err := DecodeText(data)
	if err != nil {
		t.Fatalf("DecodeText failed: %v", err)
	}
	if len(candidates) != 3 {
		t.Fatalf("got %d candidates, want 3", len(candidates))
	}

	first := record(t, candidates, 0)
	if first["task"] != "Buy milk" || first["priority"] != "high" || first["completed"] != false {
		t.Errorf("unexpected first record: %v", first)
	}

	// The completion strip is a character-set trim: the bracketed tag after
	// "x " is partially eaten. That is the format's documented behavior.
	second := record(t, candidates, 1)
	if second["completed"] != true {
		t.Errorf("second record should be completed")
	}
	if second["priority"] != "medium" {
		t.Errorf("priority: got %v, want medium", second["priority"])
	}
	if second["task"] != "MEDIUM] Call bank" {
		t.Errorf("task: got %q, want %q", second["task"], "MEDIUM] Call bank")
	}

	third := record(t, candidates, 2)
	if third["task"] != "Plain task" || third["completed"] != false {
		t.Errorf("unexpected third record: %v", third)
	}

	// IDs are positional, comment excluded.
	for i, want := range []int{1, 2, 3} {
		if got := record(t, candidates, i)["id"]; got != want {
			t.Errorf("candidate %d id: got %v, want %d", i, got, want)
		}
	}
}

func TestDecodeTextBracketTagQuirks(t *testing.T) {
	tests := []struct {
		name          string
		line          string
		wantTask      string
		wantPriority  string
		wantCompleted bool
	}{
		{"valid tag", "[low] water plants", "water plants", "low", false},
		{"tag is case-insensitive", "[LoW] water plants", "water plants", "low", false},
		// An invalid tag is stripped anyway but leaves priority at medium.
		{"invalid tag stripped", "[urgent] fix roof", "fix roof", "medium", false},
		// A leading [x] parses as an invalid priority tag, not completion.
		{"leading checkbox is a tag", "[x] ship it", "ship it", "medium", false},
		{"unclosed bracket kept", "[high task", "[high task", "medium", false},
		{"checkmark prefix", "✓ done thing", "done thing", "medium", true},
		{"completed after tag", "[high] x pay rent", "pay rent", "high", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates, err := DecodeText([]byte(tt.line + "\n"))
			if err != nil {
				t.Fatalf("DecodeText failed: %v", err)
			}
			m := record(t, candidates, 0)
			if m["task"] != tt.wantTask {
				t.Errorf("task: got %q, want %q", m["task"], tt.wantTask)
			}
			if m["priority"] != tt.wantPriority {
				t.Errorf("priority: got %v, want %v", m["priority"], tt.wantPriority)
			}
			if m["completed"] != tt.wantCompleted {
				t.Errorf("completed: got %v, want %v", m["completed"], tt.wantCompleted)
			}
		})
	}
}

func TestDecodeTextKeepsEmptyDescriptions(t *testing.T) {
	// "x " alone leaves an empty description; the text decoder still emits
	// the record (the checklist decoder would not).
	candidates, err := DecodeText([]byte("x \n"))
	if err != nil {
		t.Fatalf("DecodeText failed: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(candidates))
	}
	m := record(t, candidates, 0)
	if m["task"] != "" || m["completed"] != true {
		t.Errorf("unexpected record: %v", m)
	}
}

func TestDecodeTextEmptyInputFails(t *testing.T) {
	tests := []string{"", "\n\n", "# only a comment\n"}
	for _, data := range tests {
		if _, err := DecodeText([]byte(data)); err == nil {
			t.Errorf("expected error for %q", data)
		}
	}
}

func TestDecodeChecklist(t *testing.T) {
	data := []byte("## High Priority\n- [ ] A\n## Low Priority\n- [x] B\n")
	candidates, err := DecodeChecklist(data)
	if err != nil {
		t.Fatalf("DecodeChecklist failed: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(candidates))
	}

	first := record(t, candidates, 0)
	if first["task"] != "A" || first["priority"] != "high" || first["completed"] != false {
		t.Errorf("unexpected first record: %v", first)
	}
	second := record(t, candidates, 1)
	if second["task"] != "B" || second["priority"] != "low" || second["completed"] != true {
		t.Errorf("unexpected second record: %v", second)
	}
}

func TestDecodeChecklistPriorityContext(t *testing.T) {
	data := []byte(
		"- [ ] before any header\n" +
			"## HIGH stuff\n" +
			"- [ ] high one\n" +
			"## Notes\n" + // no keyword: context unchanged
			"- [ ] still high\n" +
			"## Back to Medium\n" +
			"- [ ] medium again\n")
	candidates, err := DecodeChecklist(data)
	if err != nil {
		t.Fatalf("DecodeChecklist failed: %v", err)
	}
	want := []string{"medium", "high", "high", "medium"}
	if len(candidates) != len(want) {
		t.Fatalf("got %d candidates, want %d", len(candidates), len(want))
	}
	for i, p := range want {
		if got := record(t, candidates, i)["priority"]; got != p {
			t.Errorf("candidate %d priority: got %v, want %s", i, got, p)
		}
	}
}

func TestDecodeChecklistDescriptionCleanup(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"bold stripped", "- [ ] **Buy milk**", "Buy milk"},
		{"italic stripped", "- [x] _Call bank_", "Call bank"},
		{"date annotation cut", "- [ ] **Buy milk** (2024-01-02)", "Buy milk"},
		{"bracket annotation cut", "- [ ] Buy milk [urgent]", "Buy milk"},
		// Emphasis removal runs first, so the exported "_date_" loses its
		// underscores and no " _" delimiter remains to cut it off.
		{"exported checklist line", "- [x] **Ship release** _2024-01-02_", "Ship release 2024-01-02"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates, err := DecodeChecklist([]byte(tt.line + "\n"))
			if err != nil {
				t.Fatalf("DecodeChecklist failed: %v", err)
			}
			if got := record(t, candidates, 0)["task"]; got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeChecklistDropsEmptyDescriptions(t *testing.T) {
	data := []byte("- [ ] ****\n- [ ] real task\n")
	candidates, err := DecodeChecklist(data)
	if err != nil {
		t.Fatalf("DecodeChecklist failed: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("got %d candidates, want 1 (empty description dropped)", len(candidates))
	}
	m := record(t, candidates, 0)
	if m["task"] != "real task" {
		t.Errorf("task: got %q", m["task"])
	}
	// IDs stay sequential over emitted records only.
	if m["id"] != 1 {
		t.Errorf("id: got %v, want 1", m["id"])
	}
}

func TestDecodeChecklistEmptyInputFails(t *testing.T) {
	if _, err := DecodeChecklist([]byte("## High Priority\nprose only\n")); err == nil {
		t.Error("expected error for checklist with no items")
	}
}

func TestDecodeDispatch(t *testing.T) {
	if _, err := Decode([]byte("x"), FormatDocument); err == nil {
		t.Error("document format must not decode")
	}
	if _, err := Decode([]byte("x"), Format("yaml")); err == nil {
		t.Error("unknown format must not decode")
	}
	candidates, err := Decode([]byte(`[{"task":"A"}]`), FormatRecord)
	if err != nil {
		t.Fatalf("Decode record failed: %v", err)
	}
	if len(candidates) != 1 {
		t.Errorf("got %d candidates, want 1", len(candidates))
	}
}
