package commands

import (
	"testing"

	"tasklist/internal/tasklist"
)

func TestParseTaskID(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    int
		wantErr string
	}{
		{name: "simple", args: []string{"5"}, want: 5},
		{name: "multi digit", args: []string{"1234"}, want: 1234},
		{name: "leading zeros", args: []string{"007"}, want: 7},
		{name: "missing", args: nil, wantErr: "task id required"},
		{name: "zero", args: []string{"0"}, wantErr: "invalid task id: 0"},
		{name: "negative", args: []string{"-3"}, wantErr: "invalid task id: -3"},
		{name: "letters", args: []string{"a1"}, wantErr: "invalid task id: a1"},
		{name: "non ascii digits", args: []string{"١٢"}, wantErr: "invalid task id: ١٢"},
		{name: "extra", args: []string{"1", "2"}, wantErr: "unexpected argument: 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTaskID(tt.args)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error %q, got id %d", tt.wantErr, got)
				}
				if err.Error() != tt.wantErr {
					t.Errorf("expected %q, got %q", tt.wantErr, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestParseTaskID_RequiredSentinel(t *testing.T) {
	if _, err := ParseTaskID(nil); err != ErrTaskIDRequired {
		t.Errorf("expected ErrTaskIDRequired, got %v", err)
	}
}

func TestFindRow(t *testing.T) {
	rows := []tasklist.Row{{TaskID: 3, Title: "a"}, {TaskID: 8, Title: "b", Completed: 1}}

	row, ok := findRow(rows, 8)
	if !ok || row.Title != "b" {
		t.Errorf("expected row 8, got %+v (found %v)", row, ok)
	}
	if _, ok := findRow(rows, 4); ok {
		t.Error("expected no row for id 4")
	}
	if _, ok := findRow([]tasklist.Row{{Placeholder: tasklist.NoTasksPlaceholder}}, 0); ok {
		t.Error("placeholder must never match")
	}
}
