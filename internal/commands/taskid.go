package commands

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"

	"tasklist/internal/tasklist"
)

// ErrTaskIDRequired indicates no task id was provided.
var ErrTaskIDRequired = errors.New("task id required")

// ParseTaskID parses the single task id argument.
//
// Parsing rules:
// 1. No args → task id required
// 2. More than one arg → unexpected argument
// 3. Not all digits, or zero → invalid task id
func ParseTaskID(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrTaskIDRequired
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("unexpected argument: %s", args[1])
	}

	if !isAllDigits(args[0]) {
		return 0, fmt.Errorf("invalid task id: %s", args[0])
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task id: %s", args[0])
	}
	return id, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// findRow returns the rendered row for task id.
func findRow(rows []tasklist.Row, id int) (tasklist.Row, bool) {
	for _, row := range rows {
		if !row.IsPlaceholder() && row.TaskID == id {
			return row, true
		}
	}
	return tasklist.Row{}, false
}
