package job

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"
)

// Wait status encodings shared by Linux and the BSDs.
func exitedStatus(code int) unix.WaitStatus {
	return unix.WaitStatus(code << 8)
}

func signaledStatus(sig unix.Signal) unix.WaitStatus {
	return unix.WaitStatus(sig)
}

func TestOutcome(t *testing.T) {
	cases := map[string]struct {
		status     unix.WaitStatus
		expected   Outcome
		text       string
		completion string
	}{
		"success": {exitedStatus(0), Outcome{}, "exited with value 0", "exit value 0"},
		"failure": {exitedStatus(7), Outcome{Code: 7}, "exited with value 7", "exit value 7"},
		"killed":  {signaledStatus(unix.SIGKILL), Outcome{Signaled: true, Code: 9}, "terminated by signal 9", "terminated with signal 9"},
		"sigint":  {signaledStatus(unix.SIGINT), Outcome{Signaled: true, Code: 2}, "terminated by signal 2", "terminated with signal 2"},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			outcome := outcomeOf(tc.status)
			assert.Equal(t, tc.expected, outcome)
			assert.Equal(t, tc.text, outcome.String())
			assert.Equal(t, tc.completion, outcome.CompletionText())
		})
	}
}

func TestStatusTracker(t *testing.T) {
	var tracker StatusTracker
	assert.Equal(t, "exited with value 0", tracker.Last().String(), "unset status")

	tracker.Set(Outcome{Code: 7})
	assert.Equal(t, Outcome{Code: 7}, tracker.Last())

	tracker.Set(Outcome{Signaled: true, Code: 15})
	assert.Equal(t, "terminated by signal 15", tracker.Last().String())
}
