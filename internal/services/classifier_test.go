package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyVerdicts(t *testing.T) {
	cases := []struct {
		name     string
		verdicts []string
		want     Status
	}{
		{"empty sequence", nil, StatusNone},
		{"only blanks", []string{"", "   "}, StatusNone},
		{"single selected", []string{"Selected"}, StatusSelected},
		{"last wins over rejection", []string{"Rejected", "Selected"}, StatusSelected},
		{"last wins over selection", []string{"Selected", "Rejected"}, StatusRejected},
		{"unrecognized last falls back to scan", []string{"Selected", "Hmm not sure"}, StatusSelected},
		{"last recognized as rejected", []string{"Maybe", "Reject"}, StatusRejected},
		{"on hold is waitlisted", []string{"On Hold"}, StatusWaitlisted},
		{"maybe is waitlisted", []string{"maybe"}, StatusWaitlisted},
		{"waitlist substring", []string{"put on waitlist"}, StatusWaitlisted},
		{"case insensitive", []string{"REJECTED"}, StatusRejected},
		{"substring match inside free text", []string{"strongly selected for round 2"}, StatusSelected},
		{"not selected still contains selected", []string{"Not Selected"}, StatusSelected},
		{"fallback precedence selected over rejected", []string{"rejected", "selected", "gibberish"}, StatusSelected},
		{"fallback precedence rejected over waitlisted", []string{"hold", "rejected", "gibberish"}, StatusRejected},
		{"all unrecognized", []string{"fine", "ok i guess"}, StatusNone},
		{"whitespace trimmed before match", []string{"  selected  "}, StatusSelected},
		{"blanks dropped before last-wins", []string{"Rejected", ""}, StatusRejected},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyVerdicts(tc.verdicts))
		})
	}
}

func TestClassifyVerdictsDoesNotMutateInput(t *testing.T) {
	in := []string{"  Selected  ", "REJECTED"}
	ClassifyVerdicts(in)
	assert.Equal(t, []string{"  Selected  ", "REJECTED"}, in)
}
