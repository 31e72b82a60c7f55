package state_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ubuntu/wslmanager/internal/state"
)

func TestStateFromString(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		input string

		want    state.State
		wantErr bool
	}{
		"Start":           {input: "Start", want: state.Start},
		"Exported":        {input: "Exported", want: state.Exported},
		"Imported":        {input: "Imported", want: state.Imported},
		"OriginalRemoved": {input: "OriginalRemoved", want: state.OriginalRemoved},
		"Done":            {input: "Done", want: state.Done},
		"Failed":          {input: "Failed", want: state.Failed},

		// Error cases
		"Error with made-up state": {input: "Discombobulating", wantErr: true},
		"Error with empty string":  {input: "", wantErr: true},
	}

	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := state.NewFromString(tc.input)
			if tc.wantErr {
				require.Error(t, err, "Unexpected success parsing wrong input")
				return
			}
			require.NoError(t, err, "NewFromString should not fail with valid inputs")

			require.Equal(t, tc.want, got, "Unexpected state returned by NewFromString")
			require.Equal(t, tc.input, got.String(), "String should round-trip the parsed name")
		})
	}
}

func TestString(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		input state.State
		want  string
	}{
		"Start":  {input: state.Start, want: "Start"},
		"Done":   {input: state.Done, want: "Done"},
		"Failed": {input: state.Failed, want: "Failed"},

		// Error case
		"Error with made-up state": {input: 35, want: "Unknown state 35"},
	}

	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := tc.input.String()
			require.Equal(t, tc.want, got, "Unexpected text returned by state.String()")
		})
	}
}

func TestMachine(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		advances int
		fail     bool

		wantState   state.State
		wantFailErr bool
		wantAdvErr  bool
	}{
		"Starts at Start":                  {wantState: state.Start},
		"Success path reaches Done":        {advances: 4, wantState: state.Done},
		"Failing after export":             {advances: 1, fail: true, wantState: state.Failed},
		"Failing at start":                 {fail: true, wantState: state.Failed},
		"Error advancing past Done":        {advances: 5, wantState: state.Done, wantAdvErr: true},
		"Error failing from terminal Done": {advances: 4, fail: true, wantState: state.Done, wantFailErr: true},
	}

	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var m state.Machine
			var advErr error
			for i := 0; i < tc.advances; i++ {
				if _, err := m.Advance(); err != nil {
					advErr = err
				}
			}
			if tc.wantAdvErr {
				require.Error(t, advErr, "Advance should refuse to leave a terminal state")
			} else {
				require.NoError(t, advErr, "Advance should succeed on the success path")
			}

			if tc.fail {
				_, err := m.Fail()
				if tc.wantFailErr {
					require.Error(t, err, "Fail should refuse to leave a terminal state")
				} else {
					require.NoError(t, err, "Fail should succeed from a non-terminal state")
				}
			}

			require.Equal(t, tc.wantState, m.Current(), "Unexpected machine state")
		})
	}
}
