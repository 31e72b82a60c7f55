package wslmanager_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	wsl "github.com/ubuntu/wslmanager"
)

func TestSummarizeInstalled(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		input []wsl.InstalledDistro

		want wsl.InstalledSummary
	}{
		"Counts by state":       {input: installedFixture, want: wsl.InstalledSummary{Total: 4, Running: 1, Stopped: 2, DefaultName: "Ubuntu"}},
		"No default shows None": {input: installedFixture[2:], want: wsl.InstalledSummary{Total: 2, Stopped: 1, DefaultName: "None"}},
		"Empty list":            {input: nil, want: wsl.InstalledSummary{DefaultName: "None"}},
	}

	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.want, wsl.SummarizeInstalled(tc.input), "Unexpected summary")
		})
	}
}

func TestSummarizeOnline(t *testing.T) {
	t.Parallel()

	got := wsl.SummarizeOnline(onlineFixture)
	require.Equal(t, wsl.OnlineSummary{Total: 6, Ubuntu: 2, Enterprise: 2}, got, "Unexpected summary")
}

func TestSnapshot(t *testing.T) {
	t.Parallel()

	s := wsl.NewSnapshot(installedFixture, onlineFixture)
	require.Equal(t, wsl.SnapshotSummary{
		TotalInstalled:      4,
		Running:             1,
		Stopped:             2,
		TotalAvailable:      6,
		UbuntuAvailable:     2,
		EnterpriseAvailable: 2,
	}, s.Summary, "Unexpected snapshot summary")

	out, err := s.JSON()
	require.NoError(t, err, "JSON should not fail")

	text := string(out)
	keys := []string{`"installed_distributions"`, `"available_distributions"`, `"summary"`, `"total_installed"`, `"enterprise_available"`}
	last := -1
	for _, k := range keys {
		i := strings.Index(text, k)
		require.Greater(t, i, last, "Key %s is missing or out of order", k)
		last = i
	}

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded), "Snapshot should be valid JSON")

	y, err := s.YAML()
	require.NoError(t, err, "YAML should not fail")
	require.Contains(t, string(y), "total_available: 6", "Unexpected YAML snapshot")
}

func TestSnapshotOfNothing(t *testing.T) {
	t.Parallel()

	out, err := wsl.NewSnapshot(nil, nil).JSON()
	require.NoError(t, err, "JSON should not fail")
	require.Contains(t, string(out), `"installed_distributions": []`, "No distro should be an empty array")
	require.Contains(t, string(out), `"available_distributions": []`, "No distro should be an empty array")
}
