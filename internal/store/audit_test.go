package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptforge/internal/types"
)

func openTestStore(t *testing.T) *AuditStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "audit", "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndReadBack(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run := Run{
		PromptHash: HashPrompt("write sorting code"),
		Duration:   42 * time.Millisecond,
		Candidates: []CandidateRecord{
			{Template: types.TemplateTaskIO, Score: 95, FaithfulnessScore: 100, Validated: true},
			{Template: types.TemplateMinimal, Score: 80, FaithfulnessScore: 100, Validated: true},
		},
	}
	require.NoError(t, s.RecordRun(ctx, run))

	runs, err := s.RecentRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	got := runs[0]
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, run.PromptHash, got.PromptHash)
	assert.Equal(t, 42*time.Millisecond, got.Duration)
	require.Len(t, got.Candidates, 2)
	assert.Equal(t, types.TemplateTaskIO, got.Candidates[0].Template)
	assert.Equal(t, 95.0, got.Candidates[0].Score)
}

func TestRecentRunsOrderAndLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.RecordRun(ctx, Run{
			PromptHash: HashPrompt("prompt"),
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}))
	}

	runs, err := s.RecentRuns(ctx, 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, base.Add(4*time.Minute), runs[0].CreatedAt.UTC())
	assert.True(t, runs[0].CreatedAt.After(runs[2].CreatedAt))
}

func TestHashPromptIsStableAndHidesText(t *testing.T) {
	h := HashPrompt("write sorting code")

	assert.Equal(t, HashPrompt("write sorting code"), h)
	assert.NotEqual(t, HashPrompt("write sorting codes"), h)
	assert.Len(t, h, 64)
	assert.NotContains(t, h, "sorting")
}

func TestRecordFromCandidates(t *testing.T) {
	candidates := []types.TemplateCandidate{
		{
			Template:              types.TemplateEnumerated,
			Score:                 90,
			FaithfulnessValidated: true,
			Faithfulness: types.FaithfulnessResult{
				Score: 85,
				Violations: []types.FaithfulnessViolation{
					{Severity: types.SeverityMedium},
				},
			},
			GenerationTime: 3 * time.Millisecond,
		},
	}

	records := RecordFromCandidates(candidates)

	require.Len(t, records, 1)
	assert.Equal(t, types.TemplateEnumerated, records[0].Template)
	assert.Equal(t, 85, records[0].FaithfulnessScore)
	assert.Equal(t, 1, records[0].Violations)
	assert.True(t, records[0].Validated)
}
