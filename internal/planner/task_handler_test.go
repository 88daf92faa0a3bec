package planner_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nollyprod/stagehand-api/internal/domain"
	"github.com/nollyprod/stagehand-api/internal/planner"
)

func TestOptimizeSchedulePayloadValidate(t *testing.T) {
	tests := []struct {
		name    string
		payload planner.OptimizeSchedulePayload
		wantErr error
	}{
		{
			name:    "empty payload is valid",
			payload: planner.OptimizeSchedulePayload{},
		},
		{
			name: "valid scenes",
			payload: planner.OptimizeSchedulePayload{
				Scenes:  []domain.Scene{{ID: "SCN-1", Location: "Street"}},
				MaxDays: 3,
			},
		},
		{
			name:    "negative maxDays",
			payload: planner.OptimizeSchedulePayload{MaxDays: -1},
			wantErr: domain.ErrInvalidMaxDays,
		},
		{
			name: "scene without id",
			payload: planner.OptimizeSchedulePayload{
				Scenes: []domain.Scene{{Location: "Street"}},
			},
			wantErr: domain.ErrEmptySceneID,
		},
		{
			name: "scene without location",
			payload: planner.OptimizeSchedulePayload{
				Scenes: []domain.Scene{{ID: "SCN-1"}},
			},
			wantErr: domain.ErrEmptySceneLocation,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.payload.Validate()
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOptimizeSchedulePayloadConstraints(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		p := planner.OptimizeSchedulePayload{}
		c := p.Constraints()

		assert.Equal(t, planner.DefaultMaxDays, c.MaxDays)
		assert.Equal(t, planner.DefaultMaxHoursPerDay, c.MaxHoursPerDay)
		assert.Equal(t, planner.DefaultDaylightStart, c.DaylightHours.Start)
		assert.Equal(t, planner.DefaultDaylightEnd, c.DaylightHours.End)
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		p := planner.OptimizeSchedulePayload{
			MaxDays:        4,
			MaxHoursPerDay: 8,
			DaylightHours:  &domain.DaylightWindow{Start: "07:30", End: "17:30"},
		}
		c := p.Constraints()

		assert.Equal(t, 4, c.MaxDays)
		assert.Equal(t, 8, c.MaxHoursPerDay)
		assert.Equal(t, "07:30", c.DaylightHours.Start)
	})
}

func TestScheduleTaskHandler(t *testing.T) {
	o := planner.NewOptimizer(nil, planner.DefaultOptimizerConfig(), discardLogger())
	handler := planner.NewTaskHandler(o)

	payload, err := json.Marshal(planner.OptimizeSchedulePayload{
		ProjectID: "proj-7",
		Scenes: []domain.Scene{
			{ID: "SCN-1", Location: "Street"},
			{ID: "SCN-2", Location: "Market"},
		},
		MaxDays: 2,
	})
	require.NoError(t, err)

	var reports []int
	result, err := handler.Handle(context.Background(), payload, func(p int) { reports = append(reports, p) })
	require.NoError(t, err)

	assert.Equal(t, []int{10, 70, 100}, reports)

	var decoded struct {
		Optimization domain.ScheduleOptimizationResult `json:"optimization"`
		Provenance   domain.Provenance                 `json:"provenance"`
		ProjectID    string                            `json:"projectId"`
	}
	require.NoError(t, json.Unmarshal(result, &decoded))
	assert.Equal(t, "proj-7", decoded.ProjectID)
	assert.Equal(t, domain.SourceFallback, decoded.Provenance.Source)
	assert.Len(t, decoded.Optimization.Days, 2)
}

func TestScheduleTaskHandlerRejectsBadJSON(t *testing.T) {
	o := planner.NewOptimizer(nil, planner.DefaultOptimizerConfig(), discardLogger())
	handler := planner.NewTaskHandler(o)

	_, err := handler.Handle(context.Background(), json.RawMessage(`{"scenes": "nope"}`), func(int) {})
	assert.Error(t, err)
}
