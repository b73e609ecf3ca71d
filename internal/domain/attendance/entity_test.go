package attendance

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRefUnmarshal(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want EventRef
	}{
		{"bare id", `42`, EventRef{ID: 42}},
		{"nested object", `{"event_id": 7, "event_title": "Cloud Bootcamp"}`, EventRef{ID: 7, Title: "Cloud Bootcamp"}},
		{"null", `null`, EventRef{}},
		{"unknown shape", `"seven"`, EventRef{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var ref EventRef
			require.NoError(t, json.Unmarshal([]byte(c.in), &ref))
			assert.Equal(t, c.want, ref)
		})
	}
}

func TestFlexFloatUnmarshal(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want FlexFloat
	}{
		{"number", `2.5`, FlexFloat{Value: 2.5, Valid: true}},
		{"numeric string", `"1.75"`, FlexFloat{Value: 1.75, Valid: true}},
		{"integer string", `"3"`, FlexFloat{Value: 3, Valid: true}},
		{"null", `null`, FlexFloat{}},
		{"empty string", `""`, FlexFloat{}},
		{"garbage string", `"lots"`, FlexFloat{}},
		{"infinity string", `"Inf"`, FlexFloat{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var f FlexFloat
			require.NoError(t, json.Unmarshal([]byte(c.in), &f))
			assert.Equal(t, c.want, f)
		})
	}
}

func TestFlexFloatPtr(t *testing.T) {
	t.Parallel()

	set := FlexFloat{Value: 2.5, Valid: true}
	require.NotNil(t, set.Ptr())
	assert.Equal(t, 2.5, *set.Ptr())

	var unset FlexFloat
	assert.Nil(t, unset.Ptr())
}

func TestFlaggedDayLogUnmarshal(t *testing.T) {
	t.Parallel()

	raw := `{
		"event": {"event_id": 7, "event_title": "Cloud Bootcamp"},
		"date": "2025-01-13",
		"type": "excessive_break",
		"break_hours": "2.5",
		"notes": "two long breaks"
	}`

	var log FlaggedDayLog
	require.NoError(t, json.Unmarshal([]byte(raw), &log))

	assert.Equal(t, EventRef{ID: 7, Title: "Cloud Bootcamp"}, log.Event)
	assert.Equal(t, "2025-01-13", log.Date)
	require.NotNil(t, log.Type)
	assert.Equal(t, "excessive_break", *log.Type)
	assert.True(t, log.BreakHours.Valid)
	assert.Equal(t, 2.5, log.BreakHours.Value)
}

func TestOverviewFilterValidate(t *testing.T) {
	t.Parallel()

	empty := OverviewFilter{}
	require.NoError(t, empty.Validate())
	assert.Equal(t, WeekAll, empty.Week)

	all := OverviewFilter{Week: "all"}
	assert.NoError(t, all.Validate())

	week := OverviewFilter{Week: "2025-01-12"}
	assert.NoError(t, week.Validate())

	bad := OverviewFilter{Week: "next week"}
	assert.Error(t, bad.Validate())
}

func TestTraineeOverviewRequestValidate(t *testing.T) {
	t.Parallel()

	ok := TraineeOverviewRequest{TraineeID: "9b2d5e1c-8f4a-4c3b-9e2d-1a2b3c4d5e6f"}
	assert.NoError(t, ok.Validate())

	missing := TraineeOverviewRequest{}
	assert.Error(t, missing.Validate())

	malformed := TraineeOverviewRequest{TraineeID: "t-404"}
	assert.Error(t, malformed.Validate())

	badWeek := TraineeOverviewRequest{
		TraineeID: "9b2d5e1c-8f4a-4c3b-9e2d-1a2b3c4d5e6f",
		Filter:    OverviewFilter{Week: "soon"},
	}
	assert.Error(t, badWeek.Validate())
}
