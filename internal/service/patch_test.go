package service

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanchezegido/recipedia/internal/models"
)

func TestPatchableFields(t *testing.T) {
	assert.Equal(t,
		[]string{"description", "difficulty", "kitchen", "name", "rations", "steps", "time", "type"},
		PatchableFields())
}

func TestApplyPatchEveryField(t *testing.T) {
	r := &models.Recipe{Name: "old", Rations: 1, Time: 1}
	body := map[string]json.RawMessage{
		"name":        json.RawMessage(`"new"`),
		"description": json.RawMessage(`"desc"`),
		"steps":       json.RawMessage(`"boil"`),
		"difficulty":  json.RawMessage(`"HARD"`),
		"kitchen":     json.RawMessage(`"Basque"`),
		"rations":     json.RawMessage(`8`),
		"time":        json.RawMessage(`90`),
		"type":        json.RawMessage(`"SIDE_DISH"`),
	}
	require.NoError(t, applyPatch(NewValidator(), r, body))

	assert.Equal(t, models.Recipe{
		Name:        "new",
		Description: "desc",
		Steps:       "boil",
		Difficulty:  models.DifficultyHard,
		Kitchen:     "Basque",
		Rations:     8,
		Time:        90,
		Type:        models.TypeSideDish,
	}, *r)
}

func TestApplyPatchIsAllOrNothing(t *testing.T) {
	id := uuid.New()
	r := &models.Recipe{ID: id, Name: "keep", Rations: 2}
	err := applyPatch(NewValidator(), r, map[string]json.RawMessage{
		"name":       json.RawMessage(`"changed"`),
		"difficulty": json.RawMessage(`"IMPOSSIBLE"`),
		"rations":    json.RawMessage(`-3`),
	})

	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, KindValidation, se.Kind)
	assert.Equal(t, map[string]string{
		"difficulty": "must be one of EASY, MEDIUM, HARD",
		"rations":    "must be at least 1",
	}, se.Fields)
	assert.Equal(t, "keep", r.Name)
	assert.Equal(t, id, r.ID)
}

func TestApplyPatchNoRecognisedFields(t *testing.T) {
	err := applyPatch(NewValidator(), &models.Recipe{}, map[string]json.RawMessage{"owner": json.RawMessage(`"x"`)})

	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, KindValidation, se.Kind)
	assert.Equal(t, CodeNoRecognizedFields, se.Code)
}
