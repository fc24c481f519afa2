package usecase_test

import (
	"testing"

	"github.com/secmon-lab/gridcell/pkg/domain/model/config"
	"github.com/secmon-lab/gridcell/pkg/domain/types"
	"github.com/secmon-lab/gridcell/pkg/repository/memory"
	"github.com/secmon-lab/gridcell/pkg/usecase"
)

func buildTestSchema() *config.FieldSchema {
	return &config.FieldSchema{
		Fields: []config.FieldDefinition{
			{
				ID:   "done",
				Name: "Done",
				Type: types.FieldTypeCheckbox,
			},
			{
				ID:   "status",
				Name: "Status",
				Type: types.FieldTypeSingleSelect,
				Options: []config.SelectOption{
					{ID: "todo", Name: "To Do", Color: types.SelectOptionColorPurple},
					{ID: "doing", Name: "Doing", Color: types.SelectOptionColorPink},
					{ID: "closed", Name: "Closed", Color: types.SelectOptionColorGreen},
				},
			},
			{
				ID:   "tags",
				Name: "Tags",
				Type: types.FieldTypeMultiSelect,
				Options: []config.SelectOption{
					{ID: "google", Name: "Google", Color: types.SelectOptionColorPurple},
					{ID: "facebook", Name: "Facebook", Color: types.SelectOptionColorPink},
					{ID: "twitter", Name: "Twitter", Color: types.SelectOptionColorLightPink},
				},
			},
		},
	}
}

func setupTest(t *testing.T) (*memory.Memory, *usecase.UseCases) {
	t.Helper()
	repo := memory.New()
	return repo, usecase.New(repo, buildTestSchema())
}
