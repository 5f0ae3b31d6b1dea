package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate("op", nil))
	assert.ErrorIs(t, translate("op", gorm.ErrRecordNotFound), ErrNotFound)
	assert.ErrorIs(t, translate("op", gorm.ErrDuplicatedKey), ErrDuplicate)
	assert.ErrorIs(t, translate("op", fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})), ErrDuplicate)
	assert.ErrorIs(t, translate("op", errors.New("UNIQUE constraint failed: recipes.name")), ErrDuplicate)

	other := errors.New("connection reset")
	err := translate("create recipe", other)
	assert.ErrorIs(t, err, other)
	assert.NotErrorIs(t, err, ErrDuplicate)
	assert.Contains(t, err.Error(), "create recipe")

	assert.NotErrorIs(t, translate("op", &pq.Error{Code: "23503"}), ErrDuplicate)
}
