package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesByKind(t *testing.T) {
	err := NewInsufficientStockError("Only 2 left of Milk")

	assert.True(t, errors.Is(err, ErrInsufficientStock))
	assert.False(t, errors.Is(err, ErrValidation))
	assert.True(t, errors.Is(fmt.Errorf("commit: %w", err), ErrInsufficientStock))
}

func TestPersistenceKeepsMessageAndCause(t *testing.T) {
	cause := errors.New("database is locked")
	err := Persistence(cause)

	assert.Equal(t, "database is locked", err.Error())
	assert.True(t, errors.Is(err, ErrPersistence))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, KindPersistence, KindOf(err))
}

func TestPersistenceLeavesAppErrorsAlone(t *testing.T) {
	stock := NewInsufficientStockError("no stock")
	assert.Same(t, stock, Persistence(stock))
	assert.Nil(t, Persistence(nil))
}

func TestGetAppErrorForeign(t *testing.T) {
	appErr := GetAppError(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.Equal(t, KindInternal, appErr.Kind)
}

func TestValidationCarriesField(t *testing.T) {
	err := Validation("items", "Cart is empty")
	assert.Equal(t, http.StatusUnprocessableEntity, err.Code)
	assert.Len(t, err.Errors, 1)
	assert.Equal(t, "items", err.Errors[0].Field)
}
