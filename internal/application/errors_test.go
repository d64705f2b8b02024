package application

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	repo "github.com/oksasatya/event-portal/internal/domain/repository"
)

func patchIsAdmin(v *bool) repo.AccountPatch { return repo.AccountPatch{IsAdmin: v} }

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("bad")))
	assert.Equal(t, KindNotFound, KindOf(fmt.Errorf("wrapped: %w", ErrUserNotFound)))
	assert.Equal(t, KindDependency, KindOf(errors.New("boom")))
}

func TestError_UnwrapKeepsCause(t *testing.T) {
	err := Dependency("internal server error", errStoreDown)
	assert.ErrorIs(t, err, errStoreDown)
	assert.Equal(t, "internal server error", err.Message)
	assert.Contains(t, err.Error(), "dependency")
}
