package validation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type createPayload struct {
	Username string `json:"username" validate:"required,handle"`
	Password string `json:"password" validate:"required,pwd"`
	Email    string `json:"email" validate:"required,email"`
	Page     int    `json:"page" validate:"min=1"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	Register(v)
	return v
}

func TestToDetails_UsesJSONNamesAndAliases(t *testing.T) {
	err := newValidator().Struct(createPayload{Username: strings.Repeat("a", 65), Password: "short", Email: "nope", Page: 0})

	d := ToDetails(err)
	assert.Equal(t, "must be 1-64 characters long", d["username"])
	assert.Equal(t, "must be at least 6 characters long", d["password"])
	assert.Equal(t, "must be a valid email", d["email"])
	assert.Equal(t, "must be at least 1", d["page"])
}

func TestToDetails_Required(t *testing.T) {
	d := ToDetails(newValidator().Struct(createPayload{Page: 1}))
	assert.Equal(t, "is required", d["username"])
	assert.Equal(t, "is required", d["password"])
}

func TestToDetails_PasswordOfSixIsValid(t *testing.T) {
	err := newValidator().Struct(createPayload{Username: "alice", Password: "sixchr", Email: "a@x.com", Page: 1})
	assert.NoError(t, err)
	assert.Nil(t, ToDetails(err))
}

func TestToDetails_InvalidJSON(t *testing.T) {
	var v map[string]any
	err := json.Unmarshal([]byte("{"), &v)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))
}
