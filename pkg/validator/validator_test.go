package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/pkg/validator"
)

type loginForm struct {
	Username string `json:"username" validate:"required,not_blank"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=admin manager cashier"`
}

func TestValidateStruct_Valido(t *testing.T) {
	errs := validator.ValidateStruct(loginForm{Username: "caja1", Password: "secreto"})
	assert.Nil(t, errs)
}

func TestValidateStruct_ReportaNombresJSON(t *testing.T) {
	errs := validator.ValidateStruct(loginForm{Username: "   ", Password: "123", Role: "root"})
	require.Len(t, errs, 3)

	fields := map[string]string{}
	for _, e := range errs {
		fields[e.FailedField] = e.Tag
	}
	assert.Equal(t, "not_blank", fields["username"])
	assert.Equal(t, "min", fields["password"])
	assert.Equal(t, "oneof", fields["role"])
}

func TestMessage_UneErrores(t *testing.T) {
	msg := validator.Message([]*validator.ErrorResponse{
		{FailedField: "password", Tag: "min", Value: "6"},
		{FailedField: "username", Tag: "required"},
	})
	assert.Equal(t, "password: min=6; username: required", msg)
}
