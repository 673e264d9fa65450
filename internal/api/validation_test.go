package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email  string `json:"email" validate:"required,email"`
	Goals  int    `json:"goals" validate:"gte=0,lte=50"`
	Result string `json:"result" validate:"required,oneof=win loss draw"`
	Notes  string `json:"notes" validate:"max=5"`
}

func TestValidateStruct_Valid(t *testing.T) {
	errs := ValidateStruct(sample{Email: "a@b.co", Goals: 2, Result: "win"})
	assert.Empty(t, errs)
}

func TestValidateStruct_Messages(t *testing.T) {
	errs := ValidateStruct(sample{Email: "nope", Goals: -1, Result: "tie", Notes: "too long"})
	require.Len(t, errs, 4)

	byField := map[string]ValidationError{}
	for _, e := range errs {
		byField[e.Field] = e
	}
	assert.Equal(t, "Email must be a valid email address", byField["Email"].Message)
	assert.Equal(t, "Goals must be greater than or equal to 0", byField["Goals"].Message)
	assert.Equal(t, "Result must be one of: win loss draw", byField["Result"].Message)
	assert.Equal(t, "Notes must be at most 5", byField["Notes"].Message)
}

func TestValidateStruct_Required(t *testing.T) {
	errs := ValidateStruct(sample{})
	require.NotEmpty(t, errs)
	assert.Equal(t, "required", errs[0].Tag)
	assert.Equal(t, "Email is required", errs[0].Message)
}

func TestRespondWithValidationErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondWithValidationErrors(c, []ValidationError{{Field: "Goals", Tag: "gte", Message: "bad"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp ValidationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "validation failed", resp.Error)
	assert.Len(t, resp.Details, 1)
}
