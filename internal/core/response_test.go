// AngelaMos | 2026
// response_test.go

package core

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOK_EnvelopeShape(t *testing.T) {
	w := httptest.NewRecorder()

	OK(w, "Profile data fetched!", map[string]string{"id": "abc"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(200), body["statusCode"])
	assert.Equal(t, "Profile data fetched!", body["message"])
	assert.NotNil(t, body["data"])
	assert.NotContains(t, body, "meta")
}

func TestPaginated_IncludesMeta(t *testing.T) {
	w := httptest.NewRecorder()

	Paginated(w, "All products retrieved successfully", []int{1, 2}, 42, 2, 10)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	meta, ok := body["meta"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(42), meta["total"])
	assert.Equal(t, float64(2), meta["page"])
	assert.Equal(t, float64(10), meta["limit"])
}

func TestJSONError_ErrorEnvelope(t *testing.T) {
	w := httptest.NewRecorder()

	JSONError(w, UnauthorizedError("You are not authorized"))

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, false, body["success"])
	assert.Equal(t, float64(401), body["statusCode"])
	assert.Equal(t, "You are not authorized", body["message"])

	details, ok := body["errorMessages"].([]any)
	require.True(t, ok)
	require.Len(t, details, 1)
}

func TestFormatValidationError(t *testing.T) {
	t.Parallel()

	type payload struct {
		Email    string `validate:"required,email"`
		Password string `validate:"required,min=8"`
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	err := v.Struct(payload{Email: "not-an-email", Password: "short"})
	require.Error(t, err)

	details := FormatValidationError(err)
	require.Len(t, details, 2)

	byPath := make(map[string]string, len(details))
	for _, d := range details {
		byPath[d.Path] = d.Message
	}

	assert.Equal(t, "Invalid email address", byPath["Email"])
	assert.Equal(
		t,
		"Password must be at least 8 characters long",
		byPath["Password"],
	)
}
