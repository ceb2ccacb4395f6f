package api

import (
	"errors"
	"testing"
)

// TestAPIErrorFormat validates the error string
func TestAPIErrorFormat(t *testing.T) {
	err := &APIError{
		Code:       "not_found",
		Message:    "Post not found",
		StatusCode: 404,
	}

	expected := "[404] not_found: Post not found"
	if err.Error() != expected {
		t.Errorf("Expected %q, got %q", expected, err.Error())
	}
}

// TestAPIErrorFormatWithDetails includes the details map
func TestAPIErrorFormatWithDetails(t *testing.T) {
	err := &APIError{
		Code:       "validation_error",
		Message:    "Invalid input",
		StatusCode: 422,
		Details:    map[string]interface{}{"field": "content"},
	}

	msg := err.Error()
	if msg == "[422] validation_error: Invalid input" {
		t.Error("Expected details in error message")
	}
}

// TestStatusPredicates maps status codes to error categories
func TestStatusPredicates(t *testing.T) {
	testCases := []struct {
		statusCode   int
		unauthorized bool
		forbidden    bool
		notFound     bool
		serverError  bool
		name         string
	}{
		{401, true, false, false, false, "unauthorized"},
		{403, false, true, false, false, "forbidden"},
		{404, false, false, true, false, "not found"},
		{500, false, false, false, true, "internal server error"},
		{503, false, false, false, true, "service unavailable"},
		{422, false, false, false, false, "validation"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := &APIError{Code: "test", StatusCode: tc.statusCode}

			if IsUnauthorized(err) != tc.unauthorized {
				t.Errorf("IsUnauthorized mismatch for %d", tc.statusCode)
			}
			if IsForbidden(err) != tc.forbidden {
				t.Errorf("IsForbidden mismatch for %d", tc.statusCode)
			}
			if IsNotFound(err) != tc.notFound {
				t.Errorf("IsNotFound mismatch for %d", tc.statusCode)
			}
			if IsServerError(err) != tc.serverError {
				t.Errorf("IsServerError mismatch for %d", tc.statusCode)
			}
		})
	}
}

// TestStatusPredicatesNonAPIError returns false for plain errors
func TestStatusPredicatesNonAPIError(t *testing.T) {
	plain := errors.New("401 unauthorized")

	if IsUnauthorized(plain) {
		t.Error("IsUnauthorized should be false for non-APIError")
	}
	if IsForbidden(plain) || IsNotFound(plain) || IsServerError(plain) {
		t.Error("Predicates should be false for non-APIError")
	}
}
