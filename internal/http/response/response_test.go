package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/oumacavin/smartlearn-backend/internal/admin"
)

func TestFromResultStatusMapping(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		result admin.Result
		want   int
	}{
		{"success", admin.OK(map[string]any{"id": "1"}), http.StatusOK},
		{"not found", admin.Fail(admin.CodeNotFound, "missing"), http.StatusNotFound},
		{"invalid action", admin.Fail(admin.CodeInvalidAction, "nope"), http.StatusBadRequest},
		{"validation", admin.Fail(admin.CodeValidationError, "bad input"), http.StatusBadRequest},
		{"database error", admin.Fail(admin.CodeDatabaseError, "down"), http.StatusInternalServerError},
		{"action error", admin.FailWith(map[string]any{"id": "1"}, admin.CodeActionError, "partial"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			FromResult(c, tc.result)
			if rec.Code != tc.want {
				t.Fatalf("unexpected status: got=%d want=%d", rec.Code, tc.want)
			}

			var envelope map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
				t.Fatalf("body is not a json envelope: %v", err)
			}
			if envelope["success"] != tc.result.Success {
				t.Fatalf("envelope success flag mismatch: got=%v want=%v", envelope["success"], tc.result.Success)
			}
		})
	}
}

func TestFromResultKeepsPartialDataOnActionError(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	FromResult(c, admin.FailWith(map[string]any{"course_id": "c1"}, admin.CodeActionError, "graph sync failed"))

	var envelope map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	data, ok := envelope["data"].(map[string]any)
	if !ok || data["course_id"] != "c1" {
		t.Fatalf("partial data lost in transport: %v", envelope)
	}
}
