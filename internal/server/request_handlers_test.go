package server

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"testing"

	"childrenlk/internal/models"
	"childrenlk/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listResponse[T any] struct {
	Data  []T   `json:"data"`
	Total int64 `json:"total"`
}

func worksheet() map[string]any {
	return map[string]any{
		"name":             "Math Worksheet",
		"shortDescription": "Grade 3 addition",
		"targetAudience":   "children",
		"ageGroup":         "5-10",
		"tags":             []string{"Math", "grade-3"},
		"documents": []map[string]string{
			{"url": "https://cdn.example.com/w.pdf", "publicId": "resources/w", "type": "pdf"},
		},
		"status": "approved",
	}
}

func TestReviewFlowOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	admin := testutil.CreateUser(t, ts.db, "admin@children.lk", models.RoleAdmin)
	owner, org := testutil.CreateOrganizer(t, ts.db, "org@example.com", "Little Steps")
	outsider, _ := testutil.CreateOrganizer(t, ts.db, "other@example.com", "Bright Minds")
	adminToken := ts.token(t, admin)
	ownerToken := ts.token(t, owner)

	status, body := ts.do(t, http.MethodPost, "/api/organizer/resource-requests", ownerToken, worksheet())
	require.Equal(t, http.StatusOK, status, string(body))
	created := decode[models.ResourceRequest](t, body)
	assert.Equal(t, models.RequestStatusPending, created.Status)
	assert.Equal(t, org.ID, created.OrganizationID)
	reqPath := fmt.Sprintf("/api/admin/resource-requests/%d", created.ID)

	status, _ = ts.do(t, http.MethodGet, fmt.Sprintf("/api/organizer/resource-requests/%d", created.ID), ts.token(t, outsider), nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = ts.do(t, http.MethodGet, "/api/public/resources", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Zero(t, decode[listResponse[models.Resource]](t, body).Total)

	status, body = ts.do(t, http.MethodPatch, reqPath, adminToken, map[string]any{"status": "denied", "adminReason": "   "})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Reason is required when denying", errorMessage(t, body))

	status, body = ts.do(t, http.MethodPatch, reqPath, adminToken, map[string]any{"status": "pending"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = ts.do(t, http.MethodPatch, reqPath, adminToken, map[string]any{"status": "approved"})
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, models.RequestStatusApproved, decode[models.ResourceRequest](t, body).Status)

	status, body = ts.do(t, http.MethodPatch, reqPath, adminToken, map[string]any{"status": "denied", "adminReason": "Changed my mind"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Request already reviewed", errorMessage(t, body))

	status, body = ts.do(t, http.MethodGet, "/api/public/resources?tag=math&ageGroup=5-10", "", nil)
	require.Equal(t, http.StatusOK, status, string(body))
	published := decode[listResponse[models.Resource]](t, body)
	require.Equal(t, int64(1), published.Total)
	assert.Equal(t, "Math Worksheet", published.Data[0].Name)
	assert.Equal(t, created.ID, published.Data[0].RequestID)

	status, body = ts.do(t, http.MethodGet, fmt.Sprintf("/api/public/resources/%d", published.Data[0].ID), "", nil)
	require.Equal(t, http.StatusOK, status, string(body))

	status, body = ts.do(t, http.MethodGet, "/api/public/resources?targetAudience=grownups", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	download := map[string]any{"resourceId": published.Data[0].ID, "documentPublicId": "resources/w"}
	for want := 1; want <= 2; want++ {
		status, body = ts.do(t, http.MethodPost, "/api/public/resources/download", "", download)
		require.Equal(t, http.StatusOK, status, string(body))
		assert.Contains(t, string(body), fmt.Sprintf(`"count":%d`, want))
	}

	status, body = ts.do(t, http.MethodGet, "/api/organizer/stats", ownerToken, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Contains(t, string(body), `"approved":1`)

	status, body = ts.do(t, http.MethodGet, "/api/tags?q=ma", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `["math"]`, string(body))
}

func TestRoleGateRunsBeforeBodyParsing(t *testing.T) {
	ts := newTestServer(t)
	parent := testutil.CreateUser(t, ts.db, "parent@example.com", models.RoleParent)
	owner, _ := testutil.CreateOrganizer(t, ts.db, "org@example.com", "Little Steps")
	orphan := testutil.CreateUser(t, ts.db, "orphan@example.com", models.RoleOrganizer)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   string
	}{
		{"anonymous submit", http.MethodPost, "/api/organizer/event-requests", "", "Authorization required"},
		{"parent submit", http.MethodPost, "/api/organizer/event-requests", ts.token(t, parent), "Organizer access required"},
		{"organizer without organization", http.MethodPost, "/api/organizer/media-requests", ts.token(t, orphan), "Organizer access required"},
		{"organizer reviews", http.MethodPatch, "/api/admin/event-requests/1", ts.token(t, owner), "Admin access required"},
		{"organizer onboards", http.MethodPost, "/api/admin/organizers", ts.token(t, owner), "Admin access required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := ts.do(t, tt.method, tt.path, tt.token, "{not json")
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Equal(t, tt.want, errorMessage(t, body))
		})
	}
}

func TestSubmitRequest_Validation(t *testing.T) {
	ts := newTestServer(t)
	owner, _ := testutil.CreateOrganizer(t, ts.db, "org@example.com", "Little Steps")
	token := ts.token(t, owner)

	status, body := ts.do(t, http.MethodPost, "/api/organizer/super-hero-requests", token, map[string]any{
		"name":             "Ruwan",
		"phone":            "0771234567",
		"shortDescription": "Lifeguard at Unawatuna",
		"icon":             map[string]string{"url": "https://cdn.example.com/i.png", "publicId": "heroes/i", "type": "image"},
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, errorMessage(t, body), "+94")

	status, _ = ts.do(t, http.MethodPost, "/api/organizer/resource-requests", token, "{not json")
	assert.Equal(t, http.StatusBadRequest, status)

	var count int64
	require.NoError(t, ts.db.Model(&models.SuperHeroRequest{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUploadOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	parent := testutil.CreateUser(t, ts.db, "parent@example.com", models.RoleParent)
	body := map[string]string{
		"file":          "data:application/pdf;base64," + base64.StdEncoding.EncodeToString([]byte("%PDF-1.4")),
		"folder":        "resources",
		"resource_type": "raw",
	}

	status, _ := ts.do(t, http.MethodPost, "/api/upload", "", body)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, raw := ts.do(t, http.MethodPost, "/api/upload", ts.token(t, parent), body)
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.JSONEq(t, `{"url":"https://media.example.com/resources/file-1","publicId":"resources/file-1"}`, string(raw))

	ts.host.Err = assert.AnError
	status, raw = ts.do(t, http.MethodPost, "/api/upload", ts.token(t, parent), body)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error", errorMessage(t, raw))
}
