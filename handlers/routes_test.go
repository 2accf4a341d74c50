package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"client_case_tracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProtectedRoutesRequireSession(t *testing.T) {
	setupTestDB(t)
	e := newTestServer()

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/client-cases"},
		{http.MethodPost, "/api/client-cases"},
		{http.MethodPut, "/api/client-cases"},
		{http.MethodDelete, "/api/client-cases?id=1"},
		{http.MethodGet, "/api/client-cases/view"},
		{http.MethodGet, "/api/client-cases/export"},
		{http.MethodPost, "/api/client-cases/import"},
		{http.MethodGet, "/api/case-options"},
		{http.MethodGet, "/api/case-notes?clientCaseId=1"},
		{http.MethodPost, "/api/case-notes"},
		{http.MethodGet, "/api/auth"},
	}

	for _, r := range routes {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			req := httptest.NewRequest(r.method, r.path, nil)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"success":false,"error":"Unauthorized"}`, rec.Body.String())
		})
	}

	t.Run("Forged cookie is rejected and cleared", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/client-cases", nil)
		req.AddCookie(&http.Cookie{Name: "auth-token", Value: "forged.token.value"})
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		cleared := sessionCookie(rec)
		require.NotNil(t, cleared)
		assert.Empty(t, cleared.Value)
	})
}

func TestFailedLoginLeavesRoutesLocked(t *testing.T) {
	setupTestDB(t)
	e := newTestServer()

	rec, cookie := login(t, e, "wrong-password")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, cookie)

	req := httptest.NewRequest(http.MethodGet, "/api/client-cases", nil)
	list := httptest.NewRecorder()
	e.ServeHTTP(list, req)
	assert.Equal(t, http.StatusUnauthorized, list.Code)
}

func TestCaseLifecycleThroughRoutes(t *testing.T) {
	setupTestDB(t)
	e := newTestServer()

	_, cookie := login(t, e, testAdminPassword)
	require.NotNil(t, cookie)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		var req *http.Request
		if body == "" {
			req = httptest.NewRequest(method, path, nil)
		} else {
			req = httptest.NewRequest(method, path, strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
		}
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	rec := do(http.MethodPost, "/api/client-cases",
		`{"clientName": "Jane Doe", "caseType": "Green Card", "notes": "Filed I-485"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		Data models.ClientCase `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = do(http.MethodGet, "/api/client-cases", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Data []models.ClientCaseView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Data, 1)
	require.NotNil(t, list.Data[0].LatestNote)
	assert.Equal(t, "Filed I-485", *list.Data[0].LatestNote)

	rec = do(http.MethodDelete, "/api/client-cases?id=999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(http.MethodDelete, fmt.Sprintf("/api/client-cases?id=%d", created.Data.ID), "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(http.MethodGet, "/api/client-cases", "")
	assert.JSONEq(t, `{"success":true,"data":[]}`, rec.Body.String())
}

func TestHealthHandler(t *testing.T) {
	setupTestDB(t)
	e := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
