package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"shuttle_tracker/internal/controllers"
	"shuttle_tracker/internal/routes"
	"shuttle_tracker/internal/store"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	s := store.NewMemoryStore()
	if err := store.Seed(s, store.DefaultFleet()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return routes.SetupRouter(s, controllers.NewLocationHub())
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func loginDriver(t *testing.T, r *gin.Engine, driverID, password string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"driverId": driverID, "password": password,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: status %d body %s", driverID, w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	decode(t, w, &resp)
	if resp.Token == "" {
		t.Fatal("login returned no token")
	}
	return resp.Token
}

func TestLoginFailures(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"driverId": "1001", "password": "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong password: status %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"driverId": "9999", "password": "princedriver123",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unknown driver: status %d", w.Code)
	}

	// Missing field is a validation rejection, not an auth failure.
	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{"driverId": "1001"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing password: status %d", w.Code)
	}
}

func TestReportAndReadLocations(t *testing.T) {
	r := newTestRouter(t)
	token := loginDriver(t, r, "1001", "princedriver123")

	report := gin.H{
		"routeId": "1", "driverId": "1001",
		"latitude": 12.9, "longitude": 80.2,
		"status": "on_route",
	}

	// Reporting requires a driver session.
	if w := doJSON(t, r, http.MethodPost, "/api/bus-locations", "", report); w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated report: status %d", w.Code)
	}

	if w := doJSON(t, r, http.MethodPost, "/api/bus-locations", token, report); w.Code != http.StatusOK {
		t.Fatalf("report: status %d body %s", w.Code, w.Body.String())
	}

	w := doJSON(t, r, http.MethodGet, "/api/bus-locations", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("all locations: status %d", w.Code)
	}
	var locs []map[string]interface{}
	decode(t, w, &locs)
	if len(locs) != 1 || locs[0]["routeId"] != "1" {
		t.Fatalf("expected one record for route 1, got %v", locs)
	}

	w = doJSON(t, r, http.MethodGet, "/api/bus-locations/1", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("get route 1 location: status %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodGet, "/api/bus-locations/999", "", nil); w.Code != http.StatusNotFound {
		t.Errorf("absent record should 404, got %d", w.Code)
	}

	// Stop sharing, twice: both succeed.
	if w := doJSON(t, r, http.MethodDelete, "/api/bus-locations/1", token, nil); w.Code != http.StatusOK {
		t.Errorf("stop sharing: status %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodDelete, "/api/bus-locations/1", token, nil); w.Code != http.StatusOK {
		t.Errorf("repeated stop sharing: status %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodGet, "/api/bus-locations/1", "", nil); w.Code != http.StatusNotFound {
		t.Errorf("record should be gone, got %d", w.Code)
	}
}

func TestReportValidation(t *testing.T) {
	r := newTestRouter(t)
	token := loginDriver(t, r, "1001", "princedriver123")

	cases := []struct {
		name string
		body gin.H
		want int
	}{
		{"missing latitude", gin.H{"routeId": "1", "driverId": "1001", "longitude": 80.2}, http.StatusBadRequest},
		{"non-numeric latitude", gin.H{"routeId": "1", "driverId": "1001", "latitude": "abc", "longitude": 80.2}, http.StatusBadRequest},
		{"unknown status", gin.H{"routeId": "1", "driverId": "1001", "latitude": 12.9, "longitude": 80.2, "status": "flying"}, http.StatusBadRequest},
		{"other driver", gin.H{"routeId": "1", "driverId": "1002", "latitude": 12.9, "longitude": 80.2}, http.StatusForbidden},
		{"other route", gin.H{"routeId": "2", "driverId": "1001", "latitude": 12.9, "longitude": 80.2}, http.StatusForbidden},
	}
	for _, tc := range cases {
		if w := doJSON(t, r, http.MethodPost, "/api/bus-locations", token, tc.body); w.Code != tc.want {
			t.Errorf("%s: status %d, want %d (body %s)", tc.name, w.Code, tc.want, w.Body.String())
		}
	}
}

func TestLogoutClearsLocation(t *testing.T) {
	r := newTestRouter(t)
	token := loginDriver(t, r, "1001", "princedriver123")

	doJSON(t, r, http.MethodPost, "/api/bus-locations", token, gin.H{
		"routeId": "1", "driverId": "1001", "latitude": 12.9, "longitude": 80.2,
	})

	if w := doJSON(t, r, http.MethodPost, "/api/auth/logout", "", gin.H{"driverId": "1001"}); w.Code != http.StatusOK {
		t.Fatalf("logout: status %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodGet, "/api/bus-locations/1", "", nil); w.Code != http.StatusNotFound {
		t.Errorf("location should be cleared on logout, got %d", w.Code)
	}

	// Logout with no prior report still succeeds.
	if w := doJSON(t, r, http.MethodPost, "/api/auth/logout", "", gin.H{"driverId": "1002"}); w.Code != http.StatusOK {
		t.Errorf("logout without report: status %d", w.Code)
	}
}

func TestRouteCatalogEndpoints(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/routes", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list routes: status %d", w.Code)
	}
	var routeList []map[string]interface{}
	decode(t, w, &routeList)
	if len(routeList) != 10 {
		t.Errorf("expected 10 routes, got %d", len(routeList))
	}

	if w := doJSON(t, r, http.MethodGet, "/api/routes/999", "", nil); w.Code != http.StatusNotFound {
		t.Errorf("unknown route should 404, got %d", w.Code)
	}
}

func TestRouteDetailAnnotation(t *testing.T) {
	r := newTestRouter(t)
	token := loginDriver(t, r, "1001", "princedriver123")

	// No location yet: every stop upcoming.
	w := doJSON(t, r, http.MethodGet, "/api/routes/1", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("route detail: status %d", w.Code)
	}
	var detail struct {
		Stops []struct {
			Name     string `json:"name"`
			Sequence int    `json:"sequence"`
			State    string `json:"state"`
		} `json:"stops"`
	}
	decode(t, w, &detail)
	if len(detail.Stops) != 22 {
		t.Fatalf("expected 22 stops, got %d", len(detail.Stops))
	}
	for _, s := range detail.Stops {
		if s.State != "upcoming" {
			t.Errorf("stop %q: expected upcoming with no location, got %s", s.Name, s.State)
		}
	}

	// Report at the 5th stop: 1-4 passed, 5 current, rest upcoming.
	doJSON(t, r, http.MethodPost, "/api/bus-locations", token, gin.H{
		"routeId": "1", "driverId": "1001",
		"latitude": 12.9, "longitude": 80.2,
		"currentStop": detail.Stops[4].Name,
	})

	w = doJSON(t, r, http.MethodGet, "/api/routes/1", "", nil)
	decode(t, w, &detail)
	for i, s := range detail.Stops {
		var want string
		switch {
		case i < 4:
			want = "passed"
		case i == 4:
			want = "current"
		default:
			want = "upcoming"
		}
		if s.State != want {
			t.Errorf("stop %d (%s): expected %s, got %s", i+1, s.Name, want, s.State)
		}
	}
}

func TestAdminEndpoints(t *testing.T) {
	r := newTestRouter(t)

	// Unconfigured admin surface is disabled.
	if w := doJSON(t, r, http.MethodGet, "/api/admin/drivers", "hunter2", nil); w.Code != http.StatusForbidden {
		t.Errorf("unconfigured admin: status %d", w.Code)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	t.Setenv("ADMIN_PASSWORD_HASH", string(hash))

	if w := doJSON(t, r, http.MethodGet, "/api/admin/drivers", "wrong", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("wrong admin password: status %d", w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/api/admin/drivers", "hunter2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("admin drivers: status %d body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Data []map[string]interface{} `json:"data"`
	}
	decode(t, w, &resp)
	if len(resp.Data) != 10 {
		t.Errorf("expected 10 drivers, got %d", len(resp.Data))
	}
	for _, d := range resp.Data {
		if _, leaked := d["password"]; leaked {
			t.Error("driver password leaked in admin listing")
		}
	}

	w = doJSON(t, r, http.MethodGet, "/api/admin/status", "hunter2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("admin status: status %d", w.Code)
	}
	var status map[string]interface{}
	decode(t, w, &status)
	if status["routes"] != float64(10) {
		t.Errorf("expected 10 routes in status, got %v", status["routes"])
	}
}
