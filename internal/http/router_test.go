package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"daybook/internal/config"
	httpx "daybook/internal/http"
	"daybook/internal/model"
	"daybook/internal/seed"
	"daybook/internal/store"
)

func demoServer(t *testing.T) *httptest.Server {
	t.Helper()
	m := store.NewMemory()
	if err := seed.Apply(context.Background(), m, seed.Demo()); err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(httpx.NewRouter(config.Config{}, m))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatal(err)
	}
	return v
}

func TestListToursTrailingSlash(t *testing.T) {
	srv := demoServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/tours/", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	tours := decode[[]model.Tour](t, resp)
	if len(tours) != 1 || tours[0].Name != "Boxer Brigade" {
		t.Fatalf("tours = %+v", tours)
	}
}

func TestListDays(t *testing.T) {
	srv := demoServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/tours/1/days/", nil)
	days := decode[[]model.Day](t, resp)
	if len(days) != 3 {
		t.Fatalf("got %d days, want 3", len(days))
	}
	if days[0].DateISO != "2026-01-08" {
		t.Errorf("days not date-ordered: %q first", days[0].DateISO)
	}
}

func TestBatchThenGetSchedule(t *testing.T) {
	srv := demoServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/days/d2/schedule/batch/", map[string]any{
		"create": []map[string]any{{"name": "Encore Rehearsal", "dayId": "ignored"}},
		"delete": []string{"e4"},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("batch status = %d", resp.StatusCode)
	}
	out := decode[map[string]bool](t, resp)
	if !out["ok"] {
		t.Fatalf("batch response = %v", out)
	}

	resp = do(t, http.MethodGet, srv.URL+"/days/d2/schedule/", nil)
	events := decode[[]model.ScheduleEvent](t, resp)

	var found *model.ScheduleEvent
	for i := range events {
		if events[i].ID == "e4" {
			t.Error("deleted event e4 still listed")
		}
		if events[i].Name == "Encore Rehearsal" {
			found = &events[i]
		}
	}
	if found == nil {
		t.Fatal("created event not listed")
	}
	if found.DayID != "d2" {
		t.Errorf("created event dayId = %q, want d2", found.DayID)
	}
}

func TestBatchUnknownDay404(t *testing.T) {
	srv := demoServer(t)
	resp := do(t, http.MethodPost, srv.URL+"/days/nope/schedule/batch/", map[string]any{})
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestMalformedBatch400(t *testing.T) {
	srv := demoServer(t)
	resp := do(t, http.MethodPost, srv.URL+"/days/d2/schedule/batch/", map[string]any{
		"create": []map[string]any{{"name": ""}},
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestScheduleTemplatesOverHTTP(t *testing.T) {
	srv := demoServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/days/d2/schedule-templates/", map[string]any{"name": "Show Day"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	tpl := decode[model.ScheduleTemplate](t, resp)
	if tpl.TourID != "1" || len(tpl.Events) == 0 {
		t.Fatalf("template = %+v", tpl)
	}

	resp = do(t, http.MethodGet, srv.URL+"/tours/1/schedule-templates/", nil)
	list := decode[[]model.ScheduleTemplate](t, resp)
	if len(list) != 1 || list[0].ID != tpl.ID {
		t.Fatalf("templates = %+v", list)
	}

	resp = do(t, http.MethodDelete, srv.URL+"/tours/1/schedule-templates/"+tpl.ID+"/", nil)
	if out := decode[map[string]bool](t, resp); !out["ok"] {
		t.Fatalf("first delete = %v", out)
	}
	resp = do(t, http.MethodDelete, srv.URL+"/tours/1/schedule-templates/"+tpl.ID+"/", nil)
	if out := decode[map[string]bool](t, resp); out["ok"] {
		t.Fatalf("second delete = %v", out)
	}
}

func TestDayContext(t *testing.T) {
	srv := demoServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/days/d2/context/", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	type ctxResp struct {
		Venue    model.Venue     `json:"venue"`
		Contacts []model.Contact `json:"contacts"`
		Notes    []model.Note    `json:"notes"`
	}
	got := decode[ctxResp](t, resp)
	if got.Venue.ID != "v1" || len(got.Contacts) != 2 || len(got.Notes) != 1 {
		t.Fatalf("context = %+v", got)
	}

	resp = do(t, http.MethodGet, srv.URL+"/days/nope/context/", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown day status = %d, want 404", resp.StatusCode)
	}
}

func TestPersonnelCRUDOverHTTP(t *testing.T) {
	srv := demoServer(t)

	// create: body id/tourId must be ignored
	resp := do(t, http.MethodPost, srv.URL+"/tours/1/personnel/", map[string]any{
		"id": "forced", "tourId": "other", "name": "New Tech",
	})
	created := decode[model.Person](t, resp)
	if created.ID == "forced" || created.TourID != "1" {
		t.Fatalf("created = %+v", created)
	}

	// patch: id/tourId in body are not part of the patch type
	resp = do(t, http.MethodPut, srv.URL+"/tours/1/personnel/"+created.ID+"/", map[string]any{
		"id": "other", "tourId": "other-tour", "name": "Z",
	})
	patched := decode[model.Person](t, resp)
	if patched.Name != "Z" || patched.ID != created.ID || patched.TourID != "1" {
		t.Fatalf("patched = %+v", patched)
	}

	// idempotent delete: true then false
	resp = do(t, http.MethodDelete, srv.URL+"/tours/1/personnel/"+created.ID+"/", nil)
	if out := decode[map[string]bool](t, resp); !out["ok"] {
		t.Fatalf("first delete = %v", out)
	}
	resp = do(t, http.MethodDelete, srv.URL+"/tours/1/personnel/"+created.ID+"/", nil)
	if out := decode[map[string]bool](t, resp); out["ok"] {
		t.Fatalf("second delete = %v", out)
	}
}

func TestGroupCRUDOverHTTP(t *testing.T) {
	srv := demoServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/tours/1/groups/", map[string]any{"name": "Lighting Crew"})
	g := decode[model.Group](t, resp)
	if g.TourID != "1" || g.Name != "Lighting Crew" {
		t.Fatalf("group = %+v", g)
	}

	resp = do(t, http.MethodPut, srv.URL+"/tours/1/groups/"+g.ID+"/", map[string]any{"color": "#abcdef"})
	g = decode[model.Group](t, resp)
	if g.Color != "#abcdef" {
		t.Fatalf("group = %+v", g)
	}

	resp = do(t, http.MethodDelete, srv.URL+"/tours/1/groups/"+g.ID+"/", nil)
	if out := decode[map[string]bool](t, resp); !out["ok"] {
		t.Fatalf("delete = %v", out)
	}
}

func TestNoteAndLodgingOverHTTP(t *testing.T) {
	srv := demoServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/days/d3/notes/", map[string]any{
		"title": "Hotel Info", "body": "Late checkout ok", "visibility": "crew",
	})
	note := decode[model.Note](t, resp)
	if note.DayID != "d3" || note.LastEditedAtISO == "" {
		t.Fatalf("note = %+v", note)
	}

	resp = do(t, http.MethodPost, srv.URL+"/days/d3/lodging/", map[string]any{
		"hotel":  map[string]any{"id": "h1", "name": "Fairmont SF"},
		"guests": []map[string]any{{"personId": "p1"}},
	})
	type lodgingResp struct {
		OK      bool             `json:"ok"`
		Lodging model.DayLodging `json:"lodging"`
	}
	lr := decode[lodgingResp](t, resp)
	if !lr.OK || lr.Lodging.Hotel == nil || lr.Lodging.Hotel.Name != "Fairmont SF" {
		t.Fatalf("lodging = %+v", lr)
	}

	resp = do(t, http.MethodDelete, srv.URL+"/days/d3/lodging/", nil)
	if out := decode[map[string]bool](t, resp); !out["ok"] {
		t.Fatalf("lodging delete = %v", out)
	}
}
