package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"tableflip.dev/tempo/pkg/civil"
	"tableflip.dev/tempo/pkg/plan"
)

func TestEventsKeepsOnlyActive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/events" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode([]plan.Event{
			{ID: "e1", Name: "Fair", Status: plan.StatusActive},
			{ID: "e2", Name: "Old Fair", Status: "ARCHIVED"},
		})
	}))
	defer srv.Close()

	events, err := NewClient(srv.URL).Events(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 || events[0].ID != "e1" {
		t.Fatalf("expected only the active event, got %+v", events)
	}
}

func TestCreateAllocationPostsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/allocations" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var change AllocationChange
		if err := json.NewDecoder(r.Body).Decode(&change); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if change.WorkCategoryID != "w1" || change.Date.String() != "2024-06-01" {
			t.Errorf("unexpected change: %+v", change)
		}
		_ = json.NewEncoder(w).Encode(plan.Allocation{
			ID: "a9", EventID: change.EventID, WorkCategoryID: change.WorkCategoryID,
			Date: change.Date, EffortHours: change.EffortValue,
		})
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL).CreateAllocation(context.Background(), AllocationChange{
		EventID: "e1", WorkCategoryID: "w1",
		Date: civil.MustParse("2024-06-01"), EffortValue: 4, EffortUnit: "hours",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "a9" || got.EffortHours != 4 {
		t.Fatalf("unexpected allocation: %+v", got)
	}
}

func TestUpdateAllocationPatchesID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/api/allocations/a7" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(plan.Allocation{ID: "a7", EffortHours: 6})
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL).UpdateAllocation(context.Background(), "a7", AllocationChange{EffortValue: 6})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "a7" || got.EffortHours != 6 {
		t.Fatalf("unexpected allocation: %+v", got)
	}
}

func TestServerErrorSurfacesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Allocation exceeds estimate"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).CreateAllocation(context.Background(), AllocationChange{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusConflict || apiErr.Message != "Allocation exceeds estimate" {
		t.Fatalf("unexpected APIError: %+v", apiErr)
	}
}

func TestServerErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewClient(srv.URL).DeleteAllocation(context.Background(), "a1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Error() == "" {
		t.Fatalf("expected a generic message for an empty body")
	}
}

func TestDeleteAllocationSuccessNoBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/allocations/a3" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	if err := NewClient(srv.URL).DeleteAllocation(context.Background(), "a3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWorkCategoriesScopedByEvent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("eventId"); got != "e1" {
			t.Errorf("expected eventId query, got %q", got)
		}
		_ = json.NewEncoder(w).Encode([]plan.WorkCategory{{ID: "w1", EventID: "e1", Name: "Rigging"}})
	}))
	defer srv.Close()

	cats, err := NewClient(srv.URL).WorkCategories(context.Background(), "e1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cats) != 1 || cats[0].ID != "w1" {
		t.Fatalf("unexpected categories: %+v", cats)
	}
}

func TestEvaluationDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(plan.Evaluation{
			DailyDemand: []plan.DailyDemand{{Date: civil.MustParse("2024-06-01"), TotalEffortHours: 12}},
			DailyCapacityComparison: []plan.DailyCapacityComparison{
				{Date: civil.MustParse("2024-06-01"), DemandHours: 12, CapacityHours: 8, IsOverAllocated: true},
			},
		})
	}))
	defer srv.Close()

	eval, err := NewClient(srv.URL).Evaluation(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(eval.DailyDemand) != 1 || eval.DailyDemand[0].TotalEffortHours != 12 {
		t.Fatalf("unexpected evaluation: %+v", eval)
	}
	if !eval.DailyCapacityComparison[0].IsOverAllocated {
		t.Fatalf("expected over-allocated flag")
	}
}
