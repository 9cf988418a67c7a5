package github

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"courseops/internal/tracker"
)

func TestEnsureLabelsCreatesOnlyMissing(t *testing.T) {
	created := []labelCreateRequest{}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/octo/course/labels", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]label{{Name: "lecture", Color: "0366d6"}})
	})
	mux.HandleFunc("POST /repos/octo/course/labels", func(w http.ResponseWriter, r *http.Request) {
		var req labelCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode create request: %v", err)
		}
		created = append(created, req)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(label{Name: req.Name, Color: req.Color, Description: req.Description})
	})

	client := newTestClient(t, mux)
	err := client.EnsureLabels(context.Background(), []tracker.LabelDef{
		{Name: "lecture", Color: "#0366d6", Description: "Lecture material tasks"},
		{Name: "workshop", Color: "#28a745", Description: "Workshop and lab tasks"},
	})
	if err != nil {
		t.Fatalf("ensure labels: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("expected 1 create call, got %d", len(created))
	}
	if created[0].Name != "workshop" {
		t.Fatalf("expected workshop to be created, got %q", created[0].Name)
	}
	if created[0].Color != "28a745" {
		t.Fatalf("expected hex color without #, got %q", created[0].Color)
	}
}

func TestEnsureLabelsMatchesCaseInsensitively(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/octo/course/labels", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]label{{Name: "Good First Issue", Color: "7057ff"}})
	})
	mux.HandleFunc("POST /repos/octo/course/labels", func(w http.ResponseWriter, r *http.Request) {
		t.Error("create must not be called for an existing label")
	})

	client := newTestClient(t, mux)
	err := client.EnsureLabels(context.Background(), []tracker.LabelDef{
		{Name: "good first issue", Color: "#7057ff"},
	})
	if err != nil {
		t.Fatalf("ensure labels: %v", err)
	}
}

func TestEnsureLabelsRequiresName(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/octo/course/labels", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]label{})
	})

	client := newTestClient(t, mux)
	if err := client.EnsureLabels(context.Background(), []tracker.LabelDef{{Color: "#ffffff"}}); err == nil {
		t.Fatal("expected error for blank label name")
	}
}

func TestListLabelDefs(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/octo/course/labels", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]label{
			{Name: "bug", Color: "d73a4a", Description: "Something is broken"},
			{Name: "lecture", Color: "0366d6"},
		})
	})

	client := newTestClient(t, mux)
	defs, err := client.ListLabelDefs(context.Background())
	if err != nil {
		t.Fatalf("list label defs: %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("expected 2 defs, got %d", len(defs))
	}
	if defs[0].Name != "bug" || defs[0].Color != "d73a4a" || defs[0].Description != "Something is broken" {
		t.Fatalf("unexpected def: %+v", defs[0])
	}
}
