package handler

import (
	"net/http"
	"testing"
)

func TestGetSummary_Figures(t *testing.T) {
	api := newTestAPI(t, "")
	food := api.createCategory(t, "Food", "500")
	fun := api.createCategory(t, "Fun", "0")
	api.openMonth(t, "2024-03", "2000")
	api.record(t, "2024-03", food, "150")
	api.record(t, "2024-03", food, "250")

	rec := api.do(t, http.MethodGet, "/api/v1/months/2024-03/summary", nil)
	expectStatus(t, rec, http.StatusOK)

	s := decode[MonthSummaryResponse](t, rec)
	if !s.HasLedger || s.Status != "open" {
		t.Errorf("Expected an open ledger, got hasLedger=%v status=%q", s.HasLedger, s.Status)
	}
	if s.TotalAvailable != "2000.00" || s.TotalSpent != "400.00" || s.RemainingBalance != "1600.00" {
		t.Errorf("Unexpected totals: %+v", s)
	}
	if len(s.CategoryOrder) != 2 || s.CategoryOrder[0] != food || s.CategoryOrder[1] != fun {
		t.Errorf("Expected registry order, got %v", s.CategoryOrder)
	}
	if got := s.PerCategory[food]; got.Spent != "400.00" || got.Utilization != "80.00" {
		t.Errorf("Unexpected food figures: %+v", got)
	}
	if got := s.PerCategory[fun]; got.Spent != "0.00" || got.Utilization != "100.00" {
		t.Errorf("Expected zero-limit category fully utilized, got %+v", got)
	}
}

func TestGetSummary_Overspend(t *testing.T) {
	api := newTestAPI(t, "")
	food := api.createCategory(t, "Food", "100")
	api.openMonth(t, "2024-03", "100")
	api.record(t, "2024-03", food, "250")

	rec := api.do(t, http.MethodGet, "/api/v1/months/2024-03/summary", nil)
	expectStatus(t, rec, http.StatusOK)

	s := decode[MonthSummaryResponse](t, rec)
	if s.RemainingBalance != "-150.00" {
		t.Errorf("Expected remaining -150.00, got %s", s.RemainingBalance)
	}
	if got := s.PerCategory[food].Utilization; got != "100.00" {
		t.Errorf("Expected utilization clamped at 100.00, got %s", got)
	}
}

func TestGetSummary_NoLedger(t *testing.T) {
	api := newTestAPI(t, "")
	api.createCategory(t, "Food", "100")

	rec := api.do(t, http.MethodGet, "/api/v1/months/2030-01/summary", nil)
	expectStatus(t, rec, http.StatusOK)

	s := decode[MonthSummaryResponse](t, rec)
	if s.HasLedger || s.TotalAvailable != "0.00" || s.RemainingBalance != "0.00" {
		t.Errorf("Expected an empty summary, got %+v", s)
	}
	if len(s.PerCategory) != 1 {
		t.Errorf("Expected registered categories to be listed, got %d", len(s.PerCategory))
	}
}

func TestGetSummary_InvalidMonth(t *testing.T) {
	api := newTestAPI(t, "")

	rec := api.do(t, http.MethodGet, "/api/v1/months/2024-00/summary", nil)
	expectStatus(t, rec, http.StatusBadRequest)
}
