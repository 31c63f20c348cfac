package api

import (
	"errors"
	"net/http"

	"github.com/msituguard/msituguard/internal/metrics"
)

type verifyTreeRequest struct {
	TreeID    int64  `json:"tree_id"`
	ActorRole string `json:"actor_role"`
}

type verifyReportRequest struct {
	ReportID  int64  `json:"report_id"`
	ActorRole string `json:"actor_role"`
}

type awardResponse struct {
	Success    bool     `json:"success"`
	AwardedNow bool     `json:"awarded_now"`
	Points     int64    `json:"points"`
	Carbon     float64  `json:"carbon_tonnes"`
	ValueKES   float64  `json:"value_kes"`
	Badges     []string `json:"badges"`
}

func (s *Server) handleVerifyTree(w http.ResponseWriter, r *http.Request) {
	var req verifyTreeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ActorRole != "admin" {
		writeDomainError(w, ErrNotAuthorized)
		return
	}

	result, err := s.store.VerifyTreePlanting(req.TreeID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if result.AwardedNow {
		metrics.AwardsTotal.WithLabelValues("tree").Inc()
	}
	writeJSON(w, http.StatusOK, awardResponse{
		Success:    true,
		AwardedNow: result.AwardedNow,
		Points:     result.Points,
		Carbon:     result.Carbon,
		ValueKES:   result.ValueKES,
		Badges:     result.Badges,
	})
}

func (s *Server) handleVerifyReport(w http.ResponseWriter, r *http.Request) {
	var req verifyReportRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ActorRole != "admin" {
		writeDomainError(w, ErrNotAuthorized)
		return
	}

	result, err := s.store.VerifyReport(req.ReportID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if result.AwardedNow {
		metrics.AwardsTotal.WithLabelValues("report").Inc()
	}
	writeJSON(w, http.StatusOK, awardResponse{
		Success:    true,
		AwardedNow: result.AwardedNow,
		Points:     result.Points,
		Carbon:     result.Carbon,
		ValueKES:   result.ValueKES,
		Badges:     result.Badges,
	})
}

type transactRequest struct {
	UserID int64   `json:"user_id"`
	Kind   string  `json:"type"`
	Amount float64 `json:"amount"`
}

func (s *Server) handleTransact(w http.ResponseWriter, r *http.Request) {
	var req transactRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, errors.New("amount must be positive"))
		return
	}

	tx, err := s.store.CarbonTransact(req.UserID, req.Kind, req.Amount)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	metrics.CarbonTransactionsTotal.WithLabelValues(tx.Kind).Inc()

	resp := map[string]any{
		"success":   true,
		"type":      tx.Kind,
		"amount":    tx.Amount,
		"value_kes": tx.ValueKES,
	}
	if tx.ProjectName.Valid {
		resp["project"] = tx.ProjectName.String
	}
	writeJSON(w, http.StatusOK, resp)
}

type balanceRequest struct {
	UserID int64 `json:"user_id"`
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	var req balanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	balance, err := s.store.GetUserBalance(req.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":             true,
		"user_id":             balance.UserID,
		"points":              balance.Points,
		"carbon_balance":      balance.CarbonBalance,
		"carbon_earned":       balance.CarbonEarned,
		"carbon_kg":           balance.CarbonEarned * 1000,
		"estimated_value_kes": balance.EstimatedValueKES,
		"badges":              balance.Badges,
	})
}
