package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/hitoshi/claimcheck/internal/model"
)

// AnalyzeServiceInterface は分析ハンドラーが必要とするサービスインターフェース。
type AnalyzeServiceInterface interface {
	// Summarize は検証結果ごとにAI要約を生成する。
	// 個々のレコードの失敗はプレースホルダ要約として吸収される。
	Summarize(ctx context.Context, claim string, sources []model.FactCheckRecord) []model.SummaryRecord
}

// AnalyzeHandler は検証結果分析のHTTPハンドラー。
type AnalyzeHandler struct {
	service AnalyzeServiceInterface
}

// NewAnalyzeHandler はAnalyzeHandlerを生成する。
func NewAnalyzeHandler(service AnalyzeServiceInterface) *AnalyzeHandler {
	return &AnalyzeHandler{service: service}
}

// analyzeRequest は分析リクエストのボディ。
type analyzeRequest struct {
	Claim   string                  `json:"claim"`
	Sources []model.FactCheckRecord `json:"sources"`
}

// analyzeResponse は分析レスポンス。
type analyzeResponse struct {
	Claim     string                `json:"claim"`
	Summaries []model.SummaryRecord `json:"summaries"`
}

// Analyze は検証結果のバッチにAI要約を付加する。
// POST /analyze
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError())
		return
	}

	// バックエンドに触る前に検証する
	claim := strings.TrimSpace(req.Claim)
	if claim == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewMissingClaimError())
		return
	}
	if len(req.Sources) == 0 {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewMissingSourcesError())
		return
	}

	summaries := h.service.Summarize(r.Context(), claim, req.Sources)

	writeJSONResponse(w, http.StatusOK, analyzeResponse{
		Claim:     claim,
		Summaries: summaries,
	})
}
