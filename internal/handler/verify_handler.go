package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/hitoshi/claimcheck/internal/model"
)

// VerifyServiceInterface は検証ハンドラーが必要とするサービスインターフェース。
type VerifyServiceInterface interface {
	// Aggregate は全ソースから検証結果を収集して返す。
	// 個々のソースの失敗は吸収されるため、エラーは返らない。
	Aggregate(ctx context.Context, query string) []model.FactCheckRecord
}

// VerifyHandler は主張検証のHTTPハンドラー。
type VerifyHandler struct {
	service VerifyServiceInterface
}

// NewVerifyHandler はVerifyHandlerを生成する。
func NewVerifyHandler(service VerifyServiceInterface) *VerifyHandler {
	return &VerifyHandler{service: service}
}

// verifyRequest は検証リクエストのボディ。
type verifyRequest struct {
	Query string `json:"query"`
}

// verifyResponse は検証レスポンス。
type verifyResponse struct {
	Claim   string                  `json:"claim"`
	Sources []model.FactCheckRecord `json:"sources"`
}

// Verify は主張を全ソースで検証する。
// POST /verify
func (h *VerifyHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError())
		return
	}

	// アダプタを起動する前に検証する
	query := strings.TrimSpace(req.Query)
	if query == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewMissingQueryError())
		return
	}

	sources := h.service.Aggregate(r.Context(), query)

	writeJSONResponse(w, http.StatusOK, verifyResponse{
		Claim:   query,
		Sources: sources,
	})
}
