package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/claimcheck/internal/model"
)

// HistoryServiceInterface は履歴ハンドラーが必要とするサービスインターフェース。
type HistoryServiceInterface interface {
	// Save は履歴エントリを検証して保存し、採番されたIDを返す。
	Save(ctx context.Context, entry model.HistoryEntry) (int64, error)
	// List は全履歴エントリを新しい順で返す。
	List(ctx context.Context) ([]*model.HistoryEntry, error)
	// Delete は指定IDの履歴エントリを削除する。
	Delete(ctx context.Context, id int64) error
	// Clear は全履歴エントリを削除する。
	Clear(ctx context.Context) error
}

// HistoryHandler は検証履歴のHTTPハンドラー。
type HistoryHandler struct {
	service HistoryServiceInterface
}

// NewHistoryHandler はHistoryHandlerを生成する。
func NewHistoryHandler(service HistoryServiceInterface) *HistoryHandler {
	return &HistoryHandler{service: service}
}

// historySaveRequest は履歴保存リクエストのボディ。
type historySaveRequest struct {
	Claim     string `json:"claim"`
	Publisher string `json:"publisher"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Rating    string `json:"rating"`
	Summary   string `json:"summary"`
}

// historyEntryResponse は履歴エントリのレスポンス。
// created_atはUnix秒で返す。
type historyEntryResponse struct {
	ID        int64  `json:"id"`
	Claim     string `json:"claim"`
	Publisher string `json:"publisher"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Rating    string `json:"rating"`
	Summary   string `json:"summary"`
	CreatedAt int64  `json:"created_at"`
}

// historyStatusResponse は保存・削除操作の結果レスポンス。
type historyStatusResponse struct {
	Status string `json:"status"`
	ID     int64  `json:"id,omitempty"`
}

// Save は検証結果を履歴に保存する。
// POST /history
func (h *HistoryHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req historySaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError())
		return
	}

	id, err := h.service.Save(r.Context(), model.HistoryEntry{
		Claim:     req.Claim,
		Publisher: req.Publisher,
		Title:     req.Title,
		URL:       req.URL,
		Rating:    req.Rating,
		Summary:   req.Summary,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, historyStatusResponse{
		Status: "saved",
		ID:     id,
	})
}

// List は全履歴エントリを新しい順で返す。
// GET /history
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]historyEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, historyEntryResponse{
			ID:        entry.ID,
			Claim:     entry.Claim,
			Publisher: entry.Publisher,
			Title:     entry.Title,
			URL:       entry.URL,
			Rating:    entry.Rating,
			Summary:   entry.Summary,
			CreatedAt: entry.CreatedAt.Unix(),
		})
	}

	writeJSONResponse(w, http.StatusOK, responses)
}

// Delete は指定IDの履歴エントリを削除する。
// DELETE /history/:id
func (h *HistoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidIDError(raw))
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, historyStatusResponse{
		Status: "deleted",
		ID:     id,
	})
}

// Clear は全履歴エントリを削除する。
// DELETE /history
func (h *HistoryHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Clear(r.Context()); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, historyStatusResponse{
		Status: "cleared",
	})
}
