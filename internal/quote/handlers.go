package quote

import (
	"encoding/json"
	"errors"
	"net/http"

	validator "github.com/go-playground/validator/v10"

	"github.com/noah-isme/toko-promo/internal/common"
	"github.com/noah-isme/toko-promo/internal/security"
)

// Handler exposes the quote service over HTTP.
type Handler struct {
	service *Service
}

// HandlerConfig configures the Handler dependencies.
type HandlerConfig struct {
	Service *Service
}

// NewHandler constructs a Handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{service: cfg.Service}
}

// Evaluate handles POST /api/v1/carts/evaluate.
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "quote service not configured", nil)
		return
	}
	var req CartRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		if security.IsTooLarge(err) {
			common.JSONError(w, http.StatusRequestEntityTooLarge, security.CodePayloadTooLarge, "request body too large", nil)
			return
		}
		writeError(w, common.BadRequest("invalid JSON body", err))
		return
	}
	resp, err := h.service.Evaluate(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	common.Data(w, http.StatusOK, resp)
}

// Campaigns handles GET /api/v1/campaigns.
func (h *Handler) Campaigns(w http.ResponseWriter, _ *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "quote service not configured", nil)
		return
	}
	common.Data(w, http.StatusOK, CampaignsResponse{Campaigns: h.service.Campaigns()})
}

// writeError attaches decode and validation details before rendering.
func writeError(w http.ResponseWriter, err error) {
	appErr, ok := common.AsAppError(err)
	if !ok {
		common.WriteError(w, err)
		return
	}
	var syntaxErr *json.SyntaxError
	var fieldErrs validator.ValidationErrors
	switch {
	case errors.As(appErr.Err, &syntaxErr):
		appErr = appErr.WithDetails(map[string]any{"offset": syntaxErr.Offset})
	case errors.As(appErr.Err, &fieldErrs):
		fields := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields[fe.Namespace()] = fe.Tag()
		}
		appErr = appErr.WithDetails(map[string]any{"fields": fields})
	}
	common.WriteError(w, appErr)
}
