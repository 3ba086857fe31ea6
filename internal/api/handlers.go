package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/taxid/pkg/i18n"
	"github.com/dmitrymomot/taxid/pkg/logger"
	"github.com/dmitrymomot/taxid/pkg/taxid"
	"github.com/dmitrymomot/taxid/pkg/validator"
)

// OptionsPayload overrides individual validation options. Absent fields
// keep their defaults.
type OptionsPayload struct {
	ValidateStructure *bool `json:"validateStructure,omitempty"`
	AllowForeignOrgs  *bool `json:"allowForeignOrgs,omitempty"`
	StrictMode        *bool `json:"strictMode,omitempty"`
}

func (p *OptionsPayload) options(legacy bool) []taxid.Option {
	var opts []taxid.Option
	if p != nil {
		if p.ValidateStructure != nil {
			opts = append(opts, taxid.WithStructure(*p.ValidateStructure))
		}
		if p.AllowForeignOrgs != nil {
			opts = append(opts, taxid.WithForeignOrgs(*p.AllowForeignOrgs))
		}
		if p.StrictMode != nil {
			opts = append(opts, taxid.WithStrictMode(*p.StrictMode))
		}
	}
	if legacy {
		opts = append(opts, taxid.WithStructure(false))
	}
	return opts
}

type INNRequest struct {
	INN       any             `json:"inn"`
	FieldName string          `json:"fieldName,omitempty"`
	Legacy    bool            `json:"legacy,omitempty"`
	Options   *OptionsPayload `json:"options,omitempty"`
}

// INNResponse is a Result with a localized, field-aware message.
type INNResponse struct {
	taxid.Result
	Message string `json:"message"`
}

type BatchRequest struct {
	Items   []any           `json:"items"`
	Legacy  bool            `json:"legacy,omitempty"`
	Options *OptionsPayload `json:"options,omitempty"`
}

type BatchItem struct {
	INN string `json:"inn"`
	INNResponse
}

type BatchResponse struct {
	Results []BatchItem `json:"results"`
	Total   int         `json:"total"`
	Valid   int         `json:"valid"`
	Invalid int         `json:"invalid"`
}

type KPPRequest struct {
	KPP any `json:"kpp"`
}

type KPPResponse struct {
	taxid.KPPResult
	Message string `json:"message"`
}

type INNWithKPPRequest struct {
	INN any `json:"inn"`
	KPP any `json:"kpp,omitempty"`
}

// RequisitesRequest validates the identifiers of one counterparty.
// Type, when set, is "organization" or "individual".
type RequisitesRequest struct {
	INN  any              `json:"inn"`
	KPP  any              `json:"kpp,omitempty"`
	Type taxid.EntityType `json:"type,omitempty"`
}

type RequisitesResponse struct {
	IsValid bool             `json:"isValid"`
	Type    taxid.EntityType `json:"type"`
}

func (h *Handler) getINN(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var (
		legacy bool
		opts   OptionsPayload
	)
	for name, dst := range map[string]**bool{"structure": &opts.ValidateStructure, "foreign": &opts.AllowForeignOrgs} {
		if raw := q.Get(name); raw != "" {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, CodeInvalidQuery, fmt.Sprintf("query %q must be a boolean", name))
				return
			}
			*dst = &v
		}
	}
	if raw := q.Get("legacy"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, CodeInvalidQuery, `query "legacy" must be a boolean`)
			return
		}
		legacy = v
	}

	resp := h.checkINN(r.Context(), chi.URLParam(r, "inn"), q.Get("field"), opts.options(legacy))
	writeData(w, resp, nil)
}

func (h *Handler) validateINN(w http.ResponseWriter, r *http.Request) {
	var req INNRequest
	if err := bindJSON(w, r, &req); err != nil {
		writeBindError(w, err)
		return
	}
	writeData(w, h.checkINN(r.Context(), req.INN, req.FieldName, req.Options.options(req.Legacy)), nil)
}

func (h *Handler) validateBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := bindJSON(w, r, &req); err != nil {
		writeBindError(w, err)
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, CodeInvalidBatch, "items must not be empty")
		return
	}
	if len(req.Items) > h.batchLimit {
		writeError(w, http.StatusBadRequest, CodeInvalidBatch,
			fmt.Sprintf("at most %d items are allowed, got %d", h.batchLimit, len(req.Items)))
		return
	}

	opts := req.Options.options(req.Legacy)
	out := BatchResponse{Results: make([]BatchItem, len(req.Items)), Total: len(req.Items)}

	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, item := range req.Items {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out.Results[i] = BatchItem{INN: display(item), INNResponse: h.checkINN(ctx, item, "", opts)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		h.log.WarnContext(r.Context(), "batch validation aborted", logger.Error(err))
		return
	}

	for _, res := range out.Results {
		if res.IsValid {
			out.Valid++
		} else {
			out.Invalid++
		}
	}
	writeData(w, out, nil)
}

func (h *Handler) validateKPP(w http.ResponseWriter, r *http.Request) {
	var req KPPRequest
	if err := bindJSON(w, r, &req); err != nil {
		writeBindError(w, err)
		return
	}

	start := time.Now()
	res := taxid.ValidateKPP(req.KPP)
	h.metrics.ObserveDuration(KindKPP, start)
	h.metrics.ObserveResult(KindKPP, res.IsValid)

	resp := KPPResponse{KPPResult: res}
	if !res.IsValid {
		resp.Message = h.tr.Tc(r.Context(), res.Reason.TranslationKey())
	}
	writeData(w, resp, nil)
}

func (h *Handler) validateINNWithKPP(w http.ResponseWriter, r *http.Request) {
	var req INNWithKPPRequest
	if err := bindJSON(w, r, &req); err != nil {
		writeBindError(w, err)
		return
	}

	ctx := r.Context()
	start := time.Now()
	res := taxid.ValidateINNWithKPP(req.INN, req.KPP)
	h.metrics.ObserveDuration(KindINNWithKPP, start)
	h.metrics.ObserveResult(KindINNWithKPP, res.IsValid)

	resp := INNResponse{Result: res}
	switch {
	case res.IsValid:
	case res.Details.KPPError:
		resp.Message = h.tr.Tc(ctx, taxid.ValidateKPP(req.KPP).Reason.TranslationKey())
	default:
		resp.Message = h.uiMessage(ctx, res.ErrorCode, "")
	}
	writeData(w, resp, nil)
}

func (h *Handler) validateRequisites(w http.ResponseWriter, r *http.Request) {
	var req RequisitesRequest
	if err := bindJSON(w, r, &req); err != nil {
		if errors.Is(err, taxid.ErrInvalidEntityType) {
			writeError(w, http.StatusBadRequest, CodeInvalidEntityType, err.Error())
			return
		}
		writeBindError(w, err)
		return
	}

	ctx := r.Context()
	start := time.Now()
	rules := []validator.Rule{validator.ValidINN("inn", req.INN)}
	if req.Type != "" {
		rules = append(rules, validator.INNOfType("inn", req.INN, req.Type))
	}
	if req.KPP != nil && req.KPP != "" {
		rules = append(rules, validator.ValidKPP("kpp", req.KPP))
	}
	err := validator.ApplyFirst(rules...)
	h.metrics.ObserveDuration(KindRequisites, start)
	h.metrics.ObserveResult(KindRequisites, err == nil)

	verrs := validator.ExtractValidationErrors(err)
	if verrs == nil {
		writeData(w, RequisitesResponse{
			IsValid: true,
			Type:    taxid.ValidateINNLegacy(req.INN).Details.Type,
		}, nil)
		return
	}

	lang := i18n.GetLocale(ctx)
	details := verrs.Translate(func(key string, values map[string]any) string {
		vals := make(map[string]any, len(values))
		for k, v := range values {
			vals[k] = v
		}
		if field, ok := values["field"].(string); ok {
			vals["field"] = h.tr.T(lang, "taxid.field."+field)
		}
		return h.tr.Td(lang, key, "", i18n.Args(vals)...)
	})
	writeJSON(w, http.StatusUnprocessableEntity, Envelope{Error: &ErrorDetail{
		Code:    CodeValidation,
		Message: "requisites are invalid",
		Details: details,
	}})
}

func (h *Handler) checkINN(ctx context.Context, v any, field string, opts []taxid.Option) INNResponse {
	start := time.Now()
	res := taxid.ValidateINN(v, opts...)
	h.metrics.ObserveDuration(KindINN, start)
	h.metrics.ObserveResult(KindINN, res.IsValid)

	if !res.IsValid {
		h.log.DebugContext(ctx, "inn rejected",
			logger.Identifier("inn", display(v)),
			slog.String("code", res.ErrorCode.String()),
		)
		return INNResponse{Result: res, Message: h.uiMessage(ctx, res.ErrorCode, field)}
	}
	return INNResponse{Result: res}
}

// uiMessage renders the field-aware message in the request language.
func (h *Handler) uiMessage(ctx context.Context, code taxid.ErrorCode, field string) string {
	lang := i18n.GetLocale(ctx)
	if field == "" {
		field = h.tr.T(lang, "taxid.field.inn")
	}
	return h.tr.Td(lang, code.UITranslationKey(), taxid.UIMessage(code, field), "field", field)
}

func (h *Handler) translationsReady(context.Context) error {
	if len(h.tr.SupportedLanguages()) == 0 {
		return errors.New("no translations loaded")
	}
	return nil
}

func display(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
