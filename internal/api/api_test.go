package api_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/taxid/internal/api"
	"github.com/dmitrymomot/taxid/internal/locales"
	"github.com/dmitrymomot/taxid/pkg/requestid"
)

type envelope struct {
	Data  map[string]any `json:"data"`
	Error *struct {
		Code    string              `json:"code"`
		Message string              `json:"message"`
		Details map[string][]string `json:"details"`
	} `json:"error"`
}

func newHandler(t *testing.T, opts ...api.Option) *api.Handler {
	t.Helper()
	return api.New(locales.MustNew(), append([]api.Option{api.WithRegistry(prometheus.NewRegistry())}, opts...)...)
}

func do(t *testing.T, h http.Handler, method, target, body string, headers ...string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func TestGetINN(t *testing.T) {
	t.Parallel()
	handler := newHandler(t)
	h := handler.Routes()

	t.Run("valid organization", func(t *testing.T) {
		rec, env := do(t, h, http.MethodGet, "/v1/inn/7707083893", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, env.Data["isValid"])
		assert.Nil(t, env.Data["errorCode"])
		assert.Equal(t, "", env.Data["message"])

		details := env.Data["details"].(map[string]any)
		assert.Equal(t, "organization", details["type"])
		assert.Equal(t, float64(77), details["regionCode"])
		assert.Equal(t, float64(10), details["length"])
		assert.NotEmpty(t, rec.Header().Get(requestid.Header))
		assert.Equal(t, "en", rec.Header().Get("Content-Language"))
	})

	t.Run("invalid checksum is still 200", func(t *testing.T) {
		rec, env := do(t, h, http.MethodGet, "/v1/inn/7707083894", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, false, env.Data["isValid"])
		assert.Equal(t, float64(4), env.Data["errorCode"])
		assert.Equal(t, "Invalid control digit", env.Data["errorMessage"])
		assert.Equal(t, "Invalid INN control digit. Please check the number", env.Data["message"])
	})

	t.Run("russian message", func(t *testing.T) {
		rec, env := do(t, h, http.MethodGet, "/v1/inn/12AB", "", "Accept-Language", "ru-RU,ru;q=0.9")
		assert.Equal(t, float64(2), env.Data["errorCode"])
		assert.Equal(t, `Поле "ИНН" должно содержать только цифры`, env.Data["message"])
		assert.Equal(t, "ru", rec.Header().Get("Content-Language"))
	})

	t.Run("lang query", func(t *testing.T) {
		_, env := do(t, h, http.MethodGet, "/v1/inn/7707083894?lang=ru", "")
		assert.Equal(t, "Неверное контрольное число ИНН. Проверьте правильность ввода", env.Data["message"])
	})

	t.Run("custom field name", func(t *testing.T) {
		_, env := do(t, h, http.MethodGet, "/v1/inn/12AB?field=Company%20INN", "")
		assert.Equal(t, `Field "Company INN" must contain only digits`, env.Data["message"])
	})

	t.Run("structure switch", func(t *testing.T) {
		_, env := do(t, h, http.MethodGet, "/v1/inn/0000000000", "")
		assert.Equal(t, float64(5), env.Data["errorCode"])

		_, env = do(t, h, http.MethodGet, "/v1/inn/0000000000?legacy=true", "")
		assert.Equal(t, true, env.Data["isValid"])

		_, env = do(t, h, http.MethodGet, "/v1/inn/0000000000?structure=false", "")
		assert.Equal(t, true, env.Data["isValid"])
	})

	t.Run("foreign switch", func(t *testing.T) {
		_, env := do(t, h, http.MethodGet, "/v1/inn/9912345678?foreign=false", "")
		assert.Equal(t, float64(7), env.Data["errorCode"])
	})

	t.Run("bad query", func(t *testing.T) {
		for _, q := range []string{"legacy=maybe", "structure=2", "foreign=nope"} {
			rec, env := do(t, h, http.MethodGet, "/v1/inn/7707083893?"+q, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code, q)
			assert.Equal(t, api.CodeInvalidQuery, env.Error.Code, q)
		}
	})

	m := handler.Metrics()
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Validations.WithLabelValues(api.KindINN, "valid")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(m.Validations.WithLabelValues(api.KindINN, "invalid")), 5.0)
}

func TestValidateINN(t *testing.T) {
	t.Parallel()
	h := newHandler(t).Routes()

	tests := []struct {
		name    string
		body    string
		valid   bool
		code    any
		message string
	}{
		{"string", `{"inn": "500100732259"}`, true, nil, ""},
		{"number keeps digits", `{"inn": 500100732259}`, true, nil, ""},
		{"empty", `{"inn": ""}`, false, float64(1), `Field "INN" is required`},
		{"null", `{"inn": null, "fieldName": "Tax ID"}`, false, float64(1), `Field "Tax ID" is required`},
		{"length", `{"inn": "123"}`, false, float64(3), "INN must contain 10 digits (for organizations) or 12 digits (for individuals)"},
		{"legacy", `{"inn": "0000000000", "legacy": true}`, true, nil, ""},
		{"options", `{"inn": "9912345678", "options": {"allowForeignOrgs": false}}`, false, float64(7), "Invalid foreign organization INN format"},
		{"strict mode accepted", `{"inn": "7707083893", "options": {"strictMode": true}}`, true, nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := do(t, h, http.MethodPost, "/v1/inn/validate", tt.body)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, tt.valid, env.Data["isValid"])
			assert.Equal(t, tt.code, env.Data["errorCode"])
			assert.Equal(t, tt.message, env.Data["message"])
		})
	}
}

func TestBinding(t *testing.T) {
	t.Parallel()
	h := newHandler(t).Routes()

	t.Run("missing content type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/inn/validate", strings.NewReader(`{"inn":"7707083893"}`))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})

	t.Run("wrong content type", func(t *testing.T) {
		rec, env := do(t, h, http.MethodPost, "/v1/inn/validate", "", "Content-Type", "text/plain")
		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
		assert.Equal(t, api.CodeUnsupportedMediaType, env.Error.Code)
	})

	t.Run("content type with charset", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/inn/validate", strings.NewReader(`{"inn":"7707083893"}`))
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	for name, body := range map[string]string{
		"malformed":     `{"inn":`,
		"unknown field": `{"inn":"7707083893","extra":1}`,
		"trailing data": `{"inn":"7707083893"} {}`,
		"wrong type":    `{"inn":"7707083893","legacy":"yes"}`,
	} {
		t.Run(name, func(t *testing.T) {
			rec, env := do(t, h, http.MethodPost, "/v1/inn/validate", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, api.CodeInvalidJSON, env.Error.Code)
		})
	}

	t.Run("empty body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/kpp/validate", http.NoBody)
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("too large", func(t *testing.T) {
		body := `{"inn":"` + strings.Repeat("7", 2<<20) + `"}`
		rec, env := do(t, h, http.MethodPost, "/v1/inn/validate", body)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.Equal(t, api.CodeBodyTooLarge, env.Error.Code)
	})
}

func TestBatch(t *testing.T) {
	t.Parallel()
	handler := newHandler(t, api.WithBatchLimit(3))
	h := handler.Routes()

	rec, env := do(t, h, http.MethodPost, "/v1/inn/batch", `{"items": ["7707083893", 500100732259, "7707083894"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(3), env.Data["total"])
	assert.Equal(t, float64(2), env.Data["valid"])
	assert.Equal(t, float64(1), env.Data["invalid"])

	results := env.Data["results"].([]any)
	require.Len(t, results, 3)
	second := results[1].(map[string]any)
	assert.Equal(t, "500100732259", second["inn"])
	assert.Equal(t, true, second["isValid"])
	third := results[2].(map[string]any)
	assert.Equal(t, float64(4), third["errorCode"])

	rec, env = do(t, h, http.MethodPost, "/v1/inn/batch", `{"items": []}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, api.CodeInvalidBatch, env.Error.Code)

	rec, env = do(t, h, http.MethodPost, "/v1/inn/batch", `{"items": ["1","2","3","4"]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Error.Message, "at most 3")

	assert.Equal(t, 2.0, testutil.ToFloat64(handler.Metrics().Validations.WithLabelValues(api.KindINN, "valid")))
}

func TestValidateKPP(t *testing.T) {
	t.Parallel()
	h := newHandler(t).Routes()

	tests := []struct {
		body    string
		lang    string
		valid   bool
		reason  string
		message string
	}{
		{`{"kpp": "770701001"}`, "en", true, "ok", ""},
		{`{"kpp": "7707AB001"}`, "en", true, "ok", ""},
		{`{"kpp": null}`, "en", false, "empty", "KPP cannot be empty"},
		{`{"kpp": "123"}`, "ru", false, "invalid_length", "КПП должен содержать 9 знаков"},
		{`{"kpp": "7707ab001"}`, "en", false, "invalid_format", "Invalid KPP format"},
		{`{"kpp": "770700001"}`, "ru", false, "invalid_cause_code", "Неверный код причины постановки на учет"},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			rec, env := do(t, h, http.MethodPost, "/v1/kpp/validate", tt.body, "Accept-Language", tt.lang)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.valid, env.Data["isValid"])
			assert.Equal(t, tt.reason, env.Data["reason"])
			assert.Equal(t, tt.message, env.Data["message"])
		})
	}
}

func TestValidateINNWithKPP(t *testing.T) {
	t.Parallel()
	h := newHandler(t).Routes()

	_, env := do(t, h, http.MethodPost, "/v1/inn-kpp/validate", `{"inn": "7707083893", "kpp": "770701001"}`)
	assert.Equal(t, true, env.Data["isValid"])

	_, env = do(t, h, http.MethodPost, "/v1/inn-kpp/validate", `{"inn": "7707083893"}`)
	assert.Equal(t, true, env.Data["isValid"])

	_, env = do(t, h, http.MethodPost, "/v1/inn-kpp/validate", `{"inn": "7707083893", "kpp": "12"}`, "Accept-Language", "ru")
	assert.Equal(t, false, env.Data["isValid"])
	assert.Equal(t, float64(8), env.Data["errorCode"])
	assert.Equal(t, "KPP must contain 9 characters", env.Data["errorMessage"])
	assert.Equal(t, "КПП должен содержать 9 знаков", env.Data["message"])
	assert.Equal(t, true, env.Data["details"].(map[string]any)["kppError"])

	_, env = do(t, h, http.MethodPost, "/v1/inn-kpp/validate", `{"inn": "7707083894", "kpp": "12"}`)
	assert.Equal(t, float64(4), env.Data["errorCode"])
	assert.Equal(t, "Invalid INN control digit. Please check the number", env.Data["message"])
}

func TestValidateRequisites(t *testing.T) {
	t.Parallel()
	h := newHandler(t).Routes()

	t.Run("valid", func(t *testing.T) {
		rec, env := do(t, h, http.MethodPost, "/v1/requisites/validate",
			`{"inn": "7707083893", "kpp": "770701001", "type": "organization"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, env.Data["isValid"])
		assert.Equal(t, "organization", env.Data["type"])
	})

	t.Run("per-field translated errors", func(t *testing.T) {
		rec, env := do(t, h, http.MethodPost, "/v1/requisites/validate",
			`{"inn": "", "kpp": "123"}`, "Accept-Language", "ru")
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, api.CodeValidation, env.Error.Code)
		assert.Equal(t, map[string][]string{
			"inn": {`Поле "ИНН" обязательно для заполнения`},
			"kpp": {"КПП должен содержать 9 знаков"},
		}, env.Error.Details)
	})

	t.Run("wrong entity type", func(t *testing.T) {
		rec, env := do(t, h, http.MethodPost, "/v1/requisites/validate",
			`{"inn": "500100732259", "type": "organization"}`)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, []string{`Field "INN" must hold the INN of an organization`}, env.Error.Details["inn"])
	})

	t.Run("unknown entity type", func(t *testing.T) {
		rec, env := do(t, h, http.MethodPost, "/v1/requisites/validate",
			`{"inn": "500100732259", "type": "partnership"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, api.CodeInvalidEntityType, env.Error.Code)
	})
}

func TestOperationalEndpoints(t *testing.T) {
	t.Parallel()
	handler := newHandler(t)
	h := handler.Routes()

	rec, _ := do(t, h, http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, h, http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	do(t, h, http.MethodGet, "/v1/inn/7707083893", "")
	rec, _ = do(t, h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `taxid_validations_total{kind="inn",result="valid"} 1`)
	assert.Contains(t, rec.Body.String(), "taxid_validation_duration_seconds")

	rec, env := do(t, h, http.MethodGet, "/v1/unknown", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, api.CodeNotFound, env.Error.Code)

	rec, env = do(t, h, http.MethodDelete, "/v1/inn/validate", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, api.CodeMethodNotAllowed, env.Error.Code)
}

func TestMetrics_NilSafe(t *testing.T) {
	t.Parallel()

	var m *api.Metrics
	assert.NotPanics(t, func() {
		m.ObserveResult(api.KindINN, true)
	})

	reg := prometheus.NewRegistry()
	m = api.NewMetrics(reg)
	for i := range 3 {
		m.ObserveResult(api.KindKPP, i%2 == 0)
	}
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Validations.WithLabelValues(api.KindKPP, "valid")))
	assert.Panics(t, func() { api.NewMetrics(reg) }, "duplicate registration")
}
