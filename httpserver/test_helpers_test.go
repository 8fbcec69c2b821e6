package httpserver_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"movieinfo/errs"
	"movieinfo/pkg/config"

	"github.com/stretchr/testify/require"
)

type apiResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Result  json.RawMessage   `json:"result"`
	Info    string            `json:"info"`
	Fields  []errs.FieldError `json:"fields"`
}

// testConfig leaves rate limiting off so tests can fire requests freely.
func testConfig() *config.Config {
	return &config.Config{}
}

func decodeAPIResponse(t *testing.T, rec *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), "body: %s", rec.Body.String())
	return resp
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), "body: %s", rec.Body.String())
}

func fieldNames(fields []errs.FieldError) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Field)
	}
	return names
}
