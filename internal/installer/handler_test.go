package installer

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postInstall(t *testing.T, handler *Handler, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/install", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.Install(rec, req)
	return rec
}

func TestInstallAlreadyInstalled(t *testing.T) {
	handler := NewHandler(New(&fakeStore{exists: true}))

	rec := postInstall(t, handler, url.Values{
		"db_host": {"127.0.0.1"},
		"db_name": {"prizepacket"},
		"db_user": {"app"},
		"app_url": {"https://example.com"},
	})

	assert.Equal(t, http.StatusConflict, rec.Code)

	var body installError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "already installed")
}

func TestInstallValidationEchoesForm(t *testing.T) {
	handler := NewHandler(New(&fakeStore{}))

	rec := postInstall(t, handler, url.Values{
		"db_host": {"localhost"},
		"db_user": {"app"},
		"db_pass": {"topsecret"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body installError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "db_name")
	assert.Contains(t, body.Error, "app_url")

	// submitted values come back for re-prompting, the password never does
	assert.Equal(t, "localhost", body.Form.DBHost)
	assert.Equal(t, "app", body.Form.DBUser)
	assert.NotContains(t, rec.Body.String(), "topsecret")
}
