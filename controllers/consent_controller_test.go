package controllers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"ringback/backend/consent"
)

func optInRouter(sink consent.Sink) *gin.Engine {
	r := gin.New()
	r.POST("/sms-opt-in", SMSOptIn(sink))
	return r
}

func TestSMSOptIn(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		want   string
		phone  *string
	}{
		{name: "consent with phone", body: `{"consent":true,"phoneNumber":" 512-555-0100 "}`, status: http.StatusOK, want: `{"ok":true,"message":"Opt-in received."}`, phone: strPtr("512-555-0100")},
		{name: "consent only", body: `{"consent":true}`, status: http.StatusOK, want: `{"ok":true,"message":"Opt-in received."}`},
		{name: "numeric phone ignored", body: `{"consent":true,"phoneNumber":5125550100}`, status: http.StatusOK, want: `{"ok":true,"message":"Opt-in received."}`},
		{name: "consent false", body: `{"consent":false}`, status: http.StatusBadRequest, want: `{"ok":false,"error":"Consent is required"}`},
		{name: "consent string", body: `{"consent":"yes"}`, status: http.StatusBadRequest, want: `{"ok":false,"error":"Consent is required"}`},
		{name: "consent missing", body: `{}`, status: http.StatusBadRequest, want: `{"ok":false,"error":"Consent is required"}`},
		{name: "array body", body: `[true]`, status: http.StatusBadRequest, want: `{"ok":false,"error":"Invalid request"}`},
		{name: "broken json", body: `{"consent":`, status: http.StatusBadRequest, want: `{"ok":false,"error":"Invalid request"}`},
		{name: "null body", body: `null`, status: http.StatusBadRequest, want: `{"ok":false,"error":"Invalid request"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &fakeSink{}
			w := send(optInRouter(sink), http.MethodPost, "/sms-opt-in", "", tt.body)
			require.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, tt.want, w.Body.String())

			if tt.status != http.StatusOK {
				assert.Empty(t, sink.got)
				return
			}
			require.Len(t, sink.got, 1)
			assert.Equal(t, tt.phone, sink.got[0].PhoneNumber)
			assert.NotEmpty(t, sink.got[0].SourceIP)
			assert.False(t, sink.got[0].ReceivedAt.IsZero())
		})
	}
}

func TestSMSOptIn_NoSink(t *testing.T) {
	w := send(optInRouter(nil), http.MethodPost, "/sms-opt-in", "", `{"consent":true}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSMSOptIn_SinkFailure(t *testing.T) {
	w := send(optInRouter(&fakeSink{err: errDB}), http.MethodPost, "/sms-opt-in", "", `{"consent":true}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"ok":false,"error":"Could not record opt-in"}`, w.Body.String())
}

func TestSMSOptIn_OversizedBody(t *testing.T) {
	sink := &fakeSink{}
	body := `{"consent":true,"phoneNumber":"` + strings.Repeat("5", maxOptInBody) + `"}`
	w := send(optInRouter(sink), http.MethodPost, "/sms-opt-in", "", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"ok":false,"error":"Invalid request"}`, w.Body.String())
	assert.Empty(t, sink.got)

	body = `{"consent":true,"phoneNumber":"` + strings.Repeat("5", maxOptInBody-64) + `"}`
	assert.Equal(t, http.StatusOK, send(optInRouter(sink), http.MethodPost, "/sms-opt-in", "", body).Code)
}

func strPtr(s string) *string { return &s }
