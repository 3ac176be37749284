package whatsapp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffport/attendance-backend-go/internal/config"
	"github.com/staffport/attendance-backend-go/internal/domain/notification"
)

var testCfg = config.TwilioConfig{
	AccountSID:     "AC00000000000000000000000000000000",
	AuthToken:      "secret-token",
	WhatsAppNumber: "whatsapp:+14155238886",
}

func TestSend_PostsToMessagesEndpoint(t *testing.T) {
	var gotPath, gotFrom, gotTo, gotBody string
	var gotUser, gotPass string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, gotPass, _ = r.BasicAuth()
		require.NoError(t, r.ParseForm())
		gotFrom = r.PostFormValue("From")
		gotTo = r.PostFormValue("To")
		gotBody = r.PostFormValue("Body")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"sid":"SM123","status":"queued"}`))
	}))
	defer server.Close()

	client := NewWithBaseURL(testCfg, server.URL)
	err := client.Send(context.Background(), notification.Recipient{Name: "Alice", Address: "+15550001111"}, "", "hello")
	require.NoError(t, err)

	assert.Equal(t, "/Accounts/"+testCfg.AccountSID+"/Messages.json", gotPath)
	assert.Equal(t, testCfg.AccountSID, gotUser)
	assert.Equal(t, testCfg.AuthToken, gotPass)
	assert.Equal(t, testCfg.WhatsAppNumber, gotFrom)
	assert.Equal(t, "whatsapp:+15550001111", gotTo)
	assert.Equal(t, "hello", gotBody)
}

func TestSend_KeepsExistingWhatsAppPrefix(t *testing.T) {
	var gotTo string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotTo = r.PostFormValue("To")
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewWithBaseURL(testCfg, server.URL)
	err := client.Send(context.Background(), notification.Recipient{Address: "whatsapp:+15550001111"}, "", "hello")
	require.NoError(t, err)
	assert.Equal(t, "whatsapp:+15550001111", gotTo)
}

func TestSend_ParsesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":20003,"message":"Authentication Error"}`))
	}))
	defer server.Close()

	client := NewWithBaseURL(testCfg, server.URL)
	err := client.Send(context.Background(), notification.Recipient{Address: "+15550001111"}, "", "hello")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "20003")
	assert.Contains(t, err.Error(), "Authentication Error")
}

func TestSend_NotConfigured(t *testing.T) {
	client := New(config.TwilioConfig{})
	err := client.Send(context.Background(), notification.Recipient{Address: "+15550001111"}, "", "hello")
	assert.Error(t, err)
}
