package helpers_test

import (
	"bytes"
	"testing"

	"github.com/boxoffice/boxoffice/internal/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndVerifyTicketQR(t *testing.T) {
	const code = "ev-zone-1700000000000-abc"

	payload := helpers.SignTicketCode(code, "secret")
	assert.Contains(t, payload, "ticket:"+code+";signature:")

	got, err := helpers.VerifyTicketQR(payload, "secret")
	require.NoError(t, err)
	assert.Equal(t, code, got)
}

func TestVerifyTicketQR_Rejects(t *testing.T) {
	valid := helpers.SignTicketCode("code-1", "secret")

	testCases := map[string]struct {
		payload string
		secret  string
	}{
		"wrong secret":      {payload: valid, secret: "other"},
		"tampered code":     {payload: "ticket:code-2" + valid[len("ticket:code-1"):], secret: "secret"},
		"missing signature": {payload: "ticket:code-1", secret: "secret"},
		"garbage":           {payload: "hello;world", secret: "secret"},
		"empty code":        {payload: helpers.SignTicketCode("", "secret"), secret: "secret"},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := helpers.VerifyTicketQR(tc.payload, tc.secret)
			assert.Error(t, err)
		})
	}
}

func TestRenderTicketQR(t *testing.T) {
	png, err := helpers.RenderTicketQR("code-1", "secret")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")))
}
