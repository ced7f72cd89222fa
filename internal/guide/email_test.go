package guide

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderEmail(t *testing.T) {
	e, err := RenderEmail(TemplateRedemptionRestore, "lumora.com", "Namecheap")
	require.NoError(t, err)
	assert.Equal(t, "Redemption restore request for lumora.com", e.Subject)
	assert.Contains(t, e.Body, "Hello Namecheap support")
	assert.Contains(t, e.Body, "lumora.com")

	e, err = RenderEmail(TemplateAccountRecovery, "lumora.com", "")
	require.NoError(t, err)
	assert.Contains(t, e.Body, "Hello Registrar support")
}

func TestRenderEmail_AllKeys(t *testing.T) {
	keys := TemplateKeys()
	assert.Len(t, keys, 8)
	for _, k := range keys {
		e, err := RenderEmail(k, "lumora.com", "GoDaddy")
		require.NoError(t, err, k)
		assert.Equal(t, k, e.Key)
		assert.Contains(t, e.Subject, "lumora.com")
		assert.NotContains(t, e.Body, "{{")
	}
}

func TestRenderEmail_UnknownKey(t *testing.T) {
	_, err := RenderEmail("nope", "lumora.com", "")
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}
