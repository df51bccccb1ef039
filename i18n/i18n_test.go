package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNegotiate(t *testing.T) {
	tr, err := NewTranslator("en")
	require.NoError(t, err)

	t.Run("should prefer the explicit choice", func(t *testing.T) {
		assert.Equal(t, "ta", tr.Negotiate("ta", "hi-IN,hi;q=0.9"))
	})

	t.Run("should read the accept-language header", func(t *testing.T) {
		assert.Equal(t, "hi", tr.Negotiate("", "hi-IN,hi;q=0.9,en;q=0.8"))
		assert.Equal(t, "bn", tr.Negotiate("", "bn-BD"))
	})

	t.Run("should fall back to english", func(t *testing.T) {
		assert.Equal(t, "en", tr.Negotiate("", ""))
		assert.Equal(t, "en", tr.Negotiate("fr", "de-DE"))
		assert.Equal(t, "en", tr.Negotiate("not a tag!", "%%%"))
	})

	t.Run("should honor another default", func(t *testing.T) {
		hi, err := NewTranslator("hi")
		require.NoError(t, err)
		assert.Equal(t, "hi", hi.Negotiate("", ""))
	})

	t.Run("should reject an unsupported default", func(t *testing.T) {
		_, err := NewTranslator("fr")
		assert.Error(t, err)
	})
}

func TestT(t *testing.T) {
	tr, err := NewTranslator("en")
	require.NoError(t, err)

	assert.Equal(t, "कुल उत्पाद", tr.T("hi", KeyTotalProducts))
	assert.Equal(t, "Trust Score", tr.T("ta", KeyTrustScore))
	assert.Equal(t, "Invalid Role", tr.T("xx", KeyInvalidRoleTitle))
	assert.Equal(t, "dashboard.unknown", tr.T("en", "dashboard.unknown"))
}

func TestLanguages(t *testing.T) {
	langs := Languages()
	require.Len(t, langs, 8)
	assert.Equal(t, "en", langs[0].Code)

	for _, lang := range langs {
		assert.Contains(t, messages, lang.Code)
		assert.NotEmpty(t, lang.NativeName)
	}

	langs[0].Code = "changed"
	assert.Equal(t, "en", Languages()[0].Code)
}
