package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Language is one selectable display language
type Language struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"nativeName"`
}

// Fallback is used when nothing better matches
const Fallback = "en"

var supported = []Language{
	{Code: "en", Name: "English", NativeName: "English"},
	{Code: "hi", Name: "Hindi", NativeName: "हिन्दी"},
	{Code: "bn", Name: "Bengali", NativeName: "বাংলা"},
	{Code: "mr", Name: "Marathi", NativeName: "मराठी"},
	{Code: "te", Name: "Telugu", NativeName: "తెలుగు"},
	{Code: "ta", Name: "Tamil", NativeName: "தமிழ்"},
	{Code: "gu", Name: "Gujarati", NativeName: "ગુજરાતી"},
	{Code: "ur", Name: "Urdu", NativeName: "اردو"},
}

// Languages lists the supported languages, English first
func Languages() []Language {
	return append([]Language(nil), supported...)
}

// Translator negotiates a language and looks up dashboard strings
type Translator struct {
	defaultCode string
	codes       []string
	matcher     language.Matcher
}

// NewTranslator builds a translator whose default is defaultCode
func NewTranslator(defaultCode string) (*Translator, error) {
	if defaultCode == "" {
		defaultCode = Fallback
	}
	if !isSupported(defaultCode) {
		return nil, fmt.Errorf("unsupported default language %q", defaultCode)
	}

	// the matcher falls back to its first tag
	codes := []string{defaultCode}
	for _, lang := range supported {
		if lang.Code != defaultCode {
			codes = append(codes, lang.Code)
		}
	}
	tags := make([]language.Tag, len(codes))
	for i, code := range codes {
		tags[i] = language.MustParse(code)
	}

	return &Translator{
		defaultCode: defaultCode,
		codes:       codes,
		matcher:     language.NewMatcher(tags),
	}, nil
}

func isSupported(code string) bool {
	for _, lang := range supported {
		if lang.Code == code {
			return true
		}
	}
	return false
}

// Negotiate picks a language from an explicit choice, then an Accept-Language header
func (t *Translator) Negotiate(explicit, acceptLanguage string) string {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		if tag, err := language.Parse(explicit); err == nil {
			if code, ok := t.match(tag); ok {
				return code
			}
		}
	}

	if acceptLanguage != "" {
		tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
		if err == nil && len(tags) > 0 {
			if code, ok := t.match(tags...); ok {
				return code
			}
		}
	}

	return t.defaultCode
}

func (t *Translator) match(tags ...language.Tag) (string, bool) {
	_, index, confidence := t.matcher.Match(tags...)
	if confidence == language.No {
		return "", false
	}
	return t.codes[index], true
}

// T returns the string for key in lang, then in English, then the key itself
func (t *Translator) T(lang, key string) string {
	if table, ok := messages[lang]; ok {
		if s, ok := table[key]; ok {
			return s
		}
	}
	if s, ok := messages[Fallback][key]; ok {
		return s
	}
	return key
}
