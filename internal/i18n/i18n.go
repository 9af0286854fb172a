// Package i18n renders user-facing messages in English or Vietnamese.
package i18n

import (
	"errors"
	"net/http"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/osse101/LuckyWheel_Go/internal/domain"
)

// Supported languages, default first
var (
	English    = language.English
	Vietnamese = language.Vietnamese

	supported = []language.Tag{English, Vietnamese}
	matcher   = language.NewMatcher(supported)
)

// Translator looks up messages by key for a language.
type Translator struct {
	cat  *catalog.Builder
	keys map[string]bool
}

// New builds a translator from the bundled messages.
func New() *Translator {
	b := catalog.NewBuilder(catalog.Fallback(English))
	keys := make(map[string]bool, len(messages))
	for key, m := range messages {
		keys[key] = true
		_ = b.SetString(English, key, m.en)
		_ = b.SetString(Vietnamese, key, m.vi)
	}
	return &Translator{cat: b, keys: keys}
}

// Supported returns the supported language tags, default first.
func Supported() []language.Tag {
	return append([]language.Tag(nil), supported...)
}

// Match picks the best supported language for a raw tag list such as an
// Accept-Language header or a "vi"/"en" flag value.
func Match(accept string) language.Tag {
	accept = strings.TrimSpace(accept)
	if accept == "" {
		return English
	}
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return English
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return English
	}
	return supported[idx]
}

// FromRequest resolves the language from the lang query parameter, then
// Accept-Language.
func FromRequest(r *http.Request) language.Tag {
	if lang := r.URL.Query().Get(QueryParamLang); lang != "" {
		return Match(lang)
	}
	return Match(r.Header.Get(HeaderAcceptLanguage))
}

// Printer returns a printer bound to the bundled catalog.
func (t *Translator) Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(t.cat))
}

// Message formats the message for key. Unknown keys fall back to the
// internal-error message.
func (t *Translator) Message(tag language.Tag, key string, args ...interface{}) string {
	if !t.keys[key] {
		key = domain.ErrCodeInternal
	}
	return t.Printer(tag).Sprintf(key, args...)
}

// Error returns the localized message for err.
func (t *Translator) Error(tag language.Tag, err error) string {
	if errors.Is(err, domain.ErrNetworkFailure) {
		return t.Message(tag, KeyNetworkFailure)
	}
	return t.Message(tag, domain.ErrorCode(err))
}
