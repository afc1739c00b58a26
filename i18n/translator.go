// Package i18n provides localized titles for jsnore issue codes.
package i18n

import "sync"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "key" for duplicate keys).
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dict = map[string]map[string]string{
	"en": {
		"parse_error":        "parse error",
		"duplicate_key":      "duplicate key",
		"truncated":          "input truncated",
		"invalid_mask":       "invalid mask",
		"invalid_option":     "invalid option",
		"unsupported_format": "unsupported input format",
	},
	"ja": {
		"parse_error":        "解析エラー",
		"duplicate_key":      "キーが重複しています",
		"truncated":          "入力が打ち切られました",
		"invalid_mask":       "マスクが不正です",
		"invalid_option":     "オプションが不正です",
		"unsupported_format": "未対応の入力形式です",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dict[t.lang][code]
	if !ok {
		return code
	}
	if k := data["key"]; k != "" {
		msg += " (" + k + ")"
	}
	return msg
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). nil restores the English dictionary.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
