package i18n

import "strings"

// Translator retrieves localized messages for Issue codes.
// data provides optional values to embed in the message (for example,
// "expected" or "param"); placeholders are written as {name}.
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"type_mismatch":     "was expecting {expected} but received {received}.",
		"unknown_parameter": `"{param}" is not defined in queryParams Schema. Defined query params are: {valid}.`,
		"missing_default":   "Missing default value",
		"validation":        "invalid value",
		"config":            "invalid schema configuration",
		"unknown_strategy":  "unknown merge strategy {strategy}",
		"not_one_of":        "Invalid value '{value}'. Accepted values are: {accepted}.",
		"out_of_range":      "Invalid value '{value}'. Expected a value between {min} and {max}.",
		"empty":             "must not be empty",
		"too_many_items":    "has {count} items, at most {max} allowed",
		"pattern":           "Invalid value '{value}'. Expected to match {pattern}.",
	},
	"ja": {
		"type_mismatch":     "{expected} を期待しましたが {received} を受け取りました。",
		"unknown_parameter": `"{param}" はクエリパラメータのスキーマに定義されていません。定義済み: {valid}。`,
		"missing_default":   "デフォルト値がありません",
		"validation":        "値が不正です",
		"config":            "スキーマ設定が不正です",
		"unknown_strategy":  "未知のマージ戦略です: {strategy}",
		"not_one_of":        "値 '{value}' は不正です。許可される値: {accepted}。",
		"out_of_range":      "値 '{value}' は {min} から {max} の範囲外です。",
		"empty":             "空にできません",
		"too_many_items":    "{count} 個の要素があります (最大 {max})",
		"pattern":           "値 '{value}' は {pattern} に一致しません。",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	tmpl, ok := dictionaries[t.lang][code]
	if !ok {
		return code
	}
	return render(tmpl, data)
}

func render(tmpl string, data map[string]string) string {
	if len(data) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
