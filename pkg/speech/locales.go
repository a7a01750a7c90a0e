package speech

import (
	"strings"
)

// baseLocaleMap expands short detected language codes into the full
// locale tags the recognition and synthesis providers consume. Entries
// from the locale_map config extend and override this table.
var baseLocaleMap = map[string]string{
	"ar": "ar-SA",
	"bn": "bn-IN",
	"cs": "cs-CZ",
	"da": "da-DK",
	"de": "de-DE",
	"el": "el-GR",
	"en": "en-US",
	"es": "es-ES",
	"fi": "fi-FI",
	"fr": "fr-FR",
	"he": "he-IL",
	"hi": "hi-IN",
	"id": "id-ID",
	"it": "it-IT",
	"ja": "ja-JP",
	"ko": "ko-KR",
	"nl": "nl-NL",
	"no": "nb-NO",
	"pl": "pl-PL",
	"pt": "pt-PT",
	"ru": "ru-RU",
	"sv": "sv-SE",
	"ta": "ta-IN",
	"th": "th-TH",
	"tr": "tr-TR",
	"uk": "uk-UA",
	"vi": "vi-VN",
	"zh": "zh-CN",
}

// ExpandLocale turns a short language code into a full locale tag.
// Codes absent from both the built-in table and the extension map
// expand heuristically as code-CODE. A tag that already carries a
// region passes through verbatim.
func ExpandLocale(code string, extension map[string]string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return code
	}
	if strings.Contains(code, "-") {
		return code
	}

	lower := strings.ToLower(code)
	if tag, ok := extension[lower]; ok && tag != "" {
		return tag
	}
	if tag, ok := baseLocaleMap[lower]; ok {
		return tag
	}
	return lower + "-" + strings.ToUpper(lower)
}

// ShortCode reduces a locale tag to its bare language code, e.g.
// "es-ES" to "es".
func ShortCode(tag string) string {
	if i := strings.Index(tag, "-"); i > 0 {
		return tag[:i]
	}
	return tag
}
