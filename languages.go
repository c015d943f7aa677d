package tmt

import "strings"

// StandardLanguages is the static catalog of selectable languages offered
// when configuring a new target language. Codes are short lowercase ISO 639-1
// identifiers.
var StandardLanguages = []StandardLanguage{
	{Code: "en", Name: "English"},
	{Code: "es", Name: "Spanish"},
	{Code: "fr", Name: "French"},
	{Code: "de", Name: "German"},
	{Code: "it", Name: "Italian"},
	{Code: "pt", Name: "Portuguese"},
	{Code: "nl", Name: "Dutch"},
	{Code: "pl", Name: "Polish"},
	{Code: "ru", Name: "Russian"},
	{Code: "uk", Name: "Ukrainian"},
	{Code: "ar", Name: "Arabic"},
	{Code: "he", Name: "Hebrew"},
	{Code: "hi", Name: "Hindi"},
	{Code: "bn", Name: "Bengali"},
	{Code: "ta", Name: "Tamil"},
	{Code: "te", Name: "Telugu"},
	{Code: "mr", Name: "Marathi"},
	{Code: "pa", Name: "Punjabi"},
	{Code: "gu", Name: "Gujarati"},
	{Code: "kn", Name: "Kannada"},
	{Code: "ml", Name: "Malayalam"},
	{Code: "ur", Name: "Urdu"},
	{Code: "zh", Name: "Chinese"},
	{Code: "ja", Name: "Japanese"},
	{Code: "ko", Name: "Korean"},
	{Code: "tr", Name: "Turkish"},
	{Code: "vi", Name: "Vietnamese"},
	{Code: "th", Name: "Thai"},
	{Code: "id", Name: "Indonesian"},
	{Code: "sv", Name: "Swedish"},
	{Code: "da", Name: "Danish"},
	{Code: "fi", Name: "Finnish"},
	{Code: "nb", Name: "Norwegian Bokmål"},
	{Code: "cs", Name: "Czech"},
	{Code: "el", Name: "Greek"},
	{Code: "hu", Name: "Hungarian"},
	{Code: "ro", Name: "Romanian"},
	{Code: "sw", Name: "Swahili"},
	{Code: "fa", Name: "Persian"},
}

// languageNames indexes StandardLanguages by code.
var languageNames = func() map[string]string {
	m := make(map[string]string, len(StandardLanguages))
	for _, l := range StandardLanguages {
		m[l.Code] = l.Name
	}
	return m
}()

// RTLLanguages contains language codes that use right-to-left text direction.
var RTLLanguages = map[string]bool{
	"ar": true, // Arabic
	"he": true, // Hebrew
	"fa": true, // Persian/Farsi
	"ur": true, // Urdu
	"ps": true, // Pashto
	"sd": true, // Sindhi
	"ug": true, // Uyghur
}

// GetLanguageName returns the catalog name for a language code.
// Falls back to the code itself if not found.
func GetLanguageName(code string) string {
	if name, ok := languageNames[NormalizeLanguageCode(code)]; ok {
		return name
	}
	return code
}

// NormalizeLanguageCode converts user input into the canonical short form:
// trimmed, lowercased, with any locale suffix stripped ("es-ES" becomes "es").
func NormalizeLanguageCode(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	code = strings.ReplaceAll(code, "-", "_")
	if i := strings.Index(code, "_"); i > 0 {
		code = code[:i]
	}
	return code
}

// GetDirection returns "rtl" for right-to-left languages, "ltr" otherwise.
func GetDirection(code string) string {
	if RTLLanguages[NormalizeLanguageCode(code)] {
		return "rtl"
	}
	return "ltr"
}

// IsRTL returns true if the language uses right-to-left text direction.
func IsRTL(code string) bool {
	return GetDirection(code) == "rtl"
}
