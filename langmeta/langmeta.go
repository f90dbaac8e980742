// Package langmeta holds display names for the language codes the translate
// service reports. It is used for CLI output only and never decides whether
// a code is valid.
package langmeta

import "strings"

// Meta describes how a language is shown to the user.
type Meta struct {
	// Name is the language's own name for itself.
	Name string
	// English is the English name.
	English string
}

// Label is "Name" or "Name, English" when the two differ.
func (m Meta) Label() string {
	if m.English == "" || m.English == m.Name {
		return m.Name
	}
	return m.Name + ", " + m.English
}

// Registry is keyed by the codes the service uses, including its legacy
// aliases ("iw", "jw") and the two Chinese scripts.
var Registry = map[string]Meta{
	"af":    {Name: "Afrikaans", English: "Afrikaans"},
	"am":    {Name: "አማርኛ", English: "Amharic"},
	"ar":    {Name: "العربية", English: "Arabic"},
	"az":    {Name: "Azərbaycanca", English: "Azerbaijani"},
	"be":    {Name: "Беларуская", English: "Belarusian"},
	"bg":    {Name: "Български", English: "Bulgarian"},
	"bn":    {Name: "বাংলা", English: "Bengali"},
	"bs":    {Name: "Bosanski", English: "Bosnian"},
	"ca":    {Name: "Català", English: "Catalan"},
	"ceb":   {Name: "Cebuano", English: "Cebuano"},
	"co":    {Name: "Corsu", English: "Corsican"},
	"cs":    {Name: "Čeština", English: "Czech"},
	"cy":    {Name: "Cymraeg", English: "Welsh"},
	"da":    {Name: "Dansk", English: "Danish"},
	"de":    {Name: "Deutsch", English: "German"},
	"el":    {Name: "Ελληνικά", English: "Greek"},
	"en":    {Name: "English", English: "English"},
	"eo":    {Name: "Esperanto", English: "Esperanto"},
	"es":    {Name: "Español", English: "Spanish"},
	"et":    {Name: "Eesti", English: "Estonian"},
	"eu":    {Name: "Euskara", English: "Basque"},
	"fa":    {Name: "فارسی", English: "Persian"},
	"fi":    {Name: "Suomi", English: "Finnish"},
	"fr":    {Name: "Français", English: "French"},
	"fy":    {Name: "Frysk", English: "Frisian"},
	"ga":    {Name: "Gaeilge", English: "Irish"},
	"gd":    {Name: "Gàidhlig", English: "Scots Gaelic"},
	"gl":    {Name: "Galego", English: "Galician"},
	"gu":    {Name: "ગુજરાતી", English: "Gujarati"},
	"ha":    {Name: "Hausa", English: "Hausa"},
	"haw":   {Name: "ʻŌlelo Hawaiʻi", English: "Hawaiian"},
	"he":    {Name: "עברית", English: "Hebrew"},
	"hi":    {Name: "हिन्दी", English: "Hindi"},
	"hmn":   {Name: "Hmoob", English: "Hmong"},
	"hr":    {Name: "Hrvatski", English: "Croatian"},
	"ht":    {Name: "Kreyòl ayisyen", English: "Haitian Creole"},
	"hu":    {Name: "Magyar", English: "Hungarian"},
	"hy":    {Name: "Հայերեն", English: "Armenian"},
	"id":    {Name: "Bahasa Indonesia", English: "Indonesian"},
	"ig":    {Name: "Igbo", English: "Igbo"},
	"is":    {Name: "Íslenska", English: "Icelandic"},
	"it":    {Name: "Italiano", English: "Italian"},
	"iw":    {Name: "עברית", English: "Hebrew"},
	"ja":    {Name: "日本語", English: "Japanese"},
	"jw":    {Name: "Basa Jawa", English: "Javanese"},
	"ka":    {Name: "ქართული", English: "Georgian"},
	"kk":    {Name: "Қазақ тілі", English: "Kazakh"},
	"km":    {Name: "ខ្មែរ", English: "Khmer"},
	"kn":    {Name: "ಕನ್ನಡ", English: "Kannada"},
	"ko":    {Name: "한국어", English: "Korean"},
	"ku":    {Name: "Kurdî", English: "Kurdish"},
	"ky":    {Name: "Кыргызча", English: "Kyrgyz"},
	"la":    {Name: "Latina", English: "Latin"},
	"lb":    {Name: "Lëtzebuergesch", English: "Luxembourgish"},
	"lo":    {Name: "ລາວ", English: "Lao"},
	"lt":    {Name: "Lietuvių", English: "Lithuanian"},
	"lv":    {Name: "Latviešu", English: "Latvian"},
	"mg":    {Name: "Malagasy", English: "Malagasy"},
	"mi":    {Name: "Te Reo Māori", English: "Maori"},
	"mk":    {Name: "Македонски", English: "Macedonian"},
	"ml":    {Name: "മലയാളം", English: "Malayalam"},
	"mn":    {Name: "Монгол", English: "Mongolian"},
	"mr":    {Name: "मराठी", English: "Marathi"},
	"ms":    {Name: "Bahasa Melayu", English: "Malay"},
	"mt":    {Name: "Malti", English: "Maltese"},
	"my":    {Name: "မြန်မာ", English: "Myanmar (Burmese)"},
	"ne":    {Name: "नेपाली", English: "Nepali"},
	"nl":    {Name: "Nederlands", English: "Dutch"},
	"no":    {Name: "Norsk", English: "Norwegian"},
	"ny":    {Name: "Chichewa", English: "Chichewa"},
	"pa":    {Name: "ਪੰਜਾਬੀ", English: "Punjabi"},
	"pl":    {Name: "Polski", English: "Polish"},
	"ps":    {Name: "پښتو", English: "Pashto"},
	"pt":    {Name: "Português", English: "Portuguese"},
	"ro":    {Name: "Română", English: "Romanian"},
	"ru":    {Name: "Русский", English: "Russian"},
	"sd":    {Name: "سنڌي", English: "Sindhi"},
	"si":    {Name: "සිංහල", English: "Sinhala"},
	"sk":    {Name: "Slovenčina", English: "Slovak"},
	"sl":    {Name: "Slovenščina", English: "Slovenian"},
	"sm":    {Name: "Gagana Samoa", English: "Samoan"},
	"sn":    {Name: "ChiShona", English: "Shona"},
	"so":    {Name: "Soomaali", English: "Somali"},
	"sq":    {Name: "Shqip", English: "Albanian"},
	"sr":    {Name: "Српски", English: "Serbian"},
	"st":    {Name: "Sesotho", English: "Sesotho"},
	"su":    {Name: "Basa Sunda", English: "Sundanese"},
	"sv":    {Name: "Svenska", English: "Swedish"},
	"sw":    {Name: "Kiswahili", English: "Swahili"},
	"ta":    {Name: "தமிழ்", English: "Tamil"},
	"te":    {Name: "తెలుగు", English: "Telugu"},
	"tg":    {Name: "Тоҷикӣ", English: "Tajik"},
	"th":    {Name: "ไทย", English: "Thai"},
	"tl":    {Name: "Filipino", English: "Filipino"},
	"tr":    {Name: "Türkçe", English: "Turkish"},
	"uk":    {Name: "Українська", English: "Ukrainian"},
	"ur":    {Name: "اردو", English: "Urdu"},
	"uz":    {Name: "O'zbek", English: "Uzbek"},
	"vi":    {Name: "Tiếng Việt", English: "Vietnamese"},
	"xh":    {Name: "isiXhosa", English: "Xhosa"},
	"yi":    {Name: "ייִדיש", English: "Yiddish"},
	"yo":    {Name: "Yorùbá", English: "Yoruba"},
	"zh":    {Name: "中文", English: "Chinese"},
	"zh-CN": {Name: "简体中文", English: "Chinese (Simplified)"},
	"zh-TW": {Name: "繁體中文", English: "Chinese (Traditional)"},
	"zu":    {Name: "isiZulu", English: "Zulu"},
}

// canonicalize turns "zh_tw" or " ZH-tw " into "zh-TW".
func canonicalize(lang string) string {
	normalized := strings.ReplaceAll(strings.TrimSpace(lang), "_", "-")
	if normalized == "" {
		return ""
	}
	parts := strings.Split(normalized, "-")
	parts[0] = strings.ToLower(parts[0])
	if len(parts) >= 2 {
		parts[1] = strings.ToUpper(parts[1])
	}
	return strings.Join(parts, "-")
}

// Resolve returns display metadata for a code. Regional variants fall back
// to their base language; unknown codes come back with the code as Name.
func Resolve(lang string) Meta {
	if m, ok := Registry[lang]; ok {
		return m
	}
	normalized := canonicalize(lang)
	if m, ok := Registry[normalized]; ok {
		return m
	}
	if base, _, ok := strings.Cut(normalized, "-"); ok {
		if m, ok := Registry[base]; ok {
			return m
		}
	}
	return Meta{Name: lang}
}

// Label is Resolve(lang).Label().
func Label(lang string) string {
	return Resolve(lang).Label()
}
