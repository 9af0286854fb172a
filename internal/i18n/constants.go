package i18n

const (
	QueryParamLang       = "lang"
	HeaderAcceptLanguage = "Accept-Language"
)
