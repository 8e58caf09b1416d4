package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	KeyLocale     = "locale"
	LocaleCookie  = "fanfare_locale"
	DefaultLocale = "fr"
)

var supportedLocales = map[string]struct{}{"fr": {}, "en": {}}

// Locale 站点语言判定：?lang= > cookie > Accept-Language > 默认 fr。
// ?lang= 显式切换时回写 cookie，后续请求保持选择。
func Locale() gin.HandlerFunc {
	return func(c *gin.Context) {
		loc := ""

		if q := normalizeLocale(c.Query("lang")); q != "" {
			loc = q
			c.SetCookie(LocaleCookie, loc, 365*24*3600, "/", "", false, false)
		}
		if loc == "" {
			if ck, err := c.Cookie(LocaleCookie); err == nil {
				loc = normalizeLocale(ck)
			}
		}
		if loc == "" {
			loc = fromAcceptLanguage(c.GetHeader("Accept-Language"))
		}
		if loc == "" {
			loc = DefaultLocale
		}

		c.Set(KeyLocale, loc)
		c.Header("Content-Language", loc)
		c.Next()
	}
}

func normalizeLocale(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(s, "-_"); i > 0 {
		s = s[:i]
	}
	if _, ok := supportedLocales[s]; ok {
		return s
	}
	return ""
}

// fromAcceptLanguage 取第一个受支持的语言；q 值按出现顺序近似处理
func fromAcceptLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		lang := part
		if i := strings.Index(lang, ";"); i >= 0 {
			lang = lang[:i]
		}
		if loc := normalizeLocale(lang); loc != "" {
			return loc
		}
	}
	return ""
}
