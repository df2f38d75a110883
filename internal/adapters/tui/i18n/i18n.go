// Package i18n holds the localized strings of the hero screen.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Strings are the texts of the hero screen in one language
type Strings struct {
	Tag            language.Tag
	Brand          string
	Subtitle       string
	Placeholder    string
	Or             string
	Unknown        string
	LoadingConsult string
	LoadingDirect  string
	NotRecognized  string
}

var catalog = []Strings{
	{
		Tag:            language.AmericanEnglish,
		Brand:          "VIBARY",
		Subtitle:       "The Visual Library",
		Placeholder:    "Enter a known classic...",
		Or:             "Or open a PDF",
		Unknown:        "* If I don't know the book, I will ask for a PDF.",
		LoadingConsult: "Consulting Archives",
		LoadingDirect:  "Directing Visuals",
		NotRecognized:  "I don't know this book well enough. Please open a PDF.",
	},
	{
		Tag:            language.SimplifiedChinese,
		Brand:          "VIBARY",
		Subtitle:       "视觉化图书馆",
		Placeholder:    "输入经典书籍名称...",
		Or:             "或者打开 PDF",
		Unknown:        "* 如果我不了解这本书，我会请你提供文件",
		LoadingConsult: "正在查阅档案",
		LoadingDirect:  "正在构建视觉",
		NotRecognized:  "我不够了解这本书，请打开 PDF 文件。",
	},
	{
		Tag:            language.EuropeanSpanish,
		Brand:          "VIBARY",
		Subtitle:       "La Biblioteca Visual",
		Placeholder:    "Introduce un clásico...",
		Or:             "O abre un PDF",
		Unknown:        "* Si no conozco el libro, pediré un PDF.",
		LoadingConsult: "Consultando archivos",
		LoadingDirect:  "Dirigiendo visuales",
		NotRecognized:  "No conozco este libro. Por favor abre un PDF.",
	},
}

var matcher = language.NewMatcher(tags())

func tags() []language.Tag {
	out := make([]language.Tag, len(catalog))
	for i, s := range catalog {
		out[i] = s.Tag
	}
	return out
}

// Default returns the English strings
func Default() Strings {
	return catalog[0]
}

// Match returns the strings closest to locale. It accepts BCP 47 tags
// ("es-MX") as well as POSIX locales ("zh_CN.UTF-8"). Anything unknown
// falls back to English.
func Match(locale string) Strings {
	tag, err := language.Parse(normalize(locale))
	if err != nil {
		return Default()
	}
	_, index, conf := matcher.Match(tag)
	if conf == language.No {
		return Default()
	}
	return catalog[index]
}

// FromEnv matches the locale of the process environment
func FromEnv(getenv func(string) string) Strings {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := getenv(key); v != "" && v != "C" && v != "POSIX" {
			return Match(v)
		}
	}
	return Default()
}

func normalize(locale string) string {
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	return strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
}
