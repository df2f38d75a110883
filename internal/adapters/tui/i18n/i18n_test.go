package i18n

import "testing"

func TestMatch(t *testing.T) {
	tests := []struct {
		locale   string
		subtitle string
	}{
		{"en-US", "The Visual Library"},
		{"en_GB.UTF-8", "The Visual Library"},
		{"zh-CN", "视觉化图书馆"},
		{"zh_CN.UTF-8", "视觉化图书馆"},
		{"es-ES", "La Biblioteca Visual"},
		{"es_MX", "La Biblioteca Visual"},
		{"", "The Visual Library"},
		{"not a locale", "The Visual Library"},
	}
	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			if got := Match(tt.locale).Subtitle; got != tt.subtitle {
				t.Errorf("Match(%q).Subtitle = %q, want %q", tt.locale, got, tt.subtitle)
			}
		})
	}
}

func TestFromEnv(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"LANG", map[string]string{"LANG": "es_ES.UTF-8"}, "La Biblioteca Visual"},
		{"LC_ALL wins", map[string]string{"LC_ALL": "zh_CN.UTF-8", "LANG": "es_ES.UTF-8"}, "视觉化图书馆"},
		{"C locale skipped", map[string]string{"LC_ALL": "C", "LANG": "es_ES"}, "La Biblioteca Visual"},
		{"empty", map[string]string{}, "The Visual Library"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromEnv(func(k string) string { return tt.env[k] }).Subtitle
			if got != tt.want {
				t.Errorf("FromEnv() subtitle = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCatalogComplete(t *testing.T) {
	for _, s := range catalog {
		for name, v := range map[string]string{
			"Brand": s.Brand, "Subtitle": s.Subtitle, "Placeholder": s.Placeholder,
			"LoadingConsult": s.LoadingConsult, "LoadingDirect": s.LoadingDirect, "NotRecognized": s.NotRecognized,
		} {
			if v == "" {
				t.Errorf("%s: %s is empty", s.Tag, name)
			}
		}
	}
}
