package core

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const whatsappNumber = "212661829455"

// codeFence matches an accidental leading "```html" (or bare "```") wrapper
// and a trailing "```", which some models emit despite the prompt forbidding
// markdown.
var codeFence = regexp.MustCompile("^```(?:html)?\\n|```\\s*$")

// sentinel matches the token case-insensitively, tolerating whitespace inside
// the brackets and swallowing whitespace around the token, so stripping all
// occurrences leaves no double-space artifacts.
var sentinel = regexp.MustCompile(`(?i)\s*\[\s*show_cta\s*\]`)

type ctaCopy struct {
	leadIn      string
	buttonLabel string
	greeting    string // Pre-filled WhatsApp message, localized
	rtl         bool
}

var ctaByLanguage = map[Language]ctaCopy{
	LangFrench: {
		leadIn:      "Pour plus d'informations, contactez notre équipe via WhatsApp :",
		buttonLabel: "Contacter sur WhatsApp",
		greeting:    "Bonjour, je souhaite avoir plus d'informations.",
	},
	LangEnglish: {
		leadIn:      "For more information, contact our team via WhatsApp:",
		buttonLabel: "Contact on WhatsApp",
		greeting:    "Hello, I would like more information.",
	},
	LangArabic: {
		leadIn:      "لمزيد من المعلومات، تواصل مع فريقنا عبر الواتساب:",
		buttonLabel: "تواصل عبر الواتساب",
		greeting:    "مرحبا، أود الحصول على مزيد من المعلومات.",
		rtl:         true,
	},
}

func init() {
	// Every supported language must carry CTA copy; a silent fallback would
	// ship the wrong language to users.
	for _, lang := range supportedLanguages {
		if _, ok := ctaByLanguage[lang]; !ok {
			panic(fmt.Sprintf("missing CTA copy for language %q", lang))
		}
	}
}

// PostProcessReply normalizes raw model output into the widget contract:
// code fences stripped, every sentinel occurrence removed, and the localized
// CTA fragment appended when the sentinel was present. Presence is boolean;
// zero and many occurrences behave identically.
func PostProcessReply(raw string, lang Language) string {
	reply := codeFence.ReplaceAllString(raw, "")

	showCTA := sentinel.MatchString(reply)
	reply = StripSentinel(reply)

	if showCTA {
		reply += ctaFragment(lang)
	}
	return reply
}

// StripSentinel removes all sentinel occurrences and trims the remainder.
// Idempotent: applying it to an already-stripped string is a no-op.
func StripSentinel(reply string) string {
	return strings.TrimSpace(sentinel.ReplaceAllString(reply, ""))
}

func ctaFragment(lang Language) string {
	c := ctaByLanguage[lang]

	dir := "ltr"
	if c.rtl {
		dir = "rtl"
	}

	whatsappURL := "https://wa.me/" + whatsappNumber + "?text=" + url.QueryEscape(c.greeting)

	return fmt.Sprintf(`<br/><br/><div style="margin-top:12px;padding-top:16px;border-top:1px solid #e2e8f0;" dir="%s">`+
		`<p style="margin-bottom:12px;">%s</p>`+
		`<a href="%s" target="_blank" style="display:inline-flex;align-items:center;gap:8px;background:#25D366;color:#fff;padding:10px 20px;border-radius:8px;text-decoration:none;font-weight:600;">%s</a>`+
		`</div>`, dir, c.leadIn, whatsappURL, c.buttonLabel)
}
