package scanner

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/geofill/geofill-cli/api/schemas"
	"github.com/geofill/geofill-cli/internal/browser/dom"
	"github.com/geofill/geofill-cli/internal/browser/locator"
)

// pageTypeKeywords is checked in order; the first type with a keyword hit wins.
var pageTypeKeywords = []struct {
	pageType schemas.PageType
	keywords []string
}{
	{schemas.PageLogin, []string{"login", "log in", "sign in", "signin", "anmelden", "connexion", "iniciar sesión", "ログイン", "登录"}},
	{schemas.PageRegister, []string{"register", "registration", "sign up", "signup", "create account", "create an account", "registrieren", "inscription", "regístrate", "新規登録", "会員登録", "注册"}},
	{schemas.PageCheckout, []string{"checkout", "check out", "billing", "shipping", "payment", "place order", "kasse", "paiement", "ご注文", "お支払い", "購入手続き", "结算", "支付"}},
	{schemas.PageContact, []string{"contact", "get in touch", "inquiry", "enquiry", "kontakt", "contacto", "お問い合わせ", "联系我们"}},
	{schemas.PageSurvey, []string{"survey", "questionnaire", "feedback", "umfrage", "encuesta", "アンケート", "问卷", "调查"}},
	{schemas.PageProfile, []string{"profile", "my account", "account settings", "profil", "perfil", "プロフィール", "个人资料"}},
	{schemas.PageApplication, []string{"apply", "application", "job", "career", "bewerbung", "candidature", "応募", "申请"}},
	{schemas.PageSubscription, []string{"subscribe", "subscription", "newsletter", "abonnieren", "suscribir", "購読", "メルマガ", "订阅"}},
}

// ClassifyPage returns the first page type whose keywords occur in any of texts.
func ClassifyPage(texts ...string) schemas.PageType {
	var b strings.Builder
	for _, t := range texts {
		b.WriteString(locator.Fold(t))
		b.WriteByte('|')
	}
	haystack := b.String()
	for _, pt := range pageTypeKeywords {
		for _, kw := range pt.keywords {
			if strings.Contains(haystack, locator.Fold(kw)) {
				return pt.pageType
			}
		}
	}
	return schemas.PageUnknown
}

// captchaSelector finds the common CAPTCHA widgets and challenge frames.
const captchaSelector = `.g-recaptcha, .h-captcha, .cf-turnstile, [data-sitekey], ` +
	`iframe[src*="recaptcha" i], iframe[src*="hcaptcha" i], iframe[src*="captcha" i], ` +
	`iframe[src*="challenges.cloudflare.com"], script[src*="recaptcha" i], script[src*="hcaptcha" i], ` +
	`img[src*="captcha" i], img[alt*="captcha" i], input[name*="captcha" i], ` +
	`[id*="captcha" i], [class*="captcha" i]`

func (s *Scanner) pageContext(doc *dom.Document, oracle dom.VisibilityOracle, info PageInfo) schemas.PageContext {
	sel := doc.Selection()
	pc := schemas.PageContext{
		URL:         info.URL,
		Title:       dom.CollapseSpace(doc.Title()),
		Description: doc.Meta("description"),
		Language:    doc.Language(),
		HasCaptcha:  sel.Find(captchaSelector).Length() > 0,
	}
	if pc.URL == "" && doc.URL() != nil {
		pc.URL = doc.URL().String()
	}
	if pc.Language == "" {
		pc.Language = info.BrowserLanguage
	}
	pc.MainHeading = mainHeading(sel, oracle)
	pc.FormActions = formActions(sel, doc.URL())
	pc.SubmitTexts = submitTexts(sel, oracle)

	texts := []string{pc.Title, pc.MainHeading, pc.URL}
	texts = append(texts, pc.SubmitTexts...)
	texts = append(texts, pc.FormActions...)
	pc.PageType = ClassifyPage(texts...)
	return pc
}

func mainHeading(sel *goquery.Selection, oracle dom.VisibilityOracle) string {
	for _, tag := range []string{"h1", "h2"} {
		var text string
		sel.Find(tag).EachWithBreak(func(_ int, h *goquery.Selection) bool {
			if oracle.Visible(h.Get(0)) {
				text = dom.CollapseSpace(h.Text())
			}
			return text == ""
		})
		if text != "" {
			return text
		}
	}
	return ""
}

// formActions lists each form's action resolved against the page URL. A
// form without an action submits to the page itself.
func formActions(sel *goquery.Selection, base *url.URL) []string {
	var out []string
	seen := make(map[string]bool)
	sel.Find("form").Each(func(_ int, f *goquery.Selection) {
		action := strings.TrimSpace(f.AttrOr("action", ""))
		if base != nil {
			if ref, err := url.Parse(action); err == nil {
				action = base.ResolveReference(ref).String()
			}
		}
		if action != "" && !seen[action] {
			seen[action] = true
			out = append(out, action)
		}
	})
	return out
}

// submitTexts collects the captions of visible submit controls. A button
// without a type submits its form.
func submitTexts(sel *goquery.Selection, oracle dom.VisibilityOracle) []string {
	var out []string
	seen := make(map[string]bool)
	sel.Find(`button, input[type="submit" i], input[type="image" i]`).Each(func(_ int, b *goquery.Selection) {
		n := b.Get(0)
		if !oracle.Visible(n) {
			return
		}
		var text string
		switch dom.Tag(n) {
		case "button":
			t := strings.ToLower(strings.TrimSpace(b.AttrOr("type", "submit")))
			if t != "submit" {
				return
			}
			text = dom.CollapseSpace(b.Text())
			if text == "" {
				text = b.AttrOr("aria-label", "")
			}
		default:
			if dom.InputType(n) == "image" {
				text = b.AttrOr("alt", "")
			} else {
				text = b.AttrOr("value", "Submit")
			}
		}
		text = dom.CollapseSpace(text)
		if text != "" && !seen[text] {
			seen[text] = true
			out = append(out, text)
		}
	})
	return out
}
