package locale

// Email domain categories.
const (
	EmailCommon   = "common"
	EmailSecure   = "secure"
	EmailTemp     = "temp"
	EmailRegional = "regional"
)

var emailDomains = map[string][]string{
	EmailCommon:   {"gmail.com", "yahoo.com", "outlook.com", "hotmail.com", "icloud.com", "live.com", "msn.com", "aol.com"},
	EmailSecure:   {"protonmail.com", "tutanota.com", "mailfence.com", "zoho.com", "fastmail.com"},
	EmailTemp:     {"guerrillamail.com", "tempmail.com", "10minutemail.com", "mailinator.com"},
	EmailRegional: {"qq.com", "163.com", "sina.com", "yandex.com", "mail.ru", "gmx.com", "web.de"},
}

// EmailDomains returns the pool for a category and whether the category exists.
func EmailDomains(category string) ([]string, bool) {
	d, ok := emailDomains[category]
	return d, ok
}

// AllEmailDomains returns every pooled domain, grouped by category in a fixed order.
func AllEmailDomains() []string {
	var out []string
	for _, cat := range []string{EmailCommon, EmailSecure, EmailTemp, EmailRegional} {
		out = append(out, emailDomains[cat]...)
	}
	return out
}
