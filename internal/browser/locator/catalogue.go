package locator

import "github.com/geofill/geofill-cli/api/schemas"

// Rule describes how one logical field is found on a page. Patterns are CSS
// selectors tried in order; Keywords are matched against inferred labels when
// no pattern hits.
type Rule struct {
	Patterns []string
	Keywords []string
	// Exclude rejects a label containing any of these, even when a keyword hits.
	Exclude []string
}

// Catalogue maps logical field names to their rules.
type Catalogue map[string]Rule

// Rule returns the rule for field.
func (c Catalogue) Rule(field string) (Rule, bool) {
	r, ok := c[field]
	return r, ok
}

// notKana keeps the plain name patterns off phonetic-reading inputs.
const notKana = `:not([name*="kana" i]):not([id*="kana" i]):not([name*="furigana" i])`

// DefaultCatalogue returns a fresh copy of the built-in rules.
func DefaultCatalogue() Catalogue {
	c := make(Catalogue, len(defaultRules))
	for field, r := range defaultRules {
		c[field] = Rule{
			Patterns: append([]string(nil), r.Patterns...),
			Keywords: append([]string(nil), r.Keywords...),
			Exclude:  append([]string(nil), r.Exclude...),
		}
	}
	return c
}

var defaultRules = Catalogue{
	schemas.FieldFirstName: {
		Patterns: []string{
			`input[name*="first" i]` + notKana,
			`input[name*="fname" i]` + notKana,
			`input[id*="first" i]` + notKana,
			`input[placeholder*="first" i]`,
			`input[autocomplete="given-name"]`,
			`input[name*="given" i]` + notKana,
			`input[name="mei" i]`,
			`input[placeholder*="太郎"]:not([placeholder*="山田"])`,
		},
		Keywords: []string{"first name", "given name", "forename", "vorname", "prénom", "nombre", "下の名前", "名（名）"},
	},
	schemas.FieldLastName: {
		Patterns: []string{
			`input[name*="last" i]` + notKana,
			`input[name*="lname" i]` + notKana,
			`input[name*="surname" i]` + notKana,
			`input[id*="last" i]` + notKana,
			`input[placeholder*="last" i]`,
			`input[autocomplete="family-name"]`,
			`input[name*="family" i]` + notKana,
			`input[name="sei" i]`,
			`input[placeholder*="山田"]:not([placeholder*="太郎"])`,
		},
		Keywords: []string{"last name", "surname", "family name", "nachname", "apellido", "nom de famille", "姓", "苗字"},
		Exclude:  []string{"姓名", "フリガナ", "ふりがな", "カナ", "かな", "セイ"},
	},
	schemas.FieldFullName: {
		Patterns: []string{
			`input[name="name" i]`,
			`input[id="name" i]`,
			`input[name*="fullname" i]` + notKana,
			`input[name*="full_name" i]` + notKana,
			`input[name*="full-name" i]` + notKana,
			`input[id*="fullname" i]` + notKana,
			`input[autocomplete="name"]`,
			`input[placeholder*="full name" i]`,
			`input[name="shimei" i]`,
			`input[placeholder*="山田 太郎"]`,
			`input[placeholder*="山田太郎"]`,
			`input[placeholder*="山田　太郎"]`,
		},
		Keywords: []string{"full name", "your name", "nom complet", "nombre completo", "vollständiger name", "氏名", "お名前", "姓名"},
	},
	schemas.FieldLastNameKana: {
		Patterns: []string{
			`input[name*="last" i][name*="kana" i]`,
			`input[name*="sei" i][name*="kana" i]`,
			`input[id*="last" i][id*="kana" i]`,
			`input[name*="kana_sei" i]`,
			`input[placeholder*="ヤマダ"]:not([placeholder*="タロウ"])`,
			`input[placeholder*="やまだ"]:not([placeholder*="たろう"])`,
		},
		Keywords: []string{"セイ", "せい", "姓（フリガナ）", "姓（カナ）", "姓(カナ)"},
	},
	schemas.FieldFirstNameKana: {
		Patterns: []string{
			`input[name*="first" i][name*="kana" i]`,
			`input[name*="mei" i][name*="kana" i]`,
			`input[id*="first" i][id*="kana" i]`,
			`input[name*="kana_mei" i]`,
			`input[placeholder*="タロウ"]:not([placeholder*="ヤマダ"])`,
			`input[placeholder*="たろう"]:not([placeholder*="やまだ"])`,
		},
		Keywords: []string{"メイ", "めい", "名（フリガナ）", "名（カナ）", "名(カナ)"},
	},
	schemas.FieldFullNameKana: {
		Patterns: []string{
			`input[name*="fullname_kana" i]`,
			`input[name*="name_kana" i]:not([name*="first" i]):not([name*="last" i])`,
			`input[name="kana" i]`,
			`input[name*="furigana" i]`,
			`input[placeholder*="ヤマダ タロウ"]`,
			`input[placeholder*="ヤマダタロウ"]`,
			`input[placeholder*="ヤマダ　タロウ"]`,
		},
		Keywords: []string{"フリガナ", "ふりがな", "氏名（カナ）"},
	},
	schemas.FieldGender: {
		Patterns: []string{
			`select[name*="gender" i]`,
			`select[id*="gender" i]`,
			`select[name*="sex" i]`,
			`input[name*="gender" i]:not([type="radio"]):not([type="checkbox"])`,
			`input[id*="gender" i]:not([type="radio"]):not([type="checkbox"])`,
		},
		Keywords: []string{"gender", "sex", "geschlecht", "sexe", "género", "性別"},
	},
	schemas.FieldBirthday: {
		Patterns: []string{
			`input[type="date"]`,
			`input[name*="birth" i]`,
			`input[name*="dob" i]`,
			`input[id*="birth" i]`,
			`input[id*="dob" i]`,
			`input[placeholder*="birth" i]`,
			`input[autocomplete="bday"]`,
		},
		Keywords: []string{"birthday", "date of birth", "birth date", "geburtsdatum", "date de naissance", "fecha de nacimiento", "生年月日", "誕生日", "出生日期"},
	},
	schemas.FieldUsername: {
		Patterns: []string{
			`input[name*="username" i]`,
			`input[name*="user_name" i]`,
			`input[name*="user" i]:not([name*="["])`,
			`input[name*="login" i]:not([type="password"])`,
			`input[name*="account" i]`,
			`input[id*="username" i]`,
			`input[id*="user_name" i]`,
			`input[id="user" i]`,
			`input[id="userid" i]`,
			`input[placeholder*="user" i]`,
			`input[autocomplete="username"]`,
		},
		Keywords: []string{"username", "user name", "user id", "login", "benutzername", "nom d'utilisateur", "ユーザー名", "ユーザーid", "用户名"},
	},
	schemas.FieldEmail: {
		Patterns: []string{
			`input[type="email"]`,
			`input[name*="email" i]`,
			`input[name*="mail" i]`,
			`input[id*="email" i]`,
			`input[placeholder*="email" i]`,
			`input[autocomplete="email"]`,
		},
		Keywords: []string{"email", "e-mail", "mail address", "correo", "courriel", "メールアドレス", "メール", "邮箱", "电子邮件"},
	},
	schemas.FieldPassword: {
		Patterns: []string{
			`input[type="password"]`,
			`input[name*="pass" i]`,
			`input[name*="pwd" i]`,
			`input[id*="pass" i]`,
			`input[autocomplete="new-password"]`,
			`input[autocomplete="current-password"]`,
		},
		Keywords: []string{"password", "passwort", "mot de passe", "contraseña", "パスワード", "密码"},
	},
	schemas.FieldPhone: {
		Patterns: []string{
			`input[type="tel"]`,
			`input[name*="phone" i]`,
			`input[name*="mobile" i]`,
			`input[name*="tel" i]`,
			`input[id*="phone" i]`,
			`input[placeholder*="phone" i]`,
			`input[autocomplete="tel"]`,
		},
		Keywords: []string{"phone", "telephone", "mobile", "telefon", "téléphone", "teléfono", "電話番号", "携帯", "电话", "手机"},
	},
	schemas.FieldAddress: {
		Patterns: []string{
			`input[name*="address" i]:not([name*="mail" i])`,
			`input[name*="street" i]`,
			`input[id*="address" i]:not([id*="mail" i])`,
			`input[placeholder*="address" i]:not([placeholder*="mail" i])`,
			`input[autocomplete="street-address"]`,
			`input[autocomplete="address-line1"]`,
			`textarea[name*="address" i]`,
		},
		Keywords: []string{"address", "street", "adresse", "straße", "dirección", "番地", "住所", "地址"},
	},
	schemas.FieldCity: {
		Patterns: []string{
			`input[name*="city" i]`,
			`input[id*="city" i]`,
			`input[placeholder*="city" i]`,
			`input[autocomplete="address-level2"]`,
			`select[name*="city" i]`,
		},
		Keywords: []string{"city", "town", "stadt", "ville", "ciudad", "市区町村", "城市"},
	},
	schemas.FieldZipCode: {
		Patterns: []string{
			`input[name*="zip" i]`,
			`input[name*="postal" i]`,
			`input[name*="postcode" i]`,
			`input[id*="zip" i]`,
			`input[placeholder*="zip" i]`,
			`input[autocomplete="postal-code"]`,
		},
		Keywords: []string{"zip", "postal code", "postcode", "plz", "code postal", "código postal", "郵便番号", "邮编", "邮政编码"},
	},
	schemas.FieldState: {
		Patterns: []string{
			`input[name*="state" i]`,
			`input[name*="province" i]`,
			`input[name*="region" i]`,
			`input[id*="state" i]`,
			`input[id*="province" i]`,
			`input[placeholder*="state" i]`,
			`input[placeholder*="province" i]`,
			`select[name*="state" i]`,
			`select[name*="province" i]`,
			`select[id*="state" i]`,
			`input[autocomplete="address-level1"]`,
		},
		Keywords: []string{"state", "province", "region", "bundesland", "provincia", "省"},
	},
	schemas.FieldCountry: {
		Patterns: []string{
			`input[name*="country" i]`,
			`input[id*="country" i]`,
			`select[name*="country" i]`,
			`select[id*="country" i]`,
			`input[autocomplete="country-name"]`,
			`select[autocomplete="country"]`,
		},
		Keywords: []string{"country", "pays", "país", "国", "国家"},
	},
	schemas.FieldPrefecture: {
		Patterns: []string{
			`select[name*="pref" i]`,
			`select[id*="pref" i]`,
			`input[name*="pref" i]`,
			`input[id*="pref" i]`,
		},
		Keywords: []string{"都道府県", "prefecture"},
	},
	schemas.FieldBuilding: {
		Patterns: []string{
			`input[name*="building" i]`,
			`input[id*="building" i]`,
			`input[name*="tatemono" i]`,
			`input[autocomplete="address-line2"]`,
		},
		Keywords: []string{"building", "建物", "マンション", "apartment", "suite"},
	},
}
