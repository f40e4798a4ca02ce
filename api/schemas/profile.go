package schemas

import (
	"sort"
)

// -- Profile Schemas --

// Field names used as keys of a Profile. They double as the logical field
// names understood by the locator and the injector.
const (
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldFullName  = "fullName"
	FieldGender    = "gender"
	FieldBirthday  = "birthday"
	FieldUsername  = "username"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldPhone     = "phone"
	FieldAddress   = "address"
	FieldCity      = "city"
	FieldState     = "state"
	FieldZipCode   = "zipCode"
	FieldCountry   = "country"

	// Japanese records carry the name in three scripts.
	FieldFirstNameKana  = "firstNameKana"
	FieldLastNameKana   = "lastNameKana"
	FieldFullNameKana   = "fullNameKana"
	FieldFirstNameKanji = "firstNameKanji"
	FieldLastNameKanji  = "lastNameKanji"
	FieldPrefecture     = "prefecture"
	FieldBuilding       = "building"
)

// CoreFields lists the fields every generated profile carries, in display order.
var CoreFields = []string{
	FieldFirstName, FieldLastName, FieldGender, FieldBirthday, FieldUsername,
	FieldEmail, FieldPassword, FieldPhone, FieldAddress, FieldCity,
	FieldState, FieldZipCode, FieldCountry,
}

// Profile is a flat field-name to value mapping describing one synthetic person.
type Profile map[string]string

// Get returns the value of a field, or "" when absent.
func (p Profile) Get(field string) string {
	return p[field]
}

// Clone returns an independent copy.
func (p Profile) Clone() Profile {
	out := make(Profile, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Fields returns the keys present in the profile: core fields first in
// display order, then any extra fields sorted by name.
func (p Profile) Fields() []string {
	fields := make([]string, 0, len(p))
	core := make(map[string]struct{}, len(CoreFields))
	for _, f := range CoreFields {
		core[f] = struct{}{}
		if _, ok := p[f]; ok {
			fields = append(fields, f)
		}
	}
	var extra []string
	for k := range p {
		if _, ok := core[k]; !ok {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(fields, extra...)
}

// Settings carries the caller-controlled generation knobs.
type Settings struct {
	PasswordLength int  `json:"passwordLength" yaml:"password_length"`
	PwdUppercase   bool `json:"pwdUppercase" yaml:"pwd_uppercase"`
	PwdLowercase   bool `json:"pwdLowercase" yaml:"pwd_lowercase"`
	PwdNumbers     bool `json:"pwdNumbers" yaml:"pwd_numbers"`
	PwdSymbols     bool `json:"pwdSymbols" yaml:"pwd_symbols"`
	MinAge         int  `json:"minAge" yaml:"min_age"`
	MaxAge         int  `json:"maxAge" yaml:"max_age"`
}

// DefaultSettings returns 12 character passwords from all four classes and ages 18 to 55.
func DefaultSettings() Settings {
	return Settings{
		PasswordLength: 12,
		PwdUppercase:   true,
		PwdLowercase:   true,
		PwdNumbers:     true,
		PwdSymbols:     true,
		MinAge:         18,
		MaxAge:         55,
	}
}

// Location is one row of a country's city table.
type Location struct {
	City      string `json:"city" yaml:"city"`
	State     string `json:"state" yaml:"state"`
	ZipPrefix string `json:"zipPrefix,omitempty" yaml:"zip_prefix,omitempty"`
}

// -- Regeneration Results --

// RegenResult is the outcome of regenerating one field. It is either a
// ScalarUpdate or a LocationUpdate.
type RegenResult interface {
	// Apply writes the update into the profile.
	Apply(p Profile)
	isRegenResult()
}

// ScalarUpdate replaces a single field. Derived holds other representations
// of the same value, such as the kana reading and full-name forms of a
// Japanese name, which are rewritten with it.
type ScalarUpdate struct {
	Field   string            `json:"field" yaml:"field"`
	Value   string            `json:"value" yaml:"value"`
	Derived map[string]string `json:"derived,omitempty" yaml:"derived,omitempty"`
}

func (u ScalarUpdate) Apply(p Profile) {
	p[u.Field] = u.Value
	for k, v := range u.Derived {
		p[k] = v
	}
}
func (ScalarUpdate) isRegenResult() {}

// LocationUpdate replaces city, state and zip code together so they stay consistent.
type LocationUpdate struct {
	City    string `json:"city" yaml:"city"`
	State   string `json:"state" yaml:"state"`
	ZipCode string `json:"zipCode" yaml:"zip_code"`
}

func (u LocationUpdate) Apply(p Profile) {
	p[FieldCity] = u.City
	p[FieldState] = u.State
	p[FieldZipCode] = u.ZipCode
}
func (LocationUpdate) isRegenResult() {}

// AddressBlock is a street line with its city, state, postal code and country.
type AddressBlock struct {
	Address string `json:"address" yaml:"address"`
	City    string `json:"city" yaml:"city"`
	State   string `json:"state" yaml:"state"`
	ZipCode string `json:"zipCode" yaml:"zip_code"`
	Country string `json:"country" yaml:"country"`
}
