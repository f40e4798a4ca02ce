// Package injector writes profile values into the controls the locator finds.
// Every write goes through a dom.ValueSetter so framework-managed inputs see
// the change the same way they would see typing.
package injector

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/geofill/geofill-cli/api/schemas"
	"github.com/geofill/geofill-cli/internal/browser/dom"
	"github.com/geofill/geofill-cli/internal/browser/locator"
	"github.com/geofill/geofill-cli/internal/config"
)

// callingCode matches the international prefix of a formatted phone number.
var callingCode = regexp.MustCompile(`^\+\d+\s*`)

// Injector fills one document.
type Injector struct {
	loc    *locator.Locator
	setter dom.ValueSetter
	delay  time.Duration
	logger *zap.Logger

	pending sync.WaitGroup
}

// New returns an Injector writing through setter into the document loc searches.
func New(loc *locator.Locator, setter dom.ValueSetter, cfg config.InjectorConfig, logger *zap.Logger) *Injector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Injector{
		loc:    loc,
		setter: setter,
		delay:  cfg.AddressDelay,
		logger: logger.Named("injector"),
	}
}

// Wait blocks until deferred writes have run.
func (inj *Injector) Wait() {
	inj.pending.Wait()
}

// FillForm writes each non-empty profile field into the control located for
// it. The address is written last, after the configured delay, so that a
// page's postal-code autocomplete cannot overwrite it. Fields the catalogue
// has no rule for are ignored.
func (inj *Injector) FillForm(p schemas.Profile) schemas.FillResult {
	res := schemas.NewFillResult()
	catalogue := inj.loc.Catalogue()

	first, last := p.Get(schemas.FieldFirstName), p.Get(schemas.FieldLastName)
	composeFullName := p.Get(schemas.FieldFullName) == "" && first != "" && last != ""

	written := make(map[*html.Node]bool)
	var address string
	for _, field := range p.Fields() {
		value := p.Get(field)
		if value == "" {
			continue
		}
		if _, ok := catalogue.Rule(field); !ok {
			continue
		}
		switch field {
		case schemas.FieldAddress:
			address = value
		case schemas.FieldPassword:
			inj.fillAll(&res, field, value, written)
		case schemas.FieldPhone:
			inj.fillOne(&res, field, stripCallingCode(value), written)
		case schemas.FieldGender:
			inj.fillGender(&res, value, written)
		default:
			inj.fillOne(&res, field, value, written)
		}
	}

	if composeFullName {
		inj.fillComposedName(&res, first+" "+last, written)
	}
	if address != "" {
		inj.scheduleAddress(&res, address, written)
	}

	inj.logger.Debug("Fill complete.", zap.Int("filled", res.FilledCount), zap.Any("results", res.Results))
	return res
}

func stripCallingCode(phone string) string {
	return callingCode.ReplaceAllString(phone, "")
}

// taken reports the controls an earlier field of the same fill already wrote.
func taken(written map[*html.Node]bool) func(*html.Node) bool {
	return func(n *html.Node) bool { return written[n] }
}

func (inj *Injector) fillOne(res *schemas.FillResult, field, value string, written map[*html.Node]bool) {
	m := inj.loc.LocateExcept(field, taken(written))
	if m == nil {
		res.Results[field] = schemas.StatusNotFound
		return
	}
	inj.fillMatch(res, m, value, written)
}

func (inj *Injector) fillMatch(res *schemas.FillResult, m *locator.Match, value string, written map[*html.Node]bool) {
	field := m.Field
	status := inj.apply(m.Node, value, candidatesFor(field, value))
	res.Results[field] = status
	if status == schemas.StatusFilled {
		res.FilledCount++
		written[m.Node] = true
	}
	inj.logger.Debug("Field processed.",
		zap.String("field", field), zap.String("stage", m.Stage),
		zap.String("pattern", m.Pattern), zap.String("status", status))
}

// fillAll writes value into every control matching field, such as a
// password and its confirmation.
func (inj *Injector) fillAll(res *schemas.FillResult, field, value string, written map[*html.Node]bool) {
	var matches []*locator.Match
	for _, m := range inj.loc.LocateAll(field) {
		if !written[m.Node] {
			matches = append(matches, m)
		}
	}
	if len(matches) == 0 {
		res.Results[field] = schemas.StatusNotFound
		return
	}
	filled := 0
	for _, m := range matches {
		if inj.apply(m.Node, value, nil) == schemas.StatusFilled {
			filled++
			written[m.Node] = true
		}
	}
	res.FilledCount += filled
	if filled == 0 {
		res.Results[field] = schemas.StatusFailed
		return
	}
	res.Results[field] = fmt.Sprintf("filled %d field(s)", filled)
}

// fillComposedName writes "first last" into a single combined name control
// when the page has one that neither name part already went into.
func (inj *Injector) fillComposedName(res *schemas.FillResult, value string, written map[*html.Node]bool) {
	m := inj.loc.LocateExcept(schemas.FieldFullName, taken(written))
	if m == nil {
		return
	}
	status := inj.apply(m.Node, value, nil)
	res.Results[schemas.FieldFullName] = status
	if status == schemas.StatusFilled {
		res.FilledCount++
		written[m.Node] = true
	}
}

// scheduleAddress resolves the address control now and writes it after the
// configured delay. The write cannot be cancelled once scheduled.
func (inj *Injector) scheduleAddress(res *schemas.FillResult, value string, written map[*html.Node]bool) {
	m := inj.loc.LocateExcept(schemas.FieldAddress, taken(written))
	if m == nil {
		res.Results[schemas.FieldAddress] = schemas.StatusNotFound
		return
	}
	if emailLike(m.Node) {
		inj.logger.Debug("Address target looks like an email field, skipping.",
			zap.String("name", dom.Attr(m.Node, "name")), zap.String("type", dom.InputType(m.Node)))
		res.Results[schemas.FieldAddress] = schemas.StatusSkippedEmail
		return
	}

	res.Results[schemas.FieldAddress] = schemas.StatusFilled
	res.FilledCount++

	n := m.Node
	inj.pending.Add(1)
	time.AfterFunc(inj.delay, func() {
		defer inj.pending.Done()
		if status := inj.apply(n, value, nil); status != schemas.StatusFilled {
			inj.logger.Warn("Deferred address write failed.", zap.String("status", status))
			return
		}
		inj.logger.Debug("Deferred address written.", zap.Duration("delay", inj.delay))
	})
}

func emailLike(n *html.Node) bool {
	if dom.InputType(n) == "email" {
		return true
	}
	for _, key := range []string{"name", "id", "autocomplete"} {
		if strings.Contains(strings.ToLower(dom.Attr(n, key)), "mail") {
			return true
		}
	}
	return false
}

// apply dispatches on the control kind and returns the field status.
func (inj *Injector) apply(n *html.Node, value string, candidates []string) string {
	var err error
	switch {
	case dom.Tag(n) == "select":
		opt, ok := matchOption(dom.Options(n), value, candidates)
		if !ok {
			return schemas.StatusNoMatchingOption
		}
		err = inj.setter.SelectOption(n, opt.Value)
	case dom.IsCheckable(n):
		err = inj.setter.SetChecked(n, truthy(value, dom.Attr(n, "value")))
	default:
		err = inj.setter.SetValue(n, value)
	}
	if err != nil {
		inj.logger.Debug("Write failed.", zap.String("tag", dom.Tag(n)), zap.Error(err))
		return schemas.StatusFailed
	}
	return schemas.StatusFilled
}

// truthy decides the checked state a mapping value asks for. A value equal
// to the control's own value attribute also counts as checked.
func truthy(value, own string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "true", "1", "yes", "y", "on", "checked", "x":
		return true
	}
	return own != "" && strings.EqualFold(strings.TrimSpace(own), strings.TrimSpace(value))
}
