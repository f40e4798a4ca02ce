package injector

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/geofill/geofill-cli/api/schemas"
	"github.com/geofill/geofill-cli/internal/browser/dom"
)

// syntheticField matches the field_N identifiers the scanner gives controls
// that have neither id nor name.
var syntheticField = regexp.MustCompile(`^field_(\d+)$`)

// FillFormByIDMap writes an externally computed plan of identifier to value.
// Each key is resolved as an element id, then a name, then a field_N index
// into the visible editable controls. Keys are processed in sorted order.
func (inj *Injector) FillFormByIDMap(mapping map[string]string) schemas.FillResult {
	res := schemas.NewFillResult()
	keys := make([]string, 0, len(mapping))
	for k := range mapping {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := mapping[key]
		if strings.TrimSpace(value) == "" {
			continue
		}
		n := inj.resolve(key)
		if n == nil {
			inj.logger.Debug("Mapped field not found.", zap.String("key", key))
			res.Results[key] = schemas.StatusNotFound
			continue
		}
		status := inj.applyMapped(n, value)
		res.Results[key] = status
		if status == schemas.StatusFilled {
			res.FilledCount++
		}
	}
	return res
}

func (inj *Injector) resolve(key string) *html.Node {
	doc := inj.loc.Document()
	if n := doc.ByID(key); n != nil && dom.IsEditable(n) {
		return n
	}
	if nodes, err := doc.XPath("//*[@name=" + dom.XPathLiteral(key) + "]"); err == nil {
		for _, n := range nodes {
			if dom.IsEditable(n) {
				return n
			}
		}
	}
	if m := syntheticField.FindStringSubmatch(key); m != nil {
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			return nil
		}
		controls := doc.Controls(inj.loc.Oracle())
		if idx < len(controls) {
			return controls[idx]
		}
	}
	return nil
}

func (inj *Injector) applyMapped(n *html.Node, value string) string {
	if dom.InputType(n) != "radio" {
		return inj.apply(n, value, nil)
	}
	r := matchRadio(inj.radioGroup(n), inj.labelText, value, nil, nil)
	if r == nil {
		return schemas.StatusNoMatchingOption
	}
	if err := inj.setter.SetChecked(r, true); err != nil {
		inj.logger.Debug("Write failed.", zap.Error(err))
		return schemas.StatusFailed
	}
	return schemas.StatusFilled
}

// radioGroup returns the enabled radios sharing n's name in its form.
func (inj *Injector) radioGroup(n *html.Node) []*html.Node {
	name := dom.Attr(n, "name")
	if name == "" {
		return []*html.Node{n}
	}
	form := dom.FindParentForm(n)
	var out []*html.Node
	for _, r := range inj.radios() {
		if dom.Attr(r, "name") == name && dom.FindParentForm(r) == form && !dom.IsDisabled(r) {
			out = append(out, r)
		}
	}
	return out
}

func (inj *Injector) radios() []*html.Node {
	nodes, err := inj.loc.Document().QueryAll(`input[type="radio" i]`)
	if err != nil {
		return nil
	}
	return nodes
}

func (inj *Injector) labelText(n *html.Node) string {
	return inj.loc.Label(n).Text
}

// fillGender tries select and text controls first, then a radio group whose
// name mentions gender or sex. Radios are often visually replaced by styled
// labels, so only disabled ones are passed over.
func (inj *Injector) fillGender(res *schemas.FillResult, value string, written map[*html.Node]bool) {
	field := schemas.FieldGender
	if m := inj.loc.LocateExcept(field, taken(written)); m != nil {
		inj.fillMatch(res, m, value, written)
		return
	}

	var group []*html.Node
	for _, r := range inj.radios() {
		name := strings.ToLower(dom.Attr(r, "name"))
		if (strings.Contains(name, "gender") || strings.Contains(name, "sex")) && !dom.IsDisabled(r) {
			group = append(group, r)
		}
	}
	if len(group) == 0 {
		res.Results[field] = schemas.StatusNotFound
		return
	}
	r := matchRadio(group, inj.labelText, value, candidatesFor(field, value), opposite(value))
	if r == nil {
		res.Results[field] = schemas.StatusNoMatchingOption
		return
	}
	if err := inj.setter.SetChecked(r, true); err != nil {
		inj.logger.Debug("Write failed.", zap.Error(err))
		res.Results[field] = schemas.StatusFailed
		return
	}
	res.Results[field] = schemas.StatusFilled
	res.FilledCount++
	written[r] = true
}
