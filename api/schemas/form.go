package schemas

import "time"

// -- Form Scan Schemas --

// Label sources, in the order label inference tries them.
const (
	LabelSourceFor         = "label-for"
	LabelSourceWrapping    = "label-wrap"
	LabelSourceAria        = "aria-label"
	LabelSourceLabelledBy  = "aria-labelledby"
	LabelSourceDescribed   = "aria-describedby"
	LabelSourceTitle       = "title"
	LabelSourcePlaceholder = "placeholder"
	LabelSourceSibling     = "sibling"
	LabelSourceParent      = "parent"
)

// Locator stages, in the order they are tried.
const (
	StagePattern = "pattern"
	StageLabel   = "label"
)

// PageType is the coarse classification of a page.
type PageType string

const (
	PageLogin        PageType = "login"
	PageRegister     PageType = "register"
	PageCheckout     PageType = "checkout"
	PageContact      PageType = "contact"
	PageSurvey       PageType = "survey"
	PageProfile      PageType = "profile"
	PageApplication  PageType = "application"
	PageSubscription PageType = "subscription"
	PageUnknown      PageType = "unknown"
)

// Option is one choice of a select element.
type Option struct {
	Value    string `json:"value" yaml:"value"`
	Text     string `json:"text" yaml:"text"`
	Selected bool   `json:"selected,omitempty" yaml:"selected,omitempty"`
}

// FieldDescriptor is the scanner's description of one fillable control.
type FieldDescriptor struct {
	// ID is the identifier used by id-map filling: element id, else name, else field_<index>.
	ID          string `json:"id" yaml:"id"`
	Index       int    `json:"index" yaml:"index"`
	Tag         string `json:"tag" yaml:"tag"`
	Type        string `json:"type" yaml:"type"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	ElementID   string `json:"elementId,omitempty" yaml:"element_id,omitempty"`
	Label       string `json:"label,omitempty" yaml:"label,omitempty"`
	LabelSource string `json:"labelSource,omitempty" yaml:"label_source,omitempty"`
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Value       string `json:"value,omitempty" yaml:"value,omitempty"`
	Checked     bool   `json:"checked,omitempty" yaml:"checked,omitempty"`

	// Validation attributes.
	Required     bool   `json:"required,omitempty" yaml:"required,omitempty"`
	Pattern      string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Min          string `json:"min,omitempty" yaml:"min,omitempty"`
	Max          string `json:"max,omitempty" yaml:"max,omitempty"`
	MaxLength    int    `json:"maxLength,omitempty" yaml:"max_length,omitempty"`
	Autocomplete string `json:"autocomplete,omitempty" yaml:"autocomplete,omitempty"`

	Options []Option `json:"options,omitempty" yaml:"options,omitempty"`

	Context       string   `json:"context,omitempty" yaml:"context,omitempty"`
	Group         string   `json:"group,omitempty" yaml:"group,omitempty"`
	PrevField     string   `json:"prevField,omitempty" yaml:"prev_field,omitempty"`
	NextField     string   `json:"nextField,omitempty" yaml:"next_field,omitempty"`
	RelatedFields []string `json:"relatedFields,omitempty" yaml:"related_fields,omitempty"`

	XPath string `json:"xpath" yaml:"xpath"`
}

// PageContext summarizes the page a form lives on.
type PageContext struct {
	URL         string   `json:"url" yaml:"url"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Language    string   `json:"language,omitempty" yaml:"language,omitempty"`
	PageType    PageType `json:"pageType" yaml:"page_type"`
	MainHeading string   `json:"mainHeading,omitempty" yaml:"main_heading,omitempty"`
	FormActions []string `json:"formActions,omitempty" yaml:"form_actions,omitempty"`
	SubmitTexts []string `json:"submitTexts,omitempty" yaml:"submit_texts,omitempty"`
	HasCaptcha  bool     `json:"hasCaptcha" yaml:"has_captcha"`
}

// ScanResult is the output of one form scan.
type ScanResult struct {
	ScanID    string            `json:"scanId" yaml:"scan_id"`
	ScannedAt time.Time         `json:"scannedAt" yaml:"scanned_at"`
	Page      PageContext       `json:"page" yaml:"page"`
	Fields    []FieldDescriptor `json:"fields" yaml:"fields"`
}

// -- Fill Schemas --

// Per-field statuses reported by the injector.
const (
	StatusFilled           = "filled"
	StatusNotFound         = "not found"
	StatusNoMatchingOption = "no matching option"
	StatusSkippedEmail     = "skipped: email-like target"
	StatusFailed           = "failed"
)

// FillResult reports how many controls were written and what happened to each field.
type FillResult struct {
	FilledCount int               `json:"filledCount" yaml:"filled_count"`
	Results     map[string]string `json:"results" yaml:"results"`
}

// NewFillResult returns an empty result ready for recording.
func NewFillResult() FillResult {
	return FillResult{Results: make(map[string]string)}
}
