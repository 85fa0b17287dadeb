package metainspect

// Result is the aggregate produced by inspecting one page.
//
// A Result is only handed out once every field has been extracted. Scalar
// fields are absent when the page does not provide them; sequence fields are
// empty, never nil.
type Result struct {
	URL     string `json:"url" yaml:"url"`
	Scheme  string `json:"scheme" yaml:"scheme"`
	Host    string `json:"host" yaml:"host"`
	RootURL string `json:"rootUrl" yaml:"rootUrl"`

	Response *Response `json:"response,omitempty" yaml:"response,omitempty"`

	Title          Optional[string] `json:"title" yaml:"title"`
	Author         Optional[string] `json:"author" yaml:"author"`
	Charset        Optional[string] `json:"charset" yaml:"charset"`
	Keywords       []string         `json:"keywords" yaml:"keywords"`
	Links          []string         `json:"links" yaml:"links"`
	Description    Optional[string] `json:"description" yaml:"description"`
	Favicon        Optional[string] `json:"favicon" yaml:"favicon"`
	AppleTouchIcon Optional[string] `json:"appleTouchIcon" yaml:"appleTouchIcon"`
	Image          Optional[string] `json:"image" yaml:"image"`
	Images         []string         `json:"images" yaml:"images"`
	Feeds          []string         `json:"feeds" yaml:"feeds"`
	ThemeColor     Optional[string] `json:"themeColor" yaml:"themeColor"`
	OgTitle        Optional[string] `json:"ogTitle" yaml:"ogTitle"`
	OgDescription  Optional[string] `json:"ogDescription" yaml:"ogDescription"`
	OgType         Optional[string] `json:"ogType" yaml:"ogType"`
	OgUpdatedTime  Optional[string] `json:"ogUpdatedTime" yaml:"ogUpdatedTime"`
	OgLocale       Optional[string] `json:"ogLocale" yaml:"ogLocale"`
	TwitterCreator Optional[string] `json:"twitterCreator" yaml:"twitterCreator"`
}

// NewResult returns a Result for the target with no fields extracted yet.
func NewResult(t *Target) *Result {
	return &Result{
		URL:     t.URL,
		Scheme:  t.Scheme,
		Host:    t.Host,
		RootURL: t.RootURL,
	}
}

// Field is a named, formatted Result field used for display.
type Field struct {
	Name   string
	Values []string
	Valid  bool
	List   bool
}

// Fields returns the extracted fields in a stable display order.
func (r *Result) Fields() []Field {
	scalar := func(name string, o Optional[string]) Field {
		v, ok := o.Get()
		if !ok {
			return Field{Name: name}
		}
		return Field{Name: name, Values: []string{v}, Valid: true}
	}
	list := func(name string, vs []string) Field {
		return Field{Name: name, Values: vs, Valid: true, List: true}
	}
	return []Field{
		scalar("title", r.Title),
		scalar("description", r.Description),
		scalar("author", r.Author),
		scalar("charset", r.Charset),
		list("keywords", r.Keywords),
		scalar("favicon", r.Favicon),
		scalar("appleTouchIcon", r.AppleTouchIcon),
		scalar("image", r.Image),
		list("images", r.Images),
		list("feeds", r.Feeds),
		list("links", r.Links),
		scalar("themeColor", r.ThemeColor),
		scalar("ogTitle", r.OgTitle),
		scalar("ogDescription", r.OgDescription),
		scalar("ogType", r.OgType),
		scalar("ogUpdatedTime", r.OgUpdatedTime),
		scalar("ogLocale", r.OgLocale),
		scalar("twitterCreator", r.TwitterCreator),
	}
}

// Encoder writes results in a serialization format.
type Encoder interface {
	Encode(results []*Result) error
}
