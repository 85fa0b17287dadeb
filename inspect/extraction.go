package inspect

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/metainspect"
)

// MinDescriptionLength is the minimum length, in characters, of a paragraph
// used as a fallback description.
const MinDescriptionLength = 120

// memo caches the first computed value. Not safe for concurrent use.
type memo[T any] struct {
	done  bool
	value T
}

func (m *memo[T]) get(compute func() T) T {
	if !m.done {
		m.value = compute()
		m.done = true
	}
	return m.value
}

// Extraction extracts metadata fields from one parsed document.
//
// Every field is computed on first access and cached; later calls return
// the cached value without querying the document again. An Extraction
// belongs to a single inspection and must not be shared between goroutines.
type Extraction struct {
	doc     metainspect.Document
	rootURL string
	logger  *slog.Logger

	title                memo[metainspect.Optional[string]]
	favicon              memo[metainspect.Optional[string]]
	appleTouchIcon       memo[metainspect.Optional[string]]
	ogTitle              memo[metainspect.Optional[string]]
	ogDescription        memo[metainspect.Optional[string]]
	ogType               memo[metainspect.Optional[string]]
	ogUpdatedTime        memo[metainspect.Optional[string]]
	ogLocale             memo[metainspect.Optional[string]]
	links                memo[[]string]
	metaDescription      memo[metainspect.Optional[string]]
	secondaryDescription memo[metainspect.Optional[string]]
	description          memo[metainspect.Optional[string]]
	keywords             memo[[]string]
	author               memo[metainspect.Optional[string]]
	charset              memo[metainspect.Optional[string]]
	image                memo[metainspect.Optional[string]]
	images               memo[[]string]
	feeds                memo[[]string]
	themeColor           memo[metainspect.Optional[string]]
	twitterCreator       memo[metainspect.Optional[string]]
}

// NewExtraction returns an Extraction over doc. Relative URLs are resolved
// against rootURL. A nil logger discards debug output.
func NewExtraction(doc metainspect.Document, rootURL string, logger *slog.Logger) *Extraction {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Extraction{doc: doc, rootURL: rootURL, logger: logger}
}

// Populate extracts every field into r and returns it.
func (e *Extraction) Populate(r *metainspect.Result) *metainspect.Result {
	r.Title = e.Title()
	r.Author = e.Author()
	r.Charset = e.Charset()
	r.Keywords = e.Keywords()
	r.Links = e.Links()
	r.Description = e.Description()
	r.Favicon = e.Favicon()
	r.AppleTouchIcon = e.AppleTouchIcon()
	r.Image = e.Image()
	r.Images = e.Images()
	r.Feeds = e.Feeds()
	r.ThemeColor = e.ThemeColor()
	r.OgTitle = e.OgTitle()
	r.OgDescription = e.OgDescription()
	r.OgType = e.OgType()
	r.OgUpdatedTime = e.OgUpdatedTime()
	r.OgLocale = e.OgLocale()
	r.TwitterCreator = e.TwitterCreator()
	return r
}

// Title returns the text of the first head > title element as written.
func (e *Extraction) Title() metainspect.Optional[string] {
	return e.title.get(func() metainspect.Optional[string] {
		e.logger.Debug("parsing page title")
		els := e.doc.Query("head > title")
		if len(els) == 0 {
			return metainspect.None[string]()
		}
		return metainspect.Some(els[0].Text())
	})
}

// Favicon returns the icon link, falling back to the legacy "shortcut icon".
func (e *Extraction) Favicon() metainspect.Optional[string] {
	return e.favicon.get(func() metainspect.Optional[string] {
		e.logger.Debug("parsing page favicon")
		if href := e.attr(`link[rel="icon"]`, "href"); href.OrElse("") != "" {
			return e.absolute(href)
		}
		if href := e.attr(`link[rel="shortcut icon"]`, "href"); href.OrElse("") != "" {
			return e.absolute(href)
		}
		return metainspect.None[string]()
	})
}

// AppleTouchIcon returns the apple-touch-icon link.
func (e *Extraction) AppleTouchIcon() metainspect.Optional[string] {
	return e.appleTouchIcon.get(func() metainspect.Optional[string] {
		e.logger.Debug("parsing page apple-touch-icon")
		if href := e.attr(`link[rel="apple-touch-icon"]`, "href"); href.OrElse("") != "" {
			return e.absolute(href)
		}
		return metainspect.None[string]()
	})
}

// OgTitle returns the og:title property.
func (e *Extraction) OgTitle() metainspect.Optional[string] {
	return e.ogTitle.get(func() metainspect.Optional[string] {
		e.logger.Debug("parsing page Open Graph title")
		return e.attr(`meta[property="og:title"]`, "content")
	})
}

// OgDescription returns the og:description property.
func (e *Extraction) OgDescription() metainspect.Optional[string] {
	return e.ogDescription.get(func() metainspect.Optional[string] {
		e.logger.Debug("parsing page Open Graph description")
		return e.attr(`meta[property="og:description"]`, "content")
	})
}

// OgType returns the og:type property.
func (e *Extraction) OgType() metainspect.Optional[string] {
	return e.ogType.get(func() metainspect.Optional[string] {
		e.logger.Debug("parsing page Open Graph type")
		return e.attr(`meta[property="og:type"]`, "content")
	})
}

// OgUpdatedTime returns the og:updated_time property.
func (e *Extraction) OgUpdatedTime() metainspect.Optional[string] {
	return e.ogUpdatedTime.get(func() metainspect.Optional[string] {
		e.logger.Debug("parsing page Open Graph updated time")
		return e.attr(`meta[property="og:updated_time"]`, "content")
	})
}

// OgLocale returns the og:locale property.
func (e *Extraction) OgLocale() metainspect.Optional[string] {
	return e.ogLocale.get(func() metainspect.Optional[string] {
		e.logger.Debug("parsing page Open Graph locale")
		return e.attr(`meta[property="og:locale"]`, "content")
	})
}

// Links returns the raw href of every anchor, unresolved.
func (e *Extraction) Links() []string {
	return e.links.get(func() []string {
		e.logger.Debug("parsing page links")
		return e.attrs("a", "href")
	})
}

// MetaDescription returns the description meta tag.
func (e *Extraction) MetaDescription() metainspect.Optional[string] {
	return e.metaDescription.get(func() metainspect.Optional[string] {
		e.logger.Debug("parsing page description based on meta elements")
		return e.attr(`meta[name="description"]`, "content")
	})
}

// SecondaryDescription returns the text of the first paragraph at least
// MinDescriptionLength characters long. Surrounding whitespace counts
// towards the length and is kept.
func (e *Extraction) SecondaryDescription() metainspect.Optional[string] {
	return e.secondaryDescription.get(func() metainspect.Optional[string] {
		e.logger.Debug("parsing page secondary description")
		for _, p := range e.doc.Query("p") {
			text := p.Text()
			if utf8.RuneCountInString(text) >= MinDescriptionLength {
				return metainspect.Some(text)
			}
		}
		return metainspect.None[string]()
	})
}

// Description prefers a non-empty meta description and falls back to the
// secondary description.
func (e *Extraction) Description() metainspect.Optional[string] {
	return e.description.get(func() metainspect.Optional[string] {
		e.logger.Debug("parsing page description based on meta description or secondary description")
		meta := e.MetaDescription()
		if meta.OrElse("") != "" {
			return meta
		}
		if secondary := e.SecondaryDescription(); secondary.Valid() {
			return secondary
		}
		return meta
	})
}

// Keywords splits the keywords meta tag on commas. It is empty, not nil,
// when the tag is missing or empty.
func (e *Extraction) Keywords() []string {
	return e.keywords.get(func() []string {
		e.logger.Debug("parsing page keywords")
		content := e.attr(`meta[name="keywords"]`, "content").OrElse("")
		if content == "" {
			return []string{}
		}
		return strings.Split(content, ",")
	})
}

// Author returns the author meta tag.
func (e *Extraction) Author() metainspect.Optional[string] {
	return e.author.get(func() metainspect.Optional[string] {
		e.logger.Debug("parsing page author")
		return e.attr(`meta[name="author"]`, "content")
	})
}

// Charset returns the charset declared by a meta charset tag.
func (e *Extraction) Charset() metainspect.Optional[string] {
	return e.charset.get(func() metainspect.Optional[string] {
		e.logger.Debug("parsing page charset")
		return e.attr("meta[charset]", "charset")
	})
}

// Image returns the og:image property, accepting the common
// name="og:image" mistake as a fallback.
func (e *Extraction) Image() metainspect.Optional[string] {
	return e.image.get(func() metainspect.Optional[string] {
		e.logger.Debug("parsing page image based on the Open Graph image")
		if img := e.attr(`meta[property="og:image"]`, "content"); img.OrElse("") != "" {
			return e.absolute(img)
		}
		if img := e.attr(`meta[name="og:image"]`, "content"); img.OrElse("") != "" {
			return e.absolute(img)
		}
		return metainspect.None[string]()
	})
}

// Images returns the absolute src of every img element.
func (e *Extraction) Images() []string {
	return e.images.get(func() []string {
		e.logger.Debug("parsing page body images")
		srcs := e.attrs("img", "src")
		images := make([]string, 0, len(srcs))
		for _, src := range srcs {
			if src == "" {
				continue
			}
			images = append(images, AbsolutePath(e.rootURL, src))
		}
		return images
	})
}

// Feeds returns RSS feed links, or Atom feed links when there are none.
func (e *Extraction) Feeds() []string {
	return e.feeds.get(func() []string {
		e.logger.Debug("parsing page feeds based on rss or atom feeds")
		if rss := e.attrs(`link[type="application/rss+xml"]`, "href"); len(rss) > 0 {
			return rss
		}
		return e.attrs(`link[type="application/atom+xml"]`, "href")
	})
}

// ThemeColor returns the theme-color meta tag.
func (e *Extraction) ThemeColor() metainspect.Optional[string] {
	return e.themeColor.get(func() metainspect.Optional[string] {
		e.logger.Debug("parsing page theme color")
		return e.attr(`meta[name="theme-color"]`, "content")
	})
}

// TwitterCreator returns the twitter:creator property.
func (e *Extraction) TwitterCreator() metainspect.Optional[string] {
	return e.twitterCreator.get(func() metainspect.Optional[string] {
		e.logger.Debug("parsing twitter creator")
		return e.attr(`meta[property="twitter:creator"]`, "content")
	})
}

// attr returns the attribute of the first element matching selector.
// It is absent when nothing matches or the first match lacks the attribute.
func (e *Extraction) attr(selector, name string) metainspect.Optional[string] {
	els := e.doc.Query(selector)
	if len(els) == 0 {
		return metainspect.None[string]()
	}
	v, ok := els[0].Attr(name)
	if !ok {
		return metainspect.None[string]()
	}
	return metainspect.Some(v)
}

// attrs returns the attribute of every matching element that has it.
func (e *Extraction) attrs(selector, name string) []string {
	els := e.doc.Query(selector)
	values := make([]string, 0, len(els))
	for _, el := range els {
		if v, ok := el.Attr(name); ok {
			values = append(values, v)
		}
	}
	return values
}

func (e *Extraction) absolute(href metainspect.Optional[string]) metainspect.Optional[string] {
	v, ok := href.Get()
	if !ok {
		return href
	}
	return metainspect.Some(AbsolutePath(e.rootURL, v))
}
