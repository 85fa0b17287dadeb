package etree_test

import (
	"bytes"
	"testing"

	beevik "github.com/beevik/etree"
	"github.com/fwojciec/metainspect"
	"github.com/fwojciec/metainspect/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResult() *metainspect.Result {
	r := metainspect.NewResult(&metainspect.Target{
		URL:     "http://example.com/",
		Scheme:  "http",
		Host:    "example.com",
		RootURL: "http://example.com",
	})
	r.Response = &metainspect.Response{URL: "http://example.com/", StatusCode: 200, ContentType: "text/html"}
	r.Title = metainspect.Some("Fish & Chips")
	r.Keywords = []string{"HTML", "CSS"}
	r.Links = []string{}
	r.Images = []string{"http://example.com/a.png"}
	r.Feeds = []string{}
	return r
}

func TestEncoder_Encode(t *testing.T) {
	t.Parallel()

	t.Run("writes one result element per result", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := etree.NewEncoder(&buf).Encode([]*metainspect.Result{newResult(), newResult()})
		require.NoError(t, err)

		doc := beevik.NewDocument()
		require.NoError(t, doc.ReadFromBytes(buf.Bytes()))
		assert.Len(t, doc.FindElements("/results/result"), 2)
	})

	t.Run("encodes attributes, scalars and lists", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, etree.NewEncoder(&buf).Encode([]*metainspect.Result{newResult()}))

		doc := beevik.NewDocument()
		require.NoError(t, doc.ReadFromBytes(buf.Bytes()))
		result := doc.FindElement("/results/result")
		require.NotNil(t, result)

		assert.Equal(t, "http://example.com/", result.SelectAttrValue("url", ""))
		assert.Equal(t, "example.com", result.SelectAttrValue("host", ""))
		assert.Equal(t, "200", result.FindElement("response").SelectAttrValue("statusCode", ""))
		assert.Equal(t, "Fish & Chips", result.FindElement("title").Text())

		var keywords []string
		for _, item := range result.FindElements("keywords/item") {
			keywords = append(keywords, item.Text())
		}
		assert.Equal(t, []string{"HTML", "CSS"}, keywords)
		assert.NotNil(t, result.FindElement("feeds"))
		assert.Empty(t, result.FindElements("feeds/item"))
	})

	t.Run("omits absent scalar fields", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, etree.NewEncoder(&buf).Encode([]*metainspect.Result{newResult()}))

		assert.NotContains(t, buf.String(), "<author")
		assert.Contains(t, buf.String(), "Fish &amp; Chips")
	})

	t.Run("writes an empty document for no results", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, etree.NewEncoder(&buf).Encode(nil))

		assert.Contains(t, buf.String(), `<?xml version="1.0" encoding="UTF-8"?>`)
		assert.Contains(t, buf.String(), "<results/>")
	})
}
