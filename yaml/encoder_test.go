package yaml_test

import (
	"bytes"
	"testing"

	"github.com/fwojciec/metainspect"
	miyaml "github.com/fwojciec/metainspect/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEncoder_Encode(t *testing.T) {
	t.Parallel()

	t.Run("encodes values, nulls and lists", func(t *testing.T) {
		t.Parallel()

		r := metainspect.NewResult(&metainspect.Target{
			URL:     "http://example.com/",
			Scheme:  "http",
			Host:    "example.com",
			RootURL: "http://example.com",
		})
		r.Title = metainspect.Some("Example")
		r.Keywords = []string{"HTML", "CSS"}
		r.Links = []string{}

		var buf bytes.Buffer
		require.NoError(t, miyaml.NewEncoder(&buf).Encode([]*metainspect.Result{r}))

		var decoded []map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		require.Len(t, decoded, 1)
		got := decoded[0]
		assert.Equal(t, "http://example.com/", got["url"])
		assert.Equal(t, "Example", got["title"])
		assert.Contains(t, got, "author")
		assert.Nil(t, got["author"])
		assert.Equal(t, []any{"HTML", "CSS"}, got["keywords"])
		assert.Equal(t, []any{}, got["links"])
		assert.NotContains(t, got, "response")
	})

	t.Run("encodes no results as an empty sequence", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, miyaml.NewEncoder(&buf).Encode(nil))

		assert.Equal(t, "[]\n", buf.String())
	})
}
