package inspect_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/metainspect"
	"github.com/fwojciec/metainspect/goquery"
	mihttp "github.com/fwojciec/metainspect/http"
	"github.com/fwojciec/metainspect/inspect"
	"github.com/fwojciec/metainspect/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspector_Inspect(t *testing.T) {
	t.Parallel()

	t.Run("fetches normalized URL and populates result", func(t *testing.T) {
		t.Parallel()

		var fetched string
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (*metainspect.Response, error) {
				fetched = url
				return &metainspect.Response{
					URL:         url,
					StatusCode:  http.StatusOK,
					ContentType: "text/html",
					Body:        []byte(fullPage),
				}, nil
			},
		}

		inspector := inspect.NewInspector(fetcher, goquery.NewParser())
		result, err := inspector.Inspect(context.Background(), "Example.com")

		require.NoError(t, err)
		assert.Equal(t, "http://example.com/", fetched)
		assert.Equal(t, "http://example.com/", result.URL)
		assert.Equal(t, "http", result.Scheme)
		assert.Equal(t, "example.com", result.Host)
		assert.Equal(t, "http://example.com", result.RootURL)
		require.NotNil(t, result.Response)
		assert.Equal(t, http.StatusOK, result.Response.StatusCode)
		assertValue(t, "Example Page", result.Title)
		assert.Equal(t, []string{"HTML", "CSS", "XML", "JavaScript"}, result.Keywords)
	})

	t.Run("returns EINVALIDURL without fetching", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, string) (*metainspect.Response, error) {
				t.Fatal("fetch must not be called")
				return nil, nil
			},
		}

		result, err := inspect.NewInspector(fetcher, goquery.NewParser()).Inspect(context.Background(), "")

		require.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, metainspect.EINVALIDURL, metainspect.ErrorCode(err))
	})

	t.Run("returns fetch errors without parsing", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, string) (*metainspect.Response, error) {
				return nil, metainspect.StatusErrorf(http.StatusNotFound, "response status code was 404")
			},
		}
		parser := &mock.Parser{
			ParseFn: func([]byte, string) (metainspect.Document, error) {
				t.Fatal("parse must not be called")
				return nil, nil
			},
		}

		result, err := inspect.NewInspector(fetcher, parser).Inspect(context.Background(), "http://example.com")

		require.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, metainspect.ESTATUS, metainspect.ErrorCode(err))
		assert.Equal(t, http.StatusNotFound, metainspect.ErrorStatus(err))
	})

	t.Run("returns parse errors without a partial result", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (*metainspect.Response, error) {
				return &metainspect.Response{URL: url, StatusCode: http.StatusOK}, nil
			},
		}

		result, err := inspect.NewInspector(fetcher, goquery.NewParser()).Inspect(context.Background(), "http://example.com")

		require.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, metainspect.EPARSE, metainspect.ErrorCode(err))
	})
}

func TestInspector_EndToEnd(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/simple", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `<html><head><title>Simple</title>
			<meta name="keywords" content="HTML,CSS,XML,JavaScript"></head>
			<body><img src="images/a.png"></body></html>`)
	})
	mux.HandleFunc("/plain", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><title>Plain</title></head></html>`)
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/error", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("/huge", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body>"+strings.Repeat("<p>filler</p>", 1000)+"</body></html>")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	inspector := inspect.NewInspector(
		mihttp.NewFetcher(metainspect.Options{MaxBytes: 4096}),
		goquery.NewParser(),
	)
	host := strings.TrimPrefix(server.URL, "http://")

	t.Run("resolves keywords and absolute images", func(t *testing.T) {
		result, err := inspector.Inspect(context.Background(), host+"/simple")

		require.NoError(t, err)
		assertValue(t, "Simple", result.Title)
		assert.Equal(t, []string{"HTML", "CSS", "XML", "JavaScript"}, result.Keywords)
		assert.Equal(t, []string{server.URL + "/images/a.png"}, result.Images)
	})

	t.Run("resolves keywords to empty when absent", func(t *testing.T) {
		result, err := inspector.Inspect(context.Background(), server.URL+"/plain")

		require.NoError(t, err)
		assert.Equal(t, []string{}, result.Keywords)
		assert.False(t, result.Author.Valid())
	})

	t.Run("fails with ESTATUS on 404 and 500", func(t *testing.T) {
		for path, code := range map[string]int{"/missing": 404, "/error": 500} {
			result, err := inspector.Inspect(context.Background(), server.URL+path)

			require.Error(t, err)
			assert.Nil(t, result)
			assert.Equal(t, metainspect.ESTATUS, metainspect.ErrorCode(err))
			assert.Equal(t, code, metainspect.ErrorStatus(err))
		}
	})

	t.Run("fails with ETOOLARGE when body exceeds max bytes", func(t *testing.T) {
		result, err := inspector.Inspect(context.Background(), server.URL+"/huge")

		require.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, metainspect.ETOOLARGE, metainspect.ErrorCode(err))
	})

	t.Run("independent inspections do not share state", func(t *testing.T) {
		before := hits.Load()
		outcomes := inspector.InspectAll(context.Background(), []string{
			server.URL + "/simple",
			server.URL + "/plain",
			server.URL + "/simple",
		}, 3)

		require.Len(t, outcomes, 3)
		for _, o := range outcomes {
			require.NoError(t, o.Err)
		}
		assertValue(t, "Simple", outcomes[0].Result.Title)
		assertValue(t, "Plain", outcomes[1].Result.Title)
		assertValue(t, "Simple", outcomes[2].Result.Title)
		assert.NotSame(t, outcomes[0].Result, outcomes[2].Result)
		assert.Equal(t, before+2, hits.Load())
	})
}

func TestInspector_InspectAll(t *testing.T) {
	t.Parallel()

	t.Run("keeps input order and reports failures per URL", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (*metainspect.Response, error) {
				if strings.Contains(url, "bad") {
					return nil, metainspect.WrapError(metainspect.ENETWORK, errors.New("connection refused"), "fetching %s", url)
				}
				return &metainspect.Response{
					URL:        url,
					StatusCode: http.StatusOK,
					Body:       []byte("<title>" + url + "</title>"),
				}, nil
			},
		}

		outcomes := inspect.NewInspector(fetcher, goquery.NewParser()).
			InspectAll(context.Background(), []string{"a.com", "bad.com", "c.com"}, 0)

		require.Len(t, outcomes, 3)
		assert.Equal(t, "a.com", outcomes[0].URL)
		require.NoError(t, outcomes[0].Err)
		assertValue(t, "http://a.com/", outcomes[0].Result.Title)

		assert.Equal(t, metainspect.ENETWORK, metainspect.ErrorCode(outcomes[1].Err))
		assert.Nil(t, outcomes[1].Result)

		require.NoError(t, outcomes[2].Err)
		assertValue(t, "http://c.com/", outcomes[2].Result.Title)
	})
}
