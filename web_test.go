package spiderkit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collectEmits returns an EmitFunc appending to the given slice.
func collectEmits(items *[]Item) EmitFunc {
	return func(it Item) error {
		*items = append(*items, it)
		return nil
	}
}

func TestDownloader_MatchPolicy(t *testing.T) {
	d := NewDownloader(Conf{"allowed_hosts": []string{"example.com"}})

	assert.True(t, d.Match(NewDownloadTask("http://example.com/page")))
	assert.True(t, d.Match(NewDownloadTask("https://EXAMPLE.COM/page")), "host match is case-insensitive")
	assert.False(t, d.Match(NewDownloadTask("http://other.example/page")), "cross-domain is rejected")
	assert.False(t, d.Match(NewDownloadTask("ftp://example.com/file")), "non-http scheme is rejected")
	assert.False(t, d.Match(NewDownloadTask("::nonsense::")))
	assert.False(t, d.Match(NewScrapeTask("http://example.com/", "text/html", "", 200)), "wrong kind")
	assert.False(t, d.Match(nil))

	open := NewDownloader(Conf{})
	assert.True(t, open.Match(NewDownloadTask("http://anything.example/")), "no allowed_hosts allows any host")
}

func TestDownloader_Run(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html><body>hi</body></html>"))
	}))
	defer srv.Close()

	d := NewDownloader(Conf{"user_agent": "spiderkit-test"})
	var items []Item
	require.NoError(t, d.Run(context.Background(), NewDownloadTask(srv.URL+"/page"), collectEmits(&items)))

	assert.Equal(t, "spiderkit-test", gotUA)
	require.Len(t, items, 1)
	scrape, ok := items[0].(*Task)
	require.True(t, ok)
	assert.Equal(t, KindScrape, scrape.Kind())
	assert.Equal(t, srv.URL+"/page", scrape.String("url"))
	assert.Equal(t, "text/html; charset=utf-8", scrape.String("content_type"))
	assert.Contains(t, scrape.String("content"), "hi")
	assert.Equal(t, http.StatusOK, scrape.Int("status"))
}

func TestDownloader_NetworkFailureIsRetry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	d := NewDownloader(Conf{})
	var items []Item
	err := d.Run(context.Background(), NewDownloadTask(srv.URL), collectEmits(&items))
	require.ErrorIs(t, err, ErrRetryTask)
	assert.Empty(t, items)
}

func TestLinkExtractor_Run(t *testing.T) {
	page := `<html><head><title> Fixture </title></head><body>
	<a href="/relative">rel</a>
	<a href="http://example.com/absolute">abs</a>
	<a href="sibling">sib</a>
	<a href="/relative#section">frag dup</a>
	<a href="#top">self</a>
	<a href="mailto:someone@example.com">mail</a>
	<a href="https://other.example/else">other host</a>
	<a href="/relative">plain dup</a>
	</body></html>`

	e := NewLinkExtractor(Conf{})
	task := NewScrapeTask("http://example.com/dir/page", "text/html; charset=utf-8", page, 200)
	require.True(t, e.Match(task))

	var items []Item
	require.NoError(t, e.Run(context.Background(), task, collectEmits(&items)))

	require.NotEmpty(t, items)
	obj, ok := items[0].(*Object)
	require.True(t, ok, "page object is emitted before any task")
	assert.Equal(t, KindPage, obj.Kind())
	title, _ := obj.Get("title")
	assert.Equal(t, "Fixture", title)

	var urls []string
	for _, it := range items[1:] {
		task, ok := it.(*Task)
		require.True(t, ok)
		assert.Equal(t, KindDownload, task.Kind())
		urls = append(urls, task.String("url"))
	}
	assert.Equal(t, []string{
		"http://example.com/relative",
		"http://example.com/absolute",
		"http://example.com/dir/sibling",
		"http://example.com/dir/page", // fragment-only self link, fragment stripped
		"https://other.example/else",  // host filtering belongs to the downloader
	}, urls)
}

func TestLinkExtractor_SkipsNonHTML(t *testing.T) {
	e := NewLinkExtractor(Conf{})
	task := NewScrapeTask("http://example.com/data", "application/json", `{"links":[]}`, 200)

	var items []Item
	err := e.Run(context.Background(), task, collectEmits(&items))
	require.ErrorIs(t, err, ErrSkipRunner)
	assert.Empty(t, items)
}
