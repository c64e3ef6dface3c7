package spiderkit

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// Web crawling runners built on the core contracts. They are collaborators,
// not part of the dispatch core: a crawl that needs different fetch or
// extraction behavior replaces them with its own runners.

// Task and object kinds used by the web runners.
const (
	KindDownload = "download"
	KindScrape   = "scrape"
	KindPage     = "page"
)

// NewDownloadTask creates a task asking for url to be fetched. Identity is
// derived from the kind and the URL, so the same URL is fetched once.
func NewDownloadTask(rawURL string) *Task {
	return NewTask(KindDownload, map[string]any{"url": rawURL})
}

// NewScrapeTask creates a task carrying a fetched page for extraction.
func NewScrapeTask(rawURL, contentType, content string, status int) *Task {
	return NewTask(KindScrape, map[string]any{
		"url":          rawURL,
		"content_type": contentType,
		"content":      content,
		"status":       status,
	})
}

// Downloader fetches download tasks over HTTP and yields one scrape task per
// fetched page.
//
// Conf keys: "http_client" (*http.Client, defaults to http.DefaultClient),
// "user_agent" (string), "allowed_hosts" ([]string; empty allows any host),
// "max_body" (int, response body byte cap, default 1 MiB).
type Downloader struct {
	BaseRunner
}

// NewDownloader creates a Downloader with the given configuration.
func NewDownloader(conf Conf) *Downloader {
	return &Downloader{BaseRunner: NewBaseRunner(conf)}
}

// Match accepts download tasks whose URL is http(s) on an allowed host.
// Cross-domain and unfetchable URLs are rejected here, before any request
// happens.
func (d *Downloader) Match(t *Task) bool {
	return MatchAll(d.BaseRunner.Match, MatchKind(KindDownload), d.allowed)(t)
}

func (d *Downloader) allowed(t *Task) bool {
	u, err := url.Parse(t.String("url"))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	hosts := d.Conf.Strings("allowed_hosts")
	if len(hosts) == 0 {
		return true
	}
	for _, h := range hosts {
		if strings.EqualFold(u.Host, h) {
			return true
		}
	}
	return false
}

// Run fetches the task's URL. Network failures are reported as retries;
// the response, whatever its status, becomes a scrape task.
func (d *Downloader) Run(ctx context.Context, t *Task, emit EmitFunc) error {
	client, _ := d.Conf.Value("http_client")
	hc, ok := client.(*http.Client)
	if !ok {
		hc = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.String("url"), nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrAbortTask, err)
	}
	if ua := d.Conf.String("user_agent", ""); ua != "" {
		req.Header.Set("User-Agent", ua)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: fetch %s: %v", ErrRetryTask, t.String("url"), err)
	}
	defer resp.Body.Close()

	maxBody := int64(d.Conf.Int("max_body", 1<<20))
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", ErrRetryTask, t.String("url"), err)
	}

	// resp.Request.URL reflects redirects; links must resolve against it.
	final := resp.Request.URL.String()
	return emit(NewScrapeTask(final, resp.Header.Get("Content-Type"), string(body), resp.StatusCode))
}

// LinkExtractor walks HTML scrape tasks, yields a page object describing the
// document and one download task per extracted link. Links are resolved
// against the page URL, fragments are stripped, non-http(s) schemes are
// dropped and duplicates within the page are collapsed. A fragment-only link
// resolves back to the page itself and the queue's seen set absorbs it.
//
// Non-HTML content is declined at execution time (ErrSkipRunner), since the
// content type is only known once the page was fetched.
type LinkExtractor struct {
	BaseRunner
}

// NewLinkExtractor creates a LinkExtractor with the given configuration.
func NewLinkExtractor(conf Conf) *LinkExtractor {
	return &LinkExtractor{BaseRunner: NewBaseRunner(conf)}
}

// Match accepts scrape tasks.
func (e *LinkExtractor) Match(t *Task) bool {
	return MatchAll(e.BaseRunner.Match, MatchKind(KindScrape))(t)
}

// Run parses the page and emits the page object followed by download tasks.
func (e *LinkExtractor) Run(ctx context.Context, t *Task, emit EmitFunc) error {
	ct, _, err := mime.ParseMediaType(t.String("content_type"))
	if err != nil || ct != "text/html" {
		return ErrSkipRunner
	}

	base, err := url.Parse(t.String("url"))
	if err != nil {
		return fmt.Errorf("%w: bad page url %q: %v", ErrAbortTask, t.String("url"), err)
	}

	doc, err := html.Parse(strings.NewReader(t.String("content")))
	if err != nil {
		return fmt.Errorf("parse %s: %w", base, err)
	}

	links := extractLinks(doc, base)

	if err := emit(NewObject(KindPage, map[string]any{
		"url":    base.String(),
		"title":  pageTitle(doc),
		"status": t.Int("status"),
		"links":  len(links),
	})); err != nil {
		return err
	}

	for _, link := range links {
		if err := emit(NewDownloadTask(link)); err != nil {
			return err
		}
	}
	return nil
}

// extractLinks collects the distinct fetchable links of the document, in
// document order, resolved against base with fragments removed.
func extractLinks(doc *html.Node, base *url.URL) []string {
	var links []string
	seen := make(map[string]struct{})

	descendants(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.Data != "a" {
			return true
		}
		for _, attr := range n.Attr {
			if attr.Key != "href" {
				continue
			}
			ref, err := url.Parse(strings.TrimSpace(attr.Val))
			if err != nil {
				continue
			}
			u := base.ResolveReference(ref)
			if u.Scheme != "http" && u.Scheme != "https" {
				continue
			}
			u.Fragment = ""
			link := u.String()
			if _, dup := seen[link]; dup {
				continue
			}
			seen[link] = struct{}{}
			links = append(links, link)
		}
		return true
	})
	return links
}

// descendants visits the descendants of n in depth-first preorder, stopping
// when visit returns false. It matches html.Node.Descendants, which needs the
// go1.23 range-over-func support this toolchain lacks.
func descendants(n *html.Node, visit func(*html.Node) bool) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !visit(c) || !descendants(c, visit) {
			return false
		}
	}
	return true
}

// pageTitle returns the text of the first <title> element, or "".
func pageTitle(doc *html.Node) string {
	title := ""
	descendants(doc, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "title" {
			if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				title = strings.TrimSpace(n.FirstChild.Data)
			}
			return false
		}
		return true
	})
	return title
}
