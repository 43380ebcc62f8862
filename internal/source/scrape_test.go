package source

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hitoshi/claimcheck/internal/security"
)

const scrapeCardTemplate = `
<article class="media-wrapper">
  <h2 class="title"><a href="%s">%s</a></h2>
  <span class="rating-text">%s</span>
</article>`

func newScrapeTestServer(t *testing.T, html string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/" {
			t.Errorf("path = %q, want /search/", r.URL.Path)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, "<html><body>%s</body></html>", html)
	}))
}

func TestScrapeAdapter_Fetch_ExtractsCards(t *testing.T) {
	html := fmt.Sprintf(scrapeCardTemplate,
		"https://www.snopes.com/fact-check/one/", "Did a Shark Swim Down a Highway?", "False")
	server := newScrapeTestServer(t, html)
	defer server.Close()

	var buf bytes.Buffer
	a := NewScrapeAdapter(server.Client(), newTestLogger(&buf), security.NewTextSanitizer(), 5242880)
	a.baseURL = server.URL

	records, err := a.Fetch(context.Background(), "shark highway")
	if err != nil {
		t.Fatalf("Fetch がエラーを返した: %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("件数 = %d, want 1", len(records))
	}

	got := records[0]
	if got.Publisher != "Snopes" {
		t.Errorf("Publisher = %q, want %q", got.Publisher, "Snopes")
	}
	if got.Title != "Did a Shark Swim Down a Highway?" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.URL != "https://www.snopes.com/fact-check/one/" {
		t.Errorf("URL = %q", got.URL)
	}
	if got.Rating != "False" {
		t.Errorf("Rating = %q, want %q", got.Rating, "False")
	}
	if got.Language != "en" {
		t.Errorf("Language = %q, want %q", got.Language, "en")
	}
}

func TestScrapeAdapter_Fetch_CapsAtFiveItems(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 8; i++ {
		fmt.Fprintf(&sb, scrapeCardTemplate,
			fmt.Sprintf("https://www.snopes.com/fact-check/%d/", i),
			fmt.Sprintf("Card %d", i), "True")
	}
	server := newScrapeTestServer(t, sb.String())
	defer server.Close()

	var buf bytes.Buffer
	a := NewScrapeAdapter(server.Client(), newTestLogger(&buf), security.NewTextSanitizer(), 5242880)
	a.baseURL = server.URL

	records, err := a.Fetch(context.Background(), "card")
	if err != nil {
		t.Fatalf("Fetch がエラーを返した: %v", err)
	}

	if len(records) != 5 {
		t.Fatalf("件数 = %d, want 5", len(records))
	}
	// 掲載順が保持される
	if records[0].Title != "Card 0" || records[4].Title != "Card 4" {
		t.Errorf("掲載順が保持されていない: first=%q last=%q", records[0].Title, records[4].Title)
	}
}

func TestScrapeAdapter_Fetch_MissingRatingAndTitleFallBack(t *testing.T) {
	html := `
<article class="media-wrapper">
  <h2 class="title"><a href="https://www.snopes.com/fact-check/no-rating/">No Rating Here</a></h2>
</article>
<article class="media-wrapper">
  <span class="rating-text">Mixture</span>
</article>`
	server := newScrapeTestServer(t, html)
	defer server.Close()

	var buf bytes.Buffer
	a := NewScrapeAdapter(server.Client(), newTestLogger(&buf), security.NewTextSanitizer(), 5242880)
	a.baseURL = server.URL

	records, err := a.Fetch(context.Background(), "q")
	if err != nil {
		t.Fatalf("Fetch がエラーを返した: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("件数 = %d, want 2", len(records))
	}
	if records[0].Rating != "Unrated" {
		t.Errorf("Rating = %q, want %q", records[0].Rating, "Unrated")
	}
	if records[1].Title != "Untitled" {
		t.Errorf("Title = %q, want %q", records[1].Title, "Untitled")
	}
	if records[1].URL != "" {
		t.Errorf("URL = %q, want empty", records[1].URL)
	}
}

func TestScrapeAdapter_Fetch_SanitizesTitleMarkup(t *testing.T) {
	html := `
<article class="media-wrapper">
  <h2 class="title"><a href="https://www.snopes.com/fact-check/markup/">Does <em>This</em> Work &amp; Why?</a></h2>
  <span class="rating-text">True</span>
</article>`
	server := newScrapeTestServer(t, html)
	defer server.Close()

	var buf bytes.Buffer
	a := NewScrapeAdapter(server.Client(), newTestLogger(&buf), security.NewTextSanitizer(), 5242880)
	a.baseURL = server.URL

	records, err := a.Fetch(context.Background(), "q")
	if err != nil {
		t.Fatalf("Fetch がエラーを返した: %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("件数 = %d, want 1", len(records))
	}
	if records[0].Title != "Does This Work & Why?" {
		t.Errorf("Title = %q, want %q", records[0].Title, "Does This Work & Why?")
	}
}

func TestScrapeAdapter_Fetch_NonOKStatus_ReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	var buf bytes.Buffer
	a := NewScrapeAdapter(server.Client(), newTestLogger(&buf), security.NewTextSanitizer(), 5242880)
	a.baseURL = server.URL

	if _, err := a.Fetch(context.Background(), "q"); err == nil {
		t.Fatal("非2xxレスポンスでエラーが返るべき")
	}
}

func TestScrapeAdapter_Fetch_NoMatchingCards_ReturnsEmpty(t *testing.T) {
	server := newScrapeTestServer(t, "<p>No results found.</p>")
	defer server.Close()

	var buf bytes.Buffer
	a := NewScrapeAdapter(server.Client(), newTestLogger(&buf), security.NewTextSanitizer(), 5242880)
	a.baseURL = server.URL

	records, err := a.Fetch(context.Background(), "q")
	if err != nil {
		t.Fatalf("Fetch がエラーを返した: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("件数 = %d, want 0", len(records))
	}
}
