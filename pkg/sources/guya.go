package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kerbaras/guya/pkg/data"
)

const (
	DefaultAPIURL = "https://guya.moe"

	detailConcurrency = 4
)

// seriesSummary is one entry of /api/get_all_series/, keyed by title.
type seriesSummary struct {
	Slug string `json:"slug"`
}

type series struct {
	Slug        string                   `json:"slug"`
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	Author      string                   `json:"author"`
	Artist      string                   `json:"artist"`
	Cover       string                   `json:"cover"`
	Groups      map[string]string        `json:"groups"`
	Chapters    map[string]seriesChapter `json:"chapters"`
}

type seriesChapter struct {
	Volume number              `json:"volume"`
	Title  string              `json:"title"`
	Folder string              `json:"folder"`
	Groups map[string][]string `json:"groups"`
}

// number accepts a JSON number, a numeric string, an empty string or null.
// Missing values decode to 0.
type number float64

func (n *number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = 0
		return nil
	}
	s := string(b)
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
		if s == "" {
			*n = 0
			return nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %s", b)
	}
	*n = number(f)
	return nil
}

// Guya reads the catalogue from the guya.moe JSON API.
type Guya struct {
	client  *http.Client
	baseURL string
	log     *zap.SugaredLogger
}

func NewGuya(baseURL string, client *http.Client, log *zap.SugaredLogger) *Guya {
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Guya{client: client, baseURL: strings.TrimRight(baseURL, "/"), log: log}
}

func (g *Guya) get(ctx context.Context, path string, v any) error {
	u := g.baseURL + path
	body, err := get(ctx, g.client, u, http.Header{"Accept": {"application/json"}})
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &FetchError{Kind: KindMalformed, URL: u, Err: err}
	}
	return nil
}

// Books fetches the series list and then every series in parallel. The
// result is ordered by title; callers apply their own priority order. A
// series whose data cannot be built is logged and left out, while transport
// and status failures fail the whole catalogue.
func (g *Guya) Books(ctx context.Context) ([]*data.Book, error) {
	var all map[string]seriesSummary
	if err := g.get(ctx, "/api/get_all_series/", &all); err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(all))
	for title := range all {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	books := make([]*data.Book, len(titles))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(detailConcurrency)
	for i, title := range titles {
		slug := all[title].Slug
		eg.Go(func() error {
			book, err := g.Book(ctx, slug)
			if isBadSeries(err) {
				g.log.Warnw("skipping series", "title", title, "slug", slug, "err", err)
				return nil
			}
			if err != nil {
				return err
			}
			books[i] = book
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	books = slices.DeleteFunc(books, func(b *data.Book) bool { return b == nil })

	g.log.Debugw("fetched catalogue", "books", len(books))
	return books, nil
}

// isBadSeries reports whether err comes from one series' own data rather
// than from reaching the server.
func isBadSeries(err error) bool {
	return errors.Is(err, data.ErrInvalidCatalog) || IsKind(err, KindMalformed)
}

// Book fetches one series and builds it.
func (g *Guya) Book(ctx context.Context, slug string) (*data.Book, error) {
	if slug == "" {
		return nil, fmt.Errorf("%w: series without slug", data.ErrInvalidCatalog)
	}
	var s series
	if err := g.get(ctx, "/api/series/"+url.PathEscape(slug)+"/", &s); err != nil {
		return nil, err
	}
	if s.Slug == "" {
		s.Slug = slug
	}
	return s.toBook()
}

func (s *series) toBook() (*data.Book, error) {
	b := data.NewBookBuilder(data.BookInfo{
		ID:          s.Slug,
		Title:       s.Title,
		Description: plainText(s.Description),
		Author:      s.Author,
		Artist:      s.Artist,
		Cover:       s.Cover,
	})

	groupIDs := make([]string, 0, len(s.Groups))
	for id := range s.Groups {
		groupIDs = append(groupIDs, id)
	}
	sortIdentifiers(groupIDs)
	for _, id := range groupIDs {
		b.AddGroup(data.Group{ID: id, Name: s.Groups[id]})
	}

	for key, ch := range s.Chapters {
		n, err := strconv.ParseFloat(key, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: book %q: chapter key %q is not a number", data.ErrInvalidCatalog, s.Slug, key)
		}
		b.AddChapter(n, float64(ch.Volume), ch.Title, ch.Folder)

		// releases follow group order so the fallback release is stable
		for _, id := range groupIDs {
			if files, ok := ch.Groups[id]; ok {
				b.AddRelease(n, id, files...)
			}
		}
		for id := range ch.Groups {
			if _, known := s.Groups[id]; !known {
				return nil, fmt.Errorf("%w: book %q: chapter %s released by unknown group %q", data.ErrInvalidCatalog, s.Slug, key, id)
			}
		}
	}

	return b.Build()
}

// plainText strips the markup some descriptions carry and decodes their
// entities.
func plainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	doc.Find("br").ReplaceWithHtml("\n")
	return strings.TrimSpace(doc.Text())
}

// sortIdentifiers orders numeric identifiers numerically and the rest
// lexically after them.
func sortIdentifiers(ids []string) {
	sort.SliceStable(ids, func(i, j int) bool {
		a, aerr := strconv.Atoi(ids[i])
		b, berr := strconv.Atoi(ids[j])
		switch {
		case aerr == nil && berr == nil:
			return a < b
		case aerr == nil:
			return true
		case berr == nil:
			return false
		}
		return ids[i] < ids[j]
	})
}
