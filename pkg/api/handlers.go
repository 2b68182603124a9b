package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kerbaras/guya/pkg/data"
	"github.com/kerbaras/guya/pkg/navigation"
	"github.com/kerbaras/guya/pkg/sources"
)

type handler struct {
	catalog Catalog
	prefs   Preferences
	links   sources.Links
	log     *zap.SugaredLogger
}

type bookSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author,omitempty"`
	Artist   string `json:"artist,omitempty"`
	Cover    string `json:"cover"`
	Chapters int    `json:"chapter_count"`
}

type groupView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type releaseView struct {
	Group string `json:"group"`
	Pages int    `json:"pages"`
}

type chapterView struct {
	Number   float64       `json:"number"`
	Title    string        `json:"title,omitempty"`
	Volume   float64       `json:"volume"`
	Comments string        `json:"comments"`
	Releases []releaseView `json:"releases"`
}

type volumeView struct {
	Number   float64   `json:"number"`
	Chapters []float64 `json:"chapters"`
}

type bookView struct {
	bookSummary
	Description string        `json:"description,omitempty"`
	Groups      []groupView   `json:"groups"`
	Volumes     []volumeView  `json:"volumes"`
	Chapters    []chapterView `json:"chapters"`
}

type pageView struct {
	Book            string               `json:"book"`
	Chapter         float64              `json:"chapter"`
	Page            int                  `json:"page"`
	Group           string               `json:"group"`
	PagesInRelease  int                  `json:"pages_in_release"`
	Image           string               `json:"image"`
	Preview         string               `json:"preview"`
	Web             string               `json:"web"`
	NextPage        *navigation.Location `json:"next_page"`
	PreviousPage    *navigation.Location `json:"previous_page"`
	NextChapter     *navigation.Location `json:"next_chapter"`
	PreviousChapter *navigation.Location `json:"previous_chapter"`
}

func (h *handler) summary(b *data.Book) bookSummary {
	return bookSummary{
		ID:       b.ID,
		Title:    b.Title,
		Author:   b.Author,
		Artist:   b.Artist,
		Cover:    h.links.Cover(b),
		Chapters: len(b.Chapters()),
	}
}

func (h *handler) chapter(b *data.Book, cid data.ChapterID) chapterView {
	c := b.Chapter(cid)
	comments, _ := h.links.Comments(b, cid)
	view := chapterView{
		Number:   c.Number,
		Title:    c.Title,
		Volume:   b.Volume(c.Volume).Number,
		Comments: comments,
		Releases: make([]releaseView, 0, len(c.Releases)),
	}
	for _, rid := range c.Releases {
		view.Releases = append(view.Releases, releaseView{Group: b.Release(rid).Group, Pages: b.NumberOfPages(rid)})
	}
	return view
}

func (h *handler) listBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.catalog.Books(r.Context(), r.URL.Query().Get("refresh") == "")
	if err != nil {
		fail(w, h.log, err)
		return
	}
	out := make([]bookSummary, 0, len(books))
	for _, b := range books {
		out = append(out, h.summary(b))
	}
	ok(w, out)
}

func (h *handler) getBook(w http.ResponseWriter, r *http.Request) {
	b, err := h.catalog.Book(r.Context(), chi.URLParam(r, "book"))
	if err != nil {
		fail(w, h.log, err)
		return
	}

	view := bookView{
		bookSummary: h.summary(b),
		Description: b.Description,
		Groups:      make([]groupView, 0, len(b.Groups())),
		Volumes:     make([]volumeView, 0, len(b.Volumes())),
		Chapters:    make([]chapterView, 0, len(b.Chapters())),
	}
	for _, g := range b.Groups() {
		view.Groups = append(view.Groups, groupView{ID: g.ID, Name: g.Name})
	}
	for _, vid := range b.Volumes() {
		v := b.Volume(vid)
		vv := volumeView{Number: v.Number, Chapters: make([]float64, 0, len(v.Chapters))}
		for _, cid := range v.Chapters {
			vv.Chapters = append(vv.Chapters, b.Chapter(cid).Number)
		}
		view.Volumes = append(view.Volumes, vv)
	}
	for _, cid := range b.Chapters() {
		view.Chapters = append(view.Chapters, h.chapter(b, cid))
	}
	ok(w, view)
}

func (h *handler) getChapter(w http.ResponseWriter, r *http.Request) {
	b, err := h.catalog.Book(r.Context(), chi.URLParam(r, "book"))
	if err != nil {
		fail(w, h.log, err)
		return
	}
	number, err := strconv.ParseFloat(chi.URLParam(r, "chapter"), 64)
	if err != nil {
		fail(w, h.log, badRequest("chapter must be a number"))
		return
	}
	cid, found := b.ChapterNumbered(number)
	if !found {
		fail(w, h.log, notFound("chapter_not_found", "no chapter "+chi.URLParam(r, "chapter")))
		return
	}
	ok(w, h.chapter(b, cid))
}

// getPage resolves the page with the preferred group, or strictly within
// the requested group when one is given.
func (h *handler) getPage(w http.ResponseWriter, r *http.Request) {
	b, err := h.catalog.Book(r.Context(), chi.URLParam(r, "book"))
	if err != nil {
		fail(w, h.log, err)
		return
	}
	chapter, err := strconv.ParseFloat(chi.URLParam(r, "chapter"), 64)
	if err != nil {
		fail(w, h.log, badRequest("chapter must be a number"))
		return
	}
	page, err := strconv.Atoi(chi.URLParam(r, "page"))
	if err != nil {
		fail(w, h.log, badRequest("page must be an integer"))
		return
	}

	jump := navigation.JumpToPage{Chapter: chapter, Page: page}
	preferred := h.prefs.PreferredGroup()
	var pid data.PageID
	var found bool
	if group := r.URL.Query().Get("group"); group != "" {
		preferred = group
		pid, found = navigation.ResolveInGroup(b, data.NoPage, jump, group)
	} else {
		pid, found = navigation.Resolve(b, data.NoPage, jump, preferred)
	}
	if !found {
		fail(w, h.log, notFound("page_not_found", "no such page"))
		return
	}

	loc, _ := navigation.Locate(b, pid)
	image, _ := h.links.PageImage(b, pid)
	preview, _ := h.links.PagePreview(b, pid)
	web, _ := h.links.WebPage(b, pid)
	rid := b.Page(pid).Release

	ok(w, pageView{
		Book:            b.ID,
		Chapter:         loc.Chapter,
		Page:            loc.Page,
		Group:           loc.Group,
		PagesInRelease:  b.NumberOfPages(rid),
		Image:           image,
		Preview:         preview,
		Web:             web,
		NextPage:        step(b, pid, navigation.NextPage{}, preferred),
		PreviousPage:    step(b, pid, navigation.PreviousPage{}, preferred),
		NextChapter:     step(b, pid, navigation.NextChapter{}, preferred),
		PreviousChapter: step(b, pid, navigation.PreviousChapter{}, preferred),
	})
}

func step(b *data.Book, from data.PageID, intent navigation.Intent, preferred string) *navigation.Location {
	pid, found := navigation.Resolve(b, from, intent, preferred)
	if !found {
		return nil
	}
	loc, _ := navigation.Locate(b, pid)
	return &loc
}
