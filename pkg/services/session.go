package services

import (
	"time"

	"go.uber.org/zap"

	"github.com/kerbaras/guya/pkg/data"
	"github.com/kerbaras/guya/pkg/navigation"
	"github.com/kerbaras/guya/pkg/preferences"
)

// ProgressStore persists the last page read per book.
type ProgressStore interface {
	SaveProgress(progress *data.Progress) error
	GetProgress(bookID string) (*data.Progress, error)
}

// Arrow is a directional key press in the reader.
type Arrow int

const (
	ArrowLeft Arrow = iota
	ArrowRight
	ArrowUp
	ArrowDown
)

// Session is the reading state of one open book. It owns the current page
// and applies navigation results to it; misses leave it unchanged.
type Session struct {
	book     *data.Book
	prefs    *preferences.Store
	progress ProgressStore
	log      *zap.SugaredLogger
	now      func() time.Time

	current data.PageID
}

func NewSession(book *data.Book, prefs *preferences.Store, progress ProgressStore, log *zap.SugaredLogger) *Session {
	return &Session{
		book:     book,
		prefs:    prefs,
		progress: progress,
		log:      log,
		now:      time.Now,
		current:  data.NoPage,
	}
}

func (s *Session) Book() *data.Book {
	return s.book
}

// Current is the displayed page, data.NoPage before the first move.
func (s *Session) Current() data.PageID {
	return s.current
}

// Location describes the displayed page.
func (s *Session) Location() (navigation.Location, bool) {
	return navigation.Locate(s.book, s.current)
}

// Navigate resolves intent against the current page and moves there.
func (s *Session) Navigate(intent navigation.Intent) bool {
	next, ok := navigation.Resolve(s.book, s.current, intent, s.prefs.PreferredGroup())
	if !ok {
		s.log.Debugw("navigation miss", "book", s.book.ID, "intent", intent.String())
		return false
	}
	s.moveTo(next)
	return true
}

// Resume returns to the stored position of the book, or to its oldest
// chapter when there is none or it no longer resolves.
func (s *Session) Resume() bool {
	if p, err := s.progress.GetProgress(s.book.ID); err != nil {
		s.log.Warnw("failed to load progress", "book", s.book.ID, "error", err)
	} else if p != nil {
		intent := navigation.JumpToPage{Chapter: p.Chapter, Page: p.Page}
		if next, ok := navigation.Resolve(s.book, s.current, intent, p.Group); ok {
			s.moveTo(next)
			return true
		}
		s.log.Debugw("stored progress no longer resolves", "book", s.book.ID, "chapter", p.Chapter, "page", p.Page)
	}
	return s.Navigate(navigation.OldestChapter{})
}

// Arrow maps a key press to a page turn for the current layout direction.
// Right to left books advance with the left arrow; top to bottom books use
// the vertical arrows.
func (s *Session) Arrow(a Arrow) bool {
	intent, ok := ArrowIntent(s.prefs.Layout(), a)
	if !ok {
		return false
	}
	return s.Navigate(intent)
}

func ArrowIntent(layout preferences.LayoutDirection, a Arrow) (navigation.Intent, bool) {
	switch layout {
	case preferences.RightToLeft:
		switch a {
		case ArrowLeft:
			return navigation.NextPage{}, true
		case ArrowRight:
			return navigation.PreviousPage{}, true
		}
	case preferences.TopToBottom:
		switch a {
		case ArrowDown:
			return navigation.NextPage{}, true
		case ArrowUp:
			return navigation.PreviousPage{}, true
		}
	default:
		switch a {
		case ArrowRight:
			return navigation.NextPage{}, true
		case ArrowLeft:
			return navigation.PreviousPage{}, true
		}
	}
	return nil, false
}

// FollowPreferredGroup switches the displayed page to the equivalent page of
// the new preferred group whenever that preference changes. The returned
// func stops following.
func (s *Session) FollowPreferredGroup() func() {
	return s.prefs.Subscribe(func(key preferences.Key) {
		if key != preferences.PreferredGroup || s.current == data.NoPage {
			return
		}
		s.Navigate(navigation.SwitchGroup{Group: s.prefs.PreferredGroup()})
	})
}

// Groups returns the groups that released the displayed chapter, in release
// order.
func (s *Session) Groups() []data.Group {
	c := s.book.Chapter(s.book.PageChapter(s.current))
	if c == nil {
		return nil
	}
	groups := make([]data.Group, 0, len(c.Releases))
	for _, rid := range c.Releases {
		id := s.book.Release(rid).Group
		g, ok := s.book.Group(id)
		if !ok {
			g = data.Group{ID: id, Name: id}
		}
		groups = append(groups, g)
	}
	return groups
}

func (s *Session) moveTo(page data.PageID) {
	s.current = page
	loc, _ := navigation.Locate(s.book, page)
	err := s.progress.SaveProgress(&data.Progress{
		BookID:    s.book.ID,
		Chapter:   loc.Chapter,
		Page:      loc.Page,
		Group:     loc.Group,
		UpdatedAt: s.now(),
	})
	if err != nil {
		s.log.Warnw("failed to save progress", "book", s.book.ID, "error", err)
	}
}
