// Package datatest provides a small fixed Book for tests in other packages.
package datatest

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kerbaras/guya/pkg/data"
)

const BookID = "test-book"

// Files returns n page file names 01.jpg, 02.jpg and so on.
func Files(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%02d.jpg", i+1)
	}
	return out
}

// Book builds:
//
//	vol 1: ch 1 (g1 x20, g2 x15), ch 2 (g2 x5), ch 2.5 (g1 x3, g3 pages 1,2,4,5)
//	vol 2: ch 3 (g1 x4, g2 x4), ch 4 (g2 x6)
func Book(t testing.TB) *data.Book {
	t.Helper()

	b := data.NewBookBuilder(data.BookInfo{
		ID:          BookID,
		Title:       "Test Book",
		Description: "A book for tests",
		Author:      "Author",
		Artist:      "Artist",
		Cover:       "/media/manga/test-book/cover.jpg",
	})
	b.AddGroup(data.Group{ID: "1", Name: "Jaimini's Box"})
	b.AddGroup(data.Group{ID: "2", Name: "Psylocke Scans"})
	b.AddGroup(data.Group{ID: "3", Name: "Gap Scans"})

	b.AddChapter(1, 1, "One", "0001")
	b.AddChapter(2, 1, "Two", "0002")
	b.AddChapter(2.5, 1, "Two and a half", "0002_5")
	b.AddChapter(3, 2, "Three", "0003")
	b.AddChapter(4, 2, "Four", "0004")

	b.AddRelease(1, "1", Files(20)...)
	b.AddRelease(1, "2", Files(15)...)
	b.AddRelease(2, "2", Files(5)...)
	b.AddRelease(2.5, "1", Files(3)...)
	b.AddReleasePages(2.5, "3", []data.PageSpec{
		{Number: 1, File: "01.jpg"},
		{Number: 2, File: "02.jpg"},
		{Number: 4, File: "04.jpg"},
		{Number: 5, File: "05.jpg"},
	})
	b.AddRelease(3, "1", Files(4)...)
	b.AddRelease(3, "2", Files(4)...)
	b.AddRelease(4, "2", Files(6)...)

	book, err := b.Build()
	require.NoError(t, err)
	return book
}

// Page returns the page numbered number of group's release of chapter.
func Page(t testing.TB, book *data.Book, chapter float64, group string, number int) data.PageID {
	t.Helper()
	cid, ok := book.ChapterNumbered(chapter)
	require.True(t, ok, "chapter %v", chapter)
	rid, ok := book.ReleaseByGroup(cid, group)
	require.True(t, ok, "release of chapter %v by %s", chapter, group)
	pid, ok := book.PageNumbered(rid, number)
	require.True(t, ok, "page %d of chapter %v by %s", number, chapter, group)
	return pid
}
