package data

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func files(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%02d.jpg", i+1)
	}
	return out
}

// testBook builds:
//
//	vol 1: ch 1 (g1 x20, g2 x15), ch 2 (g2 x5), ch 2.5 (g1 x3, g3 pages 1,2,4,5)
//	vol 2: ch 3 (g1 x4, g2 x4), ch 4 (g2 x6)
func testBook(t *testing.T) *Book {
	t.Helper()

	b := NewBookBuilder(BookInfo{ID: "test-book", Title: "Test Book", Cover: "/media/cover.jpg"})
	b.AddGroup(Group{ID: "1", Name: "Jaimini's Box"})
	b.AddGroup(Group{ID: "2", Name: "Psylocke Scans"})
	b.AddGroup(Group{ID: "3", Name: "Gap Scans"})

	// added out of order on purpose
	b.AddChapter(3, 2, "Three", "0003")
	b.AddChapter(1, 1, "One", "0001")
	b.AddChapter(2.5, 1, "Two and a half", "0002_5")
	b.AddChapter(2, 1, "Two", "0002")
	b.AddChapter(4, 2, "Four", "0004")

	b.AddRelease(1, "1", files(20)...)
	b.AddRelease(1, "2", files(15)...)
	b.AddRelease(2, "2", files(5)...)
	b.AddRelease(2.5, "1", files(3)...)
	b.AddReleasePages(2.5, "3", []PageSpec{{5, "05.jpg"}, {1, "01.jpg"}, {2, "02.jpg"}, {4, "04.jpg"}})
	b.AddRelease(3, "1", files(4)...)
	b.AddRelease(3, "2", files(4)...)
	b.AddRelease(4, "2", files(6)...)

	book, err := b.Build()
	require.NoError(t, err)
	return book
}

func chapterOf(t *testing.T, b *Book, number float64) ChapterID {
	t.Helper()
	id, ok := b.ChapterNumbered(number)
	require.True(t, ok, "chapter %v", number)
	return id
}

func pageOf(t *testing.T, b *Book, chapter float64, group string, number int) PageID {
	t.Helper()
	rid, ok := b.ReleaseByGroup(chapterOf(t, b, chapter), group)
	require.True(t, ok, "release of chapter %v by %s", chapter, group)
	pid, ok := b.PageNumbered(rid, number)
	require.True(t, ok, "page %d of chapter %v by %s", number, chapter, group)
	return pid
}
