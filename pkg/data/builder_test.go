package data

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOrdersChapters(t *testing.T) {
	book := testBook(t)

	var numbers []float64
	for _, id := range book.Chapters() {
		numbers = append(numbers, book.Chapter(id).Number)
	}
	assert.Equal(t, []float64{1, 2, 2.5, 3, 4}, numbers)
	assert.True(t, sort.Float64sAreSorted(numbers))
}

func TestBookChaptersEqualVolumeConcatenation(t *testing.T) {
	book := testBook(t)

	var concat []ChapterID
	for _, vid := range book.Volumes() {
		concat = append(concat, book.Volume(vid).Chapters...)
	}
	assert.Equal(t, book.Chapters(), concat)
}

func TestBuildBackReferences(t *testing.T) {
	book := testBook(t)

	for _, cid := range book.Chapters() {
		c := book.Chapter(cid)
		assert.Contains(t, book.Volume(c.Volume).Chapters, cid)
		for _, rid := range c.Releases {
			r := book.Release(rid)
			assert.Equal(t, cid, r.Chapter)
			for _, pid := range r.Pages {
				assert.Equal(t, rid, book.Page(pid).Release)
				assert.Equal(t, cid, book.PageChapter(pid))
				assert.Equal(t, c.Volume, book.PageVolume(pid))
			}
		}
	}
}

func TestBuildSortsExplicitPages(t *testing.T) {
	book := testBook(t)

	rid, ok := book.ReleaseByGroup(chapterOf(t, book, 2.5), "3")
	require.True(t, ok)

	var numbers []int
	for _, pid := range book.Release(rid).Pages {
		numbers = append(numbers, book.Page(pid).Number)
	}
	assert.Equal(t, []int{1, 2, 4, 5}, numbers)
}

func TestBuildKeepsReleaseInsertionOrder(t *testing.T) {
	book := testBook(t)

	c := book.Chapter(chapterOf(t, book, 1))
	require.Len(t, c.Releases, 2)
	assert.Equal(t, "1", book.Release(c.Releases[0]).Group)
	assert.Equal(t, "2", book.Release(c.Releases[1]).Group)
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name  string
		build func(b *BookBuilder)
	}{
		{"duplicate chapter", func(b *BookBuilder) {
			b.AddChapter(1, 1, "", "")
			b.AddChapter(1, 1, "", "")
		}},
		{"duplicate group", func(b *BookBuilder) {
			b.AddGroup(Group{ID: "1"})
		}},
		{"unknown group", func(b *BookBuilder) {
			b.AddChapter(1, 1, "", "")
			b.AddRelease(1, "9", "a.jpg")
		}},
		{"unknown chapter", func(b *BookBuilder) {
			b.AddRelease(7, "1", "a.jpg")
		}},
		{"duplicate release", func(b *BookBuilder) {
			b.AddChapter(1, 1, "", "")
			b.AddRelease(1, "1", "a.jpg")
			b.AddRelease(1, "1", "b.jpg")
		}},
		{"duplicate page", func(b *BookBuilder) {
			b.AddChapter(1, 1, "", "")
			b.AddReleasePages(1, "1", []PageSpec{{1, "a"}, {1, "b"}})
		}},
		{"page zero", func(b *BookBuilder) {
			b.AddChapter(1, 1, "", "")
			b.AddReleasePages(1, "1", []PageSpec{{0, "a"}})
		}},
		{"interleaved volumes", func(b *BookBuilder) {
			b.AddChapter(1, 1, "", "")
			b.AddChapter(2, 2, "", "")
			b.AddChapter(3, 1, "", "")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBookBuilder(BookInfo{ID: "broken"})
			b.AddGroup(Group{ID: "1"})
			tt.build(b)

			book, err := b.Build()
			assert.Nil(t, book)
			assert.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestBuildEmptyBook(t *testing.T) {
	book, err := NewBookBuilder(BookInfo{ID: "empty"}).Build()
	require.NoError(t, err)

	assert.Empty(t, book.Chapters())
	assert.Empty(t, book.Volumes())
	_, ok := book.OldestChapter()
	assert.False(t, ok)
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "12", FormatNumber(12))
	assert.Equal(t, "12.5", FormatNumber(12.5))
	assert.Equal(t, "100.1", FormatNumber(100.1))
	assert.Equal(t, "0", FormatNumber(0))
}
