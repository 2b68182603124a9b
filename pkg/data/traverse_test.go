package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeforeAfter(t *testing.T) {
	s := []int{10, 20, 30}

	v, ok := Before(s, 20)
	assert.True(t, ok)
	assert.Equal(t, 10, v)

	_, ok = Before(s, 10)
	assert.False(t, ok)

	v, ok = After(s, 20)
	assert.True(t, ok)
	assert.Equal(t, 30, v)

	_, ok = After(s, 30)
	assert.False(t, ok)

	_, ok = After(s, 99)
	assert.False(t, ok)
	_, ok = Before(s, 99)
	assert.False(t, ok)
	_, ok = After([]int{}, 1)
	assert.False(t, ok)
}

func TestChapterNumbered(t *testing.T) {
	book := testBook(t)

	id, ok := book.ChapterNumbered(2.5)
	require.True(t, ok)
	assert.Equal(t, "Two and a half", book.Chapter(id).Title)

	_, ok = book.ChapterNumbered(2.4)
	assert.False(t, ok)
}

func TestFirstPageByPreferredGroup(t *testing.T) {
	book := testBook(t)
	ch1 := chapterOf(t, book, 1)

	t.Run("preferred group has release", func(t *testing.T) {
		pid, ok := book.FirstPage(ch1, "2")
		require.True(t, ok)
		assert.Equal(t, "2", book.PageGroup(pid))
		assert.Equal(t, 1, book.Page(pid).Number)
	})

	t.Run("preferred group lacks release", func(t *testing.T) {
		pid, ok := book.FirstPage(chapterOf(t, book, 2), "1")
		require.True(t, ok)
		assert.Equal(t, "2", book.PageGroup(pid))
	})

	t.Run("no preference uses first release", func(t *testing.T) {
		pid, ok := book.FirstPage(ch1, "")
		require.True(t, ok)
		assert.Equal(t, "1", book.PageGroup(pid))
	})

	t.Run("last page mirrors", func(t *testing.T) {
		pid, ok := book.LastPage(ch1, "2")
		require.True(t, ok)
		assert.Equal(t, 15, book.Page(pid).Number)

		pid, ok = book.LastPage(ch1, "unknown")
		require.True(t, ok)
		assert.Equal(t, 20, book.Page(pid).Number)
	})
}

func TestChapterPageIsStrict(t *testing.T) {
	book := testBook(t)
	ch1 := chapterOf(t, book, 1)

	_, ok := book.ChapterPage(ch1, "2", 16)
	assert.False(t, ok)

	pid, ok := book.ChapterPage(ch1, "2", 15)
	require.True(t, ok)
	assert.Equal(t, 15, book.Page(pid).Number)

	_, ok = book.ChapterPage(ch1, "2", 0)
	assert.False(t, ok)
}

func TestChapterSteps(t *testing.T) {
	book := testBook(t)
	ch25 := chapterOf(t, book, 2.5)
	ch3 := chapterOf(t, book, 3)

	_, ok := book.NextChapter(ch25, false)
	assert.False(t, ok, "last chapter of a volume does not escape by default")

	next, ok := book.NextChapter(ch25, true)
	require.True(t, ok)
	assert.Equal(t, ch3, next)

	_, ok = book.PreviousChapter(ch3, false)
	assert.False(t, ok)

	prev, ok := book.PreviousChapter(ch3, true)
	require.True(t, ok)
	assert.Equal(t, ch25, prev)

	_, ok = book.PreviousChapter(chapterOf(t, book, 1), true)
	assert.False(t, ok)
	_, ok = book.NextChapter(chapterOf(t, book, 4), true)
	assert.False(t, ok)
}

func TestPageSteps(t *testing.T) {
	book := testBook(t)

	t.Run("within release", func(t *testing.T) {
		p := pageOf(t, book, 1, "1", 5)
		next, ok := book.NextPage(p, false, "")
		require.True(t, ok)
		assert.Equal(t, 6, book.Page(next).Number)

		prev, ok := book.PreviousPage(p, false, "")
		require.True(t, ok)
		assert.Equal(t, 4, book.Page(prev).Number)
	})

	t.Run("boundary without escape", func(t *testing.T) {
		_, ok := book.NextPage(pageOf(t, book, 1, "1", 20), false, "")
		assert.False(t, ok)
	})

	t.Run("escape forward uses preferred group", func(t *testing.T) {
		next, ok := book.NextPage(pageOf(t, book, 2.5, "1", 3), true, "2")
		require.True(t, ok)
		assert.Equal(t, pageOf(t, book, 3, "2", 1), next)
	})

	t.Run("escape backward lands on last page", func(t *testing.T) {
		prev, ok := book.PreviousPage(pageOf(t, book, 3, "1", 1), true, "1")
		require.True(t, ok)
		assert.Equal(t, pageOf(t, book, 2.5, "1", 3), prev)
	})
}

func TestEquivalentPage(t *testing.T) {
	book := testBook(t)

	t.Run("same group is identity", func(t *testing.T) {
		p := pageOf(t, book, 1, "1", 7)
		got, ok := book.EquivalentPage(p, "1")
		require.True(t, ok)
		assert.Equal(t, p, got)
	})

	t.Run("exact match", func(t *testing.T) {
		got, ok := book.EquivalentPage(pageOf(t, book, 1, "1", 5), "2")
		require.True(t, ok)
		assert.Equal(t, pageOf(t, book, 1, "2", 5), got)
	})

	t.Run("clamp down to shorter release", func(t *testing.T) {
		got, ok := book.EquivalentPage(pageOf(t, book, 1, "1", 20), "2")
		require.True(t, ok)
		assert.Equal(t, pageOf(t, book, 1, "2", 15), got)
	})

	t.Run("gap is a miss", func(t *testing.T) {
		_, ok := book.EquivalentPage(pageOf(t, book, 2.5, "1", 3), "3")
		assert.False(t, ok)
	})

	t.Run("group without release", func(t *testing.T) {
		_, ok := book.EquivalentPage(pageOf(t, book, 2, "2", 1), "1")
		assert.False(t, ok)
	})

	t.Run("round trip", func(t *testing.T) {
		p := pageOf(t, book, 3, "1", 2)
		there, ok := book.EquivalentPage(p, "2")
		require.True(t, ok)
		back, ok := book.EquivalentPage(there, "1")
		require.True(t, ok)
		assert.Equal(t, p, back)
	})
}

func TestIndexesAndPositions(t *testing.T) {
	book := testBook(t)
	ch25 := chapterOf(t, book, 2.5)
	ch3 := chapterOf(t, book, 3)

	i, ok := book.ChapterVolumeIndex(ch25)
	require.True(t, ok)
	assert.Equal(t, 2, i)

	i, ok = book.ChapterBookIndex(ch3)
	require.True(t, ok)
	assert.Equal(t, 3, i)

	i, ok = book.VolumeIndex(book.Chapter(ch3).Volume)
	require.True(t, ok)
	assert.Equal(t, 1, i)

	rid, _ := book.ReleaseByGroup(ch3, "2")
	i, ok = book.ReleaseIndex(rid)
	require.True(t, ok)
	assert.Equal(t, 1, i)
	assert.Equal(t, 4, book.NumberOfPages(rid))

	i, ok = book.PageIndex(pageOf(t, book, 2.5, "3", 4))
	require.True(t, ok)
	assert.Equal(t, 2, i)

	assert.True(t, book.IsLastChapter(ch25))
	assert.False(t, book.IsFirstChapter(ch25))
	assert.True(t, book.IsFirstChapter(ch3))
	assert.True(t, book.IsFirstPageInBook(pageOf(t, book, 1, "2", 1)))
	assert.False(t, book.IsFirstPageInBook(pageOf(t, book, 3, "1", 1)))
	assert.True(t, book.IsLastPageInBook(pageOf(t, book, 4, "2", 6)))
}

func TestInvalidHandles(t *testing.T) {
	book := testBook(t)

	assert.Nil(t, book.Chapter(NoChapter))
	assert.Nil(t, book.Page(PageID(10_000)))
	assert.Equal(t, NoChapter, book.PageChapter(NoPage))

	_, ok := book.NextPage(NoPage, true, "")
	assert.False(t, ok)
	_, ok = book.EquivalentPage(NoPage, "1")
	assert.False(t, ok)
	_, ok = book.FirstPage(NoChapter, "1")
	assert.False(t, ok)
}
