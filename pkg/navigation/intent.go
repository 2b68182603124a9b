package navigation

import (
	"fmt"

	"github.com/kerbaras/guya/pkg/data"
)

// Intent is a navigation request understood by Resolve.
type Intent interface {
	fmt.Stringer
	intent()
}

// JumpToChapter goes to the first page of the chapter numbered Chapter.
type JumpToChapter struct{ Chapter float64 }

// JumpToPage goes to page Page of chapter Chapter. Pages outside the chosen
// release are a miss, never clamped.
type JumpToPage struct {
	Chapter float64
	Page    int
}

// JumpToVolume goes to the first page of the volume at position Index.
type JumpToVolume struct{ Index int }

// SwitchGroup goes to the equivalent page in Group's release of the current chapter.
type SwitchGroup struct{ Group string }

type (
	NextPage        struct{}
	PreviousPage    struct{}
	NextChapter     struct{}
	PreviousChapter struct{}
	FirstPageOfBook struct{}
	LastPageOfBook  struct{}
	OldestChapter   struct{}
	NewestChapter   struct{}
)

func (JumpToChapter) intent()   {}
func (JumpToPage) intent()      {}
func (JumpToVolume) intent()    {}
func (SwitchGroup) intent()     {}
func (NextPage) intent()        {}
func (PreviousPage) intent()    {}
func (NextChapter) intent()     {}
func (PreviousChapter) intent() {}
func (FirstPageOfBook) intent() {}
func (LastPageOfBook) intent()  {}
func (OldestChapter) intent()   {}
func (NewestChapter) intent()   {}

func (i JumpToChapter) String() string { return fmt.Sprintf("chapter %s", data.FormatNumber(i.Chapter)) }
func (i JumpToPage) String() string {
	return fmt.Sprintf("chapter %s page %d", data.FormatNumber(i.Chapter), i.Page)
}
func (i JumpToVolume) String() string  { return fmt.Sprintf("volume #%d", i.Index) }
func (i SwitchGroup) String() string   { return fmt.Sprintf("group %s", i.Group) }
func (NextPage) String() string        { return "next page" }
func (PreviousPage) String() string    { return "previous page" }
func (NextChapter) String() string     { return "next chapter" }
func (PreviousChapter) String() string { return "previous chapter" }
func (FirstPageOfBook) String() string { return "first page" }
func (LastPageOfBook) String() string  { return "last page" }
func (OldestChapter) String() string   { return "oldest chapter" }
func (NewestChapter) String() string   { return "newest chapter" }
