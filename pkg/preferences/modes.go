package preferences

import (
	"fmt"
	"strings"
)

// LayoutDirection is the reading direction of the page view.
type LayoutDirection int

const (
	LeftToRight LayoutDirection = iota + 1
	RightToLeft
	TopToBottom
)

var layoutNames = map[LayoutDirection]string{
	LeftToRight: "ltr",
	RightToLeft: "rtl",
	TopToBottom: "ttb",
}

func (d LayoutDirection) Valid() bool {
	_, ok := layoutNames[d]
	return ok
}

// Next cycles LeftToRight, RightToLeft, TopToBottom.
func (d LayoutDirection) Next() LayoutDirection {
	if d >= TopToBottom || d < LeftToRight {
		return LeftToRight
	}
	return d + 1
}

func (d LayoutDirection) String() string {
	if name, ok := layoutNames[d]; ok {
		return name
	}
	return fmt.Sprintf("LayoutDirection(%d)", int(d))
}

func ParseLayoutDirection(s string) (LayoutDirection, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d, name := range layoutNames {
		if name == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown layout direction %q (want ltr, rtl or ttb)", s)
}

// ScalingMode controls how a page image is fitted to the view.
type ScalingMode int

const (
	ScaleWidth ScalingMode = iota
	ScaleHeight
	ScaleProportionally
	ScaleOriginal
)

var scalingNames = map[ScalingMode]string{
	ScaleWidth:          "width",
	ScaleHeight:         "height",
	ScaleProportionally: "proportionally",
	ScaleOriginal:       "original",
}

func (m ScalingMode) Valid() bool {
	_, ok := scalingNames[m]
	return ok
}

func (m ScalingMode) Next() ScalingMode {
	if m >= ScaleOriginal || m < ScaleWidth {
		return ScaleWidth
	}
	return m + 1
}

func (m ScalingMode) String() string {
	if name, ok := scalingNames[m]; ok {
		return name
	}
	return fmt.Sprintf("ScalingMode(%d)", int(m))
}

func ParseScalingMode(s string) (ScalingMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, name := range scalingNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown scaling mode %q (want width, height, proportionally or original)", s)
}
