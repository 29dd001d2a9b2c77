package tui

type pageLayout struct {
	windowWidth    int
	windowHeight   int
	viewportWidth  int
	viewportHeight int
	historyHeight  int
}

func newPageLayout() pageLayout {
	return pageLayout{
		windowWidth:    84,
		viewportWidth:  80,
		viewportHeight: 12,
		historyHeight:  5,
	}
}

// Update splits the window between the results viewport and the history
// section. Header, composer, tabs, status lines and legend take a fixed
// number of rows.
func (l *pageLayout) Update(width, height int) {
	l.windowWidth = width
	l.windowHeight = height
	innerWidth := width - viewportHorizontalPadding
	if innerWidth < minViewportWidth {
		innerWidth = minViewportWidth
	}
	l.viewportWidth = innerWidth
	const chrome = 12
	usable := height - chrome
	if usable < 8 {
		usable = 8
	}
	l.historyHeight = usable / 4
	if l.historyHeight < 3 {
		l.historyHeight = 3
	}
	l.viewportHeight = usable - l.historyHeight
	if l.viewportHeight < 4 {
		l.viewportHeight = 4
	}
}
