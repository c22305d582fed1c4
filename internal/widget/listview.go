package widget

import (
	"slices"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"rtop/internal/markup"
)

// columnGap is the padding reserved in front of each secondary column.
const columnGap = 3

// ListItem is one row of a ListView. Name identifies the row and is its
// primary column value; Fields holds pre-formatted secondary column values.
type ListItem struct {
	Name   string
	Fields map[string]string
}

// NewListItem copies fields so the item does not alias the caller's map.
func NewListItem(name string, fields map[string]string) ListItem {
	cp := make(map[string]string, len(fields))
	for k, v := range fields {
		cp[k] = v
	}
	return ListItem{Name: name, Fields: cp}
}

// SortDirection orders a ListView.
type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

func (d SortDirection) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// ListView is a scrollable, sortable table over a collection of ListItems.
// The first line of the viewport is a header; the remaining lines show the
// items from Offset on, with the item at Cursor highlighted.
//
// ListView is not safe for concurrent use.
type ListView struct {
	height int
	width  int

	items     []ListItem
	primary   string
	secondary []string

	sortKey string
	sortDir SortDirection

	cursor int
	offset int
}

// NewListView builds a list sorted by its primary column.
func NewListView(height, width int, items []ListItem, primary string, secondary []string) *ListView {
	l := &ListView{
		height:    height,
		width:     width,
		primary:   primary,
		secondary: slices.Clone(secondary),
		sortKey:   primary,
		sortDir:   Ascending,
	}
	l.UpdateItems(items)
	return l
}

func (l *ListView) Len() int                     { return len(l.items) }
func (l *ListView) Cursor() int                  { return l.cursor }
func (l *ListView) Offset() int                  { return l.offset }
func (l *ListView) Height() int                  { return l.height }
func (l *ListView) Width() int                   { return l.width }
func (l *ListView) SortKey() string              { return l.sortKey }
func (l *ListView) SortDirection() SortDirection { return l.sortDir }

// Items returns the collection in display order.
func (l *ListView) Items() []ListItem {
	return slices.Clone(l.items)
}

// visibleRows is the number of item lines below the header.
func (l *ListView) visibleRows() int {
	if l.height <= 1 {
		return 0
	}
	return l.height - 1
}

// SelectNext moves the cursor down one item, scrolling when the highlight is
// already on the last visible line.
func (l *ListView) SelectNext() {
	if l.cursor >= len(l.items)-1 {
		return
	}
	l.cursor++
	if l.cursor-l.offset > l.visibleRows()-1 {
		l.offset++
	}
	l.clamp()
}

// SelectPrevious moves the cursor up one item, scrolling when the highlight
// is already on the first visible line.
func (l *ListView) SelectPrevious() {
	if l.cursor <= 0 {
		return
	}
	l.cursor--
	if l.cursor < l.offset {
		l.offset--
	}
	l.clamp()
}

// PageDown moves the cursor one viewport down.
func (l *ListView) PageDown() {
	for range max(1, l.visibleRows()) {
		l.SelectNext()
	}
}

// PageUp moves the cursor one viewport up.
func (l *ListView) PageUp() {
	for range max(1, l.visibleRows()) {
		l.SelectPrevious()
	}
}

func (l *ListView) JumpToFirst() {
	l.cursor = 0
	l.offset = 0
}

// JumpToLast selects the last item; when it does not fit the viewport the
// list scrolls so it sits on the bottom line.
func (l *ListView) JumpToLast() {
	l.cursor = max(0, len(l.items)-1)
	l.offset = 0
	l.clamp()
}

// Resize changes the viewport and re-clamps the scroll position.
func (l *ListView) Resize(height, width int) {
	l.height = height
	l.width = width
	l.clamp()
}

// clamp restores 0 <= cursor < len and offset <= cursor < offset+visible.
func (l *ListView) clamp() {
	n := len(l.items)
	if n == 0 {
		l.cursor, l.offset = 0, 0
		return
	}
	l.cursor = min(max(l.cursor, 0), n-1)

	visible := l.visibleRows()
	if visible == 0 {
		l.offset = l.cursor
		return
	}
	// Never leave blank lines below the last item when scrolled.
	l.offset = min(l.offset, max(0, n-visible))
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+visible {
		l.offset = l.cursor - visible + 1
	}
	l.offset = max(l.offset, 0)
}

// SortBy selects the sort column and re-sorts. The primary column sorts by
// name, ascending and case-insensitively; any other column sorts numerically,
// descending.
func (l *ListView) SortBy(column string) {
	l.sortKey = column
	l.sortDir = Descending
	if column == l.primary {
		l.sortDir = Ascending
	}
	l.sort()
	l.clamp()
}

// ReverseSort flips the sort direction of the current column.
func (l *ListView) ReverseSort() {
	if l.sortDir == Ascending {
		l.sortDir = Descending
	} else {
		l.sortDir = Ascending
	}
	l.sort()
	l.clamp()
}

// UpdateItems replaces the collection and re-sorts it. Cursor and scroll
// position are kept, clamped to the new length.
func (l *ListView) UpdateItems(items []ListItem) {
	l.items = slices.Clone(items)
	l.sort()
	l.clamp()
}

// Select returns the item under the cursor, or false when the list is empty.
func (l *ListView) Select() (ListItem, bool) {
	if len(l.items) == 0 {
		return ListItem{}, false
	}
	return l.items[l.cursor], true
}

func (l *ListView) sort() {
	if l.sortKey == l.primary {
		slices.SortStableFunc(l.items, func(a, b ListItem) int {
			c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
			if l.sortDir == Descending {
				return -c
			}
			return c
		})
		return
	}

	key := l.sortKey
	slices.SortStableFunc(l.items, func(a, b ListItem) int {
		av, aok := numeric(a, key)
		bv, bok := numeric(b, key)
		switch {
		case !aok && !bok:
			return 0
		case !aok:
			return 1
		case !bok:
			return -1
		}
		c := 0
		if av < bv {
			c = -1
		} else if av > bv {
			c = 1
		}
		if l.sortDir == Descending {
			return -c
		}
		return c
	})
}

// numeric parses the field used as sort key; missing or malformed values
// report false and sort last.
func numeric(it ListItem, key string) (float64, bool) {
	raw, ok := it.Fields[key]
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// layout returns the width of the primary column and of each secondary
// column. A secondary column is as wide as its header or its widest visible
// value, plus the gap. Columns that do not fit are given zero width.
func (l *ListView) layout(visible []ListItem) (int, []int) {
	widths := make([]int, len(l.secondary))
	remaining := l.width
	for i, col := range l.secondary {
		field := runewidth.StringWidth(col)
		for _, it := range visible {
			field = max(field, runewidth.StringWidth(it.Fields[col]))
		}
		w := field + columnGap
		if w > remaining {
			break
		}
		widths[i] = w
		remaining -= w
	}
	return remaining, widths
}

// fit truncates or pads s to exactly w cells.
func fit(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > w {
		tail := "…"
		if runewidth.StringWidth(tail) >= w {
			tail = ""
		}
		s = runewidth.Truncate(s, w, tail)
	}
	return runewidth.FillRight(s, w)
}

// fitRight truncates s to w cells and pads it on the left.
func fitRight(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > w {
		s = runewidth.Truncate(s, w, "")
	}
	return runewidth.FillLeft(s, w)
}

func (l *ListView) row(primary string, values []string, primaryWidth int, widths []int) string {
	var b strings.Builder
	b.WriteString(fit(primary, primaryWidth))
	for i, w := range widths {
		if w == 0 {
			continue
		}
		b.WriteString(strings.Repeat(" ", columnGap))
		b.WriteString(fitRight(values[i], w-columnGap))
	}
	return b.String()
}

// Display renders the header and the visible items, one line each and
// exactly Width cells wide. The cursor line is wrapped in REVERSE markers.
func (l *ListView) Display() string {
	if l.height <= 0 || l.width <= 0 {
		return ""
	}
	visible := l.items
	if rows := l.visibleRows(); len(visible) > rows {
		end := min(l.offset+rows, len(visible))
		visible = visible[l.offset:end]
	}
	primaryWidth, widths := l.layout(visible)

	lines := make([]string, 0, l.height)
	lines = append(lines, l.row(l.primary, l.secondary, primaryWidth, widths))

	values := make([]string, len(l.secondary))
	for i, it := range visible {
		for j, col := range l.secondary {
			values[j] = it.Fields[col]
		}
		line := l.row(it.Name, values, primaryWidth, widths)
		if l.offset+i == l.cursor {
			line = markup.Wrap(markup.Reverse, line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
