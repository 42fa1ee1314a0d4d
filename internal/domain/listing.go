package domain

import "strconv"

type SortField int

const (
	SortByTimestamp SortField = iota
	SortByReadCount
	SortByReadingTime
)

type Direction int

const (
	Descending Direction = iota
	Ascending
)

// Order is a validated sort selection; the zero value is newest first.
type Order struct {
	Field     SortField
	Direction Direction
}

var (
	OrderNewest   = Order{Field: SortByTimestamp, Direction: Descending}
	OrderMostRead = Order{Field: SortByReadCount, Direction: Descending}
	OrderQuickest = Order{Field: SortByReadingTime, Direction: Ascending}
)

// ParseOrder maps the orderBy query value onto an Order. Unknown values fall
// back to newest first.
func ParseOrder(s string) Order {
	switch s {
	case "read_count":
		return OrderMostRead
	case "reading_time":
		return OrderQuickest
	default:
		return OrderNewest
	}
}

const (
	DefaultPage  = 1
	DefaultLimit = 20
)

type Page struct {
	Number int
	Limit  int
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// ParsePage reads 1-based page and limit query values, substituting the
// defaults for anything missing, non-numeric or below one.
func ParsePage(page, limit string) Page {
	return Page{
		Number: positiveOr(page, DefaultPage),
		Limit:  positiveOr(limit, DefaultLimit),
	}
}

func positiveOr(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// ParseStateFilter returns the state to filter on, or nil when s is not one of
// the two known states.
func ParseStateFilter(s string) *State {
	st := State(s)
	if !st.Valid() {
		return nil
	}
	return &st
}

// PostList is one page of posts plus the total number of matches.
type PostList struct {
	Posts []*Post
	Page  Page
	Total int
}
