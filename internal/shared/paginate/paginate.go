package paginate

import "strconv"

// Page is a single fixed-size window over a counted result set. A requested
// page number below 1 clamps to the first page, one past the end clamps to
// the last, so any query string yields a valid page.
type Page struct {
	Number   int
	Size     int
	Total    int
	NumPages int
}

func New(number, size, total int) Page {
	if size < 1 {
		size = 1
	}
	numPages := (total + size - 1) / size
	if numPages < 1 {
		numPages = 1
	}
	if number < 1 {
		number = 1
	}
	if number > numPages {
		number = numPages
	}
	return Page{Number: number, Size: size, Total: total, NumPages: numPages}
}

// ParseNumber reads a page query parameter; anything unparseable means page 1.
func ParseNumber(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func (p Page) Limit() int  { return p.Size }
func (p Page) Offset() int { return (p.Number - 1) * p.Size }

func (p Page) HasPrev() bool { return p.Number > 1 }
func (p Page) HasNext() bool { return p.Number < p.NumPages }
func (p Page) Prev() int     { return p.Number - 1 }
func (p Page) Next() int     { return p.Number + 1 }

// Count is the number of items on this page.
func (p Page) Count() int {
	if p.Total == 0 {
		return 0
	}
	if p.Number < p.NumPages {
		return p.Size
	}
	last := p.Total % p.Size
	if last == 0 {
		last = p.Size
	}
	return last
}
