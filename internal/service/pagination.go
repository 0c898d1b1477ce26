package service

// pageLinks computes the next/previous page numbers for a list response.
// Nil means there is no such page.
func pageLinks(page, pageSize, total int) (next, previous *int) {
	if page*pageSize < total {
		n := page + 1
		next = &n
	}
	if page > 1 {
		p := page - 1
		previous = &p
	}
	return next, previous
}
