package normalize

import "sort"

// SlideURLs prefers the slide_images child rows, ordered by position with ties
// kept in their original order, and falls back to the flat list.
func SlideURLs(v *RenderingView) []string {
	if v == nil {
		return nil
	}
	if len(v.SlideRows) == 0 {
		return v.SlideImages
	}

	rows := make([]int, len(v.SlideRows))
	for i := range rows {
		rows[i] = i
	}
	sort.SliceStable(rows, func(a, b int) bool {
		return v.SlideRows[rows[a]].Position < v.SlideRows[rows[b]].Position
	})

	urls := make([]string, 0, len(rows))
	for _, i := range rows {
		urls = append(urls, v.SlideRows[i].ImageURL)
	}
	return urls
}
