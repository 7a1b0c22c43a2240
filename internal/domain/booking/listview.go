package booking

import (
	"sort"
	"strings"
	"time"
)

// PageSize is the fixed number of bookings per admin list page.
const PageSize = 5

// FilterAll disables a filter dimension.
const FilterAll = "all"

// ListParams selects and pages a view over the booking collection.
type ListParams struct {
	Status  string // "all" or a status value
	Package string // "all" or a service package title
	Month   int    // 1-12, 0 matches any month
	Year    int    // 0 matches any year
	Search  string // case-insensitive substring of name or email
	Page    int    // 1-based, clamped to the available range
}

// PageView is one page of the filtered, sorted collection.
type PageView struct {
	Items      []*Booking
	Total      int
	Page       int
	TotalPages int
}

// ApplyListView computes the admin list view: filter, sort by signed distance
// from now to the event date (soonest upcoming first, past dates by their
// negative distance), then paginate with the fixed page size. The computation
// is pure; calling it twice with the same inputs yields the same view.
func ApplyListView(snapshot []*Booking, p ListParams, now time.Time) PageView {
	filtered := make([]*Booking, 0, len(snapshot))
	for _, b := range snapshot {
		if p.Status != "" && p.Status != FilterAll && string(b.Status()) != p.Status {
			continue
		}
		if p.Package != "" && p.Package != FilterAll && b.ServicePackage() != p.Package {
			continue
		}
		if p.Month != 0 && int(b.EventDate().Month()) != p.Month {
			continue
		}
		if p.Year != 0 && b.EventDate().Year() != p.Year {
			continue
		}
		if !b.MatchesSearch(p.Search) {
			continue
		}
		filtered = append(filtered, b)
	}

	// Comparator is (eventDate - now) against (eventDate - now), i.e. the
	// signed distance from now, not a plain chronological sort.
	sort.SliceStable(filtered, func(i, j int) bool {
		di := filtered[i].EventDate().Sub(now)
		dj := filtered[j].EventDate().Sub(now)
		return di < dj
	})

	total := len(filtered)
	totalPages := (total + PageSize - 1) / PageSize
	if totalPages == 0 {
		totalPages = 1
	}

	page := p.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return PageView{
		Items:      filtered[start:end],
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
