package task

// StatusFilter selects which slice of an owner's tasks to list.
type StatusFilter string

const (
	FilterAll       StatusFilter = "all"
	FilterCompleted StatusFilter = "completed"
	FilterPending   StatusFilter = "pending"
	FilterOverdue   StatusFilter = "overdue"
)

// ParseStatusFilter maps a raw selector to a StatusFilter.
// Unrecognized values behave as FilterAll.
func ParseStatusFilter(s string) StatusFilter {
	switch StatusFilter(s) {
	case FilterCompleted, FilterPending, FilterOverdue:
		return StatusFilter(s)
	}
	return FilterAll
}
