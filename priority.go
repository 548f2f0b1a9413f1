package inject

import (
	"fmt"
	"sort"
)

// DefaultPriority is assigned to beans that declare no priority when at
// least one bean in a ListByPriority result does. The value matches the
// common user-tier convention (javax.ws.rs Priorities.USER).
const DefaultPriority = 5000

// PriorityExtractor resolves the ordering priority for a bean entry.
//
// The default extractor reads the priority declared at registration time.
// Implementations backed by other structural metadata can be supplied per
// scope via WithPriorityExtractor or per call via ListByPriorityWith.
//
// Returning an error signals a malformed priority marker. That is a fatal
// configuration error: it propagates to the caller and is never silently
// defaulted, unlike "no priority declared" which is reported through the
// defined flag and defaults quietly.
type PriorityExtractor interface {
	Priority(entry *BeanEntry) (priority int, defined bool, err error)
}

// PriorityExtractorFunc adapts a function to the PriorityExtractor
// interface.
type PriorityExtractorFunc func(entry *BeanEntry) (int, bool, error)

func (f PriorityExtractorFunc) Priority(entry *BeanEntry) (int, bool, error) {
	return f(entry)
}

// declaredPriorityExtractor reads the priority declared via WithPriority.
type declaredPriorityExtractor struct{}

func (declaredPriorityExtractor) Priority(entry *BeanEntry) (int, bool, error) {
	priority, defined := entry.Priority()
	return priority, defined, nil
}

type sortBean struct {
	bean     any
	priority int
}

// sortByPriority reorders list by the extracted priorities of its parallel
// entries. When no entry defines a priority the original list is returned
// untouched, same backing array: priority ordering is opt-in per list,
// never forced. The sort is stable, so equal priorities keep their
// registration order.
func sortByPriority(list []any, entries []*BeanEntry, extractor PriorityExtractor) ([]any, error) {
	priorityUsed := false
	tempList := make([]sortBean, 0, len(entries))
	for _, entry := range entries {
		priority, defined, err := extractor.Priority(entry)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPriorityMarker, entry, err)
		}
		if defined {
			priorityUsed = true
		} else {
			priority = DefaultPriority
		}
		tempList = append(tempList, sortBean{bean: entry.bean, priority: priority})
	}
	if !priorityUsed {
		// nothing declared a priority so keep registration order
		return list, nil
	}
	sort.SliceStable(tempList, func(i, j int) bool {
		return tempList[i].priority < tempList[j].priority
	})
	sorted := make([]any, len(tempList))
	for i, sb := range tempList {
		sorted[i] = sb.bean
	}
	return sorted, nil
}
