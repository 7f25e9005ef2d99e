package groups

import (
	"slices"

	"github.com/roach88/scenecore/internal/element"
	"github.com/roach88/scenecore/internal/selection"
)

// IsElementInGroup reports whether e belongs to groupID at any depth.
func IsElementInGroup(e *element.Element, groupID string) bool {
	return slices.Contains(e.GroupIDs, groupID)
}

// GetElementsInGroup returns the members of groupID in z-order.
func GetElementsInGroup(elements []*element.Element, groupID string) []*element.Element {
	var out []*element.Element
	for _, e := range elements {
		if IsElementInGroup(e, groupID) {
			out = append(out, e)
		}
	}
	return out
}

// GetSelectedGroupIDForElement returns the outermost of e's groups that is
// marked selected, or "".
func GetSelectedGroupIDForElement(e *element.Element, selectedGroupIDs map[string]bool) string {
	for _, gid := range e.GroupIDs {
		if selectedGroupIDs[gid] {
			return gid
		}
	}
	return ""
}

// GetMaximumGroups partitions elements by innermost group id, or by the
// element's own id when ungrouped, so whole groups can be moved or
// duplicated together. A container's bound label joins the container's
// bucket, right before the container. Buckets come back in first-seen order.
//
// lookup resolves bound labels; nil means elements itself.
func GetMaximumGroups(elements []*element.Element, lookup element.Lookup) [][]*element.Element {
	if lookup == nil {
		lookup = element.IndexOf(elements)
	}

	var order []string
	buckets := make(map[string][]*element.Element)
	for _, e := range elements {
		key := e.InnermostGroupID()
		if key == "" {
			key = e.ID
		}
		members, ok := buckets[key]
		if !ok {
			order = append(order, key)
		}
		if label := element.BoundText(e, lookup); label != nil {
			members = append(members, label)
		}
		buckets[key] = append(members, e)
	}

	out := make([][]*element.Element, 0, len(order))
	for _, key := range order {
		out = append(out, buckets[key])
	}
	return out
}

// ElementsAreInSameGroup reports whether a single group id is shared by all
// of elements. An empty input is trivially in the same group.
func ElementsAreInSameGroup(elements []*element.Element) bool {
	counts := make(map[string]int)
	best := 0
	for _, e := range elements {
		for _, gid := range e.GroupIDs {
			counts[gid]++
			best = max(best, counts[gid])
		}
	}
	return best == len(elements)
}

// AddToGroup returns a copy of groupIDs with newGroupID inserted right before
// editingGroupID, or appended as the innermost group when editingGroupID is
// "" or absent.
func AddToGroup(groupIDs []string, newGroupID, editingGroupID string) []string {
	pos := len(groupIDs)
	if editingGroupID != "" {
		if i := slices.Index(groupIDs, editingGroupID); i > -1 {
			pos = i
		}
	}
	out := make([]string, 0, len(groupIDs)+1)
	out = append(out, groupIDs[:pos]...)
	out = append(out, newGroupID)
	return append(out, groupIDs[pos:]...)
}

// RemoveFromSelectedGroups returns groupIDs without the selected ones.
func RemoveFromSelectedGroups(groupIDs []string, selectedGroupIDs map[string]bool) []string {
	out := make([]string, 0, len(groupIDs))
	for _, gid := range groupIDs {
		if !selectedGroupIDs[gid] {
			out = append(out, gid)
		}
	}
	return out
}

// GetNewGroupIDsForDuplication maps every group id outside editingGroupID
// through mapper and keeps editingGroupID and the groups nested in it, so a
// duplicate gets fresh outer groups but stays in the group being edited.
func GetNewGroupIDsForDuplication(groupIDs []string, editingGroupID string, mapper func(string) string) []string {
	out := make([]string, len(groupIDs))
	copy(out, groupIDs)

	end := len(groupIDs)
	if editingGroupID != "" {
		if i := slices.Index(groupIDs, editingGroupID); i > -1 {
			end = i
		}
	}
	for i := 0; i < end; i++ {
		out[i] = mapper(out[i])
	}
	return out
}

// Index is a membership index rebuilt lazily whenever the nonce it was built
// for changes. It never owns groups; it only caches what elements say.
type Index struct {
	nonce   int64
	built   bool
	members map[string][]string
}

// Members returns the ids of groupID's members for the scene at nonce.
func (idx *Index) Members(nonce int64, elements []*element.Element, groupID string) []string {
	idx.ensure(nonce, elements)
	return idx.members[groupID]
}

// GroupIDs returns every group id present at nonce, sorted.
func (idx *Index) GroupIDs(nonce int64, elements []*element.Element) []string {
	idx.ensure(nonce, elements)
	ids := make([]string, 0, len(idx.members))
	for gid := range idx.members {
		ids = append(ids, gid)
	}
	slices.Sort(ids)
	return ids
}

// Selectable reports whether groupID has at least two members at nonce.
func (idx *Index) Selectable(nonce int64, elements []*element.Element, groupID string) bool {
	return len(idx.Members(nonce, elements, groupID)) >= 2
}

func (idx *Index) ensure(nonce int64, elements []*element.Element) {
	if idx.built && idx.nonce == nonce {
		return
	}
	members := make(map[string][]string)
	for _, e := range elements {
		for _, gid := range e.GroupIDs {
			members[gid] = append(members[gid], e.ID)
		}
	}
	idx.members = members
	idx.nonce = nonce
	idx.built = true
}

// selectedGroupIDs lists the true keys of m.
func selectedGroupIDs(m map[string]bool) []string {
	return selection.TrueKeys(m)
}
