package groups

import (
	"slices"

	"github.com/roach88/scenecore/internal/element"
	"github.com/roach88/scenecore/internal/selection"
)

// SelectGroup selects groupID and all of its members.
//
// When groupID has fewer than two members it is not a real group: if it was
// selected or being edited, that mark and EditingGroupID are cleared;
// otherwise st is returned unchanged.
func SelectGroup(groupID string, st selection.State, elements []*element.Element) selection.State {
	members := make(map[string]bool)
	for _, e := range elements {
		if IsElementInGroup(e, groupID) {
			members[e.ID] = true
		}
	}

	next := st
	if len(members) < 2 {
		if st.SelectedGroupIDs[groupID] || st.EditingGroupID == groupID {
			next.SelectedGroupIDs = selection.Merge(st.SelectedGroupIDs, map[string]bool{groupID: false})
			next.EditingGroupID = ""
		}
		return next
	}

	next.SelectedGroupIDs = selection.Merge(st.SelectedGroupIDs, map[string]bool{groupID: true})
	next.SelectedElementIDs = selection.Merge(st.SelectedElementIDs, members)
	return next
}

// activeGroupID returns the group e activates when selected: the innermost
// group outside the edited one, or "" when none survives.
func activeGroupID(e *element.Element, editingGroupID string) string {
	groupIDs := e.GroupIDs
	if editingGroupID != "" {
		if i := slices.Index(groupIDs, editingGroupID); i > -1 {
			groupIDs = groupIDs[:i]
		}
	}
	if len(groupIDs) == 0 {
		return ""
	}
	return groupIDs[len(groupIDs)-1]
}

// SelectGroups activates the innermost surviving group of every element in
// selected, then selects every member of those groups across elements.
// SelectedGroupIDs of the result holds exactly the active groups.
//
// The result is memoized in c. Under KeyApprox it is reused while
// len(selected) and EditingGroupID stay the same, even if the members
// differ.
func SelectGroups(c *selection.Cache, selected, elements []*element.Element, st selection.State) selection.State {
	return c.MemoGroups(selected, elements, st, func() selection.State {
		active := make(map[string]bool)
		for _, e := range selected {
			if gid := activeGroupID(e, st.EditingGroupID); gid != "" {
				active[gid] = true
			}
		}

		inGroups := make(map[string]bool)
		for _, e := range elements {
			for _, gid := range e.GroupIDs {
				if active[gid] {
					inGroups[e.ID] = true
					break
				}
			}
		}

		next := st
		next.SelectedGroupIDs = active
		next.SelectedElementIDs = selection.Merge(st.SelectedElementIDs, inGroups)
		return next
	})
}

// SelectGroupsForSelectedElements widens the current element selection to
// whole groups, treating the edited group as transparent. With nothing selected it
// leaves group editing and keeps prev's selection map when the content did
// not change.
func SelectGroupsForSelectedElements(c *selection.Cache, st selection.State, elements []*element.Element, prev selection.State) selection.State {
	next := st
	next.SelectedGroupIDs = map[string]bool{}

	selected := selection.SelectedElements(c, elements, st, selection.Options{})
	if len(selected) == 0 {
		next.EditingGroupID = ""
		next.SelectedElementIDs = selection.MakeNextSelectedElementIDs(next.SelectedElementIDs, prev)
		return next
	}

	return SelectGroups(c, selected, elements, st)
}

// SelectGroupsFromGivenElements returns the group ids that become active when
// elements themselves define the selection, for example when grouping or
// duplicating them.
func SelectGroupsFromGivenElements(c *selection.Cache, elements []*element.Element, st selection.State) map[string]bool {
	next := st
	next.SelectedGroupIDs = map[string]bool{}
	return SelectGroups(c, elements, elements, next).SelectedGroupIDs
}

// EditGroupForSelectedElement enters e's outermost group for editing and
// selects e alone. An ungrouped element leaves EditingGroupID empty.
func EditGroupForSelectedElement(st selection.State, e *element.Element) selection.State {
	next := st
	next.EditingGroupID = e.OutermostGroupID()
	next.SelectedGroupIDs = map[string]bool{}
	next.SelectedElementIDs = map[string]bool{e.ID: true}
	return next
}

// GetSelectedGroupForElement returns the innermost selected group of e other
// than the edited one, or "".
func GetSelectedGroupForElement(st selection.State, e *element.Element) string {
	for i := len(e.GroupIDs) - 1; i >= 0; i-- {
		gid := e.GroupIDs[i]
		if gid == st.EditingGroupID {
			continue
		}
		if st.SelectedGroupIDs[gid] {
			return gid
		}
	}
	return ""
}

// IsSelectedViaGroup reports whether a selected ancestor group already
// covers e, in which case the renderer skips e's own selection outline.
func IsSelectedViaGroup(st selection.State, e *element.Element) bool {
	return GetSelectedGroupForElement(st, e) != ""
}

// GetSelectedGroupIDs returns the selected group ids, sorted.
func GetSelectedGroupIDs(st selection.State) []string {
	return selectedGroupIDs(st.SelectedGroupIDs)
}
