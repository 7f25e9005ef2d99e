package session

import (
	"slices"

	"github.com/roach88/scenecore/internal/element"
	"github.com/roach88/scenecore/internal/groups"
	"github.com/roach88/scenecore/internal/selection"
)

// Group puts the selected elements into a new group and selects it. While a
// group is being edited, the new group nests just outside it. Returns the new
// group id, or "" when fewer than two elements are selected or they already
// form exactly one selected group.
func (s *Session) Group() string {
	selected := s.SelectedElements(selection.Options{IncludeBoundTextElement: true})
	if len(selected) < 2 {
		return ""
	}
	if gids := groups.GetSelectedGroupIDs(s.view.State); len(gids) == 1 &&
		len(groups.GetElementsInGroup(s.elements(), gids[0])) == len(selected) {
		return ""
	}

	groupID := s.ids.NewID()
	editing := s.view.EditingGroupID
	s.scene.Mutate(element.IDs(selected), func(e *element.Element) {
		e.GroupIDs = groups.AddToGroup(e.GroupIDs, groupID, editing)
	})

	st := s.view.State
	st.SelectedGroupIDs = map[string]bool{}
	s.setSelection(groups.SelectGroup(groupID, st, s.elements()), "group")
	s.logger.Info("grouped", "group", groupID, "members", len(selected))
	return groupID
}

// Ungroup removes the selected groups from their members and reselects the
// members. Returns the number of elements changed.
func (s *Session) Ungroup() int {
	selectedGroups := s.view.SelectedGroupIDs
	if len(groups.GetSelectedGroupIDs(s.view.State)) == 0 {
		return 0
	}

	var ids []string
	for _, e := range s.elements() {
		if groups.GetSelectedGroupIDForElement(e, selectedGroups) != "" {
			ids = append(ids, e.ID)
		}
	}
	n := s.scene.Mutate(ids, func(e *element.Element) {
		e.GroupIDs = groups.RemoveFromSelectedGroups(e.GroupIDs, selectedGroups)
	})

	st := s.view.State
	st.SelectedGroupIDs = map[string]bool{}
	st.SelectedElementIDs = selection.Merge(st.SelectedElementIDs, selection.SetOf(ids...))
	s.setSelection(s.widen(st), "ungroup")
	s.logger.Info("ungrouped", "elements", n)
	return n
}

// Duplicate copies the selection, frame children and bound labels included,
// offsets the copies by (dx, dy) and selects them. Copies get fresh ids and
// fresh outer groups but stay inside the group being edited. Returns the
// ids of the copies.
func (s *Session) Duplicate(dx, dy float64) []string {
	base := s.SelectedElements(selection.Options{IncludeElementsInFrames: true})
	if len(base) == 0 {
		return nil
	}

	buckets := groups.GetMaximumGroups(base, s.scene)
	var originals []*element.Element
	seen := make(map[string]bool)
	for _, bucket := range buckets {
		for _, e := range bucket {
			if !seen[e.ID] {
				seen[e.ID] = true
				originals = append(originals, e)
			}
		}
	}

	idMap := make(map[string]string, len(originals))
	for _, e := range originals {
		idMap[e.ID] = s.ids.NewID()
	}
	groupMap := make(map[string]string)
	mapper := func(gid string) string {
		if mapped, ok := groupMap[gid]; ok {
			return mapped
		}
		groupMap[gid] = s.ids.NewID()
		return groupMap[gid]
	}

	editing := s.view.EditingGroupID
	copies := make([]*element.Element, 0, len(originals))
	for _, e := range originals {
		c := e.Clone()
		c.ID = idMap[e.ID]
		c.X += dx
		c.Y += dy
		c.Version = 0
		c.GroupIDs = groups.GetNewGroupIDsForDuplication(e.GroupIDs, editing, mapper)
		c.FrameID = remapFrame(idMap, e.FrameID)
		c.ContainerID = remap(idMap, e.ContainerID)
		c.BoundTextID = remap(idMap, e.BoundTextID)
		copies = append(copies, c)
	}
	s.scene.Insert(copies...)

	var selectable []*element.Element
	for _, c := range copies {
		if !c.IsBoundToContainer() {
			selectable = append(selectable, c)
		}
	}
	selectable = selection.ExcludeElementsInFramesFromSelection(selectable)

	st := selection.NewState(element.IDs(selectable)...)
	st.EditingGroupID = editing
	st.SelectedGroupIDs = groups.SelectGroupsFromGivenElements(s.cache, selectable, st)
	s.setSelection(st, "duplicate")
	s.logger.Info("duplicated", "elements", len(copies), "groups", len(buckets))
	return element.IDs(copies)
}

// remap returns the mapped id, or "" when the referenced element was not
// copied (links to the originals are dropped).
func remap(idMap map[string]string, id string) string {
	if id == "" {
		return ""
	}
	return idMap[id]
}

// remapFrame points a copy at the copied frame, or keeps the original frame
// when only the child was duplicated.
func remapFrame(idMap map[string]string, frameID string) string {
	if mapped, ok := idMap[frameID]; ok {
		return mapped
	}
	return frameID
}

// Move offsets the selection, frame children and bound labels included.
// Returns the number of elements moved.
func (s *Session) Move(dx, dy float64) int {
	targets := s.SelectedElements(selection.Options{
		IncludeBoundTextElement: true,
		IncludeElementsInFrames: true,
	})
	ids := compactIDs(targets)
	return s.scene.Mutate(ids, func(e *element.Element) {
		e.X += dx
		e.Y += dy
	})
}

// Delete removes the selection, frame children and bound labels included,
// then clears the selection. Returns the number of elements deleted.
func (s *Session) Delete() int {
	targets := s.SelectedElements(selection.Options{
		IncludeBoundTextElement: true,
		IncludeElementsInFrames: true,
	})
	n := s.scene.Delete(compactIDs(targets)...)
	s.ClearSelection()
	s.logger.Info("deleted", "elements", n)
	return n
}

// GroupMembers returns the ids of groupID's members from the nonce-keyed
// membership index.
func (s *Session) GroupMembers(groupID string) []string {
	return s.groupIndex.Members(s.scene.MutationNonce(), s.elements(), groupID)
}

// GroupIDs returns every group id present in the scene.
func (s *Session) GroupIDs() []string {
	return s.groupIndex.GroupIDs(s.scene.MutationNonce(), s.elements())
}

// SameGroup reports whether the selected elements all share one group.
func (s *Session) SameGroup() bool {
	return groups.ElementsAreInSameGroup(s.SelectedElements(selection.Options{}))
}

func compactIDs(elements []*element.Element) []string {
	ids := element.IDs(elements)
	slices.Sort(ids)
	return slices.Compact(ids)
}
