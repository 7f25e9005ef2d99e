package session

import (
	"slices"

	"github.com/roach88/scenecore/internal/element"
	"github.com/roach88/scenecore/internal/groups"
	"github.com/roach88/scenecore/internal/selection"
)

// resolve checks that every id names a live element.
func (s *Session) resolve(ids []string) ([]*element.Element, error) {
	out := make([]*element.Element, 0, len(ids))
	var missing []string
	for _, id := range ids {
		e := s.scene.Get(id)
		if e == nil || e.IsDeleted {
			missing = append(missing, id)
			continue
		}
		out = append(out, e)
	}
	if len(missing) > 0 {
		return nil, &UnknownElementError{IDs: missing}
	}
	return out, nil
}

// widen resolves st into whole-group selection against the live scene.
func (s *Session) widen(st selection.State) selection.State {
	return groups.SelectGroupsForSelectedElements(s.cache, st, s.elements(), s.view.State)
}

// Select replaces the selection with ids and widens it to whole groups.
// Group editing ends unless one of the elements is inside the edited group.
func (s *Session) Select(ids ...string) error {
	picked, err := s.resolve(ids)
	if err != nil {
		return err
	}

	st := selection.NewState(ids...)
	st.EditingGroupID = s.view.EditingGroupID
	if st.EditingGroupID != "" && !slices.ContainsFunc(picked, func(e *element.Element) bool {
		return groups.IsElementInGroup(e, st.EditingGroupID)
	}) {
		st.EditingGroupID = ""
	}

	s.setSelection(s.widen(st), "select")
	return nil
}

// SelectAll selects every unlocked element. Frame children and bound labels
// are covered by their frame or container.
func (s *Session) SelectAll() {
	var candidates []*element.Element
	for _, e := range s.elements() {
		if e.Locked || e.IsBoundToContainer() {
			continue
		}
		candidates = append(candidates, e)
	}
	candidates = selection.ExcludeElementsInFramesFromSelection(candidates)

	st := selection.NewState(element.IDs(candidates)...)
	s.setSelection(s.widen(st), "select_all")
}

// ClearSelection deselects everything and leaves group editing.
func (s *Session) ClearSelection() {
	s.setSelection(s.widen(selection.NewState()), "clear")
}

// SelectGroup selects a whole group by id. Unknown or single-member groups
// degrade as groups.SelectGroup describes.
func (s *Session) SelectGroup(groupID string) {
	s.setSelection(groups.SelectGroup(groupID, s.view.State, s.elements()), "select_group")
}

// EnterGroup starts editing the outermost group of id and selects id alone.
func (s *Session) EnterGroup(id string) error {
	picked, err := s.resolve([]string{id})
	if err != nil {
		return err
	}
	s.setSelection(groups.EditGroupForSelectedElement(s.view.State, picked[0]), "enter_group")
	return nil
}

// ExitGroup stops editing the current group and widens the selection again.
func (s *Session) ExitGroup() {
	st := s.view.State
	st.EditingGroupID = ""
	s.setSelection(s.widen(st), "exit_group")
}

// BoxSelect selects what a rubber band from (x1,y1) to (x2,y2) encloses.
// While editing a group only its members can be picked.
func (s *Session) BoxSelect(x1, y1, x2, y2 float64) {
	box := element.SelectionBox(x1, y1, x2, y2)
	picked := selection.GetElementsWithinSelection(s.elements(), box, true)

	if editing := s.view.EditingGroupID; editing != "" {
		picked = slices.DeleteFunc(picked, func(e *element.Element) bool {
			return !groups.IsElementInGroup(e, editing)
		})
	}

	st := selection.NewState(element.IDs(picked)...)
	st.EditingGroupID = s.view.EditingGroupID
	s.setSelection(s.widen(st), "box_select")
}

// IsSomeElementSelected reports whether anything live is selected.
func (s *Session) IsSomeElementSelected() bool {
	return selection.IsSomeElementSelected(s.cache, s.elements(), s.view.State)
}

// SelectedElements returns the selected live elements.
func (s *Session) SelectedElements(opts selection.Options) []*element.Element {
	return selection.SelectedElements(s.cache, s.elements(), s.view.State, opts)
}

// TargetElements returns what an action would apply to.
func (s *Session) TargetElements() []*element.Element {
	return selection.TargetElements(s.cache, s.elements(), s.view.State)
}

// CommonType returns the element type shared by the whole selection.
func (s *Session) CommonType() (element.Type, bool) {
	return selection.CommonAttribute(s.cache, s.elements(), s.view.State, func(e *element.Element) element.Type {
		return e.Type
	})
}

// OutlinedElementIDs returns the selected elements that get their own
// selection outline, that is, those not already covered by a selected group.
func (s *Session) OutlinedElementIDs() []string {
	var ids []string
	for _, e := range s.SelectedElements(selection.Options{}) {
		if !groups.IsSelectedViaGroup(s.view.State, e) {
			ids = append(ids, e.ID)
		}
	}
	slices.Sort(ids)
	return ids
}
