package render

import (
	"github.com/roach88/scenecore/internal/element"
)

// Source is what the canvases read from the scene.
type Source interface {
	MutationNonce() int64
	NonDeletedElements() []*element.Element
}

// Deriver memoizes the renderable element list on the mutation nonce.
//
// The list is recomputed only when the nonce changes. View-state inputs of
// the filter (pending image, text being edited) do not invalidate it on
// their own; they are expected to change together with a scene mutation.
type Deriver struct {
	valid    bool
	nonce    int64
	elements []*element.Element
	runs     int
}

// Elements returns the renderable elements and the nonce they were derived
// at. An image not yet placed on the canvas and the text element being
// edited are left out.
func (d *Deriver) Elements(src Source, vs ViewState) ([]*element.Element, int64) {
	nonce := src.MutationNonce()
	if d.valid && d.nonce == nonce {
		return d.elements, nonce
	}

	all := src.NonDeletedElements()
	out := make([]*element.Element, 0, len(all))
	for _, e := range all {
		if e.Type == element.TypeImage && vs.PendingImageElementID == e.ID {
			continue
		}
		if vs.EditingElement != nil && vs.EditingElement.Type == element.TypeText && vs.EditingElement.ID == e.ID {
			continue
		}
		out = append(out, e)
	}

	d.elements = out
	d.nonce = nonce
	d.valid = true
	d.runs++
	return out, nonce
}

// Runs returns how many times the list was recomputed.
func (d *Deriver) Runs() int {
	return d.runs
}
