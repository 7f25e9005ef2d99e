package selection

import (
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/roach88/scenecore/internal/element"
)

// fingerprint accumulates a 64-bit content digest. Every field is followed
// by a 0x00 separator so adjacent strings cannot run together.
type fingerprint struct {
	d *xxhash.Digest
}

func newFingerprint() fingerprint {
	return fingerprint{d: xxhash.New()}
}

func (f fingerprint) str(s string) fingerprint {
	_, _ = f.d.WriteString(s)
	_, _ = f.d.Write([]byte{0x00})
	return f
}

func (f fingerprint) int(n int64) fingerprint {
	return f.str(strconv.FormatInt(n, 10))
}

func (f fingerprint) bool(b bool) fingerprint {
	if b {
		return f.str("1")
	}
	return f.str("0")
}

// elements digests everything about elements that selection results depend
// on: identity, version, membership and the links to frames and labels.
func (f fingerprint) elements(elements []*element.Element) fingerprint {
	f.int(int64(len(elements)))
	for _, e := range elements {
		f.str(e.ID).int(e.Version).str(string(e.Type))
		f.int(int64(len(e.GroupIDs)))
		for _, gid := range e.GroupIDs {
			f.str(gid)
		}
		f.str(e.FrameID).str(e.ContainerID).bool(e.IsDeleted)
	}
	return f
}

// ids digests a membership map in sorted key order, false entries included.
func (f fingerprint) ids(m map[string]bool) fingerprint {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sortStrings(keys)
	f.int(int64(len(keys)))
	for _, k := range keys {
		f.str(k).bool(m[k])
	}
	return f
}

// state digests every field of a State.
func (f fingerprint) state(s State) fingerprint {
	f.ids(s.SelectedElementIDs).ids(s.SelectedGroupIDs).str(s.EditingGroupID)
	if s.EditingElement != nil {
		f.str(s.EditingElement.ID).int(s.EditingElement.Version)
	} else {
		f.str("")
	}
	return f
}

func (f fingerprint) sum() uint64 {
	return f.d.Sum64()
}
