package wood

import (
	"github.com/tidwall/gjson"

	"github.com/matzehuels/godswood/pkg/core/node"
)

// Keys of the tree document.
const (
	keyName        = "name"
	keyDisplayName = "display_name"
	keyChildren    = "children"
)

// raw adapts a decoded JSON object to [node.Raw].
type raw struct {
	gjson.Result
}

var _ node.Raw = raw{}

// String returns the string value under key, or fallback when the key is
// missing, empty or not a string.
func (r raw) String(key, fallback string) string {
	v := r.Get(gjson.Escape(key))
	if v.Type != gjson.String || v.Str == "" {
		return fallback
	}
	return v.Str
}

// entry is one (name, subtree) pair under a "children" object.
type entry struct {
	name string
	raw  raw
}

// children returns the entries under r's "children" object in document
// order. Anything other than an object yields no children.
func (r raw) children() []entry {
	c := r.Get(keyChildren)
	if !c.IsObject() {
		return nil
	}
	var out []entry
	c.ForEach(func(k, v gjson.Result) bool {
		out = append(out, entry{name: k.String(), raw: raw{v}})
		return true
	})
	return out
}
