package mealie

import "github.com/tidwall/gjson"

// listingShape tags the forms a collection endpoint has been seen to return.
type listingShape int

const (
	shapeUnknown listingShape = iota
	shapeArray                // [ ... ]
	shapeItems                // {"items": [ ... ], ...}
	shapeKeyed                // {"<id>": { ... }, ...}
)

type listing struct {
	shape   listingShape
	entries []gjson.Result
}

func classifyListing(body []byte) listing {
	if !gjson.ValidBytes(body) {
		return listing{shape: shapeUnknown}
	}
	root := gjson.ParseBytes(body)
	switch {
	case root.IsArray():
		return listing{shape: shapeArray, entries: root.Array()}
	case root.IsObject():
		if items := root.Get("items"); items.IsArray() {
			return listing{shape: shapeItems, entries: items.Array()}
		}
		var entries []gjson.Result
		root.ForEach(func(_, value gjson.Result) bool {
			if !falsyScalar(value) {
				entries = append(entries, value)
			}
			return true
		})
		return listing{shape: shapeKeyed, entries: entries}
	default:
		return listing{shape: shapeUnknown}
	}
}

// falsyScalar reports values that carry no usable name in an id-keyed map.
func falsyScalar(v gjson.Result) bool {
	switch v.Type {
	case gjson.Null, gjson.False:
		return true
	case gjson.String:
		return v.Str == ""
	case gjson.Number:
		return v.Num == 0
	default:
		return false
	}
}

// createdShape tags the forms POST /api/recipes answers with.
type createdShape int

const (
	createdUnknown createdShape = iota
	createdRecord
	createdIdentifier
	createdFirstOfArray
)

type created struct {
	shape      createdShape
	record     gjson.Result
	identifier string
}

func classifyCreated(body []byte) created {
	if !gjson.ValidBytes(body) {
		return created{shape: createdUnknown}
	}
	root := gjson.ParseBytes(body)
	switch {
	case root.IsObject():
		return created{shape: createdRecord, record: root}
	case root.Type == gjson.String:
		return created{shape: createdIdentifier, identifier: root.Str}
	case root.IsArray():
		first := root.Get("0")
		if first.IsObject() {
			return created{shape: createdFirstOfArray, record: first}
		}
	}
	return created{shape: createdUnknown}
}
