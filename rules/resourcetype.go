package rules

import (
	"fmt"
	"math/bits"
	"strings"
)

// ResourceType is the enumeration of the resource types a document can
// request.
type ResourceType uint16

const (
	// TypeDocument is a top-level document, "document".
	TypeDocument ResourceType = 1 << iota
	// TypeImage is an image subresource, "image".
	TypeImage
	// TypeStyleSheet is a CSS stylesheet subresource, "style-sheet".
	TypeStyleSheet
	// TypeScript is a JavaScript subresource, "script".
	TypeScript
	// TypeFont is a web font, "font".
	TypeFont
	// TypeRaw is an uncategorized request, for example an XMLHttpRequest,
	// "raw".
	TypeRaw
	// TypeSVGDocument is an SVG document, "svg-document".
	TypeSVGDocument
	// TypeMedia is a media resource, "media".
	TypeMedia
	// TypePopup is a popup resource, "popup".
	TypePopup
)

// resourceTypeNames maps the names used in rule lists to resource types.
var resourceTypeNames = map[string]ResourceType{
	"document":     TypeDocument,
	"image":        TypeImage,
	"style-sheet":  TypeStyleSheet,
	"script":       TypeScript,
	"font":         TypeFont,
	"raw":          TypeRaw,
	"svg-document": TypeSVGDocument,
	"media":        TypeMedia,
	"popup":        TypePopup,
}

// ParseResourceType returns the resource type with the given rule list name.
// ok is false if the name is not known.
func ParseResourceType(name string) (t ResourceType, ok bool) {
	t, ok = resourceTypeNames[name]

	return t, ok
}

// String implements the [fmt.Stringer] interface for ResourceType.
func (t ResourceType) String() (s string) {
	switch t {
	case TypeDocument:
		return "document"
	case TypeImage:
		return "image"
	case TypeStyleSheet:
		return "style-sheet"
	case TypeScript:
		return "script"
	case TypeFont:
		return "font"
	case TypeRaw:
		return "raw"
	case TypeSVGDocument:
		return "svg-document"
	case TypeMedia:
		return "media"
	case TypePopup:
		return "popup"
	default:
		return fmt.Sprintf("!bad_resource_type_%d", uint16(t))
	}
}

// ResourceTypeSet is a set of resource types a trigger applies to.  The zero
// value, [AllResourceTypes], means that every resource type is included.
type ResourceTypeSet uint16

// AllResourceTypes is the set that matches every resource type.
const AllResourceTypes ResourceTypeSet = 0

// NewResourceTypeSet returns an explicit set of the given types.  If types is
// empty, it returns [AllResourceTypes].
func NewResourceTypeSet(types ...ResourceType) (s ResourceTypeSet) {
	for _, t := range types {
		s |= ResourceTypeSet(t)
	}

	return s
}

// IsAll returns true if s matches every resource type.
func (s ResourceTypeSet) IsAll() (ok bool) {
	return s == AllResourceTypes
}

// Has returns true if t is a member of s.
func (s ResourceTypeSet) Has(t ResourceType) (ok bool) {
	if s.IsAll() {
		return true
	}

	return t != 0 && ResourceTypeSet(t)&s == ResourceTypeSet(t)
}

// Count returns the number of types in an explicit set.  It returns 0 for
// [AllResourceTypes].
func (s ResourceTypeSet) Count() (n int) {
	return bits.OnesCount16(uint16(s))
}

// String implements the [fmt.Stringer] interface for ResourceTypeSet.
func (s ResourceTypeSet) String() (str string) {
	if s.IsAll() {
		return "all"
	}

	names := make([]string, 0, s.Count())
	for t := TypeDocument; t <= TypePopup; t <<= 1 {
		if s.Has(t) {
			names = append(names, t.String())
		}
	}

	return strings.Join(names, "|")
}

// LoadType is the relationship of a request to the originating document.
type LoadType uint8

const (
	// LoadTypeAny is only used in triggers and means that the trigger matches
	// both first-party and third-party loads.
	LoadTypeAny LoadType = iota
	// LoadTypeFirstParty is a same-origin load, "first-party".
	LoadTypeFirstParty
	// LoadTypeThirdParty is a cross-origin load, "third-party".
	LoadTypeThirdParty
)

// ParseLoadType returns the load type with the given rule list name.  ok is
// false if the name is not known.
func ParseLoadType(name string) (t LoadType, ok bool) {
	switch name {
	case "first-party":
		return LoadTypeFirstParty, true
	case "third-party":
		return LoadTypeThirdParty, true
	default:
		return LoadTypeAny, false
	}
}

// String implements the [fmt.Stringer] interface for LoadType.
func (t LoadType) String() (s string) {
	switch t {
	case LoadTypeAny:
		return "any"
	case LoadTypeFirstParty:
		return "first-party"
	case LoadTypeThirdParty:
		return "third-party"
	default:
		return fmt.Sprintf("!bad_load_type_%d", uint8(t))
	}
}
