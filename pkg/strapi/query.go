package strapi

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// PopulateAll populates every first-level relation.
const PopulateAll = "*"

// Filters is a Strapi filter tree. Keys are field names or operators ($eq,
// $in, $and, ...); values are scalars, slices of any type or nested Filters.
type Filters map[string]any

// Eq matches field values equal to v.
func Eq(v any) Filters { return Filters{"$eq": v} }

// In matches field values contained in vs.
func In(vs ...string) Filters { return Filters{"$in": vs} }

// PageRequest selects a page of a collection.
type PageRequest struct {
	Page     int
	PageSize int
}

// Options shape a collection query.
//
// Populate accepts PopulateAll, a []string of relation names or a
// string-keyed map of per-relation settings.
type Options struct {
	Populate   any
	Filters    Filters
	Sort       []string
	Pagination *PageRequest
}

// merge returns o with every unset field taken from defaults.
func (o Options) merge(defaults Options) Options {
	out := defaults
	if o.Populate != nil {
		out.Populate = o.Populate
	}
	if o.Filters != nil {
		out.Filters = o.Filters
	}
	if o.Sort != nil {
		out.Sort = o.Sort
	}
	if o.Pagination != nil {
		out.Pagination = o.Pagination
	}
	return out
}

// Encode renders the options in the bracket grammar Strapi parses
// ("filters[slug][$eq]=x&sort[0]=order%3Aasc"). Keys are written literally,
// values are percent-encoded, map keys are sorted and list order is kept.
func (o Options) Encode() string {
	var pairs []string
	add := func(key string, v any) {
		pairs = appendPairs(pairs, key, v)
	}

	if o.Populate != nil {
		add("populate", o.Populate)
	}
	if len(o.Filters) > 0 {
		add("filters", map[string]any(o.Filters))
	}
	if len(o.Sort) > 0 {
		add("sort", o.Sort)
	}
	if p := o.Pagination; p != nil {
		page := map[string]any{}
		if p.Page > 0 {
			page["page"] = p.Page
		}
		if p.PageSize > 0 {
			page["pageSize"] = p.PageSize
		}
		add("pagination", page)
	}

	return strings.Join(pairs, "&")
}

// appendPairs flattens v under key. Slices and arrays become key[i] and
// string-keyed maps become key[k] in sorted key order; nil values are dropped.
func appendPairs(pairs []string, key string, v any) []string {
	if v == nil {
		return pairs
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return pairs
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		for _, k := range keys {
			pairs = appendPairs(pairs, key+"["+k.String()+"]", rv.MapIndex(k).Interface())
		}
		return pairs
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			pairs = appendPairs(pairs, key+"["+strconv.Itoa(i)+"]", rv.Index(i).Interface())
		}
		return pairs
	}
	return append(pairs, key+"="+escapeValue(fmt.Sprint(rv.Interface())))
}

const upperhex = "0123456789ABCDEF"

// escapeValue percent-encodes everything outside the RFC 3986 unreserved set.
func escapeValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '_', c == '.', c == '~':
		return true
	}
	return false
}
