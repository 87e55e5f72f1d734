package record

import "encoding/json"

// Header is the ordered, read-only list of column names shared by the
// records of one extraction.
type Header struct {
	names []string
	index map[string]int
}

func NewHeader(names []string) *Header {
	h := &Header{
		names: append([]string(nil), names...),
		index: make(map[string]int, len(names)),
	}
	for i, n := range h.names {
		if _, ok := h.index[n]; !ok {
			h.index[n] = i
		}
	}
	return h
}

func (h *Header) Len() int { return len(h.names) }

func (h *Header) Names() []string {
	return append([]string(nil), h.names...)
}

func (h *Header) Name(i int) string { return h.names[i] }

func (h *Header) Index(name string) (int, bool) {
	i, ok := h.index[name]
	return i, ok
}

// Record is one extracted row. It is never modified after NewRecord.
type Record struct {
	header *Header
	values []Value
}

// NewRecord binds values to header positionally. Missing trailing values are
// Null, extra values are dropped.
func NewRecord(header *Header, values []Value) Record {
	vs := make([]Value, header.Len())
	copy(vs, values)
	return Record{header: header, values: vs}
}

func (r Record) Header() *Header { return r.header }

func (r Record) Len() int { return len(r.values) }

func (r Record) Columns() []string { return r.header.Names() }

func (r Record) At(i int) Value { return r.values[i] }

func (r Record) Get(column string) (Value, bool) {
	i, ok := r.header.Index(column)
	if !ok {
		return NullValue(), false
	}
	return r.values[i], true
}

func (r Record) Values() []Value {
	return append([]Value(nil), r.values...)
}

// IsBlank reports whether every value is Null.
func (r Record) IsBlank() bool {
	for _, v := range r.values {
		if !v.IsNull() {
			return false
		}
	}
	return true
}

// Params returns the column -> bind parameter map for an insert.
func (r Record) Params(asText bool) map[string]any {
	m := make(map[string]any, len(r.values))
	for i, v := range r.values {
		m[r.header.names[i]] = v.Param(asText)
	}
	return m
}

func (r Record) Map() map[string]Value {
	m := make(map[string]Value, len(r.values))
	for i, v := range r.values {
		m[r.header.names[i]] = v
	}
	return m
}

func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Map())
}
