package library

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FileGroup is the per-directory grouping used for episode NFO and STRM
// files inside a TV show entry. Paths are in natural order.
type FileGroup struct {
	Dir   string
	Paths []string
}

// FileList is one manifest category's value: either a flat ordered path list
// or, for grouped TV categories, an ordered list of directory groups. The two
// forms are mutually exclusive.
type FileList struct {
	Paths  []string
	Groups []FileGroup
}

// IsGrouped reports whether the list carries per-directory groups.
func (l FileList) IsGrouped() bool { return len(l.Groups) > 0 }

// All returns every path in the list, groups flattened in order.
func (l FileList) All() []string {
	if !l.IsGrouped() {
		return l.Paths
	}
	var out []string
	for _, g := range l.Groups {
		out = append(out, g.Paths...)
	}
	return out
}

// MarshalJSON implements the manifest shape contract: a single flat path
// serializes as a bare string, several as an array, and groups as an array
// of one-key objects. Downstream consumers branch on these shapes.
func (l FileList) MarshalJSON() ([]byte, error) {
	if l.IsGrouped() {
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, g := range l.Groups {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(g.Dir)
			if err != nil {
				return nil, err
			}
			paths, err := json.Marshal(g.Paths)
			if err != nil {
				return nil, err
			}
			buf.WriteByte('{')
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(paths)
			buf.WriteByte('}')
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	}
	if len(l.Paths) == 1 {
		return json.Marshal(l.Paths[0])
	}
	return json.Marshal(l.Paths)
}

// UnmarshalJSON accepts all three serialized shapes.
func (l *FileList) UnmarshalJSON(data []byte) error {
	*l = FileList{}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		l.Paths = []string{single}
		return nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return fmt.Errorf("manifest value: %w", err)
	}
	for _, elem := range elems {
		trimmed := bytes.TrimSpace(elem)
		if len(trimmed) > 0 && trimmed[0] == '{' {
			group, err := parseGroup(trimmed)
			if err != nil {
				return err
			}
			l.Groups = append(l.Groups, group)
			continue
		}
		var p string
		if err := json.Unmarshal(elem, &p); err != nil {
			return fmt.Errorf("manifest path: %w", err)
		}
		l.Paths = append(l.Paths, p)
	}
	if len(l.Paths) > 0 && len(l.Groups) > 0 {
		return fmt.Errorf("manifest value mixes paths and groups")
	}
	return nil
}

func parseGroup(data []byte) (FileGroup, error) {
	var m map[string][]string
	if err := json.Unmarshal(data, &m); err != nil {
		return FileGroup{}, fmt.Errorf("manifest group: %w", err)
	}
	if len(m) != 1 {
		return FileGroup{}, fmt.Errorf("manifest group has %d keys, want 1", len(m))
	}
	for dir, paths := range m {
		return FileGroup{Dir: dir, Paths: paths}, nil
	}
	return FileGroup{}, nil
}

// FileSet is a categorized file manifest with stable category order
// (category insertion order from the scan).
type FileSet struct {
	order []string
	lists map[string]*FileList
}

// Append adds a path to a flat category, creating the category on first use.
func (s *FileSet) Append(category, path string) {
	s.list(category).Paths = append(s.list(category).Paths, path)
}

// AppendGrouped adds a path to the named directory group of a category.
func (s *FileSet) AppendGrouped(category, dir, path string) {
	l := s.list(category)
	for i := range l.Groups {
		if l.Groups[i].Dir == dir {
			l.Groups[i].Paths = append(l.Groups[i].Paths, path)
			return
		}
	}
	l.Groups = append(l.Groups, FileGroup{Dir: dir, Paths: []string{path}})
}

// Get returns the list for a category.
func (s *FileSet) Get(category string) (FileList, bool) {
	if s.lists == nil {
		return FileList{}, false
	}
	l, ok := s.lists[category]
	if !ok {
		return FileList{}, false
	}
	return *l, true
}

// All returns every path recorded under a category, groups flattened.
func (s *FileSet) All(category string) []string {
	l, ok := s.Get(category)
	if !ok {
		return nil
	}
	return l.All()
}

// Categories returns category keys in insertion order.
func (s *FileSet) Categories() []string {
	return append([]string(nil), s.order...)
}

// Len returns the number of categories present.
func (s *FileSet) Len() int { return len(s.order) }

func (s *FileSet) list(category string) *FileList {
	if s.lists == nil {
		s.lists = make(map[string]*FileList)
	}
	l, ok := s.lists[category]
	if !ok {
		l = &FileList{}
		s.lists[category] = l
		s.order = append(s.order, category)
	}
	return l
}

// MarshalJSON writes the manifest as an object with categories in insertion
// order, so re-scans of an unchanged tree are byte-identical.
func (s FileSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cat := range s.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(cat)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(s.lists[cat])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a manifest object, preserving key order.
func (s *FileSet) UnmarshalJSON(data []byte) error {
	*s = FileSet{}
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("manifest: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("manifest: expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("manifest key: %w", err)
		}
		cat, ok := tok.(string)
		if !ok {
			return fmt.Errorf("manifest key: got %v", tok)
		}
		var l FileList
		if err := dec.Decode(&l); err != nil {
			return fmt.Errorf("manifest %s: %w", cat, err)
		}
		*s.list(cat) = l
	}
	return nil
}
