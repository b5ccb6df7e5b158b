package metadata

// Index is the two-level MetadataIndex: url -> unique_http_hash -> ordered
// list of Metadata. Duplicates within a list are intentional (a caller may
// certify multiple response bodies for the same URL+method+status).
type Index struct {
	byURL map[string]map[string][]*Metadata
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{byURL: map[string]map[string][]*Metadata{}}
}

// Insert appends m to the ordered list at (url, uniqueHash).
func (idx *Index) Insert(url string, uniqueHash []byte, m *Metadata) {
	inner, ok := idx.byURL[url]
	if !ok {
		inner = map[string][]*Metadata{}
		idx.byURL[url] = inner
	}
	key := string(uniqueHash)
	inner[key] = append(inner[key], m)
}

// Lists returns the candidate Metadata lists for a URL across all inner
// keys, or nil if the URL is absent.
func (idx *Index) Lists(url string) map[string][]*Metadata {
	return idx.byURL[url]
}

// List returns the ordered Metadata list at (url, uniqueHash), or nil.
func (idx *Index) List(url string, uniqueHash []byte) []*Metadata {
	inner, ok := idx.byURL[url]
	if !ok {
		return nil
	}
	return inner[string(uniqueHash)]
}

// RemoveMatching deletes the first Metadata at (url, uniqueHash) for which
// match returns true, pruning the inner/outer map levels when they become
// empty. It reports whether an entry was removed.
func (idx *Index) RemoveMatching(url string, uniqueHash []byte, match func(*Metadata) bool) (*Metadata, bool) {
	inner, ok := idx.byURL[url]
	if !ok {
		return nil, false
	}
	key := string(uniqueHash)
	list := inner[key]
	for i, m := range list {
		if !match(m) {
			continue
		}
		list = append(list[:i], list[i+1:]...)
		if len(list) == 0 {
			delete(inner, key)
		} else {
			inner[key] = list
		}
		if len(inner) == 0 {
			delete(idx.byURL, url)
		}
		return m, true
	}
	return nil, false
}

// RemoveAllForURL deletes every Metadata stored under url and returns them
// (insertion order within each inner list, inner keys in no particular
// order), so the caller can also delete their tree leaves.
func (idx *Index) RemoveAllForURL(url string) []*Metadata {
	inner, ok := idx.byURL[url]
	if !ok {
		return nil
	}
	var all []*Metadata
	for _, list := range inner {
		all = append(all, list...)
	}
	delete(idx.byURL, url)
	return all
}

// Clear empties the whole index.
func (idx *Index) Clear() {
	idx.byURL = map[string]map[string][]*Metadata{}
}

// Endpoints returns a copy of every stored Metadata (each carrying its
// certified EndpointRecord), in insertion order
// within each (url, uniqueHash) list, with no ordering guarantee across
// URLs or hash tiers.
func (idx *Index) Endpoints() []Metadata {
	var out []Metadata
	for _, inner := range idx.byURL {
		for _, list := range inner {
			for _, m := range list {
				out = append(out, *m)
			}
		}
	}
	return out
}
