package entry

// FavoritesFirst returns a new slice with every favorite entry ahead of every
// non-favorite one. Relative order inside each group is preserved.
func FavoritesFirst(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Favorite {
			out = append(out, e)
		}
	}
	for _, e := range entries {
		if !e.Favorite {
			out = append(out, e)
		}
	}
	return out
}

// IndexOf returns the position of the entry with id, or -1.
func IndexOf(entries []Entry, id string) int {
	for i := range entries {
		if entries[i].ID == id {
			return i
		}
	}
	return -1
}

// Without returns entries minus the one with id. The input is not modified.
func Without(entries []Entry, id string) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}
