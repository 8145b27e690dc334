package similarity

// Groups maps a user-facing field group to the index fields whose terms
// describe it.
type Groups map[string][]string

// DefaultGroups returns the built-in field groups.
func DefaultGroups() Groups {
	return Groups{
		"title/description": {"title.analyzed", "description.analyzed"},
		"items":             {"items.keyword"},
		"bossMonsters":      {"bossMonsters.keyword"},
		"commonMonsters":    {"commonMonsters.keyword"},
	}
}

// Fields returns the index fields of a group. Unknown and empty groups report false.
func (g Groups) Fields(group string) ([]string, bool) {
	fields, ok := g[group]
	return fields, ok && len(fields) > 0
}
