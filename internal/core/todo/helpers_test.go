package todo

func ptr(s string) *string { return &s }

func newTodo(id string, mods ...func(*Todo)) Todo {
	t := Todo{
		ID:        id,
		Title:     "todo " + id,
		Priority:  PriorityMedium,
		TagIDs:    []string{},
		CreatedAt: "2024-01-01T00:00:00.000Z",
		UpdatedAt: "2024-01-01T00:00:00.000Z",
	}
	for _, mod := range mods {
		mod(&t)
	}
	return t
}

func ids(todos []Todo) []string {
	return TodoIDs(todos)
}
