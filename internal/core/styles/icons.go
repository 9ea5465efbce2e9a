package styles

var (
	IconDone     = "✓"
	IconOpen     = "○"
	IconDeleted  = "✗"
	IconTag      = "#"
	IconCategory = "▸"
	IconSchedule = "◷"
)
