package ticket

// Category is the closed set of ticket kinds offered by the support panel.
type Category string

const (
	CategoryGeneral     Category = "general"
	CategoryPartner     Category = "partner"
	CategoryReport      Category = "report"
	CategoryApplication Category = "application"
)

// CategoryInfo is the presentation metadata for one category.
type CategoryInfo struct {
	Label       string
	Emoji       string
	Description string
	Color       int
}

var catalog = map[Category]CategoryInfo{
	CategoryGeneral: {
		Label:       "General Support",
		Emoji:       "\U0001F4AC",
		Description: "Ask questions or get help from staff.",
		Color:       0x5865F2,
	},
	CategoryPartner: {
		Label:       "Partnership Inquiry",
		Emoji:       "\U0001F91D",
		Description: "Discuss partnership opportunities.",
		Color:       0x57F287,
	},
	CategoryReport: {
		Label:       "Report User / Issue",
		Emoji:       "\U0001F6A8",
		Description: "Report rule breaks or technical problems.",
		Color:       0xED4245,
	},
	CategoryApplication: {
		Label:       "Staff / Creator Application",
		Emoji:       "\U0001F4DD",
		Description: "Apply for staff or content roles.",
		Color:       0xF1C40F,
	},
}

func (c Category) Valid() bool {
	_, ok := catalog[c]
	return ok
}

func (c Category) Info() CategoryInfo {
	return catalog[c]
}

// SelectableCategories are the entries shown in the panel menu. The
// application flow has its own dedicated control.
func SelectableCategories() []Category {
	return []Category{CategoryGeneral, CategoryPartner, CategoryReport}
}

// Field describes one input in a ticket form.
type Field struct {
	ID          string
	Label       string
	Placeholder string
	Paragraph   bool
	MaxLength   int
	Required    bool
}

// Form returns the input fields collected for a category. Discord modals
// allow at most five rows, which caps the application form.
func (c Category) Form() []Field {
	switch c {
	case CategoryApplication:
		return []Field{
			{ID: "username", Label: "Primary username / IGN", Placeholder: "e.g. horisont1", MaxLength: 64, Required: true},
			{ID: "age", Label: "Age", Placeholder: "Provide your age", MaxLength: 32, Required: true},
			{ID: "staff_experience", Label: "Staff experience", Placeholder: "Where have you moderated? List roles and durations.", Paragraph: true, MaxLength: 500, Required: true},
			{ID: "community_experience", Label: "Community & creator experience", Placeholder: "Achievements, strengths, content links + metrics.", Paragraph: true, MaxLength: 500, Required: true},
			{ID: "availability", Label: "Availability", Placeholder: "Hours per week and time zones you can help.", MaxLength: 200, Required: true},
		}
	case CategoryReport:
		return []Field{
			{ID: "details", Label: "Details", Placeholder: "Describe what happened and who was involved.", Paragraph: true, MaxLength: 1000, Required: true},
		}
	default:
		return []Field{
			{ID: "details", Label: "Details", Placeholder: "Share a short summary so staff know how to help.", Paragraph: true, MaxLength: 1000, Required: true},
		}
	}
}
