package libpro

// icon tags per category, used when an upload does not bring its own
var categoryIcons = map[string]string{
	"Technology":  "fas fa-microchip",
	"Programming": "fas fa-code",
	"Science":     "fas fa-flask",
	"Business":    "fas fa-chart-line",
}

func DefaultIcon() string {
	return "fas fa-book"
}

// IconForCategory returns the icon tag for a category label, falling back
// to the generic book icon for anything it does not recognize.
func IconForCategory(category string) string {
	if icon, ok := categoryIcons[category]; ok {
		return icon
	}
	return DefaultIcon()
}
