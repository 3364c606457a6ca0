package metrics

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
