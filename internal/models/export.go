package models

import "time"

// ExportNote is written into every export file so whoever receives it knows
// how to promote the edits into the compiled-in defaults.
const ExportNote = "Copy the 'assets' array into the catalog defaults, and the 'overrides' values for site_logo and hero_video into the site defaults."

// ExportDocument is the portable configuration file produced by the admin
// export. It is the only interchange format for local edits.
type ExportDocument struct {
	Assets      []Asset     `json:"assets"`
	Overrides   OverrideMap `json:"overrides"`
	GeneratedAt time.Time   `json:"generatedAt"`
	Note        string      `json:"note"`
}

// ExportFilename returns the download filename for an export made at t.
func ExportFilename(t time.Time) string {
	return "db3d-config-" + t.UTC().Format("2006-01-02") + ".json"
}
