// Package ir defines the normalized intermediate representation of a
// workbook: the storage-ready model produced by analysis and consumed by
// reconstruction, independent of any specific workbook library.
package ir

// Metadata holds workbook-level project metadata.
type Metadata struct {
	// ProjectName is the project name, usually the source file base name.
	ProjectName string `json:"project_name"`
	// Author is the recorded author of the analysis run.
	Author string `json:"author"`
	// CreatedAt is the analysis timestamp as an ISO-8601 string.
	CreatedAt string `json:"created_at"`
}

// Workbook is the unit handed to the persistent store: an ordered sequence
// of sheets plus project metadata. It is immutable once produced.
type Workbook struct {
	// Meta is the project metadata.
	Meta Metadata `json:"metadata"`
	// Sheets are the analyzed sheets in source order.
	Sheets []Sheet `json:"sheets"`
}

// Sheet finds a sheet by name. Returns nil if absent.
func (w *Workbook) Sheet(name string) *Sheet {
	for i := range w.Sheets {
		if w.Sheets[i].Name == name {
			return &w.Sheets[i]
		}
	}
	return nil
}
