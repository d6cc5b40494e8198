package transform

import (
	"projimport/internal/backup"
	"projimport/internal/diagnostic"
	"projimport/internal/entity"
	"projimport/internal/mapping"
	"projimport/internal/target"
)

// ProjectTransformer creates the destination project when it does not exist
// yet. The lead is the only reference and it is optional.
type ProjectTransformer struct {
	sink diagnostic.Sink
}

// NewProjectTransformer creates a ProjectTransformer reporting to sink.
func NewProjectTransformer(sink diagnostic.Sink) *ProjectTransformer {
	return &ProjectTransformer{sink: sinkOrDiscard(sink)}
}

// Transform returns the import-ready project. It never returns nil.
func (t *ProjectTransformer) Transform(p mapping.Provider, old backup.Project) *target.Project {
	r := newRefs(p, t.sink, entity.KindProject, old.Key)

	return &target.Project{
		SourceID:     old.ID,
		Key:          old.Key,
		OriginalKey:  old.OriginalKey,
		Name:         old.Name,
		Description:  old.Description,
		LeadKey:      r.optional("lead", entity.KindUser, old.LeadKey),
		URL:          old.URL,
		EmailSender:  old.EmailSender,
		AssigneeType: old.AssigneeType,
		Counter:      old.Counter,
	}
}
