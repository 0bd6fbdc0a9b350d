package datastore

import "github.com/nikmy/datamaps/internal/repo/models"

// WorkspaceData is the data map of workspaces.
type WorkspaceData struct {
	*Collection[models.Workspace, *WorkspaceModel]
}

func (d *WorkspaceData) AddWorkspaces(workspaces []models.Workspace) {
	d.Add(workspaces...)
}

func (d *WorkspaceData) DeleteWorkspace(workspaceID string) {
	d.Delete(workspaceID)
}

func (d *WorkspaceData) GetWorkspaceByID(workspaceID string) (*WorkspaceModel, bool) {
	return d.Get(workspaceID)
}

// GetWorkspaceBySlug scans the map, slugs are not keys.
func (d *WorkspaceData) GetWorkspaceBySlug(slug string) (*WorkspaceModel, bool) {
	found := d.Filter(func(w *WorkspaceModel) bool { return w.record.Slug == slug })
	if len(found) == 0 {
		return nil, false
	}
	return found[0], true
}

type WorkspaceModel struct {
	record models.Workspace
	store  *DataStore
}

func (s *DataStore) newWorkspaceModel(w models.Workspace) *WorkspaceModel {
	return &WorkspaceModel{record: w, store: s}
}

func (w *WorkspaceModel) ID() string   { return w.record.ID }
func (w *WorkspaceModel) Name() string { return w.record.Name }
func (w *WorkspaceModel) Slug() string { return w.record.Slug }

func (w *WorkspaceModel) Record() models.Workspace {
	return w.record
}

func (w *WorkspaceModel) Projects() []*ProjectModel {
	return w.store.Projects.Filter(func(p *ProjectModel) bool {
		return p.record.WorkspaceID == w.record.ID
	})
}
