package datastore

import "github.com/nikmy/datamaps/internal/repo/models"

type ProjectData struct {
	*Collection[models.Project, *ProjectModel]
}

func (d *ProjectData) AddProjects(projects []models.Project) {
	d.Add(projects...)
}

func (d *ProjectData) DeleteProject(projectID string) {
	d.Delete(projectID)
}

func (d *ProjectData) GetProjectByID(projectID string) (*ProjectModel, bool) {
	return d.Get(projectID)
}

type ProjectModel struct {
	record models.Project
	store  *DataStore
}

func (s *DataStore) newProjectModel(p models.Project) *ProjectModel {
	return &ProjectModel{record: p, store: s}
}

func (p *ProjectModel) ID() string         { return p.record.ID }
func (p *ProjectModel) Name() string       { return p.record.Name }
func (p *ProjectModel) Identifier() string { return p.record.Identifier }

func (p *ProjectModel) Record() models.Project {
	return p.record
}

func (p *ProjectModel) Workspace() (*WorkspaceModel, bool) {
	return p.store.Workspaces.Get(p.record.WorkspaceID)
}

func (p *ProjectModel) States() []*StateModel {
	return p.store.States.Filter(func(s *StateModel) bool {
		return s.record.ProjectID == p.record.ID
	})
}

// DefaultState is the state new issues of the project start in.
func (p *ProjectModel) DefaultState() (*StateModel, bool) {
	for _, s := range p.States() {
		if s.record.Default {
			return s, true
		}
	}
	return nil, false
}

func (p *ProjectModel) Issues() []*IssueModel {
	return p.store.Issues.Filter(func(i *IssueModel) bool {
		return i.record.ProjectID == p.record.ID
	})
}
