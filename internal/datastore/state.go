package datastore

import "github.com/nikmy/datamaps/internal/repo/models"

type StateData struct {
	*Collection[models.State, *StateModel]
}

func (d *StateData) AddStates(states []models.State) {
	d.Add(states...)
}

func (d *StateData) DeleteState(stateID string) {
	d.Delete(stateID)
}

func (d *StateData) GetStateByID(stateID string) (*StateModel, bool) {
	return d.Get(stateID)
}

type StateModel struct {
	record models.State
	store  *DataStore
}

func (s *DataStore) newStateModel(st models.State) *StateModel {
	return &StateModel{record: st, store: s}
}

func (s *StateModel) ID() string               { return s.record.ID }
func (s *StateModel) Name() string             { return s.record.Name }
func (s *StateModel) Group() models.StateGroup { return s.record.Group }

func (s *StateModel) Record() models.State {
	return s.record
}

func (s *StateModel) Project() (*ProjectModel, bool) {
	return s.store.Projects.Get(s.record.ProjectID)
}
