package datastore

import (
	"time"

	"github.com/nikmy/datamaps/internal/repo/models"
)

type IssueData struct {
	*Collection[models.Issue, *IssueModel]
}

func (d *IssueData) AddIssues(issues []models.Issue) {
	d.Add(issues...)
}

func (d *IssueData) DeleteIssue(issueID string) {
	d.Delete(issueID)
}

func (d *IssueData) GetIssueByID(issueID string) (*IssueModel, bool) {
	return d.Get(issueID)
}

// IssueModel satisfies filters.Subject.
type IssueModel struct {
	record models.Issue
	store  *DataStore
}

func (s *DataStore) newIssueModel(i models.Issue) *IssueModel {
	return &IssueModel{record: i, store: s}
}

func (i *IssueModel) ID() string   { return i.record.ID }
func (i *IssueModel) Name() string { return i.record.Name }

func (i *IssueModel) Record() models.Issue {
	return i.record
}

func (i *IssueModel) Project() (*ProjectModel, bool) {
	return i.store.Projects.Get(i.record.ProjectID)
}

func (i *IssueModel) State() (*StateModel, bool) {
	return i.store.States.Get(i.record.StateID)
}

// StateGroup is empty while the issue state is not loaded.
func (i *IssueModel) StateGroup() string {
	s, ok := i.State()
	if !ok {
		return ""
	}
	return string(s.Group())
}

func (i *IssueModel) Priority() string {
	if i.record.Priority == "" {
		return string(models.PriorityNone)
	}
	return string(i.record.Priority)
}

func (i *IssueModel) StateID() string        { return i.record.StateID }
func (i *IssueModel) CreatedBy() string      { return i.record.CreatedBy }
func (i *IssueModel) LabelIDs() []string     { return i.record.LabelIDs }
func (i *IssueModel) AssigneeIDs() []string  { return i.record.AssigneeIDs }
func (i *IssueModel) MentionIDs() []string   { return i.record.MentionIDs }
func (i *IssueModel) StartDate() *time.Time  { return i.record.StartDate }
func (i *IssueModel) TargetDate() *time.Time { return i.record.TargetDate }
