package importrun

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"projimport/internal/backup"
)

// Bundle holds the Old Records of one exported project.
type Bundle struct {
	Project           backup.Project            `yaml:"project"`
	Issues            []backup.Issue            `yaml:"issues,omitempty"`
	Comments          []backup.Comment          `yaml:"comments,omitempty"`
	Worklogs          []backup.Worklog          `yaml:"worklogs,omitempty"`
	ChangeGroups      []backup.ChangeGroup      `yaml:"change_groups,omitempty"`
	ChangeItems       []backup.ChangeItem       `yaml:"change_items,omitempty"`
	IssueLinks        []backup.IssueLink        `yaml:"issue_links,omitempty"`
	NodeAssociations  []backup.NodeAssociation  `yaml:"node_associations,omitempty"`
	Voters            []backup.Voter            `yaml:"voters,omitempty"`
	Watchers          []backup.Watcher          `yaml:"watchers,omitempty"`
	Labels            []backup.Label            `yaml:"labels,omitempty"`
	Attachments       []backup.Attachment       `yaml:"attachments,omitempty"`
	CustomFieldValues []backup.CustomFieldValue `yaml:"custom_field_values,omitempty"`
}

// LoadBundle loads a YAML bundle from path.
func LoadBundle(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bundle %s: %w", path, err)
	}

	return ParseBundle(data)
}

// ParseBundle parses a YAML bundle.
func ParseBundle(data []byte) (*Bundle, error) {
	var b Bundle
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to parse bundle YAML: %w", err)
	}

	if b.Project.ID == "" {
		return nil, errors.New("bundle has no project id")
	}

	return &b, nil
}
