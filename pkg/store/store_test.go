package store

import (
	"os"
	"path/filepath"
	"testing"

	"thingherder/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "thingherder.json"))
	require.NoError(t, err)
	return s
}

func newTestAgent(t *testing.T, s *Store, name string) *models.Agent {
	t.Helper()
	agent, err := s.RegisterAgent(models.AgentRegisterRequest{Name: name, DisplayName: name})
	require.NoError(t, err)
	return agent
}

func TestOpenMissingFile(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetAgentByID("nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, s.ListProjects(ProjectFilter{}))
}

func TestOpenCorruptFileDegradesToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thingherder.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s, err := Open(path)
	require.NoError(t, err, "a corrupt data file must not prevent startup")
	assert.Empty(t, s.ListProjects(ProjectFilter{}))

	// The store is usable and flushes over the corrupt file
	_, err = s.RegisterAgent(models.AgentRegisterRequest{Name: "ada"})
	require.NoError(t, err)
}

func TestOpenMissingMappings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thingherder.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"agents":{}}`), 0o644))

	s, err := Open(path)
	require.NoError(t, err)
	assert.NotNil(t, s.doc.Projects)
	assert.NotNil(t, s.doc.Collaborations)
	assert.NotNil(t, s.doc.Updates)
	assert.NotNil(t, s.doc.Comments)
}

func TestEveryMutationFlushes(t *testing.T) {
	s := newTestStore(t)
	agent := newTestAgent(t, s, "ada")

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), agent.ID, "the document must hit disk before the call returns")
	assert.Contains(t, string(data), `"agents"`)
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thingherder.json")
	s, err := Open(path)
	require.NoError(t, err)

	agent, err := s.RegisterAgent(models.AgentRegisterRequest{
		Name:        "ada",
		DisplayName: "Ada Lovelace",
		Bio:         "first programmer",
		Email:       "ada@example.com",
		Skills:      []string{"math", "engines"},
	})
	require.NoError(t, err)

	project, err := s.CreateProject(models.ProjectCreateRequest{
		Title:            "Analytical Engine",
		Description:      "a general-purpose computer",
		Category:         models.CategoryPhysical,
		SkillsNeeded:     []string{"brass", "math"},
		MaxCollaborators: 3,
	}, agent.ID)
	require.NoError(t, err)

	update, err := s.CreateUpdate(project.ID, agent.ID, "gears arrived")
	require.NoError(t, err)
	comment, err := s.CreateComment(project.ID, agent.ID, "looking good")
	require.NoError(t, err)

	// Reload from the persisted document and compare every field
	reloaded, err := Open(path)
	require.NoError(t, err)

	gotAgent, err := reloaded.GetAgentByID(agent.ID)
	require.NoError(t, err)
	assert.Equal(t, agent.Name, gotAgent.Name)
	assert.Equal(t, agent.DisplayName, gotAgent.DisplayName)
	assert.Equal(t, agent.Bio, gotAgent.Bio)
	assert.Equal(t, agent.Email, gotAgent.Email)
	assert.Equal(t, agent.Skills, gotAgent.Skills)
	assert.Equal(t, agent.APIKey, gotAgent.APIKey, "the secret must survive persistence")
	assert.True(t, agent.CreatedAt.Equal(gotAgent.CreatedAt))

	gotProject, err := reloaded.GetProjectByID(project.ID)
	require.NoError(t, err)
	assert.Equal(t, project.Slug, gotProject.Slug)
	assert.Equal(t, project.Title, gotProject.Title)
	assert.Equal(t, project.Description, gotProject.Description)
	assert.Equal(t, project.Category, gotProject.Category)
	assert.Equal(t, project.Status, gotProject.Status)
	assert.Equal(t, project.SkillsNeeded, gotProject.SkillsNeeded)
	assert.Equal(t, project.MaxCollaborators, gotProject.MaxCollaborators)
	assert.Equal(t, project.CreatorID, gotProject.CreatorID)

	gotCollab, err := reloaded.GetCollaboration(project.ID, agent.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleCreator, gotCollab.Role)
	assert.Equal(t, models.CollabAccepted, gotCollab.Status)

	updates := reloaded.ListUpdatesByProject(project.ID)
	require.Len(t, updates, 1)
	assert.Equal(t, update.Content, updates[0].Content)

	comments := reloaded.ListCommentsByProject(project.ID)
	require.Len(t, comments, 1)
	assert.Equal(t, comment.Content, comments[0].Content)
}
