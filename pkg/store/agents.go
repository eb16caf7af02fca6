package store

import (
	"fmt"
	"strings"
	"time"

	"thingherder/pkg/models"
	"thingherder/pkg/utils"

	"github.com/google/uuid"
)

// CreateAgent inserts unconditionally: it does not guard against duplicate
// names. Use RegisterAgent from request handlers so the uniqueness check and
// the insert share one critical section.
func (s *Store) CreateAgent(req models.AgentRegisterRequest) (*models.Agent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createAgentLocked(req)
}

// RegisterAgent reserves the name (case-insensitively) and creates the agent
// atomically. Returns ErrNameTaken when the name is already in use.
func (s *Store) RegisterAgent(req models.AgentRegisterRequest) (*models.Agent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.agentNameExistsLocked(req.Name) {
		return nil, ErrNameTaken
	}
	return s.createAgentLocked(req)
}

func (s *Store) createAgentLocked(req models.AgentRegisterRequest) (*models.Agent, error) {
	key, err := utils.GenerateAPIKey()
	if err != nil {
		return nil, fmt.Errorf("generate api key: %w", err)
	}

	now := time.Now().UTC()
	agent := &models.Agent{
		ID:          uuid.New().String(),
		Name:        req.Name,
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		Email:       req.Email,
		AvatarURL:   req.AvatarURL,
		Skills:      req.Skills,
		APIKey:      key,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if agent.Skills == nil {
		agent.Skills = []string{}
	}
	if agent.DisplayName == "" {
		agent.DisplayName = agent.Name
	}

	s.doc.Agents[agent.ID] = agent
	if err := s.save(); err != nil {
		return nil, err
	}
	out := *agent
	return &out, nil
}

// GetAgentByID returns the agent or ErrNotFound.
func (s *Store) GetAgentByID(id string) (*models.Agent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	agent, ok := s.doc.Agents[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *agent
	return &out, nil
}

// GetAgentByName does a case-insensitive exact match on the agent name.
func (s *Store) GetAgentByName(name string) (*models.Agent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, agent := range s.doc.Agents {
		if strings.EqualFold(agent.Name, name) {
			out := *agent
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

// GetAgentByAPIKey resolves a bearer credential to its agent.
func (s *Store) GetAgentByAPIKey(key string) (*models.Agent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if key == "" {
		return nil, ErrNotFound
	}
	for _, agent := range s.doc.Agents {
		if agent.APIKey == key {
			out := *agent
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

// UpdateAgent applies the non-nil patch fields and refreshes updatedAt.
// It never creates: unknown ids return ErrNotFound.
func (s *Store) UpdateAgent(id string, patch models.AgentPatch) (*models.Agent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	agent, ok := s.doc.Agents[id]
	if !ok {
		return nil, ErrNotFound
	}

	if patch.DisplayName != nil {
		agent.DisplayName = *patch.DisplayName
	}
	if patch.Bio != nil {
		agent.Bio = *patch.Bio
	}
	if patch.Email != nil {
		agent.Email = *patch.Email
	}
	if patch.AvatarURL != nil {
		agent.AvatarURL = *patch.AvatarURL
	}
	if patch.Skills != nil {
		agent.Skills = *patch.Skills
	}
	agent.UpdatedAt = time.Now().UTC()

	if err := s.save(); err != nil {
		return nil, err
	}
	out := *agent
	return &out, nil
}

// AgentNameExists reports whether a name is taken, case-insensitively.
func (s *Store) AgentNameExists(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.agentNameExistsLocked(name)
}

func (s *Store) agentNameExistsLocked(name string) bool {
	for _, agent := range s.doc.Agents {
		if strings.EqualFold(agent.Name, name) {
			return true
		}
	}
	return false
}
