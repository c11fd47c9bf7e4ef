// Package memory implements the store interfaces in process memory. It
// backs the handler tests, which need the same semantics as the Mongo
// layer without a running database.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/teamlink-app/backend/src/models"
	"github.com/teamlink-app/backend/src/store"
)

type Store struct {
	mu            sync.RWMutex
	users         map[string]*models.User
	requests      map[primitive.ObjectID]*models.ConnectionRequest
	notifications map[primitive.ObjectID]*models.Notification
	projects      map[primitive.ObjectID]*models.Project
	comments      map[primitive.ObjectID]*models.Comment
	messages      map[primitive.ObjectID]*models.ChatMessage
}

func New() *Store {
	return &Store{
		users:         make(map[string]*models.User),
		requests:      make(map[primitive.ObjectID]*models.ConnectionRequest),
		notifications: make(map[primitive.ObjectID]*models.Notification),
		projects:      make(map[primitive.ObjectID]*models.Project),
		comments:      make(map[primitive.ObjectID]*models.Comment),
		messages:      make(map[primitive.ObjectID]*models.ChatMessage),
	}
}

// --- UserStore ---

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.Connections == nil {
		user.Connections = []models.ConnectionSummary{}
	}
	clone := *user
	s.users[user.UID] = &clone
	return nil
}

func (s *Store) GetUser(ctx context.Context, uid string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[uid]
	if !ok {
		return nil, store.ErrNotFound
	}
	clone := *user
	clone.Connections = append([]models.ConnectionSummary(nil), user.Connections...)
	return &clone, nil
}

func (s *Store) Search(ctx context.Context, query string) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(query)
	var results []models.User
	for _, user := range s.users {
		if strings.Contains(strings.ToLower(user.FirstName), needle) ||
			strings.Contains(strings.ToLower(user.Surname), needle) ||
			user.Email == query {
			results = append(results, *user)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].UID < results[j].UID })
	return results, nil
}

func (s *Store) AddConnection(ctx context.Context, uid string, peer models.ConnectionSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[uid]
	if !ok {
		return nil
	}
	for _, conn := range user.Connections {
		if conn.UID == peer.UID {
			return nil
		}
	}
	user.Connections = append(user.Connections, peer)
	return nil
}

func (s *Store) RemoveConnection(ctx context.Context, uid, peerUID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[uid]
	if !ok {
		return nil
	}
	kept := user.Connections[:0]
	for _, conn := range user.Connections {
		if conn.UID != peerUID {
			kept = append(kept, conn)
		}
	}
	user.Connections = kept
	return nil
}

// --- RequestStore ---

func (s *Store) CreateRequest(ctx context.Context, req *models.ConnectionRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.Id.IsZero() {
		req.Id = primitive.NewObjectID()
	}
	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now

	clone := *req
	s.requests[req.Id] = &clone
	return nil
}

func (s *Store) GetRequest(ctx context.Context, id primitive.ObjectID) (*models.ConnectionRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	req, ok := s.requests[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	clone := *req
	return &clone, nil
}

func (s *Store) UpdateRequestStatus(ctx context.Context, id primitive.ObjectID, status models.RequestStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.requests[id]
	if !ok {
		return store.ErrNotFound
	}
	req.Status = status
	req.UpdatedAt = time.Now()
	return nil
}

func (s *Store) DeleteRequest(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.requests[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.requests, id)
	return nil
}

func (s *Store) HasPendingBetween(ctx context.Context, userA, userB string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, req := range s.requests {
		if req.Status != models.RequestStatusPending {
			continue
		}
		if (req.FromUserID == userA && req.ToUserID == userB) ||
			(req.FromUserID == userB && req.ToUserID == userA) {
			return true, nil
		}
	}
	return false, nil
}

// --- NotificationStore ---

func (s *Store) Insert(ctx context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n.Id.IsZero() {
		n.Id = primitive.NewObjectID()
	}
	if n.Status == "" {
		n.Status = models.NotificationStatusUnread
	}
	n.CreatedAt = time.Now()

	clone := *n
	s.notifications[n.Id] = &clone
	return nil
}

func (s *Store) ListByOwner(ctx context.Context, ownerID, excludeType string) ([]models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []models.Notification
	for _, n := range s.notifications {
		if n.OwnerID != ownerID {
			continue
		}
		if excludeType != "" && string(n.Type) == excludeType {
			continue
		}
		result = append(result, *n)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (s *Store) Delete(ctx context.Context, ownerID string, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notifications[id]
	if !ok || n.OwnerID != ownerID {
		return store.ErrNotFound
	}
	delete(s.notifications, id)
	return nil
}

func (s *Store) DeleteByRequest(ctx context.Context, requestID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, n := range s.notifications {
		if n.ConnectionRequestID == requestID {
			delete(s.notifications, id)
		}
	}
	return nil
}

func (s *Store) DeleteInvitation(ctx context.Context, ownerID, projectID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, n := range s.notifications {
		if n.OwnerID == ownerID && n.ProjectID == projectID && n.Type == models.NotificationTypeInvitation {
			delete(s.notifications, id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *Store) MarkConversationRead(ctx context.Context, ownerID, conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.notifications {
		if n.OwnerID == ownerID && n.ConversationID == conversationID && n.Status == models.NotificationStatusUnread {
			n.Status = models.NotificationStatusRead
		}
	}
	return nil
}

// --- ProjectStore ---

func (s *Store) CreateProject(ctx context.Context, p *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.Id.IsZero() {
		p.Id = primitive.NewObjectID()
	}
	if p.Tasks == nil {
		p.Tasks = []models.Task{}
	}
	if p.Team == nil {
		p.Team = []models.MemberSummary{}
	}
	if p.TeamIds == nil {
		p.TeamIds = []string{}
	}
	p.CreatedAt = time.Now()

	clone := *p
	s.projects[p.Id] = &clone
	return nil
}

func (s *Store) GetProject(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	clone := *p
	clone.Tasks = append([]models.Task(nil), p.Tasks...)
	clone.Team = append([]models.MemberSummary(nil), p.Team...)
	clone.TeamIds = append([]string(nil), p.TeamIds...)
	return &clone, nil
}

func (s *Store) UpdateProject(ctx context.Context, id primitive.ObjectID, update store.ProjectUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok {
		return store.ErrNotFound
	}
	if update.ProjectName != nil {
		p.ProjectName = *update.ProjectName
	}
	if update.Description != nil {
		p.Description = *update.Description
	}
	if update.Deadline != nil {
		p.Deadline = *update.Deadline
	}
	if update.Status != nil {
		p.Status = *update.Status
	}
	if update.Tasks != nil {
		p.Tasks = append([]models.Task(nil), *update.Tasks...)
	}
	return nil
}

func (s *Store) DeleteProject(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.projects, id)
	return nil
}

func (s *Store) ListForUser(ctx context.Context, uid string) ([]models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []models.Project
	for _, p := range s.projects {
		if p.OwnerID == uid || p.HasMember(uid) {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (s *Store) AddTeamMember(ctx context.Context, id primitive.ObjectID, member models.MemberSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok {
		return nil
	}
	if p.HasMember(member.UID) {
		return nil
	}
	p.Team = append(p.Team, member)
	p.TeamIds = append(p.TeamIds, member.UID)
	return nil
}

func (s *Store) RemoveTeamMember(ctx context.Context, id primitive.ObjectID, uid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok {
		return nil
	}
	team := p.Team[:0]
	for _, m := range p.Team {
		if m.UID != uid {
			team = append(team, m)
		}
	}
	p.Team = team

	ids := p.TeamIds[:0]
	for _, memberID := range p.TeamIds {
		if memberID != uid {
			ids = append(ids, memberID)
		}
	}
	p.TeamIds = ids
	return nil
}

func (s *Store) SetTaskMilestones(ctx context.Context, id primitive.ObjectID, taskName string, milestones []models.Milestone) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok {
		return store.ErrNotFound
	}
	for i := range p.Tasks {
		if p.Tasks[i].TaskName == taskName {
			p.Tasks[i].Milestones = append([]models.Milestone(nil), milestones...)
			return nil
		}
	}
	return store.ErrNotFound
}

// --- CommentStore ---

func (s *Store) AddComment(ctx context.Context, c *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.Id.IsZero() {
		c.Id = primitive.NewObjectID()
	}
	c.CreatedAt = time.Now()

	clone := *c
	s.comments[c.Id] = &clone
	return nil
}

func (s *Store) ListByProject(ctx context.Context, projectID string) ([]models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []models.Comment
	for _, c := range s.comments {
		if c.ProjectID == projectID {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (s *Store) GetComment(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.comments[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (s *Store) DeleteComment(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.comments[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.comments, id)
	return nil
}

// --- MessageStore ---

func (s *Store) InsertMessage(ctx context.Context, m *models.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m.Id.IsZero() {
		m.Id = primitive.NewObjectID()
	}
	m.CreatedAt = time.Now()

	clone := *m
	s.messages[m.Id] = &clone
	return nil
}

func (s *Store) ListByConversation(ctx context.Context, conversationID string) ([]models.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []models.ChatMessage
	for _, m := range s.messages {
		if m.ConversationID == conversationID {
			result = append(result, *m)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (s *Store) MarkMessagesRead(ctx context.Context, conversationID, readerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.messages {
		if m.ConversationID == conversationID && m.SenderID != readerID {
			m.Read = true
		}
	}
	return nil
}
