package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ElegAlex/Orchestr-a-docker-sub001/internal/model"
	"github.com/ElegAlex/Orchestr-a-docker-sub001/internal/repository"
)

// In-memory repository fakes. Each one keeps its rows in a map and mimics
// the GORM-backed implementation closely enough for service-level tests:
// lookups miss with gorm.ErrRecordNotFound and the override fake reproduces
// the upsert and range-count filters.

// ── users ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: map[string]*model.User{}}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = uuid.NewString()
	}
	cp := *user
	m.users[user.UserID] = &cp
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *user
	return &cp, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.UserID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *user
	m.users[user.UserID] = &cp
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) List(_ context.Context, offset, limit int) ([]model.User, int64, error) {
	ids := make([]string, 0, len(m.users))
	for id := range m.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var all []model.User
	for _, id := range ids {
		all = append(all, *m.users[id])
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

// ── teams ──

type mockTeamRepo struct {
	teams map[string]*model.Team
}

func newMockTeamRepo() *mockTeamRepo {
	return &mockTeamRepo{teams: map[string]*model.Team{}}
}

func (m *mockTeamRepo) Create(_ context.Context, team *model.Team) error {
	if team.TeamID == "" {
		team.TeamID = uuid.NewString()
	}
	cp := *team
	m.teams[team.TeamID] = &cp
	return nil
}

func (m *mockTeamRepo) GetByID(_ context.Context, id string) (*model.Team, error) {
	team, ok := m.teams[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *team
	return &cp, nil
}

func (m *mockTeamRepo) List(_ context.Context) ([]model.Team, error) {
	var teams []model.Team
	for _, team := range m.teams {
		teams = append(teams, *team)
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })
	return teams, nil
}

func (m *mockTeamRepo) Update(_ context.Context, team *model.Team) error {
	if _, ok := m.teams[team.TeamID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *team
	m.teams[team.TeamID] = &cp
	return nil
}

func (m *mockTeamRepo) Delete(_ context.Context, id string) error {
	delete(m.teams, id)
	return nil
}

// ── telework profiles ──

type mockProfileRepo struct {
	profiles map[string]*model.UserTeleworkProfile
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{profiles: map[string]*model.UserTeleworkProfile{}}
}

func (m *mockProfileRepo) Create(_ context.Context, profile *model.UserTeleworkProfile) error {
	cp := *profile
	m.profiles[profile.UserID] = &cp
	return nil
}

func (m *mockProfileRepo) GetByUserID(_ context.Context, userID string) (*model.UserTeleworkProfile, error) {
	profile, ok := m.profiles[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *profile
	return &cp, nil
}

func (m *mockProfileRepo) Update(_ context.Context, profile *model.UserTeleworkProfile) error {
	if _, ok := m.profiles[profile.UserID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *profile
	m.profiles[profile.UserID] = &cp
	return nil
}

// ── telework overrides ──

type mockOverrideRepo struct {
	overrides map[string]*model.TeleworkOverride
}

func newMockOverrideRepo() *mockOverrideRepo {
	return &mockOverrideRepo{overrides: map[string]*model.TeleworkOverride{}}
}

func (m *mockOverrideRepo) Upsert(_ context.Context, override *model.TeleworkOverride) error {
	cp := *override
	m.overrides[override.OverrideID] = &cp
	return nil
}

func (m *mockOverrideRepo) GetByID(_ context.Context, id string) (*model.TeleworkOverride, error) {
	override, ok := m.overrides[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *override
	return &cp, nil
}

func (m *mockOverrideRepo) Update(_ context.Context, override *model.TeleworkOverride) error {
	if _, ok := m.overrides[override.OverrideID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *override
	m.overrides[override.OverrideID] = &cp
	return nil
}

func (m *mockOverrideRepo) Delete(_ context.Context, id string) error {
	delete(m.overrides, id)
	return nil
}

func (m *mockOverrideRepo) Query(_ context.Context, q repository.OverrideQuery) ([]model.TeleworkOverride, error) {
	var result []model.TeleworkOverride
	for _, o := range m.overrides {
		if q.UserID != "" && o.UserID != q.UserID {
			continue
		}
		if q.Status != "" && o.ApprovalStatus != q.Status {
			continue
		}
		if q.Mode != "" && o.Mode != q.Mode {
			continue
		}
		if q.Start != nil && o.Date.Before(*q.Start) {
			continue
		}
		if q.End != nil && o.Date.After(*q.End) {
			continue
		}
		result = append(result, *o)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *mockOverrideRepo) ListByUserRange(ctx context.Context, userID string, start, end *time.Time) ([]model.TeleworkOverride, error) {
	return m.Query(ctx, repository.OverrideQuery{UserID: userID, Start: start, End: end})
}

func (m *mockOverrideRepo) ListPending(ctx context.Context) ([]model.TeleworkOverride, error) {
	return m.Query(ctx, repository.OverrideQuery{Status: model.StatusPending})
}

func (m *mockOverrideRepo) CountApprovedRemoteInRange(_ context.Context, userID string, start, end time.Time, excludeID string) (int64, error) {
	var count int64
	for _, o := range m.overrides {
		if o.UserID != userID || o.OverrideID == excludeID {
			continue
		}
		if o.ApprovalStatus != model.StatusApproved || o.Mode != model.ModeRemote {
			continue
		}
		if o.Date.Before(start) || o.Date.After(end) {
			continue
		}
		count++
	}
	return count, nil
}

func (m *mockOverrideRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var deleted int64
	for id, o := range m.overrides {
		if o.ExpiresAt != nil && !o.ExpiresAt.After(now) {
			delete(m.overrides, id)
			deleted++
		}
	}
	return deleted, nil
}

// ── team rules ──

type mockTeamRuleRepo struct {
	rules map[string]*model.TeamTeleworkRule
}

func newMockTeamRuleRepo() *mockTeamRuleRepo {
	return &mockTeamRuleRepo{rules: map[string]*model.TeamTeleworkRule{}}
}

func (m *mockTeamRuleRepo) Create(_ context.Context, rule *model.TeamTeleworkRule) error {
	if rule.RuleID == "" {
		rule.RuleID = uuid.NewString()
	}
	cp := *rule
	m.rules[rule.RuleID] = &cp
	return nil
}

func (m *mockTeamRuleRepo) GetByID(_ context.Context, id string) (*model.TeamTeleworkRule, error) {
	rule, ok := m.rules[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *rule
	return &cp, nil
}

func (m *mockTeamRuleRepo) List(_ context.Context, teamID string) ([]model.TeamTeleworkRule, error) {
	var rules []model.TeamTeleworkRule
	for _, rule := range m.rules {
		if teamID != "" && (rule.TeamID == nil || *rule.TeamID != teamID) {
			continue
		}
		rules = append(rules, *rule)
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].Name < rules[j].Name })
	return rules, nil
}

func (m *mockTeamRuleRepo) ListActiveForUser(_ context.Context, userID string) ([]model.TeamTeleworkRule, error) {
	var rules []model.TeamTeleworkRule
	for _, rule := range m.rules {
		if rule.IsActive && rule.AffectedUserIDs.Contains(userID) {
			rules = append(rules, *rule)
		}
	}
	return rules, nil
}

func (m *mockTeamRuleRepo) Update(_ context.Context, rule *model.TeamTeleworkRule) error {
	if _, ok := m.rules[rule.RuleID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *rule
	m.rules[rule.RuleID] = &cp
	return nil
}

func (m *mockTeamRuleRepo) Delete(_ context.Context, id string) error {
	delete(m.rules, id)
	return nil
}

// newMockRepository wires the fakes into a repository aggregate.
func newMockRepository() *repository.Repository {
	return &repository.Repository{
		User:             newMockUserRepo(),
		Team:             newMockTeamRepo(),
		TeleworkProfile:  newMockProfileRepo(),
		TeleworkOverride: newMockOverrideRepo(),
		TeamRule:         newMockTeamRuleRepo(),
	}
}
