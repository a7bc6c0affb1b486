package usecases

import (
	"context"
	"errors"
	"testing"

	"rental-server/apperrors"
	"rental-server/entities"
	"rental-server/query"
)

func TestGetUserProfileStats(t *testing.T) {
	f := newFixture()
	a := Caller{ID: agentA, Role: entities.RoleAgent}
	f.create(a, validInput("Loft", "Springfield", 1200, 1))
	hidden := validInput("Hidden", "Springfield", 1000, 2)
	hidden.IsAvailable = ptr(false)
	f.create(a, hidden)

	user, stats, err := f.users.GetUserProfile(context.Background(), agentA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Name != "Alice Agent" {
		t.Errorf("unexpected user %+v", user)
	}
	if stats != (entities.AgentStats{ActiveProperties: 1, TotalProperties: 2}) {
		t.Errorf("unexpected stats %+v", stats)
	}

	_, stats, err = f.users.GetUserProfile(context.Background(), agentB)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats != (entities.AgentStats{}) {
		t.Errorf("expected zero stats for agent without listings, got %+v", stats)
	}
}

func TestGetUserProfileNotFound(t *testing.T) {
	f := newFixture()
	_, _, err := f.users.GetUserProfile(context.Background(), "ghost")
	if !errors.Is(err, apperrors.ErrNotFound) || err.Error() != "User not found" {
		t.Errorf("unexpected error %v", err)
	}
}

func TestGetUserProperties(t *testing.T) {
	f := newFixture()
	a := Caller{ID: agentA, Role: entities.RoleAgent}
	f.create(a, validInput("Loft", "Springfield", 1200, 1))
	hidden := validInput("Hidden", "Springfield", 1000, 2)
	hidden.IsAvailable = ptr(false)
	f.create(a, hidden)
	f.create(Caller{ID: agentB, Role: entities.RoleAgent}, validInput("House", "Shelbyville", 2500, 3))

	props, meta, err := f.users.GetUserProperties(context.Background(), agentA, query.Page{Number: 1, Limit: query.DefaultDirectoryLimit})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(props) != 1 || meta.Total != 1 {
		t.Fatalf("expected only the available listing, got %d (total %d)", len(props), meta.Total)
	}
	if props[0].Agent.Name != "Alice Agent" {
		t.Errorf("expected joined agent, got %+v", props[0].Agent)
	}

	if _, _, err := f.users.GetUserProperties(context.Background(), "ghost", query.Page{Number: 1, Limit: 12}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected not found for unknown user, got %v", err)
	}
}

func TestListAgents(t *testing.T) {
	f := newFixture()
	f.create(Caller{ID: agentA, Role: entities.RoleAgent}, validInput("Loft", "Springfield", 1200, 1))
	f.store.AddUser(entities.User{ID: "retired", Name: "Retired", Email: "r@example.com", UserType: entities.UserTypeAgent, IsActive: false})

	agents, meta, err := f.users.ListAgents(context.Background(), query.Page{Number: 1, Limit: 12})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Total != 2 || len(agents) != 2 {
		t.Fatalf("expected the two active agents, got %d (total %d)", len(agents), meta.Total)
	}
	counts := map[string]int64{}
	for _, a := range agents {
		counts[a.ID] = a.ActiveProperties
	}
	if counts[agentA] != 1 || counts[agentB] != 0 {
		t.Errorf("unexpected counts %v", counts)
	}
	if agents[0].ID != agentB {
		t.Errorf("expected newest agent first, got %s", agents[0].ID)
	}
}

func TestUpdateUser(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	user, err := f.users.UpdateUser(ctx, agentB, UserInput{Company: ptr("Broker & Co"), Email: ptr(" BOB@Example.com ")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Company != "Broker & Co" || user.Email != "bob@example.com" {
		t.Errorf("unexpected user %+v", user)
	}
	if user.Name != "Bob Broker" {
		t.Errorf("untouched fields must be kept, got name %q", user.Name)
	}

	_, err = f.users.UpdateUser(ctx, agentB, UserInput{Email: ptr("not-an-email"), Role: ptr("owner")})
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "Please add a valid email, Role must be one of agent, admin, user" {
		t.Errorf("unexpected message %q", err.Error())
	}

	if _, err := f.users.UpdateUser(ctx, "ghost", UserInput{}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestCanModify(t *testing.T) {
	tests := []struct {
		name   string
		caller Caller
		owner  string
		want   bool
	}{
		{"owner", Caller{ID: agentA, Role: entities.RoleAgent}, agentA, true},
		{"other agent", Caller{ID: agentB, Role: entities.RoleAgent}, agentA, false},
		{"admin", Caller{ID: admin, Role: entities.RoleAdmin}, agentA, true},
		{"anonymous", Caller{}, "", false},
	}
	for _, tt := range tests {
		if got := CanModify(tt.caller, tt.owner); got != tt.want {
			t.Errorf("%s: CanModify = %v, want %v", tt.name, got, tt.want)
		}
	}
}
