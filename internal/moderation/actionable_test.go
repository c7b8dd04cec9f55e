package moderation

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
)

func testGuild() *discordgo.Guild {
	return &discordgo.Guild{
		ID:      "g1",
		OwnerID: "owner",
		Roles: []*discordgo.Role{
			{ID: "everyone", Position: 0},
			{ID: "member", Position: 1},
			{ID: "mod", Position: 5},
			{ID: "admin", Position: 10},
		},
	}
}

func memberWith(userID string, roles ...string) *discordgo.Member {
	return &discordgo.Member{User: &discordgo.User{ID: userID}, Roles: roles}
}

func TestAssertActionableSelf(t *testing.T) {
	actor := memberWith("u1", "mod")
	if err := AssertActionable(testGuild(), actor, actor); !errors.Is(err, ErrSelfTarget) {
		t.Fatalf("expected ErrSelfTarget, got %v", err)
	}
}

func TestAssertActionableOwnerTarget(t *testing.T) {
	actor := memberWith("u1", "admin")
	target := memberWith("owner")
	if err := AssertActionable(testGuild(), actor, target); !errors.Is(err, ErrOwnerTarget) {
		t.Fatalf("expected ErrOwnerTarget, got %v", err)
	}
}

func TestAssertActionableOwnerActsOnAnyone(t *testing.T) {
	actor := memberWith("owner")
	target := memberWith("u2", "admin")
	if err := AssertActionable(testGuild(), actor, target); err != nil {
		t.Fatalf("owner should bypass hierarchy, got %v", err)
	}
}

func TestAssertActionableHierarchy(t *testing.T) {
	guild := testGuild()

	if err := AssertActionable(guild, memberWith("u1", "mod"), memberWith("u2", "mod")); !errors.Is(err, ErrHierarchy) {
		t.Fatalf("equal rank should not be actionable, got %v", err)
	}
	if err := AssertActionable(guild, memberWith("u1", "mod"), memberWith("u2", "admin")); !errors.Is(err, ErrHierarchy) {
		t.Fatalf("higher rank should not be actionable, got %v", err)
	}
	if err := AssertActionable(guild, memberWith("u1", "mod"), memberWith("u2", "member")); err != nil {
		t.Fatalf("strictly lower rank should be actionable, got %v", err)
	}
}

func TestAssertActionableRolelessTie(t *testing.T) {
	if err := AssertActionable(testGuild(), memberWith("u1"), memberWith("u2")); !errors.Is(err, ErrHierarchy) {
		t.Fatalf("two roleless members tie, expected ErrHierarchy, got %v", err)
	}
}
