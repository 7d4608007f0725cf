package chat

import (
	"chat-events/domain"
	"chat-events/domain/event"
	"context"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// replay rebuilds a member set from the enter/leave events of a log.
func replay(events []event.DomainEvent) domain.Set {
	members := make(domain.Set)
	for _, e := range events {
		switch evt := e.(type) {
		case event.EnterRoom:
			members[evt.User] = struct{}{}
		case event.LeaveRoom:
			delete(members, evt.User)
		}
	}
	return members
}

func TestMembership_Members_Equal_Replay_Of_Log(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	// Each op encodes a user (op/2 + 1) and an action (even: enter, odd: leave).
	properties.Property("members equal the replay of enter/leave events", prop.ForAll(
		func(ops []int) bool {
			ctx := context.Background()
			membership, room, sink := newMembership()
			for _, op := range ops {
				userID := domain.UserID(op/2 + 1)
				if op%2 == 0 {
					_ = membership.Enter(ctx, userID)
				} else {
					_ = membership.Leave(ctx, userID)
				}
			}
			replayed := replay(sink.events)
			if len(replayed) != len(room.Members) {
				return false
			}
			for userID := range replayed {
				if !room.IsMember(userID) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 9)),
	))

	properties.TestingRun(t)
}
