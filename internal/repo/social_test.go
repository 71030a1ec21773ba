package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yatra-app/yatra/internal/domain"
	"github.com/yatra-app/yatra/internal/repo"
)

func TestLikeRepo_AddRemoveAreIdempotent(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r repo.Repos) {
		ctx := context.Background()
		owner := mustUser(t, r, "Asha", "asha@example.com")
		fan := mustUser(t, r, "Bo", "bo@example.com")
		trip := mustTrip(t, r, tripFixture(owner.ID))

		like := domain.Like{ID: uuid.New(), TripID: trip.ID, UserID: fan.ID, CreatedAt: base}
		created, err := r.Likes.Add(ctx, like)
		require.NoError(t, err)
		assert.True(t, created)

		like.ID = uuid.New()
		created, err = r.Likes.Add(ctx, like)
		require.NoError(t, err)
		assert.False(t, created, "second like for the same pair is a no-op")

		exists, err := r.Likes.Exists(ctx, trip.ID, fan.ID)
		require.NoError(t, err)
		assert.True(t, exists)

		likes, err := r.Likes.ListByTrip(ctx, trip.ID)
		require.NoError(t, err)
		assert.Len(t, likes, 1)

		removed, err := r.Likes.Remove(ctx, trip.ID, fan.ID)
		require.NoError(t, err)
		assert.True(t, removed)

		removed, err = r.Likes.Remove(ctx, trip.ID, fan.ID)
		require.NoError(t, err)
		assert.False(t, removed)

		all, err := r.Likes.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestFollowRepo(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r repo.Repos) {
		ctx := context.Background()
		a := mustUser(t, r, "Asha", "asha@example.com")
		b := mustUser(t, r, "Bo", "bo@example.com")
		c := mustUser(t, r, "Cy", "cy@example.com")

		for _, follower := range []domain.User{b, c} {
			created, err := r.Follows.Add(ctx, domain.Follow{
				ID: uuid.New(), FollowerID: follower.ID, FollowingID: a.ID, CreatedAt: base,
			})
			require.NoError(t, err)
			assert.True(t, created)
		}
		created, err := r.Follows.Add(ctx, domain.Follow{
			ID: uuid.New(), FollowerID: b.ID, FollowingID: a.ID, CreatedAt: base,
		})
		require.NoError(t, err)
		assert.False(t, created)

		followers, err := r.Follows.CountFollowers(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, followers)

		following, err := r.Follows.CountFollowing(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, following)

		exists, err := r.Follows.Exists(ctx, b.ID, a.ID)
		require.NoError(t, err)
		assert.True(t, exists)
		exists, err = r.Follows.Exists(ctx, a.ID, b.ID)
		require.NoError(t, err)
		assert.False(t, exists, "follows are directional")

		byB, err := r.Follows.ListByFollower(ctx, b.ID)
		require.NoError(t, err)
		require.Len(t, byB, 1)
		assert.Equal(t, a.ID, byB[0].FollowingID)

		removed, err := r.Follows.Remove(ctx, b.ID, a.ID)
		require.NoError(t, err)
		assert.True(t, removed)
		followers, err = r.Follows.CountFollowers(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, followers)
	})
}

func TestCommentRepo_ListByTrip_NewestFirst(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r repo.Repos) {
		ctx := context.Background()
		owner := mustUser(t, r, "Asha", "asha@example.com")
		trip := mustTrip(t, r, tripFixture(owner.ID))

		for i, content := range []string{"first", "second", "third"} {
			_, err := r.Comments.Add(ctx, domain.Comment{
				ID:        uuid.New(),
				TripID:    trip.ID,
				UserID:    owner.ID,
				Content:   content,
				CreatedAt: base.Add(time.Duration(i) * time.Minute),
			})
			require.NoError(t, err)
		}

		got, err := r.Comments.ListByTrip(ctx, trip.ID)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "third", got[0].Content)
		assert.Equal(t, "first", got[2].Content)

		none, err := r.Comments.ListByTrip(ctx, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}

func TestNotificationRepo(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r repo.Repos) {
		ctx := context.Background()
		owner := mustUser(t, r, "Asha", "asha@example.com")
		actor := mustUser(t, r, "Bo", "bo@example.com")
		trip := mustTrip(t, r, tripFixture(owner.ID))

		_, err := r.Notifications.Create(ctx, domain.Notification{
			ID: uuid.New(), UserID: owner.ID, Type: domain.NotificationFollow, ActorID: actor.ID, CreatedAt: base,
		})
		require.NoError(t, err)
		_, err = r.Notifications.Create(ctx, domain.Notification{
			ID: uuid.New(), UserID: owner.ID, Type: domain.NotificationLike, ActorID: actor.ID,
			TripID: &trip.ID, CreatedAt: base.Add(time.Minute),
		})
		require.NoError(t, err)

		list, err := r.Notifications.ListByRecipient(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, domain.NotificationLike, list[0].Type, "newest first")
		require.NotNil(t, list[0].TripID)
		assert.Equal(t, trip.ID, *list[0].TripID)
		assert.Nil(t, list[1].TripID)

		unread, err := r.Notifications.CountUnread(ctx, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, unread)

		n, err := r.Notifications.MarkAllRead(ctx, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		n, err = r.Notifications.MarkAllRead(ctx, owner.ID)
		require.NoError(t, err)
		assert.Zero(t, n)

		unread, err = r.Notifications.CountUnread(ctx, owner.ID)
		require.NoError(t, err)
		assert.Zero(t, unread)
	})
}

func TestContactRepo(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r repo.Repos) {
		ctx := context.Background()
		msg := domain.ContactMessage{
			ID: uuid.New(), Name: "Asha", Email: "asha@example.com",
			Message: "Love the app, thanks!", CreatedAt: base,
		}

		_, err := r.Contacts.Create(ctx, msg)
		require.NoError(t, err)

		all, err := r.Contacts.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, msg.Message, all[0].Message)
	})
}
