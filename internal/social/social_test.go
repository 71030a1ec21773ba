package social_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yatra-app/yatra/internal/domain"
	"github.com/yatra-app/yatra/internal/social"
)

var t0 = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func trip(owner uuid.UUID, dest string, public bool, age time.Duration) domain.Trip {
	return domain.Trip{
		ID:          uuid.New(),
		UserID:      owner,
		Destination: dest,
		IsPublic:    public,
		CreatedAt:   t0.Add(age),
	}
}

func likes(tripID uuid.UUID, n int) []domain.Like {
	out := make([]domain.Like, n)
	for i := range out {
		out[i] = domain.Like{ID: uuid.New(), TripID: tripID, UserID: uuid.New()}
	}
	return out
}

func TestBuildTrips(t *testing.T) {
	alice := domain.User{ID: uuid.New(), Name: "Alice"}
	ghost := uuid.New()

	pub := trip(alice.ID, "Kyoto", true, 0)
	priv := trip(alice.ID, "Secret", false, time.Hour)
	orphan := trip(ghost, "Lima", true, 2*time.Hour)

	comments := []domain.Comment{
		{ID: uuid.New(), TripID: pub.ID},
		{ID: uuid.New(), TripID: pub.ID},
		{ID: uuid.New(), TripID: priv.ID},
	}

	got := social.BuildTrips(
		[]domain.Trip{pub, priv, orphan},
		[]domain.User{alice},
		append(likes(pub.ID, 3), likes(priv.ID, 5)...),
		comments,
	)

	require.Len(t, got, 2, "private trips are excluded")
	assert.Equal(t, "Kyoto", got[0].Destination)
	assert.Equal(t, "Alice", got[0].UserName)
	assert.Equal(t, 3, got[0].LikesCount)
	assert.Equal(t, 2, got[0].CommentsCount)

	assert.Equal(t, "Lima", got[1].Destination)
	assert.Equal(t, domain.FallbackDisplayName, got[1].UserName)
	assert.Zero(t, got[1].LikesCount)
}

func TestSort_TopIsNonIncreasingWithCreatedAtTieBreak(t *testing.T) {
	owner := uuid.New()
	a := domain.SocialTrip{Trip: trip(owner, "a", true, 0), LikesCount: 2}
	b := domain.SocialTrip{Trip: trip(owner, "b", true, time.Hour), LikesCount: 5}
	c := domain.SocialTrip{Trip: trip(owner, "c", true, 2*time.Hour), LikesCount: 2}
	d := domain.SocialTrip{Trip: trip(owner, "d", true, 3*time.Hour), LikesCount: 0}
	in := []domain.SocialTrip{a, b, c, d}

	got := social.Sort(in, social.SortTop)

	var order []string
	for _, st := range got {
		order = append(order, st.Destination)
	}
	assert.Equal(t, []string{"b", "c", "a", "d"}, order)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].LikesCount, got[i].LikesCount)
	}
	assert.Equal(t, "a", in[0].Destination, "input must not be reordered")
}

func TestSort_Latest(t *testing.T) {
	owner := uuid.New()
	old := domain.SocialTrip{Trip: trip(owner, "old", true, 0), LikesCount: 9}
	mid := domain.SocialTrip{Trip: trip(owner, "mid", true, time.Hour)}
	newest := domain.SocialTrip{Trip: trip(owner, "new", true, 2*time.Hour)}

	got := social.Sort([]domain.SocialTrip{old, newest, mid}, social.SortLatest)

	assert.Equal(t, "new", got[0].Destination)
	assert.Equal(t, "mid", got[1].Destination)
	assert.Equal(t, "old", got[2].Destination)
}

func TestTop(t *testing.T) {
	owner := uuid.New()
	var in []domain.SocialTrip
	for i := range 15 {
		in = append(in, domain.SocialTrip{Trip: trip(owner, "t", true, time.Duration(i)*time.Minute), LikesCount: i})
	}

	assert.Len(t, social.Top(in, 0), social.DefaultTopN)
	top3 := social.Top(in, 3)
	require.Len(t, top3, 3)
	assert.Equal(t, 14, top3[0].LikesCount)
	assert.Len(t, social.Top(in[:2], 10), 2)
}

func TestParseSort(t *testing.T) {
	assert.Equal(t, social.SortTop, social.ParseSort("top"))
	assert.Equal(t, social.SortLatest, social.ParseSort("latest"))
	assert.Equal(t, social.SortLatest, social.ParseSort(""))
	assert.Equal(t, social.SortLatest, social.ParseSort("TOP"))
}

func TestNames(t *testing.T) {
	u := domain.User{ID: uuid.New(), Name: "Asha"}
	names := social.NewNames([]domain.User{u})

	assert.Equal(t, "Asha", names.Name(u.ID))
	missing := uuid.New()
	assert.Equal(t, domain.UserRef{ID: missing, Name: domain.FallbackDisplayName}, names.Ref(missing))
}
