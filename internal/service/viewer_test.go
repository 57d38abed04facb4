package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/gamevault/authcore/internal/adapters/memcache"
	"github.com/gamevault/authcore/internal/domain/auth"
	"github.com/gamevault/authcore/internal/mocks"
	"github.com/gamevault/authcore/internal/token"
)

var resolverSecret = []byte("0123456789abcdef0123456789abcdef")

type resolverFixture struct {
	resolver *Resolver
	backend  *mocks.MockDirectoryBackend
	profiles *mocks.MockProfileProvider
	codec    *SessionCodec
}

func newResolverFixture(t *testing.T, seeds ...auth.SeedAdmin) *resolverFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	backend := mocks.NewMockDirectoryBackend(ctrl)
	backend.EXPECT().Name().Return("remote").AnyTimes()
	profiles := mocks.NewMockProfileProvider(ctrl)

	codec := token.NewCodec[auth.SessionClaims](resolverSecret)

	resolver := NewResolver(ResolverOptions{
		Sessions:   codec,
		SessionTTL: 30 * 24 * time.Hour,
		Directory: NewDirectory(DirectoryOptions{
			Backend: backend,
			Seeds:   seeds,
			Logger:  quietLogger(),
		}),
		Profiles:   profiles,
		Cache:      memcache.New(),
		ProfileTTL: 5 * time.Minute,
		Logger:     quietLogger(),
	})
	return &resolverFixture{resolver: resolver, backend: backend, profiles: profiles, codec: codec}
}

func (f *resolverFixture) sessionToken(t *testing.T, steamID string) string {
	t.Helper()
	tok, err := f.resolver.IssueSession(auth.User{SteamID: steamID, DisplayName: "cookie name"})
	require.NoError(t, err)
	return tok
}

func TestResolve_EmptyTokenIsAnonymous(t *testing.T) {
	f := newResolverFixture(t)
	viewer := f.resolver.Resolve(context.Background(), "")
	assert.Equal(t, auth.AnonymousViewer(), viewer)
}

func TestResolve_GarbageTokenIsAnonymous(t *testing.T) {
	f := newResolverFixture(t)
	viewer := f.resolver.Resolve(context.Background(), "not.a.token")
	assert.Equal(t, auth.AnonymousViewer(), viewer)
	assert.False(t, viewer.HasPermission(auth.PermPublishGame))
}

func TestResolve_ExpiredTokenIsAnonymous(t *testing.T) {
	f := newResolverFixture(t)

	issued := time.Now().Add(-48 * time.Hour)
	f.codec.SetNow(func() time.Time { return issued })
	tok, err := f.codec.Create(auth.SessionClaims{SteamID: testSteamID}, time.Hour)
	require.NoError(t, err)
	f.codec.SetNow(time.Now)

	viewer := f.resolver.Resolve(context.Background(), tok)
	assert.Equal(t, auth.AnonymousViewer(), viewer)
}

func TestResolve_AdminGetsRolePermissions(t *testing.T) {
	f := newResolverFixture(t)
	ctx := context.Background()
	tok := f.sessionToken(t, testSteamID)

	f.profiles.EXPECT().Summaries(gomock.Any(), []string{testSteamID}).
		Return([]auth.SteamProfile{{SteamID: testSteamID, DisplayName: "fresh name", Avatar: "https://a.example/f.jpg"}}, nil)
	f.backend.EXPECT().Get(gomock.Any(), testSteamID).
		Return(auth.AdminRecord{SteamID: testSteamID, StaffRole: auth.RoleAdministrador}, nil)

	viewer := f.resolver.Resolve(ctx, tok)

	assert.True(t, viewer.Authenticated)
	assert.True(t, viewer.IsAdmin)
	assert.Empty(t, viewer.AdminError)
	assert.Equal(t, auth.RoleAdministrador, viewer.Role)
	assert.True(t, viewer.HasPermission(auth.PermPublishGame))
	assert.False(t, viewer.HasPermission(auth.PermManageStaff))
	require.NotNil(t, viewer.User)
	assert.Equal(t, "fresh name", viewer.User.DisplayName)
	assert.Equal(t, "https://a.example/f.jpg", viewer.User.Avatar)
}

func TestResolve_SynonymRoleNormalized(t *testing.T) {
	f := newResolverFixture(t)
	tok := f.sessionToken(t, testSteamID)

	f.profiles.EXPECT().Summaries(gomock.Any(), gomock.Any()).Return(nil, nil)
	f.backend.EXPECT().Get(gomock.Any(), testSteamID).
		Return(auth.AdminRecord{SteamID: testSteamID, StaffRole: "super-admin"}, nil)

	viewer := f.resolver.Resolve(context.Background(), tok)
	assert.Equal(t, auth.RoleDeveloper, viewer.Role)
	assert.True(t, viewer.HasPermission(auth.PermManageStaff))
}

func TestResolve_NonAdminIsAuthenticatedOnly(t *testing.T) {
	f := newResolverFixture(t)
	tok := f.sessionToken(t, testSteamID)

	f.profiles.EXPECT().Summaries(gomock.Any(), gomock.Any()).Return(nil, nil)
	f.backend.EXPECT().Get(gomock.Any(), testSteamID).
		Return(auth.AdminRecord{}, auth.ErrNotFound)

	viewer := f.resolver.Resolve(context.Background(), tok)
	assert.True(t, viewer.Authenticated)
	assert.False(t, viewer.IsAdmin)
	assert.Empty(t, viewer.AdminError)
	assert.False(t, viewer.HasPermission(auth.PermEditGame))
}

func TestResolve_DirectoryOutageMarksUnresolved(t *testing.T) {
	f := newResolverFixture(t)
	tok := f.sessionToken(t, testSteamID)

	f.profiles.EXPECT().Summaries(gomock.Any(), gomock.Any()).Return(nil, nil)
	f.backend.EXPECT().Get(gomock.Any(), testSteamID).
		Return(auth.AdminRecord{}, errBackendDown)

	viewer := f.resolver.Resolve(context.Background(), tok)
	assert.True(t, viewer.Authenticated)
	assert.False(t, viewer.IsAdmin)
	assert.NotEmpty(t, viewer.AdminError)
	// Unresolved is never an implicit grant.
	assert.False(t, viewer.HasPermission(auth.PermPublishGame))
}

func TestResolve_SeedAnswersBeforeDirectory(t *testing.T) {
	f := newResolverFixture(t, auth.SeedAdmin{SteamID: testSteamID, Role: auth.RoleDeveloper})
	tok := f.sessionToken(t, testSteamID)

	f.profiles.EXPECT().Summaries(gomock.Any(), gomock.Any()).Return(nil, nil)
	// No backend.Get expectation: the seed short-circuits the lookup.

	viewer := f.resolver.Resolve(context.Background(), tok)
	assert.True(t, viewer.IsAdmin)
	assert.Equal(t, auth.RoleDeveloper, viewer.Role)
}

func TestResolve_ProfileFailureIsCosmetic(t *testing.T) {
	f := newResolverFixture(t)
	tok := f.sessionToken(t, testSteamID)

	f.profiles.EXPECT().Summaries(gomock.Any(), gomock.Any()).
		Return(nil, &auth.UpstreamError{Op: "steamweb.summaries", Status: 500})
	f.backend.EXPECT().Get(gomock.Any(), testSteamID).
		Return(auth.AdminRecord{}, auth.ErrNotFound)

	viewer := f.resolver.Resolve(context.Background(), tok)
	assert.True(t, viewer.Authenticated)
	require.NotNil(t, viewer.User)
	// Falls back to the name baked into the token.
	assert.Equal(t, "cookie name", viewer.User.DisplayName)
}

func TestLookupProfile_CachesResult(t *testing.T) {
	f := newResolverFixture(t)
	ctx := context.Background()

	f.profiles.EXPECT().Summaries(gomock.Any(), []string{testSteamID}).
		Return([]auth.SteamProfile{{SteamID: testSteamID, DisplayName: "once"}}, nil).
		Times(1)

	for i := 0; i < 3; i++ {
		profile, ok := f.resolver.LookupProfile(ctx, testSteamID)
		require.True(t, ok)
		assert.Equal(t, "once", profile.DisplayName)
	}
}

func TestLookupProfile_DeduplicatesConcurrentFetches(t *testing.T) {
	f := newResolverFixture(t)
	ctx := context.Background()

	release := make(chan struct{})
	f.profiles.EXPECT().Summaries(gomock.Any(), []string{testSteamID}).
		DoAndReturn(func(context.Context, []string) ([]auth.SteamProfile, error) {
			<-release
			return []auth.SteamProfile{{SteamID: testSteamID, DisplayName: "shared"}}, nil
		}).
		Times(1)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			profile, ok := f.resolver.LookupProfile(ctx, testSteamID)
			assert.True(t, ok)
			assert.Equal(t, "shared", profile.DisplayName)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
}
