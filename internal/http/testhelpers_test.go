package httpx

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/gamevault/authcore/internal/adapters/memcache"
	"github.com/gamevault/authcore/internal/domain/auth"
	"github.com/gamevault/authcore/internal/mocks"
	"github.com/gamevault/authcore/internal/service"
	"github.com/gamevault/authcore/internal/token"
)

const (
	testSteamID  = "76561199481226329"
	otherSteamID = "76561199481226330"
)

var (
	testSessionSecret = []byte("0123456789abcdef0123456789abcdef")
	errBackendDown    = &auth.StorageUnavailableError{Backend: "remote", Status: 503}
)

// fixture wires a full router over mocked ports with real codecs.
type fixture struct {
	handler  http.Handler
	backend  *mocks.MockDirectoryBackend
	profiles *mocks.MockProfileProvider
	provider *mocks.IdentityProvider
	sessions *service.SessionCodec
	states   *StateCodec
}

func newFixture(t *testing.T, seeds ...auth.SeedAdmin) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := slog.New(slog.DiscardHandler)

	backend := mocks.NewMockDirectoryBackend(ctrl)
	backend.EXPECT().Name().Return("remote").AnyTimes()
	profiles := mocks.NewMockProfileProvider(ctrl)
	provider := &mocks.IdentityProvider{DefaultSteamID: testSteamID}

	sessions := token.NewCodec[auth.SessionClaims](testSessionSecret)
	states := token.NewCodec[auth.StateClaims](testSessionSecret)

	directory := service.NewDirectory(service.DirectoryOptions{
		Backend: backend,
		Seeds:   seeds,
		Logger:  logger,
	})
	resolver := service.NewResolver(service.ResolverOptions{
		Sessions:   sessions,
		SessionTTL: 30 * 24 * time.Hour,
		Directory:  directory,
		Profiles:   profiles,
		Cache:      memcache.New(),
		Logger:     logger,
	})

	handler := NewRouter(RouterServices{
		Resolver:        resolver,
		Directory:       directory,
		Provider:        provider,
		States:          states,
		StateTTL:        10 * time.Minute,
		BaseURL:         "https://games.example",
		SuccessRedirect: "/",
		ErrorRedirect:   "/login?error=1",
		Logger:          logger,
	})

	return &fixture{
		handler:  handler,
		backend:  backend,
		profiles: profiles,
		provider: provider,
		sessions: sessions,
		states:   states,
	}
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

// sessionCookie mints a valid session cookie for steamID.
func (f *fixture) sessionCookie(t *testing.T, steamID string) *http.Cookie {
	t.Helper()
	tok, err := f.sessions.Create(auth.SessionClaims{SteamID: steamID, DisplayName: "tester"}, time.Hour)
	require.NoError(t, err)
	return &http.Cookie{Name: SessionCookieName, Value: tok}
}

// stateToken mints a state token with the given nonce.
func (f *fixture) stateToken(t *testing.T, nonce string) string {
	t.Helper()
	tok, err := f.states.Create(auth.StateClaims{Nonce: nonce}, 10*time.Minute)
	require.NoError(t, err)
	return tok
}

// callbackRequest builds a callback request with the state in query and
// cookie, as a genuine provider round trip would produce.
func (f *fixture) callbackRequest(queryState, cookieState string) *http.Request {
	q := url.Values{
		"state":             {queryState},
		"openid.mode":       {"id_res"},
		"openid.claimed_id": {"https://steamcommunity.com/openid/id/" + testSteamID},
	}
	req := httptest.NewRequest(http.MethodGet, "/auth/steam/return?"+q.Encode(), nil)
	if cookieState != "" {
		req.AddCookie(&http.Cookie{Name: StateCookieName, Value: cookieState})
	}
	return req
}

// cookieByName finds a response cookie, or nil.
func cookieByName(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	var found *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			found = c
		}
	}
	return found
}

// expectProfileMiss makes profile lookups return nothing.
func (f *fixture) expectProfileMiss() {
	f.profiles.EXPECT().Summaries(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
}

// expectAdmin wires the directory to answer with a role for steamID.
func (f *fixture) expectAdmin(steamID string, role auth.Role) {
	f.backend.EXPECT().Get(gomock.Any(), steamID).
		Return(auth.AdminRecord{SteamID: steamID, StaffRole: role}, nil).AnyTimes()
}

// expectNotAdmin wires the directory to report steamID absent.
func (f *fixture) expectNotAdmin(steamID string) {
	f.backend.EXPECT().Get(gomock.Any(), steamID).
		Return(auth.AdminRecord{}, auth.ErrNotFound).AnyTimes()
}

// expectDirectoryDown wires every directory read to fail as unavailable.
func (f *fixture) expectDirectoryDown() {
	f.backend.EXPECT().Get(gomock.Any(), gomock.Any()).
		Return(auth.AdminRecord{}, errBackendDown).AnyTimes()
	f.backend.EXPECT().List(gomock.Any()).Return(nil, errBackendDown).AnyTimes()
}
