package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kapu/soccer-data-go/internal/domain"
	"github.com/kapu/soccer-data-go/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type conferenceCall struct {
	gender   domain.Gender
	division domain.Division
	name     string
	year     int
}

type fakeTDS struct {
	err        error
	lastCall   conferenceCall
	lastURL    string
	lastQuery  domain.PlayerQuery
	commits    []domain.School
	breakdown  []domain.LeagueBreakdown
	clubCounts []domain.ClubCommitments
}

func (f *fakeTDS) ListConferences(_ context.Context, gender domain.Gender, division domain.Division) ([]domain.Conference, error) {
	f.lastCall = conferenceCall{gender: gender, division: division}
	if f.err != nil {
		return nil, f.err
	}
	return []domain.Conference{{ID: 30, Name: "ACC", Gender: gender, Division: division}}, nil
}

func (f *fakeTDS) GetConference(_ context.Context, gender domain.Gender, division domain.Division, name string) (*domain.Conference, error) {
	f.lastCall = conferenceCall{gender: gender, division: division, name: name}
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Conference{ID: 30, Name: name}, nil
}

func (f *fakeTDS) GetConferenceCommits(_ context.Context, gender domain.Gender, division domain.Division, name string, year int) ([]domain.School, error) {
	f.lastCall = conferenceCall{gender, division, name, year}
	return f.commits, f.err
}

func (f *fakeTDS) GetConferenceLeagueBreakdown(_ context.Context, gender domain.Gender, division domain.Division, name string, year int) ([]domain.LeagueBreakdown, error) {
	f.lastCall = conferenceCall{gender, division, name, year}
	return f.breakdown, f.err
}

func (f *fakeTDS) GetCommitmentsByClub(_ context.Context, gender domain.Gender, year int) ([]domain.ClubCommitments, error) {
	f.lastCall = conferenceCall{gender: gender, year: year}
	return f.clubCounts, f.err
}

func (f *fakeTDS) GetPlayerDetails(_ context.Context, url string) (*domain.PlayerDetails, error) {
	f.lastURL = url
	if f.err != nil {
		return nil, f.err
	}
	return &domain.PlayerDetails{Name: "Jane Doe", League: domain.LeagueECNL}, nil
}

func (f *fakeTDS) SearchPlayers(_ context.Context, query domain.PlayerQuery) ([]domain.Player, error) {
	f.lastQuery = query
	return []domain.Player{{Name: "Jane Doe", League: domain.LeagueOther}}, f.err
}

type fakeClubs struct {
	err       error
	lastNames []string
}

func (f *fakeClubs) ECNLClubs(context.Context) ([]domain.Club, error) {
	return []domain.Club{{Name: "Solar SC", League: domain.LeagueECNL}}, f.err
}

func (f *fakeClubs) GAClubs(context.Context) ([]domain.Club, error) {
	return []domain.Club{{Name: "Sting Austin", League: domain.LeagueGA}}, f.err
}

func (f *fakeClubs) GAConferences(context.Context) ([]domain.GAConference, error) {
	return []domain.GAConference{{Name: "SOUTHWEST"}}, f.err
}

func (f *fakeClubs) LookupLeagues(_ context.Context, names []string) ([]domain.LeagueLookup, error) {
	f.lastNames = names
	results := make([]domain.LeagueLookup, 0, len(names))
	for _, name := range names {
		results = append(results, domain.LeagueLookup{Club: name, League: domain.LeagueOther})
	}
	return results, f.err
}

type fakeNCAA struct {
	lastDivision domain.Division
}

func (f *fakeNCAA) RPIRankings(context.Context) ([]domain.Ranking, error) {
	return []domain.Ranking{{Rank: 1, School: "Florida State"}}, nil
}

func (f *fakeNCAA) CoachesDIRankings(context.Context) ([]domain.Ranking, error) {
	return []domain.Ranking{{Rank: 1, School: "UCLA"}}, nil
}

func (f *fakeNCAA) CoachesDIIRankings(context.Context) ([]domain.Ranking, error) {
	return []domain.Ranking{{Rank: 1, School: "Grand Valley State"}}, nil
}

func (f *fakeNCAA) Schools(_ context.Context, division domain.Division) ([]domain.NCAASchool, error) {
	f.lastDivision = division
	return []domain.NCAASchool{}, nil
}

type testServer struct {
	tds    *fakeTDS
	clubs  *fakeClubs
	ncaa   *fakeNCAA
	router http.Handler
}

func newTestServer() *testServer {
	s := &testServer{tds: &fakeTDS{}, clubs: &fakeClubs{}, ncaa: &fakeNCAA{}}
	builder := func(name string, pid int) string {
		return fmt.Sprintf("https://tds.test/club-player/%s/pid-%d", name, pid)
	}
	h := NewHandler(s.tds, s.clubs, s.ncaa, builder, zap.NewNop())
	s.router = NewRouter(h, []string{"*"}, zap.NewNop())
	return s
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHealth(t *testing.T) {
	s := newTestServer()
	rec := s.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestListConferences(t *testing.T) {
	s := newTestServer()

	rec := s.do(t, http.MethodGet, "/api/tds/college/conferences/female/di", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var conferences []domain.Conference
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &conferences))
	require.Len(t, conferences, 1)
	assert.Equal(t, "ACC", conferences[0].Name)
	assert.Equal(t, domain.GenderFemale, s.tds.lastCall.gender)
	assert.Equal(t, domain.DivisionDI, s.tds.lastCall.division)
}

func TestConferenceParamsAreValidated(t *testing.T) {
	s := newTestServer()

	for _, path := range []string{
		"/api/tds/college/conferences/other/di",
		"/api/tds/college/conferences/female/d4",
		"/api/tds/college/conference/commits/male/di/ACC/next-year",
		"/api/tds/college/commits/club/female/twenty",
	} {
		rec := s.do(t, http.MethodGet, path, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		assert.Equal(t, errors.CodeValidation, decodeError(t, rec).Error.Code, path)
	}
}

func TestGetConferenceCommits(t *testing.T) {
	s := newTestServer()
	s.tds.commits = []domain.School{{Name: "Acme University", Players: []domain.Player{}}}

	rec := s.do(t, http.MethodGet, "/api/tds/college/conference/commits/m/dii/Big%20Ten/2025", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"name":"Acme University","players":[]}]`, rec.Body.String())
	assert.Equal(t, conferenceCall{domain.GenderMale, domain.DivisionDII, "Big Ten", 2025}, s.tds.lastCall)
}

func TestGetConferenceLeagueBreakdown(t *testing.T) {
	s := newTestServer()
	s.tds.breakdown = []domain.LeagueBreakdown{{Name: "ECNL", League: domain.LeagueECNL, Value: 2}}

	rec := s.do(t, http.MethodGet, "/api/tds/college/conference/commits/chart/female/di/ACC/2025", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"name":"ECNL","league":"ECNL","value":2}]`, rec.Body.String())
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", errors.NewNotFoundError("conference", "XYZ"), http.StatusNotFound, errors.CodeNotFound},
		{"upstream", errors.NewUpstreamFetchError("topdrawersoccer", "https://tds.test/secret", 503, nil), http.StatusBadGateway, errors.CodeUpstreamFetch},
		{"parse", errors.NewParseError("topdrawersoccer", "commitments table", nil), http.StatusInternalServerError, errors.CodeParse},
		{"wrapped", fmt.Errorf("loading: %w", errors.NewNotFoundError("conference", "XYZ")), http.StatusNotFound, errors.CodeNotFound},
		{"unclassified", fmt.Errorf("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer()
			s.tds.err = tt.err

			rec := s.do(t, http.MethodGet, "/api/tds/college/conference/female/di/XYZ", "")
			assert.Equal(t, tt.status, rec.Code)
			resp := decodeError(t, rec)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.NotContains(t, rec.Body.String(), "https://tds.test/secret")
		})
	}
}

func TestGetPlayerDetails(t *testing.T) {
	s := newTestServer()

	rec := s.do(t, http.MethodGet, "/api/tds/player/details?url=https://tds.test/club-player/jane-doe/pid-101", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://tds.test/club-player/jane-doe/pid-101", s.tds.lastURL)

	rec = s.do(t, http.MethodGet, "/api/tds/player/details/jane-doe/101", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://tds.test/club-player/jane-doe/pid-101", s.tds.lastURL)

	rec = s.do(t, http.MethodGet, "/api/tds/player/details/jane-doe/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchPlayers(t *testing.T) {
	s := newTestServer()

	rec := s.do(t, http.MethodPost, "/api/tds/players", `{"gender":"female","position":"Forward","gradyear":"2025"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.PlayerQuery{Gender: "female", Position: "Forward", GradYear: "2025"}, s.tds.lastQuery)

	rec = s.do(t, http.MethodPost, "/api/tds/players", `{"gender":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLookupLeagues(t *testing.T) {
	s := newTestServer()

	rec := s.do(t, http.MethodPost, "/api/club/league/lookup", `{"clubs":["So Cal Blues","Solar SC"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"So Cal Blues", "Solar SC"}, s.clubs.lastNames)
	assert.JSONEq(t, `[{"club":"So Cal Blues","league":"Other"},{"club":"Solar SC","league":"Other"}]`, rec.Body.String())
}

func TestLookupLeaguesValidation(t *testing.T) {
	s := newTestServer()

	for _, body := range []string{`{"clubs":[]}`, `{}`, `{"clubs":["Solar SC","  "]}`, `not json`} {
		rec := s.do(t, http.MethodPost, "/api/club/league/lookup", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
	assert.Nil(t, s.clubs.lastNames)
}

func TestRosterRoutes(t *testing.T) {
	s := newTestServer()

	routes := []struct{ path, want string }{
		{"/api/ecnl/clubs", `[{"name":"Solar SC","league":"ECNL"}]`},
		{"/api/ga/clubs", `[{"name":"Sting Austin","league":"GA"}]`},
		{"/api/ga/conferences", `[{"name":"SOUTHWEST"}]`},
	}
	for _, route := range routes {
		rec := s.do(t, http.MethodGet, route.path, "")
		require.Equal(t, http.StatusOK, rec.Code, route.path)
		assert.JSONEq(t, route.want, rec.Body.String(), route.path)
	}
}

func TestNCAARoutes(t *testing.T) {
	s := newTestServer()

	for _, path := range []string{"/api/ncaa/rankings/rpi", "/api/ncaa/rankings/coaches/di", "/api/ncaa/rankings/coaches/dii"} {
		rec := s.do(t, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec := s.do(t, http.MethodGet, "/api/ncaa/schools/DIII", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.DivisionDIII, s.ncaa.lastDivision)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/ncaa/schools/d9", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
