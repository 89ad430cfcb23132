package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/kapu/soccer-data-go/internal/domain"
	"github.com/kapu/soccer-data-go/pkg/errors"
	"go.uber.org/zap"
)

type TDSService interface {
	ListConferences(ctx context.Context, gender domain.Gender, division domain.Division) ([]domain.Conference, error)
	GetConference(ctx context.Context, gender domain.Gender, division domain.Division, name string) (*domain.Conference, error)
	GetConferenceCommits(ctx context.Context, gender domain.Gender, division domain.Division, name string, gradYear int) ([]domain.School, error)
	GetConferenceLeagueBreakdown(ctx context.Context, gender domain.Gender, division domain.Division, name string, gradYear int) ([]domain.LeagueBreakdown, error)
	GetCommitmentsByClub(ctx context.Context, gender domain.Gender, year int) ([]domain.ClubCommitments, error)
	GetPlayerDetails(ctx context.Context, url string) (*domain.PlayerDetails, error)
	SearchPlayers(ctx context.Context, query domain.PlayerQuery) ([]domain.Player, error)
}

type ClubService interface {
	ECNLClubs(ctx context.Context) ([]domain.Club, error)
	GAClubs(ctx context.Context) ([]domain.Club, error)
	GAConferences(ctx context.Context) ([]domain.GAConference, error)
	LookupLeagues(ctx context.Context, names []string) ([]domain.LeagueLookup, error)
}

type NCAAService interface {
	RPIRankings(ctx context.Context) ([]domain.Ranking, error)
	CoachesDIRankings(ctx context.Context) ([]domain.Ranking, error)
	CoachesDIIRankings(ctx context.Context) ([]domain.Ranking, error)
	Schools(ctx context.Context, division domain.Division) ([]domain.NCAASchool, error)
}

// Handler adapts HTTP requests onto the services. It only validates and
// converts parameters.
type Handler struct {
	tds              TDSService
	clubs            ClubService
	ncaa             NCAAService
	playerURLBuilder func(name string, pid int) string
	logger           *zap.Logger
}

func NewHandler(tds TDSService, clubs ClubService, ncaa NCAAService, playerURLBuilder func(string, int) string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		tds:              tds,
		clubs:            clubs,
		ncaa:             ncaa,
		playerURLBuilder: playerURLBuilder,
		logger:           logger,
	}
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, v any, err error) {
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func genderParam(r *http.Request) (domain.Gender, error) {
	value := chi.URLParam(r, "gender")
	gender, err := domain.ParseGender(value)
	if err != nil {
		return "", errors.NewValidationError("gender must be male or female", "gender", value)
	}
	return gender, nil
}

func divisionParam(r *http.Request) (domain.Division, error) {
	value := chi.URLParam(r, "division")
	division, err := domain.ParseDivision(value)
	if err != nil {
		return "", errors.NewValidationError("division must be one of di, dii, diii, naia, njcaa", "division", value)
	}
	return division, nil
}

func intParam(r *http.Request, name string) (int, error) {
	value := chi.URLParam(r, name)
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.NewValidationError(name+" must be a number", name, value)
	}
	return n, nil
}

type conferenceParams struct {
	gender   domain.Gender
	division domain.Division
	name     string
}

func parseConferenceParams(r *http.Request) (conferenceParams, error) {
	gender, err := genderParam(r)
	if err != nil {
		return conferenceParams{}, err
	}
	division, err := divisionParam(r)
	if err != nil {
		return conferenceParams{}, err
	}
	return conferenceParams{gender: gender, division: division, name: chi.URLParam(r, "name")}, nil
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListConferences(w http.ResponseWriter, r *http.Request) {
	gender, err := genderParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	division, err := divisionParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	conferences, err := h.tds.ListConferences(r.Context(), gender, division)
	h.respond(w, r, conferences, err)
}

func (h *Handler) GetConference(w http.ResponseWriter, r *http.Request) {
	params, err := parseConferenceParams(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	conference, err := h.tds.GetConference(r.Context(), params.gender, params.division, params.name)
	h.respond(w, r, conference, err)
}

func (h *Handler) GetConferenceCommits(w http.ResponseWriter, r *http.Request) {
	params, err := parseConferenceParams(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	year, err := intParam(r, "year")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	schools, err := h.tds.GetConferenceCommits(r.Context(), params.gender, params.division, params.name, year)
	h.respond(w, r, schools, err)
}

func (h *Handler) GetConferenceLeagueBreakdown(w http.ResponseWriter, r *http.Request) {
	params, err := parseConferenceParams(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	year, err := intParam(r, "year")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	breakdown, err := h.tds.GetConferenceLeagueBreakdown(r.Context(), params.gender, params.division, params.name, year)
	h.respond(w, r, breakdown, err)
}

func (h *Handler) GetCommitmentsByClub(w http.ResponseWriter, r *http.Request) {
	gender, err := genderParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	year, err := intParam(r, "year")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	counts, err := h.tds.GetCommitmentsByClub(r.Context(), gender, year)
	h.respond(w, r, counts, err)
}

// GetPlayerDetails accepts either ?url= or the /{name}/{pid} form.
func (h *Handler) GetPlayerDetails(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if name := chi.URLParam(r, "name"); name != "" {
		pid, err := intParam(r, "pid")
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		url = h.playerURLBuilder(name, pid)
	}
	details, err := h.tds.GetPlayerDetails(r.Context(), url)
	h.respond(w, r, details, err)
}

func (h *Handler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	var query domain.PlayerQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		h.writeError(w, r, errors.NewValidationError("request body must be a JSON player query", "body", nil))
		return
	}
	players, err := h.tds.SearchPlayers(r.Context(), query)
	h.respond(w, r, players, err)
}

func (h *Handler) ECNLClubs(w http.ResponseWriter, r *http.Request) {
	clubs, err := h.clubs.ECNLClubs(r.Context())
	h.respond(w, r, clubs, err)
}

func (h *Handler) GAClubs(w http.ResponseWriter, r *http.Request) {
	clubs, err := h.clubs.GAClubs(r.Context())
	h.respond(w, r, clubs, err)
}

func (h *Handler) GAConferences(w http.ResponseWriter, r *http.Request) {
	conferences, err := h.clubs.GAConferences(r.Context())
	h.respond(w, r, conferences, err)
}

type leagueLookupRequest struct {
	Clubs []string `json:"clubs"`
}

func (h *Handler) LookupLeagues(w http.ResponseWriter, r *http.Request) {
	var req leagueLookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, errors.NewValidationError("request body must be {\"clubs\": [...]}", "body", nil))
		return
	}
	if len(req.Clubs) == 0 {
		h.writeError(w, r, errors.NewValidationError("at least one club is required", "clubs", req.Clubs))
		return
	}
	for _, name := range req.Clubs {
		if strings.TrimSpace(name) == "" {
			h.writeError(w, r, errors.NewValidationError("club names must not be blank", "clubs", req.Clubs))
			return
		}
	}
	results, err := h.clubs.LookupLeagues(r.Context(), req.Clubs)
	h.respond(w, r, results, err)
}

func (h *Handler) RPIRankings(w http.ResponseWriter, r *http.Request) {
	rankings, err := h.ncaa.RPIRankings(r.Context())
	h.respond(w, r, rankings, err)
}

func (h *Handler) CoachesDIRankings(w http.ResponseWriter, r *http.Request) {
	rankings, err := h.ncaa.CoachesDIRankings(r.Context())
	h.respond(w, r, rankings, err)
}

func (h *Handler) CoachesDIIRankings(w http.ResponseWriter, r *http.Request) {
	rankings, err := h.ncaa.CoachesDIIRankings(r.Context())
	h.respond(w, r, rankings, err)
}

func (h *Handler) NCAASchools(w http.ResponseWriter, r *http.Request) {
	division, err := divisionParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	schools, err := h.ncaa.Schools(r.Context(), division)
	h.respond(w, r, schools, err)
}
