package constants

import "time"

var CacheTTL = struct {
	Conferences      time.Duration
	ConferenceCommit time.Duration
	ClubCommitments  time.Duration
	Rosters          time.Duration
	Rankings         time.Duration
	Schools          time.Duration
	PlayerDetails    time.Duration
	PlayerSearch     time.Duration
}{
	Conferences:      7 * 24 * time.Hour,
	ConferenceCommit: 7 * 24 * time.Hour,
	ClubCommitments:  7 * 24 * time.Hour,
	Rosters:          7 * 24 * time.Hour,
	Rankings:         7 * 24 * time.Hour,
	Schools:          7 * 24 * time.Hour,
	PlayerDetails:    24 * time.Hour,
	PlayerSearch:     24 * time.Hour,
}

var CacheKeyPrefix = "soccer"

var RedisConfig = struct {
	ReadyTimeout time.Duration
}{
	ReadyTimeout: 5 * time.Second,
}

var CircuitBreakerConfig = struct {
	FailureThreshold int
	ResetTimeout     time.Duration
}{
	FailureThreshold: 5,
	ResetTimeout:     30 * time.Second,
}

var SourceConfig = struct {
	Timeout           time.Duration
	UserAgent         string
	RequestsPerSecond float64
	Burst             int
	MaxBodyBytes      int64
}{
	Timeout:           15 * time.Second,
	UserAgent:         "Mozilla/5.0 (compatible; SoccerDataBot/1.0)",
	RequestsPerSecond: 5,
	Burst:             8,
	MaxBodyBytes:      16 << 20,
}

// Source names used in logs and error messages.
const (
	SourceTopDrawer = "topdrawersoccer"
	SourceECNL      = "ecnl"
	SourceGA        = "girls academy"
	SourceNCAA      = "ncaa"
	SourceCoaches   = "united soccer coaches"
)

var TopDrawerURLs = struct {
	Base                string
	Conferences         string
	CommitmentsTab      string
	Search              string
	ClubCommitments     string
	PlayerDetailsFormat string
}{
	Base:                "https://www.topdrawersoccer.com",
	Conferences:         "https://www.topdrawersoccer.com/college-soccer/college-conferences",
	CommitmentsTab:      "/tab-commitments",
	Search:              "https://www.topdrawersoccer.com/search/",
	ClubCommitments:     "https://www.topdrawersoccer.com/college-soccer/club-commitments",
	PlayerDetailsFormat: "https://www.topdrawersoccer.com/club-player/%s/pid-%d",
}

var RosterURLs = struct {
	ECNL string
	GA   string
}{
	ECNL: "https://public.totalglobalsports.com/api/Event/get-org-club-list-by-orgID/9",
	GA:   "https://girlsacademyleague.com/members/",
}

var NCAAURLs = struct {
	RPI             string
	CoachesDI       string
	CoachesDII      string
	DirectoryFormat string
}{
	RPI:             "https://www.ncaa.com/rankings/soccer-women/d1/ncaa-womens-soccer-rpi",
	CoachesDI:       "https://www.ncaa.com/rankings/soccer-women/d1/united-soccer-coaches",
	CoachesDII:      "https://unitedsoccercoaches.org/rankings/college-rankings/ncaa-dii-women/",
	DirectoryFormat: "https://web3.ncaa.org/directory/api/directory/memberList?type=12&division=%s",
}

var AggregatorConfig = struct {
	PlayerDetailConcurrency int
}{
	PlayerDetailConcurrency: 8,
}
