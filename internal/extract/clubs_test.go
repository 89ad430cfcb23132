package extract

import (
	"testing"

	"github.com/kapu/soccer-data-go/internal/domain"
	"github.com/kapu/soccer-data-go/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ecnlPayload = `{
  "data": [
    {"clubID": 11, "orgID": 9, "clubFullName": "So Cal  Blues SC ", "city": "Irvine", "stateCode": "CA", "clubLogo": "https://cdn.test/blues.png"},
    {"clubID": 12, "orgID": 9, "clubFullName": "   ", "city": "", "stateCode": ""},
    {"clubID": 13, "orgID": 9, "clubFullName": "Solar SC", "city": "Dallas", "stateCode": "TX"}
  ]
}`

func TestECNLClubs(t *testing.T) {
	clubs, err := ECNLClubs([]byte(ecnlPayload), nil)
	require.NoError(t, err)
	require.Len(t, clubs, 2)

	assert.Equal(t, domain.Club{
		Name:     "So Cal Blues SC",
		City:     "Irvine",
		State:    "CA",
		Logo:     "https://cdn.test/blues.png",
		SourceID: "11",
		OrgID:    "9",
		League:   domain.LeagueECNL,
	}, clubs[0])
	assert.Equal(t, "Solar SC", clubs[1].Name)
}

func TestECNLClubsRejectsBadPayloads(t *testing.T) {
	_, err := ECNLClubs([]byte(`not json`), nil)
	assert.True(t, errors.IsParse(err))

	_, err = ECNLClubs([]byte(`{"result": []}`), nil)
	assert.True(t, errors.IsParse(err))
}

const gaPage = `
<div class="et_pb_tab_content">
  <table><tr><td>
    <p><strong></strong><strong>Southwest Conference</strong></p>
    <ul><li>Members<ul>
      <li><a href="https://solar.test">Solar SC</a> (TX)</li>
      <li><a href="https://sting.test">Sting  Austin</a> (TX)</li>
      <li>Pending club</li>
    </ul></li></ul>
  </td></tr></table>
</div>
<div class="et_pb_tab_content">
  <table><tr><td>
    <strong>Mid-Atlantic Conference</strong>
    <ul><li><ul><li><a href="https://ps.test">PA Classics</a> (PA)</li></ul></li></ul>
  </td></tr></table>
</div>
<div class="et_pb_tab_content"><p>Coming soon</p></div>`

func TestGAClubs(t *testing.T) {
	clubs, err := GAClubs([]byte(gaPage), nil)
	require.NoError(t, err)
	require.Len(t, clubs, 3)

	assert.Equal(t, domain.Club{
		Name:       "Solar SC",
		State:      "TX",
		Conference: "SOUTHWEST",
		URL:        "https://solar.test",
		League:     domain.LeagueGA,
	}, clubs[0])
	assert.Equal(t, "Sting Austin", clubs[1].Name)
	assert.Equal(t, "MID-ATLANTIC", clubs[2].Conference)
	assert.Equal(t, "PA", clubs[2].State)
}

func TestGAConferences(t *testing.T) {
	conferences, err := GAConferences([]byte(gaPage))
	require.NoError(t, err)
	assert.Equal(t, []domain.GAConference{{Name: "SOUTHWEST"}, {Name: "MID-ATLANTIC"}}, conferences)
}

func TestGAWithoutTabsIsParseError(t *testing.T) {
	_, err := GAClubs([]byte(`<html><body>maintenance</body></html>`), nil)
	assert.True(t, errors.IsParse(err))

	_, err = GAConferences([]byte(`<html></html>`))
	assert.True(t, errors.IsParse(err))
}

const clubCommitmentsPage = `
<table class="table-striped">
  <thead><tr><th>Club</th><th>DI</th><th>DII</th><th>DIII</th><th>NAIA</th><th>Total</th></tr></thead>
  <tbody>
    <tr><td>Solar SC</td><td>12</td><td>3</td><td>1</td><td>0</td><td>16</td></tr>
    <tr><td>Sting Austin</td><td>4</td><td>-</td><td>1</td><td>0</td><td>5</td></tr>
    <tr><td>Short row</td><td>1</td></tr>
  </tbody>
</table>`

func TestClubCommitments(t *testing.T) {
	rows, err := ClubCommitments([]byte(clubCommitmentsPage), nil)
	require.NoError(t, err)
	assert.Equal(t, []domain.ClubCommitments{
		{Club: "Solar SC", DI: 12, DII: 3, DIII: 1, NAIA: 0, Total: 16},
	}, rows)
}

func TestClubCommitmentsMissingTableIsParseError(t *testing.T) {
	_, err := ClubCommitments([]byte(`<html><body></body></html>`), nil)
	assert.True(t, errors.IsParse(err))
}
