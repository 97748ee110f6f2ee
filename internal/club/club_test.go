package club

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

func TestResolveWindAngle_KnownHeadings(t *testing.T) {
	tests := map[string]float64{
		"N": 0, "NE": 45, "E": 90, "SE": 135,
		"S": 180, "SW": 225, "W": 270, "NW": 315,
	}
	for heading, want := range tests {
		t.Run(heading, func(t *testing.T) {
			got, err := ResolveWindAngle(heading)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestResolveWindAngle_CaseAndAliases(t *testing.T) {
	for _, in := range []string{"ne", " Ne ", "northeast", "North-East", "north east"} {
		got, err := ResolveWindAngle(in)
		require.NoError(t, err, in)
		assert.Equal(t, 45.0, got, in)
	}
}

func TestResolveWindAngle_Unknown(t *testing.T) {
	for _, in := range []string{"", "NNE", "up", "X"} {
		_, err := ResolveWindAngle(in)
		require.Error(t, err, in)
		assert.ErrorIs(t, err, ErrUnresolvedHeading)
		assert.NotErrorIs(t, err, ErrInvalidInput)
	}
}

func TestHeadingForAngle(t *testing.T) {
	tests := []struct {
		deg  float64
		want string
	}{
		{0, "N"}, {22, "N"}, {23, "NE"}, {90, "E"}, {200, "S"},
		{337.6, "N"}, {-90, "W"}, {405, "NE"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HeadingForAngle(tt.deg), "deg=%v", tt.deg)
	}
}

func TestAdjustDistance_CalmFlatIsUnchanged(t *testing.T) {
	p := DefaultPolicy()
	for _, h := range []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"} {
		angle, err := ResolveWindAngle(h)
		require.NoError(t, err)
		assert.Equal(t, 150.0, p.AdjustDistance(150, 0, angle, 0, false, false), h)
	}
}

func TestAdjustDistance_Models(t *testing.T) {
	tests := []struct {
		name   string
		policy func(*Policy)
		base   float64
		speed  float64
		angle  float64
		slope  float64
		rough  bool
		sand   bool
		want   float64
	}{
		{name: "east wind adds full speed", base: 150, speed: 10, angle: 90, want: 160},
		{name: "west wind subtracts", base: 150, speed: 10, angle: 270, want: 140},
		{name: "north wind no effect", base: 150, speed: 10, angle: 0, want: 150},
		{name: "tangent slope 45", base: 100, slope: 45, want: 200},
		{name: "tangent downhill", base: 100, slope: -45, want: 0},
		{
			name:   "linear slope",
			policy: func(p *Policy) { p.SlopeModel = SlopeLinear },
			base:   100, slope: 20, want: 105,
		},
		{
			name:   "kmh normalized",
			policy: func(p *Policy) { p.WindUnit = WindKMH },
			base:   100, speed: 10, angle: 90, want: 100 + 10*KMHToMPH,
		},
		{name: "rough", base: 100, rough: true, want: 90},
		{name: "sand", base: 100, sand: true, want: 80},
		{name: "rough and sand stack", base: 100, rough: true, sand: true, want: 72},
		{
			name:   "terrain disabled",
			policy: func(p *Policy) { p.ApplyTerrain = false },
			base:   100, rough: true, sand: true, want: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultPolicy()
			if tt.policy != nil {
				tt.policy(&p)
			}
			got := p.AdjustDistance(tt.base, tt.speed, tt.angle, tt.slope, tt.rough, tt.sand)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestMatchClub(t *testing.T) {
	table := MustTable(
		Club{ID: "7", DisplayName: "7-iron", ReferenceDistance: 150},
		Club{ID: "8", DisplayName: "8-iron", ReferenceDistance: 140},
	)

	m, err := MatchClub(160, table)
	require.NoError(t, err)
	assert.Equal(t, "7-iron", m.Club.Name())
	assert.Equal(t, 10.0, m.Difference)

	m, err = MatchClub(140, table)
	require.NoError(t, err)
	assert.Equal(t, "8", m.Club.ID)
	assert.Zero(t, m.Difference)
}

func TestMatchClub_TieGoesToFirst(t *testing.T) {
	table := MustTable(
		Club{ID: "A", ReferenceDistance: 100},
		Club{ID: "B", ReferenceDistance: 100},
	)
	m, err := MatchClub(100, table)
	require.NoError(t, err)
	assert.Equal(t, "A", m.Club.ID)

	// Equidistant neighbours also resolve to the earlier entry.
	table = MustTable(
		Club{ID: "long", ReferenceDistance: 110},
		Club{ID: "short", ReferenceDistance: 90},
	)
	m, err = MatchClub(100, table)
	require.NoError(t, err)
	assert.Equal(t, "long", m.Club.ID)
}

func TestMatchClub_Deterministic(t *testing.T) {
	table := DefaultTable()
	first, err := MatchClub(137.5, table)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := MatchClub(137.5, table)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestMatchClub_EmptyTable(t *testing.T) {
	_, err := MatchClub(100, Table{})
	assert.ErrorIs(t, err, ErrEmptyTable)

	_, err = Rank(100, Table{})
	assert.ErrorIs(t, err, ErrEmptyTable)
}

func TestMatchClub_NonFiniteDistance(t *testing.T) {
	for _, adjusted := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		m, err := MatchClub(adjusted, DefaultTable())
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Zero(t, m)

		var ce *Error
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "adjustedDistance", ce.Field)

		ranked, err := Rank(adjusted, DefaultTable())
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Nil(t, ranked)
	}
}

func TestRank_StableAndAgreesWithMatch(t *testing.T) {
	table := MustTable(
		Club{ID: "a", ReferenceDistance: 120},
		Club{ID: "b", ReferenceDistance: 100},
		Club{ID: "c", ReferenceDistance: 80},
		Club{ID: "d", ReferenceDistance: 100},
	)
	ranked, err := Rank(100, table)
	require.NoError(t, err)

	ids := make([]string, 0, len(ranked))
	for _, m := range ranked {
		ids = append(ids, m.Club.ID)
	}
	assert.Equal(t, []string{"b", "d", "a", "c"}, ids)

	m, err := MatchClub(100, table)
	require.NoError(t, err)
	assert.Equal(t, ranked[0], m)
}

func TestNewTable_Rejects(t *testing.T) {
	_, err := NewTable([]Club{{ID: "a", ReferenceDistance: 1}, {ID: "a", ReferenceDistance: 2}})
	assert.ErrorContains(t, err, "duplicate")

	_, err = NewTable([]Club{{ID: "a", ReferenceDistance: -1}})
	assert.Error(t, err)

	_, err = NewTable([]Club{{ID: "a", ReferenceDistance: math.NaN()}})
	assert.Error(t, err)

	_, err = NewTable([]Club{{ReferenceDistance: 10}})
	assert.Error(t, err)
}

func TestTable_ClubsIsACopy(t *testing.T) {
	table := DefaultTable()
	clubs := table.Clubs()
	clubs[0].ReferenceDistance = 1

	c, ok := table.Lookup("driver")
	require.True(t, ok)
	assert.Equal(t, 230.0, c.ReferenceDistance)
	assert.Equal(t, 13, table.Len())
}

func TestLoadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clubs.json")
	body := `[
		{"id":"7","displayName":"7-iron","referenceDistance":150,"category":"iron"},
		{"id":"8","referenceDistance":140}
	]`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	table, err := LoadTable(path)
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())

	c, ok := table.Lookup("8")
	require.True(t, ok)
	assert.Equal(t, "8", c.Name())

	_, err = LoadTable(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestAnnotations(t *testing.T) {
	assert.Contains(t, FlagNote("Red"), "front")
	assert.Contains(t, FlagNote("blue"), "back")
	assert.Contains(t, FlagNote("YELLOW"), "back")
	assert.Contains(t, FlagNote("white"), "middle")
	assert.Empty(t, FlagNote("green"))
	assert.Empty(t, FlagNote(""))

	assert.Contains(t, LieNote(false, true), "bunker")
	assert.Contains(t, LieNote(true, false), "rough")
	assert.Contains(t, LieNote(true, true), "bunker")
	assert.Empty(t, LieNote(false, false))

	assert.Contains(t, ClubHint(Club{Category: CategoryWedge}), "Wedge")
	assert.Empty(t, ClubHint(Club{Category: "mystery"}))
}

func TestPolicyCheck(t *testing.T) {
	require.NoError(t, DefaultPolicy().Check())

	bad := []func(*Policy){
		func(p *Policy) { p.SlopeBoundDegrees = 120 },
		func(p *Policy) { p.SlopeBoundDegrees = -1 },
		func(p *Policy) { p.WindUnit = "knots" },
		func(p *Policy) { p.SlopeModel = "cubic" },
		func(p *Policy) { p.Terrain.Sand = 0 },
	}
	for i, mutate := range bad {
		p := DefaultPolicy()
		mutate(&p)
		assert.Error(t, p.Check(), "case %d", i)
	}

	p := DefaultPolicy()
	p.ApplyTerrain = false
	p.Terrain = TerrainMultipliers{}
	assert.NoError(t, p.Check())
}

func TestErrorKinds(t *testing.T) {
	err := invalid("distance")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.NotErrorIs(t, err, ErrEmptyTable)
	assert.False(t, errors.Is(err, errors.New("club: invalid_input (distance)")))

	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, KindInvalidInput, ce.Kind)
	assert.Equal(t, "distance", ce.Field)
	assert.Equal(t, "club: invalid_input (distance)", err.Error())
	assert.Equal(t, "club: empty_table", ErrEmptyTable.Error())
}
