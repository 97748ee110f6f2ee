package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/golf-club-recommender/internal/club"
	"github.com/i474232898/golf-club-recommender/internal/weather"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 15*time.Minute, cfg.FetchInterval)
	assert.Equal(t, 96, cfg.StoreMaxHistory)
	assert.Equal(t, 24*time.Hour, cfg.StoreMaxAge)
	assert.Empty(t, cfg.Courses)
	assert.Equal(t, club.DefaultPolicy(), cfg.Policy)
	assert.Equal(t, "data/shots.csv", cfg.ShotLogPath)

	table, err := cfg.Table()
	require.NoError(t, err)
	assert.Equal(t, club.DefaultTable().Len(), table.Len())
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("FETCH_INTERVAL", "5m")
	t.Setenv("COURSE_CITY", "St Andrews, Augusta")
	t.Setenv("COURSE_COUNTRY", "GB,US")
	t.Setenv("SLOPE_MODEL", "Linear")
	t.Setenv("SLOPE_BOUND_DEGREES", "30")
	t.Setenv("WIND_UNIT", "kmh")
	t.Setenv("APPLY_TERRAIN", "false")
	t.Setenv("SHOT_LOG_PATH", "off")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 5*time.Minute, cfg.FetchInterval)
	assert.Equal(t, []weather.Location{
		{City: "St Andrews", Country: "GB"},
		{City: "Augusta", Country: "US"},
	}, cfg.Courses)
	assert.Equal(t, club.SlopeLinear, cfg.Policy.SlopeModel)
	assert.Equal(t, 30.0, cfg.Policy.SlopeBoundDegrees)
	assert.Equal(t, club.WindKMH, cfg.Policy.WindUnit)
	assert.False(t, cfg.Policy.ApplyTerrain)
	assert.Empty(t, cfg.ShotLogPath)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string][2]string{
		"bad history":      {"STORE_MAX_HISTORY", "lots"},
		"bad interval":     {"FETCH_INTERVAL", "soon"},
		"bad timeout":      {"HTTP_TIMEOUT", "x"},
		"bad bound":        {"SLOPE_BOUND_DEGREES", "steep"},
		"bound too large":  {"SLOPE_BOUND_DEGREES", "120"},
		"bad model":        {"SLOPE_MODEL", "cubic"},
		"bad unit":         {"WIND_UNIT", "knots"},
		"bad terrain flag": {"APPLY_TERRAIN", "maybe"},
		"zero sand":        {"TERRAIN_SAND", "0"},
	}
	for name, kv := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestLoad_InvalidStoreHistoryNamesVariable(t *testing.T) {
	t.Setenv("STORE_MAX_HISTORY", "lots")
	cfg, err := Load()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "STORE_MAX_HISTORY")
}

func TestLoad_MismatchedCourses(t *testing.T) {
	t.Setenv("COURSE_CITY", "A,B")
	t.Setenv("COURSE_COUNTRY", "US")
	_, err := Load()
	assert.Error(t, err)
}

func TestTable_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bag.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"pw","referenceDistance":105}]`), 0o644))
	t.Setenv("CLUB_TABLE_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	table, err := cfg.Table()
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
}
