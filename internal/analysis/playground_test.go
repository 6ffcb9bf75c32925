package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbanyx-service/internal/domain"
)

var tbilisi = domain.GeoPoint{Lat: 41.7151, Lon: 44.8271}

func northOf(center domain.GeoPoint, meters float64) domain.GeoPoint {
	return domain.GeoPoint{Lat: center.Lat + meters*metreLat, Lon: center.Lon}
}

func TestIsPlayground(t *testing.T) {
	assert.True(t, IsPlayground(map[string]string{"leisure": "playground"}))
	assert.True(t, IsPlayground(map[string]string{"playground": "swing"}))
	assert.False(t, IsPlayground(map[string]string{"leisure": "park"}))
	assert.False(t, IsPlayground(map[string]string{"playground": ""}))
	assert.False(t, IsPlayground(nil))
}

func TestAnalyzePlaygrounds(t *testing.T) {
	elements := []domain.OSMElement{
		{
			ID: 1, Type: "node", Location: northOf(tbilisi, 111),
			Tags: map[string]string{
				"leisure": "playground", "playground": "swing", "fence": "yes",
				"surface": "rubber", "lit": "yes", "bench": "yes",
			},
		},
		{
			ID: 2, Type: "way", Location: northOf(tbilisi, 222),
			Tags: map[string]string{"leisure": "playground", "playground:slide": "no", "fence": "no"},
		},
		{
			ID: 3, Type: "way", Location: northOf(tbilisi, 20),
			Tags: map[string]string{"leisure": "park"},
		},
		{
			ID: 4, Type: "node", Location: northOf(tbilisi, 56),
			Tags: map[string]string{"leisure": "playground"},
		},
	}

	report := AnalyzePlaygrounds(tbilisi, elements, 0)

	assert.Equal(t, DefaultPlaygroundRadius, report.RadiusMeters)
	require.Equal(t, 3, report.Count)
	require.Len(t, report.Playgrounds, 3)

	assert.Equal(t, int64(4), report.Playgrounds[0].ID)
	assert.Equal(t, int64(1), report.Playgrounds[1].ID)
	assert.Equal(t, int64(2), report.Playgrounds[2].ID)

	assert.Nil(t, report.Playgrounds[0].Score.Value)
	assert.Equal(t, "უცნობი", report.Playgrounds[0].QualityLabel)

	// 40/7 за качели + 40 за безопасность; остальные 10 признаков неизвестны
	require.NotNil(t, report.Playgrounds[1].Score.Value)
	assert.Equal(t, 46, *report.Playgrounds[1].Score.Value)
	assert.Equal(t, domain.CategoryPoorWithGaps, report.Playgrounds[1].Score.Category)
	assert.Equal(t, "საშუალო*", report.Playgrounds[1].QualityLabel)

	require.NotNil(t, report.Playgrounds[2].Score.Value)
	assert.Equal(t, 0, *report.Playgrounds[2].Score.Value)
	assert.Equal(t, domain.CategoryCriticalWithGaps, report.Playgrounds[2].Score.Category)
	assert.Equal(t, "საჭიროებს გაუმჯობესებას*", report.Playgrounds[2].QualityLabel)

	require.NotNil(t, report.ClosestDistance)
	assert.InDelta(t, 56, *report.ClosestDistance, 0.5)
	require.NotNil(t, report.AverageScore)
	assert.Equal(t, 23, *report.AverageScore)
	assert.Equal(t, 0, report.ExcellentCount)

	assert.Equal(t, []string{
		"500 მეტრის რადიუსში მოიძებნა <strong>3</strong> სათამაშო მოედანი",
		"უახლოესი მოედანი: <strong>56</strong> მეტრი",
		"საშუალო შეფასება: <strong>23/100</strong>",
		"უმეტესობა მოედნები საჭიროებს გაუმჯობესებას უსაფრთხოებისა და ინვენტარის თვალსაზრისით",
	}, report.Messages)
}

func TestAnalyzePlaygrounds_Empty(t *testing.T) {
	report := AnalyzePlaygrounds(tbilisi, []domain.OSMElement{{Tags: map[string]string{"leisure": "park"}}}, 300)

	assert.Equal(t, 300, report.RadiusMeters)
	assert.Equal(t, 0, report.Count)
	assert.NotNil(t, report.Playgrounds)
	assert.Nil(t, report.ClosestDistance)
	assert.Nil(t, report.AverageScore)
	require.Len(t, report.Messages, 1)
	assert.Contains(t, report.Messages[0], "სათამაშო მოედნები არ მოიძებნა")
}

func TestAnalyzePlaygrounds_QualityMessages(t *testing.T) {
	good := map[string]string{
		"leisure":          "playground",
		"playground:swing": "yes", "playground:slide": "yes", "playground:sandpit": "yes",
		"playground:seesaw": "yes", "playground:springy": "yes",
		"fence": "yes", "surface": "sand", "lit": "yes", "bench": "yes",
		"shelter": "yes",
	}
	poor := map[string]string{"leisure": "playground", "fence": "no", "lit": "no"}
	sparse := map[string]string{"leisure": "playground", "lit": "yes"}

	t.Run("well equipped", func(t *testing.T) {
		report := AnalyzePlaygrounds(tbilisi, []domain.OSMElement{{ID: 1, Location: northOf(tbilisi, 100), Tags: good}}, 500)

		// 5/7*40 + 40 + 20/4 = 73.6
		require.NotNil(t, report.AverageScore)
		assert.Equal(t, 74, *report.AverageScore)
		assert.Equal(t, 1, report.ExcellentCount)
		assert.Equal(t, "ძალიან კარგი*", report.Playgrounds[0].QualityLabel)
		assert.Contains(t, report.Messages, "ზოგადად, მოედნები კარგ მდგომარეობაშია და უსაფრთხოა ბავშვებისთვის")
	})

	t.Run("poor", func(t *testing.T) {
		report := AnalyzePlaygrounds(tbilisi, []domain.OSMElement{{ID: 1, Location: northOf(tbilisi, 100), Tags: poor}}, 500)
		assert.Contains(t, report.Messages, "უმეტესობა მოედნები საჭიროებს გაუმჯობესებას უსაფრთხოებისა და ინვენტარის თვალსაზრისით")
		assert.Equal(t, 0, report.ExcellentCount)
	})

	t.Run("one positive tag is not excellent", func(t *testing.T) {
		report := AnalyzePlaygrounds(tbilisi, []domain.OSMElement{{ID: 1, Location: northOf(tbilisi, 100), Tags: sparse}}, 500)

		require.NotNil(t, report.Playgrounds[0].Score.Value)
		assert.Equal(t, 10, *report.Playgrounds[0].Score.Value)
		assert.Equal(t, "საჭიროებს გაუმჯობესებას*", report.Playgrounds[0].QualityLabel)
		assert.Equal(t, 0, report.ExcellentCount)
		assert.NotContains(t, report.Messages, "ზოგადად, მოედნები კარგ მდგომარეობაშია და უსაფრთხოა ბავშვებისთვის")
		assert.Contains(t, report.Messages, "უმეტესობა მოედნები საჭიროებს გაუმჯობესებას უსაფრთხოებისა და ინვენტარის თვალსაზრისით")
	})
}
