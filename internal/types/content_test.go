package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestExperienceRecord_YAMLDecoding(t *testing.T) {
	content := `
type: job
metatext1: Acme Corp
metatext2: Software Engineer
min_points: 2
max_points: 4
order: 1
groups:
  - min: 1
    max: 3
    points:
      - text: Built a streaming pipeline
        bold: [streaming]
        dependants:
          - text: Cut latency by 40%
`
	var rec ExperienceRecord
	require.NoError(t, yaml.Unmarshal([]byte(content), &rec))

	assert.Equal(t, "job", rec.Type)
	assert.Empty(t, rec.ID, "id is taken from the mapping key, not the record")
	require.NotNil(t, rec.MinPoints)
	require.NotNil(t, rec.MaxPoints)
	assert.Equal(t, 2, *rec.MinPoints)
	assert.Equal(t, 4, *rec.MaxPoints)
	require.NotNil(t, rec.Order)
	assert.Equal(t, 1, *rec.Order)

	require.Len(t, rec.Groups, 1)
	group := rec.Groups[0]
	require.NotNil(t, group.Min)
	assert.Equal(t, 1, *group.Min)
	require.Len(t, group.Points, 1)
	assert.Equal(t, []string{"streaming"}, group.Points[0].Bold)
	require.Len(t, group.Points[0].Dependants, 1)
	assert.Equal(t, "Cut latency by 40%", group.Points[0].Dependants[0].Text)
	assert.Nil(t, group.Points[0].Dependants[0].Order)
}

func TestExperienceRecord_OptionalBoundsStayNil(t *testing.T) {
	var rec ExperienceRecord
	require.NoError(t, yaml.Unmarshal([]byte("type: project\n"), &rec))

	assert.Nil(t, rec.MinPoints)
	assert.Nil(t, rec.MaxPoints)
	assert.Nil(t, rec.Order)
	assert.Empty(t, rec.Groups)
}

func TestExperienceRecord_MetaTexts(t *testing.T) {
	rec := ExperienceRecord{
		MetaText1: "one",
		MetaText3: "three",
		MetaText5: "five",
	}

	assert.Equal(t, [5]string{"one", "", "three", "", "five"}, rec.MetaTexts())
}

func TestBlockTemplate_YAMLDecoding(t *testing.T) {
	content := `
job:
  template: "\\resumeSubheading{%metatext1%}{%metatext2%}\n%bullets%\n"
  bullet: "\\resumeItem{%text%}"
`
	var blocks map[string]BlockTemplate
	require.NoError(t, yaml.Unmarshal([]byte(content), &blocks))

	require.Contains(t, blocks, "job")
	assert.Equal(t, `\resumeItem{%text%}`, blocks["job"].Bullet)
	assert.Contains(t, blocks["job"].Template, "%bullets%")
}
