package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleContent = `
zeta_corp:
  type: job
  metatext1: Zeta Corp
  metatext2: Backend Engineer
  min_points: 2
  max_points: 4
  groups:
    - min: 1
      max: 3
      points:
        - text: "  Built billing service in Go  "
          bold: [Go, Go, ""]
        - text: Migrated to Kubernetes
          dependants:
            - text: Reduced deploy time by 40%
              dependants:
                - text: Documented the rollout
            - text: Trained the team
              order: 7
alpha_app:
  type: project
  order: 2
  metatext1: Alpha App
  groups:
    - points:
        - text: Wrote a CLI
`

func TestParse_KeepsDeclarationOrder(t *testing.T) {
	file, err := Parse([]byte(sampleContent))
	require.NoError(t, err)

	require.Len(t, file.Experiences, 2)
	assert.Equal(t, "zeta_corp", file.Experiences[0].ID)
	assert.Equal(t, "alpha_app", file.Experiences[1].ID)
	assert.Equal(t, "Built billing service in Go", file.Experiences[0].Groups[0].Points[0].Text)
	assert.Equal(t, []string{"Go"}, file.Experiences[0].Groups[0].Points[0].Bold)
}

func TestBuild_FromParsedContent(t *testing.T) {
	file, err := Parse([]byte(sampleContent))
	require.NoError(t, err)

	m, err := Build(file)
	require.NoError(t, err)

	require.Len(t, m.Experiences, 2)
	zeta := m.Experiences[0]
	assert.Equal(t, "zeta_corp", zeta.Key)
	assert.Equal(t, "job", zeta.Category)
	assert.Equal(t, Unordered, zeta.Order)
	assert.Equal(t, 2, zeta.Min)
	assert.Equal(t, 4, zeta.Max)
	assert.Equal(t, "Backend Engineer", zeta.MetaText[1])

	alpha := m.Experiences[1]
	assert.Equal(t, 2, alpha.Order)
	assert.Equal(t, NoLimit, alpha.Min)
	assert.Equal(t, NoLimit, alpha.Max)
	assert.Equal(t, 1, alpha.DeclOrder)

	texts := make([]string, 0, len(zeta.Bullets))
	for _, id := range zeta.Bullets {
		texts = append(texts, m.Bullets[id].Text)
	}
	assert.Equal(t, []string{
		"Built billing service in Go",
		"Migrated to Kubernetes",
		"Reduced deploy time by 40%",
		"Documented the rollout",
		"Trained the team",
	}, texts)

	migrated := m.Bullets[zeta.Bullets[1]]
	reduced := m.Bullets[zeta.Bullets[2]]
	documented := m.Bullets[zeta.Bullets[3]]
	trained := m.Bullets[zeta.Bullets[4]]

	assert.Equal(t, migrated.ID, reduced.Dependency)
	assert.Equal(t, reduced.ID, documented.Dependency)
	assert.Equal(t, migrated.ID, trained.Dependency)
	assert.Equal(t, []BulletID{reduced.ID, trained.ID}, migrated.Dependants)

	assert.Equal(t, Unordered+1, reduced.Order)
	assert.Equal(t, Unordered+2, documented.Order)
	assert.Equal(t, 7, trained.Order)

	g := m.Groups[zeta.Groups[0]]
	assert.Equal(t, 1, g.Min)
	assert.Equal(t, 3, g.Max)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "not a mapping",
			yaml:    "- a\n- b\n",
			wantErr: "top level must map",
		},
		{
			name:    "missing type",
			yaml:    "acme:\n  groups: []\n",
			wantErr: "does not match schema",
		},
		{
			name:    "point without text",
			yaml:    "acme:\n  type: job\n  groups:\n    - points:\n        - bold: [x]\n",
			wantErr: "does not match schema",
		},
		{
			name:    "negative bound",
			yaml:    "acme:\n  type: job\n  min_points: -1\n",
			wantErr: "does not match schema",
		},
		{
			name:    "min above max",
			yaml:    "acme:\n  type: job\n  groups:\n    - min: 3\n      max: 1\n      points: []\n",
			wantErr: "minimum 3 is greater than maximum 1",
		},
		{
			name:    "blank point text",
			yaml:    "acme:\n  type: job\n  groups:\n    - points:\n        - text: \"   \"\n",
			wantErr: "point 0 has no text",
		},
		{
			name:    "blank dependant text",
			yaml:    "acme:\n  type: job\n  groups:\n    - points:\n        - text: Led\n          dependants:\n            - text: \"\\t\"\n",
			wantErr: `dependant of "Led": point 0 has no text`,
		},
		{
			name:    "invalid yaml",
			yaml:    "acme: [unclosed",
			wantErr: "failed to unmarshal YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParse_BlankTextIsNormalizationError(t *testing.T) {
	_, err := Parse([]byte("acme:\n  type: job\n  groups:\n    - points:\n        - text: \"   \"\n"))
	require.Error(t, err)
	var normErr *NormalizationError
	assert.ErrorAs(t, err, &normErr)
	assert.Contains(t, err.Error(), "experience 'acme' group 0")
}

func TestParse_Empty(t *testing.T) {
	file, err := Parse([]byte("  \n"))
	require.NoError(t, err)
	assert.Empty(t, file.Experiences)
}

func TestLoad_FromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleContent), 0o644))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, m.Bullets, 6)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	var loadErr *LoadError
	assert.ErrorAs(t, err, &loadErr)
}
