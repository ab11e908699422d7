package markdown

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"loyalty-rankings/lib/testutil"

	"github.com/stretchr/testify/require"
)

func writeInput(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "members.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0666))
	return path
}

func TestHouseFormat(t *testing.T) {
	_, cleanup := testutil.SetupJob(t, testutil.JobParams{Name: "services/markdown"})
	defer cleanup()

	input := writeInput(t, `Alabama 2,Barry Moore,Republican,https://en.wikipedia.org/wiki/Barry_Moore_(Alabama_politician),https://en.wikipedia.org/wiki/Alabama%27s_2nd_congressional_district
Vermont At-large,Vacant,,,
New York 21,VACANT,,,
`)
	outputDir := t.TempDir()

	summary, err := Run(context.Background(), Config{
		Input:     input,
		OutputDir: outputDir,
		Format:    FormatHouse,
	})
	require.NoError(t, err)
	require.Equal(t, 1, summary.FilesCreated)
	// vacant seats are skipped no matter how the sheet spells it
	require.Equal(t, 2, summary.RowsSkipped)

	_, err = os.Stat(filepath.Join(outputDir, "VACANT.md"))
	require.True(t, os.IsNotExist(err))

	content, err := os.ReadFile(filepath.Join(outputDir, "Barry_Moore.md"))
	require.NoError(t, err)
	require.Equal(t, `# Barry Moore

**District**: Alabama 2

**Party**: Republican

**Wikipedia**: [https://en.wikipedia.org/wiki/Barry_Moore_(Alabama_politician)](https://en.wikipedia.org/wiki/Barry_Moore_(Alabama_politician))

**District Info**: [https://en.wikipedia.org/wiki/Alabama%27s_2nd_congressional_district](https://en.wikipedia.org/wiki/Alabama%27s_2nd_congressional_district)

`, string(content))
}

func TestSenateFormatFirstRowIsData(t *testing.T) {
	_, cleanup := testutil.SetupJob(t, testutil.JobParams{Name: "services/markdown"})
	defer cleanup()

	input := writeInput(t, `Alabama,Tommy Tuberville,Republican,https://en.wikipedia.org/wiki/Tommy_Tuberville
Ohio,Bernie Moreno,Republican,https://en.wikipedia.org/wiki/Bernie_Moreno
`)
	outputDir := t.TempDir()

	summary, err := Run(context.Background(), Config{
		Input:     input,
		OutputDir: outputDir,
		Format:    FormatSenate,
	})
	require.NoError(t, err)
	require.Equal(t, 2, summary.FilesCreated)

	content, err := os.ReadFile(filepath.Join(outputDir, "Tommy_Tuberville.md"))
	require.NoError(t, err)
	require.Contains(t, string(content), "# Tommy Tuberville")
	require.Contains(t, string(content), "**State**: Alabama")
}

func TestStandardFormat(t *testing.T) {
	_, cleanup := testutil.SetupJob(t, testutil.JobParams{Name: "services/markdown"})
	defer cleanup()

	input := writeInput(t, `Full Name,State,Party
Angus King,Maine,Independent
`)
	outputDir := t.TempDir()

	summary, err := Run(context.Background(), Config{
		Input:     input,
		OutputDir: outputDir,
		Format:    FormatStandard,
	})
	require.NoError(t, err)
	require.Equal(t, 1, summary.FilesCreated)

	content, err := os.ReadFile(filepath.Join(outputDir, "Angus_King.md"))
	require.NoError(t, err)
	require.Equal(t, "# Angus King\n\n**State**: Maine\n\n**Party**: Independent\n\n", string(content))
}

func TestStandardFormatNoNameColumn(t *testing.T) {
	_, cleanup := testutil.SetupJob(t, testutil.JobParams{Name: "services/markdown"})
	defer cleanup()

	_, err := Run(context.Background(), Config{
		Input:     writeInput(t, "State,Party\nMaine,Independent\n"),
		OutputDir: t.TempDir(),
		Format:    FormatStandard,
	})
	require.ErrorContains(t, err, "no name column")
}

func TestNeverOverwrites(t *testing.T) {
	_, cleanup := testutil.SetupJob(t, testutil.JobParams{Name: "services/markdown"})
	defer cleanup()

	input := writeInput(t, "Ohio,Bernie Moreno,Republican,https://en.wikipedia.org/wiki/Bernie_Moreno\n")
	outputDir := t.TempDir()

	path := filepath.Join(outputDir, "Bernie_Moreno.md")
	require.NoError(t, os.WriteFile(path, []byte("hand-edited notes"), 0666))

	summary, err := Run(context.Background(), Config{
		Input:     input,
		OutputDir: outputDir,
		Format:    FormatSenate,
	})
	require.NoError(t, err)
	require.Equal(t, 0, summary.FilesCreated)
	require.Equal(t, 1, summary.AlreadyExists)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "hand-edited notes", string(content))
}
